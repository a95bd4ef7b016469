package service

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
	"github.com/noah-isme/audit-mgmt-api/pkg/export"
	"github.com/noah-isme/audit-mgmt-api/pkg/storage"
)

// ReportSources bundles the read models a report is built from.
type ReportSources struct {
	Programs interface {
		FindByID(ctx context.Context, id string) (*models.AuditProgram, error)
	}
	Tests interface {
		ListByProgram(ctx context.Context, programID string) ([]models.AuditTest, error)
	}
	Findings interface {
		ListByProgram(ctx context.Context, programID string) ([]models.AuditFinding, error)
	}
	Plans interface {
		ListByFindings(ctx context.Context, findingIDs []string) ([]models.ActionPlan, error)
	}
	Tasks interface {
		ListByPlans(ctx context.Context, planIDs []string) ([]models.Task, error)
	}
	Companies interface {
		FindByID(ctx context.Context, id string) (*models.Company, error)
	}
	Risks interface {
		ListActiveByCompany(ctx context.Context, companyID string) ([]models.Risk, error)
	}
}

type fileStorage interface {
	Save(key string, data []byte) (string, error)
	Open(key string) (*os.File, error)
	Delete(ctx context.Context, key string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type tableRenderer interface {
	Render(table export.Table) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	Key       string
	Token     string
	URL       string
	Format    models.ReportFormat
	ExpiresAt time.Time
}

// ExportService builds report tables and persists rendered files.
type ExportService struct {
	sources ReportSources
	storage fileStorage
	csv     tableRenderer
	pdf     tableRenderer
	signer  *storage.SignedURLSigner
	logger  *zap.Logger
	cfg     ExportConfig
	now     func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to the defaults.
func NewExportService(sources ReportSources, store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger, csv, pdf tableRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter(true)
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		sources: sources,
		storage: store,
		csv:     csv,
		pdf:     pdf,
		signer:  signer,
		logger:  logger,
		cfg:     cfg,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Generate builds the table for job, renders it and stores the file behind a signed URL.
func (s *ExportService) Generate(ctx context.Context, job *models.ReportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}
	table, err := s.buildTable(ctx, job)
	if err != nil {
		return nil, err
	}

	var payload []byte
	switch job.Params.Format {
	case models.ReportFormatCSV:
		payload, err = s.csv.Render(table)
	case models.ReportFormatPDF:
		payload, err = s.pdf.Render(table)
	default:
		err = fmt.Errorf("unsupported format %s", job.Params.Format)
	}
	if err != nil {
		return nil, err
	}

	key, err := s.storage.Save(s.filename(job), payload)
	if err != nil {
		return nil, err
	}
	token, expiresAt, err := s.signer.Generate(job.ID, key)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	return &ExportResult{
		Key:       key,
		Token:     token,
		URL:       prefix + "/reports/download?token=" + token,
		Format:    job.Params.Format,
		ExpiresAt: expiresAt,
	}, nil
}

// ParseToken validates a download token.
func (s *ExportService) ParseToken(token string, allowExpired bool) (storage.SignedToken, error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to a stored file.
func (s *ExportService) Open(key string) (*os.File, error) {
	return s.storage.Open(key)
}

// Delete removes a stored file.
func (s *ExportService) Delete(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

// Cleanup removes files older than ttl, or the configured TTL when ttl <= 0.
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func (s *ExportService) filename(job *models.ReportJob) string {
	subject := job.Params.Subject(job.Type)
	if subject == "" {
		subject = "all"
	}
	return fmt.Sprintf("%s_%s_%s.%s", job.Type, subject, s.now().Format("20060102_150405"), job.Params.Format)
}

func (s *ExportService) buildTable(ctx context.Context, job *models.ReportJob) (export.Table, error) {
	switch job.Type {
	case models.ReportTypeFindings:
		return s.findingsTable(ctx, job.Params.AuditProgramID)
	case models.ReportTypeRiskMatrix:
		return s.riskMatrixTable(ctx, job.Params.CompanyID)
	default:
		return export.Table{}, fmt.Errorf("unsupported report type %s", job.Type)
	}
}

var findingColumns = []export.Column{
	{Key: "title", Label: "Hallazgo", Weight: 3},
	{Key: "test", Label: "Prueba", Weight: 2},
	{Key: "classification", Label: "Clasificación", Weight: 1.2},
	{Key: "type", Label: "Tipo", Weight: 1.2},
	{Key: "recommendation", Label: "Recomendación", Weight: 3},
	{Key: "plans", Label: "Planes de acción", Weight: 3},
}

// findingsTable lists a program's findings with their test and action plans.
func (s *ExportService) findingsTable(ctx context.Context, programID string) (export.Table, error) {
	program, err := s.sources.Programs.FindByID(ctx, programID)
	if err != nil {
		return export.Table{}, fmt.Errorf("load audit program: %w", err)
	}
	tests, err := s.sources.Tests.ListByProgram(ctx, programID)
	if err != nil {
		return export.Table{}, err
	}
	findings, err := s.sources.Findings.ListByProgram(ctx, programID)
	if err != nil {
		return export.Table{}, err
	}

	testNames := make(map[string]string, len(tests))
	for _, t := range tests {
		testNames[t.ID] = t.Name
	}
	findingIDs := make([]string, len(findings))
	for i, f := range findings {
		findingIDs[i] = f.ID
	}

	plansByFinding := map[string][]models.ActionPlan{}
	tasksByPlan := map[string][]models.Task{}
	if len(findingIDs) > 0 {
		plans, err := s.sources.Plans.ListByFindings(ctx, findingIDs)
		if err != nil {
			return export.Table{}, err
		}
		planIDs := make([]string, 0, len(plans))
		for _, p := range plans {
			if p.AuditFindingID != nil {
				plansByFinding[*p.AuditFindingID] = append(plansByFinding[*p.AuditFindingID], p)
			}
			planIDs = append(planIDs, p.ID)
		}
		if len(planIDs) > 0 {
			tasks, err := s.sources.Tasks.ListByPlans(ctx, planIDs)
			if err != nil {
				return export.Table{}, err
			}
			for _, t := range tasks {
				tasksByPlan[t.ActionPlanID] = append(tasksByPlan[t.ActionPlanID], t)
			}
		}
	}

	rows := make([]map[string]string, 0, len(findings))
	for _, f := range findings {
		plans := plansByFinding[f.ID]
		summaries := make([]string, 0, len(plans))
		for _, p := range plans {
			summaries = append(summaries, fmt.Sprintf("%s (%s, %d%%)", p.Name, p.Status, p.Progress(tasksByPlan[p.ID])))
		}
		rows = append(rows, map[string]string{
			"title":          f.Title,
			"test":           testNames[f.AuditTestID],
			"classification": string(f.Classification),
			"type":           string(f.FindingType),
			"recommendation": f.Recommendation,
			"plans":          strings.Join(summaries, "; "),
		})
	}

	return export.Table{
		Title:    "Informe de hallazgos: " + program.Name,
		Subtitle: fmt.Sprintf("%s al %s, estado %s", program.StartDate.Format("02/01/2006"), program.EndDate.Format("02/01/2006"), program.Status),
		Columns:  findingColumns,
		Rows:     rows,
	}, nil
}

var riskMatrixColumns = []export.Column{
	{Key: "name", Label: "Riesgo", Weight: 3},
	{Key: "probability", Label: "Probabilidad", Weight: 1.2},
	{Key: "impact", Label: "Impacto", Weight: 1.2},
	{Key: "score", Label: "Puntaje", Weight: 0.8},
	{Key: "level", Label: "Nivel", Weight: 1},
}

// riskMatrixTable lists a company's active risks, highest score first.
func (s *ExportService) riskMatrixTable(ctx context.Context, companyID string) (export.Table, error) {
	title := "Matriz de riesgos"
	if companyID != "" {
		company, err := s.sources.Companies.FindByID(ctx, companyID)
		if err != nil {
			return export.Table{}, fmt.Errorf("load company: %w", err)
		}
		title += ": " + company.Name
	}
	risks, err := s.sources.Risks.ListActiveByCompany(ctx, companyID)
	if err != nil {
		return export.Table{}, err
	}
	views := make([]models.RiskView, len(risks))
	for i, r := range risks {
		views[i] = models.NewRiskView(r)
	}
	sortRiskViews(views)

	rows := make([]map[string]string, len(views))
	for i, v := range views {
		rows[i] = map[string]string{
			"name":        v.Name,
			"probability": string(v.Probability),
			"impact":      string(v.Impact),
			"score":       strconv.Itoa(v.Score),
			"level":       string(v.Level),
		}
	}
	return export.Table{
		Title:    title,
		Subtitle: "Generado " + s.now().Format("02/01/2006"),
		Columns:  riskMatrixColumns,
		Rows:     rows,
	}, nil
}

func sortRiskViews(views []models.RiskView) {
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Score > views[j].Score
	})
}
