package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/audit-mgmt-api/internal/dto"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
	"github.com/noah-isme/audit-mgmt-api/internal/repository"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
	"github.com/noah-isme/audit-mgmt-api/pkg/jobs"
	"github.com/noah-isme/audit-mgmt-api/pkg/storage"
)

type reportJobStore interface {
	Create(ctx context.Context, job *models.ReportJob) error
	GetByID(ctx context.Context, id string) (*models.ReportJob, error)
	Update(ctx context.Context, id string, params repository.UpdateReportJobParams) error
	ListQueued(ctx context.Context, limit int) ([]models.ReportJob, error)
	ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.ReportJob, error)
	Delete(ctx context.Context, id string) error
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

type exportGenerator interface {
	Generate(ctx context.Context, job *models.ReportJob) (*ExportResult, error)
}

type exportFiles interface {
	ParseToken(token string, allowExpired bool) (storage.SignedToken, error)
	Open(key string) (*os.File, error)
	Delete(ctx context.Context, key string) error
	Cleanup(ttl time.Duration) ([]string, error)
}

type reportTargets interface {
	FindProgram(ctx context.Context, id string) error
	FindCompany(ctx context.Context, id string) error
}

// ReportServiceConfig governs queue recovery and cleanup.
type ReportServiceConfig struct {
	ResultTTL       time.Duration
	CleanupInterval time.Duration
}

// ReportDownload aggregates resolved download data.
type ReportDownload struct {
	File      *os.File
	Filename  string
	Format    models.ReportFormat
	ExpiresAt time.Time
}

// ReportService orchestrates report job lifecycle management.
type ReportService struct {
	repo     reportJobStore
	targets  reportTargets
	queue    jobDispatcher
	files    exportFiles
	audit    auditTrail
	validate *validator.Validate
	logger   *zap.Logger
	cfg      ReportServiceConfig
	now      func() time.Time
}

// NewReportService constructs the report service.
func NewReportService(repo reportJobStore, targets reportTargets, queue jobDispatcher, files exportFiles, audit AuditLogWriter, validate *validator.Validate, logger *zap.Logger, cfg ReportServiceConfig) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	return &ReportService{
		repo:     repo,
		targets:  targets,
		queue:    queue,
		files:    files,
		audit:    newAuditTrail(audit, logger),
		validate: validate,
		logger:   logger,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateJob validates the request, persists a queued job and hands it to the worker pool.
func (s *ReportService) CreateJob(ctx context.Context, req dto.ReportRequest, meta RequestMeta) (*dto.ReportJobResponse, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}
	job := &models.ReportJob{
		Type: models.ReportType(req.Type),
		Params: models.ReportJobParams{
			AuditProgramID: req.AuditProgramID,
			CompanyID:      req.CompanyID,
			Format:         models.ReportFormat(req.Format),
		},
		Status:    models.ReportStatusQueued,
		CreatedBy: meta.ActorID,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create report job")
	}
	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: string(job.Type)}); err != nil {
		status := models.ReportStatusFailed
		msg := "failed to enqueue job"
		now := s.now()
		progress := 100
		_ = s.repo.Update(ctx, job.ID, repository.UpdateReportJobParams{
			Status:       &status,
			Progress:     &progress,
			ErrorMessage: &msg,
			FinishedAt:   &now,
		})
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue report job")
	}
	s.audit.record(ctx, meta, models.AuditActionReport, "reports", job.ID, nil, job.Params)
	return jobResponse(job), nil
}

// GetStatus exposes job metadata to clients.
func (s *ReportService) GetStatus(ctx context.Context, id string) (*dto.ReportJobResponse, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, loadError(err, "report job")
	}
	return jobResponse(job), nil
}

// ResolveDownload validates a token and opens the stored export file.
func (s *ReportService) ResolveDownload(ctx context.Context, token string) (*ReportDownload, error) {
	signed, err := s.files.ParseToken(token, false)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	job, err := s.repo.GetByID(ctx, signed.SubjectID)
	if err != nil {
		return nil, loadError(err, "report job")
	}
	if job.ResultURL == nil || extractToken(*job.ResultURL) != token {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "token mismatch")
	}
	if job.Status != models.ReportStatusFinished {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "report not ready")
	}
	file, err := s.files.Open(signed.Key)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export file")
	}
	return &ReportDownload{
		File:      file,
		Filename:  filepath.Base(signed.Key),
		Format:    job.Params.Format,
		ExpiresAt: signed.ExpiresAt,
	}, nil
}

// RecoverPendingJobs replays queued jobs after a restart.
func (s *ReportService) RecoverPendingJobs(ctx context.Context) {
	pending, err := s.repo.ListQueued(ctx, 50)
	if err != nil {
		s.logger.Sugar().Warnw("failed to recover queued report jobs", "error", err)
		return
	}
	for _, job := range pending {
		if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: string(job.Type)}); err != nil {
			s.logger.Sugar().Warnw("failed to requeue pending job", "job_id", job.ID, "error", err)
		}
	}
	if len(pending) > 0 {
		s.logger.Info("recovered queued report jobs", zap.Int("count", len(pending)))
	}
}

// StartCleanup boots a goroutine that purges expired exports periodically.
func (s *ReportService) StartCleanup(ctx context.Context) {
	if s.cfg.CleanupInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.CleanupExpired(ctx)
			}
		}
	}()
}

// CleanupExpired deletes finished jobs older than the result TTL together with their files.
func (s *ReportService) CleanupExpired(ctx context.Context) int {
	const batch = 100
	cutoff := s.now().Add(-s.cfg.ResultTTL)
	removed := 0
	for {
		expired, err := s.repo.ListFinishedBefore(ctx, cutoff, batch)
		if err != nil {
			s.logger.Sugar().Warnw("cleanup list failed", "error", err)
			break
		}
		for _, job := range expired {
			if job.ResultURL != nil {
				if signed, err := s.files.ParseToken(extractToken(*job.ResultURL), true); err == nil {
					if err := s.files.Delete(ctx, signed.Key); err != nil {
						s.logger.Sugar().Warnw("cleanup delete failed", "job_id", job.ID, "error", err)
					}
				}
			}
			if err := s.repo.Delete(ctx, job.ID); err != nil {
				s.logger.Sugar().Warnw("cleanup job delete failed", "job_id", job.ID, "error", err)
				return removed
			}
			removed++
		}
		if len(expired) < batch {
			break
		}
	}
	if _, err := s.files.Cleanup(s.cfg.ResultTTL); err != nil {
		s.logger.Sugar().Warnw("filesystem cleanup failed", "error", err)
	}
	return removed
}

func (s *ReportService) validateRequest(ctx context.Context, req dto.ReportRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return validationError(err, "invalid report request")
	}
	switch models.ReportType(req.Type) {
	case models.ReportTypeFindings:
		if req.AuditProgramID == "" {
			return appErrors.Clone(appErrors.ErrValidation, "audit_program_id is required for findings reports")
		}
		if err := s.targets.FindProgram(ctx, req.AuditProgramID); err != nil {
			return loadError(err, "audit program")
		}
	case models.ReportTypeRiskMatrix:
		if req.CompanyID == "" {
			return appErrors.Clone(appErrors.ErrValidation, "company_id is required for risk matrix reports")
		}
		if err := s.targets.FindCompany(ctx, req.CompanyID); err != nil {
			return loadError(err, "company")
		}
	}
	return nil
}

func jobResponse(job *models.ReportJob) *dto.ReportJobResponse {
	resp := &dto.ReportJobResponse{
		ID:         job.ID,
		Type:       string(job.Type),
		Format:     string(job.Params.Format),
		Status:     string(job.Status),
		Progress:   job.Progress,
		CreatedAt:  job.CreatedAt,
		FinishedAt: job.FinishedAt,
	}
	if job.ResultURL != nil && job.Status == models.ReportStatusFinished {
		resp.DownloadURL = *job.ResultURL
	}
	if job.ErrorMessage != nil {
		resp.Error = *job.ErrorMessage
	}
	return resp
}

// extractToken pulls the token query value out of a stored download URL.
func extractToken(url string) string {
	idx := strings.LastIndex(url, "token=")
	if idx < 0 {
		return ""
	}
	token := url[idx+len("token="):]
	if amp := strings.IndexByte(token, '&'); amp >= 0 {
		token = token[:amp]
	}
	return token
}

// ReportTargetLookup checks that report subjects exist.
type ReportTargetLookup struct {
	Programs interface {
		FindByID(ctx context.Context, id string) (*models.AuditProgram, error)
	}
	Companies interface {
		FindByID(ctx context.Context, id string) (*models.Company, error)
	}
}

// FindProgram returns the lookup error for an audit program, if any.
func (l ReportTargetLookup) FindProgram(ctx context.Context, id string) error {
	_, err := l.Programs.FindByID(ctx, id)
	return err
}

// FindCompany returns the lookup error for a company, if any.
func (l ReportTargetLookup) FindCompany(ctx context.Context, id string) error {
	_, err := l.Companies.FindByID(ctx, id)
	return err
}

// ReportWorker bridges queue jobs to ExportService.
type ReportWorker struct {
	repo       reportJobStore
	exporter   exportGenerator
	metrics    *MetricsService
	logger     *zap.Logger
	maxRetries int
	now        func() time.Time
}

// NewReportWorker constructs a worker. maxRetries must match the queue's retry budget.
func NewReportWorker(repo reportJobStore, exporter exportGenerator, metrics *MetricsService, maxRetries int, logger *zap.Logger) *ReportWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &ReportWorker{
		repo:       repo,
		exporter:   exporter,
		metrics:    metrics,
		logger:     logger,
		maxRetries: maxRetries,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle processes a queue job.
func (w *ReportWorker) Handle(ctx context.Context, job jobs.Job) error {
	start := w.now()
	record, err := w.repo.GetByID(ctx, job.ID)
	if err != nil {
		return err
	}
	processing := models.ReportStatusProcessing
	progress := 10
	if err := w.repo.Update(ctx, job.ID, repository.UpdateReportJobParams{
		Status:   &processing,
		Progress: &progress,
	}); err != nil {
		return err
	}

	result, err := w.exporter.Generate(ctx, record)
	if err != nil {
		msg := err.Error()
		if job.Attempt >= w.maxRetries {
			w.markFailed(ctx, job.ID, msg)
			w.metrics.RecordReportJob(record.Type, models.ReportStatusFailed, w.now().Sub(start))
		} else {
			queued := models.ReportStatusQueued
			reset := 0
			if updateErr := w.repo.Update(ctx, job.ID, repository.UpdateReportJobParams{
				Status:       &queued,
				Progress:     &reset,
				ErrorMessage: &msg,
			}); updateErr != nil {
				w.logger.Sugar().Warnw("failed to mark job queued", "job_id", job.ID, "error", updateErr)
			}
		}
		return err
	}

	finished := models.ReportStatusFinished
	progress = 100
	now := w.now()
	url := result.URL
	empty := ""
	if err := w.repo.Update(ctx, job.ID, repository.UpdateReportJobParams{
		Status:       &finished,
		Progress:     &progress,
		ResultURL:    &url,
		ErrorMessage: &empty,
		FinishedAt:   &now,
	}); err != nil {
		w.logger.Sugar().Warnw("failed to mark job finished", "job_id", job.ID, "error", err)
		return err
	}
	w.metrics.RecordReportJob(record.Type, models.ReportStatusFinished, now.Sub(start))
	return nil
}

// GiveUp is the queue hook for jobs whose handler never got far enough to record a failure.
func (w *ReportWorker) GiveUp(ctx context.Context, job jobs.Job, err error) {
	record, loadErr := w.repo.GetByID(ctx, job.ID)
	if loadErr != nil || record.Status.Terminal() {
		return
	}
	msg := "report generation failed"
	if err != nil {
		msg = err.Error()
	}
	w.markFailed(ctx, job.ID, msg)
}

func (w *ReportWorker) markFailed(ctx context.Context, id, msg string) {
	failed := models.ReportStatusFailed
	progress := 100
	now := w.now()
	if err := w.repo.Update(ctx, id, repository.UpdateReportJobParams{
		Status:       &failed,
		Progress:     &progress,
		ErrorMessage: &msg,
		FinishedAt:   &now,
	}); err != nil {
		w.logger.Sugar().Warnw("failed to mark job failed", "job_id", id, "error", err)
	}
}
