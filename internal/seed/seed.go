// Package seed loads the permission catalog, the default roles, an
// administrator and a small demo audit universe. Every statement is
// idempotent so the seeder can run against an already seeded database.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultAdminEmail    = "admin@auditoria.local"
	DefaultAdminPassword = "admin123"
)

// Options configures the administrator account.
type Options struct {
	AdminEmail    string
	AdminPassword string
}

// Seeder writes seed data in a single transaction.
type Seeder struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// New constructs a Seeder.
func New(db *sqlx.DB, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{db: db, logger: logger}
}

type pair struct{ left, right string }

var (
	demoCompany = []interface{}{"Auditoría Demo C.A.", "auditoria-demo", "J-00000000-0", "Caracas", "", "contacto@auditoria.local"}

	demoProcesses = []catalogRow{
		{Slug: "compras", Name: "Compras", Description: "Adquisición de bienes y servicios"},
		{Slug: "tesoreria", Name: "Tesorería", Description: "Gestión de fondos y pagos"},
		{Slug: "nomina", Name: "Nómina", Description: "Cálculo y pago de remuneraciones"},
	}
	demoControls = []catalogRow{
		{Slug: "aprobacion-ordenes-compra", Name: "Aprobación de órdenes de compra", Extra: []interface{}{"Preventivo", "Manual", "Por evento"}},
		{Slug: "conciliacion-bancaria", Name: "Conciliación bancaria", Extra: []interface{}{"Detectivo", "Manual", "Mensual"}},
		{Slug: "revision-nomina", Name: "Revisión de nómina", Extra: []interface{}{"Detectivo", "Semiautomático", "Mensual"}},
	}
	demoRisks = []catalogRow{
		{Slug: "compras-no-autorizadas", Name: "Compras no autorizadas", Extra: []interface{}{"Media", "Alto"}},
		{Slug: "desvio-fondos", Name: "Desvío de fondos", Extra: []interface{}{"Baja", "Muy alto"}},
		{Slug: "pagos-duplicados-nomina", Name: "Pagos duplicados de nómina", Extra: []interface{}{"Media", "Medio"}},
	}

	// process slug -> control slug
	demoProcessControls = []pair{
		{"compras", "aprobacion-ordenes-compra"},
		{"tesoreria", "conciliacion-bancaria"},
		{"nomina", "revision-nomina"},
	}
	// control slug -> risk slug
	demoControlRisks = []pair{
		{"aprobacion-ordenes-compra", "compras-no-autorizadas"},
		{"conciliacion-bancaria", "desvio-fondos"},
		{"revision-nomina", "pagos-duplicados-nomina"},
	}
	// risk slug -> process slug
	demoAffectedProcesses = []pair{
		{"compras-no-autorizadas", "compras"},
		{"desvio-fondos", "tesoreria"},
		{"pagos-duplicados-nomina", "nomina"},
	}
)

type catalogRow struct {
	Slug        string
	Name        string
	Description string
	Extra       []interface{}
}

const (
	insertPermissionQuery = `INSERT INTO permissions (key, name, resource) VALUES ($1, $2, $3) ON CONFLICT (key) DO NOTHING`
	upsertRoleQuery       = `INSERT INTO roles (name, slug, description) VALUES ($1, $2, $3)
ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug RETURNING id`
	grantQuery = `INSERT INTO role_permissions (role_id, permission_id)
SELECT $1, id FROM permissions WHERE key = ANY($2) ON CONFLICT DO NOTHING`
	upsertCompanyQuery = `INSERT INTO companies (name, slug, rif, address, phone, email) VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug RETURNING id`
	upsertAdminQuery = `INSERT INTO users (company_id, role_id, first_name, last_name, email, username, password_hash, position)
VALUES ($1, $2, 'Administrador', 'Sistema', $3, $4, $5, 'Administrador del sistema')
ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email RETURNING id`
	upsertProcessQuery = `INSERT INTO processes (company_id, slug, name, description) VALUES ($1, $2, $3, $4)
ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug RETURNING id`
	upsertControlQuery = `INSERT INTO controls (company_id, slug, name, description, control_type, execution, frequency) VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug RETURNING id`
	upsertRiskQuery = `INSERT INTO risks (company_id, slug, name, description, probability, impact) VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug RETURNING id`
	linkProcessControlQuery = `INSERT INTO process_controls (process_id, control_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	linkControlRiskQuery    = `INSERT INTO control_risks (control_id, risk_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	linkAffectedQuery       = `INSERT INTO affected_processes (risk_id, process_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	upsertProgramQuery      = `INSERT INTO audit_programs (company_id, slug, name, objective, start_date, end_date)
VALUES ($1, 'auditoria-anual-demo', 'Auditoría anual demo', 'Evaluar los controles sobre compras, tesorería y nómina', CURRENT_DATE, CURRENT_DATE + 180)
ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug RETURNING id`
	linkParticipantQuery = `INSERT INTO audit_participants (audit_program_id, user_id, role, planned_hours) VALUES ($1, $2, 'Auditor líder', 40)
ON CONFLICT DO NOTHING`
	linkScopeQuery = `INSERT INTO audit_process_controls (audit_program_id, process_id, control_id) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`
)

// Run seeds everything in one transaction.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	if opts.AdminEmail == "" {
		opts.AdminEmail = DefaultAdminEmail
	}
	if opts.AdminPassword == "" {
		opts.AdminPassword = DefaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	adminID, err := s.seed(ctx, tx, strings.ToLower(opts.AdminEmail), string(hash))
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	s.logger.Info("seed completed",
		zap.Int("permissions", len(Permissions())),
		zap.String("admin_email", opts.AdminEmail),
		zap.String("admin_id", adminID))
	return nil
}

func (s *Seeder) seed(ctx context.Context, tx *sqlx.Tx, adminEmail, adminHash string) (string, error) {
	for _, p := range Permissions() {
		if _, err := tx.ExecContext(ctx, insertPermissionQuery, p.Key, p.Name, p.Resource); err != nil {
			return "", fmt.Errorf("seed permission %s: %w", p.Key, err)
		}
	}

	roleIDs := make(map[string]string)
	for _, role := range Roles() {
		var id string
		if err := tx.GetContext(ctx, &id, upsertRoleQuery, role.Name, role.Slug, role.Description); err != nil {
			return "", fmt.Errorf("seed role %s: %w", role.Slug, err)
		}
		if _, err := tx.ExecContext(ctx, grantQuery, id, pq.Array(role.Keys)); err != nil {
			return "", fmt.Errorf("grant role %s: %w", role.Slug, err)
		}
		roleIDs[role.Slug] = id
	}

	var companyID string
	if err := tx.GetContext(ctx, &companyID, upsertCompanyQuery, demoCompany...); err != nil {
		return "", fmt.Errorf("seed company: %w", err)
	}

	username := adminEmail
	if at := strings.IndexByte(username, '@'); at > 0 {
		username = username[:at]
	}
	var adminID string
	if err := tx.GetContext(ctx, &adminID, upsertAdminQuery, companyID, roleIDs["administrador"], adminEmail, username, adminHash); err != nil {
		return "", fmt.Errorf("seed admin: %w", err)
	}

	processIDs, err := upsertRows(ctx, tx, upsertProcessQuery, companyID, demoProcesses)
	if err != nil {
		return "", fmt.Errorf("seed processes: %w", err)
	}
	controlIDs, err := upsertRows(ctx, tx, upsertControlQuery, companyID, demoControls)
	if err != nil {
		return "", fmt.Errorf("seed controls: %w", err)
	}
	riskIDs, err := upsertRows(ctx, tx, upsertRiskQuery, companyID, demoRisks)
	if err != nil {
		return "", fmt.Errorf("seed risks: %w", err)
	}

	if err := link(ctx, tx, linkProcessControlQuery, demoProcessControls, processIDs, controlIDs); err != nil {
		return "", fmt.Errorf("seed process controls: %w", err)
	}
	if err := link(ctx, tx, linkControlRiskQuery, demoControlRisks, controlIDs, riskIDs); err != nil {
		return "", fmt.Errorf("seed control risks: %w", err)
	}
	if err := link(ctx, tx, linkAffectedQuery, demoAffectedProcesses, riskIDs, processIDs); err != nil {
		return "", fmt.Errorf("seed affected processes: %w", err)
	}

	var programID string
	if err := tx.GetContext(ctx, &programID, upsertProgramQuery, companyID); err != nil {
		return "", fmt.Errorf("seed audit program: %w", err)
	}
	if _, err := tx.ExecContext(ctx, linkParticipantQuery, programID, adminID); err != nil {
		return "", fmt.Errorf("seed audit participant: %w", err)
	}
	for _, pc := range demoProcessControls {
		if _, err := tx.ExecContext(ctx, linkScopeQuery, programID, processIDs[pc.left], controlIDs[pc.right]); err != nil {
			return "", fmt.Errorf("seed audit scope: %w", err)
		}
	}
	return adminID, nil
}

// upsertRows inserts company-owned catalog rows and returns their ids by slug.
func upsertRows(ctx context.Context, tx *sqlx.Tx, query, companyID string, rows []catalogRow) (map[string]string, error) {
	ids := make(map[string]string, len(rows))
	for _, row := range rows {
		args := append([]interface{}{companyID, row.Slug, row.Name, row.Description}, row.Extra...)
		var id string
		if err := tx.GetContext(ctx, &id, query, args...); err != nil {
			return nil, fmt.Errorf("%s: %w", row.Slug, err)
		}
		ids[row.Slug] = id
	}
	return ids, nil
}

func link(ctx context.Context, tx *sqlx.Tx, query string, pairs []pair, left, right map[string]string) error {
	for _, p := range pairs {
		l, r := left[p.left], right[p.right]
		if l == "" || r == "" {
			return errors.New("unknown slug in " + p.left + "/" + p.right)
		}
		if _, err := tx.ExecContext(ctx, query, l, r); err != nil {
			return err
		}
	}
	return nil
}
