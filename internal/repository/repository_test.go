package repository

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func TestPageClauseDefaults(t *testing.T) {
	sorts := sortSpec{allowed: map[string]bool{"name": true}, fallback: "created_at"}

	assert.Equal(t, "ORDER BY created_at DESC LIMIT 20 OFFSET 0", pageClause(models.ListOptions{}, sorts))
	assert.Equal(t, "ORDER BY created_at DESC LIMIT 20 OFFSET 0", pageClause(models.ListOptions{SortBy: "password_hash; DROP", PageSize: 500}, sorts))
	assert.Equal(t, "ORDER BY name ASC LIMIT 10 OFFSET 20", pageClause(models.ListOptions{SortBy: "name", SortOrder: "asc", Page: 3, PageSize: 10}, sorts))
}

func TestWhereBuilderPlaceholders(t *testing.T) {
	where := &whereBuilder{}
	where.add("company_id = $%d", "c1")
	where.search("  Compras ", "name", "slug")
	where.search("")
	where.add("status = $%d", true)

	assert.Equal(t, "FROM processes WHERE 1=1 AND company_id = $1 AND (LOWER(name) LIKE $2 OR LOWER(slug) LIKE $2) AND status = $3", where.from("processes"))
	assert.Equal(t, []interface{}{"c1", "%compras%", true}, where.args)
}

func TestTranslatePQError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unique", &pq.Error{Code: "23505", Constraint: "roles_slug_key"}, http.StatusConflict, appErrors.ErrConflict.Code},
		{"foreign key", &pq.Error{Code: "23503", Constraint: "fk_audit_test_controls_scope"}, http.StatusConflict, appErrors.ErrConflict.Code},
		{"check", &pq.Error{Code: "23514", Constraint: "chk_action_plans_target"}, http.StatusBadRequest, appErrors.ErrValidation.Code},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var appErr *appErrors.Error
			require.True(t, errors.As(TranslatePQError(tc.err), &appErr))
			assert.Equal(t, tc.status, appErr.Status)
			assert.Equal(t, tc.code, appErr.Code)
		})
	}

	plain := errors.New("boom")
	assert.Same(t, plain, TranslatePQError(plain))
	assert.Nil(t, TranslatePQError(nil))
}

func TestUserRepositoryFindByIdentifier(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "company_id", "role_id", "first_name", "last_name", "email", "username", "password_hash", "position", "status", "last_login_at", "created_at", "updated_at"}).
		AddRow("u1", "c1", "r1", "Ana", "Pérez", "ana@example.com", "aperez", "hash", "Auditora", true, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE LOWER(email) = $1 OR LOWER(username) = $1 LIMIT 1")).
		WithArgs("aperez").
		WillReturnRows(rows)

	user, err := repo.FindByIdentifier(context.Background(), " APerez ")
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", user.FullName())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryLoadSubject(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1 LIMIT 1")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "role_id", "first_name", "last_name", "email", "username", "password_hash", "position", "status", "last_login_at", "created_at", "updated_at"}).
			AddRow("u1", "c1", "r1", "Ana", "Pérez", "ana@example.com", "aperez", "hash", "", true, nil, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, slug, description, status, created_at, updated_at FROM roles WHERE id = $1")).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "description", "status", "created_at", "updated_at"}).
			AddRow("r1", "Auditor", "auditor", "", true, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM permissions p JOIN role_permissions rp ON rp.permission_id = p.id")).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "key", "name", "resource", "description", "status", "created_at", "updated_at"}).
			AddRow("p1", "get.user", "Ver usuarios", "user", "", true, now, now).
			AddRow("p2", "create.user", "Crear usuarios", "user", "", false, now, now))

	user, err := repo.LoadSubject(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, user.Role)
	assert.Equal(t, "Auditor", user.Role.Name)
	require.Len(t, user.Role.Permissions, 2)
	assert.False(t, user.Role.Permissions[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryList(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	active := true
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + userColumns + " FROM users WHERE 1=1 AND company_id = $1 AND status = $2 ORDER BY created_at DESC LIMIT 20 OFFSET 0")).
		WithArgs("c1", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "role_id", "first_name", "last_name", "email", "username", "password_hash", "position", "status", "last_login_at", "created_at", "updated_at"}).
			AddRow("u1", "c1", "r1", "Ana", "Pérez", "ana@example.com", "aperez", "hash", "", true, nil, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE 1=1 AND company_id = $1 AND status = $2")).
		WithArgs("c1", true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	users, total, err := repo.List(context.Background(), models.UserFilter{CompanyID: "c1", Status: &active})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleRepositoryReplacePermissions(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRoleRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM role_permissions WHERE role_id = $1")).WithArgs("r1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO role_permissions").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO role_permissions").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplacePermissions(context.Background(), "r1", []string{"p1", "p2"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditTestRepositoryReplaceControlsRollsBackOnScopeViolation(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditTestRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM audit_test_controls WHERE audit_test_id = $1")).WithArgs("t1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO audit_test_controls").
		WillReturnError(&pq.Error{Code: "23503", Constraint: "fk_audit_test_controls_scope"})
	mock.ExpectRollback()

	err := repo.ReplaceControls(context.Background(), &models.AuditTest{ID: "t1", AuditProgramID: "a1"}, []models.ProcessControl{{ProcessID: "p1", ControlID: "k1"}})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogRepositoryCreateStoresNullSnapshots(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditLogRepository(db)

	userID := "u1"
	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(sqlmock.AnyArg(), &userID, models.AuditActionDelete, "risk", nil, `{"name":"Fraude"}`, nil, "127.0.0.1", "test", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), &models.AuditLog{
		UserID:    &userID,
		Action:    models.AuditActionDelete,
		Resource:  "risk",
		OldValues: models.RawJSON(`{"name":"Fraude"}`),
		IPAddress: "127.0.0.1",
		UserAgent: "test",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryCreateAndGet(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectExec("INSERT INTO report_jobs").WillReturnResult(sqlmock.NewResult(1, 1))

	job := &models.ReportJob{
		Type:      models.ReportTypeFindings,
		Params:    models.ReportJobParams{AuditProgramID: "a1", Format: models.ReportFormatCSV},
		CreatedBy: "u1",
	}
	require.NoError(t, repo.Create(context.Background(), job))
	assert.Equal(t, models.ReportStatusQueued, job.Status)

	rows := sqlmock.NewRows([]string{"id", "type", "params", "status", "progress", "result_url", "created_by", "created_at", "finished_at", "error_message"}).
		AddRow(job.ID, "findings", `{"audit_program_id":"a1","format":"csv"}`, "QUEUED", 0, nil, "u1", time.Now(), nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + reportJobColumns + " FROM report_jobs WHERE id = $1")).
		WithArgs(job.ID).
		WillReturnRows(rows)

	fetched, err := repo.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, "a1", fetched.Params.AuditProgramID)
	assert.Equal(t, models.ReportFormatCSV, fetched.Params.Format)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	now := time.Now()
	status := models.ReportStatusFinished
	progress := 100
	result := "/api/v1/reports/download?token=abc"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE report_jobs SET status = $1, progress = $2, result_url = $3, finished_at = $4 WHERE id = $5")).
		WithArgs(status, progress, result, now, "job-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), "job-1", UpdateReportJobParams{
		Status:     &status,
		Progress:   &progress,
		ResultURL:  &result,
		FinishedAt: &now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepositoryUpdateWithoutChanges(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()

	require.NoError(t, NewReportRepository(db).Update(context.Background(), "job-1", UpdateReportJobParams{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepositoryCounts(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY f.classification")).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"key", "total"}).AddRow("Crítico", 2).AddRow("Menor", 5))

	counts, err := repo.FindingsByClassification(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, []StatusCount{{Key: "Crítico", Total: 2}, {Key: "Menor", Total: 5}}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	var dest map[string]int

	assert.ErrorIs(t, repo.Get(context.Background(), "perm:u1", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(context.Background(), "perm:u1", map[string]int{"a": 1}, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(context.Background(), "perm:*"))
}
