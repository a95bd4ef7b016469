package seed

import (
	"context"
	"errors"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range Permissions() {
		assert.False(t, seen[p.Key], "duplicate %s", p.Key)
		seen[p.Key] = true
		assert.True(t, strings.HasSuffix(p.Key, "."+p.Resource), p.Key)
		assert.NotEmpty(t, p.Name)
	}
	assert.True(t, seen["get.audit_log"])
	assert.False(t, seen["delete.audit_log"])
	assert.True(t, seen["create.report"])
}

func TestRoles(t *testing.T) {
	roles := Roles()
	require.Len(t, roles, 3)

	admin, auditor, readOnly := roles[0], roles[1], roles[2]
	assert.Len(t, admin.Keys, len(Permissions()))

	for _, key := range readOnly.Keys {
		assert.True(t, strings.HasPrefix(key, "get."), key)
	}
	assert.Contains(t, auditor.Keys, "create.finding")
	assert.Contains(t, auditor.Keys, "get.user")
	assert.NotContains(t, auditor.Keys, "create.user")
	assert.NotContains(t, auditor.Keys, "delete.company")
}

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func idRow(id string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"}).AddRow(id)
}

func expectSeed(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	for range Permissions() {
		mock.ExpectExec("INSERT INTO permissions").WillReturnResult(sqlmock.NewResult(0, 1))
	}
	for _, role := range Roles() {
		mock.ExpectQuery("INSERT INTO roles").WithArgs(role.Name, role.Slug, role.Description).WillReturnRows(idRow("role-" + role.Slug))
		mock.ExpectExec("INSERT INTO role_permissions").WillReturnResult(sqlmock.NewResult(0, int64(len(role.Keys))))
	}
	mock.ExpectQuery("INSERT INTO companies").WillReturnRows(idRow("company-1"))
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("company-1", "role-administrador", "root@example.com", "root", sqlmock.AnyArg()).
		WillReturnRows(idRow("admin-1"))
	for _, row := range demoProcesses {
		mock.ExpectQuery("INSERT INTO processes").WillReturnRows(idRow("p-" + row.Slug))
	}
	for _, row := range demoControls {
		mock.ExpectQuery("INSERT INTO controls").WillReturnRows(idRow("c-" + row.Slug))
	}
	for _, row := range demoRisks {
		mock.ExpectQuery("INSERT INTO risks").WillReturnRows(idRow("r-" + row.Slug))
	}
	for _, pc := range demoProcessControls {
		mock.ExpectExec("INSERT INTO process_controls").WithArgs("p-"+pc.left, "c-"+pc.right).WillReturnResult(sqlmock.NewResult(0, 1))
	}
	for range demoControlRisks {
		mock.ExpectExec("INSERT INTO control_risks").WillReturnResult(sqlmock.NewResult(0, 1))
	}
	for range demoAffectedProcesses {
		mock.ExpectExec("INSERT INTO affected_processes").WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectQuery("INSERT INTO audit_programs").WithArgs("company-1").WillReturnRows(idRow("program-1"))
	mock.ExpectExec("INSERT INTO audit_participants").WithArgs("program-1", "admin-1").WillReturnResult(sqlmock.NewResult(0, 1))
	for _, pc := range demoProcessControls {
		mock.ExpectExec("INSERT INTO audit_process_controls").WithArgs("program-1", "p-"+pc.left, "c-"+pc.right).WillReturnResult(sqlmock.NewResult(0, 1))
	}
}

func TestRunSeedsInOneTransaction(t *testing.T) {
	db, mock := newMock(t)
	expectSeed(mock)
	mock.ExpectCommit()

	err := New(db, nil).Run(context.Background(), Options{AdminEmail: "Root@Example.com", AdminPassword: "s3cret-pass"})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRollsBackOnFailure(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO permissions").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := New(db, nil).Run(context.Background(), Options{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed permission get.company")
	require.NoError(t, mock.ExpectationsWereMet())
}
