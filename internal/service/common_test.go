package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{in: "Gestión de Compras", want: "gestion-de-compras"},
		{in: "  Área   Financiera  ", want: "area-financiera"},
		{in: "Control #1: Conciliación", want: "control-1-conciliacion"},
		{in: "Ñandú", want: "nandu"},
		{in: "!!!", want: ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, slugify(tc.in), tc.in)
	}
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, uniqueIDs([]string{" c", "a", "", "b", "a "}))
	assert.Empty(t, uniqueIDs(nil))
}

func TestUniquePairsAndScope(t *testing.T) {
	pairs := uniquePairs([]models.ProcessControl{
		{ProcessID: "p1", ControlID: "c1"},
		{ProcessID: "p1", ControlID: "c2"},
		{ProcessID: "p1", ControlID: "c1"},
	})
	require.Len(t, pairs, 2)

	allowed := pairSet([]models.ProcessControl{{ProcessID: "p1", ControlID: "c1"}})
	bad := outsideScope(pairs, allowed)
	require.NotNil(t, bad)
	assert.Equal(t, "c2", bad.ControlID)
	assert.Nil(t, outsideScope(pairs[:1], allowed))

	err := outOfScopeError(bad, "the audit program scope")
	assert.Equal(t, appErrors.ErrOutOfScope.Code, appErrors.FromError(err).Code)
}

func TestClaimSlug(t *testing.T) {
	ctx := context.Background()
	taken := func(_ context.Context, slug, excludeID string) (bool, error) {
		return slug == "ventas" && excludeID != "self", nil
	}

	err := claimSlug(ctx, taken, "", "", "process")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	err = claimSlug(ctx, taken, "ventas", "", "process")
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	assert.NoError(t, claimSlug(ctx, taken, "ventas", "self", "process"))
	assert.NoError(t, claimSlug(ctx, taken, "compras", "", "process"))

	failing := func(context.Context, string, string) (bool, error) { return false, errors.New("db down") }
	err = claimSlug(ctx, failing, "compras", "", "process")
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestLoadErrorMapsMissingRows(t *testing.T) {
	err := loadError(notFound(), "risk")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "risk not found", appErr.Message)

	conflict := appErrors.Clone(appErrors.ErrConflict, "duplicate")
	assert.Same(t, conflict, writeError(conflict, "ignored"))
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(writeError(errors.New("boom"), "x")).Code)
}

func TestAuditTrailRecordsSnapshots(t *testing.T) {
	rec := &auditRecorder{}
	trail := newAuditTrail(rec, nil)
	trail.record(context.Background(), RequestMeta{ActorID: userA, IP: "10.0.0.1", UserAgent: "test"},
		models.AuditActionUpdate, "risk", "r1", map[string]string{"name": "old"}, map[string]string{"name": "new"})

	require.Len(t, rec.logs, 1)
	entry := rec.logs[0]
	require.NotNil(t, entry.UserID)
	assert.Equal(t, userA, *entry.UserID)
	assert.JSONEq(t, `{"name":"old"}`, string(entry.OldValues))
	assert.JSONEq(t, `{"name":"new"}`, string(entry.NewValues))
	assert.Equal(t, "10.0.0.1", entry.IPAddress)
}
