package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/audit-mgmt-api/internal/dto"
)

type fakeDashboardSrv struct {
	summary   *dto.DashboardSummary
	hit       bool
	err       error
	companyID string
}

func (f *fakeDashboardSrv) Summary(_ context.Context, companyID string) (*dto.DashboardSummary, bool, error) {
	f.companyID = companyID
	return f.summary, f.hit, f.err
}

func TestDashboardHandlerSummaryReportsCacheHit(t *testing.T) {
	srv := &fakeDashboardSrv{
		summary: &dto.DashboardSummary{CompanyID: "c-1", OverdueTasks: 4, RisksByLevel: map[string]int{"Alto": 2}},
		hit:     true,
	}
	c, w := newGinContext(http.MethodGet, "/dashboard?company_id=c-1", nil)

	NewDashboardHandler(srv).Summary(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "c-1", srv.companyID)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, true, envelope.Meta["cache_hit"])

	var summary dto.DashboardSummary
	require.NoError(t, json.Unmarshal(envelope.Data, &summary))
	assert.Equal(t, 4, summary.OverdueTasks)
	assert.Equal(t, 2, summary.RisksByLevel["Alto"])
}

func TestDashboardHandlerSummaryError(t *testing.T) {
	c, w := newGinContext(http.MethodGet, "/dashboard", nil)

	NewDashboardHandler(&fakeDashboardSrv{err: errors.New("boom")}).Summary(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, w))
}
