package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
	"github.com/noah-isme/audit-mgmt-api/internal/repository"
)

type fakeDashboardRepo struct {
	calls int
}

func (f *fakeDashboardRepo) FindingsByClassification(context.Context, string) ([]repository.StatusCount, error) {
	f.calls++
	return []repository.StatusCount{{Key: "Crítico", Total: 2}, {Key: "Menor", Total: 5}}, nil
}

func (f *fakeDashboardRepo) FindingsByType(context.Context, string) ([]repository.StatusCount, error) {
	return []repository.StatusCount{{Key: "No conforme", Total: 7}}, nil
}

func (f *fakeDashboardRepo) ActionPlansByStatus(context.Context, string) ([]repository.StatusCount, error) {
	return []repository.StatusCount{{Key: "Pendiente", Total: 3}}, nil
}

func (f *fakeDashboardRepo) AuditProgramsByStatus(context.Context, string) ([]repository.StatusCount, error) {
	return []repository.StatusCount{{Key: "Ejecución", Total: 1}}, nil
}

func (f *fakeDashboardRepo) OverdueTasks(context.Context, string, time.Time) (int, error) {
	return 4, nil
}

type staticRisks []models.Risk

func (s staticRisks) ListActiveByCompany(context.Context, string) ([]models.Risk, error) {
	return s, nil
}

func TestDashboardSummaryCachesPerCompany(t *testing.T) {
	repo := &fakeDashboardRepo{}
	risks := staticRisks{
		{Probability: models.ProbabilityVeryHigh, Impact: models.ImpactVeryHigh},
		{Probability: models.ProbabilityMedium, Impact: models.ImpactMedium},
		{Probability: models.ProbabilityMedium, Impact: models.ImpactHigh},
		{Probability: "", Impact: models.ImpactHigh},
	}
	store := newMemCacheRepo()
	cache := NewCacheService(store, nil, time.Minute, zap.NewNop(), true)
	svc := NewDashboardService(repo, risks, cache, time.Minute, nil)
	ctx := context.Background()

	summary, hit, err := svc.Summary(ctx, companyID)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, summary.FindingsByClassification["Crítico"])
	assert.Equal(t, 7, summary.FindingsByType["No conforme"])
	assert.Equal(t, 3, summary.ActionPlansByStatus["Pendiente"])
	assert.Equal(t, 1, summary.AuditProgramsByStatus["Ejecución"])
	assert.Equal(t, 4, summary.OverdueTasks)
	assert.Equal(t, map[string]int{"Extremo": 1, "Moderado": 1, "Alto": 1}, summary.RisksByLevel)

	cached, hit, err := svc.Summary(ctx, companyID)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, summary.RisksByLevel, cached.RisksByLevel)
	assert.Equal(t, 1, repo.calls)

	_, hit, err = svc.Summary(ctx, "")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.True(t, store.has(dashboardCachePrefix+"all"))

	svc.Invalidate(ctx)
	assert.False(t, store.has(dashboardCachePrefix+companyID))
	assert.False(t, store.has(dashboardCachePrefix+"all"))
}

func TestDashboardSummaryWithoutCache(t *testing.T) {
	repo := &fakeDashboardRepo{}
	svc := NewDashboardService(repo, staticRisks{}, nil, 0, nil)

	_, hit, err := svc.Summary(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, hit)
	_, _, err = svc.Summary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}
