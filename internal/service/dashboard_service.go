package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/audit-mgmt-api/internal/dto"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
	"github.com/noah-isme/audit-mgmt-api/internal/repository"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

type dashboardRepository interface {
	FindingsByClassification(ctx context.Context, companyID string) ([]repository.StatusCount, error)
	FindingsByType(ctx context.Context, companyID string) ([]repository.StatusCount, error)
	ActionPlansByStatus(ctx context.Context, companyID string) ([]repository.StatusCount, error)
	AuditProgramsByStatus(ctx context.Context, companyID string) ([]repository.StatusCount, error)
	OverdueTasks(ctx context.Context, companyID string, now time.Time) (int, error)
}

type activeRiskLister interface {
	ListActiveByCompany(ctx context.Context, companyID string) ([]models.Risk, error)
}

// DashboardService aggregates landing-page counters with a short cache.
type DashboardService struct {
	repo   dashboardRepository
	risks  activeRiskLister
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService constructs the service.
func NewDashboardService(repo dashboardRepository, risks activeRiskLister, cache *CacheService, ttl time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &DashboardService{repo: repo, risks: risks, cache: cache, ttl: ttl, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Summary returns counters for one company, or all companies when companyID is empty.
// The boolean reports a cache hit.
func (s *DashboardService) Summary(ctx context.Context, companyID string) (*dto.DashboardSummary, bool, error) {
	key := dashboardCachePrefix + companyID
	if companyID == "" {
		key = dashboardCachePrefix + "all"
	}
	var cached dto.DashboardSummary
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	summary := &dto.DashboardSummary{CompanyID: companyID, GeneratedAt: s.now()}
	var err error
	if summary.FindingsByClassification, err = s.bucket(ctx, s.repo.FindingsByClassification, companyID); err != nil {
		return nil, false, err
	}
	if summary.FindingsByType, err = s.bucket(ctx, s.repo.FindingsByType, companyID); err != nil {
		return nil, false, err
	}
	if summary.ActionPlansByStatus, err = s.bucket(ctx, s.repo.ActionPlansByStatus, companyID); err != nil {
		return nil, false, err
	}
	if summary.AuditProgramsByStatus, err = s.bucket(ctx, s.repo.AuditProgramsByStatus, companyID); err != nil {
		return nil, false, err
	}
	if summary.OverdueTasks, err = s.repo.OverdueTasks(ctx, companyID, summary.GeneratedAt); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count overdue tasks")
	}

	risks, err := s.risks.ListActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load risks")
	}
	summary.RisksByLevel = map[string]int{}
	for _, risk := range risks {
		if level := risk.Level(); level != "" {
			summary.RisksByLevel[string(level)]++
		}
	}

	_ = s.cache.Set(ctx, key, summary, s.ttl)
	return summary, false, nil
}

// Invalidate drops every cached summary.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, dashboardCachePrefix+"*"); err != nil {
		s.logger.Warn("dashboard cache invalidate failed", zap.Error(err))
	}
}

func (s *DashboardService) bucket(ctx context.Context, load func(context.Context, string) ([]repository.StatusCount, error), companyID string) (map[string]int, error) {
	rows, err := load(ctx, companyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dashboard counters")
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Total
	}
	return out, nil
}
