package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/audit-mgmt-api/internal/dto"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

type fakePlans struct {
	plans        map[string]*models.ActionPlan
	responsibles map[string][]string
	cancelled    []string
}

func newFakePlans() *fakePlans {
	return &fakePlans{plans: map[string]*models.ActionPlan{}, responsibles: map[string][]string{}}
}

func (f *fakePlans) List(context.Context, models.ActionPlanFilter) ([]models.ActionPlan, int, error) {
	return nil, 0, nil
}

func (f *fakePlans) FindByID(_ context.Context, id string) (*models.ActionPlan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, notFound()
	}
	copied := *p
	return &copied, nil
}

func (f *fakePlans) Create(_ context.Context, plan *models.ActionPlan) error {
	plan.ID = "plan-1"
	copied := *plan
	f.plans[plan.ID] = &copied
	return nil
}

func (f *fakePlans) Update(_ context.Context, plan *models.ActionPlan) error {
	copied := *plan
	f.plans[plan.ID] = &copied
	return nil
}

func (f *fakePlans) Cancel(_ context.Context, id string) error {
	f.cancelled = append(f.cancelled, id)
	f.plans[id].Status = models.WorkCancelled
	return nil
}

func (f *fakePlans) Responsibles(_ context.Context, id string) ([]string, error) {
	return f.responsibles[id], nil
}

func (f *fakePlans) ReplaceResponsibles(_ context.Context, id string, ids []string) error {
	f.responsibles[id] = ids
	return nil
}

type fakeEvents map[string]bool

func (f fakeEvents) FindByID(_ context.Context, id string) (*models.Event, error) {
	if !f[id] {
		return nil, notFound()
	}
	return &models.Event{ID: id}, nil
}

type findingLookup map[string]bool

func (f findingLookup) FindByID(_ context.Context, id string) (*models.AuditFinding, error) {
	if !f[id] {
		return nil, notFound()
	}
	return &models.AuditFinding{ID: id}, nil
}

type fakeTaskList []models.Task

func (f fakeTaskList) ListByPlans(context.Context, []string) ([]models.Task, error) {
	return f, nil
}

func newPlanFixture(tasks fakeTaskList) (*ActionPlanService, *fakePlans) {
	plans := newFakePlans()
	svc := NewActionPlanService(plans, fakeEvents{eventID: true}, findingLookup{findingID: true}, tasks, activeUsers{userA: true}, nil, nil, nil)
	return svc, plans
}

func planRequest(planType, event, finding string) ActionPlanRequest {
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	return ActionPlanRequest{
		PlanType:       planType,
		EventID:        event,
		AuditFindingID: finding,
		Name:           "Corregir conciliaciones",
		StartDate:      start,
		DueDate:        start.AddDate(0, 1, 0),
	}
}

func TestActionPlanTargetMustMatchType(t *testing.T) {
	svc, _ := newPlanFixture(nil)
	ctx := context.Background()

	cases := []struct {
		name string
		req  ActionPlanRequest
		code string
	}{
		{"event without event id", planRequest("Evento", "", ""), appErrors.ErrValidation.Code},
		{"event with finding id", planRequest("Evento", eventID, findingID), appErrors.ErrValidation.Code},
		{"finding without finding id", planRequest("Hallazgo", "", ""), appErrors.ErrValidation.Code},
		{"finding with event id", planRequest("Hallazgo", eventID, findingID), appErrors.ErrValidation.Code},
		{"unknown event", planRequest("Evento", userB, ""), appErrors.ErrNotFound.Code},
		{"unknown finding", planRequest("Hallazgo", "", userB), appErrors.ErrNotFound.Code},
	}
	for _, tc := range cases {
		_, err := svc.Create(ctx, tc.req, RequestMeta{})
		require.Error(t, err, tc.name)
		assert.Equal(t, tc.code, appErrors.FromError(err).Code, tc.name)
	}
}

func TestActionPlanCreateForFinding(t *testing.T) {
	svc, _ := newPlanFixture(nil)

	plan, err := svc.Create(context.Background(), planRequest("Hallazgo", "", findingID), RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, models.PlanTypeFinding, plan.PlanType)
	require.NotNil(t, plan.AuditFindingID)
	assert.Equal(t, findingID, *plan.AuditFindingID)
	assert.Nil(t, plan.EventID)
	assert.Equal(t, models.WorkPending, plan.Status)
}

func TestActionPlanUpdateSwitchesTarget(t *testing.T) {
	svc, plans := newPlanFixture(nil)
	ctx := context.Background()
	plan, err := svc.Create(ctx, planRequest("Hallazgo", "", findingID), RequestMeta{})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, plan.ID, planRequest("Evento", eventID, ""), RequestMeta{})
	require.NoError(t, err)
	assert.Nil(t, updated.AuditFindingID)
	require.NotNil(t, plans.plans[plan.ID].EventID)
	assert.Equal(t, eventID, *plans.plans[plan.ID].EventID)
}

func TestActionPlanGetComputesProgress(t *testing.T) {
	tasks := fakeTaskList{
		{ID: "t1", Progress: 100, Status: models.WorkCompleted},
		{ID: "t2", Progress: 50, Status: models.WorkInProgress},
		{ID: "t3", Progress: 0, Status: models.WorkCancelled},
	}
	svc, _ := newPlanFixture(tasks)
	ctx := context.Background()
	plan, err := svc.Create(ctx, planRequest("Evento", eventID, ""), RequestMeta{})
	require.NoError(t, err)

	detail, err := svc.Get(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 75, detail.Progress)
	assert.Len(t, detail.Tasks, 3)
}

func TestActionPlanSetResponsiblesRequiresActiveUsers(t *testing.T) {
	svc, plans := newPlanFixture(nil)
	ctx := context.Background()
	plan, err := svc.Create(ctx, planRequest("Evento", eventID, ""), RequestMeta{})
	require.NoError(t, err)

	_, err = svc.SetResponsibles(ctx, plan.ID, dto.IDsRequest{IDs: []string{userA, userB}}, RequestMeta{})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	ids, err := svc.SetResponsibles(ctx, plan.ID, dto.IDsRequest{IDs: []string{userA, userA}}, RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, []string{userA}, ids)
	assert.Equal(t, []string{userA}, plans.responsibles[plan.ID])
}

func TestActionPlanDeleteCancels(t *testing.T) {
	svc, plans := newPlanFixture(nil)
	ctx := context.Background()
	plan, err := svc.Create(ctx, planRequest("Evento", eventID, ""), RequestMeta{})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, plan.ID, RequestMeta{}))
	assert.Equal(t, []string{plan.ID}, plans.cancelled)
	assert.Equal(t, models.WorkCancelled, plans.plans[plan.ID].Status)
}
