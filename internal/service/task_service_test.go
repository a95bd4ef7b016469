package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

type fakeTasks struct {
	tasks map[string]*models.Task
}

func (f *fakeTasks) List(context.Context, models.TaskFilter) ([]models.Task, int, error) {
	out := make([]models.Task, 0, len(f.tasks))
	for _, task := range f.tasks {
		out = append(out, *task)
	}
	return out, len(out), nil
}

func (f *fakeTasks) FindByID(_ context.Context, id string) (*models.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, notFound()
	}
	copied := *task
	return &copied, nil
}

func (f *fakeTasks) Create(_ context.Context, task *models.Task) error {
	task.ID = "task-1"
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeTasks) Update(_ context.Context, task *models.Task) error {
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeTasks) Cancel(_ context.Context, id string) error {
	f.tasks[id].Status = models.WorkCancelled
	return nil
}

func newTaskFixture(status models.WorkStatus) (*TaskService, *fakeTasks) {
	plans := newFakePlans()
	plans.plans["plan-1"] = &models.ActionPlan{ID: "plan-1", Status: status}
	tasks := &fakeTasks{tasks: map[string]*models.Task{}}
	svc := NewTaskService(tasks, plans, nil, nil, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, tasks
}

func TestTaskCreateRejectsClosedPlan(t *testing.T) {
	for _, status := range []models.WorkStatus{models.WorkCancelled, models.WorkCompleted} {
		svc, _ := newTaskFixture(status)
		_, err := svc.Create(context.Background(), "plan-1", TaskRequest{Name: "Revisar", DueDate: time.Now()}, RequestMeta{})
		assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code, string(status))
	}
}

func TestTaskCompletionForcesFullProgress(t *testing.T) {
	svc, tasks := newTaskFixture(models.WorkInProgress)
	ctx := context.Background()

	task, err := svc.Create(ctx, "plan-1", TaskRequest{Name: "Revisar", DueDate: time.Now(), Progress: 30}, RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, models.WorkPending, task.Status)
	assert.Nil(t, task.CompletedAt)

	updated, err := svc.Update(ctx, task.ID, TaskRequest{Name: "Revisar", DueDate: time.Now(), Progress: 60, Status: "Completado"}, RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, 100, updated.Progress)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, 2026, updated.CompletedAt.Year())
	assert.Equal(t, 100, tasks.tasks[task.ID].Progress)
}

func TestTaskValidation(t *testing.T) {
	svc, _ := newTaskFixture(models.WorkPending)
	ctx := context.Background()

	_, err := svc.Create(ctx, "plan-1", TaskRequest{Name: "Revisar", DueDate: time.Now(), Progress: 120}, RequestMeta{})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(ctx, "missing", TaskRequest{Name: "Revisar", DueDate: time.Now()}, RequestMeta{})
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, _, err = svc.List(ctx, models.TaskFilter{ActionPlanID: "missing"})
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
