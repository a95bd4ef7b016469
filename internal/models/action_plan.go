package models

import "time"

// PlanType tells which entity an action plan remediates.
type PlanType string

const (
	PlanTypeEvent   PlanType = "Evento"
	PlanTypeFinding PlanType = "Hallazgo"
)

// WorkStatus is shared by action plans and tasks.
type WorkStatus string

const (
	WorkPending    WorkStatus = "Pendiente"
	WorkInProgress WorkStatus = "En progreso"
	WorkCompleted  WorkStatus = "Completado"
	WorkCancelled  WorkStatus = "Cancelado"
)

// ActionPlan remediates exactly one event or one finding.
type ActionPlan struct {
	ID             string     `db:"id" json:"id"`
	PlanType       PlanType   `db:"plan_type" json:"plan_type"`
	EventID        *string    `db:"event_id" json:"event_id,omitempty"`
	AuditFindingID *string    `db:"audit_finding_id" json:"audit_finding_id,omitempty"`
	Name           string     `db:"name" json:"name"`
	Description    string     `db:"description" json:"description"`
	StartDate      time.Time  `db:"start_date" json:"start_date"`
	DueDate        time.Time  `db:"due_date" json:"due_date"`
	Status         WorkStatus `db:"status" json:"status"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// Progress averages task progress, ignoring cancelled tasks. No tasks means 0.
func (p ActionPlan) Progress(tasks []Task) int {
	var sum, count int
	for _, task := range tasks {
		if task.Status == WorkCancelled {
			continue
		}
		sum += task.Progress
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / count
}

// Task is a step of an action plan.
type Task struct {
	ID           string     `db:"id" json:"id"`
	ActionPlanID string     `db:"action_plan_id" json:"action_plan_id"`
	Name         string     `db:"name" json:"name"`
	Description  string     `db:"description" json:"description"`
	DueDate      time.Time  `db:"due_date" json:"due_date"`
	Progress     int        `db:"progress" json:"progress"`
	Status       WorkStatus `db:"status" json:"status"`
	CompletedAt  *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Overdue reports whether an open task is past its due date.
func (t Task) Overdue(now time.Time) bool {
	if t.Status == WorkCompleted || t.Status == WorkCancelled {
		return false
	}
	return now.After(t.DueDate)
}

// ActionPlanFilter captures filtering criteria for listing plans.
type ActionPlanFilter struct {
	ListOptions
	PlanType       string
	EventID        string
	AuditFindingID string
	Status         string
}

// TaskFilter captures filtering criteria for listing tasks of a plan.
type TaskFilter struct {
	ListOptions
	ActionPlanID string
	Status       string
}
