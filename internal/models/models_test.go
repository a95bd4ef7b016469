package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRiskScoreAndLevel(t *testing.T) {
	cases := []struct {
		probability RiskProbability
		impact      RiskImpact
		score       int
		level       RiskLevel
	}{
		{ProbabilityVeryLow, ImpactVeryLow, 1, RiskLevelLow},
		{ProbabilityLow, ImpactLow, 4, RiskLevelLow},
		{ProbabilityMedium, ImpactMedium, 9, RiskLevelModerate},
		{ProbabilityHigh, ImpactHigh, 16, RiskLevelHigh},
		{ProbabilityVeryHigh, ImpactHigh, 20, RiskLevelExtreme},
		{ProbabilityVeryHigh, ImpactVeryHigh, 25, RiskLevelExtreme},
		{"desconocida", ImpactHigh, 0, ""},
	}
	for _, tc := range cases {
		risk := Risk{Probability: tc.probability, Impact: tc.impact}
		assert.Equal(t, tc.score, risk.Score(), "%s x %s", tc.probability, tc.impact)
		assert.Equal(t, tc.level, risk.Level(), "%s x %s", tc.probability, tc.impact)
	}
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Ana Pérez", User{FirstName: " Ana ", LastName: "Pérez"}.FullName())
	assert.Equal(t, "Ana", User{FirstName: "Ana"}.FullName())
	assert.Equal(t, "", User{}.FullName())
}

func TestAuditProgramPlannedHours(t *testing.T) {
	program := AuditProgram{ID: "p1"}
	participants := []AuditParticipant{
		{AuditProgramID: "p1", UserID: "u1", PlannedHours: 12.5},
		{AuditProgramID: "p1", UserID: "u2", PlannedHours: 7.5},
		{AuditProgramID: "p2", UserID: "u3", PlannedHours: 40},
	}
	assert.InDelta(t, 20.0, program.PlannedHours(participants), 0.001)
	assert.Zero(t, program.PlannedHours(nil))
}

func TestActionPlanProgress(t *testing.T) {
	plan := ActionPlan{}
	assert.Equal(t, 0, plan.Progress(nil))

	tasks := []Task{
		{Progress: 100, Status: WorkCompleted},
		{Progress: 50, Status: WorkInProgress},
		{Progress: 0, Status: WorkCancelled},
	}
	assert.Equal(t, 75, plan.Progress(tasks))
}

func TestFindingIsNonConformity(t *testing.T) {
	assert.True(t, AuditFinding{FindingType: FindingNonConforming}.IsNonConformity())
	assert.False(t, AuditFinding{FindingType: FindingConforming}.IsNonConformity())
}

func TestTaskOverdue(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	due := now.Add(-24 * time.Hour)
	assert.True(t, Task{DueDate: due, Status: WorkPending}.Overdue(now))
	assert.False(t, Task{DueDate: due, Status: WorkCompleted}.Overdue(now))
	assert.False(t, Task{DueDate: now.Add(time.Hour), Status: WorkInProgress}.Overdue(now))
}

func TestNewPaginationDefaults(t *testing.T) {
	p := NewPagination(ListOptions{Page: 0, PageSize: 500}, 42)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)
	assert.Equal(t, 42, p.TotalCount)
}

func TestRefreshTokenUsable(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, (&RefreshToken{ExpiresAt: now.Add(time.Minute)}).Usable(now))
	assert.False(t, (&RefreshToken{ExpiresAt: now}).Usable(now))
	assert.False(t, (&RefreshToken{ExpiresAt: now.Add(time.Hour), Revoked: true}).Usable(now))
	assert.False(t, (*RefreshToken)(nil).Usable(now))
}

func TestReportHelpers(t *testing.T) {
	params := ReportJobParams{AuditProgramID: "p1", CompanyID: "c1"}

	assert.Equal(t, "p1", params.Subject(ReportTypeFindings))
	assert.Equal(t, "c1", params.Subject(ReportTypeRiskMatrix))
	assert.Equal(t, "application/pdf", ReportFormatPDF.ContentType())
	assert.Equal(t, "text/csv; charset=utf-8", ReportFormatCSV.ContentType())
	assert.True(t, ReportStatusFailed.Terminal())
	assert.False(t, ReportStatusProcessing.Terminal())
}
