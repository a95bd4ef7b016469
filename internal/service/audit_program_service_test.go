package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/audit-mgmt-api/internal/dto"
	"github.com/noah-isme/audit-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

type fakeProgramRepo struct {
	program      models.AuditProgram
	participants []models.AuditParticipant
	scope        []models.AuditProcessControl
	replaced     int
}

func (f *fakeProgramRepo) List(context.Context, models.AuditProgramFilter) ([]models.AuditProgram, int, error) {
	return []models.AuditProgram{f.program}, 1, nil
}

func (f *fakeProgramRepo) FindByID(_ context.Context, id string) (*models.AuditProgram, error) {
	if id != f.program.ID {
		return nil, notFound()
	}
	copied := f.program
	return &copied, nil
}

func (f *fakeProgramRepo) ExistsBySlug(context.Context, string, string) (bool, error) {
	return false, nil
}

func (f *fakeProgramRepo) Create(context.Context, *models.AuditProgram) error { return nil }

func (f *fakeProgramRepo) Update(context.Context, *models.AuditProgram) error { return nil }

func (f *fakeProgramRepo) Delete(context.Context, string) error { return nil }

func (f *fakeProgramRepo) Participants(context.Context, string) ([]models.AuditParticipant, error) {
	return f.participants, nil
}

func (f *fakeProgramRepo) ReplaceParticipants(_ context.Context, _ string, participants []models.AuditParticipant) error {
	f.participants = participants
	f.replaced++
	return nil
}

func (f *fakeProgramRepo) Scope(context.Context, string) ([]models.AuditProcessControl, error) {
	return f.scope, nil
}

func (f *fakeProgramRepo) ReplaceScope(_ context.Context, _ string, pairs []models.AuditProcessControl) error {
	f.scope = pairs
	f.replaced++
	return nil
}

// catalogPairs is the process_controls table keyed by process.
type catalogPairs []models.ProcessControl

func (c catalogPairs) PairsForProcesses(_ context.Context, processIDs []string) ([]models.ProcessControl, error) {
	wanted := make(map[string]bool, len(processIDs))
	for _, id := range processIDs {
		wanted[id] = true
	}
	var out []models.ProcessControl
	for _, p := range c {
		if wanted[p.ProcessID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func newProgramFixture() (*AuditProgramService, *fakeProgramRepo, *auditRecorder) {
	repo := &fakeProgramRepo{program: models.AuditProgram{ID: programID, CompanyID: companyID, Name: "Auditoría de compras"}}
	catalog := catalogPairs{{ProcessID: processA, ControlID: controlA}}
	rec := &auditRecorder{}
	return NewAuditProgramService(repo, catalog, activeUsers{userA: true, userB: true}, rec, nil, nil), repo, rec
}

func TestAuditProgramSetScopeAcceptsCatalogPairs(t *testing.T) {
	svc, repo, rec := newProgramFixture()

	scope, err := svc.SetScope(context.Background(), programID, pairsRequest([2]string{processA, controlA}, [2]string{processA, controlA}), RequestMeta{ActorID: userA})
	require.NoError(t, err)
	assert.Equal(t, []models.AuditProcessControl{{AuditProgramID: programID, ProcessID: processA, ControlID: controlA}}, scope)
	assert.Equal(t, scope, repo.scope)
	assert.Equal(t, []string{models.AuditActionLink + ":audit_process_controls"}, rec.actions())
}

func TestAuditProgramSetScopeRejectsUnknownPair(t *testing.T) {
	svc, repo, rec := newProgramFixture()

	_, err := svc.SetScope(context.Background(), programID, pairsRequest([2]string{processA, controlA}, [2]string{processA, controlB}), RequestMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrOutOfScope.Code, appErr.Code)
	assert.Equal(t, 422, appErr.Status)
	assert.Zero(t, repo.replaced)
	assert.Empty(t, rec.logs)
}

func TestAuditProgramSetScopeUnknownProgram(t *testing.T) {
	svc, _, _ := newProgramFixture()

	_, err := svc.SetScope(context.Background(), eventID, pairsRequest(), RequestMeta{})
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAuditProgramSetParticipantsValidation(t *testing.T) {
	tests := []struct {
		name         string
		participants []dto.ParticipantRequest
		code         string
	}{
		{
			name:         "negative hours",
			participants: []dto.ParticipantRequest{{UserID: userA, PlannedHours: -1}},
			code:         appErrors.ErrValidation.Code,
		},
		{
			name:         "unknown user",
			participants: []dto.ParticipantRequest{{UserID: userA, PlannedHours: 8}, {UserID: findingID, PlannedHours: 8}},
			code:         appErrors.ErrValidation.Code,
		},
		{
			name:         "duplicate user",
			participants: []dto.ParticipantRequest{{UserID: userA, PlannedHours: 8}, {UserID: userA, PlannedHours: 4}},
			code:         appErrors.ErrValidation.Code,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, _ := newProgramFixture()

			_, err := svc.SetParticipants(context.Background(), programID, dto.ParticipantsRequest{Participants: tc.participants}, RequestMeta{})
			require.Error(t, err)
			assert.Equal(t, tc.code, appErrors.FromError(err).Code)
			assert.Zero(t, repo.replaced)
		})
	}
}

func TestAuditProgramGetSumsPlannedHours(t *testing.T) {
	svc, _, _ := newProgramFixture()
	ctx := context.Background()

	_, err := svc.SetParticipants(ctx, programID, dto.ParticipantsRequest{Participants: []dto.ParticipantRequest{
		{UserID: userA, Role: " Líder ", PlannedHours: 40},
		{UserID: userB, PlannedHours: 12.5},
	}}, RequestMeta{})
	require.NoError(t, err)

	detail, err := svc.Get(ctx, programID)
	require.NoError(t, err)
	assert.Len(t, detail.Participants, 2)
	assert.Equal(t, "Líder", detail.Participants[0].Role)
	assert.InDelta(t, 52.5, detail.PlannedHours, 0.001)
}
