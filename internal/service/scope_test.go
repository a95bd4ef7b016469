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

type fakePrograms struct {
	participants []models.AuditParticipant
	scope        []models.AuditProcessControl
}

func (f *fakePrograms) FindByID(_ context.Context, id string) (*models.AuditProgram, error) {
	if id != programID {
		return nil, notFound()
	}
	return &models.AuditProgram{ID: programID, Name: "Auditoría de compras"}, nil
}

func (f *fakePrograms) Participants(context.Context, string) ([]models.AuditParticipant, error) {
	return f.participants, nil
}

func (f *fakePrograms) Scope(context.Context, string) ([]models.AuditProcessControl, error) {
	return f.scope, nil
}

type fakeAuditTests struct {
	test         models.AuditTest
	participants []string
	controls     []models.ProcessControl
	replaced     int
}

func (f *fakeAuditTests) List(context.Context, models.AuditTestFilter) ([]models.AuditTest, int, error) {
	return []models.AuditTest{f.test}, 1, nil
}

func (f *fakeAuditTests) FindByID(_ context.Context, id string) (*models.AuditTest, error) {
	if id != f.test.ID {
		return nil, notFound()
	}
	copied := f.test
	return &copied, nil
}

func (f *fakeAuditTests) Create(_ context.Context, test *models.AuditTest) error {
	test.ID = testID
	return nil
}

func (f *fakeAuditTests) Update(context.Context, *models.AuditTest) error { return nil }

func (f *fakeAuditTests) Delete(context.Context, string) error { return nil }

func (f *fakeAuditTests) Participants(context.Context, string) ([]models.AuditTestParticipant, error) {
	out := make([]models.AuditTestParticipant, len(f.participants))
	for i, id := range f.participants {
		out[i] = models.AuditTestParticipant{AuditTestID: f.test.ID, UserID: id}
	}
	return out, nil
}

func (f *fakeAuditTests) ReplaceParticipants(_ context.Context, _ *models.AuditTest, ids []string) error {
	f.participants = ids
	f.replaced++
	return nil
}

func (f *fakeAuditTests) Controls(context.Context, string) ([]models.AuditTestControl, error) {
	out := make([]models.AuditTestControl, len(f.controls))
	for i, p := range f.controls {
		out[i] = models.AuditTestControl{AuditTestID: f.test.ID, AuditProgramID: f.test.AuditProgramID, ProcessID: p.ProcessID, ControlID: p.ControlID}
	}
	return out, nil
}

func (f *fakeAuditTests) ReplaceControls(_ context.Context, _ *models.AuditTest, pairs []models.ProcessControl) error {
	f.controls = pairs
	f.replaced++
	return nil
}

func newScopeFixture() (*AuditTestService, *fakeAuditTests, *auditRecorder) {
	programs := &fakePrograms{
		participants: []models.AuditParticipant{{AuditProgramID: programID, UserID: userA, PlannedHours: 40}},
		scope:        []models.AuditProcessControl{{AuditProgramID: programID, ProcessID: processA, ControlID: controlA}},
	}
	tests := &fakeAuditTests{test: models.AuditTest{ID: testID, AuditProgramID: programID, Name: "Revisión de órdenes"}}
	rec := &auditRecorder{}
	return NewAuditTestService(tests, programs, rec, nil, nil), tests, rec
}

func pairsRequest(pairs ...[2]string) dto.PairsRequest {
	req := dto.PairsRequest{}
	for _, p := range pairs {
		req.Pairs = append(req.Pairs, dto.PairRequest{ProcessID: p[0], ControlID: p[1]})
	}
	return req
}

func TestAuditTestSetControlsWithinProgramScope(t *testing.T) {
	svc, tests, rec := newScopeFixture()

	pairs, err := svc.SetControls(context.Background(), testID, pairsRequest([2]string{processA, controlA}, [2]string{processA, controlA}), RequestMeta{ActorID: userA})
	require.NoError(t, err)
	assert.Len(t, pairs, 1)
	assert.Equal(t, 1, tests.replaced)
	assert.Equal(t, []string{models.AuditActionLink + ":audit_test_controls"}, rec.actions())
}

func TestAuditTestSetControlsOutsideScope(t *testing.T) {
	svc, tests, rec := newScopeFixture()

	_, err := svc.SetControls(context.Background(), testID, pairsRequest([2]string{processA, controlB}), RequestMeta{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrOutOfScope.Code, appErr.Code)
	assert.Equal(t, 422, appErr.Status)
	assert.Zero(t, tests.replaced)
	assert.Empty(t, rec.logs)
}

func TestAuditTestSetParticipantsRequiresProgramMembership(t *testing.T) {
	svc, tests, _ := newScopeFixture()
	ctx := context.Background()

	_, err := svc.SetParticipants(ctx, testID, dto.IDsRequest{IDs: []string{userA, userB}}, RequestMeta{})
	assert.Equal(t, appErrors.ErrOutOfScope.Code, appErrors.FromError(err).Code)

	ids, err := svc.SetParticipants(ctx, testID, dto.IDsRequest{IDs: []string{userA}}, RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, []string{userA}, ids)
	assert.Equal(t, []string{userA}, tests.participants)

	ids, err = svc.SetParticipants(ctx, testID, dto.IDsRequest{}, RequestMeta{})
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAuditTestUpdateCannotChangeProgram(t *testing.T) {
	svc, _, _ := newScopeFixture()

	_, err := svc.Update(context.Background(), testID, AuditTestRequest{AuditProgramID: eventID, Name: "Otra"}, RequestMeta{})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

type fakeFindings struct {
	finding  models.AuditFinding
	controls []models.ProcessControl
}

func (f *fakeFindings) List(context.Context, models.FindingFilter) ([]models.AuditFinding, int, error) {
	return nil, 0, nil
}

func (f *fakeFindings) FindByID(_ context.Context, id string) (*models.AuditFinding, error) {
	if id != f.finding.ID {
		return nil, notFound()
	}
	copied := f.finding
	return &copied, nil
}

func (f *fakeFindings) Create(context.Context, *models.AuditFinding) error { return nil }

func (f *fakeFindings) Update(context.Context, *models.AuditFinding) error { return nil }

func (f *fakeFindings) Disable(context.Context, string) error { return nil }

func (f *fakeFindings) Controls(context.Context, string) ([]models.AuditFindingControl, error) {
	return nil, nil
}

func (f *fakeFindings) ReplaceControls(_ context.Context, _ *models.AuditFinding, pairs []models.ProcessControl) error {
	f.controls = pairs
	return nil
}

func TestFindingSetControlsLimitedToTestControls(t *testing.T) {
	tests := &fakeAuditTests{
		test:     models.AuditTest{ID: testID, AuditProgramID: programID},
		controls: []models.ProcessControl{{ProcessID: processA, ControlID: controlA}},
	}
	findings := &fakeFindings{finding: models.AuditFinding{ID: findingID, AuditTestID: testID, AuditProgramID: programID}}
	svc := NewFindingService(findings, tests, nil, nil, nil)
	ctx := context.Background()

	_, err := svc.SetControls(ctx, findingID, pairsRequest([2]string{processA, controlB}), RequestMeta{})
	assert.Equal(t, appErrors.ErrOutOfScope.Code, appErrors.FromError(err).Code)
	assert.Empty(t, findings.controls)

	pairs, err := svc.SetControls(ctx, findingID, pairsRequest([2]string{processA, controlA}), RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, []models.ProcessControl{{ProcessID: processA, ControlID: controlA}}, pairs)

	_, err = svc.SetControls(ctx, eventID, pairsRequest(), RequestMeta{})
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
