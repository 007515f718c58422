package service

import (
	"context"
	"testing"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/websocket"
	"backend/internal/workflow"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The verdict path is exercised against in-memory fakes: every dependency is
// an interface, so the conflict and ledger semantics are testable without a
// database.

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type advanceCall struct {
	fromStatus, fromOffice string
	toStatus, toOffice     string
}

type fakeRequestRepo struct {
	request   model.TravelRequest
	advances  []advanceCall
	advanceOK bool
}

func (f *fakeRequestRepo) Create(ctx context.Context, req *model.TravelRequest) error { return nil }

func (f *fakeRequestRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.TravelRequest, error) {
	r := f.request
	return &r, nil
}

func (f *fakeRequestRepo) FindByIDWithOwner(ctx context.Context, id uuid.UUID) (*model.TravelRequest, error) {
	r := f.request
	return &r, nil
}

func (f *fakeRequestRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.TravelRequest, error) {
	r := f.request
	return &r, nil
}

func (f *fakeRequestRepo) ListAll(ctx context.Context) ([]model.TravelRequest, error) {
	return []model.TravelRequest{f.request}, nil
}

func (f *fakeRequestRepo) ListPage(ctx context.Context, limit, offset int) ([]model.TravelRequest, error) {
	return []model.TravelRequest{f.request}, nil
}

func (f *fakeRequestRepo) AdvanceState(ctx context.Context, id uuid.UUID, fromStatus, fromOffice, toStatus, toOffice string) (bool, error) {
	f.advances = append(f.advances, advanceCall{fromStatus, fromOffice, toStatus, toOffice})
	if !f.advanceOK {
		return false, nil
	}
	f.request.Status = toStatus
	f.request.CurrentOffice = toOffice
	return true, nil
}

type fakeApprovalRepo struct {
	created []model.Approval
}

func (f *fakeApprovalRepo) Create(ctx context.Context, entry *model.Approval) error {
	f.created = append(f.created, *entry)
	return nil
}

func (f *fakeApprovalRepo) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]model.Approval, error) {
	return f.created, nil
}

func (f *fakeApprovalRepo) ListRecent(ctx context.Context, limit int) ([]model.Approval, error) {
	return f.created, nil
}

var (
	_ repository.RequestRepository  = (*fakeRequestRepo)(nil)
	_ repository.ApprovalRepository = (*fakeApprovalRepo)(nil)
)

func verdictFixture(office string, advanceOK bool) (*fakeRequestRepo, *fakeApprovalRepo, VerdictService) {
	requests := &fakeRequestRepo{
		request: model.TravelRequest{
			ID:            uuid.New(),
			UserID:        uuid.New(),
			Title:         "Field data gathering",
			Status:        workflow.PendingStatus(office),
			CurrentOffice: office,
		},
		advanceOK: advanceOK,
	}
	approvals := &fakeApprovalRepo{}
	svc := NewVerdictService(stubTxManager{}, requests, approvals, websocket.NewHub())
	return requests, approvals, svc
}

func TestSubmitVerdictRaceLoserGetsConflictAndWritesNothing(t *testing.T) {
	// The caller expects the request at Department, but a concurrent verdict
	// already advanced it to Dean. The loser must fail with a conflict and
	// leave both the ledger and the request untouched.
	requests, approvals, svc := verdictFixture(workflow.OfficeDean, true)

	_, err := svc.SubmitVerdict(context.Background(),
		requests.request.ID.String(), uuid.NewString(),
		workflow.ActingContext{RealRole: workflow.RoleDeptHead},
		workflow.VerdictApproved,
		SubmitVerdictDTO{ExpectedOffice: workflow.OfficeDepartment})

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict), "want conflict error, got %v", err)
	assert.Empty(t, approvals.created, "race loser must append no ledger entry")
	assert.Empty(t, requests.advances, "race loser must not advance the request")
}

func TestSubmitVerdictAppendsEntryWithPreAdvanceOffice(t *testing.T) {
	requests, approvals, svc := verdictFixture(workflow.OfficeDean, true)

	resp, err := svc.SubmitVerdict(context.Background(),
		requests.request.ID.String(), uuid.NewString(),
		workflow.ActingContext{RealRole: workflow.RoleDean},
		workflow.VerdictApproved,
		SubmitVerdictDTO{ExpectedOffice: workflow.OfficeDean, Remarks: "itinerary complete"})
	require.NoError(t, err)

	// Exactly one ledger entry, recording the office the verdict was taken on
	// behalf of — before the request advanced.
	require.Len(t, approvals.created, 1)
	entry := approvals.created[0]
	assert.Equal(t, workflow.OfficeDean, entry.Office)
	assert.Equal(t, workflow.VerdictApproved, entry.Status)
	assert.Equal(t, "Approved by Dean: itinerary complete", entry.Comments)

	require.Len(t, requests.advances, 1)
	assert.Equal(t, advanceCall{
		fromStatus: workflow.PendingStatus(workflow.OfficeDean),
		fromOffice: workflow.OfficeDean,
		toStatus:   workflow.PendingStatus(workflow.OfficeKTTO),
		toOffice:   workflow.OfficeKTTO,
	}, requests.advances[0])

	assert.Equal(t, workflow.PendingStatus(workflow.OfficeKTTO), resp.Status)
	assert.Equal(t, workflow.OfficeKTTO, resp.CurrentOffice)
}

func TestSubmitVerdictGuardedAdvanceFailureIsConflict(t *testing.T) {
	// If the conditional UPDATE matches no row despite the lock, the whole
	// transaction must surface as a conflict, never a silent success.
	requests, _, svc := verdictFixture(workflow.OfficeFinance, false)

	_, err := svc.SubmitVerdict(context.Background(),
		requests.request.ID.String(), uuid.NewString(),
		workflow.ActingContext{RealRole: workflow.RoleFinance},
		workflow.VerdictApproved,
		SubmitVerdictDTO{ExpectedOffice: workflow.OfficeFinance})

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict), "want conflict error, got %v", err)
}

func TestSubmitVerdictUnauthorizedActorWritesNothing(t *testing.T) {
	requests, approvals, svc := verdictFixture(workflow.OfficeDean, true)

	_, err := svc.SubmitVerdict(context.Background(),
		requests.request.ID.String(), uuid.NewString(),
		workflow.ActingContext{RealRole: workflow.RoleFaculty},
		workflow.VerdictApproved,
		SubmitVerdictDTO{ExpectedOffice: workflow.OfficeDean})

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindAuthorization), "want authorization error, got %v", err)
	assert.Empty(t, approvals.created)
	assert.Empty(t, requests.advances)
}
