package workflow

import (
	"testing"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func sampleRequests(owner, other uuid.UUID) []model.TravelRequest {
	return []model.TravelRequest{
		{ID: uuid.New(), UserID: owner, Status: PendingStatus(OfficeDepartment), CurrentOffice: OfficeDepartment},
		{ID: uuid.New(), UserID: owner, Status: PendingStatus(OfficeDean), CurrentOffice: OfficeDean},
		{ID: uuid.New(), UserID: owner, Status: StatusApproved, CurrentOffice: OfficeChancellor},
		{ID: uuid.New(), UserID: owner, Status: StatusReturned, CurrentOffice: OfficeKTTO},
		{ID: uuid.New(), UserID: other, Status: PendingStatus(OfficeDean), CurrentOffice: OfficeDean},
		{ID: uuid.New(), UserID: other, Status: StatusRejected, CurrentOffice: OfficeDean},
	}
}

func TestMyRequests(t *testing.T) {
	owner, other := uuid.New(), uuid.New()
	mine := MyRequests(sampleRequests(owner, other), owner)
	assert.Len(t, mine, 4)
	for _, r := range mine {
		assert.Equal(t, owner, r.UserID)
	}
}

func TestActionRequired(t *testing.T) {
	owner, other := uuid.New(), uuid.New()
	requests := sampleRequests(owner, other)

	// The Dean sees both non-terminal requests at the Dean office, including
	// the one the Dean does not own. Terminal ones are excluded.
	queue := ActionRequired(requests, ActingContext{RealRole: RoleDean})
	assert.Len(t, queue, 2)
	for _, r := range queue {
		assert.Equal(t, OfficeDean, r.CurrentOffice)
		assert.False(t, IsTerminal(r.Status))
	}

	// Faculty never has an action queue.
	assert.Empty(t, ActionRequired(requests, ActingContext{RealRole: RoleFaculty}))

	// Super Admin sees a queue only while acting as an office.
	assert.Empty(t, ActionRequired(requests, ActingContext{RealRole: RoleSuperAdmin}))
	adminQueue := ActionRequired(requests, ActingContext{RealRole: RoleSuperAdmin, ActingOffice: OfficeDean})
	assert.Len(t, adminQueue, 2)
}

func TestCountMine(t *testing.T) {
	owner, other := uuid.New(), uuid.New()
	mine := MyRequests(sampleRequests(owner, other), owner)

	c := CountMine(mine)
	assert.Equal(t, Counters{Total: 4, Pending: 2, Approved: 1, Returned: 1}, c)
}

func TestCountMineEmpty(t *testing.T) {
	assert.Equal(t, Counters{}, CountMine(nil))
}
