package workflow

import (
	"testing"

	"backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyVerdictAdvancesThroughPipeline(t *testing.T) {
	// A chain of approvals starting at Department must visit the pipeline in
	// order with no skips and no repeats, ending terminal after Chancellor.
	status := PendingStatus(OfficeDepartment)
	office := OfficeDepartment

	var visited []string
	for !IsTerminal(status) {
		visited = append(visited, office)
		role, ok := RoleFor(office)
		require.True(t, ok)

		tr, err := ApplyVerdict(status, office, ActingContext{RealRole: role}, VerdictApproved)
		require.NoError(t, err)
		status, office = tr.Status, tr.Office
	}

	assert.Equal(t, PipelineOrder(), visited)
	assert.Equal(t, StatusApproved, status)
	assert.Equal(t, OfficeChancellor, office, "office is unchanged at terminal approval")
}

func TestApplyVerdictReturnFreezesOffice(t *testing.T) {
	tr, err := ApplyVerdict(PendingStatus(OfficeDean), OfficeDean, ActingContext{RealRole: RoleDean}, VerdictReturned)
	require.NoError(t, err)
	assert.Equal(t, StatusReturned, tr.Status)
	assert.Equal(t, OfficeDean, tr.Office)
}

func TestApplyVerdictRejectFreezesOffice(t *testing.T) {
	tr, err := ApplyVerdict(PendingStatus(OfficeFinance), OfficeFinance, ActingContext{RealRole: RoleFinance}, VerdictRejected)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, tr.Status)
	assert.Equal(t, OfficeFinance, tr.Office)
}

func TestApplyVerdictAuthorization(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		office  string
		actor   ActingContext
		verdict string
	}{
		{
			name:    "dean cannot act on a request at KTTO",
			status:  PendingStatus(OfficeKTTO),
			office:  OfficeKTTO,
			actor:   ActingContext{RealRole: RoleDean},
			verdict: VerdictApproved,
		},
		{
			name:    "faculty cannot act on anything",
			status:  PendingStatus(OfficeDepartment),
			office:  OfficeDepartment,
			actor:   ActingContext{RealRole: RoleFaculty},
			verdict: VerdictApproved,
		},
		{
			name:    "super admin without override cannot act",
			status:  PendingStatus(OfficeDepartment),
			office:  OfficeDepartment,
			actor:   ActingContext{RealRole: RoleSuperAdmin},
			verdict: VerdictApproved,
		},
		{
			name:    "super admin override for the wrong office",
			status:  PendingStatus(OfficeFinance),
			office:  OfficeFinance,
			actor:   ActingContext{RealRole: RoleSuperAdmin, ActingOffice: OfficeDean},
			verdict: VerdictApproved,
		},
		{
			name:    "override is ignored for non-admins",
			status:  PendingStatus(OfficeFinance),
			office:  OfficeFinance,
			actor:   ActingContext{RealRole: RoleDean, ActingOffice: OfficeFinance},
			verdict: VerdictApproved,
		},
		{
			name:    "unknown role",
			status:  PendingStatus(OfficeDepartment),
			office:  OfficeDepartment,
			actor:   ActingContext{RealRole: "Registrar"},
			verdict: VerdictApproved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyVerdict(tt.status, tt.office, tt.actor, tt.verdict)
			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.KindAuthorization), "want authorization error, got %v", err)
		})
	}
}

func TestApplyVerdictTerminalStatesAreFinal(t *testing.T) {
	// Once terminal, every further verdict fails with an authorization error —
	// even from the office the request froze at.
	for _, status := range []string{StatusApproved, StatusRejected, StatusReturned} {
		for _, verdict := range []string{VerdictApproved, VerdictRejected, VerdictReturned} {
			_, err := ApplyVerdict(status, OfficeDean, ActingContext{RealRole: RoleDean}, verdict)
			require.Error(t, err, "status %s verdict %s", status, verdict)
			assert.True(t, apperror.IsKind(err, apperror.KindAuthorization))
		}
	}
}

func TestApplyVerdictUnknownVerdict(t *testing.T) {
	_, err := ApplyVerdict(PendingStatus(OfficeDean), OfficeDean, ActingContext{RealRole: RoleDean}, "Escalated")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestApplyVerdictSuperAdminOverride(t *testing.T) {
	// Scenario: Super Admin acting as Finance approves a request at Finance.
	actor := ActingContext{RealRole: RoleSuperAdmin, ActingOffice: OfficeFinance}
	tr, err := ApplyVerdict(PendingStatus(OfficeFinance), OfficeFinance, actor, VerdictApproved)
	require.NoError(t, err)
	assert.Equal(t, PendingStatus(OfficeChancellor), tr.Status)
	assert.Equal(t, OfficeChancellor, tr.Office)
}

func TestEffectiveOffice(t *testing.T) {
	office, ok := ActingContext{RealRole: RoleKTTOStaff}.EffectiveOffice()
	require.True(t, ok)
	assert.Equal(t, OfficeKTTO, office)

	_, ok = ActingContext{RealRole: RoleFaculty}.EffectiveOffice()
	assert.False(t, ok)

	_, ok = ActingContext{RealRole: RoleSuperAdmin, ActingOffice: "Registrar"}.EffectiveOffice()
	assert.False(t, ok, "override must name a real office")
}

func TestVerdictComment(t *testing.T) {
	tests := []struct {
		name    string
		actor   ActingContext
		verdict string
		remarks string
		want    string
	}{
		{
			name:    "plain approval",
			actor:   ActingContext{RealRole: RoleDean},
			verdict: VerdictApproved,
			want:    "Approved by Dean",
		},
		{
			name:    "admin override records the override",
			actor:   ActingContext{RealRole: RoleSuperAdmin, ActingOffice: OfficeFinance},
			verdict: VerdictApproved,
			want:    "Approved by Finance (Admin Override)",
		},
		{
			name:    "remarks are appended",
			actor:   ActingContext{RealRole: RoleDeptHead},
			verdict: VerdictReturned,
			remarks: "missing itinerary",
			want:    "Returned by Dept. Head: missing itinerary",
		},
		{
			name:    "override with remarks",
			actor:   ActingContext{RealRole: RoleSuperAdmin, ActingOffice: OfficeKTTO},
			verdict: VerdictRejected,
			remarks: "duplicate filing",
			want:    "Rejected by KTTO Staff (Admin Override): duplicate filing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerdictComment(tt.actor, tt.verdict, tt.remarks))
		})
	}
}
