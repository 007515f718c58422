package workflow

// Role name constants — one role per account, assigned at signup.
const (
	RoleFaculty    = "Faculty"
	RoleDeptHead   = "Dept. Head"
	RoleDean       = "Dean"
	RoleKTTOStaff  = "KTTO Staff"
	RoleOVCREStaff = "OVCRE Staff"
	RoleOVCAA      = "OVCAA/OVCPD"
	RoleFinance    = "Finance"
	RoleChancellor = "Chancellor"
	RoleSuperAdmin = "Super Admin"
)

// Office constants — the stations a travel request routes through.
const (
	OfficeDepartment = "Department"
	OfficeDean       = "Dean"
	OfficeKTTO       = "KTTO"
	OfficeOVCRE      = "OVCRE"
	OfficeOVCAA      = "OVCAA"
	OfficeFinance    = "Finance"
	OfficeChancellor = "Chancellor"
)

// Terminal status constants. Verdicts reuse the same strings: the verdict an
// office submits becomes the request status when it is terminal.
const (
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
	StatusReturned = "Returned"
)

const (
	VerdictApproved = StatusApproved
	VerdictRejected = StatusRejected
	VerdictReturned = StatusReturned
)

// pipeline is the fixed routing order. Not configurable at runtime.
var pipeline = []string{
	OfficeDepartment,
	OfficeDean,
	OfficeKTTO,
	OfficeOVCRE,
	OfficeOVCAA,
	OfficeFinance,
	OfficeChancellor,
}

// officeByRole maps an approving role to the office it acts for.
// Faculty and Super Admin are intentionally absent: Faculty approves nothing,
// Super Admin acts through an explicit office override.
var officeByRole = map[string]string{
	RoleDeptHead:   OfficeDepartment,
	RoleDean:       OfficeDean,
	RoleKTTOStaff:  OfficeKTTO,
	RoleOVCREStaff: OfficeOVCRE,
	RoleOVCAA:      OfficeOVCAA,
	RoleFinance:    OfficeFinance,
	RoleChancellor: OfficeChancellor,
}

var roleByOffice = map[string]string{
	OfficeDepartment: RoleDeptHead,
	OfficeDean:       RoleDean,
	OfficeKTTO:       RoleKTTOStaff,
	OfficeOVCRE:      RoleOVCREStaff,
	OfficeOVCAA:      RoleOVCAA,
	OfficeFinance:    RoleFinance,
	OfficeChancellor: RoleChancellor,
}

var pendingStatusByOffice = map[string]string{
	OfficeDepartment: "Pending Dept Review",
	OfficeDean:       "Pending Dean Review",
	OfficeKTTO:       "Pending KTTO Review",
	OfficeOVCRE:      "Pending OVCRE Review",
	OfficeOVCAA:      "Pending OVCAA Review",
	OfficeFinance:    "Pending Finance Review",
	OfficeChancellor: "Pending Chancellor Review",
}

// PipelineOrder returns the office routing order. The returned slice is a copy.
func PipelineOrder() []string {
	out := make([]string, len(pipeline))
	copy(out, pipeline)
	return out
}

// OfficeFor returns the office a role approves for. The second return is false
// for Faculty, Super Admin, and unknown roles.
func OfficeFor(role string) (string, bool) {
	office, ok := officeByRole[role]
	return office, ok
}

// RoleFor returns the role that staffs an office.
func RoleFor(office string) (string, bool) {
	role, ok := roleByOffice[office]
	return role, ok
}

// PendingStatus returns the "Pending <Office> Review" status for an office.
func PendingStatus(office string) string {
	return pendingStatusByOffice[office]
}

// NextOffice returns the office after the given one in the pipeline.
// The second return is false when the office is last (or unknown).
func NextOffice(office string) (string, bool) {
	for i, o := range pipeline {
		if o == office {
			if i+1 < len(pipeline) {
				return pipeline[i+1], true
			}
			return "", false
		}
	}
	return "", false
}

// IsTerminal reports whether a status accepts no further verdicts.
func IsTerminal(status string) bool {
	return status == StatusApproved || status == StatusRejected || status == StatusReturned
}

// ValidVerdict reports whether v is one of the three accepted verdicts.
func ValidVerdict(v string) bool {
	return v == VerdictApproved || v == VerdictRejected || v == VerdictReturned
}

// KnownRole reports whether role is any role the system recognizes.
func KnownRole(role string) bool {
	if role == RoleFaculty || role == RoleSuperAdmin {
		return true
	}
	_, ok := officeByRole[role]
	return ok
}

// SignupRoles lists the roles an account may self-select at signup.
// Super Admin is excluded — it is granted administratively.
func SignupRoles() []string {
	return []string{
		RoleFaculty,
		RoleDeptHead,
		RoleDean,
		RoleKTTOStaff,
		RoleOVCREStaff,
		RoleOVCAA,
		RoleFinance,
		RoleChancellor,
	}
}
