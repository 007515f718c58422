package workflow

import (
	"fmt"

	"backend/pkg/apperror"
)

// ActingContext identifies who is submitting a verdict. ActingOffice is the
// Super Admin override: it is honored only when RealRole is Super Admin and is
// never written back to the actor's stored role.
type ActingContext struct {
	RealRole     string
	ActingOffice string
}

// IsOverride reports whether the actor is a Super Admin acting as an office.
func (a ActingContext) IsOverride() bool {
	return a.RealRole == RoleSuperAdmin && a.ActingOffice != ""
}

// EffectiveOffice resolves the office the actor acts for. Super Admins resolve
// through their override; everyone else through the role registry.
func (a ActingContext) EffectiveOffice() (string, bool) {
	if a.RealRole == RoleSuperAdmin {
		if a.ActingOffice == "" {
			return "", false
		}
		if _, ok := RoleFor(a.ActingOffice); !ok {
			return "", false
		}
		return a.ActingOffice, true
	}
	return OfficeFor(a.RealRole)
}

// Transition is the (status, current_office) pair a successful verdict moves a
// request to.
type Transition struct {
	Status string
	Office string
}

// ApplyVerdict computes the transition for a verdict against the request's
// current (status, office) state. It is pure: persistence of the transition and
// the matching approval entry is the caller's job, in one atomic write.
//
// Authorization fails unless the actor's effective office equals currentOffice,
// and always fails once the status is terminal.
func ApplyVerdict(status, currentOffice string, actor ActingContext, verdict string) (Transition, error) {
	if !ValidVerdict(verdict) {
		return Transition{}, apperror.Validation("unknown verdict %q", verdict)
	}
	if IsTerminal(status) {
		return Transition{}, apperror.Authorization("request is already %s and accepts no further verdicts", status)
	}
	office, ok := actor.EffectiveOffice()
	if !ok {
		return Transition{}, apperror.Authorization("role %q is not mapped to an approving office", actor.RealRole)
	}
	if office != currentOffice {
		return Transition{}, apperror.Authorization("request is pending at %s, not %s", currentOffice, office)
	}

	switch verdict {
	case VerdictApproved:
		next, hasNext := NextOffice(currentOffice)
		if !hasNext {
			// Last office in the pipeline — the request is fully approved.
			return Transition{Status: StatusApproved, Office: currentOffice}, nil
		}
		return Transition{Status: PendingStatus(next), Office: next}, nil
	case VerdictReturned:
		return Transition{Status: StatusReturned, Office: currentOffice}, nil
	default:
		return Transition{Status: StatusRejected, Office: currentOffice}, nil
	}
}

// VerdictComment builds the audit comment for a verdict. It always names the
// role the action was taken as, and flags Super Admin overrides — compliance
// reads this, so the override marker is load-bearing, not cosmetic.
func VerdictComment(actor ActingContext, verdict, remarks string) string {
	role := actor.RealRole
	if actor.IsOverride() {
		if r, ok := RoleFor(actor.ActingOffice); ok {
			role = r
		}
	}
	comment := fmt.Sprintf("%s by %s", verdict, role)
	if actor.IsOverride() {
		comment += " (Admin Override)"
	}
	if remarks != "" {
		comment += ": " + remarks
	}
	return comment
}
