package workflow

import (
	"testing"
)

func TestOfficeFor(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		office string
		ok     bool
	}{
		{name: "dept head", role: RoleDeptHead, office: OfficeDepartment, ok: true},
		{name: "dean", role: RoleDean, office: OfficeDean, ok: true},
		{name: "ktto staff", role: RoleKTTOStaff, office: OfficeKTTO, ok: true},
		{name: "ovcre staff", role: RoleOVCREStaff, office: OfficeOVCRE, ok: true},
		{name: "ovcaa", role: RoleOVCAA, office: OfficeOVCAA, ok: true},
		{name: "finance", role: RoleFinance, office: OfficeFinance, ok: true},
		{name: "chancellor", role: RoleChancellor, office: OfficeChancellor, ok: true},
		{name: "faculty maps to no office", role: RoleFaculty, ok: false},
		{name: "super admin maps to no fixed office", role: RoleSuperAdmin, ok: false},
		{name: "unknown role", role: "Registrar", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			office, ok := OfficeFor(tt.role)
			if ok != tt.ok {
				t.Fatalf("OfficeFor(%q) ok = %v, want %v", tt.role, ok, tt.ok)
			}
			if office != tt.office {
				t.Fatalf("OfficeFor(%q) = %q, want %q", tt.role, office, tt.office)
			}
		})
	}
}

func TestRoleForInvertsOfficeFor(t *testing.T) {
	for _, office := range PipelineOrder() {
		role, ok := RoleFor(office)
		if !ok {
			t.Fatalf("RoleFor(%q) has no role", office)
		}
		back, ok := OfficeFor(role)
		if !ok || back != office {
			t.Fatalf("OfficeFor(RoleFor(%q)) = %q", office, back)
		}
	}
}

func TestPipelineOrder(t *testing.T) {
	want := []string{
		OfficeDepartment,
		OfficeDean,
		OfficeKTTO,
		OfficeOVCRE,
		OfficeOVCAA,
		OfficeFinance,
		OfficeChancellor,
	}
	got := PipelineOrder()
	if len(got) != len(want) {
		t.Fatalf("pipeline has %d offices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pipeline[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Mutating the returned slice must not affect subsequent calls.
	got[0] = "Registrar"
	if PipelineOrder()[0] != OfficeDepartment {
		t.Fatal("PipelineOrder returned shared backing array")
	}
}

func TestNextOffice(t *testing.T) {
	order := PipelineOrder()
	for i, office := range order {
		next, ok := NextOffice(office)
		if i == len(order)-1 {
			if ok {
				t.Fatalf("NextOffice(%q) = %q, want none after the last office", office, next)
			}
			continue
		}
		if !ok || next != order[i+1] {
			t.Fatalf("NextOffice(%q) = %q, want %q", office, next, order[i+1])
		}
	}

	if _, ok := NextOffice("Registrar"); ok {
		t.Fatal("NextOffice accepted an unknown office")
	}
}

func TestPendingStatus(t *testing.T) {
	tests := map[string]string{
		OfficeDepartment: "Pending Dept Review",
		OfficeDean:       "Pending Dean Review",
		OfficeKTTO:       "Pending KTTO Review",
		OfficeOVCRE:      "Pending OVCRE Review",
		OfficeOVCAA:      "Pending OVCAA Review",
		OfficeFinance:    "Pending Finance Review",
		OfficeChancellor: "Pending Chancellor Review",
	}
	for office, want := range tests {
		if got := PendingStatus(office); got != want {
			t.Fatalf("PendingStatus(%q) = %q, want %q", office, got, want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []string{StatusApproved, StatusRejected, StatusReturned} {
		if !IsTerminal(s) {
			t.Fatalf("IsTerminal(%q) = false", s)
		}
	}
	for _, office := range PipelineOrder() {
		if IsTerminal(PendingStatus(office)) {
			t.Fatalf("IsTerminal(%q) = true", PendingStatus(office))
		}
	}
}

func TestSignupRolesExcludeSuperAdmin(t *testing.T) {
	for _, role := range SignupRoles() {
		if role == RoleSuperAdmin {
			t.Fatal("Super Admin must not be self-selectable at signup")
		}
		if !KnownRole(role) {
			t.Fatalf("signup role %q is not a known role", role)
		}
	}
}
