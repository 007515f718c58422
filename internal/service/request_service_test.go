package service

import (
	"testing"

	"backend/internal/model"
	"backend/internal/workflow"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDTO() CreateTravelRequestDTO {
	return CreateTravelRequestDTO{
		Title:          "International Conference on AI",
		Destination:    "Singapore",
		Purpose:        "Present accepted paper",
		StartDate:      "2024-06-05",
		EndDate:        "2024-06-10",
		Type:           model.TravelTypeAcademic,
		BudgetEstimate: "45000.00",
	}
}

func TestBuildTravelRequestInitialState(t *testing.T) {
	owner := &model.User{ID: uuid.New(), Role: workflow.RoleFaculty}

	req, err := buildTravelRequest(owner, validDTO())
	require.NoError(t, err)

	assert.Equal(t, owner.ID, req.UserID)
	assert.Equal(t, workflow.PendingStatus(workflow.OfficeDepartment), req.Status)
	assert.Equal(t, workflow.OfficeDepartment, req.CurrentOffice)
	assert.Equal(t, workflow.RoleFaculty, req.RequesterRole, "requester role is snapshotted at creation")
	assert.Equal(t, "45000.00", req.BudgetEstimate.StringFixed(2))
	assert.Equal(t, "2024-06-05", req.StartDate.Format("2006-01-02"))
}

func TestBuildTravelRequestValidation(t *testing.T) {
	owner := &model.User{ID: uuid.New(), Role: workflow.RoleFaculty}

	tests := []struct {
		name   string
		mutate func(*CreateTravelRequestDTO)
	}{
		{name: "missing title", mutate: func(d *CreateTravelRequestDTO) { d.Title = "  " }},
		{name: "missing destination", mutate: func(d *CreateTravelRequestDTO) { d.Destination = "" }},
		{name: "missing purpose", mutate: func(d *CreateTravelRequestDTO) { d.Purpose = "" }},
		{name: "unknown travel type", mutate: func(d *CreateTravelRequestDTO) { d.Type = "Vacation" }},
		{name: "malformed start date", mutate: func(d *CreateTravelRequestDTO) { d.StartDate = "June 5" }},
		{name: "malformed end date", mutate: func(d *CreateTravelRequestDTO) { d.EndDate = "2024-13-40" }},
		{name: "end before start", mutate: func(d *CreateTravelRequestDTO) {
			d.StartDate = "2024-06-10"
			d.EndDate = "2024-06-05"
		}},
		{name: "non-numeric budget", mutate: func(d *CreateTravelRequestDTO) { d.BudgetEstimate = "a lot" }},
		{name: "negative budget", mutate: func(d *CreateTravelRequestDTO) { d.BudgetEstimate = "-1.00" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := validDTO()
			tt.mutate(&dto)

			_, err := buildTravelRequest(owner, dto)
			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.KindValidation), "want validation error, got %v", err)
		})
	}
}

func TestBuildTravelRequestSingleDayTrip(t *testing.T) {
	owner := &model.User{ID: uuid.New(), Role: workflow.RoleDeptHead}
	dto := validDTO()
	dto.StartDate = "2024-06-05"
	dto.EndDate = "2024-06-05"

	_, err := buildTravelRequest(owner, dto)
	assert.NoError(t, err, "start == end is a valid date range")
}

func TestSignupRoleAllowed(t *testing.T) {
	for _, role := range workflow.SignupRoles() {
		assert.True(t, signupRoleAllowed(role), role)
	}
	assert.False(t, signupRoleAllowed(workflow.RoleSuperAdmin))
	assert.False(t, signupRoleAllowed("Registrar"))
}
