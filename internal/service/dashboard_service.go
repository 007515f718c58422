package service

import (
	"context"

	"backend/internal/repository"
	"backend/internal/workflow"
	"backend/pkg/apperror"

	"github.com/google/uuid"
)

const defaultAuditLimit = 50

// DashboardResponse is the read-side view for one actor: their own requests,
// the queue waiting on their office, and the stat counters.
type DashboardResponse struct {
	ActionRequired []TravelRequestResponse `json:"action_required"`
	MyRequests     []TravelRequestResponse `json:"my_requests"`
	Counters       workflow.Counters       `json:"counters"`
}

type DashboardService interface {
	GetDashboard(ctx context.Context, actorID string, actor workflow.ActingContext) (DashboardResponse, error)
	GetAuditTrail(ctx context.Context, limit int) ([]ApprovalResponse, error)
}

type dashboardService struct {
	requests  repository.RequestRepository
	approvals repository.ApprovalRepository
}

func NewDashboardService(requests repository.RequestRepository, approvals repository.ApprovalRepository) DashboardService {
	return &dashboardService{requests: requests, approvals: approvals}
}

// GetDashboard recomputes the projections from the committed request set.
// Clients call this again whenever the change feed signals a mutation.
func (s *dashboardService) GetDashboard(ctx context.Context, actorID string, actor workflow.ActingContext) (DashboardResponse, error) {
	ownerID, err := uuid.Parse(actorID)
	if err != nil {
		return DashboardResponse{}, apperror.Validation("invalid user id")
	}

	all, err := s.requests.ListAll(ctx)
	if err != nil {
		return DashboardResponse{}, apperror.Storage(err, "failed to load travel requests")
	}

	mine := workflow.MyRequests(all, ownerID)
	queue := workflow.ActionRequired(all, actor)

	resp := DashboardResponse{
		ActionRequired: make([]TravelRequestResponse, 0, len(queue)),
		MyRequests:     make([]TravelRequestResponse, 0, len(mine)),
		Counters:       workflow.CountMine(mine),
	}
	for _, r := range queue {
		resp.ActionRequired = append(resp.ActionRequired, toTravelRequestResponse(r))
	}
	for _, r := range mine {
		resp.MyRequests = append(resp.MyRequests, toTravelRequestResponse(r))
	}
	return resp, nil
}

func (s *dashboardService) GetAuditTrail(ctx context.Context, limit int) ([]ApprovalResponse, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}

	entries, err := s.approvals.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperror.Storage(err, "failed to load audit trail")
	}

	out := make([]ApprovalResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toApprovalResponse(e))
	}
	return out, nil
}
