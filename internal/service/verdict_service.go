package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/websocket"
	"backend/internal/workflow"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// --- DTOs ---

type SubmitVerdictDTO struct {
	// ExpectedOffice is the office the caller believes the request is at.
	// A mismatch at commit time means another verdict won the race.
	ExpectedOffice string `json:"expected_office" binding:"required"`
	// ActingOffice is the Super Admin override; ignored for other roles.
	ActingOffice string `json:"acting_office"`
	Remarks      string `json:"remarks"`
}

// --- Interface ---

type VerdictService interface {
	SubmitVerdict(ctx context.Context, requestID, actorID string, actor workflow.ActingContext, verdict string, dto SubmitVerdictDTO) (TravelRequestResponse, error)
}

type verdictService struct {
	txManager repository.TransactionManager
	requests  repository.RequestRepository
	approvals repository.ApprovalRepository
	hub       *websocket.Hub
}

func NewVerdictService(
	txManager repository.TransactionManager,
	requests repository.RequestRepository,
	approvals repository.ApprovalRepository,
	hub *websocket.Hub,
) VerdictService {
	return &verdictService{
		txManager: txManager,
		requests:  requests,
		approvals: approvals,
		hub:       hub,
	}
}

// --- Implementation ---

// SubmitVerdict authorizes the actor, computes the routing transition, and
// commits the approval entry together with the status advance in one
// transaction. The row lock serializes concurrent verdicts on the same
// request; the loser observes the moved state and fails without writing.
func (s *verdictService) SubmitVerdict(ctx context.Context, requestID, actorID string, actor workflow.ActingContext, verdict string, dto SubmitVerdictDTO) (TravelRequestResponse, error) {
	id, err := uuid.Parse(requestID)
	if err != nil {
		return TravelRequestResponse{}, apperror.Validation("invalid request id")
	}
	approverID, err := uuid.Parse(actorID)
	if err != nil {
		return TravelRequestResponse{}, apperror.Validation("invalid user id")
	}

	var transition workflow.Transition
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		request, findErr := s.requests.FindByIDForUpdate(txCtx, id)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return apperror.NotFound("travel request not found")
			}
			return apperror.Storage(findErr, "failed to load travel request")
		}

		if dto.ExpectedOffice != "" && request.CurrentOffice != dto.ExpectedOffice {
			return apperror.Conflict("request state changed, please retry: now at %s (%s)", request.CurrentOffice, request.Status)
		}

		transition, err = workflow.ApplyVerdict(request.Status, request.CurrentOffice, actor, verdict)
		if err != nil {
			return err
		}

		// The ledger entry records the office acted for, before advancing.
		entry := &model.Approval{
			RequestID:  request.ID,
			ApproverID: approverID,
			Office:     request.CurrentOffice,
			Status:     verdict,
			Comments:   workflow.VerdictComment(actor, verdict, dto.Remarks),
		}
		if createErr := s.approvals.Create(txCtx, entry); createErr != nil {
			return apperror.Storage(createErr, "failed to append approval entry")
		}

		moved, advErr := s.requests.AdvanceState(txCtx, request.ID,
			request.Status, request.CurrentOffice,
			transition.Status, transition.Office)
		if advErr != nil {
			return apperror.Storage(advErr, "failed to advance request state")
		}
		if !moved {
			// Unreachable while the row is locked; kept as a guard so a broken
			// lock can never double-advance the pipeline.
			return apperror.Conflict("request state changed, please retry")
		}
		return nil
	})
	if err != nil {
		return TravelRequestResponse{}, err
	}

	s.hub.NotifyRequestChange(websocket.RequestEvent{
		Event:         "request_updated",
		RequestID:     requestID,
		Status:        transition.Status,
		CurrentOffice: transition.Office,
	})

	logrus.WithFields(logrus.Fields{
		"request_id": requestID,
		"verdict":    verdict,
		"status":     transition.Status,
		"office":     transition.Office,
		"override":   actor.IsOverride(),
	}).Info("verdict applied")

	request, err := s.requests.FindByIDWithOwner(ctx, id)
	if err != nil {
		return TravelRequestResponse{}, apperror.Storage(err, "failed to reload travel request")
	}
	return toTravelRequestResponse(*request), nil
}
