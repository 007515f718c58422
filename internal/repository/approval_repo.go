package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApprovalRepository is append-and-read access to the verdict ledger.
// There is deliberately no Update or Delete: entries are immutable facts.
type ApprovalRepository interface {
	Create(ctx context.Context, entry *model.Approval) error
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]model.Approval, error)
	ListRecent(ctx context.Context, limit int) ([]model.Approval, error)
}

type approvalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) Create(ctx context.Context, entry *model.Approval) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *approvalRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]model.Approval, error) {
	var entries []model.Approval
	err := retryRead(ctx, func() error {
		return GetDB(ctx, r.db).
			Preload("Approver").
			Where("request_id = ?", requestID).
			Order("created_at ASC").
			Find(&entries).Error
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *approvalRepository) ListRecent(ctx context.Context, limit int) ([]model.Approval, error) {
	var entries []model.Approval
	err := retryRead(ctx, func() error {
		return GetDB(ctx, r.db).
			Preload("Approver").
			Preload("Request").
			Order("created_at DESC").
			Limit(limit).
			Find(&entries).Error
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
