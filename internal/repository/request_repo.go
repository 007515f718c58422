package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RequestRepository is data access for the travel-request aggregate.
type RequestRepository interface {
	Create(ctx context.Context, req *model.TravelRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TravelRequest, error)
	FindByIDWithOwner(ctx context.Context, id uuid.UUID) (*model.TravelRequest, error)
	// FindByIDForUpdate row-locks the request. Callers must be inside a
	// TransactionManager transaction; the lock serializes concurrent verdicts.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.TravelRequest, error)
	ListAll(ctx context.Context) ([]model.TravelRequest, error)
	ListPage(ctx context.Context, limit, offset int) ([]model.TravelRequest, error)
	// AdvanceState moves (status, current_office) only if the row still holds
	// the expected pair. Returns false when the guard matched no row — a
	// concurrent verdict won the race.
	AdvanceState(ctx context.Context, id uuid.UUID, fromStatus, fromOffice, toStatus, toOffice string) (bool, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *model.TravelRequest) error {
	return GetDB(ctx, r.db).Create(req).Error
}

func (r *requestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TravelRequest, error) {
	var req model.TravelRequest
	err := retryRead(ctx, func() error {
		return GetDB(ctx, r.db).First(&req, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) FindByIDWithOwner(ctx context.Context, id uuid.UUID) (*model.TravelRequest, error) {
	var req model.TravelRequest
	err := retryRead(ctx, func() error {
		return GetDB(ctx, r.db).Preload("User").First(&req, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.TravelRequest, error) {
	var req model.TravelRequest
	if err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) ListAll(ctx context.Context) ([]model.TravelRequest, error) {
	var requests []model.TravelRequest
	err := retryRead(ctx, func() error {
		return GetDB(ctx, r.db).
			Preload("User").
			Order("created_at DESC").
			Find(&requests).Error
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) ListPage(ctx context.Context, limit, offset int) ([]model.TravelRequest, error) {
	var requests []model.TravelRequest
	err := retryRead(ctx, func() error {
		return GetDB(ctx, r.db).
			Preload("User").
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&requests).Error
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) AdvanceState(ctx context.Context, id uuid.UUID, fromStatus, fromOffice, toStatus, toOffice string) (bool, error) {
	result := GetDB(ctx, r.db).
		Model(&model.TravelRequest{}).
		Where("id = ? AND status = ? AND current_office = ?", id, fromStatus, fromOffice).
		Updates(map[string]interface{}{
			"status":         toStatus,
			"current_office": toOffice,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
