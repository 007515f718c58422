package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]model.Document, error)
	// ListByOwner returns every document across the requests a user submitted,
	// newest upload first, with the owning request preloaded for its title.
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]model.Document, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *model.Document) error {
	return GetDB(ctx, r.db).Create(doc).Error
}

func (r *documentRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]model.Document, error) {
	var docs []model.Document
	err := retryRead(ctx, func() error {
		return GetDB(ctx, r.db).
			Where("request_id = ?", requestID).
			Order("uploaded_at ASC").
			Find(&docs).Error
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]model.Document, error) {
	var docs []model.Document
	err := retryRead(ctx, func() error {
		return GetDB(ctx, r.db).
			Preload("Request").
			Joins("JOIN travel_requests ON travel_requests.id = documents.request_id").
			Where("travel_requests.user_id = ?", userID).
			Order("documents.uploaded_at DESC").
			Find(&docs).Error
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}
