package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/storage"
	"backend/internal/websocket"
	"backend/internal/workflow"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// --- DTOs ---

type CreateTravelRequestDTO struct {
	Title          string `form:"title" binding:"required"`
	Destination    string `form:"destination" binding:"required"`
	Purpose        string `form:"purpose" binding:"required"`
	StartDate      string `form:"start_date" binding:"required"` // ISO calendar date
	EndDate        string `form:"end_date" binding:"required"`
	Type           string `form:"type" binding:"required"`
	BudgetEstimate string `form:"budget_estimate" binding:"required"`
}

// AttachmentUpload is one file submitted with a new request.
type AttachmentUpload struct {
	Name    string
	Content io.Reader
}

// AttachmentResult reports the outcome of one attachment upload. Failures are
// per-file and do not fail the request — attachments are supplementary
// evidence, not required for routing.
type AttachmentResult struct {
	Name       string `json:"name"`
	Uploaded   bool   `json:"uploaded"`
	DocumentID string `json:"document_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

type TravelRequestResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Destination    string `json:"destination"`
	Purpose        string `json:"purpose"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Type           string `json:"type"`
	BudgetEstimate string `json:"budget_estimate"`
	Status         string `json:"status"`
	CurrentOffice  string `json:"current_office"`
	RequesterRole  string `json:"requester_role"`
	RequesterName  string `json:"requester_name,omitempty"`
	Department     string `json:"department,omitempty"`
	CreatedAt      string `json:"created_at"`
}

type DocumentResponse struct {
	ID           string `json:"id"`
	RequestID    string `json:"request_id"`
	RequestTitle string `json:"request_title,omitempty"`
	Name         string `json:"name"`
	FileType     string `json:"file_type"`
	URL          string `json:"url"`
	UploadedAt   string `json:"uploaded_at"`
}

type TravelRequestDetailResponse struct {
	TravelRequestResponse
	Documents []DocumentResponse `json:"documents"`
	History   []ApprovalResponse `json:"history"`
}

type ApprovalResponse struct {
	ID           string `json:"id"`
	RequestID    string `json:"request_id"`
	RequestTitle string `json:"request_title,omitempty"`
	ApproverName string `json:"approver_name"`
	ApproverRole string `json:"approver_role"`
	Office       string `json:"office"`
	Status       string `json:"status"`
	Comments     string `json:"comments"`
	CreatedAt    string `json:"created_at"`
}

// --- Interface ---

type RequestService interface {
	CreateRequest(ctx context.Context, ownerID string, dto CreateTravelRequestDTO, files []AttachmentUpload) (TravelRequestResponse, []AttachmentResult, error)
	GetRequest(ctx context.Context, id string) (TravelRequestDetailResponse, error)
	ListRequests(ctx context.Context, limit, offset int) ([]TravelRequestResponse, error)
	ListMyFiles(ctx context.Context, ownerID string) ([]DocumentResponse, error)
}

type requestService struct {
	txManager repository.TransactionManager
	requests  repository.RequestRepository
	approvals repository.ApprovalRepository
	documents repository.DocumentRepository
	users     repository.UserRepository
	store     storage.ObjectStore
	hub       *websocket.Hub
}

func NewRequestService(
	txManager repository.TransactionManager,
	requests repository.RequestRepository,
	approvals repository.ApprovalRepository,
	documents repository.DocumentRepository,
	users repository.UserRepository,
	store storage.ObjectStore,
	hub *websocket.Hub,
) RequestService {
	return &requestService{
		txManager: txManager,
		requests:  requests,
		approvals: approvals,
		documents: documents,
		users:     users,
		store:     store,
		hub:       hub,
	}
}

// --- Implementation ---

// buildTravelRequest validates the submitted fields and assembles the aggregate
// in its initial routing position. Returns a validation error before anything
// is persisted — no partial record on malformed input.
func buildTravelRequest(owner *model.User, dto CreateTravelRequestDTO) (*model.TravelRequest, error) {
	if strings.TrimSpace(dto.Title) == "" {
		return nil, apperror.Validation("title is required")
	}
	if strings.TrimSpace(dto.Destination) == "" {
		return nil, apperror.Validation("destination is required")
	}
	if strings.TrimSpace(dto.Purpose) == "" {
		return nil, apperror.Validation("purpose is required")
	}

	switch dto.Type {
	case model.TravelTypeAcademic, model.TravelTypeResearch, model.TravelTypeAdministrative:
	default:
		return nil, apperror.Validation("type must be Academic, Research, or Administrative")
	}

	start, err := time.Parse(dateLayout, dto.StartDate)
	if err != nil {
		return nil, apperror.Validation("start_date must be a calendar date (YYYY-MM-DD)")
	}
	end, err := time.Parse(dateLayout, dto.EndDate)
	if err != nil {
		return nil, apperror.Validation("end_date must be a calendar date (YYYY-MM-DD)")
	}
	if end.Before(start) {
		return nil, apperror.Validation("end_date must not be before start_date")
	}

	budget, err := decimal.NewFromString(dto.BudgetEstimate)
	if err != nil {
		return nil, apperror.Validation("budget_estimate must be a decimal number")
	}
	if budget.IsNegative() {
		return nil, apperror.Validation("budget_estimate must not be negative")
	}

	return &model.TravelRequest{
		UserID:         owner.ID,
		Title:          dto.Title,
		Destination:    dto.Destination,
		Purpose:        dto.Purpose,
		StartDate:      start,
		EndDate:        end,
		Type:           dto.Type,
		BudgetEstimate: budget,
		Status:         workflow.PendingStatus(workflow.OfficeDepartment),
		CurrentOffice:  workflow.OfficeDepartment,
		RequesterRole:  owner.Role, // snapshot; later role changes do not rewrite history
	}, nil
}

func (s *requestService) CreateRequest(ctx context.Context, ownerID string, dto CreateTravelRequestDTO, files []AttachmentUpload) (TravelRequestResponse, []AttachmentResult, error) {
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return TravelRequestResponse{}, nil, apperror.NotFound("owner account not found")
	}

	request, err := buildTravelRequest(owner, dto)
	if err != nil {
		return TravelRequestResponse{}, nil, err
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return TravelRequestResponse{}, nil, apperror.Storage(err, "failed to create travel request")
	}
	request.User = owner

	// Attachments are best-effort per file: a failed upload is reported back
	// but never aborts the already-created request.
	results := make([]AttachmentResult, 0, len(files))
	for _, file := range files {
		results = append(results, s.uploadAttachment(ctx, request.ID, file))
	}

	s.hub.NotifyRequestChange(websocket.RequestEvent{
		Event:         "request_created",
		RequestID:     request.ID.String(),
		Status:        request.Status,
		CurrentOffice: request.CurrentOffice,
	})

	logrus.WithFields(logrus.Fields{
		"request_id": request.ID,
		"owner":      owner.Email,
		"title":      request.Title,
	}).Info("travel request created")

	return toTravelRequestResponse(*request), results, nil
}

func (s *requestService) uploadAttachment(ctx context.Context, requestID uuid.UUID, file AttachmentUpload) AttachmentResult {
	ext := strings.ToLower(filepath.Ext(file.Name))
	objectName := fmt.Sprintf("requests/%s/%s%s", requestID, uuid.NewString(), ext)

	if _, err := s.store.Upload(ctx, objectName, file.Content); err != nil {
		logrus.WithError(err).WithField("file", file.Name).Warn("attachment upload failed")
		return AttachmentResult{Name: file.Name, Error: err.Error()}
	}

	doc := &model.Document{
		RequestID: requestID,
		Name:      file.Name,
		FilePath:  objectName,
		FileType:  ext,
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		logrus.WithError(err).WithField("file", file.Name).Warn("attachment record failed")
		return AttachmentResult{Name: file.Name, Error: "uploaded but not recorded: " + err.Error()}
	}

	return AttachmentResult{Name: file.Name, Uploaded: true, DocumentID: doc.ID.String()}
}

func (s *requestService) GetRequest(ctx context.Context, id string) (TravelRequestDetailResponse, error) {
	requestID, err := uuid.Parse(id)
	if err != nil {
		return TravelRequestDetailResponse{}, apperror.Validation("invalid request id")
	}

	request, err := s.requests.FindByIDWithOwner(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TravelRequestDetailResponse{}, apperror.NotFound("travel request not found")
		}
		return TravelRequestDetailResponse{}, apperror.Storage(err, "failed to load travel request")
	}

	docs, err := s.documents.ListByRequest(ctx, requestID)
	if err != nil {
		return TravelRequestDetailResponse{}, apperror.Storage(err, "failed to load documents")
	}

	history, err := s.approvals.ListByRequest(ctx, requestID)
	if err != nil {
		return TravelRequestDetailResponse{}, apperror.Storage(err, "failed to load approval history")
	}

	detail := TravelRequestDetailResponse{
		TravelRequestResponse: toTravelRequestResponse(*request),
		Documents:             make([]DocumentResponse, 0, len(docs)),
		History:               make([]ApprovalResponse, 0, len(history)),
	}
	for _, d := range docs {
		detail.Documents = append(detail.Documents, s.toDocumentResponse(d))
	}
	for _, a := range history {
		detail.History = append(detail.History, toApprovalResponse(a))
	}
	return detail, nil
}

func (s *requestService) ListRequests(ctx context.Context, limit, offset int) ([]TravelRequestResponse, error) {
	requests, err := s.requests.ListPage(ctx, limit, offset)
	if err != nil {
		return nil, apperror.Storage(err, "failed to list travel requests")
	}

	out := make([]TravelRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, toTravelRequestResponse(r))
	}
	return out, nil
}

func (s *requestService) ListMyFiles(ctx context.Context, ownerID string) ([]DocumentResponse, error) {
	userID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, apperror.Validation("invalid user id")
	}

	docs, err := s.documents.ListByOwner(ctx, userID)
	if err != nil {
		return nil, apperror.Storage(err, "failed to list documents")
	}

	out := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, s.toDocumentResponse(d))
	}
	return out, nil
}

// --- Helpers ---

func toTravelRequestResponse(r model.TravelRequest) TravelRequestResponse {
	resp := TravelRequestResponse{
		ID:             r.ID.String(),
		Title:          r.Title,
		Destination:    r.Destination,
		Purpose:        r.Purpose,
		StartDate:      r.StartDate.Format(dateLayout),
		EndDate:        r.EndDate.Format(dateLayout),
		Type:           r.Type,
		BudgetEstimate: r.BudgetEstimate.StringFixed(2),
		Status:         r.Status,
		CurrentOffice:  r.CurrentOffice,
		RequesterRole:  r.RequesterRole,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
	}
	if r.User != nil {
		resp.RequesterName = r.User.FullName
		resp.Department = r.User.Department
	}
	return resp
}

func (s *requestService) toDocumentResponse(d model.Document) DocumentResponse {
	resp := DocumentResponse{
		ID:         d.ID.String(),
		RequestID:  d.RequestID.String(),
		Name:       d.Name,
		FileType:   d.FileType,
		URL:        s.store.ObjectURL(d.FilePath),
		UploadedAt: d.UploadedAt.Format(time.RFC3339),
	}
	if d.Request != nil {
		resp.RequestTitle = d.Request.Title
	}
	return resp
}

func toApprovalResponse(a model.Approval) ApprovalResponse {
	resp := ApprovalResponse{
		ID:        a.ID.String(),
		RequestID: a.RequestID.String(),
		Office:    a.Office,
		Status:    a.Status,
		Comments:  a.Comments,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
	if a.Approver != nil {
		resp.ApproverName = a.Approver.FullName
		resp.ApproverRole = a.Approver.Role
	}
	if a.Request != nil {
		resp.RequestTitle = a.Request.Title
	}
	return resp
}
