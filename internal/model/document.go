package model

import (
	"time"

	"github.com/google/uuid"
)

// Document is attachment metadata for a file uploaded with a travel request.
// The binary lives in the object store under FilePath; rows are read-only
// after the request is submitted.
type Document struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RequestID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"request_id"`
	Request    *TravelRequest `gorm:"foreignKey:RequestID" json:"request,omitempty"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name"`
	FilePath   string         `gorm:"type:varchar(512);not null" json:"file_path"`
	FileType   string         `gorm:"type:varchar(100)" json:"file_type"`
	UploadedAt time.Time      `gorm:"autoCreateTime;index" json:"uploaded_at"`
}
