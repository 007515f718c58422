package model

import (
	"time"

	"github.com/google/uuid"
)

// Approval is one verdict submission — the append-only audit ledger of a
// request's routing. Office is the office the verdict was taken on behalf of,
// before the request advanced. Rows are never updated or deleted.
type Approval struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RequestID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"request_id"`
	Request    *TravelRequest `gorm:"foreignKey:RequestID" json:"request,omitempty"`
	ApproverID uuid.UUID      `gorm:"type:uuid;not null;index" json:"approver_id"`
	Approver   *User          `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`
	Office     string         `gorm:"type:varchar(20);not null" json:"office"`
	Status     string         `gorm:"type:varchar(20);not null" json:"status"` // the verdict: Approved, Rejected, Returned
	Comments   string         `gorm:"type:text" json:"comments"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}
