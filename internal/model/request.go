package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TravelType enum constants
const (
	TravelTypeAcademic       = "Academic"
	TravelTypeResearch       = "Research"
	TravelTypeAdministrative = "Administrative"
)

// TravelRequest is the routed aggregate. Status and CurrentOffice move in
// lockstep through the office pipeline and are only ever mutated together with
// an Approval append, inside one transaction. Requests are never deleted —
// terminal states stay around for audit.
type TravelRequest struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User           *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title          string          `gorm:"type:varchar(255);not null" json:"title"`
	Destination    string          `gorm:"type:varchar(255);not null" json:"destination"`
	Purpose        string          `gorm:"type:text;not null" json:"purpose"`
	StartDate      time.Time       `gorm:"type:date;not null" json:"-"`
	EndDate        time.Time       `gorm:"type:date;not null" json:"-"`
	Type           string          `gorm:"type:varchar(20);not null" json:"type"` // Academic, Research, Administrative
	BudgetEstimate decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"budget_estimate"`
	Status         string          `gorm:"type:varchar(40);not null;index" json:"status"`
	CurrentOffice  string          `gorm:"type:varchar(20);not null;index" json:"current_office"`
	RequesterRole  string          `gorm:"type:varchar(50);not null" json:"requester_role"` // role snapshot at creation time
	CreatedAt      time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
