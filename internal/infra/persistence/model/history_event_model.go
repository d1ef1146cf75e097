package model

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEventModel is the GORM-specific struct for the 'queue_history' table.
// Rows are append-only; hub and professional names are snapshotted at write
// time so reports survive renames and unbinds.
type HistoryEventModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	HubID          uuid.UUID `gorm:"type:uuid;not null;index:idx_queue_history_on_hub_created,priority:1"`
	HubName        string    `gorm:"type:text;not null"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;not null;index:idx_queue_history_on_professional"`
	DisplayName    string    `gorm:"type:text;not null"`
	Action         string    `gorm:"type:text;not null"`
	WaitMinutes    *int
	EnRouteMinutes *int
	Note           string     `gorm:"type:text"`
	AdminID        *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time  `gorm:"not null;index:idx_queue_history_on_hub_created,priority:2"`
}

// TableName explicitly sets the table name for GORM.
func (HistoryEventModel) TableName() string {
	return "queue_history"
}
