package model

import (
	"time"

	"github.com/google/uuid"
)

// QueueEntryModel is the GORM-specific struct for the 'queue_entries' table.
// A professional holds at most one live entry, enforced by the unique index
// on professional_id. Waiting positions per hub are kept contiguous by the
// queue service under the hub row lock, not by a database constraint, because
// shifts would transiently collide with a unique index.
type QueueEntryModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	HubID            uuid.UUID `gorm:"type:uuid;not null;index:idx_queue_entries_on_hub"`
	ProfessionalID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:udx_queue_entries_on_professional"`
	DisplayName      string    `gorm:"type:text;not null"`
	Status           string    `gorm:"type:text;not null"`
	Position         *int
	EnteredAt        time.Time `gorm:"not null"`
	DispatchedAt     *time.Time
	ReturnedAt       *time.Time
	CheckinLatitude  float64 `gorm:"type:decimal(10,8);not null"`
	CheckinLongitude float64 `gorm:"type:decimal(11,8);not null"`
	SingleRide       bool    `gorm:"not null;default:false"`
	OriginalPosition *int
	PositionReason   *string `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (QueueEntryModel) TableName() string {
	return "queue_entries"
}
