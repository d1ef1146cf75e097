package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationModel is the GORM-specific struct for the 'dispatch_notifications'
// table. The professional ID is the primary key: each professional has exactly
// one mailbox slot and a newer push overwrites the previous content.
type NotificationModel struct {
	ProfessionalID uuid.UUID `gorm:"type:uuid;primary_key"`
	Kind           string    `gorm:"type:text;not null"`
	Message        string    `gorm:"type:text;not null"`
	Payload        []byte    `gorm:"type:jsonb;not null"`
	Read           bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (NotificationModel) TableName() string {
	return "dispatch_notifications"
}
