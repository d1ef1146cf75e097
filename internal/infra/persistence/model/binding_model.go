package model

import (
	"time"

	"github.com/google/uuid"
)

// BindingModel is the GORM-specific struct for the 'hub_bindings' table.
// At most one row per professional has is_active = true; the partial unique
// index below is created by migration.
type BindingModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	HubID          uuid.UUID `gorm:"type:uuid;not null;index:idx_hub_bindings_on_hub"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;not null;index:idx_hub_bindings_on_professional"`
	DisplayName    string    `gorm:"type:text;not null"`
	IsActive       bool      `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (BindingModel) TableName() string {
	return "hub_bindings"
}
