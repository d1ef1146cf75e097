// Package model contains the GORM-specific table mappings.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HubModel is the GORM-specific struct for the 'hubs' table.
type HubModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name         string    `gorm:"type:text;not null"`
	Address      string    `gorm:"type:text;not null"`
	Latitude     float64   `gorm:"type:decimal(10,8);not null"`
	Longitude    float64   `gorm:"type:decimal(11,8);not null"`
	RadiusMeters float64   `gorm:"type:decimal(10,2);not null"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (HubModel) TableName() string {
	return "hubs"
}
