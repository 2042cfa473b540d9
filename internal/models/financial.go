package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Financial is the last-computed profit breakdown for a project: one logical
// row per project, upserted on every sync. Negative figures are preserved
// when the ledger runs at a loss.
type Financial struct {
	ID                  string  `gorm:"type:char(36);primaryKey" json:"id"`
	ProjectID           string  `gorm:"type:char(36);not null;uniqueIndex" json:"projectId"`
	ActualBalance       float64 `gorm:"type:decimal(15,2);not null;default:0" json:"actualBalance"`
	BusinessReserve     float64 `gorm:"type:decimal(15,2);not null;default:0" json:"businessReserve"`
	ReligiousAllocation float64 `gorm:"type:decimal(15,2);not null;default:0" json:"religiousAllocation"`
	NetDistributable    float64 `gorm:"type:decimal(15,2);not null;default:0" json:"netDistributable"`
	BasePool            float64 `gorm:"type:decimal(15,2);not null;default:0" json:"basePool"`
	PerformancePool     float64 `gorm:"type:decimal(15,2);not null;default:0" json:"performancePool"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Financial
func (Financial) TableName() string {
	return "financials"
}

// BeforeCreate assigns a UUID when none was provided
func (f *Financial) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
