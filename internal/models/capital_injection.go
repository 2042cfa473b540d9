package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CapitalInjection is an immutable capital ledger entry. EquityDelta and
// PostEquity are audit snapshots taken when the entry was applied; neither is
// ever an input to a later equity recomputation.
type CapitalInjection struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	PartnerID   string    `gorm:"type:char(36);not null;index" json:"partnerId"`
	Amount      float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	EquityDelta float64   `gorm:"type:decimal(8,4);not null;default:0" json:"equityDelta"`
	PostEquity  float64   `gorm:"type:decimal(8,4);not null;default:0" json:"postEquity"`
	Notes       string    `gorm:"size:1024" json:"notes,omitempty"`
	Date        time.Time `gorm:"not null" json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName overrides the table name for CapitalInjection
func (CapitalInjection) TableName() string {
	return "capital_injections"
}

// BeforeCreate assigns a UUID when none was provided
func (ci *CapitalInjection) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == "" {
		ci.ID = uuid.NewString()
	}
	return nil
}
