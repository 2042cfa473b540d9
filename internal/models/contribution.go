package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contribution is a derived row: one partner's percentage share of a
// project's weighted effort. The entire set for a project is replaced
// atomically on every recompute, never patched in place.
type Contribution struct {
	ID         string  `gorm:"type:char(36);primaryKey" json:"id"`
	ProjectID  string  `gorm:"type:char(36);not null;index:idx_contrib_project_partner,unique" json:"projectId"`
	PartnerID  string  `gorm:"type:char(36);not null;index:idx_contrib_project_partner,unique" json:"partnerId"`
	Percentage float64 `gorm:"type:decimal(8,2);not null;default:0" json:"percentage"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Contribution
func (Contribution) TableName() string {
	return "contributions"
}

// BeforeCreate assigns a UUID when none was provided
func (c *Contribution) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
