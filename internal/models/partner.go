package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Partner is a member of the partnership. EquityPercentage is always a
// normalized snapshot of relative capital, recomputed across all partners
// whenever capital moves. TotalCapitalContributed is the only durable input
// to that recomputation.
type Partner struct {
	ID                      string  `gorm:"type:char(36);primaryKey" json:"id"`
	UserID                  string  `gorm:"type:char(36);not null;uniqueIndex" json:"userId"`
	Name                    string  `gorm:"size:255;not null" json:"name"`
	EquityPercentage        float64 `gorm:"type:decimal(8,4);not null;default:0" json:"equityPercentage"`
	TotalCapitalContributed float64 `gorm:"type:decimal(15,2);not null;default:0" json:"totalCapitalContributed"`
	TotalEarnings           float64 `gorm:"type:decimal(15,2);not null;default:0" json:"totalEarnings"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Partner
func (Partner) TableName() string {
	return "partners"
}

// BeforeCreate assigns a UUID when none was provided
func (p *Partner) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
