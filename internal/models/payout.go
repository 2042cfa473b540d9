package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payout is one partner's final distribution for a finalized project.
// Created only by finalize; a project's payouts never change afterwards
// because finalize is terminal.
type Payout struct {
	ID               string  `gorm:"type:char(36);primaryKey" json:"id"`
	ProjectID        string  `gorm:"type:char(36);not null;index" json:"projectId"`
	PartnerID        string  `gorm:"type:char(36);not null;index" json:"partnerId"`
	BaseShare        float64 `gorm:"type:decimal(15,2);not null;default:0" json:"baseShare"`
	PerformanceShare float64 `gorm:"type:decimal(15,2);not null;default:0" json:"performanceShare"`
	TotalPayout      float64 `gorm:"type:decimal(15,2);not null;default:0" json:"totalPayout"`
	CreatedAt        time.Time `json:"createdAt"`
}

// TableName overrides the table name for Payout
func (Payout) TableName() string {
	return "payouts"
}

// BeforeCreate assigns a UUID when none was provided
func (p *Payout) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
