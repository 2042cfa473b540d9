package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project represents one multi-partner engagement. Weights maps task
// categories to their percentage weight in contribution scoring. Once
// IsLocked is set by finalize, contribution/profit recompute and task or
// transaction mutation are rejected.
type Project struct {
	ID         string  `gorm:"type:char(36);primaryKey" json:"id"`
	Name       string  `gorm:"size:255;not null" json:"name"`
	TotalValue float64 `gorm:"type:decimal(15,2);not null;default:0" json:"totalValue"`
	Weights    Weights `gorm:"type:json" json:"weights"`
	IsLocked   bool    `gorm:"not null;default:false" json:"isLocked"`

	// Designated leads, stored as partner IDs. Leads always appear in the
	// contribution set, at 0 percent if they have no credited effort.
	ProjectLeadID string `gorm:"type:char(36)" json:"projectLeadId,omitempty"`
	TechLeadID    string `gorm:"type:char(36)" json:"techLeadId,omitempty"`
	CommsLeadID   string `gorm:"type:char(36)" json:"commsLeadId,omitempty"`
	QALeadID      string `gorm:"type:char(36)" json:"qaLeadId,omitempty"`
	SalesLeadID   string `gorm:"type:char(36)" json:"salesLeadId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Project
func (Project) TableName() string {
	return "projects"
}

// BeforeCreate assigns a UUID when none was provided
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// LeadIDs returns the designated lead partner IDs, deduplicated, blanks dropped.
func (p *Project) LeadIDs() []string {
	seen := make(map[string]struct{})
	var leads []string
	for _, id := range []string{p.ProjectLeadID, p.TechLeadID, p.CommsLeadID, p.QALeadID, p.SalesLeadID} {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		leads = append(leads, id)
	}
	return leads
}
