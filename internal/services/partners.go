package services

import (
	"errors"

	"github.com/jointventurehq/partnerbooks/internal/models"
	"github.com/jointventurehq/partnerbooks/internal/types"
	"gorm.io/gorm"
)

// PartnerInput is the payload for registering a partner.
type PartnerInput struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// CreatePartner registers a partner with zero equity and zero accumulators.
func CreatePartner(db *gorm.DB, input PartnerInput) (*models.Partner, error) {
	if input.UserID == "" {
		return nil, types.NewValidation("partner userId is required")
	}
	if input.Name == "" {
		return nil, types.NewValidation("partner name is required")
	}

	var count int64
	if err := db.Model(&models.Partner{}).Where("user_id = ?", input.UserID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, types.NewConflict("partner for user '%s' already exists", input.UserID)
	}

	partner := models.Partner{
		UserID: input.UserID,
		Name:   input.Name,
	}
	if err := db.Create(&partner).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

// GetPartner loads one partner by id.
func GetPartner(db *gorm.DB, partnerID string) (*models.Partner, error) {
	var partner models.Partner
	if err := db.Where("id = ?", partnerID).First(&partner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFound("partner", partnerID)
		}
		return nil, err
	}
	return &partner, nil
}

// ListPartners returns all partners in stable id order.
func ListPartners(db *gorm.DB) ([]models.Partner, error) {
	var partners []models.Partner
	if err := db.Order("id").Find(&partners).Error; err != nil {
		return nil, err
	}
	return partners, nil
}

// ListCapitalInjections returns the capital ledger, newest first.
func ListCapitalInjections(db *gorm.DB) ([]models.CapitalInjection, error) {
	var entries []models.CapitalInjection
	if err := db.Order("date DESC, id").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
