package repo

import (
	"converter"
	"converter/internal/api/models"

	"gorm.io/gorm"
)

type ConversionRepository struct {
	Db *gorm.DB
}

func NewConversionRepository() *ConversionRepository {
	return &ConversionRepository{Db: converter.DB}
}

// Create persists a new conversion record
func (slf *ConversionRepository) Create(conversion *models.Conversion) error {
	return slf.Db.Create(conversion).Error
}

// FindAll retrieves all conversions, newest first
func (slf *ConversionRepository) FindAll() ([]models.Conversion, error) {
	var conversions []models.Conversion
	err := slf.Db.Order("created_at DESC").Find(&conversions).Error
	return conversions, err
}

// FindByPublicID retrieves a conversion by its public UUID
func (slf *ConversionRepository) FindByPublicID(publicID string) (models.Conversion, error) {
	var conversion models.Conversion
	err := slf.Db.Where("public_id = ?", publicID).First(&conversion).Error
	return conversion, err
}

// Delete removes a conversion by its public UUID
func (slf *ConversionRepository) Delete(publicID string) error {
	return slf.Db.Where("public_id = ?", publicID).Delete(&models.Conversion{}).Error
}
