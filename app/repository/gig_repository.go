package repository

import (
	"github.com/gigledger/GigLedger/app/models"
	"gorm.io/gorm"
)

// gigRepository implements the GigRepository interface
type gigRepository struct {
	db *gorm.DB
}

// NewGigRepository creates a new gig repository instance
func NewGigRepository(db *gorm.DB) GigRepository {
	return &gigRepository{db: db}
}

// Create creates a new gig in the database
func (r *gigRepository) Create(gig *models.Gig) error {
	return r.db.Create(gig).Error
}

// GetByID retrieves a gig by its ID
func (r *gigRepository) GetByID(id uint) (*models.Gig, error) {
	var gig models.Gig
	err := r.db.First(&gig, id).Error
	if err != nil {
		return nil, err
	}
	return &gig, nil
}

// GetByUserID retrieves a user's gigs with pagination, newest first
func (r *gigRepository) GetByUserID(userID uint, offset, limit int) ([]models.Gig, error) {
	var gigs []models.Gig
	err := r.db.Where("user_id = ?", userID).
		Order("date DESC").Offset(offset).Limit(limit).Find(&gigs).Error
	return gigs, err
}

// GetReceivedUnpaidByBand retrieves gigs whose payment came in but whose
// band share has not been paid out yet
func (r *gigRepository) GetReceivedUnpaidByBand(userID uint, bandName string) ([]models.Gig, error) {
	var gigs []models.Gig
	err := r.db.Where("user_id = ? AND band_name = ? AND payment_received = ? AND band_paid = ?",
		userID, bandName, true, false).
		Order("date ASC").Find(&gigs).Error
	return gigs, err
}

// Update updates an existing gig in the database
func (r *gigRepository) Update(gig *models.Gig) error {
	return r.db.Save(gig).Error
}

// Delete soft deletes a gig by its ID
func (r *gigRepository) Delete(id uint) error {
	return r.db.Delete(&models.Gig{}, id).Error
}

// Count returns the total number of gigs
func (r *gigRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Gig{}).Count(&count).Error
	return count, err
}

// CountByUserID returns the number of gigs owned by a user
func (r *gigRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Gig{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
