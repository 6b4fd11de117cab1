package repositories

import (
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/models"

	"gorm.io/gorm"
)

// DownloadRepository handles the append-only download ledger.
type DownloadRepository struct {
	db *gorm.DB
}

// NewDownloadRepository creates a new download repository.
func NewDownloadRepository(db *gorm.DB) *DownloadRepository {
	return &DownloadRepository{db: db}
}

// Append records one download. Repeat downloads of the same resource by
// the same user append again; rows are never updated.
func (r *DownloadRepository) Append(resourceID, userID uint) error {
	event := models.DownloadEvent{
		ResourceID: resourceID,
		UserID:     userID,
	}
	return r.db.Create(&event).Error
}

// ListByUser retrieves a user's download history with the resource and
// its uploader preloaded, newest first.
func (r *DownloadRepository) ListByUser(userID uint) ([]models.DownloadEvent, error) {
	var events []models.DownloadEvent
	err := r.db.Preload("Resource").Preload("Resource.User").
		Where("user_id = ?", userID).
		Order("download_date DESC").
		Find(&events).Error
	return events, err
}

// CountByUser returns the total number of downloads by a user.
func (r *DownloadRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.DownloadEvent{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// DistinctResourceCountByUser returns how many different resources a user
// has downloaded.
func (r *DownloadRepository) DistinctResourceCountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.DownloadEvent{}).
		Where("user_id = ?", userID).
		Distinct("resource_id").
		Count(&count).Error
	return count, err
}
