package repositories

import (
	"errors"

	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/apperr"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/models"

	"gorm.io/gorm"
)

// ResourceRepository handles resource metadata operations.
type ResourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository creates a new resource repository.
func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// Create inserts a new resource row.
func (r *ResourceRepository) Create(resource *models.Resource) error {
	return r.db.Create(resource).Error
}

// GetByID retrieves a resource with its uploader preloaded.
func (r *ResourceRepository) GetByID(id uint) (*models.Resource, error) {
	var resource models.Resource
	err := r.db.Preload("User").First(&resource, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

// GetOwned retrieves a resource only if it belongs to userID. A missing
// row and a row owned by someone else are indistinguishable to the caller.
func (r *ResourceRepository) GetOwned(id, userID uint) (*models.Resource, error) {
	var resource models.Resource
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&resource).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

// ListByUser retrieves a user's own uploads, newest first.
func (r *ResourceRepository) ListByUser(userID uint) ([]models.Resource, error) {
	var resources []models.Resource
	err := r.db.Where("user_id = ?", userID).
		Order("upload_date DESC").
		Find(&resources).Error
	return resources, err
}

// ListAll retrieves every resource with uploader info, newest first.
// Privacy filtering is the caller's job: listings show all rows and only
// annotate accessibility.
func (r *ResourceRepository) ListAll() ([]models.Resource, error) {
	var resources []models.Resource
	err := r.db.Preload("User").
		Order("upload_date DESC").
		Find(&resources).Error
	return resources, err
}

// Update persists metadata changes on an already-ownership-checked row.
// The stored file and its name are never touched here.
func (r *ResourceRepository) Update(resource *models.Resource) error {
	return r.db.Save(resource).Error
}

// Delete removes a resource row. Reviews and ledger rows go with it via
// the store-level cascade.
func (r *ResourceRepository) Delete(id uint) error {
	return r.db.Delete(&models.Resource{}, id).Error
}

// CountByUser returns how many resources a user has uploaded.
func (r *ResourceRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Resource{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
