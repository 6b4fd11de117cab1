package repositories

import (
	"errors"
	"fmt"
	"math"

	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/apperr"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewRepository handles review data operations.
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// RatingSummary is the on-demand aggregate over a resource's reviews.
type RatingSummary struct {
	Average float64 `json:"avg_rating"`
	Count   int64   `json:"review_count"`
}

// Upsert inserts the review or, if a row already exists for the
// (resource, user) pair, replaces its rating and text in place. The
// conflict target is the composite unique index, so two concurrent
// submissions resolve to exactly one surviving row inside the store.
// An out-of-range rating is rejected before any write; the check
// constraint on the table backs this up for writes that bypass the
// repository.
func (r *ReviewRepository) Upsert(review *models.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("rating %d out of range: %w", review.Rating, apperr.ErrValidation)
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "resource_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"rating":      review.Rating,
			"review_text": review.ReviewText,
			"updated_at":  gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(review).Error
}

// Get retrieves one user's review of a resource.
func (r *ReviewRepository) Get(resourceID, userID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("resource_id = ? AND user_id = ?", resourceID, userID).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByResource retrieves all reviews of a resource with reviewer info,
// newest first.
func (r *ReviewRepository) ListByResource(resourceID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("User").
		Where("resource_id = ?", resourceID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// Delete removes one user's review of a resource. Deleting a review that
// does not exist reports apperr.ErrNotFound.
func (r *ReviewRepository) Delete(resourceID, userID uint) error {
	res := r.db.Where("resource_id = ? AND user_id = ?", resourceID, userID).
		Delete(&models.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Rating recomputes the aggregate for a resource. No aggregate is ever
// persisted, so the result cannot drift from the review table. An empty
// set yields (0, 0).
func (r *ReviewRepository) Rating(resourceID uint) (RatingSummary, error) {
	var row struct {
		Avg   float64
		Count int64
	}
	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("resource_id = ?", resourceID).
		Scan(&row).Error
	if err != nil {
		return RatingSummary{}, err
	}
	return RatingSummary{
		Average: math.Round(row.Avg*10) / 10,
		Count:   row.Count,
	}, nil
}

// CountByUser returns how many reviews a user has written.
func (r *ReviewRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Review{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
