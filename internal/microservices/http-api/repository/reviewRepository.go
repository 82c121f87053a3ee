package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, reviewID int64) error
	GetByID(ctx context.Context, reviewID int64) (*models.Review, error)
	GetByMovie(ctx context.Context, movieID int64) ([]models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create a new review
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", translateError(err))
	}
	return nil
}

// Update rewrites the text and parent of an existing review. Name and email
// are never touched once submitted.
func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	res := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", review.ID).
		Updates(map[string]interface{}{
			"text":      review.Text,
			"parent_id": review.ParentID,
		})
	if res.Error != nil {
		return fmt.Errorf("update review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a review; its replies stay and become top-level.
func (r *reviewRepository) Delete(ctx context.Context, reviewID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Review{}).
			Where("parent_id = ?", reviewID).
			Update("parent_id", nil).Error; err != nil {
			return fmt.Errorf("detach replies: %w", err)
		}
		res := tx.Delete(&models.Review{}, reviewID)
		if res.Error != nil {
			return fmt.Errorf("delete review: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// GetByID retrieves a review by its ID
func (r *reviewRepository) GetByID(ctx context.Context, reviewID int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, reviewID).Error; err != nil {
		return nil, translateError(err)
	}
	return &review, nil
}

// GetByMovie returns every review of a movie, oldest first, replies included.
func (r *reviewRepository) GetByMovie(ctx context.Context, movieID int64) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Order("created_at ASC, id ASC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("get reviews by movie: %w", err)
	}
	return reviews, nil
}
