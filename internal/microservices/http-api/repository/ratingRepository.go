package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingSummary aggregates the star values given to one movie.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type RatingRepository interface {
	Upsert(ctx context.Context, rating *models.Rating) error
	Summary(ctx context.Context, movieID int64) (RatingSummary, error)
	GetStar(ctx context.Context, starID int64) (*models.RatingStar, error)
	ListStars(ctx context.Context) ([]models.RatingStar, error)
	CreateStar(ctx context.Context, star *models.RatingStar) error
	UpdateStar(ctx context.Context, star *models.RatingStar) error
	DeleteStar(ctx context.Context, starID int64) error
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert stores the rating, replacing the star of an earlier vote from the
// same IP for the same movie.
func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ip"}, {Name: "movie_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"star_id"}),
		}).
		Create(rating).Error
	if err != nil {
		return fmt.Errorf("upsert rating: %w", translateError(err))
	}
	return nil
}

// Summary averages the star values of a movie's ratings.
func (r *ratingRepository) Summary(ctx context.Context, movieID int64) (RatingSummary, error) {
	var row struct {
		Average *float64
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Table("ratings").
		Select("AVG(rating_stars.value) AS average, COUNT(ratings.id) AS count").
		Joins("JOIN rating_stars ON rating_stars.id = ratings.star_id").
		Where("ratings.movie_id = ?", movieID).
		Scan(&row).Error
	if err != nil {
		return RatingSummary{}, fmt.Errorf("summarize ratings: %w", err)
	}
	summary := RatingSummary{Count: row.Count}
	if row.Average != nil {
		summary.Average = *row.Average
	}
	return summary, nil
}

func (r *ratingRepository) GetStar(ctx context.Context, starID int64) (*models.RatingStar, error) {
	var star models.RatingStar
	if err := r.db.WithContext(ctx).First(&star, starID).Error; err != nil {
		return nil, translateError(err)
	}
	return &star, nil
}

func (r *ratingRepository) ListStars(ctx context.Context) ([]models.RatingStar, error) {
	var stars []models.RatingStar
	if err := r.db.WithContext(ctx).Order("value asc").Find(&stars).Error; err != nil {
		return nil, fmt.Errorf("list rating stars: %w", err)
	}
	return stars, nil
}

func (r *ratingRepository) CreateStar(ctx context.Context, star *models.RatingStar) error {
	if err := r.db.WithContext(ctx).Create(star).Error; err != nil {
		return fmt.Errorf("create rating star: %w", translateError(err))
	}
	return nil
}

func (r *ratingRepository) UpdateStar(ctx context.Context, star *models.RatingStar) error {
	res := r.db.WithContext(ctx).Model(star).Select("*").Updates(star)
	if res.Error != nil {
		return fmt.Errorf("update rating star: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteStar removes a star value and every rating that used it.
func (r *ratingRepository) DeleteStar(ctx context.Context, starID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("star_id = ?", starID).Delete(&models.Rating{}).Error; err != nil {
			return fmt.Errorf("delete ratings of star: %w", err)
		}
		res := tx.Delete(&models.RatingStar{}, starID)
		if res.Error != nil {
			return fmt.Errorf("delete rating star: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
