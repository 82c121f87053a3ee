package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type MovieShotRepo struct {
	db *gorm.DB
}

func NewMovieShotRepo(db *gorm.DB) *MovieShotRepo {
	return &MovieShotRepo{db: db}
}

func (r *MovieShotRepo) Create(ctx context.Context, s *models.MovieShot) error {
	if err := r.db.WithContext(ctx).Omit("Movie").Create(s).Error; err != nil {
		return fmt.Errorf("create movie shot: %w", translateError(err))
	}
	return nil
}

func (r *MovieShotRepo) Update(ctx context.Context, s *models.MovieShot) error {
	res := r.db.WithContext(ctx).Model(s).Omit("Movie").Select("*").Updates(s)
	if res.Error != nil {
		return fmt.Errorf("update movie shot: %w", translateError(res.Error))
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MovieShotRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.MovieShot{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete movie shot: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MovieShotRepo) GetByID(ctx context.Context, id int64) (*models.MovieShot, error) {
	var s models.MovieShot
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}
