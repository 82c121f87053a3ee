package repository

import (
	"context"
	"time"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// StaffUserRepository defines the data operations on back-office accounts.
type StaffUserRepository interface {
	Create(ctx context.Context, user *models.StaffUser) error
	FindByUsername(ctx context.Context, username string) (*models.StaffUser, error)
	FindByID(ctx context.Context, id string) (*models.StaffUser, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

// staffUserRepository is the GORM implementation of StaffUserRepository.
type staffUserRepository struct {
	db *gorm.DB
}

func NewStaffUserRepository(db *gorm.DB) StaffUserRepository {
	return &staffUserRepository{db: db}
}

func (r *staffUserRepository) Create(ctx context.Context, user *models.StaffUser) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *staffUserRepository) FindByUsername(ctx context.Context, username string) (*models.StaffUser, error) {
	var user models.StaffUser
	// return nil on miss so callers never mistake a zero-value user for a hit
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *staffUserRepository) FindByID(ctx context.Context, id string) (*models.StaffUser, error) {
	var user models.StaffUser
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *staffUserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.StaffUser{}).Where("id = ?", id).Update("last_login", at).Error
}
