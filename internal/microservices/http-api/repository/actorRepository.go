package repository

import (
	"context"
	"fmt"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ActorRepo struct {
	db *gorm.DB
}

func NewActorRepo(db *gorm.DB) *ActorRepo {
	return &ActorRepo{db: db}
}

// GetByName looks an actor up by exact name, the public lookup key.
func (r *ActorRepo) GetByName(ctx context.Context, name string) (*models.Actor, error) {
	var a models.Actor
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id asc").First(&a).Error; err != nil {
		return nil, translateError(err)
	}
	return &a, nil
}

// Filmography returns the published movies the actor played in and directed.
func (r *ActorRepo) Filmography(ctx context.Context, actorID int64) (acted, directed []models.Movie, err error) {
	db := r.db.WithContext(ctx)
	if err = db.
		Where("draft = ?", false).
		Where("id IN (SELECT movie_id FROM movie_actors WHERE actor_id = ?)", actorID).
		Order("year desc").
		Find(&acted).Error; err != nil {
		return nil, nil, fmt.Errorf("load acted movies: %w", err)
	}
	if err = db.
		Where("draft = ?", false).
		Where("id IN (SELECT movie_id FROM movie_directors WHERE actor_id = ?)", actorID).
		Order("year desc").
		Find(&directed).Error; err != nil {
		return nil, nil, fmt.Errorf("load directed movies: %w", err)
	}
	return acted, directed, nil
}

func (r *ActorRepo) Create(ctx context.Context, a *models.Actor) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("create actor: %w", translateError(err))
	}
	return nil
}

func (r *ActorRepo) Update(ctx context.Context, a *models.Actor) error {
	res := r.db.WithContext(ctx).Model(a).Select("*").Updates(a)
	if res.Error != nil {
		return fmt.Errorf("update actor: %w", translateError(res.Error))
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the actor from every cast and director list, then the actor.
func (r *ActorRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"movie_actors", "movie_directors"} {
			if err := tx.Exec("DELETE FROM "+table+" WHERE actor_id = ?", id).Error; err != nil {
				return fmt.Errorf("detach actor from %s: %w", table, err)
			}
		}
		res := tx.Delete(&models.Actor{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete actor: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
