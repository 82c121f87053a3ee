package service

import (
	"context"
	"errors"

	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
)

type RatingService interface {
	// AddRating records ip's vote for a movie, replacing any earlier vote
	// from the same address.
	AddRating(ctx context.Context, ip string, movieID, starID int64) error
}

type ratingService struct {
	ratings repository.RatingRepository
	movies  *repository.MovieRepo
}

func NewRatingService(ratings repository.RatingRepository, movies *repository.MovieRepo) RatingService {
	return &ratingService{ratings: ratings, movies: movies}
}

func (s *ratingService) AddRating(ctx context.Context, ip string, movieID, starID int64) error {
	verr := &ValidationError{}
	if _, err := s.ratings.GetStar(ctx, starID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		verr.Add("star", "Select a valid choice.")
	}
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		verr.Add("movie", "Select a valid choice.")
	}
	if !verr.Empty() {
		return verr
	}

	return s.ratings.Upsert(ctx, &models.Rating{IP: ip, StarID: starID, MovieID: movieID})
}
