package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
)

type ReviewService interface {
	// CheckMovie reports repository.ErrNotFound when no movie has movieID.
	CheckMovie(ctx context.Context, movieID int64) error
	// AddReview stores a review for movieID and returns the movie's slug
	// for the redirect.
	AddReview(ctx context.Context, movieID int64, in dto.CreateReviewDTO) (string, error)
}

type reviewService struct {
	reviews repository.ReviewRepository
	movies  *repository.MovieRepo
	log     *slog.Logger
}

func NewReviewService(reviews repository.ReviewRepository, movies *repository.MovieRepo, log *slog.Logger) ReviewService {
	if log == nil {
		log = slog.Default()
	}
	return &reviewService{reviews: reviews, movies: movies, log: log}
}

func (s *reviewService) CheckMovie(ctx context.Context, movieID int64) error {
	_, err := s.movies.GetByID(ctx, movieID)
	return err
}

func (s *reviewService) AddReview(ctx context.Context, movieID int64, in dto.CreateReviewDTO) (string, error) {
	movie, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		return "", err
	}

	verr := &ValidationError{}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		verr.Add("name", "This field is required.")
	}
	if strings.TrimSpace(in.Text) == "" {
		verr.Add("text", "This field is required.")
	}

	var parentID *int64
	if in.Parent != nil && *in.Parent > 0 {
		parent, err := s.reviews.GetByID(ctx, *in.Parent)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			verr.Add("parent", "Review to reply to does not exist.")
		case err != nil:
			return "", err
		case parent.MovieID != movie.ID:
			verr.Add("parent", "Review to reply to belongs to another movie.")
		default:
			parentID = &parent.ID
		}
	}
	if !verr.Empty() {
		return "", verr
	}

	review := &models.Review{
		Name:     name,
		Email:    strings.TrimSpace(in.Email),
		Text:     in.Text,
		ParentID: parentID,
		MovieID:  movie.ID,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return "", err
	}

	s.log.InfoContext(ctx, "review created", "review_id", review.ID, "movie_id", movie.ID, "reply", parentID != nil)
	return movie.URL, nil
}
