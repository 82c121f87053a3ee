package adminsite

import (
	"context"
	"errors"

	"moviehub/internal/admin"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
	"moviehub/internal/microservices/http-api/service"

	"gorm.io/gorm"
)

func reviewScreen(db *gorm.DB) (admin.Screen, error) {
	repo := repository.NewReviewRepository(db)
	parent := func(r models.Review) interface{} {
		if r.Parent == nil {
			return "-"
		}
		return r.Parent.String()
	}
	movie := func(r models.Review) interface{} {
		if r.Movie == nil {
			return "-"
		}
		return r.Movie.String()
	}

	return admin.NewModelScreen(db, admin.Config[models.Review]{
		Name:         "review",
		VerboseName:  "Review",
		Table:        "reviews",
		ID:           func(r models.Review) int64 { return r.ID },
		ListPreloads: []string{"Movie", "Parent.Movie"},
		Columns: []admin.Column[models.Review]{
			{Name: "name", Label: "Name", Value: func(r models.Review) interface{} { return r.Name }},
			{Name: "email", Label: "Email", Value: func(r models.Review) interface{} { return r.Email }},
			{Name: "parent", Label: "Parent", Value: parent},
			{Name: "movie", Label: "Movie", Value: movie},
			{Name: "id", Label: "ID", Value: func(r models.Review) interface{} { return r.ID }},
		},
		DetailPreloads: []string{"Movie", "Parent.Movie"},
		Fields: []admin.Field[models.Review]{
			{Name: "name", Label: "Name", Value: func(r models.Review) interface{} { return r.Name }},
			{Name: "email", Label: "Email", Value: func(r models.Review) interface{} { return r.Email }},
			{Name: "text", Label: "Message", Value: func(r models.Review) interface{} { return r.Text }},
			{Name: "parent", Label: "Parent", Value: func(r models.Review) interface{} { return r.ParentID }},
			{Name: "movie", Label: "Movie", Value: movie},
		},
		ReadonlyFields: []string{"name", "email", "movie"},
		Update: func(ctx context.Context, id int64, payload []byte) error {
			var form ReviewForm
			if err := decode(payload, &form); err != nil {
				return err
			}
			existing, err := repo.GetByID(ctx, id)
			if err != nil {
				return err
			}
			parentID, err := checkParent(ctx, repo, existing, form.Parent)
			if err != nil {
				return err
			}
			existing.Text = form.Text
			existing.ParentID = parentID
			return repo.Update(ctx, existing)
		},
		Delete: repo.Delete,
	})
}

// ratingScreen only lists ratings; visitors create them.
func ratingScreen(db *gorm.DB) (admin.Screen, error) {
	star := func(r models.Rating) interface{} {
		if r.Star == nil {
			return "-"
		}
		return r.Star.String()
	}
	movie := func(r models.Rating) interface{} {
		if r.Movie == nil {
			return "-"
		}
		return r.Movie.String()
	}

	return admin.NewModelScreen(db, admin.Config[models.Rating]{
		Name:         "rating",
		VerboseName:  "Rating",
		Table:        "ratings",
		ID:           func(r models.Rating) int64 { return r.ID },
		ListPreloads: []string{"Star", "Movie"},
		Columns: []admin.Column[models.Rating]{
			{Name: "star", Label: "Star", Value: star},
			{Name: "movie", Label: "Movie", Value: movie},
			{Name: "ip", Label: "IP address", Value: func(r models.Rating) interface{} { return r.IP }},
		},
		DetailPreloads: []string{"Star", "Movie"},
		Fields: []admin.Field[models.Rating]{
			{Name: "ip", Label: "IP address", Value: func(r models.Rating) interface{} { return r.IP }},
			{Name: "star", Label: "Star", Value: star},
			{Name: "movie", Label: "Movie", Value: movie},
		},
	})
}

func ratingStarScreen(db *gorm.DB) (admin.Screen, error) {
	repo := repository.NewRatingRepository(db)
	toModel := func(id int64, payload []byte) (*models.RatingStar, error) {
		var form RatingStarForm
		if err := decode(payload, &form); err != nil {
			return nil, err
		}
		return &models.RatingStar{ID: id, Value: form.Value}, nil
	}

	return admin.NewModelScreen(db, admin.Config[models.RatingStar]{
		Name:        "rating_star",
		VerboseName: "Rating star",
		Table:       "rating_stars",
		ID:          func(s models.RatingStar) int64 { return s.ID },
		Fields: []admin.Field[models.RatingStar]{
			{Name: "value", Label: "Value", Value: func(s models.RatingStar) interface{} { return s.Value }},
		},
		Create: func(ctx context.Context, payload []byte) (int64, error) {
			s, err := toModel(0, payload)
			if err != nil {
				return 0, err
			}
			if err := repo.CreateStar(ctx, s); err != nil {
				return 0, err
			}
			return s.ID, nil
		},
		Update: func(ctx context.Context, id int64, payload []byte) error {
			s, err := toModel(id, payload)
			if err != nil {
				return err
			}
			return repo.UpdateStar(ctx, s)
		},
		Delete: repo.DeleteStar,
	})
}

// checkParent validates a reply target: it must exist, belong to the same
// movie and must not be the review itself or one of its replies. Nil or
// non-positive means top-level.
func checkParent(ctx context.Context, reviews repository.ReviewRepository, review *models.Review, parent *int64) (*int64, error) {
	if parent == nil || *parent <= 0 {
		return nil, nil
	}
	if *parent == review.ID {
		return nil, service.NewValidationError("parent", "A review cannot reply to itself.")
	}
	p, err := reviews.GetByID(ctx, *parent)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, service.NewValidationError("parent", "Review to reply to does not exist.")
	}
	if err != nil {
		return nil, err
	}
	if p.MovieID != review.MovieID {
		return nil, service.NewValidationError("parent", "Review to reply to belongs to another movie.")
	}

	visited := map[int64]bool{p.ID: true}
	for cur := p; cur.ParentID != nil; {
		next := *cur.ParentID
		if next == review.ID {
			return nil, service.NewValidationError("parent", "Review to reply to is one of its replies.")
		}
		if visited[next] {
			break
		}
		visited[next] = true
		cur, err = reviews.GetByID(ctx, next)
		if errors.Is(err, repository.ErrNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return &p.ID, nil
}
