// Package adminsite declares the back-office screen of every catalog entity.
package adminsite

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"moviehub/internal/admin"
	"moviehub/internal/media"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
	"moviehub/internal/microservices/http-api/service"

	"gorm.io/gorm"
)

// NewSite registers every catalog screen under cfg.
func NewSite(cfg admin.SiteConfig, db *gorm.DB, storage *media.Storage, log *slog.Logger) (*admin.Site, error) {
	if log == nil {
		log = slog.Default()
	}

	builders := []func() (admin.Screen, error){
		func() (admin.Screen, error) { return categoryScreen(db) },
		func() (admin.Screen, error) { return genreScreen(db) },
		func() (admin.Screen, error) { return movieScreen(db, storage, log) },
		func() (admin.Screen, error) { return movieShotScreen(db, storage) },
		func() (admin.Screen, error) { return actorScreen(db, storage) },
		func() (admin.Screen, error) { return ratingScreen(db) },
		func() (admin.Screen, error) { return ratingStarScreen(db) },
		func() (admin.Screen, error) { return reviewScreen(db) },
	}

	screens := make([]admin.Screen, 0, len(builders))
	for _, build := range builders {
		screen, err := build()
		if err != nil {
			return nil, err
		}
		screens = append(screens, screen)
	}
	return admin.NewSite(cfg, screens...)
}

func categoryScreen(db *gorm.DB) (admin.Screen, error) {
	repo := repository.NewCategoryRepo(db)
	toModel := func(id int64, payload []byte) (*models.Category, error) {
		var form CategoryForm
		if err := decode(payload, &form); err != nil {
			return nil, err
		}
		return &models.Category{ID: id, Name: form.Name, Description: form.Description, URL: form.URL}, nil
	}

	return admin.NewModelScreen(db, admin.Config[models.Category]{
		Name:              "category",
		VerboseName:       "Category",
		VerboseNamePlural: "Categories",
		Table:             "categories",
		ID:                func(c models.Category) int64 { return c.ID },
		Columns: []admin.Column[models.Category]{
			{Name: "id", Label: "ID", Value: func(c models.Category) interface{} { return c.ID }},
			{Name: "name", Label: "Name", Value: func(c models.Category) interface{} { return c.Name }},
			{Name: "url", Label: "Url", Value: func(c models.Category) interface{} { return c.URL }},
		},
		ListDisplayLinks: []string{"name"},
		Fields: []admin.Field[models.Category]{
			{Name: "name", Label: "Name", Value: func(c models.Category) interface{} { return c.Name }},
			{Name: "description", Label: "Description", Value: func(c models.Category) interface{} { return c.Description }},
			{Name: "url", Label: "Url", Value: func(c models.Category) interface{} { return c.URL }},
		},
		Create: func(ctx context.Context, payload []byte) (int64, error) {
			c, err := toModel(0, payload)
			if err != nil {
				return 0, err
			}
			if err := repo.Create(ctx, c); err != nil {
				return 0, slugConflict(err)
			}
			return c.ID, nil
		},
		Update: func(ctx context.Context, id int64, payload []byte) error {
			c, err := toModel(id, payload)
			if err != nil {
				return err
			}
			return slugConflict(repo.Update(ctx, c))
		},
		Delete: repo.Delete,
	})
}

func genreScreen(db *gorm.DB) (admin.Screen, error) {
	repo := repository.NewGenreRepo(db)
	toModel := func(id int64, payload []byte) (*models.Genre, error) {
		var form GenreForm
		if err := decode(payload, &form); err != nil {
			return nil, err
		}
		return &models.Genre{ID: id, Name: form.Name, Description: form.Description, URL: form.URL}, nil
	}

	return admin.NewModelScreen(db, admin.Config[models.Genre]{
		Name:        "genre",
		VerboseName: "Genre",
		Table:       "genres",
		ID:          func(g models.Genre) int64 { return g.ID },
		Columns: []admin.Column[models.Genre]{
			{Name: "name", Label: "Name", Value: func(g models.Genre) interface{} { return g.Name }},
			{Name: "url", Label: "Url", Value: func(g models.Genre) interface{} { return g.URL }},
		},
		Fields: []admin.Field[models.Genre]{
			{Name: "name", Label: "Name", Value: func(g models.Genre) interface{} { return g.Name }},
			{Name: "description", Label: "Description", Value: func(g models.Genre) interface{} { return g.Description }},
			{Name: "url", Label: "Url", Value: func(g models.Genre) interface{} { return g.URL }},
		},
		Create: func(ctx context.Context, payload []byte) (int64, error) {
			g, err := toModel(0, payload)
			if err != nil {
				return 0, err
			}
			if err := repo.Create(ctx, g); err != nil {
				return 0, slugConflict(err)
			}
			return g.ID, nil
		},
		Update: func(ctx context.Context, id int64, payload []byte) error {
			g, err := toModel(id, payload)
			if err != nil {
				return err
			}
			return slugConflict(repo.Update(ctx, g))
		},
		Delete: repo.Delete,
	})
}

func actorScreen(db *gorm.DB, storage *media.Storage) (admin.Screen, error) {
	repo := repository.NewActorRepo(db)
	preview := func(a models.Actor) interface{} {
		return admin.ImagePreview(storage.URL(a.Image), admin.ThumbWidth, admin.ThumbHeight)
	}
	toModel := func(id int64, payload []byte) (*models.Actor, error) {
		var form ActorForm
		if err := decode(payload, &form); err != nil {
			return nil, err
		}
		return &models.Actor{ID: id, Name: form.Name, Age: form.Age, Description: form.Description, Image: form.Image}, nil
	}

	return admin.NewModelScreen(db, admin.Config[models.Actor]{
		Name:        "actor",
		VerboseName: "Actor and director",
		Table:       "actors",
		ID:          func(a models.Actor) int64 { return a.ID },
		Columns: []admin.Column[models.Actor]{
			{Name: "name", Label: "Name", Value: func(a models.Actor) interface{} { return a.Name }},
			{Name: "age", Label: "Age", Value: func(a models.Actor) interface{} { return a.Age }},
			{Name: "get_image", Label: "Image", Value: preview},
		},
		Fields: []admin.Field[models.Actor]{
			{Name: "name", Label: "Name", Value: func(a models.Actor) interface{} { return a.Name }},
			{Name: "age", Label: "Age", Value: func(a models.Actor) interface{} { return a.Age }},
			{Name: "description", Label: "Description", Value: func(a models.Actor) interface{} { return a.Description }},
			{Name: "image", Label: "Image", HelpText: "Path under " + media.ActorsDir, Value: func(a models.Actor) interface{} { return a.Image }},
			{Name: "get_image", Label: "Image", Value: preview},
		},
		ReadonlyFields: []string{"get_image"},
		Create: func(ctx context.Context, payload []byte) (int64, error) {
			a, err := toModel(0, payload)
			if err != nil {
				return 0, err
			}
			if err := repo.Create(ctx, a); err != nil {
				return 0, err
			}
			return a.ID, nil
		},
		Update: func(ctx context.Context, id int64, payload []byte) error {
			a, err := toModel(id, payload)
			if err != nil {
				return err
			}
			return repo.Update(ctx, a)
		},
		Delete: repo.Delete,
	})
}

func movieShotScreen(db *gorm.DB, storage *media.Storage) (admin.Screen, error) {
	shots := repository.NewMovieShotRepo(db)
	movies := repository.NewMovieRepo(db)
	preview := func(s models.MovieShot) interface{} {
		return admin.ImagePreview(storage.URL(s.Image), admin.ThumbWidth, admin.ThumbHeight)
	}
	movieLabel := func(s models.MovieShot) interface{} {
		if s.Movie == nil {
			return "-"
		}
		return s.Movie.String()
	}
	toModel := func(ctx context.Context, id int64, payload []byte) (*models.MovieShot, error) {
		var form MovieShotForm
		if err := decode(payload, &form); err != nil {
			return nil, err
		}
		if _, err := movies.GetByID(ctx, form.MovieID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, service.NewValidationError("movie_id", "Select a valid choice.")
			}
			return nil, err
		}
		return &models.MovieShot{ID: id, Title: form.Title, Description: form.Description, Image: form.Image, MovieID: form.MovieID}, nil
	}

	return admin.NewModelScreen(db, admin.Config[models.MovieShot]{
		Name:         "movie_shot",
		VerboseName:  "Movie shot",
		Table:        "movie_shots",
		ID:           func(s models.MovieShot) int64 { return s.ID },
		ListPreloads: []string{"Movie"},
		Columns: []admin.Column[models.MovieShot]{
			{Name: "title", Label: "Title", Value: func(s models.MovieShot) interface{} { return s.Title }},
			{Name: "movie", Label: "Movie", Value: movieLabel},
			{Name: "get_image", Label: "Image", Value: preview},
		},
		DetailPreloads: []string{"Movie"},
		Fields: []admin.Field[models.MovieShot]{
			{Name: "title", Label: "Title", Value: func(s models.MovieShot) interface{} { return s.Title }},
			{Name: "description", Label: "Description", Value: func(s models.MovieShot) interface{} { return s.Description }},
			{Name: "image", Label: "Image", HelpText: "Path under " + media.MovieShotsDir, Value: func(s models.MovieShot) interface{} { return s.Image }},
			{Name: "get_image", Label: "Image", Value: preview},
			{Name: "movie", Label: "Movie", Value: func(s models.MovieShot) interface{} {
				return admin.Choice{Value: strconv.FormatInt(s.MovieID, 10), Label: movieLabel(s).(string)}
			}},
		},
		ReadonlyFields: []string{"get_image"},
		Create: func(ctx context.Context, payload []byte) (int64, error) {
			s, err := toModel(ctx, 0, payload)
			if err != nil {
				return 0, err
			}
			if err := shots.Create(ctx, s); err != nil {
				return 0, err
			}
			return s.ID, nil
		},
		Update: func(ctx context.Context, id int64, payload []byte) error {
			s, err := toModel(ctx, id, payload)
			if err != nil {
				return err
			}
			return shots.Update(ctx, s)
		},
		Delete: shots.Delete,
	})
}

// slugConflict reports a duplicate url as a form error on that field.
func slugConflict(err error) error {
	if errors.Is(err, repository.ErrConflict) {
		return service.NewValidationError("url", "An object with this url already exists.")
	}
	return err
}

func choicesOfActors(list []models.Actor) []admin.Choice {
	out := make([]admin.Choice, 0, len(list))
	for _, a := range list {
		out = append(out, admin.Choice{Value: strconv.FormatInt(a.ID, 10), Label: a.Name})
	}
	return out
}
