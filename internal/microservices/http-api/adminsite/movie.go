package adminsite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"moviehub/internal/admin"
	"moviehub/internal/media"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
	"moviehub/internal/microservices/http-api/service"

	"gorm.io/gorm"
)

type movieAdmin struct {
	db      *gorm.DB
	movies  *repository.MovieRepo
	storage *media.Storage
	log     *slog.Logger
}

func movieScreen(db *gorm.DB, storage *media.Storage, log *slog.Logger) (admin.Screen, error) {
	m := &movieAdmin{db: db, movies: repository.NewMovieRepo(db), storage: storage, log: log}
	categories := repository.NewCategoryRepo(db)

	poster := func(mv models.Movie) interface{} {
		return admin.ImagePreview(storage.URL(mv.Poster), admin.PosterWidth, admin.PosterHeight)
	}
	category := func(mv models.Movie) interface{} {
		if mv.Category == nil {
			return "-"
		}
		return mv.Category.Name
	}
	field := func(name, label string, v func(models.Movie) interface{}) admin.Field[models.Movie] {
		return admin.Field[models.Movie]{Name: name, Label: label, Value: v}
	}

	return admin.NewModelScreen(db, admin.Config[models.Movie]{
		Name:         "movie",
		VerboseName:  "Movie",
		Table:        "movies",
		ID:           func(mv models.Movie) int64 { return mv.ID },
		Joins:        []string{"LEFT JOIN categories ON categories.id = movies.category_id"},
		ListPreloads: []string{"Category"},
		Columns: []admin.Column[models.Movie]{
			{Name: "title", Label: "Title", Value: func(mv models.Movie) interface{} { return mv.Title }},
			{Name: "category", Label: "Category", Value: category},
			{Name: "url", Label: "Url", Value: func(mv models.Movie) interface{} { return mv.URL }},
			{Name: "draft", Label: "Draft", Value: func(mv models.Movie) interface{} { return mv.Draft }},
		},
		ListEditable: []string{"draft"},
		DecodeInline: func(payload []byte) (map[string]interface{}, error) {
			var form MovieListForm
			if err := decode(payload, &form); err != nil {
				return nil, err
			}
			return map[string]interface{}{"draft": *form.Draft}, nil
		},
		Filters: []admin.Filter{
			{
				Name: "category", Label: "category", Column: "movies.category_id", Numeric: true,
				Choices: func(ctx context.Context) ([]admin.Choice, error) {
					list, err := categories.GetAll(ctx)
					if err != nil {
						return nil, err
					}
					out := make([]admin.Choice, 0, len(list))
					for _, c := range list {
						out = append(out, admin.Choice{Value: strconv.FormatInt(c.ID, 10), Label: c.Name})
					}
					return out, nil
				},
			},
			{
				Name: "year", Label: "year", Column: "movies.year", Numeric: true,
				Choices: func(ctx context.Context) ([]admin.Choice, error) {
					years, err := m.movies.AllYears(ctx)
					if err != nil {
						return nil, err
					}
					out := make([]admin.Choice, 0, len(years))
					for _, y := range years {
						s := strconv.Itoa(y)
						out = append(out, admin.Choice{Value: s, Label: s})
					}
					return out, nil
				},
			},
		},
		SearchFields: []string{"movies.title", "categories.name"},

		DetailPreloads: []string{"Category", "Actors", "Directors", "Genres", "Shots", "Reviews"},
		Fields: []admin.Field[models.Movie]{
			field("title", "Title", func(mv models.Movie) interface{} { return mv.Title }),
			field("tagline", "Tagline", func(mv models.Movie) interface{} { return mv.Tagline }),
			field("description", "Description", func(mv models.Movie) interface{} { return mv.Description }),
			field("poster", "Poster", func(mv models.Movie) interface{} { return mv.Poster }),
			field("get_image", "Poster", poster),
			field("year", "Release date", func(mv models.Movie) interface{} { return mv.Year }),
			field("world_premiere", "World premiere", func(mv models.Movie) interface{} {
				if mv.WorldPremiere.IsZero() {
					return ""
				}
				return mv.WorldPremiere.Format("2006-01-02")
			}),
			field("country", "Country", func(mv models.Movie) interface{} { return mv.Country }),
			field("actors", "Actors", func(mv models.Movie) interface{} { return choicesOfActors(mv.Actors) }),
			field("directors", "Director", func(mv models.Movie) interface{} { return choicesOfActors(mv.Directors) }),
			field("genres", "Genres", func(mv models.Movie) interface{} {
				out := make([]admin.Choice, 0, len(mv.Genres))
				for _, g := range mv.Genres {
					out = append(out, admin.Choice{Value: strconv.FormatInt(g.ID, 10), Label: g.Name})
				}
				return out
			}),
			field("category", "Category", func(mv models.Movie) interface{} {
				if mv.Category == nil {
					return nil
				}
				return admin.Choice{Value: strconv.FormatInt(mv.Category.ID, 10), Label: mv.Category.Name}
			}),
			field("budget", "Budget", func(mv models.Movie) interface{} { return mv.Budget }),
			field("fees_in_usa", "Fees in USA", func(mv models.Movie) interface{} { return mv.FeesInUSA }),
			field("fees_in_world", "Fees in world", func(mv models.Movie) interface{} { return mv.FeesInWorld }),
			field("url", "Url", func(mv models.Movie) interface{} { return mv.URL }),
			field("draft", "Draft", func(mv models.Movie) interface{} { return mv.Draft }),
		},
		ReadonlyFields: []string{"get_image"},
		Fieldsets: []admin.Fieldset{
			{Rows: [][]string{{"title", "tagline"}}},
			{Rows: [][]string{{"description", "poster", "get_image"}}},
			{Rows: [][]string{{"year", "world_premiere", "country"}}},
			{Title: "Actors", Classes: []string{"collapse"}, Rows: [][]string{{"actors", "directors", "genres", "category"}}},
			{Rows: [][]string{{"budget", "fees_in_usa", "fees_in_world"}}},
			{Title: "Options", Rows: [][]string{{"url", "draft"}}},
		},
		Inlines: []admin.Inline[models.Movie]{
			{
				Name:           "shots",
				Title:          "Movie shots",
				Fields:         []string{"title", "description", "image", "get_image"},
				ReadonlyFields: []string{"get_image"},
				Extra:          1,
				Rows: func(mv models.Movie) []map[string]interface{} {
					rows := make([]map[string]interface{}, 0, len(mv.Shots))
					for _, s := range mv.Shots {
						rows = append(rows, map[string]interface{}{
							"id":          s.ID,
							"title":       s.Title,
							"description": s.Description,
							"image":       s.Image,
							"get_image":   admin.ImagePreview(storage.URL(s.Image), admin.PosterWidth, admin.PosterHeight),
						})
					}
					return rows
				},
			},
			{
				Name:           "reviews",
				Title:          "Reviews",
				Fields:         []string{"name", "email", "text", "parent"},
				ReadonlyFields: []string{"name", "email"},
				Extra:          1,
				Rows: func(mv models.Movie) []map[string]interface{} {
					rows := make([]map[string]interface{}, 0, len(mv.Reviews))
					for _, r := range mv.Reviews {
						rows = append(rows, map[string]interface{}{
							"id":     r.ID,
							"name":   r.Name,
							"email":  r.Email,
							"text":   r.Text,
							"parent": r.ParentID,
						})
					}
					return rows
				},
			},
		},

		Actions: []admin.Action{
			{Name: "publish", Label: "Publish", Run: func(ctx context.Context, ids []int64) (string, error) {
				return m.setDraft(ctx, ids, false, "published")
			}},
			{Name: "unpublish", Label: "Unpublish", Run: func(ctx context.Context, ids []int64) (string, error) {
				return m.setDraft(ctx, ids, true, "unpublished")
			}},
		},
		SaveOnTop: true,
		SaveAsNew: true,

		Create: func(ctx context.Context, payload []byte) (int64, error) {
			return m.save(ctx, 0, payload)
		},
		Update: func(ctx context.Context, id int64, payload []byte) error {
			_, err := m.save(ctx, id, payload)
			return err
		},
		Delete: m.movies.Delete,
	})
}

func (m *movieAdmin) setDraft(ctx context.Context, ids []int64, draft bool, verb string) (string, error) {
	n, err := m.movies.SetDraft(ctx, ids, draft)
	if err != nil {
		return "", err
	}
	m.log.InfoContext(ctx, "movies "+verb, "count", n, "ids", ids)
	return admin.UpdatedMessage(n, "Movie", "Movies", verb), nil
}

// save writes the movie, its relations and both inline tables in one
// transaction.
func (m *movieAdmin) save(ctx context.Context, id int64, payload []byte) (int64, error) {
	var form MovieForm
	if err := decode(payload, &form); err != nil {
		return 0, err
	}
	premiere, err := form.premiere()
	if err != nil {
		return 0, err
	}

	movie := &models.Movie{
		ID:            id,
		Title:         form.Title,
		Tagline:       form.Tagline,
		Description:   form.Description,
		Poster:        form.Poster,
		Year:          form.Year,
		Country:       form.Country,
		WorldPremiere: premiere,
		Budget:        form.Budget,
		FeesInUSA:     form.FeesInUSA,
		FeesInWorld:   form.FeesInWorld,
		CategoryID:    form.CategoryID,
		URL:           form.URL,
		Draft:         form.Draft,
	}
	rel := repository.MovieRelations{
		ActorIDs:    form.ActorIDs,
		DirectorIDs: form.DirectorIDs,
		GenreIDs:    form.GenreIDs,
	}

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if form.CategoryID != nil {
			var n int64
			if err := tx.Model(&models.Category{}).Where("id = ?", *form.CategoryID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return service.NewValidationError("category_id", "Select a valid choice.")
			}
		}

		movies := repository.NewMovieRepo(tx)
		if id == 0 {
			if err := movies.Create(ctx, movie, rel); err != nil {
				return err
			}
		} else if err := movies.Update(ctx, movie, rel); err != nil {
			return err
		}

		if err := saveShots(ctx, repository.NewMovieShotRepo(tx), movie.ID, form.Shots); err != nil {
			return err
		}
		return saveReviewInlines(ctx, repository.NewReviewRepository(tx), movie.ID, form.Reviews)
	})
	if err != nil {
		return 0, slugConflict(err)
	}
	return movie.ID, nil
}

func saveShots(ctx context.Context, shots *repository.MovieShotRepo, movieID int64, rows []ShotInline) error {
	for _, row := range rows {
		if row.ID == 0 {
			if row.Delete {
				continue
			}
			s := &models.MovieShot{Title: row.Title, Description: row.Description, Image: row.Image, MovieID: movieID}
			if err := shots.Create(ctx, s); err != nil {
				return err
			}
			continue
		}

		existing, err := shots.GetByID(ctx, row.ID)
		if errors.Is(err, repository.ErrNotFound) || (err == nil && existing.MovieID != movieID) {
			return service.NewValidationError("shots", fmt.Sprintf("Movie shot %d does not belong to this movie.", row.ID))
		}
		if err != nil {
			return err
		}

		if row.Delete {
			if err := shots.Delete(ctx, row.ID); err != nil {
				return err
			}
			continue
		}
		existing.Title, existing.Description, existing.Image = row.Title, row.Description, row.Image
		if err := shots.Update(ctx, existing); err != nil {
			return err
		}
	}
	return nil
}

// saveReviewInlines edits or deletes reviews of a movie. Name and email are
// not part of the row and stay as submitted.
func saveReviewInlines(ctx context.Context, reviews repository.ReviewRepository, movieID int64, rows []ReviewInline) error {
	for _, row := range rows {
		existing, err := reviews.GetByID(ctx, row.ID)
		if errors.Is(err, repository.ErrNotFound) || (err == nil && existing.MovieID != movieID) {
			return service.NewValidationError("reviews", fmt.Sprintf("Review %d does not belong to this movie.", row.ID))
		}
		if err != nil {
			return err
		}

		if row.Delete {
			if err := reviews.Delete(ctx, row.ID); err != nil {
				return err
			}
			continue
		}

		parentID, err := checkParent(ctx, reviews, existing, row.Parent)
		if err != nil {
			return err
		}
		existing.Text = row.Text
		existing.ParentID = parentID
		if err := reviews.Update(ctx, existing); err != nil {
			return err
		}
	}
	return nil
}
