package repository

import (
	"context"
	"fmt"
	"strings"

	"moviehub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovieRepo struct {
	db *gorm.DB
}

// MovieRelations carries the many-to-many ids edited alongside a movie.
// A nil slice leaves that relation untouched.
type MovieRelations struct {
	ActorIDs    []int64
	DirectorIDs []int64
	GenreIDs    []int64
}

// MovieFilter selects movies whose year is in Years OR that carry one of the
// genres named by id or url slug.
type MovieFilter struct {
	Years      []int
	GenreIDs   []int64
	GenreSlugs []string
}

func (f MovieFilter) Empty() bool {
	return len(f.Years) == 0 && len(f.GenreIDs) == 0 && len(f.GenreSlugs) == 0
}

func NewMovieRepo(db *gorm.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// ListPublished returns every movie with draft=false.
func (r *MovieRepo) ListPublished(ctx context.Context) ([]models.Movie, error) {
	var list []models.Movie
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("draft = ?", false).
		Order("id asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list published movies: %w", err)
	}
	return list, nil
}

func (r *MovieRepo) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &m, nil
}

// GetBySlug loads a movie with everything its detail page shows.
func (r *MovieRepo) GetBySlug(ctx context.Context, slug string) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Directors").
		Preload("Actors").
		Preload("Genres").
		Preload("Shots").
		Where("url = ?", slug).
		First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return &m, nil
}

// Filter combines the year and genre conditions with OR, never AND. Drafts
// are excluded. The genre side is a subquery so a movie matching several
// conditions appears once.
func (r *MovieRepo) Filter(ctx context.Context, f MovieFilter) ([]models.Movie, error) {
	var list []models.Movie
	if f.Empty() {
		return list, nil
	}

	clauses := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)
	if len(f.Years) > 0 {
		clauses = append(clauses, "movies.year IN ?")
		args = append(args, f.Years)
	}
	if len(f.GenreIDs) > 0 {
		clauses = append(clauses, "movies.id IN (SELECT movie_id FROM movie_genres WHERE genre_id IN ?)")
		args = append(args, f.GenreIDs)
	}
	if len(f.GenreSlugs) > 0 {
		clauses = append(clauses, "movies.id IN (SELECT mg.movie_id FROM movie_genres mg JOIN genres g ON g.id = mg.genre_id WHERE g.url IN ?)")
		args = append(args, f.GenreSlugs)
	}

	where := "(" + strings.Join(clauses, " OR ") + ")"
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("movies.draft = ?", false).
		Where(where, args...).
		Order("movies.id asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("filter movies: %w", err)
	}
	return list, nil
}

// PublishedYears returns the distinct release years of non-draft movies, newest first.
func (r *MovieRepo) PublishedYears(ctx context.Context) ([]int, error) {
	var years []int
	if err := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Where("draft = ?", false).
		Distinct().
		Order("year desc").
		Pluck("year", &years).Error; err != nil {
		return nil, fmt.Errorf("list movie years: %w", err)
	}
	return years, nil
}

// AllYears returns every distinct release year, drafts included, newest first.
func (r *MovieRepo) AllYears(ctx context.Context) ([]int, error) {
	var years []int
	if err := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Distinct().
		Order("year desc").
		Pluck("year", &years).Error; err != nil {
		return nil, fmt.Errorf("list all movie years: %w", err)
	}
	return years, nil
}

// SetDraft flips the draft flag of every listed movie in a single UPDATE and
// reports how many rows it touched.
func (r *MovieRepo) SetDraft(ctx context.Context, ids []int64, draft bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Where("id IN ?", ids).
		Update("draft", draft)
	if res.Error != nil {
		return 0, fmt.Errorf("set movie draft: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *MovieRepo) Create(ctx context.Context, m *models.Movie, rel MovieRelations) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
			return fmt.Errorf("create movie: %w", translateError(err))
		}
		return replaceRelations(tx, m, rel)
	})
}

// Update writes every column of m, then replaces the relations that rel names.
func (r *MovieRepo) Update(ctx context.Context, m *models.Movie, rel MovieRelations) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Movie
		if err := tx.Select("id").First(&existing, m.ID).Error; err != nil {
			return translateError(err)
		}
		if err := tx.Omit(clause.Associations).Save(m).Error; err != nil {
			return fmt.Errorf("update movie: %w", translateError(err))
		}
		return replaceRelations(tx, m, rel)
	})
}

// Delete removes a movie together with its shots, ratings, reviews and join rows.
func (r *MovieRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.Movie
		if err := tx.Select("id").First(&m, id).Error; err != nil {
			return translateError(err)
		}
		for _, assoc := range []string{"Actors", "Directors", "Genres"} {
			if err := tx.Model(&m).Association(assoc).Clear(); err != nil {
				return fmt.Errorf("clear movie %s: %w", strings.ToLower(assoc), err)
			}
		}
		if err := tx.Where("movie_id = ?", id).Delete(&models.MovieShot{}).Error; err != nil {
			return fmt.Errorf("delete movie shots: %w", err)
		}
		if err := tx.Where("movie_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return fmt.Errorf("delete movie ratings: %w", err)
		}
		// replies of this movie's reviews may live on other movies; detach them first
		if err := tx.Model(&models.Review{}).
			Where("parent_id IN (SELECT id FROM reviews WHERE movie_id = ?) AND movie_id <> ?", id, id).
			Update("parent_id", nil).Error; err != nil {
			return fmt.Errorf("detach foreign replies: %w", err)
		}
		if err := tx.Where("movie_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("delete movie reviews: %w", err)
		}
		if err := tx.Delete(&models.Movie{}, id).Error; err != nil {
			return fmt.Errorf("delete movie: %w", err)
		}
		return nil
	})
}

func replaceRelations(tx *gorm.DB, m *models.Movie, rel MovieRelations) error {
	if rel.ActorIDs != nil {
		if err := replaceActors(tx, m, "Actors", rel.ActorIDs); err != nil {
			return err
		}
	}
	if rel.DirectorIDs != nil {
		if err := replaceActors(tx, m, "Directors", rel.DirectorIDs); err != nil {
			return err
		}
	}
	if rel.GenreIDs != nil {
		if len(rel.GenreIDs) == 0 {
			return tx.Model(m).Association("Genres").Clear()
		}
		var genres []models.Genre
		if err := tx.Where("id IN ?", rel.GenreIDs).Find(&genres).Error; err != nil {
			return fmt.Errorf("load genres: %w", err)
		}
		if err := tx.Model(m).Association("Genres").Replace(genres); err != nil {
			return fmt.Errorf("replace genres: %w", err)
		}
	}
	return nil
}

func replaceActors(tx *gorm.DB, m *models.Movie, assoc string, ids []int64) error {
	if len(ids) == 0 {
		return tx.Model(m).Association(assoc).Clear()
	}
	var actors []models.Actor
	if err := tx.Where("id IN ?", ids).Find(&actors).Error; err != nil {
		return fmt.Errorf("load %s: %w", strings.ToLower(assoc), err)
	}
	if err := tx.Model(m).Association(assoc).Replace(actors); err != nil {
		return fmt.Errorf("replace %s: %w", strings.ToLower(assoc), err)
	}
	return nil
}
