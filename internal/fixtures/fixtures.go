// Package fixtures loads a YAML catalog document into the database. Every
// entity is matched on its natural key (url slug, name, star value or
// username), so importing the same document twice changes nothing.
package fixtures

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"moviehub/internal/middleware/auth"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Category struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

type Genre struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

type Actor struct {
	Name        string `yaml:"name"`
	Age         int    `yaml:"age"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

type Shot struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

// Movie refers to its category and genres by url slug and to people by name.
type Movie struct {
	Title         string   `yaml:"title"`
	Tagline       string   `yaml:"tagline"`
	Description   string   `yaml:"description"`
	Poster        string   `yaml:"poster"`
	Year          int      `yaml:"year"`
	Country       string   `yaml:"country"`
	WorldPremiere string   `yaml:"world_premiere"`
	Budget        int64    `yaml:"budget"`
	FeesInUSA     int64    `yaml:"fees_in_usa"`
	FeesInWorld   int64    `yaml:"fees_in_world"`
	Category      string   `yaml:"category"`
	URL           string   `yaml:"url"`
	Draft         bool     `yaml:"draft"`
	Actors        []string `yaml:"actors"`
	Directors     []string `yaml:"directors"`
	Genres        []string `yaml:"genres"`
	Shots         []Shot   `yaml:"shots"`
}

type StaffUser struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type Document struct {
	Categories  []Category  `yaml:"categories"`
	Genres      []Genre     `yaml:"genres"`
	Actors      []Actor     `yaml:"actors"`
	RatingStars []int16     `yaml:"rating_stars"`
	Movies      []Movie     `yaml:"movies"`
	StaffUsers  []StaffUser `yaml:"staff_users"`
}

// Summary counts the rows written per entity.
type Summary struct {
	Categories  int
	Genres      int
	Actors      int
	RatingStars int
	Movies      int
	Shots       int
	StaffUsers  int
}

// Load decodes a document and rejects unknown keys.
func Load(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &doc, nil
}

// Import writes doc in a single transaction.
func Import(ctx context.Context, db *gorm.DB, doc *Document, log *slog.Logger) (*Summary, error) {
	if log == nil {
		log = slog.Default()
	}
	sum := &Summary{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		im := &importer{ctx: ctx, tx: tx, log: log, sum: sum}
		steps := []func(*Document) error{
			im.categories,
			im.genres,
			im.actors,
			im.stars,
			im.movies,
			im.staffUsers,
		}
		for _, step := range steps {
			if err := step(doc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sum, nil
}

type importer struct {
	ctx context.Context
	tx  *gorm.DB
	log *slog.Logger
	sum *Summary
}

func (im *importer) categories(doc *Document) error {
	for _, c := range doc.Categories {
		row := models.Category{Name: c.Name, URL: c.URL, Description: c.Description}
		if err := im.tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "url"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description"}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("import category %q: %w", c.URL, err)
		}
		im.sum.Categories++
	}
	return nil
}

func (im *importer) genres(doc *Document) error {
	for _, g := range doc.Genres {
		row := models.Genre{Name: g.Name, URL: g.URL, Description: g.Description}
		if err := im.tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "url"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description"}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("import genre %q: %w", g.URL, err)
		}
		im.sum.Genres++
	}
	return nil
}

// actors match on name; the first actor with that name wins.
func (im *importer) actors(doc *Document) error {
	for _, a := range doc.Actors {
		var row models.Actor
		if err := im.tx.Where(models.Actor{Name: a.Name}).Order("id asc").FirstOrInit(&row).Error; err != nil {
			return fmt.Errorf("import actor %q: %w", a.Name, err)
		}
		row.Age, row.Description, row.Image = a.Age, a.Description, a.Image
		if err := im.tx.Save(&row).Error; err != nil {
			return fmt.Errorf("import actor %q: %w", a.Name, err)
		}
		im.sum.Actors++
	}
	return nil
}

func (im *importer) stars(doc *Document) error {
	for _, v := range doc.RatingStars {
		var row models.RatingStar
		if err := im.tx.Where("value = ?", v).Attrs(models.RatingStar{Value: v}).FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("import rating star %d: %w", v, err)
		}
		im.sum.RatingStars++
	}
	return nil
}

func (im *importer) movies(doc *Document) error {
	repo := repository.NewMovieRepo(im.tx)
	for _, m := range doc.Movies {
		movie, err := im.movie(m)
		if err != nil {
			return err
		}
		rel, err := im.relations(m)
		if err != nil {
			return err
		}

		var existing models.Movie
		err = im.tx.Select("id").Where("url = ?", m.URL).First(&existing).Error
		switch {
		case err == nil:
			movie.ID = existing.ID
			err = repo.Update(im.ctx, movie, rel)
		case errors.Is(err, gorm.ErrRecordNotFound):
			err = repo.Create(im.ctx, movie, rel)
		}
		if err != nil {
			return fmt.Errorf("import movie %q: %w", m.URL, err)
		}

		for _, s := range m.Shots {
			var shot models.MovieShot
			if err := im.tx.Where("movie_id = ? AND title = ?", movie.ID, s.Title).FirstOrInit(&shot).Error; err != nil {
				return fmt.Errorf("import shot %q: %w", s.Title, err)
			}
			shot.MovieID, shot.Title, shot.Description, shot.Image = movie.ID, s.Title, s.Description, s.Image
			if err := im.tx.Omit(clause.Associations).Save(&shot).Error; err != nil {
				return fmt.Errorf("import shot %q: %w", s.Title, err)
			}
			im.sum.Shots++
		}
		im.sum.Movies++
		im.log.Debug("movie imported", "url", m.URL, "id", movie.ID)
	}
	return nil
}

func (im *importer) movie(m Movie) (*models.Movie, error) {
	movie := &models.Movie{
		Title:       m.Title,
		Tagline:     m.Tagline,
		Description: m.Description,
		Poster:      m.Poster,
		Year:        m.Year,
		Country:     m.Country,
		Budget:      m.Budget,
		FeesInUSA:   m.FeesInUSA,
		FeesInWorld: m.FeesInWorld,
		URL:         m.URL,
		Draft:       m.Draft,
	}
	if m.WorldPremiere != "" {
		t, err := time.Parse("2006-01-02", m.WorldPremiere)
		if err != nil {
			return nil, fmt.Errorf("movie %q: world_premiere: %w", m.URL, err)
		}
		movie.WorldPremiere = t
	}
	if m.Category != "" {
		var cat models.Category
		if err := im.tx.Select("id").Where("url = ?", m.Category).First(&cat).Error; err != nil {
			return nil, fmt.Errorf("movie %q: category %q: %w", m.URL, m.Category, err)
		}
		movie.CategoryID = &cat.ID
	}
	return movie, nil
}

func (im *importer) relations(m Movie) (repository.MovieRelations, error) {
	var rel repository.MovieRelations
	var err error
	if rel.ActorIDs, err = im.actorIDs(m.Actors); err != nil {
		return rel, fmt.Errorf("movie %q: %w", m.URL, err)
	}
	if rel.DirectorIDs, err = im.actorIDs(m.Directors); err != nil {
		return rel, fmt.Errorf("movie %q: %w", m.URL, err)
	}
	rel.GenreIDs = make([]int64, 0, len(m.Genres))
	for _, slug := range m.Genres {
		var g models.Genre
		if err := im.tx.Select("id").Where("url = ?", slug).First(&g).Error; err != nil {
			return rel, fmt.Errorf("movie %q: genre %q: %w", m.URL, slug, err)
		}
		rel.GenreIDs = append(rel.GenreIDs, g.ID)
	}
	return rel, nil
}

func (im *importer) actorIDs(names []string) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		var a models.Actor
		if err := im.tx.Select("id").Where("name = ?", name).Order("id asc").First(&a).Error; err != nil {
			return nil, fmt.Errorf("actor %q: %w", name, err)
		}
		ids = append(ids, a.ID)
	}
	return ids, nil
}

// staffUsers creates missing accounts. Existing accounts keep their password.
func (im *importer) staffUsers(doc *Document) error {
	for _, u := range doc.StaffUsers {
		var n int64
		if err := im.tx.Model(&models.StaffUser{}).Where("username = ?", u.Username).Count(&n).Error; err != nil {
			return fmt.Errorf("import staff user %q: %w", u.Username, err)
		}
		if n > 0 {
			im.log.Info("staff user exists, skipped", "username", u.Username)
			continue
		}
		role := u.Role
		if role == "" {
			role = "staff"
		}
		hashed, err := auth.HashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("hash password for %q: %w", u.Username, err)
		}
		user := &models.StaffUser{Username: u.Username, Email: u.Email, Password: hashed, Role: role}
		if err := repository.NewStaffUserRepository(im.tx).Create(im.ctx, user); err != nil {
			return fmt.Errorf("import staff user %q: %w", u.Username, err)
		}
		im.sum.StaffUsers++
	}
	return nil
}
