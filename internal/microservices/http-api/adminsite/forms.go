package adminsite

import (
	"encoding/json"
	"time"

	"moviehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin/binding"
)

type CategoryForm struct {
	Name        string `json:"name" binding:"required,max=150"`
	Description string `json:"description"`
	URL         string `json:"url" binding:"required,max=150"`
}

type GenreForm struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	URL         string `json:"url" binding:"required,max=100"`
}

type ActorForm struct {
	Name        string `json:"name" binding:"required,max=100"`
	Age         int    `json:"age" binding:"gte=0"`
	Description string `json:"description"`
	Image       string `json:"image" binding:"max=255"`
}

type MovieShotForm struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description"`
	Image       string `json:"image" binding:"max=255"`
	MovieID     int64  `json:"movie_id" binding:"required,gt=0"`
}

type RatingStarForm struct {
	Value int16 `json:"value" binding:"gte=0"`
}

type ReviewForm struct {
	Text   string `json:"text" binding:"required,max=5000"`
	Parent *int64 `json:"parent"`
}

// MovieListForm holds the columns editable from the movie list.
type MovieListForm struct {
	Draft *bool `json:"draft" binding:"required"`
}

// ShotInline is one row of the movie page's shot table. ID 0 adds a shot.
type ShotInline struct {
	ID          int64  `json:"id"`
	Title       string `json:"title" binding:"required_without=Delete,max=100"`
	Description string `json:"description"`
	Image       string `json:"image" binding:"max=255"`
	Delete      bool   `json:"delete"`
}

// ReviewInline edits an existing review from the movie page. Reviews are
// never added here.
type ReviewInline struct {
	ID     int64  `json:"id" binding:"required,gt=0"`
	Text   string `json:"text" binding:"required_without=Delete,max=5000"`
	Parent *int64 `json:"parent"`
	Delete bool   `json:"delete"`
}

// MovieForm is the grouped movie edit form. A missing id list leaves that
// relation as it is; an empty one clears it.
type MovieForm struct {
	Title         string  `json:"title" binding:"required,max=100"`
	Tagline       string  `json:"tagline" binding:"max=100"`
	Description   string  `json:"description"`
	Poster        string  `json:"poster" binding:"max=255"`
	Year          int     `json:"year" binding:"required,gte=1800,lte=3000"`
	Country       string  `json:"country" binding:"max=30"`
	WorldPremiere string  `json:"world_premiere"`
	Budget        int64   `json:"budget" binding:"gte=0"`
	FeesInUSA     int64   `json:"fees_in_usa" binding:"gte=0"`
	FeesInWorld   int64   `json:"fees_in_world" binding:"gte=0"`
	CategoryID    *int64  `json:"category_id"`
	URL           string  `json:"url" binding:"required,max=150"`
	Draft         bool    `json:"draft"`
	ActorIDs      []int64 `json:"actor_ids"`
	DirectorIDs   []int64 `json:"director_ids"`
	GenreIDs      []int64 `json:"genre_ids"`

	Shots   []ShotInline   `json:"shots" binding:"dive"`
	Reviews []ReviewInline `json:"reviews" binding:"dive"`
}

func (f *MovieForm) premiere() (time.Time, error) {
	if f.WorldPremiere == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", f.WorldPremiere)
	if err != nil {
		return time.Time{}, service.NewValidationError("world_premiere", "Enter a valid date.")
	}
	return t, nil
}

// decode unmarshals a JSON payload and runs the binding validators on it.
func decode(payload []byte, form interface{}) error {
	if err := json.Unmarshal(payload, form); err != nil {
		return service.NewValidationErrorFrom(err)
	}
	if err := binding.Validator.ValidateStruct(form); err != nil {
		return service.NewValidationErrorFrom(err)
	}
	return nil
}
