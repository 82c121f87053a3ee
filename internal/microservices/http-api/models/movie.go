package models

import "time"

type Movie struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title         string    `json:"title" gorm:"size:100;not null"`
	Tagline       string    `json:"tagline" gorm:"size:100"`
	Description   string    `json:"description" gorm:"type:text"`
	Poster        string    `json:"poster" gorm:"size:255"`
	Year          int       `json:"year" gorm:"not null;index"`
	Country       string    `json:"country" gorm:"size:30"`
	WorldPremiere time.Time `json:"world_premiere" gorm:"type:date"`
	Budget        int64     `json:"budget" gorm:"not null;default:0;check:budget >= 0"`
	FeesInUSA     int64     `json:"fees_in_usa" gorm:"column:fees_in_usa;not null;default:0;check:fees_in_usa >= 0"`
	FeesInWorld   int64     `json:"fees_in_world" gorm:"not null;default:0;check:fees_in_world >= 0"`
	CategoryID    *int64    `json:"category_id,omitempty" gorm:"index"`
	URL           string    `json:"url" gorm:"column:url;size:150;uniqueIndex;not null"`
	Draft         bool      `json:"draft" gorm:"not null;default:false;index"`

	// association
	Category  *Category   `json:"category,omitempty" gorm:"constraint:OnDelete:SET NULL;"`
	Directors []Actor     `json:"directors,omitempty" gorm:"many2many:movie_directors;constraint:OnDelete:CASCADE;"`
	Actors    []Actor     `json:"actors,omitempty" gorm:"many2many:movie_actors;constraint:OnDelete:CASCADE;"`
	Genres    []Genre     `json:"genres,omitempty" gorm:"many2many:movie_genres;constraint:OnDelete:CASCADE;"`
	Shots     []MovieShot `json:"shots,omitempty" gorm:"constraint:OnDelete:CASCADE;"`
	Ratings   []Rating    `json:"ratings,omitempty" gorm:"constraint:OnDelete:CASCADE;"`
	Reviews   []Review    `json:"reviews,omitempty" gorm:"constraint:OnDelete:CASCADE;"`
}

func (Movie) TableName() string {
	return "movies"
}

func (m Movie) String() string {
	return m.Title
}

// MovieShot is a still frame from a movie.
type MovieShot struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string `json:"title" gorm:"size:100;not null"`
	Description string `json:"description" gorm:"type:text"`
	Image       string `json:"image" gorm:"size:255"`
	MovieID     int64  `json:"movie_id" gorm:"not null;index"`

	Movie *Movie `json:"movie,omitempty"`
}

func (MovieShot) TableName() string {
	return "movie_shots"
}

func (s MovieShot) String() string {
	return s.Title
}
