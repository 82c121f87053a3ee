package models

import (
	"fmt"
	"strconv"
)

type RatingStar struct {
	ID    int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Value int16 `json:"value" gorm:"not null;default:0"`
}

func (RatingStar) TableName() string {
	return "rating_stars"
}

func (s RatingStar) String() string {
	return strconv.Itoa(int(s.Value))
}

// Rating is one visitor's star vote for a movie, keyed by client IP.
type Rating struct {
	ID      int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	IP      string `json:"ip" gorm:"column:ip;size:45;not null;uniqueIndex:idx_ratings_ip_movie"`
	StarID  int64  `json:"star_id" gorm:"not null;index"`
	MovieID int64  `json:"movie_id" gorm:"not null;uniqueIndex:idx_ratings_ip_movie"`

	// Associations
	Star  *RatingStar `json:"star,omitempty" gorm:"constraint:OnDelete:CASCADE;"`
	Movie *Movie      `json:"movie,omitempty"`
}

func (Rating) TableName() string {
	return "ratings"
}

func (r Rating) String() string {
	star, movie := "", ""
	if r.Star != nil {
		star = r.Star.String()
	}
	if r.Movie != nil {
		movie = r.Movie.String()
	}
	return fmt.Sprintf("%s - %s", star, movie)
}
