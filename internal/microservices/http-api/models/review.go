package models

import (
	"fmt"
	"time"
)

// Review is a visitor comment on a movie. A non-nil ParentID makes it a reply.
type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Email     string    `json:"email" gorm:"size:254;not null"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	ParentID  *int64    `json:"parent_id,omitempty" gorm:"index"`
	MovieID   int64     `json:"movie_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Parent  *Review  `json:"parent,omitempty"`
	Replies []Review `json:"replies,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL;"`
	Movie   *Movie   `json:"movie,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r Review) String() string {
	movie := ""
	if r.Movie != nil {
		movie = r.Movie.String()
	}
	return fmt.Sprintf("%s - %s", r.Name, movie)
}
