package dto

import (
	"time"

	"moviehub/internal/microservices/http-api/models"
)

// CreateReviewDTO is the review form. Parent is the id of the review being
// answered; zero or absent means a top-level review.
type CreateReviewDTO struct {
	Name   string `form:"name" json:"name" binding:"required,max=100"`
	Email  string `form:"email" json:"email" binding:"required,email,max=254"`
	Text   string `form:"text" json:"text" binding:"required,max=5000"`
	Parent *int64 `form:"parent" json:"parent" binding:"omitempty,gte=0"`
}

// ReviewResponse is a public review with its replies. Email is never exposed.
type ReviewResponse struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Text      string           `json:"text"`
	CreatedAt time.Time        `json:"created_at"`
	Replies   []ReviewResponse `json:"replies"`
}

// BuildReviewTree nests reviews under their parents, keeping input order at
// every level. Reviews whose parent is not in the list are treated as
// top-level, and so is the first review of a parent cycle.
func BuildReviewTree(reviews []models.Review) []ReviewResponse {
	present := make(map[int64]bool, len(reviews))
	children := make(map[int64][]models.Review)
	for _, r := range reviews {
		present[r.ID] = true
	}

	var roots []models.Review
	for _, r := range reviews {
		if r.ParentID != nil && present[*r.ParentID] && *r.ParentID != r.ID {
			children[*r.ParentID] = append(children[*r.ParentID], r)
			continue
		}
		roots = append(roots, r)
	}

	var build func(list []models.Review, seen map[int64]bool) []ReviewResponse
	build = func(list []models.Review, seen map[int64]bool) []ReviewResponse {
		out := make([]ReviewResponse, 0, len(list))
		for _, r := range list {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			out = append(out, ReviewResponse{
				ID:        r.ID,
				Name:      r.Name,
				Text:      r.Text,
				CreatedAt: r.CreatedAt,
				Replies:   build(children[r.ID], seen),
			})
		}
		return out
	}
	seen := make(map[int64]bool, len(reviews))
	out := build(roots, seen)
	for _, r := range reviews {
		if !seen[r.ID] {
			out = append(out, build([]models.Review{r}, seen)...)
		}
	}
	return out
}
