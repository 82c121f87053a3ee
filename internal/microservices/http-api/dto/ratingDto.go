package dto

// CreateRatingDTO is the star form posted from a movie page.
type CreateRatingDTO struct {
	Movie int64 `form:"movie" json:"movie" binding:"required,gt=0"`
	Star  int64 `form:"star" json:"star" binding:"required,gt=0"`
}
