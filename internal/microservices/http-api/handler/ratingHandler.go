package handler

import (
	"context"
	"net/http"
	"time"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	svc service.RatingService
}

func NewRatingHandler(svc service.RatingService) *RatingHandler {
	return &RatingHandler{svc: svc}
}

func (h *RatingHandler) RegisterRoutes(r gin.IRoutes, limit gin.HandlerFunc) {
	r.POST("/add-rating/", limit, h.Add)
}

// Add stores the caller's star for a movie. A second vote from the same IP
// replaces the first.
func (h *RatingHandler) Add(c *gin.Context) {
	var in dto.CreateRatingDTO
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": service.NewValidationErrorFrom(err).Fields})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.AddRating(ctx, c.ClientIP(), in.Movie, in.Star); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"movie": in.Movie, "star": in.Star})
}
