package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func (h *ReviewHandler) RegisterRoutes(r gin.IRoutes, limit gin.HandlerFunc) {
	r.POST("/review/:id/", limit, h.Add)
}

// Add accepts a review as a form or JSON body and redirects to the movie
// page. Rejected submissions come back with the field errors and the
// submitted values.
func (h *ReviewHandler) Add(c *gin.Context) {
	movieID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// an unknown movie is a 404 whatever the body holds
	if err := h.svc.CheckMovie(ctx, movieID); err != nil {
		respondError(c, err)
		return
	}

	var in dto.CreateReviewDTO
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": service.NewValidationErrorFrom(err).Fields,
			"values": in,
		})
		return
	}

	slug, err := h.svc.AddReview(ctx, movieID, in)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields, "values": in})
			return
		}
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/movie/"+slug+"/")
}
