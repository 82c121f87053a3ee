package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"moviehub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	svc service.CatalogService
}

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.List)
	r.GET("/movie/:slug/", h.Detail)
	r.GET("/actor/:name/", h.Actor)
	r.GET("/filter/", h.Filter)
}

// List returns every published movie.
func (h *CatalogHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.ListMovies(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) Detail(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.MovieDetail(ctx, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) Actor(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.ActorDetail(ctx, c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Filter handles /filter/?year=1979&year=1980&genres=drama. Movies matching
// any year or any genre are returned. A genre is a url slug or an id; an
// all-digit value is tried as both.
func (h *CatalogHandler) Filter(c *gin.Context) {
	years := make([]int, 0)
	for _, raw := range c.QueryArray("year") {
		y, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year", "fields": gin.H{"year": "Enter a whole number."}})
			return
		}
		years = append(years, y)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.FilterMovies(ctx, years, c.QueryArray("genres"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
