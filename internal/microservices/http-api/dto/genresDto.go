package dto

import "moviehub/internal/microservices/http-api/models"

// GenreResponse is a genre as shown in the filter sidebar and on movie pages.
type GenreResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
}

func FromModelToGenreResponse(g *models.Genre) GenreResponse {
	return GenreResponse{ID: g.ID, Name: g.Name, Description: g.Description, URL: g.URL}
}

// FilterContext is embedded in every public response to drive the
// year/genre filter controls.
type FilterContext struct {
	Genres []GenreResponse `json:"genres"`
	Years  []int           `json:"years"`
}
