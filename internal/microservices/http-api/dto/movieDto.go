package dto

import (
	"moviehub/internal/microservices/http-api/models"
)

// URLResolver maps a stored media path to its public URL.
type URLResolver func(name string) string

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type ActorSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type MovieSummary struct {
	ID       int64             `json:"id"`
	Title    string            `json:"title"`
	Tagline  string            `json:"tagline"`
	Poster   string            `json:"poster,omitempty"`
	Year     int               `json:"year"`
	Country  string            `json:"country"`
	URL      string            `json:"url"`
	Category *CategoryResponse `json:"category,omitempty"`
}

type MovieListResponse struct {
	Movies []MovieSummary `json:"movies"`
	Filter FilterContext  `json:"filter"`
}

type ShotResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

type RatingSummaryResponse struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type MovieDetail struct {
	MovieSummary
	Description   string                `json:"description"`
	WorldPremiere string                `json:"world_premiere"`
	Budget        int64                 `json:"budget"`
	FeesInUSA     int64                 `json:"fees_in_usa"`
	FeesInWorld   int64                 `json:"fees_in_world"`
	Directors     []ActorSummary        `json:"directors"`
	Actors        []ActorSummary        `json:"actors"`
	Genres        []GenreResponse       `json:"genres"`
	Shots         []ShotResponse        `json:"shots"`
	Reviews       []ReviewResponse      `json:"reviews"`
	Rating        RatingSummaryResponse `json:"rating"`
}

type MovieDetailResponse struct {
	Movie  MovieDetail   `json:"movie"`
	Filter FilterContext `json:"filter"`
}

type ActorDetail struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Age         int            `json:"age"`
	Description string         `json:"description"`
	Image       string         `json:"image,omitempty"`
	Movies      []MovieSummary `json:"movies"`
	Directed    []MovieSummary `json:"directed"`
}

type ActorDetailResponse struct {
	Actor  ActorDetail   `json:"actor"`
	Filter FilterContext `json:"filter"`
}

func FromModelToMovieSummary(m *models.Movie, resolve URLResolver) MovieSummary {
	out := MovieSummary{
		ID:      m.ID,
		Title:   m.Title,
		Tagline: m.Tagline,
		Poster:  resolve(m.Poster),
		Year:    m.Year,
		Country: m.Country,
		URL:     m.URL,
	}
	if m.Category != nil {
		out.Category = &CategoryResponse{ID: m.Category.ID, Name: m.Category.Name, URL: m.Category.URL}
	}
	return out
}

func FromModelsToMovieSummaries(list []models.Movie, resolve URLResolver) []MovieSummary {
	out := make([]MovieSummary, 0, len(list))
	for i := range list {
		out = append(out, FromModelToMovieSummary(&list[i], resolve))
	}
	return out
}

func FromModelToActorSummary(a *models.Actor, resolve URLResolver) ActorSummary {
	return ActorSummary{ID: a.ID, Name: a.Name, Image: resolve(a.Image)}
}

func fromActors(list []models.Actor, resolve URLResolver) []ActorSummary {
	out := make([]ActorSummary, 0, len(list))
	for i := range list {
		out = append(out, FromModelToActorSummary(&list[i], resolve))
	}
	return out
}

// FromModelToMovieDetail converts a fully preloaded movie. Reviews and the
// rating summary are filled in by the caller.
func FromModelToMovieDetail(m *models.Movie, resolve URLResolver) MovieDetail {
	d := MovieDetail{
		MovieSummary: FromModelToMovieSummary(m, resolve),
		Description:  m.Description,
		Budget:       m.Budget,
		FeesInUSA:    m.FeesInUSA,
		FeesInWorld:  m.FeesInWorld,
		Directors:    fromActors(m.Directors, resolve),
		Actors:       fromActors(m.Actors, resolve),
		Genres:       make([]GenreResponse, 0, len(m.Genres)),
		Shots:        make([]ShotResponse, 0, len(m.Shots)),
		Reviews:      []ReviewResponse{},
	}
	if !m.WorldPremiere.IsZero() {
		d.WorldPremiere = m.WorldPremiere.Format("2006-01-02")
	}
	for i := range m.Genres {
		d.Genres = append(d.Genres, FromModelToGenreResponse(&m.Genres[i]))
	}
	for _, s := range m.Shots {
		d.Shots = append(d.Shots, ShotResponse{ID: s.ID, Title: s.Title, Description: s.Description, Image: resolve(s.Image)})
	}
	return d
}
