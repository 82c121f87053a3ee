package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/repository"
)

// CatalogService serves the public, read-only side of the catalog.
type CatalogService interface {
	FilterOptions(ctx context.Context) (*dto.FilterContext, error)
	ListMovies(ctx context.Context) (*dto.MovieListResponse, error)
	MovieDetail(ctx context.Context, slug string) (*dto.MovieDetailResponse, error)
	ActorDetail(ctx context.Context, name string) (*dto.ActorDetailResponse, error)
	FilterMovies(ctx context.Context, years []int, genres []string) (*dto.MovieListResponse, error)
}

type catalogService struct {
	movies  *repository.MovieRepo
	genres  *repository.GenreRepo
	actors  *repository.ActorRepo
	reviews repository.ReviewRepository
	ratings repository.RatingRepository
	resolve dto.URLResolver
	log     *slog.Logger
}

func NewCatalogService(
	movies *repository.MovieRepo,
	genres *repository.GenreRepo,
	actors *repository.ActorRepo,
	reviews repository.ReviewRepository,
	ratings repository.RatingRepository,
	resolve dto.URLResolver,
	log *slog.Logger,
) CatalogService {
	if log == nil {
		log = slog.Default()
	}
	return &catalogService{
		movies:  movies,
		genres:  genres,
		actors:  actors,
		reviews: reviews,
		ratings: ratings,
		resolve: resolve,
		log:     log,
	}
}

// FilterOptions lists every genre and the release years of published movies,
// recomputed on each call.
func (s *catalogService) FilterOptions(ctx context.Context) (*dto.FilterContext, error) {
	genres, err := s.genres.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	years, err := s.movies.PublishedYears(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.FilterContext{
		Genres: make([]dto.GenreResponse, 0, len(genres)),
		Years:  years,
	}
	if out.Years == nil {
		out.Years = []int{}
	}
	for i := range genres {
		out.Genres = append(out.Genres, dto.FromModelToGenreResponse(&genres[i]))
	}
	return out, nil
}

func (s *catalogService) ListMovies(ctx context.Context) (*dto.MovieListResponse, error) {
	list, err := s.movies.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	filter, err := s.FilterOptions(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.MovieListResponse{
		Movies: dto.FromModelsToMovieSummaries(list, s.resolve),
		Filter: *filter,
	}, nil
}

// MovieDetail looks a movie up by slug. Drafts are reachable here when the
// slug is known; only listings hide them.
func (s *catalogService) MovieDetail(ctx context.Context, slug string) (*dto.MovieDetailResponse, error) {
	m, err := s.movies.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.GetByMovie(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	summary, err := s.ratings.Summary(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	filter, err := s.FilterOptions(ctx)
	if err != nil {
		return nil, err
	}

	detail := dto.FromModelToMovieDetail(m, s.resolve)
	detail.Reviews = dto.BuildReviewTree(reviews)
	detail.Rating = dto.RatingSummaryResponse{Average: summary.Average, Count: summary.Count}

	return &dto.MovieDetailResponse{Movie: detail, Filter: *filter}, nil
}

func (s *catalogService) ActorDetail(ctx context.Context, name string) (*dto.ActorDetailResponse, error) {
	a, err := s.actors.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	acted, directed, err := s.actors.Filmography(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	filter, err := s.FilterOptions(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.ActorDetailResponse{
		Actor: dto.ActorDetail{
			ID:          a.ID,
			Name:        a.Name,
			Age:         a.Age,
			Description: a.Description,
			Image:       s.resolve(a.Image),
			Movies:      dto.FromModelsToMovieSummaries(acted, s.resolve),
			Directed:    dto.FromModelsToMovieSummaries(directed, s.resolve),
		},
		Filter: *filter,
	}, nil
}

// FilterMovies returns the union of movies released in one of years and
// movies tagged with one of genres. Genres are given by id or by url slug;
// an all-digit value matches either. No selection at all yields an empty list.
func (s *catalogService) FilterMovies(ctx context.Context, years []int, genres []string) (*dto.MovieListResponse, error) {
	f := repository.MovieFilter{Years: years}
	for _, g := range genres {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if id, err := strconv.ParseInt(g, 10, 64); err == nil {
			f.GenreIDs = append(f.GenreIDs, id)
		}
		f.GenreSlugs = append(f.GenreSlugs, g)
	}

	if len(f.Years) > 0 && (len(f.GenreIDs) > 0 || len(f.GenreSlugs) > 0) {
		s.log.DebugContext(ctx, "movie filter combines year and genre with OR",
			"years", f.Years, "genre_ids", f.GenreIDs, "genre_slugs", f.GenreSlugs)
	}

	list, err := s.movies.Filter(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("filter movies: %w", err)
	}
	filter, err := s.FilterOptions(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.MovieListResponse{
		Movies: dto.FromModelsToMovieSummaries(list, s.resolve),
		Filter: *filter,
	}, nil
}
