package adminsite_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"moviehub/internal/admin"
	"moviehub/internal/media"
	"moviehub/internal/microservices/http-api/adminsite"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/service"
	"moviehub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSite(t *testing.T) (*admin.Site, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	site, err := adminsite.NewSite(admin.SiteConfig{Title: "Movies", Header: "Movies"}, db, media.NewStorage("/media/", t.TempDir()), nil)
	require.NoError(t, err)
	return site, db
}

func screen(t *testing.T, site *admin.Site, name string) admin.Screen {
	t.Helper()
	s, ok := site.Screen(name)
	require.True(t, ok, name)
	return s
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *service.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	return verr.Fields
}

func TestNewSite_Screens(t *testing.T) {
	site, _ := newSite(t)

	var names []string
	for _, info := range site.Index() {
		names = append(names, info.Name)
	}
	assert.Equal(t, []string{"category", "genre", "movie", "movie_shot", "actor", "rating", "rating_star", "review"}, names)

	opts := screen(t, site, "movie").Options()
	assert.Equal(t, []string{"draft"}, opts.ListEditable)
	assert.Equal(t, []string{"category", "year"}, opts.ListFilter)
	assert.True(t, opts.SaveOnTop)
	assert.True(t, opts.SaveAsNew)
	assert.Equal(t, []string{"shots", "reviews"}, opts.Inlines)

	assert.True(t, screen(t, site, "rating").Options().ReadOnly)
	assert.Equal(t, "Categories", screen(t, site, "category").Options().VerboseNamePlural)
}

func TestMovieScreen_CreateWithRelationsAndShots(t *testing.T) {
	site, db := newSite(t)
	ctx := context.Background()

	cat := models.Category{Name: "Feature", URL: "feature"}
	require.NoError(t, db.Create(&cat).Error)
	actor := models.Actor{Name: "Sigourney Weaver"}
	director := models.Actor{Name: "Ridley Scott"}
	require.NoError(t, db.Create(&actor).Error)
	require.NoError(t, db.Create(&director).Error)
	genre := models.Genre{Name: "Horror", URL: "horror"}
	require.NoError(t, db.Create(&genre).Error)

	payload := fmt.Sprintf(`{
		"title": "Alien", "year": 1979, "url": "alien", "world_premiere": "1979-05-25",
		"category_id": %d, "actor_ids": [%d], "director_ids": [%d], "genre_ids": [%d],
		"shots": [{"title": "Nostromo", "image": "movie_shots/nostromo.jpg"}]
	}`, cat.ID, actor.ID, director.ID, genre.ID)

	id, err := screen(t, site, "movie").Create(ctx, []byte(payload))
	require.NoError(t, err)

	var got models.Movie
	require.NoError(t, db.Preload("Actors").Preload("Directors").Preload("Genres").Preload("Shots").First(&got, id).Error)
	assert.Equal(t, "Alien", got.Title)
	assert.Equal(t, "1979-05-25", got.WorldPremiere.Format("2006-01-02"))
	require.Len(t, got.Actors, 1)
	assert.Equal(t, "Sigourney Weaver", got.Actors[0].Name)
	require.Len(t, got.Directors, 1)
	assert.Equal(t, "Ridley Scott", got.Directors[0].Name)
	require.Len(t, got.Genres, 1)
	require.Len(t, got.Shots, 1)
	assert.Equal(t, "Nostromo", got.Shots[0].Title)

	page, err := screen(t, site, "movie").Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, page.Inlines, 2)
	assert.Len(t, page.Inlines[0].Rows, 1)
	assert.Empty(t, page.Inlines[1].Rows)
}

func TestMovieScreen_Validation(t *testing.T) {
	site, db := newSite(t)
	ctx := context.Background()
	movies := screen(t, site, "movie")

	_, err := movies.Create(ctx, []byte(`{"year": 1979, "url": "x"}`))
	assert.Contains(t, fieldErrors(t, err), "title")

	_, err = movies.Create(ctx, []byte(`{"title": "Alien", "year": 1979, "url": "alien", "category_id": 42}`))
	assert.Contains(t, fieldErrors(t, err), "category_id")

	_, err = movies.Create(ctx, []byte(`{"title": "Alien", "year": 1979, "url": "alien", "world_premiere": "25/05/1979"}`))
	assert.Contains(t, fieldErrors(t, err), "world_premiere")

	_, err = movies.Create(ctx, []byte(`{"title": "Alien", "year": 1979, "url": "alien"}`))
	require.NoError(t, err)
	_, err = movies.Create(ctx, []byte(`{"title": "Alien again", "year": 1979, "url": "alien"}`))
	assert.Contains(t, fieldErrors(t, err), "url")

	var count int64
	require.NoError(t, db.Model(&models.Movie{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMovieScreen_ShotFromAnotherMovieRollsBack(t *testing.T) {
	site, db := newSite(t)
	ctx := context.Background()

	alien := models.Movie{Title: "Alien", Year: 1979, URL: "alien"}
	heat := models.Movie{Title: "Heat", Year: 1995, URL: "heat"}
	require.NoError(t, db.Create(&alien).Error)
	require.NoError(t, db.Create(&heat).Error)
	shot := models.MovieShot{Title: "Bank", MovieID: heat.ID}
	require.NoError(t, db.Create(&shot).Error)

	payload := fmt.Sprintf(`{"title": "Alien (1979)", "year": 1979, "url": "alien", "shots": [{"id": %d, "title": "Stolen"}]}`, shot.ID)
	err := screen(t, site, "movie").Update(ctx, alien.ID, []byte(payload))
	assert.Contains(t, fieldErrors(t, err), "shots")

	var got models.Movie
	require.NoError(t, db.First(&got, alien.ID).Error)
	assert.Equal(t, "Alien", got.Title)
}

func TestMovieScreen_ReviewInlineParent(t *testing.T) {
	site, db := newSite(t)
	ctx := context.Background()

	alien := models.Movie{Title: "Alien", Year: 1979, URL: "alien"}
	heat := models.Movie{Title: "Heat", Year: 1995, URL: "heat"}
	require.NoError(t, db.Create(&alien).Error)
	require.NoError(t, db.Create(&heat).Error)
	root := models.Review{Name: "Ann", Email: "ann@example.com", Text: "Great", MovieID: alien.ID}
	other := models.Review{Name: "Bob", Email: "bob@example.com", Text: "Tense", MovieID: heat.ID}
	reply := models.Review{Name: "Cid", Email: "cid@example.com", Text: "Agreed", MovieID: alien.ID}
	require.NoError(t, db.Create(&root).Error)
	require.NoError(t, db.Create(&other).Error)
	require.NoError(t, db.Create(&reply).Error)

	movies := screen(t, site, "movie")
	payload := fmt.Sprintf(`{"title": "Alien", "year": 1979, "url": "alien", "reviews": [{"id": %d, "text": "Agreed!", "parent": %d}]}`, reply.ID, other.ID)
	err := movies.Update(ctx, alien.ID, []byte(payload))
	assert.Contains(t, fieldErrors(t, err), "parent")

	payload = fmt.Sprintf(`{"title": "Alien", "year": 1979, "url": "alien", "reviews": [{"id": %d, "text": "Agreed!", "parent": %d}]}`, reply.ID, root.ID)
	require.NoError(t, movies.Update(ctx, alien.ID, []byte(payload)))

	var got models.Review
	require.NoError(t, db.First(&got, reply.ID).Error)
	assert.Equal(t, "Agreed!", got.Text)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, root.ID, *got.ParentID)
	assert.Equal(t, "Cid", got.Name)
}

func TestMovieScreen_ReviewInlineRejectsParentCycle(t *testing.T) {
	site, db := newSite(t)
	ctx := context.Background()

	alien := models.Movie{Title: "Alien", Year: 1979, URL: "alien"}
	require.NoError(t, db.Create(&alien).Error)
	root := models.Review{Name: "Ann", Email: "ann@example.com", Text: "Great", MovieID: alien.ID}
	require.NoError(t, db.Create(&root).Error)
	reply := models.Review{Name: "Bob", Email: "bob@example.com", Text: "Agreed", MovieID: alien.ID, ParentID: &root.ID}
	require.NoError(t, db.Create(&reply).Error)
	nested := models.Review{Name: "Cid", Email: "cid@example.com", Text: "Same", MovieID: alien.ID, ParentID: &reply.ID}
	require.NoError(t, db.Create(&nested).Error)

	payload := fmt.Sprintf(`{"title": "Alien", "year": 1979, "url": "alien", "reviews": [{"id": %d, "text": "Great", "parent": %d}]}`, root.ID, nested.ID)
	err := screen(t, site, "movie").Update(ctx, alien.ID, []byte(payload))
	assert.Contains(t, fieldErrors(t, err), "parent")

	var got models.Review
	require.NoError(t, db.First(&got, root.ID).Error)
	assert.Nil(t, got.ParentID)
}

func TestMovieScreen_InlineDraft(t *testing.T) {
	site, db := newSite(t)
	ctx := context.Background()

	alien := models.Movie{Title: "Alien", Year: 1979, URL: "alien", Draft: true}
	require.NoError(t, db.Create(&alien).Error)
	movies := screen(t, site, "movie")

	for _, payload := range []string{`{"draft": "yes"}`, `{"draft": null}`, `{"draft": 0}`} {
		err := movies.UpdateInline(ctx, alien.ID, []byte(payload))
		assert.Contains(t, fieldErrors(t, err), "draft", payload)
	}

	page, err := movies.List(ctx, admin.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)

	require.NoError(t, movies.UpdateInline(ctx, alien.ID, []byte(`{"draft": false}`)))
	var got models.Movie
	require.NoError(t, db.First(&got, alien.ID).Error)
	assert.False(t, got.Draft)
}

func TestMovieScreen_PublishActions(t *testing.T) {
	site, db := newSite(t)
	ctx := context.Background()

	a := models.Movie{Title: "Alien", Year: 1979, URL: "alien", Draft: true}
	b := models.Movie{Title: "Heat", Year: 1995, URL: "heat", Draft: true}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	movies := screen(t, site, "movie")
	msg, err := movies.RunAction(ctx, "publish", []int64{a.ID})
	require.NoError(t, err)
	assert.Equal(t, "1 Movie was published successfully.", msg)

	msg, err = movies.RunAction(ctx, "unpublish", []int64{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, "2 Movies were unpublished successfully.", msg)

	var drafts int64
	require.NoError(t, db.Model(&models.Movie{}).Where("draft = ?", true).Count(&drafts).Error)
	assert.Equal(t, int64(2), drafts)
}

func TestReviewScreen(t *testing.T) {
	site, db := newSite(t)
	ctx := context.Background()

	alien := models.Movie{Title: "Alien", Year: 1979, URL: "alien"}
	require.NoError(t, db.Create(&alien).Error)
	r := models.Review{Name: "Ann", Email: "ann@example.com", Text: "Great", MovieID: alien.ID}
	require.NoError(t, db.Create(&r).Error)

	reviews := screen(t, site, "review")
	_, err := reviews.Create(ctx, []byte(`{"text": "x"}`))
	assert.ErrorIs(t, err, admin.ErrReadOnly)

	err = reviews.Update(ctx, r.ID, []byte(fmt.Sprintf(`{"text": "Great!", "parent": %d}`, r.ID)))
	assert.Contains(t, fieldErrors(t, err), "parent")

	reply := models.Review{Name: "Bob", Email: "bob@example.com", Text: "Agreed", MovieID: alien.ID, ParentID: &r.ID}
	require.NoError(t, db.Create(&reply).Error)
	err = reviews.Update(ctx, r.ID, []byte(fmt.Sprintf(`{"text": "Great!", "parent": %d}`, reply.ID)))
	assert.Contains(t, fieldErrors(t, err), "parent")

	require.NoError(t, reviews.Update(ctx, r.ID, []byte(`{"text": "Great!"}`)))

	page, err := reviews.List(ctx, admin.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Rows, 2)
	assert.Equal(t, "Bob - Alien", page.Rows[0].Label)
	assert.Equal(t, "Ann - Alien", page.Rows[1].Label)
}

func TestRatingScreen_ReadOnly(t *testing.T) {
	site, db := newSite(t)
	ctx := context.Background()

	alien := models.Movie{Title: "Alien", Year: 1979, URL: "alien"}
	require.NoError(t, db.Create(&alien).Error)
	star := models.RatingStar{Value: 5}
	require.NoError(t, db.Create(&star).Error)
	rating := models.Rating{IP: "192.0.2.1", StarID: star.ID, MovieID: alien.ID}
	require.NoError(t, db.Create(&rating).Error)

	ratings := screen(t, site, "rating")
	_, err := ratings.Create(ctx, []byte(`{}`))
	assert.ErrorIs(t, err, admin.ErrReadOnly)
	assert.ErrorIs(t, ratings.Update(ctx, rating.ID, []byte(`{}`)), admin.ErrReadOnly)
	assert.ErrorIs(t, ratings.Delete(ctx, rating.ID), admin.ErrReadOnly)

	page, err := ratings.List(ctx, admin.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "5 - Alien", page.Rows[0].Label)
}

func TestActorScreen_Preview(t *testing.T) {
	site, db := newSite(t)
	require.NoError(t, db.Create(&models.Actor{Name: "Sigourney Weaver", Image: "actors/sw.jpg"}).Error)

	page, err := screen(t, site, "actor").List(context.Background(), admin.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	cell := page.Rows[0].Cells[2]
	assert.Equal(t, "get_image", cell.Name)
	assert.Contains(t, fmt.Sprint(cell.Value), `src="/media/actors/sw.jpg" width="50" height="60"`)
}
