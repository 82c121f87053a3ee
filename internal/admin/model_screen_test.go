package admin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"moviehub/internal/admin"
	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/testutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func movieConfig() admin.Config[models.Movie] {
	return admin.Config[models.Movie]{
		Name:         "movie",
		VerboseName:  "Movie",
		Table:        "movies",
		ID:           func(m models.Movie) int64 { return m.ID },
		Joins:        []string{"LEFT JOIN categories ON categories.id = movies.category_id"},
		ListPreloads: []string{"Category"},
		Columns: []admin.Column[models.Movie]{
			{Name: "title", Label: "Title", Value: func(m models.Movie) interface{} { return m.Title }},
			{Name: "draft", Label: "Draft", Value: func(m models.Movie) interface{} { return m.Draft }},
			{Name: "poster", Label: "Poster", Value: func(m models.Movie) interface{} {
				return admin.ImagePreview("/media/"+m.Poster, admin.ThumbWidth, admin.ThumbHeight)
			}},
		},
		ListEditable: []string{"draft"},
		DecodeInline: decodeDraft,
		Filters: []admin.Filter{
			{Name: "year", Label: "year", Column: "movies.year", Numeric: true},
		},
		SearchFields: []string{"movies.title", "categories.name"},
		Fields: []admin.Field[models.Movie]{
			{Name: "title", Label: "Title", Value: func(m models.Movie) interface{} { return m.Title }},
			{Name: "year", Label: "Year", Value: func(m models.Movie) interface{} { return m.Year }},
			{Name: "url", Label: "Url", Value: func(m models.Movie) interface{} { return m.URL }},
		},
		ReadonlyFields: []string{"url"},
		Fieldsets: []admin.Fieldset{
			{Rows: [][]string{{"title", "year"}}},
			{Title: "Options", Classes: []string{"collapse"}, Rows: [][]string{{"url"}}},
		},
		Actions: []admin.Action{
			{Name: "count", Label: "Count", Run: func(ctx context.Context, ids []int64) (string, error) {
				return fmt.Sprintf("%d selected", len(ids)), nil
			}},
		},
	}
}

var errBadDraft = errors.New("draft must be true or false")

func decodeDraft(payload []byte) (map[string]interface{}, error) {
	var form struct {
		Draft *bool `json:"draft"`
	}
	if err := json.Unmarshal(payload, &form); err != nil || form.Draft == nil {
		return nil, errBadDraft
	}
	return map[string]interface{}{"draft": *form.Draft}, nil
}

func seed(t *testing.T, db *gorm.DB) []models.Movie {
	t.Helper()
	drama := models.Category{Name: "Drama", URL: "drama"}
	require.NoError(t, db.Create(&drama).Error)
	movies := []models.Movie{
		{Title: "Alien", Year: 1979, URL: "alien", Poster: "movies/alien.jpg"},
		{Title: "Heat", Year: 1995, URL: "heat", CategoryID: &drama.ID},
		{Title: "Aliens", Year: 1986, URL: "aliens", Draft: true},
	}
	require.NoError(t, db.Create(&movies).Error)
	return movies
}

func newMovieScreen(t *testing.T) (*admin.ModelScreen[models.Movie], *gorm.DB, []models.Movie) {
	t.Helper()
	db := testutil.NewTestDB(t)
	movies := seed(t, db)
	screen, err := admin.NewModelScreen(db, movieConfig())
	require.NoError(t, err)
	return screen, db, movies
}

func titles(page *admin.ListPage) []string {
	out := make([]string, 0, len(page.Rows))
	for _, r := range page.Rows {
		out = append(out, r.Label)
	}
	return out
}

func TestNewModelScreen_Defaults(t *testing.T) {
	screen, _, _ := newMovieScreen(t)
	opts := screen.Options()

	assert.Equal(t, "Movies", opts.VerboseNamePlural)
	assert.Equal(t, []string{"title"}, opts.ListDisplayLinks)
	assert.Equal(t, []string{"title", "draft", "poster"}, opts.ListDisplay)
	assert.Equal(t, []string{"year"}, opts.ListFilter)
	assert.False(t, opts.ReadOnly)
}

func TestNewModelScreen_Invalid(t *testing.T) {
	db := testutil.NewTestDB(t)

	cfg := movieConfig()
	cfg.ListEditable = []string{"year"}
	_, err := admin.NewModelScreen(db, cfg)
	assert.Error(t, err)

	cfg = movieConfig()
	cfg.ListEditable = []string{"title"}
	_, err = admin.NewModelScreen(db, cfg)
	assert.Error(t, err, "a link column cannot be editable")

	cfg = movieConfig()
	cfg.DecodeInline = nil
	_, err = admin.NewModelScreen(db, cfg)
	assert.Error(t, err, "editable columns need a decoder")

	cfg = movieConfig()
	cfg.Fieldsets = []admin.Fieldset{{Rows: [][]string{{"budget"}}}}
	_, err = admin.NewModelScreen(db, cfg)
	assert.Error(t, err)

	cfg = movieConfig()
	cfg.Table = ""
	_, err = admin.NewModelScreen(db, cfg)
	assert.Error(t, err)
}

func TestModelScreen_ListOrderingAndPaging(t *testing.T) {
	screen, _, _ := newMovieScreen(t)
	ctx := context.Background()

	page, err := screen.List(ctx, admin.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Aliens", "Heat", "Alien"}, titles(page))
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 100, page.PageSize)

	page, err = screen.List(ctx, admin.ListQuery{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alien"}, titles(page))
	assert.Equal(t, int64(2), page.TotalPages)

	page, err = screen.List(ctx, admin.ListQuery{PageSize: 10000})
	require.NoError(t, err)
	assert.Equal(t, 500, page.PageSize)
}

func TestModelScreen_ListSearch(t *testing.T) {
	screen, _, _ := newMovieScreen(t)
	ctx := context.Background()

	page, err := screen.List(ctx, admin.ListQuery{Search: "ALIEN"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Alien", "Aliens"}, titles(page))
	assert.True(t, page.Searchable)

	page, err = screen.List(ctx, admin.ListQuery{Search: "drama"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Heat"}, titles(page))

	page, err = screen.List(ctx, admin.ListQuery{Search: "alien heat"})
	require.NoError(t, err)
	assert.Empty(t, page.Rows)
}

func TestModelScreen_ListFilter(t *testing.T) {
	screen, _, _ := newMovieScreen(t)
	ctx := context.Background()

	page, err := screen.List(ctx, admin.ListQuery{Filters: map[string]string{"year": "1995"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Heat"}, titles(page))
	assert.Equal(t, "1995", page.Filters[0].Selected)

	page, err = screen.List(ctx, admin.ListQuery{Filters: map[string]string{"year": "nineteen"}})
	require.NoError(t, err)
	assert.Len(t, page.Rows, 3)
	assert.Empty(t, page.Filters[0].Selected)
}

func TestModelScreen_Get(t *testing.T) {
	screen, _, movies := newMovieScreen(t)
	ctx := context.Background()

	page, err := screen.Get(ctx, movies[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Alien", page.Label)
	require.Len(t, page.Fieldsets, 2)
	assert.Len(t, page.Fieldsets[0].Rows[0], 2)
	assert.Equal(t, "Options", page.Fieldsets[1].Title)
	assert.Equal(t, []string{"collapse"}, page.Fieldsets[1].Classes)
	url := page.Fieldsets[1].Rows[0][0]
	assert.Equal(t, "alien", url.Value)
	assert.True(t, url.ReadOnly, "no update hook")

	_, err = screen.Get(ctx, 9999)
	assert.True(t, errors.Is(err, admin.ErrNotFound))
}

func TestModelScreen_WritesWithoutHooks(t *testing.T) {
	screen, _, movies := newMovieScreen(t)
	ctx := context.Background()

	_, err := screen.Create(ctx, []byte(`{}`))
	assert.ErrorIs(t, err, admin.ErrReadOnly)
	assert.ErrorIs(t, screen.Update(ctx, movies[0].ID, []byte(`{}`)), admin.ErrReadOnly)
	assert.ErrorIs(t, screen.Delete(ctx, movies[0].ID), admin.ErrReadOnly)
}

func TestModelScreen_UpdateInline(t *testing.T) {
	screen, db, movies := newMovieScreen(t)
	ctx := context.Background()

	require.NoError(t, screen.UpdateInline(ctx, movies[2].ID, []byte(`{"draft": false}`)))
	var got models.Movie
	require.NoError(t, db.First(&got, movies[2].ID).Error)
	assert.False(t, got.Draft)

	err := screen.UpdateInline(ctx, movies[2].ID, []byte(`{"title": "Aliens 2"}`))
	assert.ErrorIs(t, err, admin.ErrNotEditable)

	err = screen.UpdateInline(ctx, movies[2].ID, []byte(`{}`))
	assert.ErrorIs(t, err, admin.ErrNotEditable)

	err = screen.UpdateInline(ctx, movies[2].ID, []byte(`[true]`))
	assert.ErrorIs(t, err, admin.ErrInvalidInline)

	err = screen.UpdateInline(ctx, 9999, []byte(`{"draft": true}`))
	assert.ErrorIs(t, err, admin.ErrNotFound)
}

func TestModelScreen_UpdateInlineRejectsBadValues(t *testing.T) {
	screen, db, movies := newMovieScreen(t)
	ctx := context.Background()

	for _, payload := range []string{`{"draft": "yes"}`, `{"draft": null}`, `{"draft": 1}`} {
		err := screen.UpdateInline(ctx, movies[0].ID, []byte(payload))
		assert.ErrorIs(t, err, errBadDraft, payload)
	}

	var got models.Movie
	require.NoError(t, db.First(&got, movies[0].ID).Error)
	assert.False(t, got.Draft)

	_, err := screen.List(ctx, admin.ListQuery{})
	assert.NoError(t, err)
}

func TestModelScreen_RunAction(t *testing.T) {
	screen, _, _ := newMovieScreen(t)
	ctx := context.Background()

	msg, err := screen.RunAction(ctx, "count", []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "2 selected", msg)

	_, err = screen.RunAction(ctx, "count", nil)
	assert.ErrorIs(t, err, admin.ErrNoSelection)

	_, err = screen.RunAction(ctx, "delete_everything", []int64{1})
	assert.ErrorIs(t, err, admin.ErrUnknownAction)
}

func TestSite_RejectsDuplicateScreens(t *testing.T) {
	screen, _, _ := newMovieScreen(t)

	_, err := admin.NewSite(admin.SiteConfig{Title: "t"}, screen, screen)
	assert.Error(t, err)

	site, err := admin.NewSite(admin.SiteConfig{Title: "Movies"}, screen)
	require.NoError(t, err)
	got, ok := site.Screen("movie")
	assert.True(t, ok)
	assert.Equal(t, screen, got)
	assert.Equal(t, "Movies", site.Index()[0].VerboseNamePlural)
}

func TestRenderList_EscapesTextButNotPreviews(t *testing.T) {
	screen, db, _ := newMovieScreen(t)
	require.NoError(t, db.Create(&models.Movie{Title: "<script>alert(1)</script>", Year: 2000, URL: "xss"}).Error)

	page, err := screen.List(context.Background(), admin.ListQuery{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, admin.RenderList(&buf, admin.SiteConfig{Title: "Movies", Header: "Movies admin"}, screen.Options(), page, []string{"Saved."}))

	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 4, doc.Find("#result_list tbody tr").Length())
	assert.Equal(t, "<script>alert(1)</script>", doc.Find("td.field-title a").First().Text())
	assert.Equal(t, 1, doc.Find(`td.field-poster img[src="/media/movies/alien.jpg"]`).Length())
	assert.Equal(t, "Saved.", doc.Find("ul.messagelist li").Text())
	assert.Equal(t, "4 Movies", doc.Find("p.paginator").Text())
	assert.Equal(t, 1, doc.Find("#changelist-search").Length())
}
