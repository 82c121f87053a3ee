package admin_test

import (
	"strings"
	"testing"

	"moviehub/internal/admin"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatedMessage(t *testing.T) {
	assert.Equal(t, "1 Movie was published successfully.", admin.UpdatedMessage(1, "Movie", "Movies", "published"))
	assert.Equal(t, "3 Movies were unpublished successfully.", admin.UpdatedMessage(3, "Movie", "Movies", "unpublished"))
	assert.Equal(t, "0 Movies were published successfully.", admin.UpdatedMessage(0, "Movie", "Movies", "published"))
}

func TestImagePreview(t *testing.T) {
	html := admin.ImagePreview("/media/movies/alien.jpg", admin.PosterWidth, admin.PosterHeight)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	require.NoError(t, err)
	img := doc.Find("img")
	require.Equal(t, 1, img.Length())
	src, _ := img.Attr("src")
	width, _ := img.Attr("width")
	height, _ := img.Attr("height")
	assert.Equal(t, "/media/movies/alien.jpg", src)
	assert.Equal(t, "100", width)
	assert.Equal(t, "110", height)

	assert.Empty(t, admin.ImagePreview("", admin.ThumbWidth, admin.ThumbHeight))
}
