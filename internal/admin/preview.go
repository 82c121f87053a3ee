package admin

import (
	"fmt"
	"html/template"
)

// Preview sizes in pixels.
const (
	PosterWidth  = 100
	PosterHeight = 110
	ThumbWidth   = 50
	ThumbHeight  = 60
)

// ImagePreview renders an inline <img> for an already resolved media URL.
// The URL comes from validated uploads and is emitted as is.
func ImagePreview(url string, width, height int) template.HTML {
	if url == "" {
		return ""
	}
	return template.HTML(fmt.Sprintf(`<img src="%s" width="%d" height="%d">`, url, width, height))
}
