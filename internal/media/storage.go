// Package media resolves stored upload paths to public URLs.
package media

import (
	"path"
	"strings"
)

// Upload directories, relative to the storage root.
const (
	ActorsDir     = "actors/"
	MoviesDir     = "movies/"
	MovieShotsDir = "movie_shots/"
)

type Storage struct {
	baseURL string
	root    string
}

// NewStorage serves files kept under root at baseURL. baseURL must end with
// a slash.
func NewStorage(baseURL, root string) *Storage {
	return &Storage{baseURL: baseURL, root: root}
}

// URL returns the public address of a stored file, or "" when name is empty.
func (s *Storage) URL(name string) string {
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		return name
	}
	return s.baseURL + strings.TrimPrefix(path.Clean("/"+name), "/")
}

func (s *Storage) Root() string {
	return s.root
}

func (s *Storage) BaseURL() string {
	return s.baseURL
}
