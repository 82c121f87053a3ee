// Package admin is a small back-office framework: each entity is described
// by an explicit screen configuration (columns, filters, search, fieldsets,
// inlines, bulk actions) and served by a generic list/edit implementation.
package admin

import (
	"fmt"
)

// SiteConfig holds the back-office branding. It is built once at startup and
// never mutated.
type SiteConfig struct {
	Title  string `json:"title"`
	Header string `json:"header"`
}

// Site is the registry of screens, keyed by their url name.
type Site struct {
	config  SiteConfig
	screens []Screen
	byName  map[string]Screen
}

// ScreenInfo is the site index entry for one screen.
type ScreenInfo struct {
	Name              string `json:"name"`
	VerboseName       string `json:"verbose_name"`
	VerboseNamePlural string `json:"verbose_name_plural"`
	ReadOnly          bool   `json:"read_only"`
}

func NewSite(cfg SiteConfig, screens ...Screen) (*Site, error) {
	s := &Site{
		config:  cfg,
		screens: make([]Screen, 0, len(screens)),
		byName:  make(map[string]Screen, len(screens)),
	}
	for _, screen := range screens {
		name := screen.Options().Name
		if _, dup := s.byName[name]; dup {
			return nil, fmt.Errorf("admin screen %q registered twice", name)
		}
		s.byName[name] = screen
		s.screens = append(s.screens, screen)
	}
	return s, nil
}

func (s *Site) Config() SiteConfig {
	return s.config
}

func (s *Site) Screen(name string) (Screen, bool) {
	screen, ok := s.byName[name]
	return screen, ok
}

// Index lists the registered screens in registration order.
func (s *Site) Index() []ScreenInfo {
	out := make([]ScreenInfo, 0, len(s.screens))
	for _, screen := range s.screens {
		opts := screen.Options()
		out = append(out, ScreenInfo{
			Name:              opts.Name,
			VerboseName:       opts.VerboseName,
			VerboseNamePlural: opts.VerboseNamePlural,
			ReadOnly:          opts.ReadOnly,
		})
	}
	return out
}
