package admin

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("admin: object not found")
	ErrReadOnly      = errors.New("admin: screen is read-only")
	ErrUnknownAction = errors.New("admin: unknown action")
	ErrNoSelection   = errors.New("admin: no items selected")
	ErrNotEditable   = errors.New("admin: field is not editable from the list")
	ErrInvalidInline = errors.New("admin: malformed list values")
)

// Screen is the list/edit surface of one entity.
type Screen interface {
	Options() Options
	List(ctx context.Context, q ListQuery) (*ListPage, error)
	Get(ctx context.Context, id int64) (*EditPage, error)
	Create(ctx context.Context, payload []byte) (int64, error)
	Update(ctx context.Context, id int64, payload []byte) error
	Delete(ctx context.Context, id int64) error
	UpdateInline(ctx context.Context, id int64, payload []byte) error
	RunAction(ctx context.Context, name string, ids []int64) (string, error)
}

// Options is the client-facing description of a screen.
type Options struct {
	Name              string       `json:"name"`
	VerboseName       string       `json:"verbose_name"`
	VerboseNamePlural string       `json:"verbose_name_plural"`
	ListDisplay       []string     `json:"list_display"`
	ListDisplayLinks  []string     `json:"list_display_links"`
	ListEditable      []string     `json:"list_editable,omitempty"`
	ListFilter        []string     `json:"list_filter,omitempty"`
	SearchFields      []string     `json:"search_fields,omitempty"`
	ReadonlyFields    []string     `json:"readonly_fields,omitempty"`
	Actions           []ActionInfo `json:"actions,omitempty"`
	Inlines           []string     `json:"inlines,omitempty"`
	ReadOnly          bool         `json:"read_only"`
	SaveOnTop         bool         `json:"save_on_top"`
	SaveAsNew         bool         `json:"save_as_new"`
}

type ActionInfo struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

type ListQuery struct {
	Search   string
	Filters  map[string]string
	Page     int
	PageSize int
}

type ColumnHeader struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Link     bool   `json:"link"`
	Editable bool   `json:"editable"`
}

type Cell struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

type Row struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
	Cells []Cell `json:"cells"`
}

type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type FilterView struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Choices  []Choice `json:"choices"`
	Selected string   `json:"selected,omitempty"`
}

type ListPage struct {
	Screen     string         `json:"screen"`
	Title      string         `json:"title"`
	Columns    []ColumnHeader `json:"columns"`
	Rows       []Row          `json:"rows"`
	Filters    []FilterView   `json:"filters,omitempty"`
	Search     string         `json:"search,omitempty"`
	Searchable bool           `json:"searchable"`
	Actions    []ActionInfo   `json:"actions,omitempty"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int64          `json:"total"`
	TotalPages int64          `json:"total_pages"`
}

type FieldView struct {
	Name     string      `json:"name"`
	Label    string      `json:"label"`
	Value    interface{} `json:"value"`
	ReadOnly bool        `json:"read_only"`
	HelpText string      `json:"help_text,omitempty"`
}

type FieldsetView struct {
	Title   string        `json:"title,omitempty"`
	Classes []string      `json:"classes,omitempty"`
	Rows    [][]FieldView `json:"rows"`
}

type InlineView struct {
	Name           string                   `json:"name"`
	Title          string                   `json:"title"`
	Fields         []string                 `json:"fields"`
	ReadonlyFields []string                 `json:"readonly_fields,omitempty"`
	Extra          int                      `json:"extra"`
	Rows           []map[string]interface{} `json:"rows"`
}

type EditPage struct {
	Screen    string         `json:"screen"`
	ID        int64          `json:"id"`
	Label     string         `json:"label"`
	Fieldsets []FieldsetView `json:"fieldsets"`
	Inlines   []InlineView   `json:"inlines,omitempty"`
	ReadOnly  bool           `json:"read_only"`
	SaveOnTop bool           `json:"save_on_top"`
	SaveAsNew bool           `json:"save_as_new"`
}
