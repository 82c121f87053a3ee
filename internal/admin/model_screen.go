package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	defaultPerPage = 100
	maxPerPage     = 500
)

// Column is one list_display entry.
type Column[T any] struct {
	Name  string
	Label string
	Value func(T) interface{}
}

// Field is one value of the edit page.
type Field[T any] struct {
	Name     string
	Label    string
	HelpText string
	Value    func(T) interface{}
}

// Filter narrows the list by equality on Column. Numeric filters ignore
// values that do not parse as integers.
type Filter struct {
	Name    string
	Label   string
	Column  string
	Numeric bool
	Choices func(ctx context.Context) ([]Choice, error)
}

type Fieldset struct {
	Title   string
	Classes []string
	// Each row is rendered on one line; a row with several names groups them.
	Rows [][]string
}

// Inline is a set of child rows edited from the parent's page.
type Inline[T any] struct {
	Name           string
	Title          string
	Fields         []string
	ReadonlyFields []string
	Extra          int
	Rows           func(T) []map[string]interface{}
}

// Action is a bulk operation over selected ids. Run returns the message
// shown to the operator.
type Action struct {
	Name  string
	Label string
	Run   func(ctx context.Context, ids []int64) (string, error)
}

// Config describes a screen over the gorm model T.
type Config[T fmt.Stringer] struct {
	Name              string
	VerboseName       string
	VerboseNamePlural string

	// Table qualifies id and editable columns in generated SQL.
	Table string
	ID    func(T) int64

	Columns          []Column[T]
	ListDisplayLinks []string
	// ListEditable names database columns of Table that may be changed
	// straight from the list. Each must also be a list column.
	ListEditable []string
	// DecodeInline turns a list-row payload into column values and must
	// reject values the column cannot hold. Required with ListEditable.
	DecodeInline func(payload []byte) (map[string]interface{}, error)
	Filters      []Filter
	// SearchFields are qualified SQL columns; related tables come in via Joins.
	SearchFields  []string
	Joins         []string
	ListPreloads  []string
	Ordering      string
	PerPage       int

	Fields         []Field[T]
	ReadonlyFields []string
	Fieldsets      []Fieldset
	DetailPreloads []string
	Inlines        []Inline[T]

	Actions   []Action
	SaveOnTop bool
	SaveAsNew bool

	// Nil write hooks make the matching operation unavailable.
	Create func(ctx context.Context, payload []byte) (int64, error)
	Update func(ctx context.Context, id int64, payload []byte) error
	Delete func(ctx context.Context, id int64) error
}

// ModelScreen serves a Config against the database.
type ModelScreen[T fmt.Stringer] struct {
	db  *gorm.DB
	cfg Config[T]
}

// NewModelScreen validates cfg and fills in defaults.
func NewModelScreen[T fmt.Stringer](db *gorm.DB, cfg Config[T]) (*ModelScreen[T], error) {
	if cfg.Name == "" || cfg.Table == "" || cfg.ID == nil {
		return nil, errors.New("admin: screen needs a name, a table and an id accessor")
	}
	if cfg.VerboseNamePlural == "" {
		cfg.VerboseNamePlural = cfg.VerboseName + "s"
	}
	if len(cfg.Columns) == 0 {
		cfg.Columns = []Column[T]{{
			Name:  "__str__",
			Label: cfg.VerboseName,
			Value: func(row T) interface{} { return row.String() },
		}}
	}
	if len(cfg.ListDisplayLinks) == 0 {
		cfg.ListDisplayLinks = []string{cfg.Columns[0].Name}
	}
	if cfg.Ordering == "" {
		cfg.Ordering = cfg.Table + ".id desc"
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = defaultPerPage
	}

	columns := make(map[string]bool, len(cfg.Columns))
	for _, c := range cfg.Columns {
		columns[c.Name] = true
	}
	for _, name := range cfg.ListDisplayLinks {
		if !columns[name] {
			return nil, fmt.Errorf("admin: %s: link %q is not a list column", cfg.Name, name)
		}
	}
	if len(cfg.ListEditable) > 0 && cfg.DecodeInline == nil {
		return nil, fmt.Errorf("admin: %s: list_editable needs DecodeInline", cfg.Name)
	}
	for _, name := range cfg.ListEditable {
		if !columns[name] {
			return nil, fmt.Errorf("admin: %s: editable %q is not a list column", cfg.Name, name)
		}
		if contains(cfg.ListDisplayLinks, name) {
			return nil, fmt.Errorf("admin: %s: %q cannot be both a link and editable", cfg.Name, name)
		}
	}

	fields := make(map[string]bool, len(cfg.Fields))
	for _, f := range cfg.Fields {
		fields[f.Name] = true
	}
	for _, fs := range cfg.Fieldsets {
		for _, row := range fs.Rows {
			for _, name := range row {
				if !fields[name] {
					return nil, fmt.Errorf("admin: %s: fieldset %q references unknown field %q", cfg.Name, fs.Title, name)
				}
			}
		}
	}

	return &ModelScreen[T]{db: db, cfg: cfg}, nil
}

func (s *ModelScreen[T]) Options() Options {
	opts := Options{
		Name:              s.cfg.Name,
		VerboseName:       s.cfg.VerboseName,
		VerboseNamePlural: s.cfg.VerboseNamePlural,
		ListDisplayLinks:  s.cfg.ListDisplayLinks,
		ListEditable:      s.cfg.ListEditable,
		SearchFields:      s.cfg.SearchFields,
		ReadonlyFields:    s.cfg.ReadonlyFields,
		ReadOnly:          s.readOnly(),
		SaveOnTop:         s.cfg.SaveOnTop,
		SaveAsNew:         s.cfg.SaveAsNew,
	}
	for _, c := range s.cfg.Columns {
		opts.ListDisplay = append(opts.ListDisplay, c.Name)
	}
	for _, f := range s.cfg.Filters {
		opts.ListFilter = append(opts.ListFilter, f.Name)
	}
	opts.Actions = s.actionInfo()
	for _, in := range s.cfg.Inlines {
		opts.Inlines = append(opts.Inlines, in.Name)
	}
	return opts
}

func (s *ModelScreen[T]) readOnly() bool {
	return s.cfg.Create == nil && s.cfg.Update == nil && len(s.cfg.ListEditable) == 0
}

func (s *ModelScreen[T]) actionInfo() []ActionInfo {
	var out []ActionInfo
	for _, a := range s.cfg.Actions {
		out = append(out, ActionInfo{Name: a.Name, Label: a.Label})
	}
	return out
}

func (s *ModelScreen[T]) List(ctx context.Context, q ListQuery) (*ListPage, error) {
	page, pageSize := q.Page, q.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = s.cfg.PerPage
	}
	if pageSize > maxPerPage {
		pageSize = maxPerPage
	}

	query := s.db.WithContext(ctx).Model(new(T))
	for _, j := range s.cfg.Joins {
		query = query.Joins(j)
	}

	filters := make([]FilterView, 0, len(s.cfg.Filters))
	for _, f := range s.cfg.Filters {
		selected := q.Filters[f.Name]
		if selected != "" {
			if f.Numeric {
				if n, err := strconv.ParseInt(selected, 10, 64); err == nil {
					query = query.Where(f.Column+" = ?", n)
				} else {
					selected = ""
				}
			} else {
				query = query.Where(f.Column+" = ?", selected)
			}
		}
		view := FilterView{Name: f.Name, Label: f.Label, Selected: selected}
		if f.Choices != nil {
			choices, err := f.Choices(ctx)
			if err != nil {
				return nil, fmt.Errorf("load %s choices: %w", f.Name, err)
			}
			view.Choices = choices
		}
		filters = append(filters, view)
	}

	search := strings.TrimSpace(q.Search)
	if search != "" && len(s.cfg.SearchFields) > 0 {
		for _, term := range strings.Fields(search) {
			clauses := make([]string, len(s.cfg.SearchFields))
			args := make([]interface{}, len(s.cfg.SearchFields))
			for i, col := range s.cfg.SearchFields {
				clauses[i] = "LOWER(" + col + ") LIKE ?"
				args[i] = "%" + strings.ToLower(term) + "%"
			}
			query = query.Where("("+strings.Join(clauses, " OR ")+")", args...)
		}
	}

	base := query.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	find := base.Select(s.cfg.Table + ".*")
	for _, p := range s.cfg.ListPreloads {
		find = find.Preload(p)
	}
	var rows []T
	err := find.Order(s.cfg.Ordering).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := &ListPage{
		Screen:     s.cfg.Name,
		Title:      "Select " + strings.ToLower(s.cfg.VerboseName) + " to change",
		Rows:       make([]Row, 0, len(rows)),
		Filters:    filters,
		Search:     search,
		Searchable: len(s.cfg.SearchFields) > 0,
		Actions:    s.actionInfo(),
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	for _, c := range s.cfg.Columns {
		out.Columns = append(out.Columns, ColumnHeader{
			Name:     c.Name,
			Label:    c.Label,
			Link:     contains(s.cfg.ListDisplayLinks, c.Name),
			Editable: contains(s.cfg.ListEditable, c.Name),
		})
	}
	for _, row := range rows {
		r := Row{ID: s.cfg.ID(row), Label: row.String()}
		for _, c := range s.cfg.Columns {
			r.Cells = append(r.Cells, Cell{Name: c.Name, Value: c.Value(row)})
		}
		out.Rows = append(out.Rows, r)
	}
	return out, nil
}

func (s *ModelScreen[T]) Get(ctx context.Context, id int64) (*EditPage, error) {
	query := s.db.WithContext(ctx)
	for _, p := range s.cfg.DetailPreloads {
		query = query.Preload(p)
	}
	var row T
	if err := query.Where(s.cfg.Table+".id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s %d", ErrNotFound, s.cfg.Name, id)
		}
		return nil, err
	}

	values := make(map[string]FieldView, len(s.cfg.Fields))
	for _, f := range s.cfg.Fields {
		values[f.Name] = FieldView{
			Name:     f.Name,
			Label:    f.Label,
			Value:    f.Value(row),
			ReadOnly: s.cfg.Update == nil || contains(s.cfg.ReadonlyFields, f.Name),
			HelpText: f.HelpText,
		}
	}

	page := &EditPage{
		Screen:    s.cfg.Name,
		ID:        s.cfg.ID(row),
		Label:     row.String(),
		ReadOnly:  s.cfg.Update == nil,
		SaveOnTop: s.cfg.SaveOnTop,
		SaveAsNew: s.cfg.SaveAsNew,
	}

	fieldsets := s.cfg.Fieldsets
	if len(fieldsets) == 0 {
		fs := Fieldset{}
		for _, f := range s.cfg.Fields {
			fs.Rows = append(fs.Rows, []string{f.Name})
		}
		fieldsets = []Fieldset{fs}
	}
	for _, fs := range fieldsets {
		view := FieldsetView{Title: fs.Title, Classes: fs.Classes}
		for _, names := range fs.Rows {
			line := make([]FieldView, 0, len(names))
			for _, name := range names {
				line = append(line, values[name])
			}
			view.Rows = append(view.Rows, line)
		}
		page.Fieldsets = append(page.Fieldsets, view)
	}

	for _, in := range s.cfg.Inlines {
		view := InlineView{
			Name:           in.Name,
			Title:          in.Title,
			Fields:         in.Fields,
			ReadonlyFields: in.ReadonlyFields,
			Extra:          in.Extra,
			Rows:           in.Rows(row),
		}
		if view.Rows == nil {
			view.Rows = []map[string]interface{}{}
		}
		page.Inlines = append(page.Inlines, view)
	}
	return page, nil
}

func (s *ModelScreen[T]) Create(ctx context.Context, payload []byte) (int64, error) {
	if s.cfg.Create == nil {
		return 0, ErrReadOnly
	}
	return s.cfg.Create(ctx, payload)
}

func (s *ModelScreen[T]) Update(ctx context.Context, id int64, payload []byte) error {
	if s.cfg.Update == nil {
		return ErrReadOnly
	}
	return s.cfg.Update(ctx, id, payload)
}

func (s *ModelScreen[T]) Delete(ctx context.Context, id int64) error {
	if s.cfg.Delete == nil {
		return ErrReadOnly
	}
	return s.cfg.Delete(ctx, id)
}

// UpdateInline writes list-editable columns directly, one statement per row.
// payload is a JSON object keyed by column name.
func (s *ModelScreen[T]) UpdateInline(ctx context.Context, id int64, payload []byte) error {
	if len(s.cfg.ListEditable) == 0 {
		return ErrReadOnly
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInline, err)
	}
	if len(raw) == 0 {
		return fmt.Errorf("%w: no values", ErrNotEditable)
	}
	for name := range raw {
		if !contains(s.cfg.ListEditable, name) {
			return fmt.Errorf("%w: %s", ErrNotEditable, name)
		}
	}
	values, err := s.cfg.DecodeInline(payload)
	if err != nil {
		return err
	}
	for name := range values {
		if !contains(s.cfg.ListEditable, name) {
			return fmt.Errorf("%w: %s", ErrNotEditable, name)
		}
	}
	result := s.db.WithContext(ctx).
		Model(new(T)).
		Where(s.cfg.Table+".id = ?", id).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s %d", ErrNotFound, s.cfg.Name, id)
	}
	return nil
}

func (s *ModelScreen[T]) RunAction(ctx context.Context, name string, ids []int64) (string, error) {
	for _, a := range s.cfg.Actions {
		if a.Name != name {
			continue
		}
		if len(ids) == 0 {
			return "", ErrNoSelection
		}
		return a.Run(ctx, ids)
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownAction, name)
}

func contains(list []string, item string) bool {
	for _, s := range list {
		if s == item {
			return true
		}
	}
	return false
}
