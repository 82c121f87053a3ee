package admin

import (
	"html/template"
	"io"
)

var listTemplate = template.Must(template.New("list").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Page.Title}} | {{.Site.Title}}</title>
</head>
<body>
<div id="header"><div id="site-name"><a href="/admin/">{{.Site.Header}}</a></div></div>
{{if .Messages}}<ul class="messagelist">{{range .Messages}}<li class="success">{{.}}</li>{{end}}</ul>{{end}}
<div id="content">
<h1>{{.Page.Title}}</h1>
{{if .Page.Searchable}}<form id="changelist-search" method="get"><input type="text" name="q" value="{{.Page.Search}}"><input type="submit" value="Search"></form>{{end}}
{{if .Page.Filters}}<div id="changelist-filter">{{range .Page.Filters}}{{$selected := .Selected}}{{$name := .Name}}
<h3>By {{.Label}}</h3><ul data-filter="{{.Name}}">{{range .Choices}}<li{{if eq .Value $selected}} class="selected"{{end}}><a href="?{{$name}}={{.Value}}">{{.Label}}</a></li>{{end}}</ul>{{end}}
</div>{{end}}
{{if .Page.Actions}}<form id="changelist-actions" method="post"><select name="action">{{range .Page.Actions}}<option value="{{.Name}}">{{.Label}}</option>{{end}}</select></form>{{end}}
<table id="result_list">
<thead><tr>{{range .Page.Columns}}<th scope="col" class="column-{{.Name}}">{{.Label}}</th>{{end}}</tr></thead>
<tbody>
{{range .Page.Rows}}{{$id := .ID}}<tr data-id="{{.ID}}">{{range $i, $cell := .Cells}}{{$col := index $.Page.Columns $i}}<td class="field-{{$cell.Name}}">{{if $col.Link}}<a href="/admin/{{$.Page.Screen}}/{{$id}}">{{$cell.Value}}</a>{{else}}{{$cell.Value}}{{end}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
<p class="paginator">{{.Page.Total}} {{if eq .Page.Total 1}}{{.VerboseName}}{{else}}{{.VerboseNamePlural}}{{end}}</p>
</div>
</body>
</html>
`))

type listView struct {
	Site              SiteConfig
	Page              *ListPage
	Messages          []string
	VerboseName       string
	VerboseNamePlural string
}

// RenderList writes page as an HTML changelist. Cell values of type
// template.HTML (image previews) are emitted unescaped, everything else is
// escaped.
func RenderList(w io.Writer, site SiteConfig, opts Options, page *ListPage, messages []string) error {
	return listTemplate.Execute(w, listView{
		Site:              site,
		Page:              page,
		Messages:          messages,
		VerboseName:       opts.VerboseName,
		VerboseNamePlural: opts.VerboseNamePlural,
	})
}
