package export

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"route-plan-service/internal/ports"
)

// The sinks render documents by templating a standalone HTML page and
// handing it to a headless browser, so the PDF and PNG artifacts share
// one styling source.

var tableTemplate = template.Must(template.New("table").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<style>
  @page { size: A4{{if .Landscape}} landscape{{end}}; margin: 12mm; }
  body { font-family: Helvetica, Arial, sans-serif; font-size: 9pt; color: #1a1a1a; }
  h1 { font-size: 13pt; margin: 0 0 2px; }
  p.subtitle { margin: 0 0 10px; color: #555; }
  table { width: 100%; border-collapse: collapse; }
  th, td { border: 1px solid #888; padding: 3px 5px; vertical-align: top; white-space: pre-line; }
  th { background: #2f4f6f; color: #fff; text-transform: uppercase; font-size: 8pt; }
  tr.span td { background: #d9e2ec; font-weight: bold; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="subtitle">{{.Subtitle}}</p>
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- $cols := len .Columns}}
{{- range .Rows}}
{{- if .Span}}
<tr class="span"><td colspan="{{$cols}}">{{index .Cells 0}}</td></tr>
{{- else}}
<tr>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
{{- end}}
</tbody>
</table>
</body>
</html>`))

var calendarTemplate = template.Must(template.New("calendar").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #1a1a1a; width: 1200px; }
  h1 { font-size: 16pt; margin: 0 0 2px; }
  p.subtitle { margin: 0 0 10px; color: #555; text-transform: capitalize; }
  table { width: 100%; border-collapse: collapse; table-layout: fixed; }
  th, td { border: 1px solid #888; padding: 4px; vertical-align: top; }
  th { background: #2f4f6f; color: #fff; font-size: 9pt; }
  td { height: 90px; font-size: 8pt; }
  td.out { background: #f0f0f0; color: #aaa; }
  .day { font-weight: bold; font-size: 10pt; }
  .entry { margin-top: 2px; background: #d9e2ec; border-radius: 2px; padding: 1px 3px; }
  .techs { color: #333; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="subtitle">{{.Subtitle}}</p>
<table>
<thead><tr>{{range .Weekdays}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Weeks}}
<tr>
{{- range .}}
<td{{if not .InMonth}} class="out"{{end}}>
<div class="day">{{.Day}}</div>
{{- if .InMonth}}
{{- range .Entries}}
<div class="entry">{{.RouteName}}<div class="techs">{{range $i, $t := .Technicians}}{{if $i}}, {{end}}{{$t}}{{end}}</div></div>
{{- end}}
{{- end}}
</td>
{{- end}}
</tr>
{{- end}}
</tbody>
</table>
</body>
</html>`))

func renderTableHTML(doc ports.TableDocument) (string, error) {
	var b strings.Builder
	if err := tableTemplate.Execute(&b, doc); err != nil {
		return "", fmt.Errorf("render table html: %w", err)
	}
	return b.String(), nil
}

func renderCalendarHTML(doc ports.CalendarDocument) (string, error) {
	var b strings.Builder
	if err := calendarTemplate.Execute(&b, doc); err != nil {
		return "", fmt.Errorf("render calendar html: %w", err)
	}
	return b.String(), nil
}

// writeTempHTML writes html to a throwaway file and returns a file://
// URL the browser can navigate to. The caller removes the file.
func writeTempHTML(name, html string) (path, url string, err error) {
	f, err := os.CreateTemp("", name+"-*.html")
	if err != nil {
		return "", "", fmt.Errorf("write temp html: %w", err)
	}
	if _, err := f.WriteString(html); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", "", fmt.Errorf("write temp html: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", "", fmt.Errorf("write temp html: %w", err)
	}

	abs, err := filepath.Abs(f.Name())
	if err != nil {
		os.Remove(f.Name())
		return "", "", fmt.Errorf("write temp html: %w", err)
	}
	return f.Name(), "file://" + abs, nil
}
