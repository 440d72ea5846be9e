package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"

	"route-plan-service/internal/ports"
)

// Export formats accepted by the export operations.
const (
	FormatPDF = "pdf"
	FormatCSV = "csv"
	FormatPNG = "png"
)

// exportTimeout bounds a single sink render, headless-browser renders
// included.
const exportTimeout = 2 * time.Minute

// Exporter turns report projections into sink payloads and dispatches
// them. Dispatch is fire-and-forget: the artifact filename comes back
// immediately, rendering runs in the background, and a failed render is
// a single warning line rather than a request error.
type Exporter struct {
	documents ports.TableDocumentSink
	sheets    ports.SpreadsheetSink
	images    ports.ImageSink
	log       *logrus.Logger
}

func NewExporter(documents ports.TableDocumentSink, sheets ports.SpreadsheetSink, images ports.ImageSink, log *logrus.Logger) *Exporter {
	return &Exporter{documents: documents, sheets: sheets, images: images, log: log}
}

// ExportWeekly renders the weekly grid as a document or spreadsheet and
// returns the artifact filename.
func (e *Exporter) ExportWeekly(grid WeeklyGrid, format string) (string, error) {
	name := fmt.Sprintf("mapa_de_rotas_%s_%s", slug(grid.Region), grid.WeekKey)
	doc := weeklyTable(grid)

	switch format {
	case FormatPDF:
		return e.dispatch(name+".pdf", func(ctx context.Context) (string, error) {
			return e.documents.WriteTable(ctx, name, doc)
		}), nil
	case FormatCSV:
		return e.dispatch(name+".csv", func(ctx context.Context) (string, error) {
			return e.sheets.WriteSheet(ctx, name, doc)
		}), nil
	default:
		return "", fmt.Errorf("export weekly: unsupported format %q", format)
	}
}

// ExportMonthly renders the flat monthly list for referenceDate's month.
func (e *Exporter) ExportMonthly(region string, entries []PeriodEntry, referenceDate time.Time, format string) (string, error) {
	name := fmt.Sprintf("relatorio_mensal_%s_%s", slug(region), referenceDate.Format("2006-01"))
	subtitle := fmt.Sprintf("%s de %d", MonthName(referenceDate), referenceDate.Year())
	return e.exportList(name, region, subtitle, entries, format)
}

// ExportAnnual renders the flat annual list for referenceDate's year.
func (e *Exporter) ExportAnnual(region string, entries []PeriodEntry, referenceDate time.Time, format string) (string, error) {
	name := fmt.Sprintf("relatorio_anual_%s_%d", slug(region), referenceDate.Year())
	subtitle := fmt.Sprintf("Ano de %d", referenceDate.Year())
	return e.exportList(name, region, subtitle, entries, format)
}

// ExportMonthCalendar rasterizes the month grid as a bitmap or a
// single-page document.
func (e *Exporter) ExportMonthCalendar(doc ports.CalendarDocument, region string, referenceDate time.Time, format string) (string, error) {
	name := fmt.Sprintf("calendario_%s_%s", slug(region), referenceDate.Format("2006-01"))

	switch format {
	case FormatPNG:
		return e.dispatch(name+".png", func(ctx context.Context) (string, error) {
			return e.images.WriteImage(ctx, name, doc)
		}), nil
	case FormatPDF:
		return e.dispatch(name+".pdf", func(ctx context.Context) (string, error) {
			return e.images.WriteImagePDF(ctx, name, doc)
		}), nil
	default:
		return "", fmt.Errorf("export calendar: unsupported format %q", format)
	}
}

func (e *Exporter) exportList(name, region, subtitle string, entries []PeriodEntry, format string) (string, error) {
	doc := listTable(region, subtitle, entries)

	switch format {
	case FormatPDF:
		return e.dispatch(name+".pdf", func(ctx context.Context) (string, error) {
			return e.documents.WriteTable(ctx, name, doc)
		}), nil
	case FormatCSV:
		return e.dispatch(name+".csv", func(ctx context.Context) (string, error) {
			return e.sheets.WriteSheet(ctx, name, doc)
		}), nil
	default:
		return "", fmt.Errorf("export list: unsupported format %q", format)
	}
}

// dispatch kicks off the background render and returns the filename
// the sink will produce for it.
func (e *Exporter) dispatch(file string, render func(context.Context) (string, error)) string {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()
		path, err := render(ctx)
		if err != nil {
			e.log.Warnf("export %s failed: %v", file, err)
			return
		}
		e.log.Infof("export %s written to %s", file, path)
	}()
	return file
}

// weeklyTable flattens the weekly grid into the tabular payload: group
// rows become spanning labels, route rows fill all ten columns.
func weeklyTable(grid WeeklyGrid) ports.TableDocument {
	rows := make([]ports.TableRow, 0, len(grid.Rows))
	for _, row := range grid.Rows {
		if row.Kind == "group" {
			rows = append(rows, ports.TableRow{Cells: []string{row.Name}, Span: true})
			continue
		}
		cells := make([]string, 0, len(weeklyGridColumns))
		cells = append(cells, row.Name)
		cells = append(cells, row.Days...)
		cells = append(cells, row.Tools, row.Vehicle, row.Meta, row.Notes)
		rows = append(rows, ports.TableRow{Cells: cells})
	}

	return ports.TableDocument{
		Title:     "MAPA DE ROTAS - " + strings.ToUpper(grid.Region),
		Subtitle:  grid.Period,
		Columns:   weeklyGridColumns,
		Rows:      rows,
		Landscape: true,
	}
}

func listTable(region, subtitle string, entries []PeriodEntry) ports.TableDocument {
	rows := make([]ports.TableRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, ports.TableRow{Cells: []string{
			entry.Day, entry.RouteName, entry.Technicians, entry.Vehicle, entry.Tools, entry.Notes,
		}})
	}

	return ports.TableDocument{
		Title:    "RELATÓRIO DE ROTAS - " + strings.ToUpper(region),
		Subtitle: subtitle,
		Columns:  listColumns,
		Rows:     rows,
	}
}

// slug lowercases a region name into a filename-safe token.
func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
