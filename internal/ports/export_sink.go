package ports

import "context"

// One cell row of a tabular export payload. Span rows render as a
// single label stretched across every column (group headers).
type TableRow struct {
	Cells []string
	Span  bool
}

// A flat tabular payload handed to document and spreadsheet sinks.
// The core builds this; rendering is entirely the sink's concern.
type TableDocument struct {
	Title     string
	Subtitle  string
	Columns   []string
	Rows      []TableRow
	Landscape bool
}

// A renderable month calendar grid handed to the image sink.
type CalendarDocument struct {
	Title    string
	Subtitle string
	Weekdays []string
	Weeks    [][]CalendarCell
}

// One day cell of a calendar grid.
type CalendarCell struct {
	Day     int
	InMonth bool
	Entries []CalendarEntry
}

// One route's assignment shown inside a calendar day cell.
type CalendarEntry struct {
	RouteName   string
	Technicians []string
}

// Port: renders a tabular payload into a paginated, styled document
// (PDF). Returns the path of the written artifact.
type TableDocumentSink interface {
	WriteTable(ctx context.Context, name string, doc TableDocument) (string, error)
}

// Port: renders a tabular payload into a flat spreadsheet file.
type SpreadsheetSink interface {
	WriteSheet(ctx context.Context, name string, doc TableDocument) (string, error)
}

// Port: rasterizes a calendar grid into a bitmap, optionally
// re-embedding it into a single-page document.
type ImageSink interface {
	WriteImage(ctx context.Context, name string, doc CalendarDocument) (string, error)
	WriteImagePDF(ctx context.Context, name string, doc CalendarDocument) (string, error)
}
