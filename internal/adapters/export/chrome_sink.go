package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"route-plan-service/internal/ports"
)

// ChromeSink renders documents through a headless browser. It
// implements both the paginated-document and the calendar-image ports;
// artifacts land in OutDir.
type ChromeSink struct {
	OutDir string
}

func NewChromeSink(outDir string) *ChromeSink {
	return &ChromeSink{OutDir: outDir}
}

// WriteTable prints the tabular payload to a paginated PDF.
func (s *ChromeSink) WriteTable(ctx context.Context, name string, doc ports.TableDocument) (string, error) {
	html, err := renderTableHTML(doc)
	if err != nil {
		return "", fmt.Errorf("write table %q: %w", name, err)
	}

	var pdf []byte
	err = s.run(ctx, name, html, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdf, _, err = page.PrintToPDF().
			WithLandscape(doc.Landscape).
			WithPrintBackground(true).
			Do(ctx)
		return err
	}))
	if err != nil {
		return "", fmt.Errorf("write table %q: %w", name, err)
	}

	return s.writeArtifact(name+".pdf", pdf)
}

// WriteImage rasterizes the calendar grid to a PNG.
func (s *ChromeSink) WriteImage(ctx context.Context, name string, doc ports.CalendarDocument) (string, error) {
	png, err := s.screenshot(ctx, name, doc)
	if err != nil {
		return "", fmt.Errorf("write image %q: %w", name, err)
	}
	return s.writeArtifact(name+".png", png)
}

// WriteImagePDF renders the calendar grid as a single landscape page.
func (s *ChromeSink) WriteImagePDF(ctx context.Context, name string, doc ports.CalendarDocument) (string, error) {
	html, err := renderCalendarHTML(doc)
	if err != nil {
		return "", fmt.Errorf("write image pdf %q: %w", name, err)
	}

	var pdf []byte
	err = s.run(ctx, name, html, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdf, _, err = page.PrintToPDF().
			WithLandscape(true).
			WithPrintBackground(true).
			Do(ctx)
		return err
	}))
	if err != nil {
		return "", fmt.Errorf("write image pdf %q: %w", name, err)
	}

	return s.writeArtifact(name+".pdf", pdf)
}

func (s *ChromeSink) screenshot(ctx context.Context, name string, doc ports.CalendarDocument) ([]byte, error) {
	html, err := renderCalendarHTML(doc)
	if err != nil {
		return nil, err
	}

	var png []byte
	if err := s.run(ctx, name, html, chromedp.FullScreenshot(&png, 95)); err != nil {
		return nil, err
	}
	return png, nil
}

// run loads html in a fresh headless tab and executes action against it.
func (s *ChromeSink) run(ctx context.Context, name, html string, action chromedp.Action) error {
	tmpPath, url, err := writeTempHTML(name, html)
	if err != nil {
		return err
	}
	defer os.Remove(tmpPath)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	tabCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	return chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		action,
	)
}

func (s *ChromeSink) writeArtifact(filename string, body []byte) (string, error) {
	if s.OutDir == "" {
		return "", errors.New("chrome sink: output dir not configured")
	}
	if err := os.MkdirAll(s.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("write artifact %q: %w", filename, err)
	}

	path := filepath.Join(s.OutDir, filename)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write artifact %q: %w", filename, err)
	}
	return path, nil
}
