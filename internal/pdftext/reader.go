package pdftext

import (
	"fmt"
	"io"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// Document is an open PDF exposing the styled-text structure and the
// metadata title. Close must be called when done.
type Document struct {
	file    *os.File
	reader  *pdflib.Reader
	tmpPath string // set when opened from a stream
}

// Open opens a PDF file from disk.
func Open(path string) (*Document, error) {
	f, r, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &Document{file: f, reader: r}, nil
}

// OpenReader opens a PDF from a stream. The library requires a
// ReadSeeker plus size, so the stream is spooled to a temp file first.
func OpenReader(r io.Reader) (*Document, error) {
	tmp, err := os.CreateTemp("", "docsift-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &Document{file: f, reader: reader, tmpPath: tmpPath}, nil
}

// Close releases the underlying file and any spooled temp file.
func (d *Document) Close() error {
	err := d.file.Close()
	if d.tmpPath != "" {
		os.Remove(d.tmpPath)
	}
	return err
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return d.reader.NumPage()
}

// Title resolves the document title with a three-tier fallback:
// Info-dictionary title, then the first non-empty line of the first page,
// then a literal placeholder.
func (d *Document) Title() string {
	info := d.reader.Trailer().Key("Info")
	if !info.IsNull() {
		if t := strings.TrimSpace(info.Key("Title").Text()); t != "" {
			return t
		}
	}

	if d.reader.NumPage() >= 1 {
		page := d.reader.Page(1)
		if !page.V.IsNull() {
			if text, err := page.GetPlainText(nil); err == nil {
				for _, line := range strings.Split(text, "\n") {
					if s := strings.TrimSpace(line); s != "" {
						return s
					}
				}
			}
		}
	}

	return "Untitled Document"
}

// Pages assembles the span/line/block structure for every page.
// Pages without extractable text appear with an empty block list so page
// numbering stays aligned with the source document.
func (d *Document) Pages() []Page {
	n := d.reader.NumPage()
	pages := make([]Page, 0, n)
	for i := 1; i <= n; i++ {
		page := d.reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, Page{Number: i})
			continue
		}
		content := page.Content()
		pages = append(pages, assemblePage(i, content.Text))
	}
	return pages
}
