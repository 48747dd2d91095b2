// Package extracttext reads raw rulebook files and produces a single
// decoded text string per file. PDFs go through the embedded text layer;
// Markdown, plain text and HTML are read verbatim (HTML is tag-stripped).
package extracttext

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrExtractionFailure = errors.New("text extraction failed")
)

// Document pairs the decoded text with the standardized source id
// derived from the file name.
type Document struct {
	Path   string
	Source string
	Text   string
}

// FromFile decodes path into a Document. Unknown extensions return
// ErrUnsupportedFormat; read or parse failures wrap ErrExtractionFailure.
func FromFile(path string) (*Document, error) {
	var text string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = fromPDF(path)
	case ".md", ".txt":
		text, err = fromPlain(path)
	case ".html", ".htm":
		text, err = fromHTML(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	return &Document{
		Path:   path,
		Source: SourceID(path),
		Text:   text,
	}, nil
}

// SourceID standardizes a file path into a source attribution string:
// base name without extension, whitespace collapsed.
func SourceID(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.Join(strings.Fields(base), " ")
}

func fromPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", ErrExtractionFailure, path, err)
	}
	return stripBOM(string(data)), nil
}

func fromHTML(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %v", ErrExtractionFailure, path, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", fmt.Errorf("%w: parsing %s: %v", ErrExtractionFailure, path, err)
	}
	doc.Find("script, style").Remove()

	var b strings.Builder
	doc.Find("body").Each(func(_ int, sel *goquery.Selection) {
		b.WriteString(sel.Text())
	})
	text := b.String()
	if strings.TrimSpace(text) == "" {
		// Fragments without a body element still carry text.
		text = doc.Text()
	}
	return stripBOM(text), nil
}

// fromPDF extracts the text layer page by page. The underlying parser
// logs warnings for malformed objects; those are suppressed, and a page
// that cannot be decoded contributes nothing rather than failing the file.
func fromPDF(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: parsing %s: %v", ErrExtractionFailure, path, r)
		}
	}()

	restore := silenceStdlog()
	defer restore()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %v", ErrExtractionFailure, path, err)
	}
	defer f.Close()

	fonts := make(map[string]*pdf.Font)
	var parts []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}
		pageText, pageErr := page.GetPlainText(fonts)
		if pageErr != nil {
			continue
		}
		if trimmed := strings.TrimSpace(pageText); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return stripBOM(strings.Join(parts, "\n\n")), nil
}

// silenceStdlog redirects the standard logger while the PDF parser runs;
// it emits per-object warnings through log.Println.
func silenceStdlog() func() {
	prev := log.Writer()
	log.SetOutput(io.Discard)
	return func() { log.SetOutput(prev) }
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
