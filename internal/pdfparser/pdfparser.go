package pdfparser

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"fjacquet/leak-detector/internal/logging"
	"fjacquet/leak-detector/internal/parsererror"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor reads the text layer of each page and falls back to OCR for
// pages that have too little text.
type PDFExtractor struct {
	opts   Options
	ocr    PageOCR
	logger logging.Logger
}

// NewPDFExtractor creates a PDFExtractor using Tesseract for OCR.
func NewPDFExtractor(opts Options, logger logging.Logger) *PDFExtractor {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &PDFExtractor{
		opts:   opts,
		ocr:    NewTesseractOCR(opts.OCRDPI),
		logger: logger,
	}
}

// WithOCR replaces the OCR engine.
func (e *PDFExtractor) WithOCR(ocr PageOCR) *PDFExtractor {
	e.ocr = ocr
	return e
}

// ExtractLines implements Extractor.
func (e *PDFExtractor) ExtractLines(ctx context.Context, path string) ([]string, error) {
	pages, err := readPages(path)
	if err != nil {
		return nil, &parsererror.ExtractionError{FilePath: path, Stage: "open", Err: err}
	}
	e.logger.Info("PDF opened",
		logging.F(logging.FieldFile, path),
		logging.F("pages", len(pages)))

	return e.linesFromPages(ctx, path, pages)
}

// linesFromPages applies the OCR fallback page by page and flattens the
// result. An OCR failure empties that page only.
func (e *PDFExtractor) linesFromPages(ctx context.Context, path string, pages []string) ([]string, error) {
	var lines []string
	for i, text := range pages {
		pageNum := i + 1
		if err := ctx.Err(); err != nil {
			return nil, &parsererror.ExtractionError{FilePath: path, Stage: "page", Err: err}
		}

		if trimmedLen(text) < e.opts.MinPageChars {
			text = e.ocrPage(ctx, path, pageNum)
		} else {
			e.logger.Debug("Page text extracted",
				logging.F(logging.FieldPage, pageNum),
				logging.F("chars", len(text)))
		}

		if text == "" {
			continue
		}
		lines = append(lines, splitLines(text)...)
	}

	e.logger.Info("Lines extracted",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(lines)))
	return lines, nil
}

func (e *PDFExtractor) ocrPage(ctx context.Context, path string, pageNum int) string {
	if !e.opts.OCREnabled || e.ocr == nil {
		e.logger.Debug("Page has no text layer and OCR is disabled", logging.F(logging.FieldPage, pageNum))
		return ""
	}
	if !e.ocr.Available() {
		e.logger.Warn("Page has no text layer and OCR tools are not installed", logging.F(logging.FieldPage, pageNum))
		return ""
	}

	e.logger.Info("No text found, trying OCR", logging.F(logging.FieldPage, pageNum))
	text, err := e.ocr.PageText(ctx, path, pageNum)
	if err != nil {
		e.logger.WithError(err).Warn("OCR failed", logging.F(logging.FieldPage, pageNum))
		return ""
	}
	e.logger.Info("OCR extracted text",
		logging.F(logging.FieldPage, pageNum),
		logging.F("chars", len(text)))
	return text
}

// readPages returns the plain text of every page. The PDF library panics on
// some malformed files; that is reported as an error.
func readPages(path string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	numPages := r.NumPage()
	pages = make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, pageText(page))
	}
	return pages, nil
}

// pageText rebuilds the rows of a page from positioned glyphs, falling back
// to the library's plain text when that yields nothing. An unreadable text
// layer is treated like a scanned page.
func pageText(page pdf.Page) string {
	if text := textByPosition(page); text != "" {
		return text
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

// textByPosition groups glyphs by baseline, top to bottom, and orders each
// row left to right. Rows placed with Td inside one text object stay separate.
func textByPosition(page pdf.Page) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	glyphs := page.Content().Text
	if len(glyphs) == 0 {
		return ""
	}

	rows := make(map[int][]pdf.Text)
	for _, g := range glyphs {
		y := int(math.Round(g.Y))
		rows[y] = append(rows[y], g)
	}
	ys := make([]int, 0, len(rows))
	for y := range rows {
		ys = append(ys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ys)))

	lines := make([]string, 0, len(ys))
	for _, y := range ys {
		if line := joinRow(rows[y]); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// joinRow concatenates the glyphs of one row. Glyphs without width metrics
// share an X, so the sort is stable to keep drawing order. A horizontal gap
// wider than a quarter of the font size becomes a space.
func joinRow(glyphs []pdf.Text) string {
	sort.SliceStable(glyphs, func(i, j int) bool {
		return glyphs[i].X < glyphs[j].X
	})

	var b strings.Builder
	for i, g := range glyphs {
		if i > 0 {
			prev := glyphs[i-1]
			gap := g.X - (prev.X + prev.W)
			if gap > prev.FontSize/4 && prev.S != " " && g.S != " " {
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
	}
	return strings.TrimSpace(b.String())
}

// trimmedLen counts the characters of s without leading and trailing
// whitespace. Interior spaces count.
func trimmedLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}
