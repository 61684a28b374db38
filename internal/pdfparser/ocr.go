package pdfparser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// PageOCR recognizes the text of one PDF page.
type PageOCR interface {
	Available() bool
	PageText(ctx context.Context, pdfPath string, page int) (string, error)
}

// TesseractOCR renders a page with pdftoppm (poppler-utils) and reads it with
// tesseract.
type TesseractOCR struct {
	DPI int
}

// NewTesseractOCR creates a TesseractOCR. A non-positive dpi means 300.
func NewTesseractOCR(dpi int) *TesseractOCR {
	if dpi <= 0 {
		dpi = 300
	}
	return &TesseractOCR{DPI: dpi}
}

// IsOCRAvailable reports whether pdftoppm and tesseract are on the PATH.
func IsOCRAvailable() bool {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return false
	}
	_, err := exec.LookPath("tesseract")
	return err == nil
}

// Available implements PageOCR.
func (t *TesseractOCR) Available() bool {
	return IsOCRAvailable()
}

// PageText implements PageOCR. Pages are numbered from 1.
func (t *TesseractOCR) PageText(ctx context.Context, pdfPath string, page int) (string, error) {
	tmpDir, err := os.MkdirTemp("", "leak-ocr-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	pageArg := strconv.Itoa(page)
	imgPrefix := filepath.Join(tmpDir, "page")
	// #nosec G204 -- fixed binary, arguments are a path and integers
	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-r", strconv.Itoa(t.DPI), "-png", "-f", pageArg, "-l", pageArg, "-singlefile",
		pdfPath, imgPrefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("pdftoppm failed: %w (output: %s)", err, strings.TrimSpace(string(out)))
	}

	img := imgPrefix + ".png"
	outBase := filepath.Join(tmpDir, "page-ocr")
	// PSM 4 assumes a single column of text of variable sizes.
	// #nosec G204 -- fixed binary, arguments are temp paths
	cmd = exec.CommandContext(ctx, "tesseract", img, outBase, "-l", "eng", "--psm", "4")
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("tesseract failed: %w (output: %s)", err, strings.TrimSpace(string(out)))
	}

	data, err := os.ReadFile(outBase + ".txt") // #nosec G304 -- temp file we created
	if err != nil {
		return "", fmt.Errorf("failed to read OCR output: %w", err)
	}
	return string(data), nil
}
