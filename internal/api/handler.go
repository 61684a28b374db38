package api

import (
	"os"
	"path/filepath"
	"strings"

	"fjacquet/leak-detector/internal/logging"
	"fjacquet/leak-detector/internal/parsererror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Error messages returned by POST /analyze.
const (
	MsgNoFile        = "No file uploaded"
	MsgNoFilename    = "No file selected"
	MsgPDFOnly       = "Only PDF files are allowed"
	MsgNoText        = "Could not extract text from PDF. The PDF might be scanned/image-based or empty. Please upload a text-based PDF bank statement."
	MsgInternalError = "Failed to analyze the statement"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAnalyze(c *fiber.Ctx) error {
	reqID := requestID(c)
	logger := s.logger.WithFields(logging.F(logging.FieldRequestID, reqID))

	fh, err := c.FormFile("file")
	if err != nil {
		logger.Warn("No file in request")
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: MsgNoFile})
	}
	if fh.Filename == "" {
		logger.Warn("Empty filename")
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: MsgNoFilename})
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
		logger.Warn("Invalid file type", logging.F(logging.FieldFile, fh.Filename))
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: MsgPDFOnly})
	}

	tempDir := s.opts.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	// The request id may come from the client, so it never names the file.
	tempPath := filepath.Join(tempDir, "upload-"+uuid.NewString()+".pdf")
	if err := c.SaveFile(fh, tempPath); err != nil {
		logger.WithError(err).Error("Failed to save upload")
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: MsgInternalError})
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
			logger.WithError(err).Warn("Failed to remove temporary file", logging.F(logging.FieldFile, tempPath))
		}
	}()

	logger.Info("Analyzing upload",
		logging.F(logging.FieldInputFile, fh.Filename),
		logging.F("size", fh.Size))

	report, err := s.analyzer.AnalyzeFile(c.UserContext(), tempPath)
	if err != nil {
		if parsererror.IsEmptyDocument(err) || parsererror.IsExtraction(err) {
			logger.WithError(err).Warn("No text extracted from upload")
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: MsgNoText})
		}
		logger.WithError(err).Error("Analysis failed")
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: MsgInternalError})
	}

	return c.JSON(report)
}
