// Package container provides dependency injection for the leak detector.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"io"

	"fjacquet/leak-detector/internal/api"
	"fjacquet/leak-detector/internal/batch"
	"fjacquet/leak-detector/internal/categorizer"
	"fjacquet/leak-detector/internal/config"
	"fjacquet/leak-detector/internal/leak"
	"fjacquet/leak-detector/internal/logging"
	"fjacquet/leak-detector/internal/pdfparser"
	"fjacquet/leak-detector/internal/report"
	"fjacquet/leak-detector/internal/service"
	"fjacquet/leak-detector/internal/store"
	"fjacquet/leak-detector/internal/suggest"
)

// Container holds all application dependencies. It is immutable after
// creation; dependencies are reached through getters.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       *store.CategoryStore
	categorizer *categorizer.Categorizer
	detector    *leak.Detector
	suggester   suggest.Generator
	analyzer    *service.Analyzer
	reports     *report.Generator
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger wires the dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.NewDiscard()
	}

	categoryStore := store.NewCategoryStore(cfg.Categories.File, logger)
	categories, found, err := categoryStore.LoadCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if !found {
		categories.Categories = categorizer.DefaultCategories()
	}
	cat := categorizer.NewCategorizer(categories.Categories, categories.DefaultCategory, logger)

	detector := leak.NewDetector(cat, logger)
	suggester := suggest.NewGenerator(cfg, logger)

	opts := pdfparser.Options{
		OCREnabled:   cfg.Ingest.OCREnabled,
		MinPageChars: cfg.Ingest.MinPageChars,
		OCRDPI:       cfg.Ingest.OCRDPI,
	}
	extractorFor := func(path string) (pdfparser.Extractor, error) {
		return pdfparser.ExtractorFor(path, opts, logger)
	}
	analyzer := service.NewAnalyzer(extractorFor, detector, suggester, logger)

	logger.Info("Container initialized successfully",
		logging.F("categories", len(cat.Categories())),
		logging.F(logging.FieldStrategy, suggester.Name()),
		logging.F("ocr_enabled", opts.OCREnabled))

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       categoryStore,
		categorizer: cat,
		detector:    detector,
		suggester:   suggester,
		analyzer:    analyzer,
		reports:     report.NewGenerator(logger),
	}, nil
}

// GetLogger returns the application logger.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the application configuration.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the category store.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetCategorizer returns the categorizer.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetDetector returns the leak detector.
func (c *Container) GetDetector() *leak.Detector {
	return c.detector
}

// GetSuggester returns the selected suggestion strategy.
func (c *Container) GetSuggester() suggest.Generator {
	return c.suggester
}

// GetAnalyzer returns the statement analyzer.
func (c *Container) GetAnalyzer() *service.Analyzer {
	return c.analyzer
}

// GetReportGenerator returns the report renderer.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.reports
}

// NewServer builds the HTTP server from the configuration.
func (c *Container) NewServer() *api.Server {
	return api.NewServer(c.analyzer, api.Options{
		MaxUploadMB: c.config.Server.MaxUploadMB,
		StaticDir:   c.config.Server.StaticDir,
	}, c.logger)
}

// NewBatchProcessor builds a directory processor around the analyzer.
func (c *Container) NewBatchProcessor() *batch.Processor {
	return batch.NewProcessor(c.analyzer, c.reports, c.logger)
}

// Close releases resources held by dependencies.
func (c *Container) Close() error {
	if closer, ok := c.suggester.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close suggestion client: %w", err)
		}
	}
	return nil
}
