// Package api exposes the analyzer over HTTP with fiber.
package api

import (
	"strings"
	"time"

	"fjacquet/leak-detector/internal/logging"
	"fjacquet/leak-detector/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// Options configures the HTTP server.
type Options struct {
	MaxUploadMB int
	StaticDir   string
	TempDir     string // where uploads are stored while analysed; empty means os.TempDir
}

// Server serves the analysis endpoints.
type Server struct {
	app      *fiber.App
	analyzer *service.Analyzer
	opts     Options
	logger   logging.Logger
}

// NewServer creates a Server and registers its routes.
func NewServer(analyzer *service.Analyzer, opts Options, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	if opts.MaxUploadMB <= 0 {
		opts.MaxUploadMB = 32
	}

	app := fiber.New(fiber.Config{
		AppName:               "leak-detector",
		BodyLimit:             opts.MaxUploadMB << 20,
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
	})

	s := &Server{
		app:      app,
		analyzer: analyzer,
		opts:     opts,
		logger:   logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Use(recover.New())
	s.app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	s.app.Use(cors.New())

	s.app.Get("/health", s.handleHealth)
	s.app.Post("/analyze", s.handleAnalyze)

	if s.opts.StaticDir != "" {
		s.app.Static("/", s.opts.StaticDir)
	}
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Info("Starting HTTP server", logging.F("address", addr))
	return s.app.Listen(addr)
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown() error {
	s.logger.Info("Stopping HTTP server")
	return s.app.Shutdown()
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return strings.TrimSpace(c.GetRespHeader(fiber.HeaderXRequestID))
}
