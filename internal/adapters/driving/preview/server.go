package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/resumechat/internal/adapters/driven/export"
	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
	"github.com/custodia-labs/resumechat/internal/logger"
)

// ErrMissingResumeService is returned when the resume service is not provided.
var ErrMissingResumeService = errors.New("preview: resume service is required")

// contentTypes maps export formats to response content types.
var contentTypes = map[domain.ExportFormat]string{
	domain.FormatMarkdown: "text/markdown; charset=utf-8",
	domain.FormatJSON:     "application/json; charset=utf-8",
	domain.FormatYAML:     "application/yaml; charset=utf-8",
}

// Server serves the resume preview.
type Server struct {
	resume driving.ResumeService
	engine *gin.Engine
}

// NewServer creates a preview server over the resume service.
func NewServer(resume driving.ResumeService) (*Server, error) {
	if resume == nil {
		return nil, ErrMissingResumeService
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(requestLogger(), recovery())

	s := &Server{resume: resume, engine: r}

	r.GET("/", s.handlePage)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/resume", s.handleResume)
	api.GET("/resume/export/:format", s.handleExport)

	return s, nil
}

// Handler returns the HTTP handler, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("preview server listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// handlePage renders the printable HTML page.
func (s *Server) handlePage(c *gin.Context) {
	ctx := c.Request.Context()
	doc, err := s.resume.Get(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "load_failed", err.Error())
		return
	}

	outline := export.BuildOutline(doc)
	if outline.Name == "" {
		outline.Name = s.resume.DisplayName(ctx)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, outline); err != nil {
		respondError(c, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// handleResume returns the stored document as JSON.
func (s *Server) handleResume(c *gin.Context) {
	doc, err := s.resume.Get(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "load_failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, doc)
}

// handleExport returns the document in the format named by the path.
func (s *Server) handleExport(c *gin.Context) {
	format, err := domain.ParseExportFormat(c.Param("format"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "unsupported_format", err.Error())
		return
	}

	var buf bytes.Buffer
	if err := s.resume.Export(c.Request.Context(), &buf, format); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrUnsupportedFormat) {
			status = http.StatusBadRequest
		}
		respondError(c, status, "export_failed", err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", "resume"+format.Extension()))
	c.Data(http.StatusOK, contentTypes[format], buf.Bytes())
}
