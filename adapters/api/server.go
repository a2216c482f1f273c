// Package api exposes the catalog report and the stand-alone statistical
// operations over HTTP.
package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"
	"time"

	"koistat/app"
	"koistat/internal"
	"koistat/internal/errors"

	"github.com/gin-gonic/gin"
)

// Server serves the JSON and HTML endpoints.
type Server struct {
	router  *gin.Engine
	service *app.AnalysisService
	alphas  []float64
	logger  *internal.Logger

	reportMu sync.Mutex
	report   *app.FullReport
}

// NewServer builds the router. alphas are used by /ztest when the request
// names none.
func NewServer(service *app.AnalysisService, alphas []float64, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:  gin.New(),
		service: service,
		alphas:  alphas,
		logger:  logger.Named("api"),
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	v1.GET("/report", s.handleReport)
	v1.GET("/report.html", s.handleReportHTML)
	v1.POST("/ztest", s.handleZTest)
	v1.POST("/pearson", s.handlePearson)
	v1.POST("/binomial", s.handleBinomial)
	v1.POST("/moments", s.handleMoments)

	s.router.NoRoute(func(c *gin.Context) {
		respond(c, http.StatusNotFound, errors.NotFound("route "+c.Request.URL.Path))
	})
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// currentReport computes the full report once; refresh forces a new run.
func (s *Server) currentReport(ctx context.Context, refresh bool) (*app.FullReport, error) {
	s.reportMu.Lock()
	defer s.reportMu.Unlock()

	if s.report != nil && !refresh {
		return s.report, nil
	}
	rep, err := s.service.Run(ctx)
	if err != nil {
		return nil, err
	}
	s.report = rep
	return rep, nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// fail maps domain errors to 422. Anything else is logged and answered with
// an opaque 500.
func (s *Server) fail(c *gin.Context, err error) {
	if errors.CodeFor(err) == errors.CodeInternalError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		respond(c, http.StatusInternalServerError, errors.InternalError("analysis failed"))
		return
	}
	respond(c, http.StatusUnprocessableEntity, err)
}

func (s *Server) badRequest(c *gin.Context, err error) {
	respond(c, http.StatusBadRequest, errors.InvalidInput(err.Error()))
}

func respond(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error(), "code": errors.CodeFor(err)})
}
