// Package ui exposes the test engine over HTTP. The engine itself stays
// pure; this layer owns request parsing, default-filling, error-to-status
// mapping and request IDs.
package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hypotest/domain/core"
	"hypotest/domain/hypothesis"
	"hypotest/internal"
	"hypotest/internal/config"
	"hypotest/internal/engine"
	"hypotest/internal/report"
)

// Server represents the web server for the hypothesis-testing API
type Server struct {
	router *gin.Engine
	engine *engine.Engine
	batch  *engine.BatchRunner
	cfg    *config.Config
	log    *internal.Logger
}

// NewServer creates a server wired to a fresh engine.
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.Server.GinMode)

	e := engine.New()
	s := &Server{
		router: gin.New(),
		engine: e,
		batch:  engine.NewBatchRunner(e, cfg.Engine.MaxConcurrent),
		cfg:    cfg,
		log:    internal.NewDefaultLogger(),
	}

	s.router.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

// Router returns the underlying gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the server on the configured port.
func (s *Server) Run() error {
	s.log.Info("listening on :%s", s.cfg.Server.Port)
	return s.router.Run(":" + s.cfg.Server.Port)
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	api.POST("/tests/one-sample", s.handleOneSample)
	api.POST("/tests/two-sample", s.handleTwoSample)
	api.POST("/tests/batch", s.handleBatch)
	api.POST("/reports", s.handleReport)
}

// OneSampleRequest is the JSON body for a one-sample test.
type OneSampleRequest struct {
	Values         []float64 `json:"values" binding:"required"`
	Kind           string    `json:"kind" binding:"required"`
	Alpha          *float64  `json:"alpha,omitempty"`
	Tail           string    `json:"tail,omitempty"`
	NullMean       *float64  `json:"null_mean,omitempty"`
	NullVariance   *float64  `json:"null_variance,omitempty"`
	NullProportion *float64  `json:"null_proportion,omitempty"`
}

// TwoSampleRequest is the JSON body for a Welch two-sample test.
type TwoSampleRequest struct {
	GroupA []float64 `json:"group_a" binding:"required"`
	GroupB []float64 `json:"group_b" binding:"required"`
	Alpha  *float64  `json:"alpha,omitempty"`
	Tail   string    `json:"tail,omitempty"`
}

// TestResponse wraps a result with the request ID and timestamp assigned by
// this layer.
type TestResponse struct {
	RequestID   string                      `json:"request_id"`
	CreatedAt   core.Timestamp              `json:"created_at"`
	Result      hypothesis.HypothesisResult `json:"result"`
	Fingerprint string                      `json:"fingerprint"`
}

func (s *Server) buildConfig(req OneSampleRequest) hypothesis.TestConfig {
	cfg := hypothesis.DefaultConfig(hypothesis.TestKind(req.Kind))
	cfg.Alpha = s.cfg.Engine.DefaultAlpha
	if req.Alpha != nil {
		cfg.Alpha = *req.Alpha
	}
	if req.Tail != "" {
		cfg.Tail = hypothesis.Tail(req.Tail)
	}
	if req.NullMean != nil {
		cfg.NullMean = *req.NullMean
	}
	if req.NullVariance != nil {
		cfg.NullVariance = *req.NullVariance
	}
	if req.NullProportion != nil {
		cfg.NullProportion = *req.NullProportion
	}
	return cfg
}

func (s *Server) handleOneSample(c *gin.Context) {
	var req OneSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.engine.RunOneSampleTest(req.Values, s.buildConfig(req))
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.respondResult(c, result)
}

func (s *Server) handleTwoSample(c *gin.Context) {
	var req TwoSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alpha := s.cfg.Engine.DefaultAlpha
	if req.Alpha != nil {
		alpha = *req.Alpha
	}
	tail := hypothesis.TailTwo
	if req.Tail != "" {
		tail = hypothesis.Tail(req.Tail)
	}

	result, err := s.engine.RunWelchTwoSampleTest(req.GroupA, req.GroupB, alpha, tail)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.respondResult(c, result)
}

// BatchRequestBody carries multiple independent test requests.
type BatchRequestBody struct {
	Requests []engine.BatchRequest `json:"requests" binding:"required"`
}

// BatchItemResponse is one entry of a batch response.
type BatchItemResponse struct {
	Name   string                       `json:"name"`
	Result *hypothesis.HypothesisResult `json:"result,omitempty"`
	Error  string                       `json:"error,omitempty"`
}

func (s *Server) handleBatch(c *gin.Context) {
	var body BatchRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(body.Requests) > s.cfg.Engine.MaxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "batch too large", "max": s.cfg.Engine.MaxBatchSize,
		})
		return
	}

	items := s.batch.Run(c.Request.Context(), body.Requests)
	out := make([]BatchItemResponse, len(items))
	for i, item := range items {
		out[i] = BatchItemResponse{Name: item.Name}
		if item.Err != nil {
			out[i].Error = item.Err.Error()
		} else {
			r := item.Result
			out[i].Result = &r
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"request_id": core.NewRequestID().String(),
		"created_at": core.Now(),
		"items":      out,
	})
}

// ReportRequest asks for a rendered report over previously computed results.
type ReportRequest struct {
	Title   string                        `json:"title"`
	Results []hypothesis.HypothesisResult `json:"results" binding:"required"`
}

func (s *Server) handleReport(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" {
		req.Title = "Hypothesis Test Report"
	}

	md := report.MarkdownAll(req.Title, req.Results)
	c.JSON(http.StatusOK, gin.H{
		"request_id": core.NewRequestID().String(),
		"created_at": core.Now(),
		"markdown":   md,
		"html":       report.HTML(md),
	})
}

func (s *Server) respondResult(c *gin.Context, result hypothesis.HypothesisResult) {
	c.JSON(http.StatusOK, TestResponse{
		RequestID:   core.NewRequestID().String(),
		CreatedAt:   core.Now(),
		Result:      result,
		Fingerprint: result.Fingerprint().String(),
	})
}

// respondError maps the domain error taxonomy onto HTTP statuses.
func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsInvalidParameter(err), core.IsLengthMismatch(err), core.IsInsufficientData(err):
		status = http.StatusBadRequest
	case core.IsNumericDegeneracy(err):
		status = http.StatusUnprocessableEntity
	}
	s.log.Warn("test request failed: %v", err)
	c.JSON(status, gin.H{"error": err.Error()})
}
