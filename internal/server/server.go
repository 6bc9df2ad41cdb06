package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/facturx-studio/internal/extract"
	"github.com/rezonia/facturx-studio/internal/fields"
	"github.com/rezonia/facturx-studio/internal/llm"
	"github.com/rezonia/facturx-studio/internal/model"
	"github.com/rezonia/facturx-studio/internal/processor"
	"github.com/rezonia/facturx-studio/internal/validator"
)

// Config holds server configuration
type Config struct {
	Address       string
	Operator      model.Party
	AnalysisKey   string
	AnalysisURL   string
	AnalysisModel string
	ValidatorTool string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	Debug         bool
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	pipeline *processor.Pipeline
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	var pipelineOpts []processor.Option

	if config.AnalysisKey != "" {
		client := llm.NewClient(llm.Config{
			APIKey:  config.AnalysisKey,
			BaseURL: config.AnalysisURL,
			Model:   config.AnalysisModel,
		})
		pipelineOpts = append(pipelineOpts, processor.WithDeepExtractor(extract.NewDeepExtractor(client)))
	}

	var validatorOpts []validator.Option
	if config.ValidatorTool != "" {
		validatorOpts = append(validatorOpts, validator.WithTool(config.ValidatorTool))
	}
	pipelineOpts = append(pipelineOpts, processor.WithValidator(validator.New(validatorOpts...)))

	s := &Server{
		config:   config,
		router:   router,
		pipeline: processor.NewPipeline(pipelineOpts...),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/generate/minimum", s.handleGenerateMinimum)
		v1.POST("/generate/basic", s.handleGenerateBasic)
		v1.POST("/process/pdf", s.handleProcessPDF)
		v1.POST("/validate", s.handleValidate)
		v1.POST("/scan", s.handleScan)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func contextWithTimeout(c *gin.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), d)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGenerateMinimum(c *gin.Context) {
	s.handleGenerate(c, model.ProfileMinimum)
}

func (s *Server) handleGenerateBasic(c *gin.Context) {
	s.handleGenerate(c, model.ProfileBasic)
}

func (s *Server) handleGenerate(c *gin.Context, profile model.Profile) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	issueDate, err := fields.ParseDate(req.InvoiceDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	inv := fields.Invoice{
		Header: model.Header{
			InvoiceNumber: req.InvoiceNumber,
			IssueDate:     issueDate,
			Currency:      "EUR",
		},
		Buyer:    model.Party{Name: req.Buyer.Name, LegalID: req.Buyer.SIRET, VATID: req.Buyer.VAT},
		NetTotal: req.NetTotal,
		VATRate:  req.VATRate,
	}

	seller := model.Party{Name: req.Seller.Name, LegalID: req.Seller.SIRET, VATID: req.Seller.VAT}
	if seller.LegalID == "" {
		seller.LegalID = s.config.Operator.LegalID
	}
	if seller.VATID == "" {
		seller.VATID = s.config.Operator.VATID
	}

	lines := make([]model.Line, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, model.Line{Name: l.Name, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}

	ctx, cancel := contextWithTimeout(c, 30*time.Second)
	defer cancel()

	result := s.pipeline.GenerateXML(ctx, profile, inv, seller, lines)
	if result.Error != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:    result.Error.Error(),
			Warnings: result.Warnings,
		})
		return
	}

	for _, w := range result.Warnings {
		c.Writer.Header().Add("X-Facturx-Warning", w)
	}
	c.Data(http.StatusOK, "application/xml", result.XML)
}

func (s *Server) handleProcessPDF(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return
	}

	profile := model.ProfileMinimum
	if c.Query("profile") == string(model.ProfileBasic) {
		profile = model.ProfileBasic
	}
	deep := c.Query("deep") == "true"

	ctx, cancel := contextWithTimeout(c, 2*time.Minute)
	defer cancel()

	result := s.pipeline.ProcessPDF(ctx, processor.Request{
		PDF:      body,
		Profile:  profile,
		Operator: s.config.Operator,
		DeepScan: deep,
	})
	if result.Error != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:    result.Error.Error(),
			Warnings: result.Warnings,
		})
		return
	}

	for _, w := range result.Warnings {
		c.Writer.Header().Add("X-Facturx-Warning", w)
	}
	c.Data(http.StatusOK, "application/pdf", result.PDF)
}

func (s *Server) handleValidate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return
	}

	profile := model.ProfileMinimum
	if c.Query("profile") == string(model.ProfileBasic) {
		profile = model.ProfileBasic
	}

	ctx, cancel := contextWithTimeout(c, 30*time.Second)
	defer cancel()

	if err := s.pipeline.Validate(ctx, profile, body); err != nil {
		c.JSON(http.StatusOK, ValidationResponse{
			Valid:      false,
			Profile:    string(profile),
			Diagnostic: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ValidationResponse{Valid: true, Profile: string(profile)})
}

func (s *Server) handleScan(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return
	}

	deep := c.Query("deep") == "true"

	ctx, cancel := contextWithTimeout(c, 2*time.Minute)
	defer cancel()

	extracted, method, err := s.pipeline.Scan(ctx, body, deep)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ScanResponse{
		Fields: extracted,
		Method: string(method),
	})
}
