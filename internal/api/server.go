package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"options-wizard/internal/engine"
	"options-wizard/internal/interfaces"
	"options-wizard/internal/logger"
	"options-wizard/internal/pricing"
	"options-wizard/internal/store"
	"options-wizard/internal/trace"
	"options-wizard/internal/types"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

type errorBody struct {
	Error string `json:"error"`
}

// IndexInfo describes one configured index
type IndexInfo struct {
	Spot       float64 `json:"spot"`
	StrikeStep float64 `json:"strike_step"`
	Default    bool    `json:"default"`
}

// GreeksRequest is the body of POST /api/v1/greeks. A top-level
// market_price overrides market.market_price.
type GreeksRequest struct {
	OptionType  types.OptionType   `json:"option_type"`
	Market      types.MarketParams `json:"market"`
	MarketPrice float64            `json:"market_price,omitempty"`
}

// Server exposes the wizard over HTTP
type Server struct {
	cfg     *store.Config
	engine  interfaces.Engine
	advisor interfaces.Advisor
	pricer  interfaces.Pricer
	router  *gin.Engine
}

func NewServer(cfg *store.Config, eng interfaces.Engine, advisor interfaces.Advisor, pricer interfaces.Pricer) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:     cfg,
		engine:  eng,
		advisor: advisor,
		pricer:  pricer,
		router:  gin.New(),
	}
	s.router.Use(gin.Recovery(), otelgin.Middleware(trace.ServiceName), requestLogger())
	s.RegisterRoutes(s.router)
	return s
}

func (s *Server) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/indices", s.indices)
		v1.POST("/strategies", s.strategies)
		v1.POST("/greeks", s.greeks)
		v1.POST("/wizard", s.wizard)
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.cfg.Server.Addr,
		Handler:     s.router,
		ReadTimeout: time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info(ctx, "HTTP server listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info(ctx, "HTTP server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		c.Next()
		logger.Info(c.Request.Context(), "HTTP request served",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": trace.ServiceName,
		"version": trace.ServiceVersion,
		"tracing": trace.Enabled(),
	})
}

func (s *Server) indices(c *gin.Context) {
	out := make(map[string]IndexInfo, len(s.cfg.Indices))
	for _, name := range s.cfg.IndexNames() {
		idx := s.cfg.Indices[name]
		out[name] = IndexInfo{Spot: idx.Spot, StrikeStep: idx.StrikeStep, Default: name == s.cfg.DefaultIndex}
	}
	c.JSON(http.StatusOK, gin.H{"indices": out})
}

func (s *Server) strategies(c *gin.Context) {
	var in types.SentimentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	if err := normalizeSentiment(&in); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	advice, err := s.advisor.Advise(c.Request.Context(), in)
	if err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, advice)
}

func (s *Server) greeks(c *gin.Context) {
	var req GreeksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	optType := types.Call
	if req.OptionType != "" {
		var err error
		if optType, err = types.ParseOptionType(string(req.OptionType)); err != nil {
			abort(c, http.StatusBadRequest, err)
			return
		}
	}

	if req.MarketPrice > 0 {
		req.Market.MarketPrice = req.MarketPrice
	}

	q, err := s.pricer.Quote(c.Request.Context(), optType, req.Market)
	if err != nil {
		abort(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (s *Server) wizard(c *gin.Context) {
	var req types.WizardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	if err := normalizeSentiment(&req.Sentiment); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	report, err := s.engine.Evaluate(c.Request.Context(), req)
	if err != nil {
		abort(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// normalizeSentiment canonicalises free-form readings such as "bullish" or "no_view"
func normalizeSentiment(in *types.SentimentInput) error {
	for _, f := range []*types.Sentiment{&in.Vega, &in.Theta, &in.OI} {
		s, err := types.ParseSentiment(string(*f))
		if err != nil {
			return err
		}
		*f = s
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidOptionType),
		errors.Is(err, types.ErrInvalidTradeAction),
		errors.Is(err, types.ErrInvalidSentiment),
		errors.Is(err, engine.ErrUnknownIndex),
		errors.Is(err, engine.ErrMarketParamsRequired),
		errors.Is(err, pricing.ErrGreeksUnavailable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abort(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.ErrorWithErr(c.Request.Context(), "Request failed", err, "path", c.FullPath())
	}
	c.AbortWithStatusJSON(status, errorBody{Error: err.Error()})
}
