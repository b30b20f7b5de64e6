// Package api serves the quantizer over HTTP. The surface is one POST
// endpoint that quantizes a batch of PMF rows, backed by a fingerprint-keyed
// cache of previously quantized rows and an optional request rate limit.
package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"golang.org/x/time/rate"

	"github.com/alexlioralexli/rangecdf/pkg/cdfquant"
)

// Config tunes the server. Zero values select defaults: GOMAXPROCS workers,
// the default cache size, and no rate limit.
type Config struct {
	// Workers bounds the quantizer worker pool per request.
	Workers int
	// CacheEntries bounds the row cache.
	CacheEntries int
	// RateLimit is the sustained requests/second allowed on /v1/quantize;
	// 0 disables limiting.
	RateLimit float64
	// RateBurst is the burst allowance when RateLimit is set.
	RateBurst int
}

type Server struct {
	cache   *RowCache
	workers int
	limiter *rate.Limiter
}

func NewServer(cfg Config) *Server {
	s := &Server{
		cache:   NewRowCache(cfg.CacheEntries),
		workers: cfg.Workers,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return s
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/quantize", s.handleQuantize)
	e.GET("/healthz", s.handleHealth)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleQuantize(c *echo.Context) error {
	if s.limiter != nil && !s.limiter.Allow() {
		return writeError(c, http.StatusTooManyRequests, "rate_limit_error", "too many requests", "", "")
	}

	req, err := decodeJSON[QuantizeRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	cdf, cached, err := s.quantize(req.PMF, req.Precision)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRequest):
			return writeBadRequest(c, err.Error())
		case errors.Is(err, cdfquant.ErrInfeasiblePrecision):
			return writeError(c, http.StatusUnprocessableEntity, "infeasible_precision_error", err.Error(), "precision", "")
		default:
			return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), "pmf", "")
		}
	}

	return c.JSON(http.StatusOK, QuantizeResponse{
		ID:        "quant_" + uuid.NewString(),
		Object:    "quantization",
		Precision: req.Precision,
		CDF:       cdf,
		Cached:    cached,
	})
}

// quantize serves the batch from the row cache when every row is a hit;
// otherwise it quantizes the whole batch and feeds the cache. Partial reuse
// is deliberately not attempted: a full batch pass keeps row parallelism and
// the validation-before-dispatch contract intact.
func (s *Server) quantize(rows [][]float64, precision int) ([][]uint32, bool, error) {
	if len(rows) == 0 {
		return nil, false, newInvalidRequest("pmf: at least one row required")
	}
	if precision >= cdfquant.MinPrecision && precision <= cdfquant.MaxPrecision {
		out := make([][]uint32, len(rows))
		hit := true
		for i, row := range rows {
			// Uniform row length is part of the batch contract; a
			// mixed-length batch must still reach QuantizeBatch and
			// be rejected there even if every row is cached.
			cdf, ok := s.cache.Get(row, precision)
			if !ok || len(row) != len(rows[0]) {
				hit = false
				break
			}
			out[i] = cdf
		}
		if hit {
			return out, true, nil
		}
	}

	out, err := cdfquant.QuantizeBatch(rows, precision, s.workers)
	if err != nil {
		return nil, false, err
	}
	for i, row := range rows {
		s.cache.Put(row, precision, out[i])
	}
	return out, false, nil
}
