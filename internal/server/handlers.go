package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/pkg/models"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	resp := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Unix(),
	}
	if s.cache != nil {
		stats := s.cache.Stats()
		resp.Cache = &models.CacheStats{
			Hits:      stats.Hits,
			Misses:    stats.Misses,
			Evictions: stats.Evictions,
			Size:      stats.Size,
			HitRate:   stats.HitRate,
		}
	}
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// handleEngines lists the registered engines and the accepted operators.
func (s *Server) handleEngines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	ops := calc.Operators()
	symbols := make([]string, len(ops))
	for i, op := range ops {
		symbols[i] = op.Symbol()
	}
	s.writeJSONResponse(w, http.StatusOK, models.EnginesResponse{
		Engines:   s.factory.List(),
		Operators: symbols,
	})
}

// calculateParams are the query parameters of /calculate.
type calculateParams struct {
	a, op, b, engine string
}

// parseCalculateParams extracts the /calculate query parameters. a, op and b
// are required; engine defaults to the server's configured engine.
func (s *Server) parseCalculateParams(r *http.Request) (calculateParams, error) {
	q := r.URL.Query()
	p := calculateParams{a: q.Get("a"), op: q.Get("op"), b: q.Get("b"), engine: q.Get("engine")}
	for _, name := range []string{"a", "op", "b"} {
		if !q.Has(name) {
			return p, apperrors.NewValidationError(name, "missing parameter", nil)
		}
	}
	// An unescaped '+' in a query string decodes to a space.
	if p.op == " " {
		p.op = "+"
	}
	if p.engine == "" {
		p.engine = s.defaultEngine()
	}
	return p, nil
}

// handleCalculate evaluates a op b. Invalid operands, operators, engines and
// zero divisors are reported with 400; timeouts with 504; other evaluation
// failures with 500. Every evaluation response carries a CalculateResponse.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	p, err := s.parseCalculateParams(r)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	res, err := s.service.Calculate(ctx, p.engine, p.a, p.op, p.b)
	duration := time.Since(start)

	var unknown *calc.UnknownEngineError
	switch {
	case apperrors.IsInputError(err), errors.As(err, &unknown):
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, context.DeadlineExceeded):
		s.writeJSONResponse(w, http.StatusGatewayTimeout, buildCalculateResponse(p, res, duration, err))
		return
	case err != nil:
		s.logger.Error("evaluation failed", err)
		s.writeJSONResponse(w, http.StatusInternalServerError, buildCalculateResponse(p, res, duration, err))
		return
	}
	s.writeJSONResponse(w, http.StatusOK, buildCalculateResponse(p, res, duration, nil))
}

func buildCalculateResponse(p calculateParams, res calc.Result, duration time.Duration, err error) models.CalculateResponse {
	resp := models.CalculateResponse{
		A:        p.a,
		Op:       p.op,
		B:        p.b,
		Engine:   p.engine,
		Duration: duration.String(),
	}
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Result = res.Value.String()
	resp.Digits = res.Value.Len()
	if res.Remainder != nil {
		resp.Remainder = res.Remainder.String()
	}
	return resp
}

// writeJSONResponse writes data as JSON with the given status code.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", err)
	}
}

// writeErrorResponse writes a models.ErrorResponse.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
