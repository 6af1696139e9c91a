package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/pkg/models"
)

// mockService is a service.Service with a canned Calculate response.
type mockService struct {
	res calc.Result
	err error
}

func (m *mockService) Calculate(context.Context, string, string, string, string) (calc.Result, error) {
	return m.res, m.err
}

func (m *mockService) ParseExpression(string, string, string) (calc.Expression, error) {
	return calc.Expression{}, nil
}

func (m *mockService) Evaluate(context.Context, string, calc.Expression) (calc.Result, error) {
	return m.res, m.err
}

func createTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	cfg := config.AppConfig{Port: "0", Engine: config.DefaultEngine, MaxDigits: 50}
	opts = append([]Option{WithLogger(logging.Nop())}, opts...)
	s := NewServer(calc.NewDefaultFactory(), cfg, opts...)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, http.NoBody)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleCalculate(t *testing.T) {
	s := createTestServer(t)
	tests := []struct {
		name          string
		query         string
		wantStatus    int
		wantResult    string
		wantRemainder string
		wantMessage   string
	}{
		{"add", "?a=99999999999999999999&op=add&b=1", http.StatusOK, "100000000000000000000", "", ""},
		{"escaped plus", "?a=2&op=%2B&b=3", http.StatusOK, "5", "", ""},
		{"raw plus", "?a=2&op=+&b=3", http.StatusOK, "5", "", ""},
		{"sub", "?a=5&op=-&b=12", http.StatusOK, "-7", "", ""},
		{"mul", "?a=-12&op=*&b=12", http.StatusOK, "-144", "", ""},
		{"div", "?a=-17&op=/&b=5", http.StatusOK, "-3", "-2", ""},
		{"mod", "?a=17&op=%25&b=5", http.StatusOK, "2", "", ""},
		{"gcd", "?a=12&op=gcd&b=18&engine=reference", http.StatusOK, "6", "", ""},
		{"missing a", "?op=add&b=1", http.StatusBadRequest, "", "", "'a'"},
		{"missing op", "?a=1&b=1", http.StatusBadRequest, "", "", "'op'"},
		{"bad operand", "?a=1x&op=add&b=1", http.StatusBadRequest, "", "", "invalid a"},
		{"bad operator", "?a=1&op=pow&b=1", http.StatusBadRequest, "", "", "invalid op"},
		{"division by zero", "?a=1&op=/&b=0", http.StatusBadRequest, "", "", "division by zero"},
		{"too many digits", "?a=" + strings.Repeat("9", 51) + "&op=add&b=1", http.StatusBadRequest, "", "", "limit is 50"},
		{"unknown engine", "?a=1&op=add&b=1&engine=abacus", http.StatusBadRequest, "", "", "unknown engine: abacus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, "/calculate"+tt.query)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			if tt.wantStatus != http.StatusOK {
				var errResp models.ErrorResponse
				if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
					t.Fatal(err)
				}
				if !strings.Contains(errResp.Message, tt.wantMessage) {
					t.Errorf("message = %q, want it to contain %q", errResp.Message, tt.wantMessage)
				}
				return
			}
			var resp models.CalculateResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Result != tt.wantResult || resp.Remainder != tt.wantRemainder {
				t.Errorf("result = %q rem %q, want %q rem %q", resp.Result, resp.Remainder, tt.wantResult, tt.wantRemainder)
			}
			if resp.Error != "" || resp.Duration == "" || resp.Engine == "" {
				t.Errorf("unexpected response %+v", resp)
			}
		})
	}
}

func TestHandleCalculate_EvaluationFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"engine failure", errors.New("engine exploded"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := createTestServer(t, WithService(&mockService{err: tt.err}))
			rec := do(t, s, http.MethodGet, "/calculate?a=1&op=add&b=1")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp models.CalculateResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Error != tt.err.Error() || resp.Result != "" {
				t.Errorf("response = %+v", resp)
			}
		})
	}
}

// blockingService waits for the request context to end.
type blockingService struct{ mockService }

func (blockingService) Calculate(ctx context.Context, _, _, _, _ string) (calc.Result, error) {
	<-ctx.Done()
	return calc.Result{}, ctx.Err()
}

func TestWithTimeouts(t *testing.T) {
	timeouts := DefaultServerTimeouts()
	timeouts.RequestTimeout = 10 * time.Millisecond
	timeouts.ReadTimeout = 3 * time.Second
	s := createTestServer(t, WithTimeouts(timeouts), WithService(&blockingService{}))

	if s.httpServer.ReadTimeout != 3*time.Second {
		t.Errorf("ReadTimeout = %v, want 3s", s.httpServer.ReadTimeout)
	}
	rec := do(t, s, http.MethodGet, "/calculate?a=1&op=add&b=1")
	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusGatewayTimeout)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := createTestServer(t)
	for _, path := range []string{"/calculate", "/health", "/engines", "/metrics"} {
		if rec := do(t, s, http.MethodPost, path); rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("POST %s = %d, want 405", path, rec.Code)
		}
	}
}

func TestHandleHealth(t *testing.T) {
	s := createTestServer(t)
	rec := do(t, s, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp models.HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "healthy" || resp.Timestamp == 0 {
		t.Errorf("response = %+v", resp)
	}
	if resp.Cache != nil {
		t.Errorf("cache stats reported with caching off: %+v", resp.Cache)
	}
}

func TestHandleHealth_CacheStats(t *testing.T) {
	cfg := config.AppConfig{Port: "0", Engine: config.DefaultEngine, CacheSize: 8}
	s := NewServer(calc.NewDefaultFactory(), cfg, WithLogger(logging.Nop()))
	t.Cleanup(s.rateLimiter.Stop)

	query := "/calculate?a=" + strings.Repeat("9", 70) + "&op=add&b=1"
	for i := 0; i < 3; i++ {
		if rec := do(t, s, http.MethodGet, query); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}

	rec := do(t, s, http.MethodGet, "/health")
	var resp models.HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Cache == nil {
		t.Fatal("cache stats missing")
	}
	if resp.Cache.Hits != 2 || resp.Cache.Misses != 1 || resp.Cache.Size != 1 {
		t.Errorf("cache = %+v", *resp.Cache)
	}

	metrics := do(t, s, http.MethodGet, "/metrics").Body.String()
	for _, want := range []string{"bigcalc_cache_hits_total 2", "bigcalc_cache_misses_total 1", "bigcalc_cache_entries 1"} {
		if !strings.Contains(metrics, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestRequestID(t *testing.T) {
	s := createTestServer(t)

	rec := do(t, s, http.MethodGet, "/health")
	generated := rec.Header().Get(RequestIDHeader)
	if len(generated) != 36 {
		t.Errorf("generated request ID = %q, want a UUID", generated)
	}
	if other := do(t, s, http.MethodGet, "/health").Header().Get(RequestIDHeader); other == generated {
		t.Error("request IDs should differ between requests")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	req.Header.Set(RequestIDHeader, "trace-42")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "trace-42" {
		t.Errorf("request ID = %q, want the incoming one", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); len(got) != 36 {
		t.Errorf("oversized request ID was echoed: %q", got)
	}
}

func TestHandleEngines(t *testing.T) {
	s := createTestServer(t)
	rec := do(t, s, http.MethodGet, "/engines")
	var resp models.EnginesResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if strings.Join(resp.Engines, ",") != "reference,schoolbook" {
		t.Errorf("engines = %v", resp.Engines)
	}
	if strings.Join(resp.Operators, " ") != "+ - * / % gcd" {
		t.Errorf("operators = %v", resp.Operators)
	}
}

func TestHandleMetrics(t *testing.T) {
	s := createTestServer(t)
	do(t, s, http.MethodGet, "/calculate?a=1&op=add&b=1")
	rec := do(t, s, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{"bigcalc_http_requests_total", "bigcalc_http_active_requests", "bigcalc_http_request_duration_seconds", "bigcalc_operations_total"} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics missing %s", name)
		}
	}
}

func TestSecurityMiddleware(t *testing.T) {
	s := createTestServer(t)
	rec := do(t, s, http.MethodGet, "/health")
	for header, want := range map[string]string{
		"X-Content-Type-Options":      "nosniff",
		"X-Frame-Options":             "DENY",
		"Access-Control-Allow-Origin": "*",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}

	if rec := do(t, s, http.MethodOptions, "/calculate"); rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}

	restricted := createTestServer(t, WithSecurityConfig(SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"https://example.com"},
		AllowedMethods: []string{"GET"},
	}))
	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	restricted.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got CORS header %q", got)
	}
}

func TestRateLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerMinute: 1, Burst: 2})
	s := createTestServer(t, WithRateLimiter(rl))

	for i := 0; i < 2; i++ {
		if rec := do(t, s, http.MethodGet, "/health"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}
	rec := do(t, s, http.MethodGet, "/health")
	if rec.Code != http.StatusTooManyRequests || rec.Header().Get("Retry-After") == "" {
		t.Errorf("third request: status = %d, want 429", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	req.Header.Set("X-Forwarded-For", "10.0.0.9")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other client: status = %d, want 200", rec.Code)
	}
	rl.Stop()
}

func TestGetClientIP(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote ipv4", nil, "192.0.2.1:1234", "192.0.2.1"},
		{"remote ipv6", nil, "[::1]:8080", "::1"},
		{"remote without port", nil, "192.0.2.7", "192.0.2.7"},
		{"forwarded list", map[string]string{"X-Forwarded-For": " 203.0.113.5 , 10.0.0.1"}, "192.0.2.1:1", "203.0.113.5"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.2"}, "192.0.2.1:1", "198.51.100.2"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServe_GracefulShutdown(t *testing.T) {
	s := createTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	var resp *http.Response
	for i := 0; i < 50; i++ {
		if resp, err = http.Get(url); err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server did not answer: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRun_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	_, port, _ := net.SplitHostPort(ln.Addr().String())
	s := NewServer(calc.NewDefaultFactory(), config.AppConfig{Port: port}, WithLogger(logging.Nop()))
	s.httpServer.Addr = "127.0.0.1:" + port
	if err := s.Run(context.Background()); err == nil {
		t.Error("Run() on a busy port should fail")
	}
}
