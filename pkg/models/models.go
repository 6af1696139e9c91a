// Package models defines the JSON payloads of the bigcalc HTTP API.
package models

// CalculateResponse is the body of a /calculate response.
type CalculateResponse struct {
	A         string `json:"a"`
	Op        string `json:"op"`
	B         string `json:"b"`
	Engine    string `json:"engine"`
	Result    string `json:"result,omitempty"`
	Remainder string `json:"remainder,omitempty"` // Set for division only.
	Digits    int    `json:"digits,omitempty"`
	Duration  string `json:"duration"`
	Error     string `json:"error,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is the HTTP status text.
	Error string `json:"error"`
	// Message describes what was wrong with the request.
	Message string `json:"message,omitempty"`
}

// HealthResponse is the body of a /health response.
type HealthResponse struct {
	Status    string      `json:"status"`
	Timestamp int64       `json:"timestamp"`
	Cache     *CacheStats `json:"cache,omitempty"` // Absent when caching is off.
}

// CacheStats reports the server's result cache counters.
type CacheStats struct {
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Evictions uint64  `json:"evictions"`
	Size      int     `json:"size"`
	HitRate   float64 `json:"hit_rate"`
}

// EnginesResponse lists the engines a server can evaluate with.
type EnginesResponse struct {
	Engines   []string `json:"engines"`
	Operators []string `json:"operators"`
}
