package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	LLMCalls          atomic.Int64
	LLMErrors         atomic.Int64
	SearchRequests    atomic.Int64
	FetchRequests     atomic.Int64
	FetchErrors       atomic.Int64
	ValidationRejects atomic.Int64
	SessionsSaved     atomic.Int64
	SessionsImported  atomic.Int64
}

// IncrValidationRejects counts per-item validation drops (skills sub-package).
func IncrValidationRejects(n int) { metrics.ValidationRejects.Add(int64(n)) }

// IncrSessionsSaved counts session store writes.
func IncrSessionsSaved() { metrics.SessionsSaved.Add(1) }

// IncrSessionsImported counts successful session imports.
func IncrSessionsImported() { metrics.SessionsImported.Add(1) }

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"llm_calls":          metrics.LLMCalls.Load(),
		"llm_errors":         metrics.LLMErrors.Load(),
		"search_requests":    metrics.SearchRequests.Load(),
		"fetch_requests":     metrics.FetchRequests.Load(),
		"fetch_errors":       metrics.FetchErrors.Load(),
		"validation_rejects": metrics.ValidationRejects.Load(),
		"sessions_saved":     metrics.SessionsSaved.Load(),
		"sessions_imported":  metrics.SessionsImported.Load(),
		"cache_hits":         hits,
		"cache_misses":       misses,
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"llm_calls", "llm_errors",
		"search_requests", "fetch_requests", "fetch_errors",
		"validation_rejects",
		"sessions_saved", "sessions_imported",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}
