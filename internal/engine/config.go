package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	SearxngURL         string
	LLMAPIKey          string
	LLMAPIKeyFallbacks []string
	LLMAPIBase         string
	LLMModel           string
	LLMTemperature     float64
	LLMMaxTokens       int
	LLMTimeout         time.Duration // per-call deadline; a hung provider call must not park a session forever
	LLMRequestsPerMin  int           // provider rate limit, 0 = unlimited
	MaxFetchURLs       int
	MaxContentChars    int
	FetchTimeout       time.Duration

	CacheMaxEntries      int
	CacheCleanupInterval time.Duration

	DatabaseURL   string // optional Postgres snapshot archive
	SessionDBPath string // local SQLite session store, "" = default under $HOME

	HTTPClient *http.Client
	LLMClient  *llm.Client
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (skills, radarserver).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
	initGenerator()
}
