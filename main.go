// skillsradar — AI career development MCP server.
//
// Guides a user from free-text career context to a ranked skill set with
// market-standard rubrics, multi-rater proficiency ratings, a mastery
// lifecycle, and grounded growth plans. Runs as HTTP MCP server or stdio
// transport.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/benjamayden/skillsradar/internal/engine"
	"github.com/benjamayden/skillsradar/internal/engine/skills"
	"github.com/benjamayden/skillsradar/internal/radarserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	initEngine()

	session := skills.NewSession()
	if err := skills.RestoreSession(session); err != nil {
		slog.Warn("session restore failed, starting fresh", slog.Any("error", err))
	}
	skills.AttachAutoSave(session)

	slog.Info("starting skillsradar",
		slog.String("port", mcpPort),
		slog.String("state", string(session.State())),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "skillsradar",
		Version: version,
	}, nil)

	radarserver.RegisterTools(server, session)

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "skillsradar",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		SearxngURL:           env.Str("SEARXNG_URL", "http://127.0.0.1:8888"),
		LLMAPIKey:            env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks:   env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:           env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:             env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature:       env.Float("LLM_TEMPERATURE", 0.4),
		LLMMaxTokens:         env.Int("LLM_MAX_TOKENS", 16384),
		LLMTimeout:           env.Duration("LLM_TIMEOUT", 120*time.Second),
		LLMRequestsPerMin:    env.Int("LLM_REQUESTS_PER_MIN", 10),
		MaxFetchURLs:         env.Int("MAX_FETCH_URLS", 6),
		MaxContentChars:      env.Int("MAX_CONTENT_CHARS", 6000),
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 10*time.Second),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		DatabaseURL:          env.Str("DATABASE_URL", ""),
		SessionDBPath:        env.Str("SESSION_DB_PATH", ""),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	c.LLMClient = llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
		llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
		llm.WithMaxTokens(c.LLMMaxTokens),
		llm.WithTemperature(c.LLMTemperature),
		llm.WithHTTPClient(&http.Client{Timeout: c.LLMTimeout}),
	)

	engine.Init(c)
	engine.InitCache(env.Str("REDIS_URL", ""), env.Duration("CACHE_TTL", time.Hour), c.CacheMaxEntries, c.CacheCleanupInterval)

	if c.SessionDBPath != "" {
		skills.SetSessionDBPath(c.SessionDBPath)
	}

	if c.DatabaseURL != "" {
		adb, err := skills.ConnectArchiveDB(context.Background(), c.DatabaseURL)
		if err != nil {
			slog.Warn("archive DB init failed", slog.Any("error", err))
		} else {
			skills.SetArchiveDB(adb)
			slog.Info("archive DB ready")
		}
	}
}
