package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
	"golang.org/x/time/rate"
)

// currentDate returns today's date in ISO 8601 format (UTC).
func currentDate() string {
	return time.Now().UTC().Format("2006-01-02")
}

// GenerateOptions configures a single provider call.
type GenerateOptions struct {
	GroundWithSearch bool    // augment the prompt with web search results
	GroundingQuery   string  // search query used when grounding; required if GroundWithSearch
	Temperature      float64 // 0 = use configured default
	MaxTokens        int     // 0 = use configured default
	ResponseIsJSON   bool    // caller will run the text through ExtractJSONPayload
}

// WebSource identifies one grounding source.
type WebSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// GroundingChunk is attribution metadata for a grounded call. Purely
// informational, never required for correctness.
type GroundingChunk struct {
	Web *WebSource `json:"web,omitempty"`
}

// GenerateResult is the provider's response: text plus attribution metadata
// when grounding was used.
type GenerateResult struct {
	Text         string
	Attributions []GroundingChunk
}

// Generator is the single capability the pipelines depend on. The engine
// ships an OpenAI-compatible implementation; tests and alternative providers
// swap in their own.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string, opts GenerateOptions) (*GenerateResult, error)
}

var generator Generator

// SetGenerator replaces the active generation provider.
func SetGenerator(g Generator) { generator = g }

func initGenerator() {
	var lim *rate.Limiter
	if cfg.LLMRequestsPerMin > 0 {
		lim = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.LLMRequestsPerMin)), 1)
	}
	generator = &llmGenerator{limiter: lim}
}

// Generate calls the active provider. Package-level convenience mirroring the
// rest of the engine API.
func Generate(ctx context.Context, prompt string, opts GenerateOptions) (*GenerateResult, error) {
	if generator == nil {
		return nil, fmt.Errorf("engine: generator not initialized")
	}
	return generator.GenerateContent(ctx, prompt, opts)
}

// llmGenerator implements Generator on top of go-kit's OpenAI-compatible
// client, with SearXNG-backed grounding and a shared rate limiter.
type llmGenerator struct {
	limiter *rate.Limiter
}

func (g *llmGenerator) GenerateContent(ctx context.Context, prompt string, opts GenerateOptions) (*GenerateResult, error) {
	var attributions []GroundingChunk

	if opts.GroundWithSearch && opts.GroundingQuery != "" {
		sources, chunks := GroundingContext(ctx, opts.GroundingQuery)
		if sources != "" {
			prompt = prompt + "\n\nCurrent date: " + currentDate() +
				"\n\nWeb search results for additional, up-to-date context:\n" + sources
			attributions = chunks
		}
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, &ProviderError{Stage: "rate_limit", Err: err}
		}
	}

	if cfg.LLMTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.LLMTimeout)
		defer cancel()
	}

	var callOpts []llm.ChatOption
	if opts.Temperature > 0 {
		callOpts = append(callOpts, llm.WithChatTemperature(opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llm.WithChatMaxTokens(opts.MaxTokens))
	}

	metrics.LLMCalls.Add(1)
	raw, err := cfg.LLMClient.Complete(ctx, "", prompt, callOpts...)
	if err != nil {
		metrics.LLMErrors.Add(1)
		return nil, &ProviderError{Stage: "generate", Err: err}
	}

	text := raw
	if opts.ResponseIsJSON {
		text = stripFences(raw)
	}
	return &GenerateResult{Text: text, Attributions: attributions}, nil
}

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
