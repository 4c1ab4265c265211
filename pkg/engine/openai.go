package engine

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/smartshare/panel/pkg/types"
)

// OpenAIEngine implements Engine against any OpenAI-compatible chat API.
// Remote models have no real download phase; the create step verifies the
// model is reachable and reports that round trip as progress. When warmup is
// required (local OpenAI-compatible servers that pull models lazily), the
// engine answers AfterDownload until its first successful create.
type OpenAIEngine struct {
	apiKey         string
	baseURL        string
	model          string
	warmupRequired bool

	client openai.Client
	warmed atomic.Bool
}

// OpenAIOption configures an OpenAIEngine.
type OpenAIOption func(*OpenAIEngine)

// WithModel sets the model used for summarization.
func WithModel(model string) OpenAIOption {
	return func(e *OpenAIEngine) {
		e.model = model
	}
}

// WithBaseURL sets a custom base URL for OpenAI-compatible APIs.
func WithBaseURL(baseURL string) OpenAIOption {
	return func(e *OpenAIEngine) {
		e.baseURL = baseURL
	}
}

// WithWarmupRequired makes the engine report AfterDownload until the first
// session has been created successfully.
func WithWarmupRequired(required bool) OpenAIOption {
	return func(e *OpenAIEngine) {
		e.warmupRequired = required
	}
}

// NewOpenAIEngine creates an engine. If apiKey is empty it falls back to the
// OPENAI_API_KEY environment variable; a missing key makes the engine report
// Unavailable rather than failing construction, because capability gaps are
// surfaced to the user at attempt time.
func NewOpenAIEngine(apiKey string, opts ...OpenAIOption) *OpenAIEngine {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	e := &OpenAIEngine{
		apiKey: apiKey,
		model:  "gpt-4o-mini",
	}
	for _, opt := range opts {
		opt(e)
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(e.apiKey)}
	if e.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(e.baseURL))
	}
	e.client = openai.NewClient(clientOpts...)

	return e
}

// Availability reports the capability tri-state.
func (e *OpenAIEngine) Availability(_ context.Context) (Availability, error) {
	if e.apiKey == "" {
		return Unavailable, nil
	}
	if e.warmupRequired && !e.warmed.Load() {
		return AfterDownload, nil
	}
	return Available, nil
}

// Create verifies the model is reachable and returns a live session. The
// verification round trip is reported through OnProgress as the download
// phase: 0 when it starts, 1 when the model responded.
func (e *OpenAIEngine) Create(ctx context.Context, opts Options) (Session, error) {
	if err := opts.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	report := opts.OnProgress
	if report == nil {
		report = func(float64) {}
	}

	report(0)
	if _, err := e.client.Models.Get(ctx, e.model); err != nil {
		return nil, fmt.Errorf("engine: model %s not reachable: %w", e.model, err)
	}
	report(1)
	e.warmed.Store(true)

	return &openAISession{
		engine:       e,
		systemPrompt: buildSystemPrompt(opts),
	}, nil
}

type openAISession struct {
	engine       *OpenAIEngine
	systemPrompt string
	destroyOnce  sync.Once
	destroyed    atomic.Bool
}

// Summarize sends one chat completion shaped by the session's settings.
func (s *openAISession) Summarize(ctx context.Context, text, callContext string) (string, error) {
	if s.destroyed.Load() {
		return "", fmt.Errorf("engine: session already destroyed")
	}

	prompt := text
	if callContext != "" {
		prompt = fmt.Sprintf("Context: %s\n\n%s", callContext, text)
	}

	resp, err := s.engine.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.engine.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(s.systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("engine: summarize failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("engine: empty response from model %s", s.engine.model)
	}
	return resp.Choices[0].Message.Content, nil
}

// Destroy is idempotent; later Summarize calls fail.
func (s *openAISession) Destroy() {
	s.destroyOnce.Do(func() {
		s.destroyed.Store(true)
	})
}

// buildSystemPrompt translates the enumerated settings into model
// instructions.
func buildSystemPrompt(opts Options) string {
	var b strings.Builder

	b.WriteString("You summarize web page text.")
	if opts.SharedContext != "" {
		b.WriteString(" ")
		b.WriteString(opts.SharedContext)
	}
	b.WriteString("\n")

	switch opts.Settings.Type {
	case types.TypeKeyPoints:
		b.WriteString("Produce the key points as a bullet list.\n")
	case types.TypeTLDR:
		b.WriteString("Produce a tl;dr style digest.\n")
	case types.TypeTeaser:
		b.WriteString("Produce a teaser that makes the reader want the full article.\n")
	case types.TypeHeadline:
		b.WriteString("Produce a single headline.\n")
	}

	switch opts.Settings.Format {
	case types.FormatMarkdown:
		b.WriteString("Format the output as Markdown.\n")
	case types.FormatPlainText:
		b.WriteString("Format the output as plain text without markup.\n")
	}

	switch opts.Settings.Length {
	case types.LengthShort:
		b.WriteString("Keep it short: at most three sentences or bullets.\n")
	case types.LengthMedium:
		b.WriteString("Keep it moderate: at most six sentences or bullets.\n")
	case types.LengthLong:
		b.WriteString("A thorough summary of up to twelve sentences or bullets is fine.\n")
	}

	if len(opts.ExpectedInputLanguages) > 0 {
		fmt.Fprintf(&b, "The input is written in: %s.\n", strings.Join(opts.ExpectedInputLanguages, ", "))
	}
	if opts.OutputLanguage != "" {
		fmt.Fprintf(&b, "Answer in %s.\n", opts.OutputLanguage)
	}

	return b.String()
}
