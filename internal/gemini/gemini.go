package gemini

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"studyquiz/internal/logger"

	"github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/api/option"
)

var (
	ErrNoAPIKey          = errors.New("gemini API key not configured")
	ErrClientUnavailable = errors.New("gemini client not initialized")
	ErrEmptyResponse     = errors.New("gemini returned empty text")
	ErrUnparsable        = errors.New("failed to parse JSON from gemini output")
)

var tracer = otel.Tracer("studyquiz/internal/gemini")

// Result is the outcome of a single generation call. Exactly one of Payload
// and Err is set.
type Result struct {
	Payload map[string]interface{}
	Err     error
}

// OK reports whether the call produced a JSON object.
func (r Result) OK() bool {
	return r.Err == nil && r.Payload != nil
}

func failed(err error) Result {
	return Result{Err: err}
}

// generateFunc performs one GenerateContent call against model.
type generateFunc func(ctx context.Context, model, prompt string) (*genai.GenerateContentResponse, error)

// Client wraps the Gemini client. A Client without an API key is valid; every
// call on it fails with ErrNoAPIKey.
type Client struct {
	client   *genai.Client
	generate generateFunc
	apiKey   string
	log      *logger.Logger
}

// NewClient creates the underlying genai client when apiKey is set. A client
// creation failure is logged and every later Generate call fails.
func NewClient(ctx context.Context, apiKey string, log *logger.Logger) *Client {
	return newClient(ctx, apiKey, log)
}

func newClient(ctx context.Context, apiKey string, log *logger.Logger, opts ...option.ClientOption) *Client {
	c := &Client{apiKey: apiKey, log: log}
	if apiKey == "" {
		log.Warn("gemini API key not found in environment; quiz generation will use demo content")
		return c
	}
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		log.Error("failed to create gemini client", "error", err)
		return c
	}
	c.client = client
	c.generate = func(ctx context.Context, model, prompt string) (*genai.GenerateContentResponse, error) {
		return client.GenerativeModel(model).GenerateContent(ctx, genai.Text(prompt))
	}
	return c
}

// Close closes the Gemini client
func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Generate sends prompt to model once and returns the JSON object recovered
// from the completion. It never panics and never returns a nil Payload with a
// nil Err.
func (c *Client) Generate(ctx context.Context, prompt, model string) (res Result) {
	ctx, span := tracer.Start(ctx, "gemini.Generate")
	span.SetAttributes(attribute.String("gemini.model", model), attribute.Int("gemini.prompt_len", len(prompt)))
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("gemini call panicked", "panic", r, "stack", string(debug.Stack()))
			res = failed(fmt.Errorf("gemini call panicked: %v", r))
		}
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, res.Err.Error())
		}
		span.End()
	}()

	log := c.log.With("model", model)
	log.Debug("gemini call started", "key_configured", c.apiKey != "", "prompt", prompt)

	if c.apiKey == "" {
		log.Error("gemini API key not found in environment")
		return failed(ErrNoAPIKey)
	}
	if c.generate == nil {
		log.Error("gemini client not initialized")
		return failed(ErrClientUnavailable)
	}

	resp, err := c.generate(ctx, model, prompt)
	if err != nil {
		log.Error("gemini API call failed", "error", err, "stack", string(debug.Stack()))
		return failed(fmt.Errorf("failed to generate content: %w", err))
	}

	text := responseText(resp)
	if text == "" {
		log.Error("gemini returned empty text")
		return failed(ErrEmptyResponse)
	}
	log.Debug("gemini text extracted", "text", text)

	obj, ok := ExtractJSON(text)
	if !ok {
		log.Error("failed to parse JSON from gemini output", "text_len", len(text))
		return failed(ErrUnparsable)
	}
	if qs, ok := obj["questions"].([]interface{}); ok {
		log.Info("gemini JSON parsed", "questions", len(qs))
	} else {
		log.Info("gemini JSON parsed", "questions", 0)
	}
	return Result{Payload: obj}
}

// responseText returns the text parts of the first candidate that has any,
// concatenated and trimmed.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var b strings.Builder
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			return text
		}
	}
	return ""
}
