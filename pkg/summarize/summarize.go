// Package summarize produces short AI summaries of note text.
//
// A Gateway wraps a completion Client. Only a missing credential is reported
// as an error; every other failure degrades to FallbackMessage so callers can
// always show the user something.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/jotter/pkg/core"
)

// DefaultTimeout bounds a single summarize call.
const DefaultTimeout = 30 * time.Second

var (
	// ErrConfiguration means no credential is available. No request is made.
	ErrConfiguration = errors.New("summarizer not configured")
	// ErrTransport covers network failures, non-2xx replies and malformed bodies.
	ErrTransport = errors.New("summarizer transport failed")
)

// Client performs one completion request.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Result is what the user sees. Failed is set when Text is the fallback message.
type Result struct {
	Text   string `json:"summary"`
	Failed bool   `json:"failed,omitempty"`
}

// Gateway turns note text into a prompt and the completion into a Result.
type Gateway struct {
	client  Client
	locale  string
	timeout time.Duration
	logger  *slog.Logger
	raw     bool // send text without wrapping it in a prompt
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLocale selects the prompt and fallback language ("id" or "en").
func WithLocale(locale string) Option {
	return func(g *Gateway) { g.locale = locale }
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.timeout = d }
}

// WithLogger sets the logger used for swallowed transport errors.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) { g.logger = logger }
}

// NewGateway creates a Gateway. A nil client behaves as unconfigured.
func NewGateway(client Client, opts ...Option) *Gateway {
	g := &Gateway{
		client:  client,
		locale:  LocaleID,
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Configured reports whether a client is present.
func (g *Gateway) Configured() bool {
	return g.client != nil
}

// Summarize asks the client for a summary of text.
func (g *Gateway) Summarize(ctx context.Context, text string) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, fmt.Errorf("%w: text is required", core.ErrValidation)
	}
	if g.client == nil {
		return Result{}, ErrConfiguration
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	prompt := text
	if !g.raw {
		prompt = Prompt(g.locale, text)
	}
	summary, err := g.client.Complete(ctx, prompt)
	if errors.Is(err, ErrConfiguration) {
		return Result{}, err
	}
	if err == nil && strings.TrimSpace(summary) == "" {
		err = fmt.Errorf("%w: empty completion", ErrTransport)
	}
	if err != nil {
		g.logger.Error("summarize failed", "error", err)
		return Result{Text: FallbackMessage(g.locale), Failed: true}, nil
	}
	return Result{Text: strings.TrimSpace(summary)}, nil
}
