package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/aretw0/jotter"
	"github.com/aretw0/jotter/internal/config"
	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/render"
	"github.com/aretw0/jotter/pkg/summarize"
)

// resolveDataPath picks the configured path, then the project, then the home directory.
func resolveDataPath(c *config.Config) string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	home, _ := os.UserHomeDir()
	root := ""
	if wd, err := os.Getwd(); err == nil {
		root, _ = jotter.FindProjectRoot(wd)
	}
	return config.DataPath(home, root)
}

func storeOptions(c *config.Config) []jotter.Option {
	return []jotter.Option{
		jotter.WithAdapter(c.Store.Adapter),
		jotter.WithSlot(c.Store.Slot),
		jotter.WithVersioning(c.Store.Versioning),
		jotter.WithReadOnly(c.Store.ReadOnly),
		jotter.WithLogger(slog.Default()),
	}
}

// effectiveDataPath is where openService actually keeps the notes.
func effectiveDataPath(c *config.Config) string {
	return jotter.ResolveDataPath(resolveDataPath(c), storeOptions(c)...)
}

func openService() *core.Service {
	svc, err := jotter.New(resolveDataPath(cfg), storeOptions(cfg)...)
	if err != nil {
		fatal("initializing jotter", err)
	}
	return svc
}

// newGateway prefers a remote jotter server, then a local key. Without
// either it returns an unconfigured gateway.
func newGateway(c *config.Config) *summarize.Gateway {
	opts := []summarize.Option{
		summarize.WithLocale(c.Display.Locale),
		summarize.WithTimeout(c.Summarizer.Timeout),
		summarize.WithLogger(slog.Default()),
	}
	if c.Summarizer.Remote != "" {
		return summarize.NewRemoteGateway(c.Summarizer.Remote, nil, opts...)
	}
	if c.Summarizer.APIKey == "" {
		return summarize.NewGateway(nil, opts...)
	}

	clientOpts := []summarize.OpenAIOption{
		summarize.WithModel(c.Summarizer.Model),
		summarize.WithMaxTokens(c.Summarizer.MaxTokens),
	}
	if c.Summarizer.BaseURL != "" {
		clientOpts = append(clientOpts, summarize.WithBaseURL(c.Summarizer.BaseURL))
	}
	return summarize.NewGateway(summarize.NewOpenAIClient(c.Summarizer.APIKey, clientOpts...), opts...)
}

func renderOptions(c *config.Config) []render.Option {
	opts := []render.Option{render.WithLocale(c.Display.Locale)}
	if c.Display.TimeZone != "" {
		loc, err := time.LoadLocation(c.Display.TimeZone)
		if err != nil {
			slog.Warn("ignoring unknown time zone", "time_zone", c.Display.TimeZone, "error", err)
		} else {
			opts = append(opts, render.WithLocation(loc))
		}
	}
	return opts
}

// withReason attaches a conventional commit message for versioned saves.
func withReason(ctx context.Context, ctype, subject string) context.Context {
	return context.WithValue(ctx, core.ChangeReasonKey, jotter.FormatChangeReason(ctype, "notes", subject, ""))
}

func parseID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fatal("parsing note id", err)
	}
	return id
}
