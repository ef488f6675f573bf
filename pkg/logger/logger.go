package logger

import (
	"io"
	"log/slog"
	"os"
)

// Option configures a logger built by New.
type Option func(*options)

type options struct {
	writer     io.Writer
	sentry     *SentryConfig
	extractors []ContextExtractor
	level      slog.Level
	text       bool
}

func defaultOptions() *options {
	return &options{
		writer: os.Stdout,
		level:  slog.LevelInfo,
	}
}

// WithLevel sets the minimum level written to the output.
// Default: slog.LevelInfo.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithWriter sets the output destination.
// Default: os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithText switches the output from JSON to slog's text format.
func WithText() Option {
	return func(o *options) {
		o.text = true
	}
}

// WithExtractors adds context extractors applied on every log call, after the
// built-in locale extractor.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

// WithSentry forwards warnings and errors to Sentry as well. An empty DSN
// leaves the logger writing to its output only.
func WithSentry(cfg SentryConfig) Option {
	return func(o *options) {
		o.sentry = &cfg
	}
}

// New creates a structured logger. Records carry the locale identifier stored
// with WithLocale, plus whatever the configured extractors add.
func New(opts ...Option) *slog.Logger {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	hopts := &slog.HandlerOptions{Level: o.level}
	var out slog.Handler
	if o.text {
		out = slog.NewTextHandler(o.writer, hopts)
	} else {
		out = slog.NewJSONHandler(o.writer, hopts)
	}

	handler := out
	if o.sentry != nil && o.sentry.DSN != "" {
		sh, err := newSentryHandler(*o.sentry)
		if err != nil {
			slog.New(out).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		} else {
			handler = newMultiHandler(out, sh)
		}
	}

	extractors := append([]ContextExtractor{LocaleExtractor}, o.extractors...)
	return slog.New(newContextHandler(handler, extractors...))
}

// NewNope creates a logger that discards everything.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
