// Package logger builds the structured loggers used across localedata.
//
// It is a thin layer over log/slog with two additions: context extractors
// that attach request-scoped values (most importantly the locale identifier
// being loaded) to every record, and optional fan-out to Sentry.
//
// # Basic Usage
//
//	log := logger.New(logger.WithLevel(slog.LevelDebug))
//
//	ctx := logger.WithLocale(context.Background(), "en_US")
//	log.DebugContext(ctx, "locale data loaded")
//	// {"level":"DEBUG","msg":"locale data loaded","locale":"en_US"}
//
// # Sentry
//
//	log := logger.New(logger.WithSentry(logger.SentryConfig{
//		DSN:         os.Getenv("SENTRY_DSN"),
//		Environment: "production",
//		MinLevel:    slog.LevelWarn,
//	}))
//
// With an empty DSN, or when the SDK fails to initialize, the logger keeps
// writing to its output only.
//
// # Silence
//
// NewNope returns a logger that discards everything; localedata uses it when
// no logger is configured.
package logger
