package localedata

import "log/slog"

// Option configures a Cache.
type Option func(*options)

type options struct {
	parents   ParentTable
	logger    *slog.Logger
	onResolve func(Alias)
	threshold int
}

func defaultOptions() *options {
	return &options{
		threshold: DefaultCopyThreshold,
	}
}

// WithParents sets the parent exception table.
// Default: none, every parent is derived from the identifier.
func WithParents(table ParentTable) Option {
	return func(o *options) {
		o.parents = table
	}
}

// WithCopyThreshold sets the combined key count at which merges switch from
// copying to views.
// Default: DefaultCopyThreshold.
func WithCopyThreshold(n int) Option {
	return func(o *options) {
		o.threshold = n
	}
}

// WithLogger sets the logger used for load diagnostics.
// Default: a logger that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithResolveHook registers fn to be called every time an alias is walked,
// including nested aliases met along the way.
func WithResolveHook(fn func(Alias)) Option {
	return func(o *options) {
		o.onResolve = fn
	}
}

// LoadOption configures a single Load call.
type LoadOption func(*loadOptions)

type loadOptions struct {
	inherit bool
}

// WithoutInheritance loads only the identifier's own record, without merging
// its ancestors. Such loads are cached separately from inherited ones.
func WithoutInheritance() LoadOption {
	return func(o *loadOptions) {
		o.inherit = false
	}
}
