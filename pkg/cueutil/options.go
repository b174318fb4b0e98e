// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize is the default maximum size of a document read for validation (5MB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

type (
	validateOptions struct {
		concrete   bool
		pathPrefix string
	}

	// Option configures validation behavior.
	Option func(*validateOptions)
)

func defaultOptions() validateOptions {
	return validateOptions{
		concrete: true,
	}
}

// WithConcrete sets whether all values must be concrete after unification.
// Default is true. Configuration tables with optional keys pass false.
func WithConcrete(concrete bool) Option {
	return func(o *validateOptions) {
		o.concrete = concrete
	}
}

// WithPathPrefix prepends a key path to every reported error path, for
// values that were extracted from a larger document (e.g. "tool.meow").
func WithPathPrefix(prefix string) Option {
	return func(o *validateOptions) {
		o.pathPrefix = prefix
	}
}
