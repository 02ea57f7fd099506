package suggest

import "net/http"

// EmptyMode controls what a blank query returns.
type EmptyMode string

const (
	EmptyNone EmptyMode = "none"
	EmptyTop  EmptyMode = "top"
)

// GuardFunc rejects a request by returning an error. An error implementing
// StatusCoder sets the status code, otherwise 403 is used.
type GuardFunc func(r *http.Request) error

// Options configure a suggestion handler.
type Options struct {
	SearchParam  string
	LimitParam   string
	DefaultLimit int
	MaxLimit     int
	EmptyMode    EmptyMode
	Guard        GuardFunc
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// NewOptions applies fns over the defaults and clamps invalid values.
func NewOptions(fns ...OptionFn) Options {
	opts := Options{
		SearchParam:  "q",
		LimitParam:   "limit",
		DefaultLimit: 20,
		MaxLimit:     100,
		EmptyMode:    EmptyNone,
	}
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 20
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 100
	}
	if opts.EmptyMode == "" {
		opts.EmptyMode = EmptyNone
	}
	return opts
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) { o.SearchParam = name }
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) { o.LimitParam = name }
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) { o.DefaultLimit = limit }
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) { o.MaxLimit = limit }
}

func WithEmptyMode(mode EmptyMode) OptionFn {
	return func(o *Options) { o.EmptyMode = mode }
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) { o.Guard = guard }
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
