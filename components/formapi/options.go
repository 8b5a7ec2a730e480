package formapi

import (
	"net/http"

	"github.com/goliatone/go-formkit/pkg/flow"
	"github.com/goliatone/go-formkit/pkg/store"
)

// GuardFunc runs before every request; returning an error rejects it.
type GuardFunc func(r *http.Request) error

type Options struct {
	// RoutePrefix is the path segment mounted under the base path.
	RoutePrefix string
	// Store persists form documents. Defaults to an in-memory store.
	Store store.Store
	// Submitter receives gated response submissions. When nil the component
	// mints a receipt itself and the submission ends at the boundary.
	Submitter flow.Submitter
	// Guard optionally rejects requests (auth, rate limits).
	Guard GuardFunc
	// MaxBodyBytes caps request body size.
	MaxBodyBytes int64
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePrefix:  "/api/events",
		MaxBodyBytes: 1 << 20,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePrefix == "" {
		opts.RoutePrefix = "/api/events"
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if opts.Store == nil {
		opts.Store = store.NewMemory()
	}
	return opts
}

func WithRoutePrefix(prefix string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePrefix = prefix
	}
}

func WithStore(s store.Store) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if s != nil {
			o.Store = s
		}
	}
}

func WithSubmitter(s flow.Submitter) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Submitter = s
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}
