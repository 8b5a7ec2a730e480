package formapi

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register net/http handlers.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the collection mount path for the component under
// basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePrefix)
}

// RegisterRoutes registers the component handlers under basePath on mux and
// returns the registered patterns.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) ([]string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers handlers using a pre-built Options
// value. Callers are expected to pass an Options value produced by NewOptions
// so defaults apply.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) ([]string, error) {
	if mux == nil {
		return nil, fmt.Errorf("formapi: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	h := &handler{opts: opts}

	base := mountPath(basePath, opts.RoutePrefix)
	routes := []struct {
		pattern string
		fn      http.HandlerFunc
	}{
		{"GET " + base + "/{eventID}/forms", h.listForms},
		{"POST " + base + "/{eventID}/forms", h.createForm},
		{"GET " + base + "/{eventID}/forms/{formID}", h.loadForm},
		{"PUT " + base + "/{eventID}/forms/{formID}", h.saveForm},
		{"DELETE " + base + "/{eventID}/forms/{formID}", h.deleteForm},
		{"POST " + base + "/{eventID}/forms/{formID}/responses", h.submitResponses},
	}

	patterns := make([]string, 0, len(routes))
	for _, route := range routes {
		mux.Handle(route.pattern, h.guarded(route.fn))
		patterns = append(patterns, route.pattern)
	}
	return patterns, nil
}

func mountPath(basePath, routePrefix string) string {
	basePath = strings.TrimSpace(basePath)
	routePrefix = strings.TrimSpace(routePrefix)

	if routePrefix == "" {
		routePrefix = "/"
	}
	if !strings.HasPrefix(routePrefix, "/") {
		routePrefix = "/" + routePrefix
	}
	routePrefix = strings.TrimRight(routePrefix, "/")

	if basePath == "" || basePath == "/" {
		return routePrefix
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePrefix
}
