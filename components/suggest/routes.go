package suggest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-formkit/pkg/form"
)

// Mux is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// RegisterRoutes mounts a handler for choices at routePath under basePath
// and returns the full path.
func RegisterRoutes(mux Mux, basePath, routePath string, choices []form.Choice, fns ...OptionFn) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("suggest: missing mux")
	}
	pattern := MountPath(basePath, routePath)
	mux.Handle(pattern, Handler(choices, fns...))
	return pattern, nil
}

// MountPath joins basePath and routePath into a rooted path.
func MountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}
	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/") + routePath
}
