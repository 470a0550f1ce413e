package httpmiddleware

import (
	"net/http"
	"strings"
)

// RewriteConfig configures the unknown-path rewrite middleware.
type RewriteConfig struct {
	// AllowPrefixes lists leading path segments that pass through untouched,
	// e.g. "/category", "/assets". The target path itself always passes.
	AllowPrefixes []string
	// Target is the redirect destination for unrecognized paths. Defaults
	// to "/".
	Target string
}

// RewriteUnknown returns a middleware that redirects any unrecognized path to
// the target route. Paths under an allowed prefix pass through, as do paths
// containing a dot (static files).
func RewriteUnknown(cfg RewriteConfig) Middleware {
	target := cfg.Target
	if target == "" {
		target = "/"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allowedPath(r.URL.Path, target, cfg.AllowPrefixes) {
				next.ServeHTTP(w, r)
				return
			}
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)
		})
	}
}

func allowedPath(path, target string, prefixes []string) bool {
	if path == target || strings.Contains(path, ".") {
		return true
	}
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
