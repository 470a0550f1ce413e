package httpmiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteUnknown(t *testing.T) {
	mw := RewriteUnknown(RewriteConfig{
		AllowPrefixes: []string{"/category", "/assets", "/menu"},
	})
	h := mw(okHandler())

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"root passes", "/", http.StatusOK},
		{"allowed prefix passes", "/category/5", http.StatusOK},
		{"allowed prefix exact passes", "/menu", http.StatusOK},
		{"asset passes", "/assets/menu.css", http.StatusOK},
		{"file extension passes", "/favicon.ico", http.StatusOK},
		{"unknown path redirects", "/checkout", http.StatusTemporaryRedirect},
		{"prefix lookalike redirects", "/categoryx", http.StatusTemporaryRedirect},
		{"deep unknown path redirects", "/admin/login", http.StatusTemporaryRedirect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusTemporaryRedirect {
				assert.Equal(t, "/", rec.Header().Get("Location"))
			}
		})
	}
}

func TestRewriteUnknown_CustomTarget(t *testing.T) {
	mw := RewriteUnknown(RewriteConfig{Target: "/home"})
	h := mw(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whatever", nil))
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/home", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/home", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
