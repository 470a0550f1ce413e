// Package web renders the customer-facing menu pages: the landing category
// grid, per-category product listings, and the legacy single-page menu.
package web

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/mirkafe/menu-web/internal/domain/menu"
	"github.com/mirkafe/menu-web/internal/format"
)

// MenuService provides the page view models. Implemented by
// menu.Service; mocked in tests.
type MenuService interface {
	Overview(ctx context.Context) ([]menu.CategoryTile, error)
	Detail(ctx context.Context, id int64) (*menu.CategoryDetail, error)
	Combined(ctx context.Context) (*menu.CombinedMenu, error)
}

// ContactSource exposes the current contact settings snapshot for the footer.
type ContactSource interface {
	Snapshot() menu.ContactSettings
}

// Server holds the parsed templates and page dependencies.
type Server struct {
	menu     MenuService
	contacts ContactSource
	tmpl     *template.Template
}

// NewServer parses the embedded templates and creates a Server.
func NewServer(m MenuService, contacts ContactSource) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"som":   format.Som,
		"phone": format.Phone,
	}).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	return &Server{
		menu:     m,
		contacts: contacts,
		tmpl:     tmpl,
	}, nil
}

// Register mounts all page and asset routes on mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleLanding)
	mux.HandleFunc("GET /category/{id}", s.handleCategory)
	mux.HandleFunc("GET /category/{id}/{$}", s.handleCategory)
	mux.HandleFunc("GET /menu", s.handleCombined)

	assets, err := fs.Sub(staticFS, "static")
	if err != nil {
		// static is embedded at compile time; a missing subtree is a build defect.
		panic(err)
	}
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(assets)))
}
