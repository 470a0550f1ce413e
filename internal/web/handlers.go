package web

import (
	"net/http"
	"strconv"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/mirkafe/menu-web/internal/domain/menu"
	"github.com/mirkafe/menu-web/internal/format"
)

// siteTitle is the restaurant name shown in the header and page titles.
const siteTitle = "MIR KAFE"

// contactsView is the footer view model with the phone pre-formatted.
type contactsView struct {
	Instagram    string
	Telegram     string
	Phone        string
	PhoneDisplay string
	Empty        bool
}

type pageData struct {
	Title    string
	Contacts contactsView
}

type landingData struct {
	pageData
	Tiles []menu.CategoryTile
}

type categoryData struct {
	pageData
	Heading  string
	Nav      []menu.NavEntry
	Products []menu.Product
}

type combinedData struct {
	pageData
	Groups []menu.CategoryGroup
}

type errorData struct {
	pageData
	Message string
}

// handleLanding renders the category grid. An empty catalog renders the
// explicit "no categories" state, not an empty grid.
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	tiles, err := s.menu.Overview(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "landing", landingData{
		pageData: s.page(siteTitle),
		Tiles:    tiles,
	})
}

// handleCategory renders one category's product grid plus the nav strip.
// A malformed id is an unrecognized path and goes back to the landing page.
func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	detail, err := s.menu.Detail(r.Context(), id)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	title := siteTitle
	if detail.Heading != "" {
		title = detail.Heading + " — " + siteTitle
	}
	s.render(w, r, http.StatusOK, "category", categoryData{
		pageData: s.page(title),
		Heading:  detail.Heading,
		Nav:      detail.Nav,
		Products: detail.Products,
	})
}

// handleCombined renders the legacy single-page menu. This is the one place
// that refreshes the contact settings store (via Service.Combined).
func (s *Server) handleCombined(w http.ResponseWriter, r *http.Request) {
	m, err := s.menu.Combined(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "menu", combinedData{
		pageData: s.page(siteTitle),
		Groups:   m.Groups,
	})
}

// page builds the shared page chrome, reading the footer contacts from the
// settings store.
func (s *Server) page(title string) pageData {
	cs := s.contacts.Snapshot()
	view := contactsView{
		Instagram: cs.Instagram,
		Telegram:  cs.Telegram,
		Phone:     cs.Phone,
		Empty:     cs.Empty(),
	}
	if cs.Phone != "" {
		view.PhoneDisplay = format.Phone(cs.Phone)
	}
	return pageData{Title: title, Contacts: view}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		zctx.From(r.Context()).Error("Render template",
			zap.String("template", name),
			zap.Error(err),
		)
	}
}

// renderError shows the single error state with the raw error text, matching
// the views' no-retry contract.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	zctx.From(r.Context()).Error("Page load failed", zap.Error(err))
	s.render(w, r, http.StatusBadGateway, "error", errorData{
		pageData: s.page(siteTitle),
		Message:  err.Error(),
	})
}
