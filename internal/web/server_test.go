package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mirkafe/menu-web/internal/domain/menu"
	"github.com/mirkafe/menu-web/internal/settings"
	"github.com/mirkafe/menu-web/internal/upstream"
)

// --- Mock implementations ---

type mockMenu struct {
	tiles     []menu.CategoryTile
	overErr   error
	detail    *menu.CategoryDetail
	detailErr error
	combined  *menu.CombinedMenu
	combErr   error

	lastDetailID int64
}

func (m *mockMenu) Overview(_ context.Context) ([]menu.CategoryTile, error) {
	return m.tiles, m.overErr
}

func (m *mockMenu) Detail(_ context.Context, id int64) (*menu.CategoryDetail, error) {
	m.lastDetailID = id
	return m.detail, m.detailErr
}

func (m *mockMenu) Combined(_ context.Context) (*menu.CombinedMenu, error) {
	return m.combined, m.combErr
}

type mockContacts struct {
	snapshot menu.ContactSettings
}

func (m *mockContacts) Snapshot() menu.ContactSettings { return m.snapshot }

// --- Helpers ---

func newTestHandler(t *testing.T, m MenuService, contacts ContactSource) http.Handler {
	t.Helper()
	srv, err := NewServer(m, contacts)
	require.NoError(t, err)

	mux := http.NewServeMux()
	srv.Register(mux)
	return mux
}

func get(t *testing.T, h http.Handler, path string) (*http.Response, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	resp := rec.Result()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

// --- Tests ---

func TestLanding_RendersTiles(t *testing.T) {
	m := &mockMenu{tiles: []menu.CategoryTile{
		{ID: 1, Name: "Salads", ImageURL: "/caesar.jpg", ProductCount: 2},
		{ID: 2, Name: "Drinks", ImageURL: menu.PlaceholderImage, ProductCount: 0},
	}}
	h := newTestHandler(t, m, &mockContacts{})

	resp, body := get(t, h, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Salads")
	assert.Contains(t, body, "Drinks")
	assert.Contains(t, body, `href="/category/1"`)
	assert.Contains(t, body, menu.PlaceholderImage)
	assert.NotContains(t, body, "Kategoriyalar topilmadi")
}

func TestLanding_EmptyCatalogMessage(t *testing.T) {
	h := newTestHandler(t, &mockMenu{}, &mockContacts{})

	resp, body := get(t, h, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Kategoriyalar topilmadi")
	assert.NotContains(t, body, "category-grid")
}

func TestLanding_ErrorState(t *testing.T) {
	m := &mockMenu{overErr: errors.New("backend /category/: status 503")}
	h := newTestHandler(t, m, &mockContacts{})

	resp, body := get(t, h, "/")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "Xato:")
	assert.Contains(t, body, "status 503")
}

func TestCategoryPage_RendersProducts(t *testing.T) {
	m := &mockMenu{detail: &menu.CategoryDetail{
		Heading: "Salads",
		Nav: []menu.NavEntry{
			{Name: "Bosh sahifa", Href: "/", Home: true},
			{ID: 1, Name: "Salads", Href: "/category/1", Active: true},
		},
		Products: []menu.Product{
			{ID: 10, Name: "Caesar", Description: "Classic", Price: menu.NumberPrice(45000), Photo: "/c.jpg"},
		},
	}}
	h := newTestHandler(t, m, &mockContacts{})

	resp, body := get(t, h, "/category/1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), m.lastDetailID)
	assert.Contains(t, body, "Salads")
	assert.Contains(t, body, "Caesar")
	assert.Contains(t, body, "45 000 so&#39;m")
	assert.Contains(t, body, "Bosh sahifa")
}

func TestCategoryPage_EmptyHeadingIsNotError(t *testing.T) {
	m := &mockMenu{detail: &menu.CategoryDetail{
		Nav: []menu.NavEntry{{Name: "Bosh sahifa", Href: "/", Home: true}},
	}}
	h := newTestHandler(t, m, &mockContacts{})

	resp, body := get(t, h, "/category/99")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Mahsulotlar topilmadi")
	assert.NotContains(t, body, "Xato:")
}

func TestCategoryPage_MalformedIDRedirects(t *testing.T) {
	h := newTestHandler(t, &mockMenu{}, &mockContacts{})

	resp, _ := get(t, h, "/category/abc")
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestCombinedPage_RendersGroups(t *testing.T) {
	m := &mockMenu{combined: &menu.CombinedMenu{
		Groups: []menu.CategoryGroup{
			{CategoryID: 1, Category: "Salads", Products: []menu.Product{
				{ID: 10, Name: "Caesar", Price: menu.NumberPrice(45000)},
			}},
		},
	}}
	h := newTestHandler(t, m, &mockContacts{})

	resp, body := get(t, h, "/menu")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Barchasi")
	assert.Contains(t, body, `id="cat-1"`)
	assert.Contains(t, body, "Caesar")
}

func TestFooter_RendersContacts(t *testing.T) {
	contacts := &mockContacts{snapshot: menu.ContactSettings{
		Instagram: "https://instagram.com/mirkafe",
		Phone:     "998901234567",
	}}
	h := newTestHandler(t, &mockMenu{tiles: []menu.CategoryTile{{ID: 1, Name: "Salads"}}}, contacts)

	_, body := get(t, h, "/")
	assert.Contains(t, body, "https://instagram.com/mirkafe")
	assert.Contains(t, body, "+998 90 123 45 67")
	assert.Contains(t, body, "tel:998901234567")
}

func TestFooter_HiddenWhenNoContacts(t *testing.T) {
	h := newTestHandler(t, &mockMenu{tiles: []menu.CategoryTile{{ID: 1, Name: "Salads"}}}, &mockContacts{})

	_, body := get(t, h, "/")
	assert.NotContains(t, body, "site-footer")
}

func TestStaticAssets(t *testing.T) {
	h := newTestHandler(t, &mockMenu{}, &mockContacts{})

	resp, body := get(t, h, "/assets/menu.js")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "IntersectionObserver")

	resp, _ = get(t, h, "/assets/placeholder.svg")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestEndToEnd exercises the real service, client, and settings store against
// a fake backend: catalog with two categories, products for the first one.
func TestEndToEnd(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/category/":
			_, _ = io.WriteString(w, `[{"id":1,"name":"Salads"},{"id":2,"name":"Drinks"}]`)
		case "/category/1/":
			_, _ = io.WriteString(w, `{"products":[{"id":10,"name":"Caesar","price":45000,"photo":"/c.jpg"}]}`)
		case "/category/2/":
			_, _ = io.WriteString(w, `{"products":[]}`)
		case "/products/":
			_, _ = io.WriteString(w, `{"settings":{"phone":"998901234567"},"categories":[{"category_id":1,"category":"Salads","products":[{"id":10,"name":"Caesar","price":45000}]}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(backend.Close)

	client, err := upstream.NewClient(backend.URL, upstream.Options{})
	require.NoError(t, err)

	store, err := settings.Open(t.TempDir(), zaptest.NewLogger(t))
	require.NoError(t, err)

	svc := menu.NewService(client, store, menu.ServiceConfig{})
	h := newTestHandler(t, svc, store)

	// Landing shows both categories with counts.
	resp, body := get(t, h, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Salads")
	assert.Contains(t, body, "Drinks")
	assert.Contains(t, body, "/c.jpg")

	// Detail renders heading and the formatted price.
	resp, body = get(t, h, "/category/1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Salads")
	assert.Contains(t, body, "45 000 so&#39;m")

	// The legacy combined page refreshes the settings store; the footer on a
	// subsequent page shows the formatted phone.
	resp, _ = get(t, h, "/menu")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "998901234567", store.Snapshot().Phone)

	_, body = get(t, h, "/")
	assert.Contains(t, body, "+998 90 123 45 67")
}
