// Package menu holds the domain model for the restaurant menu: the category
// catalog, per-category product listings, contact settings, and the services
// that aggregate them into page-ready view models.
package menu

import "context"

// PlaceholderImage is the sentinel image used when neither a category's
// products nor the category record itself carry a photo.
const PlaceholderImage = "/assets/placeholder.svg"

// Category is one entry of the catalog as returned by the backend. Catalog
// order is display order and is preserved end to end.
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Photo string `json:"photo,omitempty"`
}

// Product is a single menu item within a category. CategoryID should match
// the category it was fetched under, but the backend is trusted on this.
type Product struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        Price  `json:"price"`
	Photo        string `json:"photo"`
	CategoryID   int64  `json:"category"`
	CategoryName string `json:"category_name"`
	CreatedAt    string `json:"created_at"`
}

// ContactSettings holds the restaurant's contact links. All fields are
// optional; an all-empty value means the contact block is not rendered.
type ContactSettings struct {
	Instagram string `json:"instagram,omitempty"`
	Telegram  string `json:"telegram,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Empty reports whether no contact field is populated.
func (s ContactSettings) Empty() bool {
	return s.Instagram == "" && s.Telegram == "" && s.Phone == ""
}

// CategoryGroup is one category together with its products, as returned by
// the legacy combined endpoint.
type CategoryGroup struct {
	CategoryID int64     `json:"category_id"`
	Category   string    `json:"category"`
	Products   []Product `json:"products"`
}

// CombinedMenu is the legacy combined response: contact settings plus every
// category with its products in one payload.
type CombinedMenu struct {
	Settings ContactSettings `json:"settings"`
	Groups   []CategoryGroup `json:"categories"`
}

// Source provides read access to the restaurant backend. Implementations
// must return sequences in backend order and honor ctx cancellation.
type Source interface {
	// Categories returns the full catalog.
	Categories(ctx context.Context) ([]Category, error)
	// CategoryProducts returns the products of one category.
	CategoryProducts(ctx context.Context, id int64) ([]Product, error)
	// CombinedMenu returns the legacy combined payload.
	CombinedMenu(ctx context.Context) (*CombinedMenu, error)
}
