package menu

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// defaultFanOut bounds the concurrent per-category product fetches issued by
// Overview when no explicit limit is configured.
const defaultFanOut = 4

// CategoryTile is one card of the landing grid: a category annotated with a
// representative image and its product count.
type CategoryTile struct {
	ID           int64
	Name         string
	ImageURL     string
	ProductCount int
}

// NavEntry is one entry of the category navigation strip.
type NavEntry struct {
	ID     int64
	Name   string
	Href   string
	Active bool
	Home   bool
}

// CategoryDetail is the view model for a single category page.
type CategoryDetail struct {
	// Heading is the selected category's name, or empty when the id is not
	// present in the catalog (stale link). An empty heading is not an error.
	Heading  string
	Nav      []NavEntry
	Products []Product
}

// ContactSink receives the contact settings decoded from the legacy combined
// fetch. The menu service is the sole writer.
type ContactSink interface {
	Update(ContactSettings)
}

// ServiceConfig holds tunables for the menu service.
type ServiceConfig struct {
	// FanOut caps the concurrent per-category product fetches in Overview.
	// Zero means the default.
	FanOut int
}

// Service aggregates backend data into page-ready view models.
type Service struct {
	src      Source
	contacts ContactSink
	fanOut   int
}

// NewService creates a menu Service. contacts may be nil when no settings
// store is attached (tests).
func NewService(src Source, contacts ContactSink, cfg ServiceConfig) *Service {
	fanOut := cfg.FanOut
	if fanOut <= 0 {
		fanOut = defaultFanOut
	}
	return &Service{
		src:      src,
		contacts: contacts,
		fanOut:   fanOut,
	}
}

// Overview builds the landing grid: every catalog category with a
// representative image and product count.
//
// The per-category product fetches fan out concurrently with a bounded limit,
// and individual failures degrade that category (own photo or placeholder,
// zero count) instead of failing the page. A catalog fetch failure is fatal.
// Result order is catalog order regardless of fetch completion order.
func (s *Service) Overview(ctx context.Context) ([]CategoryTile, error) {
	cats, err := s.src.Categories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load catalog")
	}

	tiles := make([]CategoryTile, len(cats))
	g := new(errgroup.Group)
	g.SetLimit(s.fanOut)
	for i, cat := range cats {
		g.Go(func() error {
			products, err := s.src.CategoryProducts(ctx, cat.ID)
			if err != nil {
				// Partial catalog beats a blank page: degrade this tile only.
				zctx.From(ctx).Warn("Category products unavailable",
					zap.Int64("category_id", cat.ID),
					zap.Error(err),
				)
				products = nil
			}
			tiles[i] = CategoryTile{
				ID:           cat.ID,
				Name:         cat.Name,
				ImageURL:     tileImage(cat, products),
				ProductCount: len(products),
			}
			return nil
		})
	}
	_ = g.Wait() // goroutines only report nil; Wait bounds their lifetime

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return tiles, nil
}

// tileImage picks the representative image: first product photo, then the
// category's own photo, then the placeholder sentinel.
func tileImage(cat Category, products []Product) string {
	if len(products) > 0 && products[0].Photo != "" {
		return products[0].Photo
	}
	if cat.Photo != "" {
		return cat.Photo
	}
	return PlaceholderImage
}

// Detail builds the view model for one category page: the navigation strip
// over the full catalog plus the selected category's products.
//
// Catalog and product fetches run concurrently; either failure aborts the
// view. A selected id missing from the catalog yields an empty heading.
func (s *Service) Detail(ctx context.Context, id int64) (*CategoryDetail, error) {
	var (
		cats     []Category
		products []Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if cats, err = s.src.Categories(gctx); err != nil {
			return errors.Wrap(err, "load catalog")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if products, err = s.src.CategoryProducts(gctx, id); err != nil {
			return errors.Wrapf(err, "load products of category %d", id)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	detail := &CategoryDetail{
		Nav:      buildNav(cats, id),
		Products: products,
	}
	for _, cat := range cats {
		if cat.ID == id {
			detail.Heading = cat.Name
			break
		}
	}
	return detail, nil
}

// buildNav prepends the synthetic home entry and marks the selected category.
func buildNav(cats []Category, selected int64) []NavEntry {
	nav := make([]NavEntry, 0, len(cats)+1)
	nav = append(nav, NavEntry{Name: "Bosh sahifa", Href: "/", Home: true})
	for _, cat := range cats {
		nav = append(nav, NavEntry{
			ID:     cat.ID,
			Name:   cat.Name,
			Href:   fmt.Sprintf("/category/%d", cat.ID),
			Active: cat.ID == selected,
		})
	}
	return nav
}

// Combined loads the legacy combined menu and, on success, publishes its
// contact settings to the attached sink.
func (s *Service) Combined(ctx context.Context) (*CombinedMenu, error) {
	m, err := s.src.CombinedMenu(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load combined menu")
	}
	if s.contacts != nil {
		s.contacts.Update(m.Settings)
	}
	return m, nil
}
