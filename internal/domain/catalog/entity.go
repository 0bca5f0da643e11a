// internal/domain/catalog/entity.go
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrCatalogUnavailable is returned when the product source cannot be reached
// or returns data that cannot be used as a catalog.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Product is a purchasable item as served by GET /api/products
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}

// Source fetches the full product collection
type Source interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}

// Validate rejects collections that would break cart lookups or pricing
func Validate(products []Product) error {
	seen := make(map[int64]struct{}, len(products))
	for _, p := range products {
		if p.Price.IsNegative() {
			return fmt.Errorf("%w: product %d has negative price %s", ErrCatalogUnavailable, p.ID, p.Price)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate product id %d", ErrCatalogUnavailable, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}
