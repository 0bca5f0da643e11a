// internal/domain/pricing/engine.go
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
)

// Config holds the order total rules
type Config struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	TaxRate               decimal.Decimal
}

// DefaultConfig is free shipping above 5000, otherwise 199, and 18% tax
func DefaultConfig() Config {
	return Config{
		FreeShippingThreshold: decimal.NewFromInt(5000),
		FlatShippingFee:       decimal.NewFromInt(199),
		TaxRate:               decimal.RequireFromString("0.18"),
	}
}

// Lookup resolves a product id against the current catalog
type Lookup func(id int64) (catalog.Product, bool)

// PricedLine is a cart line whose product resolved
type PricedLine struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

// Summary is the derived monetary breakdown of a cart. It is never persisted.
type Summary struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Shipping    decimal.Decimal `json:"shipping"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"item_count"`
	Lines       []PricedLine    `json:"lines"`
	Unavailable []cart.Line     `json:"unavailable"`
}

// Engine computes summaries
type Engine struct {
	config Config
}

// NewEngine creates a pricing engine
func NewEngine(cfg Config) *Engine {
	return &Engine{config: cfg}
}

// Config returns the rules the engine applies
func (e *Engine) Config() Config {
	return e.config
}

// Compute derives the summary of lines against the catalog. Lines whose product
// no longer exists are left out of every amount, reported in Unavailable, and
// still counted in ItemCount. Tax is rounded half up to whole units.
func (e *Engine) Compute(lines []cart.Line, lookup Lookup) Summary {
	summary := Summary{
		Lines:       make([]PricedLine, 0, len(lines)),
		Unavailable: []cart.Line{},
	}

	subtotal := decimal.Zero
	for _, l := range lines {
		summary.ItemCount = cart.AddQuantity(summary.ItemCount, l.Quantity)

		product, ok := lookup(l.ProductID)
		if !ok {
			summary.Unavailable = append(summary.Unavailable, l)
			continue
		}
		amount := product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		subtotal = subtotal.Add(amount)
		summary.Lines = append(summary.Lines, PricedLine{
			Product:  product,
			Quantity: l.Quantity,
			Amount:   amount,
		})
	}

	summary.Subtotal = subtotal
	summary.Shipping = e.shipping(subtotal)
	summary.Tax = e.tax(subtotal)
	summary.Total = subtotal.Add(summary.Shipping).Add(summary.Tax)
	return summary
}

func (e *Engine) shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsZero() || subtotal.GreaterThan(e.config.FreeShippingThreshold) {
		return decimal.Zero
	}
	return e.config.FlatShippingFee
}

// tax rounds half away from zero, which is half up for the non-negative
// subtotals a cart can produce.
func (e *Engine) tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(e.config.TaxRate).Round(0)
}
