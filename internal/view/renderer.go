// Package view projects the catalog and cart stores into the storefront page
// and binds UI actions back into the stores.
package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/pkg/money"
	"github.com/your-org/storefront/internal/pkg/pdf"
)

const (
	emptyCartMessage      = "Your cart is empty."
	networkFailureMessage = "Could not reach the store. Please try again."
)

// ErrUnknownProduct is returned when an add targets a product outside the catalog
var ErrUnknownProduct = errors.New("product not in catalog")

// Renderer subscribes once to both stores and rebuilds the page after any
// change. It also owns the UI-only state: filters, drawer and checkout message.
type Renderer struct {
	catalog  *catalog.Store
	cart     *cart.Store
	pricing  *pricing.Engine
	checkout *checkout.Service
	money    *money.Formatter
	log      *logrus.Logger

	mu       sync.Mutex
	ui       uiState
	revision uint64
	cached   *Page
	receipt  *pdf.Receipt

	unsubscribe []func()
}

type uiState struct {
	query      string
	category   string
	drawerOpen bool
	message    *Message
}

// NewRenderer wires the renderer to the stores
func NewRenderer(
	catalogStore *catalog.Store,
	cartStore *cart.Store,
	engine *pricing.Engine,
	checkoutService *checkout.Service,
	formatter *money.Formatter,
	log *logrus.Logger,
) *Renderer {
	r := &Renderer{
		catalog:  catalogStore,
		cart:     cartStore,
		pricing:  engine,
		checkout: checkoutService,
		money:    formatter,
		log:      log,
	}
	r.unsubscribe = []func(){
		catalogStore.Subscribe(r.invalidate),
		cartStore.Subscribe(r.invalidate),
	}
	return r
}

// Close detaches the renderer from the stores
func (r *Renderer) Close() {
	for _, fn := range r.unsubscribe {
		fn()
	}
}

func (r *Renderer) invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revision++
	r.cached = nil
}

func (r *Renderer) updateUI(fn func(*uiState)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.ui)
	r.revision++
	r.cached = nil
}

// SetFilters applies the search text and category
func (r *Renderer) SetFilters(query, category string) {
	r.updateUI(func(ui *uiState) {
		ui.query = query
		ui.category = category
	})
}

// ClearFilters resets search text and category
func (r *Renderer) ClearFilters() {
	r.SetFilters("", "")
}

// OpenDrawer shows the cart drawer
func (r *Renderer) OpenDrawer() {
	r.updateUI(func(ui *uiState) { ui.drawerOpen = true })
}

// CloseDrawer hides the cart drawer
func (r *Renderer) CloseDrawer() {
	r.updateUI(func(ui *uiState) { ui.drawerOpen = false })
}

// AddToCart adds one unit of a catalog product and opens the drawer
func (r *Renderer) AddToCart(productID int64) error {
	if _, ok := r.catalog.Lookup(productID); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownProduct, productID)
	}
	r.cart.Add(productID, 1)
	r.OpenDrawer()
	return nil
}

// RemoveFromCart drops a line
func (r *Renderer) RemoveFromCart(productID int64) {
	r.cart.Remove(productID)
}

// Increment adds one unit to a line
func (r *Renderer) Increment(productID int64) {
	r.cart.Increment(productID)
}

// Decrement removes one unit from a line, keeping at least one
func (r *Renderer) Decrement(productID int64) {
	r.cart.Decrement(productID)
}

// SetQuantity sets a line's quantity, clamped to at least one
func (r *Renderer) SetQuantity(productID int64, qty int) {
	r.cart.SetQuantity(productID, qty)
}

// ClearCart empties the cart
func (r *Renderer) ClearCart() {
	r.cart.Clear()
}

// ReloadCatalog fetches the catalog again; failures surface as the page banner
func (r *Renderer) ReloadCatalog(ctx context.Context) error {
	return r.catalog.Load(ctx)
}

// Checkout submits the cart with the customer form. The cart is cleared only
// when the server confirms; every failure leaves it intact for a retry.
func (r *Renderer) Checkout(ctx context.Context, customer map[string]string) (*checkout.Result, error) {
	r.updateUI(func(ui *uiState) { ui.message = nil })

	lines := r.cart.Snapshot()
	summary := r.pricing.Compute(lines, r.catalog.Lookup)

	result, err := r.checkout.Submit(ctx, lines, customer)
	if err != nil {
		text := CheckoutErrorMessage(err)
		r.updateUI(func(ui *uiState) { ui.message = &Message{Kind: MessageError, Text: text} })
		return nil, err
	}

	receipt := r.buildReceipt(summary, customer, result)
	r.mu.Lock()
	r.receipt = receipt
	r.mu.Unlock()

	r.updateUI(func(ui *uiState) {
		ui.message = &Message{
			Kind: MessageSuccess,
			Text: fmt.Sprintf("✅ %s Total paid: %s.", result.Message, r.money.Price(result.Total)),
		}
	})
	r.cart.Clear()
	return result, nil
}

// CheckoutErrorMessage is the text the page shows for a failed checkout
func CheckoutErrorMessage(err error) string {
	var rejected *checkout.RejectedError
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		return emptyCartMessage
	case errors.As(err, &rejected):
		return rejected.Message
	default:
		return networkFailureMessage
	}
}

// Receipt returns the receipt of the last successful checkout
func (r *Renderer) Receipt() (*pdf.Receipt, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.receipt, r.receipt != nil
}

// Page returns the current page, rebuilding it if anything changed since the
// last call.
func (r *Renderer) Page() Page {
	r.mu.Lock()
	if r.cached != nil {
		page := *r.cached
		r.mu.Unlock()
		return page
	}
	ui := r.ui
	revision := r.revision
	receiptAvailable := r.receipt != nil
	r.mu.Unlock()

	page := r.build(ui, revision, receiptAvailable)

	r.mu.Lock()
	if r.revision == revision {
		r.cached = &page
	}
	r.mu.Unlock()
	return page
}

// Render writes the page as HTML
func (r *Renderer) Render(w io.Writer) error {
	return pageTemplate.Execute(w, r.Page())
}

func (r *Renderer) build(ui uiState, revision uint64, receiptAvailable bool) Page {
	page := Page{
		Revision:         revision,
		Query:            ui.query,
		Category:         ui.category,
		Categories:       r.catalog.Categories(),
		DrawerOpen:       ui.drawerOpen,
		Message:          ui.message,
		ReceiptAvailable: receiptAvailable,
	}

	if err := r.catalog.LastError(); err != nil {
		page.CatalogError = "We couldn't load the catalog. Please try again."
	}
	if at := r.catalog.LoadedAt(); !at.IsZero() {
		page.CatalogLoadedAt = at.Local().Format("15:04")
	}
	page.FreeShippingOver = r.money.Price(r.pricing.Config().FreeShippingThreshold)

	filtered := r.catalog.Filter(ui.query, ui.category)
	page.Products = make([]ProductCard, len(filtered))
	for i, p := range filtered {
		page.Products[i] = ProductCard{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Category:    p.Category,
			Image:       p.Image,
			Price:       r.money.Price(p.Price),
		}
	}

	lines := r.cart.Snapshot()
	summary := r.pricing.Compute(lines, r.catalog.Lookup)
	page.CartCount = summary.ItemCount

	page.CartLines = make([]CartLineView, len(lines))
	for i, l := range lines {
		p, ok := r.catalog.Lookup(l.ProductID)
		if !ok {
			page.CartLines[i] = CartLineView{
				ProductID: l.ProductID,
				Title:     "Product no longer available",
				Quantity:  l.Quantity,
			}
			continue
		}
		page.CartLines[i] = CartLineView{
			ProductID: l.ProductID,
			Available: true,
			Title:     p.Title,
			Image:     p.Image,
			UnitPrice: r.money.Price(p.Price),
			Quantity:  l.Quantity,
			Amount:    r.money.Price(p.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))),
		}
	}

	page.Subtotal = r.money.Amount(summary.Subtotal)
	page.Tax = r.money.Amount(summary.Tax)
	page.Total = r.money.Amount(summary.Total)
	page.ShippingLabel = r.shippingLabel(summary)
	return page
}

func (r *Renderer) shippingLabel(s pricing.Summary) string {
	switch {
	case s.Subtotal.IsZero():
		return "—"
	case s.Shipping.IsZero():
		return "Free"
	default:
		return r.money.Price(s.Shipping)
	}
}

func (r *Renderer) buildReceipt(s pricing.Summary, customer map[string]string, result *checkout.Result) *pdf.Receipt {
	receipt := &pdf.Receipt{
		Reference: "R-" + uuid.New().String()[:8],
		Date:      time.Now().Format("January 2, 2006 15:04"),
		Message:   result.Message,
		Lines:     make([]pdf.ReceiptLine, len(s.Lines)),
		Subtotal:  r.money.Price(s.Subtotal),
		Shipping:  r.shippingLabel(s),
		Tax:       r.money.Price(s.Tax),
		Total:     r.money.Price(s.Total),
		TotalPaid: r.money.Price(result.Total),
	}
	for i, l := range s.Lines {
		receipt.Lines[i] = pdf.ReceiptLine{
			Title:     l.Product.Title,
			Quantity:  l.Quantity,
			UnitPrice: r.money.Price(l.Product.Price),
			Amount:    r.money.Price(l.Amount),
		}
	}

	names := make([]string, 0, len(customer))
	for name := range customer {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		receipt.Customer = append(receipt.Customer, pdf.Field{Name: name, Value: customer[name]})
	}
	return receipt
}
