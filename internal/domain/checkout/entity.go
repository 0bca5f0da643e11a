// internal/domain/checkout/entity.go
package checkout

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyCart is returned before any request is sent when there is nothing to buy
	ErrEmptyCart = errors.New("your cart is empty")
	// ErrNetworkFailure wraps failures where the checkout call itself did not complete
	ErrNetworkFailure = errors.New("checkout request failed")
)

// DefaultRejectionMessage is shown when the server declines without a reason
const DefaultRejectionMessage = "Checkout failed."

// RejectedError is a checkout the server answered with a non-success status
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("checkout rejected (status %d): %s", e.StatusCode, e.Message)
}

// Item is the id/quantity pair sent to the server. Prices are never sent;
// the server is authoritative for them.
type Item struct {
	ID  int64 `json:"id"`
	Qty int   `json:"qty"`
}

// Request is the body of POST /api/checkout
type Request struct {
	Items    []Item            `json:"items"`
	Customer map[string]string `json:"customer"`
}

// Result is a successful checkout
type Result struct {
	Message string          `json:"message"`
	Total   decimal.Decimal `json:"total"`
}
