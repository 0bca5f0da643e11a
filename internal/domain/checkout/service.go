// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
)

// Gateway sends a checkout request to the storefront API
type Gateway interface {
	SubmitCheckout(ctx context.Context, req *Request) (*Result, error)
}

// Service turns a cart snapshot and customer form into a checkout call.
// It never retries and never clears the cart; the caller does that on success.
type Service struct {
	gateway Gateway
	log     *logrus.Logger
}

// NewService creates a new checkout service
func NewService(gateway Gateway, log *logrus.Logger) *Service {
	return &Service{
		gateway: gateway,
		log:     log,
	}
}

// Submit validates the snapshot locally and sends it. Errors are ErrEmptyCart,
// a *RejectedError, or an error wrapping ErrNetworkFailure.
func (s *Service) Submit(ctx context.Context, lines []cart.Line, customer map[string]string) (*Result, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	req := &Request{
		Items:    make([]Item, len(lines)),
		Customer: make(map[string]string, len(customer)),
	}
	for i, l := range lines {
		req.Items[i] = Item{ID: l.ProductID, Qty: l.Quantity}
	}
	for k, v := range customer {
		req.Customer[k] = v
	}

	s.log.Infof("Submitting checkout with %d items", len(req.Items))

	result, err := s.gateway.SubmitCheckout(ctx, req)
	if err != nil {
		var rejected *RejectedError
		if errors.As(err, &rejected) {
			s.log.Warnf("Checkout rejected with status %d: %s", rejected.StatusCode, rejected.Message)
		} else {
			s.log.WithError(err).Error("Checkout request failed")
		}
		return nil, err
	}

	s.log.Infof("Checkout confirmed, total %s", result.Total)
	return result, nil
}
