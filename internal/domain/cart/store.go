// internal/domain/cart/store.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/pkg/notify"
)

const persistTimeout = 3 * time.Second

// Store owns the cart lines and is the only writer of the cart storage key.
// Mutations never fail: a storage error is logged and the in-memory cart stays
// authoritative until the next successful write.
type Store struct {
	adapter storage.Adapter
	key     string
	log     *logrus.Logger

	mu    sync.Mutex
	lines []Line

	changed notify.Notifier
}

// NewStore creates an empty cart persisted under key
func NewStore(adapter storage.Adapter, key string, log *logrus.Logger) *Store {
	return &Store{
		adapter: adapter,
		key:     key,
		log:     log,
	}
}

// Restore replaces the in-memory cart with the persisted one. A missing or
// unparsable value yields an empty cart; only storage I/O errors are returned.
func (s *Store) Restore(ctx context.Context) error {
	raw, err := s.adapter.Get(ctx, s.key)
	var lines []Line
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case errors.Is(err, storage.ErrCorrupt):
		s.log.WithError(err).Warn("Cart storage is corrupt, starting with an empty cart")
	case err != nil:
		return fmt.Errorf("failed to read cart from storage: %w", err)
	default:
		lines, err = Decode(raw)
		if err != nil {
			s.log.WithError(err).Warn("Persisted cart is corrupt, starting with an empty cart")
			lines = nil
		}
	}

	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()

	s.log.Debugf("Cart restored with %d lines", len(lines))
	s.changed.Notify()
	return nil
}

// Add increments the line for productID by qty, appending a new line if there
// is none. A qty below 1 adds a single unit.
func (s *Store) Add(productID int64, qty int) {
	if qty < 1 {
		qty = 1
	}
	s.mutate(func() bool {
		if i := s.indexOf(productID); i >= 0 {
			s.lines[i].Quantity = AddQuantity(s.lines[i].Quantity, qty)
		} else {
			s.lines = append(s.lines, Line{ProductID: productID, Quantity: qty})
		}
		return true
	})
}

// Remove deletes the line for productID if present
func (s *Store) Remove(productID int64) {
	s.mutate(func() bool {
		if i := s.indexOf(productID); i >= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		}
		return true
	})
}

// SetQuantity sets the quantity of an existing line, clamped to at least 1.
// It does nothing when the line is absent.
func (s *Store) SetQuantity(productID int64, qty int) {
	if qty < 1 {
		qty = 1
	}
	s.mutate(func() bool {
		i := s.indexOf(productID)
		if i < 0 {
			return false
		}
		s.lines[i].Quantity = qty
		return true
	})
}

// Increment adds one unit to an existing line
func (s *Store) Increment(productID int64) {
	s.step(productID, 1)
}

// Decrement removes one unit from an existing line, never going below 1
func (s *Store) Decrement(productID int64) {
	s.step(productID, -1)
}

func (s *Store) step(productID int64, delta int) {
	s.mutate(func() bool {
		i := s.indexOf(productID)
		if i < 0 {
			return false
		}
		s.lines[i].Quantity = max(1, AddQuantity(s.lines[i].Quantity, delta))
		return true
	})
}

// Clear empties the cart
func (s *Store) Clear() {
	s.mutate(func() bool {
		s.lines = nil
		return true
	})
}

// Snapshot returns a copy of the lines in insertion order
func (s *Store) Snapshot() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Line(nil), s.lines...)
}

// Count is the total quantity across all lines
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, l := range s.lines {
		n = AddQuantity(n, l.Quantity)
	}
	return n
}

// Subscribe registers fn to run after every mutation
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	return s.changed.Subscribe(fn)
}

// mutate applies fn under the lock and persists when fn reports a change.
// Persisting inside the lock keeps storage writes in mutation order.
func (s *Store) mutate(fn func() bool) {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return
	}
	s.persist()
	s.mu.Unlock()

	s.changed.Notify()
}

func (s *Store) persist() {
	raw, err := Encode(s.lines)
	if err != nil {
		s.log.WithError(err).Error("Failed to encode cart")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.adapter.Set(ctx, s.key, raw); err != nil {
		s.log.WithError(err).WithField("key", s.key).Error("Failed to persist cart")
	}
}

func (s *Store) indexOf(productID int64) int {
	for i, l := range s.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}
