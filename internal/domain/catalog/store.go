// internal/domain/catalog/store.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/pkg/notify"
)

// Store holds the loaded product list. The list is only ever replaced as a whole.
type Store struct {
	source Source
	log    *logrus.Logger

	mu         sync.RWMutex
	products   []Product
	byID       map[int64]int
	categories []string
	lastErr    error
	loadedAt   time.Time

	changed notify.Notifier
}

// NewStore creates an empty catalog backed by source
func NewStore(source Source, log *logrus.Logger) *Store {
	return &Store{
		source: source,
		log:    log,
		byID:   map[int64]int{},
	}
}

// Load fetches the full collection and replaces the current one. On failure the
// previous collection is kept and the error is remembered for LastError.
func (s *Store) Load(ctx context.Context) error {
	products, err := s.source.FetchProducts(ctx)
	if err == nil {
		err = Validate(products)
	}
	if err != nil && !errors.Is(err, ErrCatalogUnavailable) {
		err = fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	s.mu.Lock()
	if err != nil {
		s.lastErr = err
	} else {
		s.replace(products)
	}
	s.mu.Unlock()

	if err != nil {
		s.log.WithError(err).Warn("Catalog load failed")
	} else {
		s.log.Infof("Catalog loaded with %d products", len(products))
	}

	s.changed.Notify()
	return err
}

func (s *Store) replace(products []Product) {
	s.products = append([]Product(nil), products...)
	s.byID = make(map[int64]int, len(products))
	s.categories = s.categories[:0:0]
	seen := make(map[string]struct{})
	for i, p := range s.products {
		s.byID[p.ID] = i
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			s.categories = append(s.categories, p.Category)
		}
	}
	s.lastErr = nil
	s.loadedAt = time.Now().UTC()
}

// Filter returns, in catalog order, the products whose title or description
// contains query case-insensitively and whose category equals category.
// An empty query or category matches everything.
func (s *Store) Filter(query, category string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Lookup resolves a product by id
func (s *Store) Lookup(id int64) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return Product{}, false
	}
	return s.products[i], true
}

// Products returns a copy of the whole collection
func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Product(nil), s.products...)
}

// Categories returns the distinct categories in first-seen order
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.categories...)
}

// LastError is the error of the most recent failed Load, cleared by a successful one
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// LoadedAt is when the current collection was fetched; zero before the first success
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Subscribe registers fn to run after every Load attempt
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	return s.changed.Subscribe(fn)
}
