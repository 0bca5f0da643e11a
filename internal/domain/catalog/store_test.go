package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/pkg/logger"
)

type fakeSource struct {
	products []Product
	err      error
}

func (f *fakeSource) FetchProducts(ctx context.Context) ([]Product, error) {
	return f.products, f.err
}

func sampleProducts() []Product {
	return []Product{
		{ID: 1, Title: "Cotton Kurta", Description: "Hand block printed", Category: "Apparel", Price: decimal.NewFromInt(1000)},
		{ID: 2, Title: "Steel Bottle", Description: "Keeps water cold", Category: "Kitchen", Price: decimal.NewFromInt(450)},
		{ID: 3, Title: "Linen Shirt", Description: "Breathable COTTON blend", Category: "Apparel", Price: decimal.NewFromInt(1800)},
		{ID: 4, Title: "Tea Kettle", Description: "Whistling", Category: "Kitchen", Price: decimal.NewFromInt(900)},
		{ID: 5, Title: "Notebook", Description: "Ruled pages", Category: "Stationery", Price: decimal.NewFromInt(120)},
	}
}

func loadedStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(&fakeSource{products: sampleProducts()}, logger.Discard())
	require.NoError(t, s.Load(context.Background()))
	return s
}

func ids(products []Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	s := loadedStore(t)

	tests := []struct {
		name     string
		query    string
		category string
		want     []int64
	}{
		{"empty matches all", "", "", []int64{1, 2, 3, 4, 5}},
		{"title match", "kettle", "", []int64{4}},
		{"case insensitive description match", "cotton", "", []int64{1, 3}},
		{"query is trimmed", "  bottle ", "", []int64{2}},
		{"category only", "", "Kitchen", []int64{2, 4}},
		{"query and category", "cotton", "Kitchen", []int64{}},
		{"category is exact", "", "apparel", []int64{}},
		{"no match", "bicycle", "", []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(s.Filter(tt.query, tt.category)))
		})
	}
}

func TestCategoriesFirstSeenOrder(t *testing.T) {
	s := loadedStore(t)
	assert.Equal(t, []string{"Apparel", "Kitchen", "Stationery"}, s.Categories())
}

func TestLookup(t *testing.T) {
	s := loadedStore(t)

	p, ok := s.Lookup(3)
	require.True(t, ok)
	assert.Equal(t, "Linen Shirt", p.Title)

	_, ok = s.Lookup(99)
	assert.False(t, ok)
}

func TestLoadFailureKeepsPreviousCatalog(t *testing.T) {
	src := &fakeSource{products: sampleProducts()}
	s := NewStore(src, logger.Discard())
	require.NoError(t, s.Load(context.Background()))
	assert.False(t, s.LoadedAt().IsZero())

	src.err = errors.New("connection refused")
	err := s.Load(context.Background())
	require.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.Len(t, s.Products(), 5)
	assert.ErrorIs(t, s.LastError(), ErrCatalogUnavailable)

	src.err = nil
	require.NoError(t, s.Load(context.Background()))
	assert.NoError(t, s.LastError())
}

func TestLoadRejectsMalformedCatalog(t *testing.T) {
	tests := []struct {
		name     string
		products []Product
	}{
		{"negative price", []Product{{ID: 1, Price: decimal.NewFromInt(-5)}}},
		{"duplicate id", []Product{{ID: 1, Price: decimal.NewFromInt(5)}, {ID: 1, Price: decimal.NewFromInt(6)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(&fakeSource{products: tt.products}, logger.Discard())
			err := s.Load(context.Background())
			assert.ErrorIs(t, err, ErrCatalogUnavailable)
			assert.Empty(t, s.Products())
		})
	}
}

func TestLoadNotifiesSubscribers(t *testing.T) {
	src := &fakeSource{products: sampleProducts()}
	s := NewStore(src, logger.Discard())

	calls := 0
	s.Subscribe(func() { calls++ })

	require.NoError(t, s.Load(context.Background()))
	src.err = errors.New("down")
	_ = s.Load(context.Background())

	assert.Equal(t, 2, calls)
}

func TestFilterIsPure(t *testing.T) {
	s := loadedStore(t)
	before := s.Products()
	_ = s.Filter("cotton", "Apparel")
	assert.Equal(t, before, s.Products())
}
