package cart

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/pkg/logger"
)

type failingAdapter struct {
	getErr error
	sets   int
}

func (f *failingAdapter) Get(ctx context.Context, key string) (string, error) {
	return "", f.getErr
}

func (f *failingAdapter) Set(ctx context.Context, key, value string) error {
	f.sets++
	return errors.New("disk full")
}

func newStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	return NewStore(mem, "cart", logger.Discard()), mem
}

func persisted(t *testing.T, mem *storage.Memory) string {
	t.Helper()
	raw, err := mem.Get(context.Background(), "cart")
	require.NoError(t, err)
	return raw
}

func TestAdd(t *testing.T) {
	s, mem := newStore(t)

	s.Add(1, 1)
	s.Add(2, 3)
	s.Add(1, 2)
	s.Add(3, 0)

	assert.Equal(t, []Line{{1, 3}, {2, 3}, {3, 1}}, s.Snapshot())
	assert.Equal(t, `[{"id":1,"qty":3},{"id":2,"qty":3},{"id":3,"qty":1}]`, persisted(t, mem))
	assert.Equal(t, 7, s.Count())
}

func TestRemove(t *testing.T) {
	s, mem := newStore(t)
	s.Add(1, 1)
	s.Add(2, 1)

	s.Remove(1)
	once := s.Snapshot()
	s.Remove(1)

	assert.Equal(t, once, s.Snapshot())
	assert.Equal(t, []Line{{2, 1}}, s.Snapshot())
	assert.Equal(t, `[{"id":2,"qty":1}]`, persisted(t, mem))

	s.Remove(42)
	assert.Equal(t, []Line{{2, 1}}, s.Snapshot())
}

func TestSetQuantity(t *testing.T) {
	s, _ := newStore(t)
	s.Add(1, 1)

	s.SetQuantity(1, 5)
	assert.Equal(t, []Line{{1, 5}}, s.Snapshot())

	s.SetQuantity(1, 0)
	assert.Equal(t, []Line{{1, 1}}, s.Snapshot())

	s.SetQuantity(1, -3)
	assert.Equal(t, []Line{{1, 1}}, s.Snapshot())

	s.SetQuantity(9, 4)
	assert.Equal(t, []Line{{1, 1}}, s.Snapshot(), "absent line is not created")
}

func TestIncrementDecrement(t *testing.T) {
	s, _ := newStore(t)
	s.Add(1, 2)

	s.Increment(1)
	assert.Equal(t, 3, s.Snapshot()[0].Quantity)

	s.Decrement(1)
	s.Decrement(1)
	s.Decrement(1)
	assert.Equal(t, 1, s.Snapshot()[0].Quantity, "decrement is floored at 1")

	s.Increment(7)
	s.Decrement(7)
	assert.Len(t, s.Snapshot(), 1)
}

func TestClear(t *testing.T) {
	s, mem := newStore(t)
	s.Add(1, 1)
	s.Add(2, 1)

	s.Clear()
	assert.Empty(t, s.Snapshot())
	assert.Equal(t, "[]", persisted(t, mem))
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _ := newStore(t)
	s.Add(1, 1)

	snap := s.Snapshot()
	snap[0].Quantity = 100
	assert.Equal(t, 1, s.Snapshot()[0].Quantity)
}

func TestInvariantsUnderRandomOperations(t *testing.T) {
	s, mem := newStore(t)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		id := int64(rng.Intn(6))
		switch rng.Intn(6) {
		case 0:
			s.Add(id, rng.Intn(5)-1)
		case 1:
			s.Remove(id)
		case 2:
			s.SetQuantity(id, rng.Intn(7)-3)
		case 3:
			s.Increment(id)
		case 4:
			s.Decrement(id)
		case 5:
			if rng.Intn(20) == 0 {
				s.Clear()
			}
		}

		seen := map[int64]bool{}
		for _, l := range s.Snapshot() {
			require.False(t, seen[l.ProductID], "duplicate line for %d", l.ProductID)
			require.GreaterOrEqual(t, l.Quantity, 1)
			seen[l.ProductID] = true
		}
	}

	restored := NewStore(mem, "cart", logger.Discard())
	require.NoError(t, restored.Restore(context.Background()))
	assert.Equal(t, s.Snapshot(), restored.Snapshot())
}

func TestRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("absent key gives empty cart", func(t *testing.T) {
		s, _ := newStore(t)
		require.NoError(t, s.Restore(ctx))
		assert.Empty(t, s.Snapshot())
	})

	t.Run("invalid json gives empty cart", func(t *testing.T) {
		s, mem := newStore(t)
		require.NoError(t, mem.Set(ctx, "cart", "{oops"))
		require.NoError(t, s.Restore(ctx))
		assert.Empty(t, s.Snapshot())
	})

	t.Run("wrong shape gives empty cart", func(t *testing.T) {
		s, mem := newStore(t)
		require.NoError(t, mem.Set(ctx, "cart", `{"id":1}`))
		require.NoError(t, s.Restore(ctx))
		assert.Empty(t, s.Snapshot())
	})

	t.Run("persisted lines are normalized", func(t *testing.T) {
		s, mem := newStore(t)
		require.NoError(t, mem.Set(ctx, "cart", `[{"id":2,"qty":1},{"id":1,"qty":0},{"id":2,"qty":2},{"id":3,"qty":4}]`))
		require.NoError(t, s.Restore(ctx))
		assert.Equal(t, []Line{{2, 3}, {3, 4}}, s.Snapshot())
	})

	t.Run("storage failure is returned", func(t *testing.T) {
		s := NewStore(&failingAdapter{getErr: errors.New("connection refused")}, "cart", logger.Discard())
		assert.Error(t, s.Restore(ctx))
		assert.Empty(t, s.Snapshot())
	})
}

func TestMutationsSurvivePersistFailure(t *testing.T) {
	adapter := &failingAdapter{}
	s := NewStore(adapter, "cart", logger.Discard())

	s.Add(1, 2)
	s.Increment(1)

	assert.Equal(t, []Line{{1, 3}}, s.Snapshot())
	assert.Equal(t, 2, adapter.sets)
}

func TestSubscribe(t *testing.T) {
	s, _ := newStore(t)

	var counts []int
	unsubscribe := s.Subscribe(func() { counts = append(counts, s.Count()) })

	s.Add(1, 1)
	s.Increment(1)
	s.SetQuantity(99, 3)
	s.Clear()

	assert.Equal(t, []int{1, 2, 0}, counts, "no-op SetQuantity does not notify")

	unsubscribe()
	s.Add(1, 1)
	assert.Len(t, counts, 3)
}

func TestEncodeEmpty(t *testing.T) {
	raw, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestRestoreFromCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "localstorage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	file, err := storage.NewFile(path)
	require.NoError(t, err)

	s := NewStore(file, "cart", logger.Discard())
	require.NoError(t, s.Restore(ctx))
	assert.Empty(t, s.Snapshot())

	// The next mutation rewrites the damaged file.
	s.Add(4, 1)
	raw, err := file.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":4,"qty":1}]`, raw)
}

func TestQuantitiesSaturate(t *testing.T) {
	t.Run("decode merge", func(t *testing.T) {
		lines, err := Decode(`[{"id":1,"qty":9223372036854775807},{"id":1,"qty":1}]`)
		require.NoError(t, err)
		assert.Equal(t, []Line{{ProductID: 1, Quantity: math.MaxInt}}, lines)
	})

	t.Run("add", func(t *testing.T) {
		s, _ := newStore(t)
		s.Add(1, math.MaxInt)
		s.Add(1, 1)
		assert.Equal(t, []Line{{ProductID: 1, Quantity: math.MaxInt}}, s.Snapshot())
	})

	t.Run("increment", func(t *testing.T) {
		s, _ := newStore(t)
		s.Add(1, math.MaxInt)
		s.Increment(1)
		assert.Equal(t, math.MaxInt, s.Snapshot()[0].Quantity)
	})

	t.Run("count", func(t *testing.T) {
		s, _ := newStore(t)
		s.Add(1, math.MaxInt)
		s.Add(2, 5)
		assert.Equal(t, math.MaxInt, s.Count())
	})
}
