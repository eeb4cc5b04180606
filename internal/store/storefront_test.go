package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/safar/solestride/internal/kv"
	"github.com/safar/solestride/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTestStorefront(t *testing.T, opts ...Option) (*Storefront, *flakyStore) {
	t.Helper()

	backing := &flakyStore{MemoryStore: kv.NewMemoryStore()}
	sf, err := Open(context.Background(), backing, append([]Option{WithClock(fixedClock)}, opts...)...)
	require.NoError(t, err)
	return sf, backing
}

// flakyStore fails every write while fail is set.
type flakyStore struct {
	*kv.MemoryStore
	fail bool
}

var errWriteFailed = errors.New("disk full")

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if f.fail {
		return errWriteFailed
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func (f *flakyStore) SetMany(ctx context.Context, entries []kv.Entry) error {
	if f.fail {
		return errWriteFailed
	}
	return f.MemoryStore.SetMany(ctx, entries)
}

func decodeBlob[T any](t *testing.T, store kv.Store, key string) []T {
	t.Helper()

	data, err := store.Get(context.Background(), key)
	require.NoError(t, err)

	var out []T
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestOpenSeedsEmptyStore(t *testing.T) {
	sf, backing := newTestStorefront(t)

	assert.Len(t, sf.Products(), 6)
	assert.Len(t, decodeBlob[models.Product](t, backing, models.KeyProducts), 6)
	assert.Len(t, decodeBlob[models.Review](t, backing, models.KeyReviews), 5)
	assert.Empty(t, sf.Cart())
	assert.Empty(t, sf.Orders())

	prod1, ok := sf.Product("prod1")
	require.True(t, ok)
	assert.Equal(t, 10, prod1.StockQuantity)
	assert.Equal(t, "120", prod1.Price.String())
}

func TestOpenReseedsEmptyCollections(t *testing.T) {
	ctx := context.Background()
	backing := kv.NewMemoryStore()
	require.NoError(t, backing.Set(ctx, models.KeyProducts, []byte(`[]`)))
	require.NoError(t, backing.Set(ctx, models.KeyReviews, []byte(`null`)))

	sf, err := Open(ctx, backing)
	require.NoError(t, err)
	assert.Len(t, sf.Products(), 6)
	assert.Len(t, sf.ProductReviews("prod1"), 2)
}

func TestOpenKeepsStoredCatalog(t *testing.T) {
	ctx := context.Background()
	backing := kv.NewMemoryStore()
	require.NoError(t, backing.Set(ctx, models.KeyProducts, []byte(`[{"id":"only","title":"Only","price":"10","stockQuantity":1}]`)))

	sf, err := Open(ctx, backing)
	require.NoError(t, err)

	products := sf.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "only", products[0].ID)
}

func TestOpenRejectsCorruptBlob(t *testing.T) {
	ctx := context.Background()
	backing := kv.NewMemoryStore()
	require.NoError(t, backing.Set(ctx, models.KeyCart, []byte(`{not json`)))

	_, err := Open(ctx, backing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), models.KeyCart)
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	sf, backing := newTestStorefront(t)

	require.NoError(t, sf.AddToCart(ctx, "prod2", "US9", 2))
	order, err := sf.PlaceOrder(ctx, validCustomer(), sf.CartSubtotal())
	require.NoError(t, err)
	require.NoError(t, sf.AddToCart(ctx, "prod3", "US7", 1))

	reopened, err := Open(ctx, backing)
	require.NoError(t, err)

	got, ok := reopened.Order(order.ID)
	require.True(t, ok)
	assert.True(t, got.Total.Equal(order.Total))

	cart := reopened.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, "prod3", cart[0].Product.ID)

	prod2, ok := reopened.Product("prod2")
	require.True(t, ok)
	assert.Equal(t, 13, prod2.StockQuantity)
}

func TestFailedWriteLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	sf, backing := newTestStorefront(t)
	require.NoError(t, sf.AddToCart(ctx, "prod1", "US8", 2))

	backing.fail = true

	assert.ErrorIs(t, sf.AddToCart(ctx, "prod1", "US8", 1), errWriteFailed)
	assert.ErrorIs(t, sf.ClearCart(ctx), errWriteFailed)
	_, err := sf.PlaceOrder(ctx, validCustomer(), sf.CartSubtotal())
	assert.ErrorIs(t, err, errWriteFailed)

	cart := sf.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity)
	assert.Empty(t, sf.Orders())

	prod1, _ := sf.Product("prod1")
	assert.Equal(t, 10, prod1.StockQuantity)
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	sf, _ := newTestStorefront(t)
	require.NoError(t, sf.AddToCart(ctx, "prod1", "US8", 1))

	products := sf.Products()
	products[0].StockQuantity = 0
	products[0].AvailableSizes[0] = "XX"

	cart := sf.Cart()
	cart[0].Quantity = 99

	prod1, _ := sf.Product("prod1")
	assert.Equal(t, 10, prod1.StockQuantity)
	assert.Equal(t, "US7", prod1.AvailableSizes[0])
	assert.Equal(t, 1, sf.Cart()[0].Quantity)
}
