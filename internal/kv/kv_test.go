package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/safar/solestride/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) Store {
	t.Helper()

	cfg := config.Default()
	cfg.Storage.Driver = config.DriverSQLite
	cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "kv.db")

	store, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func backends(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": openSQLite(t),
	}
}

func TestStoreGetMissing(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(context.Background(), "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStoreSetGetOverwrite(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.Set(ctx, "products", []byte(`[1]`)))
			require.NoError(t, store.Set(ctx, "products", []byte(`[1,2]`)))

			got, err := store.Get(ctx, "products")
			require.NoError(t, err)
			assert.Equal(t, `[1,2]`, string(got))
		})
	}
}

func TestStoreRemove(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.Set(ctx, "flag", []byte(`true`)))
			require.NoError(t, store.Remove(ctx, "flag"))
			require.NoError(t, store.Remove(ctx, "flag"), "removing an absent key is a no-op")

			_, err := store.Get(ctx, "flag")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStoreSetMany(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.Set(ctx, "cart", []byte(`[{"q":1}]`)))
			require.NoError(t, store.SetMany(ctx, []Entry{
				{Key: "cart", Value: []byte(`[]`)},
				{Key: "orders", Value: []byte(`[{"id":"ORD-1"}]`)},
			}))
			require.NoError(t, store.SetMany(ctx, nil))

			cart, err := store.Get(ctx, "cart")
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(cart))

			orders, err := store.Get(ctx, "orders")
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"ORD-1"}]`, string(orders))
		})
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'z'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	got[1] = 'z'

	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = config.DriverSQLite
	cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	first, err := Open(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "reviews", []byte(`["r1"]`)))
	require.NoError(t, first.Close())

	second, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, "reviews")
	require.NoError(t, err)
	assert.Equal(t, `["r1"]`, string(got))
}

func TestDialectRebind(t *testing.T) {
	assert.Equal(t, `SELECT value FROM kv_blobs WHERE key = $1`, Postgres.rebind(getQuery))
	assert.Equal(t, getQuery, SQLite.rebind(getQuery))
	assert.Contains(t, Postgres.rebind(upsertQuery), "VALUES ($1, $2, CURRENT_TIMESTAMP)")
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = "etcd"

	_, err := Open(context.Background(), cfg)
	assert.Error(t, err)
}
