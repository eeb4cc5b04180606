package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/safar/solestride/internal/config"
	"github.com/safar/solestride/internal/describe"
	"github.com/safar/solestride/internal/kv"
	"github.com/safar/solestride/internal/models"
	"github.com/safar/solestride/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "store.db")
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("STORAGE_DRIVER", config.DriverSQLite)
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	a := &app{}
	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	a.close()
	return out.String(), err
}

func placeOrder(t *testing.T) models.Order {
	t.Helper()
	ctx := context.Background()

	cfg, err := config.Load()
	require.NoError(t, err)
	blobs, err := kv.Open(ctx, cfg)
	require.NoError(t, err)
	defer blobs.Close()

	sf, err := store.Open(ctx, blobs)
	require.NoError(t, err)
	require.NoError(t, sf.AddToCart(ctx, "prod4", "US9", 2))
	order, err := sf.PlaceOrder(ctx, models.CustomerInfo{Name: "Asha", Mobile: "9876543210", Address: "MG Road"}, sf.CartSubtotal())
	require.NoError(t, err)
	return order
}

func TestSeed(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "seed")
	require.NoError(t, err)
	assert.Equal(t, "6 products, 0 orders\n", out)

	out, err = run(t, "seed", "--reset")
	require.NoError(t, err)
	assert.Equal(t, "6 products, 0 orders\n", out)
}

func TestProductsList(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "products", "list", "--sort", "price", "--dir", "desc", "-o", "json")
	require.NoError(t, err)

	var products []models.Product
	require.NoError(t, json.Unmarshal([]byte(out), &products))
	require.Len(t, products, 6)
	assert.Equal(t, "prod2", products[0].ID)

	out, err = run(t, "products", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Sporty Air Max")
	assert.Contains(t, out, "US7,US8,US9,US10")
}

func TestOrdersCommands(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "orders", "next")
	require.NoError(t, err)
	assert.Equal(t, "No pending orders\n", out)

	order := placeOrder(t)

	out, err = run(t, "orders", "list", "--status", "pending")
	require.NoError(t, err)
	assert.Contains(t, out, order.ID)
	assert.Contains(t, out, "170.00")

	out, err = run(t, "orders", "status", order.ID, "Delivered")
	require.NoError(t, err)
	assert.Equal(t, "Order "+order.ID+" marked as Delivered\n", out)

	out, err = run(t, "orders", "list", "--status", "completed", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "status: Delivered")

	_, err = run(t, "orders", "status", order.ID, "Lost")
	assert.ErrorIs(t, err, store.ErrInvalidStatus)

	_, err = run(t, "orders", "status", "ORD-missing", "Shipped")
	assert.ErrorIs(t, err, store.ErrOrderNotFound)

	_, err = run(t, "orders", "list", "--status", "weird")
	assert.Error(t, err)
}

func TestSales(t *testing.T) {
	setupEnv(t)
	placeOrder(t)

	out, err := run(t, "sales", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "totalOrders: 1")
	assert.Contains(t, out, "quantitySold: 2")

	out, err = run(t, "sales")
	require.NoError(t, err)
	assert.Contains(t, out, "Comfortable Sneakers (2 sold)")
}

func TestLoginLogout(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "login", "--username", "admin", "--password", "wrong")
	assert.EqualError(t, err, "invalid username or password")

	out, err := run(t, "login", "--username", "admin", "--password", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "Logged in\n", out)

	out, err = run(t, "logout")
	require.NoError(t, err)
	assert.Equal(t, "Logged out\n", out)
}

func TestDescribeWithoutKey(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "describe", "--title", "Trail Runner", "--price", "110", "--size", "us8", "--size", "us9")
	require.NoError(t, err)
	assert.Equal(t, describe.MessageMissingKey+"\n", out)

	_, err = run(t, "describe", "--title", "Trail Runner", "--price", "cheap")
	assert.Error(t, err)
}

func TestUnknownOutputFormat(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "sales", "-o", "xml")
	assert.Error(t, err)
}
