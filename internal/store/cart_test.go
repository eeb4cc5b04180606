package store

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartRejectsOverStock(t *testing.T) {
	ctx := context.Background()
	sf, _ := newTestStorefront(t)

	require.NoError(t, sf.AddToCart(ctx, "prod1", "US8", 3))

	err := sf.AddToCart(ctx, "prod1", "US8", 8)
	require.ErrorIs(t, err, ErrInsufficientStock)

	var stockErr *StockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 7, stockErr.Remaining)
	assert.Equal(t, 8, stockErr.Requested)
	assert.Equal(t, "cannot add 8 of Sporty Air Max: only 7 left in stock", stockErr.Error())

	cart := sf.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 3, cart[0].Quantity)
}

func TestAddToCartNeverExceedsStock(t *testing.T) {
	ctx := context.Background()
	sf, _ := newTestStorefront(t)

	prod3, _ := sf.Product("prod3")
	stock := prod3.StockQuantity

	for i := 0; i < 5; i++ {
		err := sf.AddToCart(ctx, "prod3", "US7", 2)
		inCart := sf.Cart()[0].Quantity
		assert.LessOrEqual(t, inCart, stock)

		if err != nil {
			var stockErr *StockError
			require.ErrorAs(t, err, &stockErr)
			assert.Equal(t, stock-inCart, stockErr.Remaining)
		}
	}
	assert.Equal(t, 6, sf.Cart()[0].Quantity)
}

func TestAddToCartMergesSameSize(t *testing.T) {
	ctx := context.Background()
	sf, _ := newTestStorefront(t)

	require.NoError(t, sf.AddToCart(ctx, "prod1", "US8", 1))
	require.NoError(t, sf.AddToCart(ctx, "prod1", "US9", 2))
	require.NoError(t, sf.AddToCart(ctx, "prod1", "US8", 4))

	cart := sf.Cart()
	require.Len(t, cart, 2)
	assert.Equal(t, "US8", cart[0].SelectedSize)
	assert.Equal(t, 5, cart[0].Quantity)
	assert.Equal(t, "US9", cart[1].SelectedSize)
	assert.Equal(t, 2, cart[1].Quantity)
}

func TestAddToCartExactStockAllowed(t *testing.T) {
	ctx := context.Background()
	sf, _ := newTestStorefront(t)

	require.NoError(t, sf.AddToCart(ctx, "prod1", "US8", 10))

	err := sf.AddToCart(ctx, "prod1", "US8", 1)
	var stockErr *StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 0, stockErr.Remaining)
}

func TestAddToCartInvalidInput(t *testing.T) {
	ctx := context.Background()
	sf, _ := newTestStorefront(t)

	assert.ErrorIs(t, sf.AddToCart(ctx, "prod1", "US8", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, sf.AddToCart(ctx, "prod1", "US8", -2), ErrInvalidQuantity)
	assert.ErrorIs(t, sf.AddToCart(ctx, "nope", "US8", 1), ErrProductNotFound)
	assert.Empty(t, sf.Cart())
}

func TestUpdateCartQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		want     int // 0 means the entry is gone
	}{
		{"within stock", 4, 4},
		{"above stock clamps", 50, 10},
		{"exact stock", 10, 10},
		{"zero removes", 0, 0},
		{"negative removes", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			sf, _ := newTestStorefront(t)
			require.NoError(t, sf.AddToCart(ctx, "prod1", "US8", 2))

			require.NoError(t, sf.UpdateCartQuantity(ctx, "prod1", "US8", tt.quantity))

			cart := sf.Cart()
			if tt.want == 0 {
				assert.Empty(t, cart)
				return
			}
			require.Len(t, cart, 1)
			assert.Equal(t, tt.want, cart[0].Quantity)
		})
	}
}

func TestUpdateCartQuantityUsesCurrentStock(t *testing.T) {
	ctx := context.Background()
	sf, _ := newTestStorefront(t)
	require.NoError(t, sf.AddToCart(ctx, "prod1", "US8", 2))

	in := inputFrom(t, sf, "prod1")
	in.StockQuantity = 3
	_, err := sf.UpdateProduct(ctx, "prod1", in)
	require.NoError(t, err)

	require.NoError(t, sf.UpdateCartQuantity(ctx, "prod1", "US8", 9))
	cart := sf.Cart()
	assert.Equal(t, 3, cart[0].Quantity)
	assert.Equal(t, 3, cart[0].Product.StockQuantity)
}

func TestUpdateCartQuantityDeletedProductUsesSnapshot(t *testing.T) {
	ctx := context.Background()
	sf, _ := newTestStorefront(t)
	require.NoError(t, sf.AddToCart(ctx, "prod6", "US9", 1))
	require.NoError(t, sf.DeleteProduct(ctx, "prod6"))

	require.NoError(t, sf.UpdateCartQuantity(ctx, "prod6", "US9", 100))
	assert.Equal(t, 8, sf.Cart()[0].Quantity)
}

func TestUpdateCartQuantityAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	sf, _ := newTestStorefront(t)

	require.NoError(t, sf.UpdateCartQuantity(ctx, "prod1", "US8", 3))
	assert.Empty(t, sf.Cart())
}

func TestRemoveFromCart(t *testing.T) {
	ctx := context.Background()
	sf, _ := newTestStorefront(t)
	require.NoError(t, sf.AddToCart(ctx, "prod1", "US8", 1))
	require.NoError(t, sf.AddToCart(ctx, "prod2", "US9", 1))

	require.NoError(t, sf.RemoveFromCart(ctx, "prod1", "US9"), "wrong size is a no-op")
	require.Len(t, sf.Cart(), 2)

	require.NoError(t, sf.RemoveFromCart(ctx, "prod1", "US8"))
	cart := sf.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, "prod2", cart[0].Product.ID)
}

func TestClearCartAndSubtotal(t *testing.T) {
	ctx := context.Background()
	sf, _ := newTestStorefront(t)
	require.NoError(t, sf.AddToCart(ctx, "prod1", "US8", 2))
	require.NoError(t, sf.AddToCart(ctx, "prod3", "US6", 1))

	assert.True(t, sf.CartSubtotal().Equal(decimal.RequireFromString("335.00")))

	require.NoError(t, sf.ClearCart(ctx))
	assert.Empty(t, sf.Cart())
	assert.True(t, sf.CartSubtotal().IsZero())
}
