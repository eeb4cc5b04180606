package store

import (
	"context"
	"slices"

	"github.com/safar/solestride/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (s *Storefront) Cart() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneCart(s.cart)
}

func (s *Storefront) CartSubtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.Subtotal(s.cart)
}

// AddToCart adds quantity units of (productID, size) to the cart. The call is
// all-or-nothing: if the entry would exceed the product's stock the cart is
// left untouched and a *StockError carrying the remaining allowance is
// returned. Size membership is the caller's concern.
func (s *Storefront) AddToCart(ctx context.Context, productID, size string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pi := s.productIndex(productID)
	if pi < 0 {
		return ErrProductNotFound
	}
	product := s.products[pi]

	ci := cartIndex(s.cart, productID, size)
	existing := 0
	if ci >= 0 {
		existing = s.cart[ci].Quantity
	}

	if existing+quantity > product.StockQuantity {
		return &StockError{
			ProductID: product.ID,
			Title:     product.Title,
			Requested: quantity,
			Remaining: max(product.StockQuantity-existing, 0),
		}
	}

	cart := cloneCart(s.cart)
	if ci >= 0 {
		cart[ci].Quantity += quantity
		cart[ci].Product = product.Clone()
	} else {
		cart = append(cart, models.CartItem{
			Product:      product.Clone(),
			SelectedSize: size,
			Quantity:     quantity,
		})
	}

	if err := s.save(ctx, blob{models.KeyCart, cart}); err != nil {
		return err
	}
	s.cart = cart

	s.logger.Debug("Added to cart",
		zap.String("product_id", productID),
		zap.String("size", size),
		zap.Int("quantity", quantity),
		zap.Int("cart_quantity", existing+quantity))
	return nil
}

// UpdateCartQuantity sets the entry's quantity, silently clamped to the
// product's current stock. A quantity of zero or less removes the entry.
// Updating an absent entry is a no-op.
func (s *Storefront) UpdateCartQuantity(ctx context.Context, productID, size string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ci := cartIndex(s.cart, productID, size)
	if ci < 0 {
		return nil
	}

	cart := cloneCart(s.cart)
	item := &cart[ci]

	stock := item.Product.StockQuantity
	if pi := s.productIndex(productID); pi >= 0 {
		item.Product = s.products[pi].Clone()
		stock = item.Product.StockQuantity
	}

	item.Quantity = min(quantity, stock)
	if item.Quantity <= 0 {
		cart = slices.Delete(cart, ci, ci+1)
	}

	if err := s.save(ctx, blob{models.KeyCart, cart}); err != nil {
		return err
	}
	s.cart = cart

	s.logger.Debug("Cart quantity updated",
		zap.String("product_id", productID),
		zap.String("size", size),
		zap.Int("requested", quantity),
		zap.Int("stock", stock))
	return nil
}

// RemoveFromCart deletes the (productID, size) entry; absent is a no-op.
func (s *Storefront) RemoveFromCart(ctx context.Context, productID, size string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ci := cartIndex(s.cart, productID, size)
	if ci < 0 {
		return nil
	}

	cart := slices.Delete(cloneCart(s.cart), ci, ci+1)
	if err := s.save(ctx, blob{models.KeyCart, cart}); err != nil {
		return err
	}
	s.cart = cart

	s.logger.Debug("Removed from cart", zap.String("product_id", productID), zap.String("size", size))
	return nil
}

func (s *Storefront) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := []models.CartItem{}
	if err := s.save(ctx, blob{models.KeyCart, cart}); err != nil {
		return err
	}
	s.cart = cart
	return nil
}

func cartIndex(cart []models.CartItem, productID, size string) int {
	return slices.IndexFunc(cart, func(item models.CartItem) bool {
		return item.Matches(productID, size)
	})
}

func cloneCart(cart []models.CartItem) []models.CartItem {
	out := models.CloneCart(cart)
	if out == nil {
		out = []models.CartItem{}
	}
	return out
}
