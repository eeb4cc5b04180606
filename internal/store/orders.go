package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/safar/solestride/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Checkout validates the customer, prices the current cart and places the
// order with that subtotal.
func (s *Storefront) Checkout(ctx context.Context, info models.CustomerInfo) (models.Order, error) {
	info = info.Normalize()
	if err := info.Validate(); err != nil {
		return models.Order{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cart) == 0 {
		return models.Order{}, ErrCartEmpty
	}
	return s.placeOrder(ctx, info, models.Subtotal(s.cart))
}

// PlaceOrder turns the cart into a Pending order. Callers validate the
// customer and supply the total; it is stored as given. Stock of every
// product in the cart drops by the ordered quantity, the order is appended
// and the cart emptied, all persisted in one batch. It fails with
// ErrInsufficientStock, leaving everything untouched, when the cart's sizes
// of one product together exceed that product's stock.
func (s *Storefront) PlaceOrder(ctx context.Context, info models.CustomerInfo, total decimal.Decimal) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.placeOrder(ctx, info, total)
}

func (s *Storefront) placeOrder(ctx context.Context, info models.CustomerInfo, total decimal.Decimal) (models.Order, error) {
	if len(s.cart) == 0 {
		return models.Order{}, ErrCartEmpty
	}

	ordered := make(map[string]int)
	for _, item := range s.cart {
		ordered[item.Product.ID] += item.Quantity
	}

	products := cloneProducts(s.products)
	for i := range products {
		qty, ok := ordered[products[i].ID]
		if !ok {
			continue
		}
		if qty > products[i].StockQuantity {
			return models.Order{}, fmt.Errorf("%w: %s has %d, cart holds %d",
				ErrInsufficientStock, products[i].ID, products[i].StockQuantity, qty)
		}
		products[i].StockQuantity -= qty
		products[i].Version++
		delete(ordered, products[i].ID)
	}
	for id := range ordered {
		s.logger.Warn("Ordered product no longer in catalog", zap.String("product_id", id))
	}

	order := models.Order{
		ID:           s.newOrderID(),
		Items:        cloneCart(s.cart),
		CustomerInfo: info,
		Total:        total,
		OrderDate:    s.now().UTC(),
		Status:       models.OrderStatusPending,
	}

	orders := append(cloneOrders(s.orders), order)
	cart := []models.CartItem{}

	err := s.save(ctx,
		blob{models.KeyProducts, products},
		blob{models.KeyOrders, orders},
		blob{models.KeyCart, cart},
	)
	if err != nil {
		return models.Order{}, err
	}

	s.products = products
	s.orders = orders
	s.cart = cart

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.Total.StringFixed(2)))
	return order.Clone(), nil
}

// newOrderID draws ids until one is unused; the random component makes a
// second draw practically unreachable.
func (s *Storefront) newOrderID() string {
	for {
		id := s.newID("ORD")
		if s.orderIndex(id) < 0 {
			return id
		}
	}
}

func (s *Storefront) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneOrders(s.orders)
}

// Order reports false when id is unknown.
func (s *Storefront) Order(id string) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.orderIndex(id)
	if i < 0 {
		return models.Order{}, false
	}
	return s.orders[i].Clone(), true
}

func (s *Storefront) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.orderIndex(id)
	if i < 0 {
		return models.Order{}, ErrOrderNotFound
	}

	orders := cloneOrders(s.orders)
	previous := orders[i].Status
	orders[i].Status = status
	if err := s.save(ctx, blob{models.KeyOrders, orders}); err != nil {
		return models.Order{}, err
	}
	s.orders = orders

	s.logger.Info("Order status updated",
		zap.String("order_id", id),
		zap.String("from", string(previous)),
		zap.String("to", string(status)))
	return orders[i].Clone(), nil
}

// PendingOrders returns every order not yet Delivered.
func (s *Storefront) PendingOrders() []models.Order {
	return s.filterOrders(func(o models.Order) bool { return o.Status != models.OrderStatusDelivered })
}

func (s *Storefront) CompletedOrders() []models.Order {
	return s.filterOrders(func(o models.Order) bool { return o.Status == models.OrderStatusDelivered })
}

// NextPendingOrder returns the oldest order still in Pending.
func (s *Storefront) NextPendingOrder() (models.Order, bool) {
	pending := s.filterOrders(func(o models.Order) bool { return o.Status == models.OrderStatusPending })
	if len(pending) == 0 {
		return models.Order{}, false
	}

	oldest := pending[0]
	for _, o := range pending[1:] {
		if o.OrderDate.Before(oldest.OrderDate) {
			oldest = o
		}
	}
	return oldest, true
}

// ListOrdersCursor pages through orders newest first.
func (s *Storefront) ListOrdersCursor(cursor string, limit int) (*CursorPage[models.Order], error) {
	cursorData, err := DecodeCursor(cursor)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	if limit < 1 {
		limit = 20
	}

	orders := s.Orders()
	slices.SortStableFunc(orders, func(a, b models.Order) int {
		if c := b.OrderDate.Compare(a.OrderDate); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})

	if cursor != "" {
		orders = slices.DeleteFunc(orders, func(o models.Order) bool {
			return !cursorData.after(o.OrderDate, o.ID)
		})
	}

	hasMore := len(orders) > limit
	if hasMore {
		orders = orders[:limit]
	}

	var nextCursor string
	if hasMore && len(orders) > 0 {
		lastOrder := orders[len(orders)-1]
		nextCursor = EncodeCursor(OrderCursor{
			OrderDate: lastOrder.OrderDate,
			ID:        lastOrder.ID,
		})
	}

	return &CursorPage[models.Order]{
		Items:      orders,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func (s *Storefront) filterOrders(keep func(models.Order) bool) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Order{}
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, o.Clone())
		}
	}
	return out
}

func (s *Storefront) orderIndex(id string) int {
	return slices.IndexFunc(s.orders, func(o models.Order) bool { return o.ID == id })
}

func cloneOrders(orders []models.Order) []models.Order {
	out := make([]models.Order, len(orders))
	for i, o := range orders {
		out[i] = o.Clone()
	}
	return out
}
