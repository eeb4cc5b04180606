// Package store owns the storefront state: catalog, cart, orders and
// reviews. A Storefront is the only mutation entry point; every mutation
// works on copies, persists the touched collections to the blob store and
// only then swaps them in, so a failed write leaves state unchanged.
// Readers always receive deep copies.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/safar/solestride/internal/kv"
	"github.com/safar/solestride/internal/models"
	"go.uber.org/zap"
)

type Storefront struct {
	mu     sync.Mutex
	kv     kv.Store
	logger *zap.Logger
	now    func() time.Time
	token  func() string

	products []models.Product
	cart     []models.CartItem
	orders   []models.Order
	reviews  []models.Review
}

type Option func(*Storefront)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Storefront) { s.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(s *Storefront) { s.now = now }
}

// WithTokenSource replaces the random component of generated ids.
func WithTokenSource(token func() string) Option {
	return func(s *Storefront) { s.token = token }
}

// Open loads every collection from store. An absent or empty catalog or
// review list is replaced by the built-in sample data, which is written back.
func Open(ctx context.Context, store kv.Store, opts ...Option) (*Storefront, error) {
	s := &Storefront{
		kv:     store,
		logger: zap.NewNop(),
		now:    time.Now,
		token:  randomToken,
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.products, err = load[models.Product](ctx, store, models.KeyProducts); err != nil {
		return nil, err
	}
	if s.cart, err = load[models.CartItem](ctx, store, models.KeyCart); err != nil {
		return nil, err
	}
	if s.orders, err = load[models.Order](ctx, store, models.KeyOrders); err != nil {
		return nil, err
	}
	if s.reviews, err = load[models.Review](ctx, store, models.KeyReviews); err != nil {
		return nil, err
	}

	var seeds []blob
	if len(s.products) == 0 {
		s.products = SeedProducts()
		seeds = append(seeds, blob{models.KeyProducts, s.products})
	}
	if len(s.reviews) == 0 {
		s.reviews = SeedReviews()
		seeds = append(seeds, blob{models.KeyReviews, s.reviews})
	}
	if len(seeds) > 0 {
		if err := s.save(ctx, seeds...); err != nil {
			return nil, fmt.Errorf("seed storefront: %w", err)
		}
		s.logger.Info("Seeded storefront", zap.Int("products", len(s.products)), zap.Int("reviews", len(s.reviews)))
	}

	s.logger.Debug("Storefront loaded",
		zap.Int("products", len(s.products)),
		zap.Int("cart_items", len(s.cart)),
		zap.Int("orders", len(s.orders)),
		zap.Int("reviews", len(s.reviews)))

	return s, nil
}

type blob struct {
	key   string
	value any
}

func (s *Storefront) save(ctx context.Context, blobs ...blob) error {
	entries := make([]kv.Entry, 0, len(blobs))
	for _, b := range blobs {
		data, err := json.Marshal(b.value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", b.key, err)
		}
		entries = append(entries, kv.Entry{Key: b.key, Value: data})
	}

	if err := s.kv.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("persist storefront: %w", err)
	}
	return nil
}

func load[T any](ctx context.Context, store kv.Store, key string) ([]T, error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("load %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *Storefront) newID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, s.now().UnixMilli(), s.token())
}

func randomToken() string {
	return uuid.NewString()[:8]
}
