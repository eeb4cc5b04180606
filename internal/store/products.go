package store

import (
	"context"
	"slices"
	"strings"

	"github.com/safar/solestride/internal/models"
	"go.uber.org/zap"
)

func (s *Storefront) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneProducts(s.products)
}

// Product reports false when id is not in the catalog.
func (s *Storefront) Product(id string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return models.Product{}, false
	}
	return s.products[i].Clone(), true
}

func (s *Storefront) ListProducts(page, pageSize int) *OffsetPage[models.Product] {
	s.mu.Lock()
	defer s.mu.Unlock()

	return paginate(s.products, page, pageSize, models.Product.Clone)
}

func (s *Storefront) AddProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	if err := in.Validate(); err != nil {
		return models.Product{}, err
	}
	in = in.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	product := models.Product{
		ID:             s.newID("prod"),
		Title:          in.Title,
		ImageURL:       in.ImageURL,
		Price:          in.Price,
		AvailableSizes: in.AvailableSizes,
		Description:    in.Description,
		DateAdded:      s.now().UTC(),
		StockQuantity:  in.StockQuantity,
		Version:        1,
	}

	products := append(cloneProducts(s.products), product)
	if err := s.save(ctx, blob{models.KeyProducts, products}); err != nil {
		return models.Product{}, err
	}
	s.products = products

	s.logger.Info("Product added", zap.String("product_id", product.ID), zap.String("title", product.Title))
	return product.Clone(), nil
}

// UpdateProduct replaces the editable fields of id, keeping its ID and
// DateAdded. A non-zero in.Version must match the stored version.
func (s *Storefront) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (models.Product, error) {
	if err := in.Validate(); err != nil {
		return models.Product{}, err
	}
	in = in.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return models.Product{}, ErrProductNotFound
	}
	current := s.products[i]
	if in.Version != 0 && in.Version != current.Version {
		return models.Product{}, ErrOptimisticLockFailed
	}

	updated := models.Product{
		ID:             current.ID,
		Title:          in.Title,
		ImageURL:       in.ImageURL,
		Price:          in.Price,
		AvailableSizes: in.AvailableSizes,
		Description:    in.Description,
		DateAdded:      current.DateAdded,
		StockQuantity:  in.StockQuantity,
		Version:        current.Version + 1,
	}

	products := cloneProducts(s.products)
	products[i] = updated
	if err := s.save(ctx, blob{models.KeyProducts, products}); err != nil {
		return models.Product{}, err
	}
	s.products = products

	s.logger.Info("Product updated", zap.String("product_id", id), zap.Int("version", updated.Version))
	return updated.Clone(), nil
}

// DeleteProduct removes id from the catalog. Orders keep their snapshots.
func (s *Storefront) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return ErrProductNotFound
	}

	products := slices.Delete(cloneProducts(s.products), i, i+1)
	if err := s.save(ctx, blob{models.KeyProducts, products}); err != nil {
		return err
	}
	s.products = products

	s.logger.Info("Product deleted", zap.String("product_id", id))
	return nil
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

var sortColumns = map[string]func(a, b models.Product) int{
	"id":    func(a, b models.Product) int { return strings.Compare(a.ID, b.ID) },
	"title": func(a, b models.Product) int { return strings.Compare(a.Title, b.Title) },
	"price": func(a, b models.Product) int { return a.Price.Cmp(b.Price) },
	"stockQuantity": func(a, b models.Product) int {
		return a.StockQuantity - b.StockQuantity
	},
	"dateAdded": func(a, b models.Product) int { return a.DateAdded.Compare(b.DateAdded) },
}

// SortProducts returns a sorted copy of products. An unknown or empty column
// keeps the input order.
func SortProducts(products []models.Product, column string, dir SortDirection) []models.Product {
	out := cloneProducts(products)

	cmp, ok := sortColumns[column]
	if !ok {
		return out
	}

	slices.SortStableFunc(out, func(a, b models.Product) int {
		if dir == SortDesc {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
	return out
}

func (s *Storefront) productIndex(id string) int {
	return slices.IndexFunc(s.products, func(p models.Product) bool { return p.ID == id })
}

func cloneProducts(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}
