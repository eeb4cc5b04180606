package store

import (
	"slices"

	"github.com/safar/solestride/internal/models"
	"github.com/shopspring/decimal"
)

const TopSellerCount = 3

type ProductSales struct {
	Product      models.Product `json:"product"`
	QuantitySold int            `json:"quantitySold"`
}

type SalesSummary struct {
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalOrders  int             `json:"totalOrders"`
	TopSellers   []ProductSales  `json:"topSellers"`
}

// SalesSummary is recomputed from the orders on every call.
func (s *Storefront) SalesSummary() SalesSummary {
	return SummarizeSales(s.Orders(), TopSellerCount)
}

// SummarizeSales totals revenue and ranks products by units sold, keeping
// the first top entries. Ties keep first-sold order.
func SummarizeSales(orders []models.Order, top int) SalesSummary {
	summary := SalesSummary{
		TotalRevenue: decimal.Zero,
		TotalOrders:  len(orders),
		TopSellers:   []ProductSales{},
	}

	index := make(map[string]int)
	var sales []ProductSales
	for _, order := range orders {
		summary.TotalRevenue = summary.TotalRevenue.Add(order.Total)
		for _, item := range order.Items {
			i, ok := index[item.Product.ID]
			if !ok {
				i = len(sales)
				index[item.Product.ID] = i
				sales = append(sales, ProductSales{Product: item.Product.Clone()})
			}
			sales[i].QuantitySold += item.Quantity
		}
	}

	slices.SortStableFunc(sales, func(a, b ProductSales) int {
		return b.QuantitySold - a.QuantitySold
	})
	if len(sales) > top {
		sales = sales[:top]
	}
	summary.TopSellers = append(summary.TopSellers, sales...)

	return summary
}
