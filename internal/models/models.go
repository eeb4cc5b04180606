package models

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Persisted blob keys.
const (
	KeyProducts  = "sole_stride_products"
	KeyCart      = "sole_stride_cart"
	KeyOrders    = "sole_stride_orders"
	KeyAdminAuth = "sole_stride_admin_auth"
	KeyReviews   = "sole_stride_reviews"
)

type Product struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	ImageURL       string          `json:"imageUrl"`
	Price          decimal.Decimal `json:"price"`
	AvailableSizes []string        `json:"availableSizes"`
	Description    string          `json:"description"`
	DateAdded      time.Time       `json:"dateAdded"`
	StockQuantity  int             `json:"stockQuantity"`
	Version        int             `json:"version"`
}

func (p Product) Clone() Product {
	p.AvailableSizes = slices.Clone(p.AvailableSizes)
	return p
}

func (p Product) HasSize(size string) bool {
	return slices.Contains(p.AvailableSizes, size)
}

type CartItem struct {
	Product      Product `json:"product"`
	SelectedSize string  `json:"selectedSize"`
	Quantity     int     `json:"quantity"`
}

func (c CartItem) Clone() CartItem {
	c.Product = c.Product.Clone()
	return c
}

func (c CartItem) Matches(productID, size string) bool {
	return c.Product.ID == productID && c.SelectedSize == size
}

func (c CartItem) LineTotal() decimal.Decimal {
	return c.Product.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

type CustomerInfo struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	return slices.Contains(OrderStatuses, s)
}

type Order struct {
	ID           string          `json:"id"`
	Items        []CartItem      `json:"items"`
	CustomerInfo CustomerInfo    `json:"customerInfo"`
	Total        decimal.Decimal `json:"total"`
	OrderDate    time.Time       `json:"orderDate"`
	Status       OrderStatus     `json:"status"`
}

func (o Order) Clone() Order {
	o.Items = CloneCart(o.Items)
	return o
}

type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Date      time.Time `json:"date"`
}

// ReviewSummary is the per-product aggregate shown next to a listing.
type ReviewSummary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

const AnonymousReviewer = "Anonymous"

func CloneCart(items []CartItem) []CartItem {
	if items == nil {
		return nil
	}
	out := make([]CartItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

// Subtotal sums the line totals of items.
func Subtotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
