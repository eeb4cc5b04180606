package store

import (
	"time"

	"github.com/safar/solestride/internal/models"
	"github.com/shopspring/decimal"
)

// SeedProducts returns the built-in sample catalog.
func SeedProducts() []models.Product {
	return []models.Product{
		{
			ID:             "prod1",
			Title:          "Sporty Air Max",
			ImageURL:       "https://picsum.photos/400/300?random=1",
			Price:          decimal.RequireFromString("120.00"),
			AvailableSizes: []string{"US7", "US8", "US9", "US10"},
			Description:    "Lightweight and breathable, perfect for running and everyday wear. Features advanced cushioning for maximum comfort.",
			DateAdded:      seedTime("2023-01-15T10:00:00Z"),
			StockQuantity:  10,
			Version:        1,
		},
		{
			ID:             "prod2",
			Title:          "Classic Leather Boots",
			ImageURL:       "https://picsum.photos/400/300?random=2",
			Price:          decimal.RequireFromString("180.00"),
			AvailableSizes: []string{"US8", "US9", "US10", "US11"},
			Description:    "Durable leather boots with a timeless design. Ideal for both casual outings and rugged adventures.",
			DateAdded:      seedTime("2023-02-20T11:30:00Z"),
			StockQuantity:  15,
			Version:        1,
		},
		{
			ID:             "prod3",
			Title:          "Elegant High Heels",
			ImageURL:       "https://picsum.photos/400/300?random=3",
			Price:          decimal.RequireFromString("95.00"),
			AvailableSizes: []string{"US6", "US7", "US8", "US9"},
			Description:    "Sophisticated high heels designed for elegance and comfort. Perfect for special occasions.",
			DateAdded:      seedTime("2023-03-01T14:00:00Z"),
			StockQuantity:  7,
			Version:        1,
		},
		{
			ID:             "prod4",
			Title:          "Comfortable Sneakers",
			ImageURL:       "https://picsum.photos/400/300?random=4",
			Price:          decimal.RequireFromString("85.00"),
			AvailableSizes: []string{"US7", "US8", "US9", "US10", "US11"},
			Description:    "All-day comfort with a stylish look. Great for walking, light sports, or just relaxing.",
			DateAdded:      seedTime("2023-04-10T09:15:00Z"),
			StockQuantity:  20,
			Version:        1,
		},
		{
			ID:             "prod5",
			Title:          "Kids' Fun Trainers",
			ImageURL:       "https://picsum.photos/400/300?random=5",
			Price:          decimal.RequireFromString("50.00"),
			AvailableSizes: []string{"KID10", "KID11", "KID12", "KID13"},
			Description:    "Colorful and durable trainers for active kids. Designed for play and everyday adventures.",
			DateAdded:      seedTime("2023-05-22T16:45:00Z"),
			StockQuantity:  12,
			Version:        1,
		},
		{
			ID:             "prod6",
			Title:          "Hiking Trail Shoes",
			ImageURL:       "https://picsum.photos/400/300?random=6",
			Price:          decimal.RequireFromString("140.00"),
			AvailableSizes: []string{"US9", "US10", "US11", "US12"},
			Description:    "Robust and waterproof hiking shoes, providing excellent grip and support on challenging terrains.",
			DateAdded:      seedTime("2023-06-05T08:00:00Z"),
			StockQuantity:  8,
			Version:        1,
		},
	}
}

// SeedReviews returns the built-in sample reviews.
func SeedReviews() []models.Review {
	return []models.Review{
		{
			ID:        "rev1",
			ProductID: "prod1",
			UserName:  "Rajesh K.",
			Rating:    5,
			Comment:   "These shoes are incredibly comfortable and stylish. Perfect for my daily runs!",
			Date:      seedTime("2024-07-01T09:00:00Z"),
		},
		{
			ID:        "rev2",
			ProductID: "prod1",
			UserName:  "Priya S.",
			Rating:    4,
			Comment:   "Great value for money. A bit snug at first but broke in quickly. Would recommend.",
			Date:      seedTime("2024-07-03T14:30:00Z"),
		},
		{
			ID:        "rev3",
			ProductID: "prod2",
			UserName:  "Amit V.",
			Rating:    5,
			Comment:   "Classic design and very durable. I wear them everywhere!",
			Date:      seedTime("2024-06-28T11:00:00Z"),
		},
		{
			ID:        "rev4",
			ProductID: "prod3",
			UserName:  "Sneha L.",
			Rating:    3,
			Comment:   "Beautiful heels but a little uncomfortable for long periods. Still love them for events.",
			Date:      seedTime("2024-07-02T18:00:00Z"),
		},
		{
			ID:        "rev5",
			ProductID: "prod4",
			UserName:  "Karthik R.",
			Rating:    5,
			Comment:   "Best everyday sneakers. Super comfortable for long walks.",
			Date:      seedTime("2024-07-04T10:00:00Z"),
		},
	}
}

func seedTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}
