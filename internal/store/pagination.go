package store

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

type CursorPage[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

type OffsetPage[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

type OrderCursor struct {
	OrderDate time.Time `json:"order_date"`
	ID        string    `json:"id"`
}

// after reports whether an order sorts after the cursor in newest-first order.
func (c OrderCursor) after(orderDate time.Time, id string) bool {
	if !orderDate.Equal(c.OrderDate) {
		return orderDate.Before(c.OrderDate)
	}
	return id < c.ID
}

func EncodeCursor(cursor OrderCursor) string {
	data, err := json.Marshal(cursor)
	if err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(data)
}

// DecodeCursor returns the zero cursor, meaning "from the start", for "".
func DecodeCursor(encoded string) (OrderCursor, error) {
	var cursor OrderCursor
	if encoded == "" {
		return cursor, nil
	}

	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return cursor, err
	}

	err = json.Unmarshal(data, &cursor)
	return cursor, err
}

func paginate[T any](items []T, page, pageSize int, clone func(T) T) *OffsetPage[T] {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	total := len(items)
	totalPages := total / pageSize
	if total%pageSize > 0 {
		totalPages++
	}

	out := []T{}
	if page <= totalPages {
		offset := (page - 1) * pageSize
		end := min(offset+pageSize, total)
		for _, item := range items[offset:end] {
			out = append(out, clone(item))
		}
	}

	return &OffsetPage[T]{
		Items:      out,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
