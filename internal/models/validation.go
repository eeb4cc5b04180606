package models

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError maps form fields to human-readable messages.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

var mobilePattern = regexp.MustCompile(`^\d{10}$`)

func (c CustomerInfo) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(c.Name) == "" {
		verr.add("name", "Name is required")
	}
	mobile := strings.TrimSpace(c.Mobile)
	switch {
	case mobile == "":
		verr.add("mobile", "Mobile number is required")
	case !mobilePattern.MatchString(mobile):
		verr.add("mobile", "Mobile number must be 10 digits")
	}
	if strings.TrimSpace(c.Address) == "" {
		verr.add("address", "Address is required")
	}
	return verr.orNil()
}

// Normalize trims every field.
func (c CustomerInfo) Normalize() CustomerInfo {
	return CustomerInfo{
		Name:    strings.TrimSpace(c.Name),
		Mobile:  strings.TrimSpace(c.Mobile),
		Address: strings.TrimSpace(c.Address),
	}
}

// ProductInput is the admin product form. Version, when non-zero, must match
// the stored product on update.
type ProductInput struct {
	Title          string          `json:"title"`
	ImageURL       string          `json:"imageUrl"`
	Price          decimal.Decimal `json:"price"`
	AvailableSizes []string        `json:"availableSizes"`
	Description    string          `json:"description"`
	StockQuantity  int             `json:"stockQuantity"`
	Version        int             `json:"version,omitempty"`
}

func (in ProductInput) Normalize() ProductInput {
	in.Title = strings.TrimSpace(in.Title)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Description = strings.TrimSpace(in.Description)
	in.AvailableSizes = NormalizeSizes(in.AvailableSizes)
	return in
}

func (in ProductInput) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(in.Title) == "" {
		verr.add("title", "Title is required.")
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		verr.add("imageUrl", "Image URL is required.")
	}
	if !in.Price.IsPositive() {
		verr.add("price", "Price must be greater than 0.")
	}
	if len(NormalizeSizes(in.AvailableSizes)) == 0 {
		verr.add("availableSizes", "At least one size is required.")
	}
	if strings.TrimSpace(in.Description) == "" {
		verr.add("description", "Description is required.")
	}
	if in.StockQuantity < 0 {
		verr.add("stockQuantity", "Stock quantity cannot be negative.")
	}
	return verr.orNil()
}

// NormalizeSizes trims and upper-cases size labels, dropping blanks and
// duplicates while keeping first-seen order.
func NormalizeSizes(sizes []string) []string {
	out := make([]string, 0, len(sizes))
	seen := make(map[string]bool, len(sizes))
	for _, s := range sizes {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

type ReviewInput struct {
	ProductID string `json:"productId"`
	UserName  string `json:"userName"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (in ReviewInput) Validate() error {
	verr := &ValidationError{}
	if in.Rating < 1 || in.Rating > 5 {
		verr.add("rating", "Please provide a rating.")
	}
	if strings.TrimSpace(in.Comment) == "" {
		verr.add("comment", "Please enter a comment.")
	}
	return verr.orNil()
}
