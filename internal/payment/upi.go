package payment

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/safar/solestride/internal/config"
	"github.com/safar/solestride/internal/models"
)

// UPI builds upi://pay deep links for the shop's collecting account.
type UPI struct {
	payeeID   string
	payeeName string
}

func NewUPI(cfg config.PaymentConfig) *UPI {
	return &UPI{payeeID: cfg.UPIID, payeeName: cfg.PayeeName}
}

// Link returns the deep link for the order's frozen total, in rupees with two
// decimals. UPI apps expect the VPA's @ unescaped.
func (u *UPI) Link(order models.Order) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=INR&tn=%s",
		strings.ReplaceAll(url.QueryEscape(u.payeeID), "%40", "@"),
		url.QueryEscape(u.payeeName),
		order.Total.StringFixed(2),
		url.QueryEscape("Order"+order.ID),
	)
}
