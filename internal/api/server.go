package api

import (
	"context"
	"net/http"
	"time"

	"github.com/safar/solestride/internal/auth"
	"github.com/safar/solestride/internal/describe"
	"github.com/safar/solestride/internal/models"
	"github.com/safar/solestride/internal/store"
	"go.uber.org/zap"
)

type Describer interface {
	Generate(ctx context.Context, d describe.Draft) string
}

type PaymentLinker interface {
	Link(order models.Order) string
}

type Server struct {
	store    *store.Storefront
	auth     *auth.Service
	describe Describer
	payments PaymentLinker
	logger   *zap.Logger
}

func NewServer(sf *store.Storefront, authSvc *auth.Service, describer Describer, payments PaymentLinker, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		store:    sf,
		auth:     authSvc,
		describe: describer,
		payments: payments,
		logger:   logger,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)

	mux.HandleFunc("/products", s.handleProducts)
	mux.HandleFunc("/products/{id}", s.handleProductByID)
	mux.HandleFunc("/products/{id}/reviews", s.handleReviews)

	mux.HandleFunc("/cart", s.handleCart)
	mux.HandleFunc("/cart/items", s.handleCartItems)
	mux.HandleFunc("/checkout", s.handleCheckout)
	mux.HandleFunc("/orders/{id}", s.handleOrderByID)

	mux.HandleFunc("/admin/login", s.handleLogin)
	mux.HandleFunc("/admin/logout", s.handleLogout)
	mux.HandleFunc("/admin/orders", s.requireAdmin(s.handleAdminOrders))
	mux.HandleFunc("/admin/orders/{id}/status", s.requireAdmin(s.handleOrderStatus))
	mux.HandleFunc("/admin/sales", s.requireAdmin(s.handleSales))
	mux.HandleFunc("/admin/products", s.requireAdmin(s.handleAdminProducts))
	mux.HandleFunc("/admin/descriptions", s.requireAdmin(s.handleDescriptions))

	return s.logRequests(mux)
}

func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.checkAdmin(w, r) {
			return
		}
		next(w, r)
	}
}

// checkAdmin writes the rejection itself and reports whether to continue.
func (s *Server) checkAdmin(w http.ResponseWriter, r *http.Request) bool {
	ok, err := s.auth.IsAuthenticated(r.Context())
	if err != nil {
		s.logger.Error("Read admin session", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return false
	}
	if !ok {
		respondError(w, http.StatusUnauthorized, "Admin login required")
		return false
	}
	return true
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if p := recover(); p != nil {
				s.logger.Error("Handler panic", zap.Any("panic", p), zap.String("path", r.URL.Path))
				respondError(rec, http.StatusInternalServerError, "Internal server error")
			}
			s.logger.Info("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)))
		}()

		next.ServeHTTP(rec, r)
	})
}
