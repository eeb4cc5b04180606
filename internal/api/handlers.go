package api

import (
	"net/http"

	"github.com/safar/solestride/internal/describe"
	"github.com/safar/solestride/internal/models"
	"github.com/safar/solestride/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type productDetail struct {
	Product models.Product       `json:"product"`
	Reviews models.ReviewSummary `json:"reviews"`
}

type cartResponse struct {
	Items    []models.CartItem `json:"items"`
	Subtotal decimal.Decimal   `json:"subtotal"`
}

type orderResponse struct {
	Order       models.Order `json:"order"`
	PaymentLink string       `json:"paymentLink"`
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		page := queryInt(r, "page", 1)
		pageSize := queryInt(r, "page_size", 20)
		if pageSize < 1 || pageSize > 100 {
			pageSize = 20
		}
		respondJSON(w, http.StatusOK, s.store.ListProducts(page, pageSize))

	case http.MethodPost:
		if !s.checkAdmin(w, r) {
			return
		}
		var in models.ProductInput
		if !decodeJSON(w, r, &in) {
			return
		}
		product, err := s.store.AddProduct(ctx, in)
		if err != nil {
			s.respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, product)

	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleProductByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		product, ok := s.store.Product(id)
		if !ok {
			respondError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
			return
		}
		respondJSON(w, http.StatusOK, productDetail{Product: product, Reviews: s.store.ReviewSummary(id)})

	case http.MethodPut:
		if !s.checkAdmin(w, r) {
			return
		}
		var in models.ProductInput
		if !decodeJSON(w, r, &in) {
			return
		}
		product, err := s.store.UpdateProduct(ctx, id, in)
		if err != nil {
			s.respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, product)

	case http.MethodDelete:
		if !s.checkAdmin(w, r) {
			return
		}
		if err := s.store.DeleteProduct(ctx, id); err != nil {
			s.respondStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleReviews(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		respondJSON(w, http.StatusOK, map[string]any{
			"items":   s.store.ProductReviews(id),
			"summary": s.store.ReviewSummary(id),
		})

	case http.MethodPost:
		if _, ok := s.store.Product(id); !ok {
			respondError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
			return
		}
		var in models.ReviewInput
		if !decodeJSON(w, r, &in) {
			return
		}
		in.ProductID = id
		review, err := s.store.AddReview(r.Context(), in)
		if err != nil {
			s.respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, review)

	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.respondCart(w)

	case http.MethodDelete:
		if err := s.store.ClearCart(r.Context()); err != nil {
			s.respondStoreError(w, err)
			return
		}
		s.respondCart(w)

	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleCartItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodPost:
		var req cartItemRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		product, ok := s.store.Product(req.ProductID)
		if !ok {
			respondError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
			return
		}
		if !product.HasSize(req.Size) {
			respondError(w, http.StatusBadRequest, "Please select a size.")
			return
		}
		if err := s.store.AddToCart(ctx, req.ProductID, req.Size, req.Quantity); err != nil {
			s.respondStoreError(w, err)
			return
		}
		s.respondCart(w)

	case http.MethodPut:
		var req cartItemRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := s.store.UpdateCartQuantity(ctx, req.ProductID, req.Size, req.Quantity); err != nil {
			s.respondStoreError(w, err)
			return
		}
		s.respondCart(w)

	case http.MethodDelete:
		q := r.URL.Query()
		if err := s.store.RemoveFromCart(ctx, q.Get("product_id"), q.Get("size")); err != nil {
			s.respondStoreError(w, err)
			return
		}
		s.respondCart(w)

	default:
		methodNotAllowed(w)
	}
}

func (s *Server) respondCart(w http.ResponseWriter) {
	items := s.store.Cart()
	respondJSON(w, http.StatusOK, cartResponse{Items: items, Subtotal: models.Subtotal(items)})
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var info models.CustomerInfo
	if !decodeJSON(w, r, &info) {
		return
	}

	order, err := s.store.Checkout(r.Context(), info)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, orderResponse{Order: order, PaymentLink: s.payments.Link(order)})
}

func (s *Server) handleOrderByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	order, ok := s.store.Order(r.PathValue("id"))
	if !ok {
		respondError(w, http.StatusNotFound, store.ErrOrderNotFound.Error())
		return
	}
	respondJSON(w, http.StatusOK, orderResponse{Order: order, PaymentLink: s.payments.Link(order)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	ok, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid username or password.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if err := s.auth.Logout(r.Context()); err != nil {
		s.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"authenticated": false})
}

func (s *Server) handleAdminOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	switch r.URL.Query().Get("status") {
	case "pending":
		respondJSON(w, http.StatusOK, map[string]any{"items": s.store.PendingOrders()})
		return
	case "completed":
		respondJSON(w, http.StatusOK, map[string]any{"items": s.store.CompletedOrders()})
		return
	case "next":
		order, ok := s.store.NextPendingOrder()
		if !ok {
			respondError(w, http.StatusNotFound, "No pending orders")
			return
		}
		respondJSON(w, http.StatusOK, order)
		return
	}

	limit := queryInt(r, "limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	page, err := s.store.ListOrdersCursor(r.URL.Query().Get("cursor"), limit)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid cursor")
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (s *Server) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := s.store.UpdateOrderStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleSales(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	respondJSON(w, http.StatusOK, s.store.SalesSummary())
}

func (s *Server) handleAdminProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	q := r.URL.Query()
	dir := store.SortAsc
	if q.Get("dir") == string(store.SortDesc) {
		dir = store.SortDesc
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"items": store.SortProducts(s.store.Products(), q.Get("sort"), dir),
	})
}

func (s *Server) handleDescriptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req struct {
		Title          string          `json:"title"`
		Price          decimal.Decimal `json:"price"`
		AvailableSizes []string        `json:"availableSizes"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	text := s.describe.Generate(r.Context(), describe.Draft{
		Title: req.Title,
		Price: req.Price,
		Sizes: models.NormalizeSizes(req.AvailableSizes),
	})
	s.logger.Debug("Description generated", zap.String("title", req.Title), zap.Int("length", len(text)))
	respondJSON(w, http.StatusOK, map[string]string{"description": text})
}
