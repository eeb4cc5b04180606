package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/safar/solestride/internal/models"
	"github.com/safar/solestride/internal/store"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error     string            `json:"error"`
	Fields    map[string]string `json:"fields,omitempty"`
	Remaining *int              `json:"remaining,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("Encode JSON response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondStoreError maps domain errors onto HTTP statuses; anything unknown
// is logged and hidden behind a 500.
func (s *Server) respondStoreError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	var stockErr *store.StockError

	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Fields: verr.Fields})
	case errors.As(err, &stockErr):
		remaining := stockErr.Remaining
		respondJSON(w, http.StatusConflict, errorResponse{
			Error:     fmt.Sprintf("Cannot add %d of %s to cart. Only %d left in stock.", stockErr.Requested, stockErr.Title, remaining),
			Remaining: &remaining,
		})
	case errors.Is(err, store.ErrInsufficientStock), errors.Is(err, store.ErrOptimisticLockFailed):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrProductNotFound), errors.Is(err, store.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrInvalidQuantity), errors.Is(err, store.ErrInvalidStatus), errors.Is(err, store.ErrCartEmpty):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("Request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func methodNotAllowed(w http.ResponseWriter) {
	respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func queryInt(r *http.Request, name string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return fallback
	}
	return v
}
