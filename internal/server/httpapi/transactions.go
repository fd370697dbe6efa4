package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
	transactionsrepo "github.com/shelfkeeper/shelfkeeper/internal/server/repositories/transactions"
)

type stockRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Notes     string `json:"notes"`
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := transactionsrepo.ListFilter{
		Page:      queryInt(q.Get("page")),
		PerPage:   queryInt(q.Get("per_page")),
		Type:      q.Get("type"),
		ProductID: queryInt64(q.Get("product_id")),
		UserID:    queryInt64(q.Get("user_id")),
	}
	if v := q.Get("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start_date")
			return
		}
		filter.DateFrom = t
	}
	if v := q.Get("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end_date")
			return
		}
		// Make the end date inclusive.
		filter.DateTo = t.Add(24*time.Hour - time.Nanosecond)
	}

	items, total, err := h.transactions.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []*models.Transaction{}
	}
	writeData(w, http.StatusOK, map[string]any{
		"transactions": items,
		"pagination":   NewPagination(total, filter.Page, filter.PerPage),
	})
}

func (h *Handler) StockIn(w http.ResponseWriter, r *http.Request) {
	h.stock(w, r, true)
}

func (h *Handler) StockOut(w http.ResponseWriter, r *http.Request) {
	h.stock(w, r, false)
}

func (h *Handler) stock(w http.ResponseWriter, r *http.Request, in bool) {
	var req stockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var err error
	var movement any
	if in {
		movement, err = h.transactions.StockIn(r.Context(), req.ProductID, userID, req.Quantity, req.Notes)
	} else {
		movement, err = h.transactions.StockOut(r.Context(), req.ProductID, userID, req.Quantity, req.Notes)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]any{"movement": movement})
}

func (h *Handler) TransactionStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var from, to time.Time
	if v := q.Get("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start_date")
			return
		}
		from = t
	}
	if v := q.Get("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end_date")
			return
		}
		to = t.Add(24*time.Hour - time.Nanosecond)
	}

	stats, err := h.transactions.Stats(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"stats": stats})
}
