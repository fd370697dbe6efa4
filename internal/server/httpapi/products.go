package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
	productsrepo "github.com/shelfkeeper/shelfkeeper/internal/server/repositories/products"
)

// productRequest is the create/update payload. The expiry date uses the
// YYYY-MM-DD form.
type productRequest struct {
	Name       string  `json:"name"`
	SKU        string  `json:"sku"`
	Barcode    *string `json:"barcode"`
	Price      float64 `json:"price"`
	Quantity   int64   `json:"quantity"`
	ExpiryDate *string `json:"expiry_date"`
	CategoryID *int64  `json:"category_id"`
	SupplierID *int64  `json:"supplier_id"`
}

func (req *productRequest) toModel() (*models.Product, error) {
	product := &models.Product{
		Name:       req.Name,
		SKU:        req.SKU,
		Barcode:    req.Barcode,
		Price:      req.Price,
		Quantity:   req.Quantity,
		CategoryID: req.CategoryID,
		SupplierID: req.SupplierID,
	}
	if req.ExpiryDate != nil && *req.ExpiryDate != "" {
		d, err := time.Parse("2006-01-02", *req.ExpiryDate)
		if err != nil {
			return nil, err
		}
		product.ExpiryDate = &d
	}
	return product, nil
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := productsrepo.ListFilter{
		Page:       queryInt(q.Get("page")),
		PerPage:    queryInt(q.Get("per_page")),
		CategoryID: queryInt64(q.Get("category_id")),
		SupplierID: queryInt64(q.Get("supplier_id")),
		Search:     q.Get("search"),
		LowStock:   q.Get("low_stock") == "true",
		Expiring:   q.Get("expiring") == "true",
	}

	items, total, err := h.products.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]any{
		"products":   emptyIfNilProducts(items),
		"pagination": NewPagination(total, filter.Page, filter.PerPage),
	})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"product": product})
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	product, err := req.toModel()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expiry date, expected YYYY-MM-DD")
		return
	}

	created, err := h.products.Create(r.Context(), product)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.logger.Info(r.Context(), "product created", "id", created.ID, "sku", created.SKU)
	writeData(w, http.StatusCreated, map[string]any{"product": created})
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	product, err := req.toModel()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expiry date, expected YYYY-MM-DD")
		return
	}
	product.ID = id

	updated, err := h.products.Update(r.Context(), product)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"product": updated})
}

// DeleteProduct is admin-gated by the router.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "product deleted")
}

func (h *Handler) ExpiringProducts(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r.URL.Query().Get("days"))
	items, err := h.products.Expiring(r.Context(), days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"products": emptyIfNilProducts(items)})
}

func (h *Handler) ExpiredProducts(w http.ResponseWriter, r *http.Request) {
	items, err := h.products.Expired(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"products": emptyIfNilProducts(items)})
}

func (h *Handler) LowStockProducts(w http.ResponseWriter, r *http.Request) {
	threshold := queryInt64(r.URL.Query().Get("threshold"))
	items, err := h.products.LowStock(r.Context(), threshold)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"products": emptyIfNilProducts(items)})
}

// --- query/path helpers shared across handlers ---

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func queryInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func queryInt64(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func emptyIfNilProducts(items []*models.Product) []*models.Product {
	if items == nil {
		return []*models.Product{}
	}
	return items
}
