package http

import (
	"errors"
	"net/http"
	"strconv"

	"bhara-backend/internal/domain"
	"bhara-backend/internal/engine"
	"bhara-backend/internal/logger"
	"bhara-backend/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// ProductHandler serves the public read-only catalog. Everything that
// needs an authenticated principal stays on the service layer.
type ProductHandler struct {
	products service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(products service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type productListResponse struct {
	Products []domain.Product `json:"products"`
	Total    int32            `json:"total"`
	Page     int32            `json:"page"`
	PageSize int32            `json:"page_size"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleListProducts returns a page of active listings
func (h *ProductHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	products, total, err := h.products.ListActiveProducts(r.Context(), page, pageSize)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list products"})
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	writeJSON(w, http.StatusOK, productListResponse{
		Products: products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// HandleGetProduct returns a single listing and counts the view
func (h *ProductHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return
	}

	product, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		var nfErr *engine.NotFoundError
		if errors.As(err, &nfErr) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: nfErr.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load product"})
		return
	}
	if _, err := h.products.IncrementViews(r.Context(), id); err != nil {
		logger.Warn("failed to count product view", "product_id", id, "error", err)
	}
	writeJSON(w, http.StatusOK, product)
}

// HandleListCategories returns the fixed category table
func (h *ProductHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	codes, err := h.products.ListCategories(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list categories"})
		return
	}
	type category struct {
		Code  domain.CategoryCode `json:"code"`
		Label string              `json:"label"`
	}
	out := make([]category, 0, len(codes))
	for _, code := range codes {
		out = append(out, category{Code: code, Label: domain.CategoryLabel(code)})
	}
	writeJSON(w, http.StatusOK, out)
}

// RegisterProductRoutes wires the catalog endpoints onto the router
func RegisterProductRoutes(router *mux.Router, handler *ProductHandler) {
	router.HandleFunc("/products", handler.HandleListProducts).Methods(http.MethodGet)
	router.HandleFunc("/products/{id}", handler.HandleGetProduct).Methods(http.MethodGet)
	router.HandleFunc("/categories", handler.HandleListCategories).Methods(http.MethodGet)
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n < 1 {
		return fallback
	}
	return int32(n)
}
