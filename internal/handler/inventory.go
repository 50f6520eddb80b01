package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/hawkerhub/api/internal/database"
)

// InventoryStore defines the database methods needed by inventory handlers.
// Satisfied by *database.Queries.
type InventoryStore interface {
	CreateInventoryItem(ctx context.Context, arg database.CreateInventoryItemParams) (database.InventoryItem, error)
	ListInventoryItems(ctx context.Context) ([]database.InventoryItem, error)
	AddInventoryStock(ctx context.Context, arg database.AddInventoryStockParams) (database.InventoryItem, error)
}

// InventoryHandler handles inventory endpoints.
type InventoryHandler struct {
	store InventoryStore
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(store InventoryStore) *InventoryHandler {
	return &InventoryHandler{store: store}
}

// RegisterAdminRoutes registers the inventory endpoints.
func (h *InventoryHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/inventory-items", h.Create)
	r.Get("/inventory-items", h.List)
	r.Post("/inventory-items/{id}/stock", h.AddStock)
}

// --- Request / Response types ---

type inventoryItemRequest struct {
	Name        string      `json:"name"`
	Unit        string      `json:"unit"`
	CostPerUnit json.Number `json:"cost_per_unit"`
}

type addStockRequest struct {
	Quantity json.Number `json:"quantity"`
}

type inventoryItemResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Unit            string    `json:"unit"`
	CostPerUnit     string    `json:"cost_per_unit"`
	QuantityInStock string    `json:"quantity_in_stock"`
	CreatedAt       time.Time `json:"created_at"`
}

// --- Handlers ---

// Create handles POST /inventory-items.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" || req.Unit == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and unit are required"})
		return
	}

	cost := decimal.Zero
	if req.CostPerUnit != "" {
		var err error
		cost, err = decimal.NewFromString(req.CostPerUnit.String())
		if err != nil || cost.IsNegative() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid cost_per_unit"})
			return
		}
	}

	item, err := h.store.CreateInventoryItem(r.Context(), database.CreateInventoryItemParams{
		Name:        req.Name,
		Unit:        req.Unit,
		CostPerUnit: moneyToNumeric(cost),
	})
	if err != nil {
		log.Printf("ERROR: create inventory item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toInventoryItemResponse(item))
}

// List handles GET /inventory-items.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListInventoryItems(r.Context())
	if err != nil {
		log.Printf("ERROR: list inventory items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]inventoryItemResponse, len(items))
	for i, item := range items {
		resp[i] = toInventoryItemResponse(item)
	}
	writeJSON(w, http.StatusOK, resp)
}

// AddStock handles POST /inventory-items/{id}/stock.
// Restocks only; the order pipeline is the sole source of decrements.
func (h *InventoryHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid inventory item ID"})
		return
	}

	var req addStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	qty, err := decimal.NewFromString(req.Quantity.String())
	if err != nil || !qty.IsPositive() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "quantity must be > 0"})
		return
	}

	item, err := h.store.AddInventoryStock(r.Context(), database.AddInventoryStockParams{
		ID:       id,
		Quantity: quantityToNumeric(qty),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "inventory item not found"})
			return
		}
		log.Printf("ERROR: add inventory stock: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toInventoryItemResponse(item))
}

// --- Helpers ---

func toInventoryItemResponse(item database.InventoryItem) inventoryItemResponse {
	return inventoryItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Unit:            item.Unit,
		CostPerUnit:     numericToString(item.CostPerUnit),
		QuantityInStock: quantityToString(item.QuantityInStock),
		CreatedAt:       item.CreatedAt,
	}
}

// Stock quantities use 3 decimal places, money uses 2.
func quantityToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(3))
	return n
}

func quantityToString(n pgtype.Numeric) string {
	if !n.Valid {
		return "0.000"
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return "0.000"
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return "0.000"
	}
	return d.StringFixed(3)
}
