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
	"github.com/shopspring/decimal"

	"github.com/hawkerhub/api/internal/database"
)

// MenuStore defines the database methods needed by menu handlers.
// Satisfied by *database.Queries.
type MenuStore interface {
	CreateMenuItem(ctx context.Context, arg database.CreateMenuItemParams) (database.MenuItem, error)
	ListMenuItemsByStall(ctx context.Context, stallID uuid.UUID) ([]database.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	ListModifiersByMenuItem(ctx context.Context, menuItemID uuid.UUID) ([]database.Modifier, error)
}

// MenuHandler handles menu item endpoints.
type MenuHandler struct {
	store MenuStore
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(store MenuStore) *MenuHandler {
	return &MenuHandler{store: store}
}

// RegisterPublicRoutes registers the read endpoints customers use to browse.
func (h *MenuHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/stalls/{id}/menu-items", h.ListByStall)
	r.Get("/menu-items/{id}/modifiers", h.ListModifiers)
}

// RegisterAdminRoutes registers the management endpoints.
func (h *MenuHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/stalls/{id}/menu-items", h.Create)
	r.Delete("/menu-items/{id}", h.Delete)
}

// --- Request / Response types ---

type menuItemRequest struct {
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Price           json.Number `json:"price"`
	Category        string      `json:"category"`
	CostOfGoodsSold json.Number `json:"cost_of_goods_sold"`
}

type menuItemResponse struct {
	ID              uuid.UUID `json:"id"`
	StallID         uuid.UUID `json:"stall_id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	Price           string    `json:"price"`
	Category        *string   `json:"category"`
	CostOfGoodsSold string    `json:"cost_of_goods_sold"`
	CreatedAt       time.Time `json:"created_at"`
}

type modifierResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PriceChange string    `json:"price_change"`
	CreatedAt   time.Time `json:"created_at"`
}

// --- Handlers ---

// Create handles POST /stalls/{id}/menu-items.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	stallID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid stall ID"})
		return
	}

	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	price, err := decimal.NewFromString(req.Price.String())
	if err != nil || price.IsNegative() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid price"})
		return
	}

	cogs := decimal.Zero
	if req.CostOfGoodsSold != "" {
		cogs, err = decimal.NewFromString(req.CostOfGoodsSold.String())
		if err != nil || cogs.IsNegative() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid cost_of_goods_sold"})
			return
		}
	}

	item, err := h.store.CreateMenuItem(r.Context(), database.CreateMenuItemParams{
		StallID:         stallID,
		Name:            req.Name,
		Description:     optionalText(req.Description),
		Price:           moneyToNumeric(price),
		Category:        optionalText(req.Category),
		CostOfGoodsSold: moneyToNumeric(cogs),
	})
	if err != nil {
		log.Printf("ERROR: create menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toMenuItemResponse(item))
}

// ListByStall handles GET /stalls/{id}/menu-items.
func (h *MenuHandler) ListByStall(w http.ResponseWriter, r *http.Request) {
	stallID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid stall ID"})
		return
	}

	items, err := h.store.ListMenuItemsByStall(r.Context(), stallID)
	if err != nil {
		log.Printf("ERROR: list menu items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]menuItemResponse, len(items))
	for i, item := range items {
		resp[i] = toMenuItemResponse(item)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListModifiers handles GET /menu-items/{id}/modifiers.
func (h *MenuHandler) ListModifiers(w http.ResponseWriter, r *http.Request) {
	menuItemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	mods, err := h.store.ListModifiersByMenuItem(r.Context(), menuItemID)
	if err != nil {
		log.Printf("ERROR: list modifiers by menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]modifierResponse, len(mods))
	for i, m := range mods {
		resp[i] = toModifierResponse(m)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /menu-items/{id}.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	if _, err := h.store.DeleteMenuItem(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
			return
		}
		log.Printf("ERROR: delete menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Helpers ---

func toMenuItemResponse(item database.MenuItem) menuItemResponse {
	resp := menuItemResponse{
		ID:              item.ID,
		StallID:         item.StallID,
		Name:            item.Name,
		Price:           numericToString(item.Price),
		CostOfGoodsSold: numericToString(item.CostOfGoodsSold),
		CreatedAt:       item.CreatedAt,
	}
	if item.Description.Valid {
		resp.Description = &item.Description.String
	}
	if item.Category.Valid {
		resp.Category = &item.Category.String
	}
	return resp
}

func toModifierResponse(m database.Modifier) modifierResponse {
	return modifierResponse{
		ID:          m.ID,
		Name:        m.Name,
		PriceChange: numericToString(m.PriceChange),
		CreatedAt:   m.CreatedAt,
	}
}
