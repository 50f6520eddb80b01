package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hawkerhub/api/internal/database"
)

// RecipeStore defines the database methods needed by recipe handlers.
// Satisfied by *database.Queries.
type RecipeStore interface {
	CreateRecipeItem(ctx context.Context, arg database.CreateRecipeItemParams) (database.RecipeItem, error)
	ListRecipeWithIngredients(ctx context.Context, menuItemID uuid.UUID) ([]database.ListRecipeWithIngredientsRow, error)
}

// RecipeHandler handles recipe endpoints. A recipe maps a menu item to the
// inventory quantities one serving consumes.
type RecipeHandler struct {
	store RecipeStore
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(store RecipeStore) *RecipeHandler {
	return &RecipeHandler{store: store}
}

// RegisterAdminRoutes registers the recipe endpoints.
func (h *RecipeHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/menu-items/{id}/recipe", h.Create)
	r.Get("/menu-items/{id}/recipe", h.List)
}

// --- Request / Response types ---

type recipeItemRequest struct {
	InventoryItemID string      `json:"inventory_item_id"`
	QuantityUsed    json.Number `json:"quantity_used"`
}

type recipeItemResponse struct {
	ID              uuid.UUID `json:"id"`
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	IngredientName  string    `json:"ingredient_name,omitempty"`
	Unit            string    `json:"unit,omitempty"`
	QuantityUsed    string    `json:"quantity_used"`
}

// --- Handlers ---

// Create handles POST /menu-items/{id}/recipe.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	menuItemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	var req recipeItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	inventoryItemID, err := uuid.Parse(req.InventoryItemID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid inventory_item_id"})
		return
	}

	qty, err := decimal.NewFromString(req.QuantityUsed.String())
	if err != nil || !qty.IsPositive() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "quantity_used must be > 0"})
		return
	}

	item, err := h.store.CreateRecipeItem(r.Context(), database.CreateRecipeItemParams{
		MenuItemID:      menuItemID,
		InventoryItemID: inventoryItemID,
		QuantityUsed:    quantityToNumeric(qty),
	})
	if err != nil {
		log.Printf("ERROR: create recipe item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, recipeItemResponse{
		ID:              item.ID,
		InventoryItemID: item.InventoryItemID,
		QuantityUsed:    quantityToString(item.QuantityUsed),
	})
}

// List handles GET /menu-items/{id}/recipe.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	menuItemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	rows, err := h.store.ListRecipeWithIngredients(r.Context(), menuItemID)
	if err != nil {
		log.Printf("ERROR: list recipe: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]recipeItemResponse, len(rows))
	for i, row := range rows {
		resp[i] = recipeItemResponse{
			ID:              row.ID,
			InventoryItemID: row.InventoryItemID,
			IngredientName:  row.IngredientName,
			Unit:            row.Unit,
			QuantityUsed:    quantityToString(row.QuantityUsed),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
