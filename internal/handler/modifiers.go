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

// ModifierStore defines the database methods needed by modifier handlers.
// Satisfied by *database.Queries.
type ModifierStore interface {
	CreateModifier(ctx context.Context, arg database.CreateModifierParams) (database.Modifier, error)
	ListModifiers(ctx context.Context) ([]database.Modifier, error)
	AssignModifierToMenuItem(ctx context.Context, arg database.AssignModifierToMenuItemParams) error
}

// ModifierHandler handles modifier endpoints.
type ModifierHandler struct {
	store ModifierStore
}

// NewModifierHandler creates a new ModifierHandler.
func NewModifierHandler(store ModifierStore) *ModifierHandler {
	return &ModifierHandler{store: store}
}

// RegisterPublicRoutes registers the read endpoints.
func (h *ModifierHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/modifiers", h.List)
}

// RegisterAdminRoutes registers the management endpoints.
func (h *ModifierHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/modifiers", h.Create)
	r.Post("/menu-items/{id}/modifiers", h.Assign)
}

// --- Request types ---

type modifierRequest struct {
	Name        string      `json:"name"`
	PriceChange json.Number `json:"price_change"`
}

type assignModifierRequest struct {
	ModifierID string `json:"modifier_id"`
}

// --- Handlers ---

// Create handles POST /modifiers.
func (h *ModifierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req modifierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	// Negative deltas are legitimate ("No Meat" discounts the dish).
	delta := decimal.Zero
	if req.PriceChange != "" {
		var err error
		delta, err = decimal.NewFromString(req.PriceChange.String())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid price_change"})
			return
		}
	}

	mod, err := h.store.CreateModifier(r.Context(), database.CreateModifierParams{
		Name:        req.Name,
		PriceChange: moneyToNumeric(delta),
	})
	if err != nil {
		log.Printf("ERROR: create modifier: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toModifierResponse(mod))
}

// List handles GET /modifiers.
func (h *ModifierHandler) List(w http.ResponseWriter, r *http.Request) {
	mods, err := h.store.ListModifiers(r.Context())
	if err != nil {
		log.Printf("ERROR: list modifiers: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]modifierResponse, len(mods))
	for i, m := range mods {
		resp[i] = toModifierResponse(m)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Assign handles POST /menu-items/{id}/modifiers.
// Assigning the same modifier twice is a no-op.
func (h *ModifierHandler) Assign(w http.ResponseWriter, r *http.Request) {
	menuItemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	var req assignModifierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	modifierID, err := uuid.Parse(req.ModifierID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid modifier_id"})
		return
	}

	if err := h.store.AssignModifierToMenuItem(r.Context(), database.AssignModifierToMenuItemParams{
		MenuItemID: menuItemID,
		ModifierID: modifierID,
	}); err != nil {
		log.Printf("ERROR: assign modifier: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"menu_item_id": menuItemID.String(),
		"modifier_id":  modifierID.String(),
	})
}
