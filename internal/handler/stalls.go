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

// StallStore defines the database methods needed by stall handlers.
// Satisfied by *database.Queries.
type StallStore interface {
	CreateStall(ctx context.Context, arg database.CreateStallParams) (database.Stall, error)
	GetStall(ctx context.Context, id uuid.UUID) (database.Stall, error)
	ListStalls(ctx context.Context) ([]database.Stall, error)
	UpdateStall(ctx context.Context, arg database.UpdateStallParams) (database.Stall, error)
	DeleteStall(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// StallHandler handles stall endpoints.
type StallHandler struct {
	store StallStore
}

// NewStallHandler creates a new StallHandler.
func NewStallHandler(store StallStore) *StallHandler {
	return &StallHandler{store: store}
}

// RegisterPublicRoutes registers the read endpoints customers use to browse.
func (h *StallHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/stalls", h.List)
	r.Get("/stalls/{id}", h.Get)
}

// RegisterAdminRoutes registers the management endpoints.
func (h *StallHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/stalls", h.Create)
	r.Put("/stalls/{id}", h.Update)
	r.Delete("/stalls/{id}", h.Delete)
}

// --- Request / Response types ---

type stallRequest struct {
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	FixedCostsMonthly json.Number `json:"fixed_costs_monthly"`
}

type stallResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Description       *string   `json:"description"`
	FixedCostsMonthly string    `json:"fixed_costs_monthly"`
	CreatedAt         time.Time `json:"created_at"`
}

// --- Handlers ---

// Create handles POST /stalls.
func (h *StallHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req stallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	stall, err := h.store.CreateStall(r.Context(), database.CreateStallParams{
		Name:        req.Name,
		Description: optionalText(req.Description),
	})
	if err != nil {
		log.Printf("ERROR: create stall: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toStallResponse(stall))
}

// Get handles GET /stalls/{id}.
func (h *StallHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid stall ID"})
		return
	}

	stall, err := h.store.GetStall(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "stall not found"})
			return
		}
		log.Printf("ERROR: get stall: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toStallResponse(stall))
}

// List handles GET /stalls.
func (h *StallHandler) List(w http.ResponseWriter, r *http.Request) {
	stalls, err := h.store.ListStalls(r.Context())
	if err != nil {
		log.Printf("ERROR: list stalls: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]stallResponse, len(stalls))
	for i, s := range stalls {
		resp[i] = toStallResponse(s)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Update handles PUT /stalls/{id}.
func (h *StallHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid stall ID"})
		return
	}

	var req stallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	fixedCosts := decimal.Zero
	if req.FixedCostsMonthly != "" {
		fixedCosts, err = decimal.NewFromString(req.FixedCostsMonthly.String())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid fixed_costs_monthly"})
			return
		}
	}

	stall, err := h.store.UpdateStall(r.Context(), database.UpdateStallParams{
		ID:                id,
		Name:              req.Name,
		Description:       optionalText(req.Description),
		FixedCostsMonthly: moneyToNumeric(fixedCosts),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "stall not found"})
			return
		}
		log.Printf("ERROR: update stall: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toStallResponse(stall))
}

// Delete handles DELETE /stalls/{id}.
func (h *StallHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid stall ID"})
		return
	}

	if _, err := h.store.DeleteStall(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "stall not found"})
			return
		}
		log.Printf("ERROR: delete stall: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Helpers ---

func toStallResponse(s database.Stall) stallResponse {
	resp := stallResponse{
		ID:                s.ID,
		Name:              s.Name,
		FixedCostsMonthly: numericToString(s.FixedCostsMonthly),
		CreatedAt:         s.CreatedAt,
	}
	if s.Description.Valid {
		resp.Description = &s.Description.String
	}
	return resp
}

func optionalText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func moneyToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}
