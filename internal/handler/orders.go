package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/hawkerhub/api/internal/database"
	"github.com/hawkerhub/api/internal/enum"
	"github.com/hawkerhub/api/internal/service"
)

// OrderPlacer defines the service methods needed to place orders.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req service.PlaceOrderRequest) (*service.PlaceOrderResult, error)
}

// StatusSetter defines the service methods needed to update order status.
// Satisfied by *service.StatusService.
type StatusSetter interface {
	SetStatus(ctx context.Context, orderID uuid.UUID, target string) (database.Order, error)
}

// OrderStore defines the database methods needed by order read handlers.
// Satisfied by *database.Queries.
type OrderStore interface {
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error)
	ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItem, error)
	ListSelectedModifiersByOrderItem(ctx context.Context, orderItemID uuid.UUID) ([]database.SelectedModifier, error)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc    OrderPlacer
	status StatusSetter
	store  OrderStore
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderPlacer, status StatusSetter, store OrderStore) *OrderHandler {
	return &OrderHandler{svc: svc, status: status, store: store}
}

// RegisterPublicRoutes registers the customer-facing order endpoints.
func (h *OrderHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/orders", h.Create)
	r.Get("/orders/{id}", h.Get)
}

// RegisterStaffRoutes registers the staff-only order endpoints.
func (h *OrderHandler) RegisterStaffRoutes(r chi.Router) {
	r.Get("/orders", h.List)
	r.Put("/orders/{id}/status", h.UpdateStatus)
}

// --- Request / Response types ---

// Prices arrive as JSON numbers. json.Number keeps the literal text so
// "10.99" never passes through a float.
type placeOrderRequest struct {
	StallID    string                  `json:"stall_id"`
	OrderNotes string                  `json:"order_notes"`
	Items      []placeOrderItemRequest `json:"items"`
}

type placeOrderItemRequest struct {
	MenuItemID string                      `json:"menu_item_id"`
	Price      json.Number                 `json:"price"`
	Notes      string                      `json:"notes"`
	Modifiers  []placeOrderModifierRequest `json:"modifiers"`
}

type placeOrderModifierRequest struct {
	ModifierID  string      `json:"modifier_id"`
	Name        string      `json:"name"`
	PriceChange json.Number `json:"price_change"`
}

type orderResponse struct {
	ID          uuid.UUID           `json:"id"`
	StallID     uuid.UUID           `json:"stall_id"`
	Status      string              `json:"status"`
	TotalAmount string              `json:"total_amount"`
	OrderNotes  *string             `json:"order_notes"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Items       []orderItemResponse `json:"items,omitempty"`
}

type orderItemResponse struct {
	ID         uuid.UUID                  `json:"id"`
	MenuItemID uuid.UUID                  `json:"menu_item_id"`
	UnitPrice  string                     `json:"unit_price"`
	Notes      *string                    `json:"notes"`
	Modifiers  []selectedModifierResponse `json:"modifiers"`
}

type selectedModifierResponse struct {
	ID           uuid.UUID `json:"id"`
	ModifierID   uuid.UUID `json:"modifier_id"`
	ModifierName string    `json:"modifier_name"`
	PriceChange  string    `json:"price_change"`
}

type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// --- Handlers ---

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.StallID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "stall_id is required"})
		return
	}
	if len(req.Items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "items are required"})
		return
	}
	for i, item := range req.Items {
		if item.MenuItemID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": formatItemError(i, "menu_item_id is required"),
			})
			return
		}
	}

	svcItems := make([]service.PlaceOrderItemRequest, len(req.Items))
	for i, item := range req.Items {
		mods := make([]service.PlaceOrderModifierRequest, len(item.Modifiers))
		for j, mod := range item.Modifiers {
			mods[j] = service.PlaceOrderModifierRequest{
				ModifierID:  mod.ModifierID,
				Name:        mod.Name,
				PriceChange: mod.PriceChange.String(),
			}
		}
		svcItems[i] = service.PlaceOrderItemRequest{
			MenuItemID: item.MenuItemID,
			Price:      item.Price.String(),
			Notes:      item.Notes,
			Modifiers:  mods,
		}
	}

	result, err := h.svc.PlaceOrder(r.Context(), service.PlaceOrderRequest{
		StallID:    req.StallID,
		OrderNotes: req.OrderNotes,
		Items:      svcItems,
	})
	if err != nil {
		if isValidationError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: place order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(result))
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	order, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	items, err := h.store.ListOrderItemsByOrder(r.Context(), orderID)
	if err != nil {
		log.Printf("ERROR: list order items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	itemResponses := make([]orderItemResponse, len(items))
	for i, item := range items {
		mods, err := h.store.ListSelectedModifiersByOrderItem(r.Context(), item.ID)
		if err != nil {
			log.Printf("ERROR: list selected modifiers: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		itemResponses[i] = dbOrderItemToResponse(item, mods)
	}

	resp := dbOrderToResponse(order)
	resp.Items = itemResponses

	writeJSON(w, http.StatusOK, resp)
}

// List handles GET /orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > 100 {
		limit = 100
	}

	offset := 0
	if s := r.URL.Query().Get("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}

	params := database.ListOrdersParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		if !isValidOrderStatus(s) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status filter"})
			return
		}
		params.Status = pgtype.Text{String: s, Valid: true}
	}

	orders, err := h.store.ListOrders(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = dbOrderToResponse(o)
	}

	writeJSON(w, http.StatusOK, orderListResponse{
		Orders: resp,
		Limit:  limit,
		Offset: offset,
	})
}

// UpdateStatus handles PUT /orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}

	updated, err := h.status.SetStatus(r.Context(), orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		case errors.Is(err, service.ErrOrderNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		case errors.Is(err, service.ErrTransitionNotAllowed):
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			log.Printf("ERROR: update order status: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dbOrderToResponse(updated))
}

// --- Helpers ---

func formatItemError(idx int, msg string) string {
	return "items[" + strconv.Itoa(idx) + "]: " + msg
}

// isValidationError checks if the error is a known validation error
// from the service layer that should result in 400 Bad Request.
func isValidationError(err error) bool {
	return errors.Is(err, service.ErrInvalidStallID) ||
		errors.Is(err, service.ErrStallNotFound) ||
		errors.Is(err, service.ErrEmptyItems) ||
		errors.Is(err, service.ErrInvalidMenuItemID) ||
		errors.Is(err, service.ErrMenuItemNotFound) ||
		errors.Is(err, service.ErrMenuItemMismatch) ||
		errors.Is(err, service.ErrInvalidPrice) ||
		errors.Is(err, service.ErrInvalidModifierID) ||
		errors.Is(err, service.ErrModifierNotFound) ||
		errors.Is(err, service.ErrInvalidPriceChange) ||
		errors.Is(err, service.ErrNegativeTotal)
}

func isValidOrderStatus(s string) bool {
	switch s {
	case enum.OrderStatusPending, enum.OrderStatusInProgress,
		enum.OrderStatusReady, enum.OrderStatusServed:
		return true
	}
	return false
}

func toOrderResponse(result *service.PlaceOrderResult) orderResponse {
	resp := dbOrderToResponse(result.Order)
	resp.Items = make([]orderItemResponse, len(result.Items))
	for i, ir := range result.Items {
		resp.Items[i] = dbOrderItemToResponse(ir.Item, ir.Modifiers)
	}
	return resp
}

func dbOrderToResponse(o database.Order) orderResponse {
	resp := orderResponse{
		ID:          o.ID,
		StallID:     o.StallID,
		Status:      o.Status,
		TotalAmount: numericToString(o.TotalAmount),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	if o.OrderNotes.Valid {
		resp.OrderNotes = &o.OrderNotes.String
	}
	return resp
}

func dbOrderItemToResponse(item database.OrderItem, mods []database.SelectedModifier) orderItemResponse {
	resp := orderItemResponse{
		ID:         item.ID,
		MenuItemID: item.MenuItemID,
		UnitPrice:  numericToString(item.UnitPrice),
	}
	if item.Notes.Valid {
		resp.Notes = &item.Notes.String
	}
	resp.Modifiers = make([]selectedModifierResponse, len(mods))
	for j, mod := range mods {
		resp.Modifiers[j] = selectedModifierResponse{
			ID:           mod.ID,
			ModifierID:   mod.ModifierID,
			ModifierName: mod.ModifierName,
			PriceChange:  numericToString(mod.PriceChange),
		}
	}
	return resp
}

func numericToString(n pgtype.Numeric) string {
	if !n.Valid {
		return "0.00"
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return "0.00"
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return "0.00"
	}
	return d.StringFixed(2)
}
