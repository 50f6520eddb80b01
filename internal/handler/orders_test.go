package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/hawkerhub/api/internal/database"
	"github.com/hawkerhub/api/internal/enum"
	"github.com/hawkerhub/api/internal/handler"
	"github.com/hawkerhub/api/internal/service"
)

// --- Mock OrderPlacer ---

type mockOrderService struct {
	placeFn func(ctx context.Context, req service.PlaceOrderRequest) (*service.PlaceOrderResult, error)
}

func (m *mockOrderService) PlaceOrder(ctx context.Context, req service.PlaceOrderRequest) (*service.PlaceOrderResult, error) {
	return m.placeFn(ctx, req)
}

// --- Mock StatusSetter ---

type mockStatusService struct {
	setFn func(ctx context.Context, orderID uuid.UUID, target string) (database.Order, error)
}

func (m *mockStatusService) SetStatus(ctx context.Context, orderID uuid.UUID, target string) (database.Order, error) {
	return m.setFn(ctx, orderID, target)
}

// --- Mock OrderStore ---

type mockOrderStore struct {
	getOrderFn              func(ctx context.Context, id uuid.UUID) (database.Order, error)
	listOrdersFn            func(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error)
	listOrderItemsByOrderFn func(ctx context.Context, orderID uuid.UUID) ([]database.OrderItem, error)
	listSelectedModifiersFn func(ctx context.Context, orderItemID uuid.UUID) ([]database.SelectedModifier, error)
}

func (m *mockOrderStore) GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error) {
	if m.getOrderFn != nil {
		return m.getOrderFn(ctx, id)
	}
	return database.Order{}, pgx.ErrNoRows
}

func (m *mockOrderStore) ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error) {
	if m.listOrdersFn != nil {
		return m.listOrdersFn(ctx, arg)
	}
	return []database.Order{}, nil
}

func (m *mockOrderStore) ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItem, error) {
	if m.listOrderItemsByOrderFn != nil {
		return m.listOrderItemsByOrderFn(ctx, orderID)
	}
	return []database.OrderItem{}, nil
}

func (m *mockOrderStore) ListSelectedModifiersByOrderItem(ctx context.Context, orderItemID uuid.UUID) ([]database.SelectedModifier, error) {
	if m.listSelectedModifiersFn != nil {
		return m.listSelectedModifiersFn(ctx, orderItemID)
	}
	return []database.SelectedModifier{}, nil
}

// --- Test helpers ---

func testNumeric(val string) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(val)
	return n
}

func newOrderRouter(svc handler.OrderPlacer, status handler.StatusSetter, store handler.OrderStore) *chi.Mux {
	h := handler.NewOrderHandler(svc, status, store)
	r := chi.NewRouter()
	h.RegisterPublicRoutes(r)
	h.RegisterStaffRoutes(r)
	return r
}

func placeOrderBody(t *testing.T, stallID string) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"stall_id": stallID,
		"items": []map[string]any{
			{
				"menu_item_id": uuid.NewString(),
				"price":        10.99,
				"modifiers": []map[string]any{
					{"modifier_id": uuid.NewString(), "name": "Extra Cheese", "price_change": json.Number("1.50")},
				},
			},
			{"menu_item_id": uuid.NewString(), "price": 5.00},
		},
	})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewBuffer(body)
}

// =====================
// POST /orders
// =====================

func TestCreateOrder_Success(t *testing.T) {
	orderID := uuid.New()
	stallID := uuid.New()

	var captured service.PlaceOrderRequest
	svc := &mockOrderService{
		placeFn: func(ctx context.Context, req service.PlaceOrderRequest) (*service.PlaceOrderResult, error) {
			captured = req
			return &service.PlaceOrderResult{
				Order: database.Order{
					ID:          orderID,
					StallID:     stallID,
					Status:      enum.OrderStatusPending,
					TotalAmount: testNumeric("17.49"),
				},
			}, nil
		},
	}
	r := newOrderRouter(svc, &mockStatusService{}, &mockOrderStore{})

	req := httptest.NewRequest(http.MethodPost, "/orders", placeOrderBody(t, stallID.String()))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}

	// Price literals must survive JSON decoding verbatim.
	if captured.Items[0].Price != "10.99" {
		t.Errorf("price passed to service: got %q, want 10.99", captured.Items[0].Price)
	}
	if captured.Items[0].Modifiers[0].PriceChange != "1.50" {
		t.Errorf("price_change passed to service: got %q, want 1.50", captured.Items[0].Modifiers[0].PriceChange)
	}

	var resp struct {
		ID          uuid.UUID `json:"id"`
		Status      string    `json:"status"`
		TotalAmount string    `json:"total_amount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.ID != orderID {
		t.Errorf("id: got %s, want %s", resp.ID, orderID)
	}
	if resp.Status != enum.OrderStatusPending {
		t.Errorf("status: got %s, want PENDING", resp.Status)
	}
	if resp.TotalAmount != "17.49" {
		t.Errorf("total_amount: got %s, want 17.49", resp.TotalAmount)
	}
}

func TestCreateOrder_MissingStallID(t *testing.T) {
	r := newOrderRouter(&mockOrderService{}, &mockStatusService{}, &mockOrderStore{})

	body := bytes.NewBufferString(`{"items":[{"menu_item_id":"` + uuid.NewString() + `","price":5}]}`)
	req := httptest.NewRequest(http.MethodPost, "/orders", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	r := newOrderRouter(&mockOrderService{}, &mockStatusService{}, &mockOrderStore{})

	body := bytes.NewBufferString(`{"stall_id":"` + uuid.NewString() + `","items":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/orders", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestCreateOrder_ServiceValidationError(t *testing.T) {
	svc := &mockOrderService{
		placeFn: func(ctx context.Context, req service.PlaceOrderRequest) (*service.PlaceOrderResult, error) {
			return nil, service.ErrStallNotFound
		},
	}
	r := newOrderRouter(svc, &mockStatusService{}, &mockOrderStore{})

	req := httptest.NewRequest(http.MethodPost, "/orders", placeOrderBody(t, uuid.NewString()))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestCreateOrder_ServiceFailure(t *testing.T) {
	svc := &mockOrderService{
		placeFn: func(ctx context.Context, req service.PlaceOrderRequest) (*service.PlaceOrderResult, error) {
			return nil, context.DeadlineExceeded
		},
	}
	r := newOrderRouter(svc, &mockStatusService{}, &mockOrderStore{})

	req := httptest.NewRequest(http.MethodPost, "/orders", placeOrderBody(t, uuid.NewString()))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rec.Code)
	}
}

// =====================
// GET /orders/{id}
// =====================

func TestGetOrder_Success(t *testing.T) {
	orderID := uuid.New()
	itemID := uuid.New()

	store := &mockOrderStore{
		getOrderFn: func(ctx context.Context, id uuid.UUID) (database.Order, error) {
			if id == orderID {
				return database.Order{
					ID:          orderID,
					StallID:     uuid.New(),
					Status:      enum.OrderStatusReady,
					TotalAmount: testNumeric("12.49"),
					OrderNotes:  pgtype.Text{String: "table 5", Valid: true},
				}, nil
			}
			return database.Order{}, pgx.ErrNoRows
		},
		listOrderItemsByOrderFn: func(ctx context.Context, id uuid.UUID) ([]database.OrderItem, error) {
			return []database.OrderItem{
				{ID: itemID, OrderID: orderID, MenuItemID: uuid.New(), UnitPrice: testNumeric("10.99")},
			}, nil
		},
		listSelectedModifiersFn: func(ctx context.Context, id uuid.UUID) ([]database.SelectedModifier, error) {
			return []database.SelectedModifier{
				{ID: uuid.New(), OrderItemID: itemID, ModifierID: uuid.New(), ModifierName: "Extra Cheese", PriceChange: testNumeric("1.50")},
			}, nil
		},
	}
	r := newOrderRouter(&mockOrderService{}, &mockStatusService{}, store)

	req := httptest.NewRequest(http.MethodGet, "/orders/"+orderID.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Status     string  `json:"status"`
		OrderNotes *string `json:"order_notes"`
		Items      []struct {
			UnitPrice string `json:"unit_price"`
			Modifiers []struct {
				ModifierName string `json:"modifier_name"`
				PriceChange  string `json:"price_change"`
			} `json:"modifiers"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Status != enum.OrderStatusReady {
		t.Errorf("status: got %s, want READY", resp.Status)
	}
	if resp.OrderNotes == nil || *resp.OrderNotes != "table 5" {
		t.Error("order_notes missing")
	}
	if len(resp.Items) != 1 || resp.Items[0].UnitPrice != "10.99" {
		t.Fatalf("unexpected items: %+v", resp.Items)
	}
	if len(resp.Items[0].Modifiers) != 1 || resp.Items[0].Modifiers[0].PriceChange != "1.50" {
		t.Fatalf("unexpected modifiers: %+v", resp.Items[0].Modifiers)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	r := newOrderRouter(&mockOrderService{}, &mockStatusService{}, &mockOrderStore{})

	req := httptest.NewRequest(http.MethodGet, "/orders/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
}

func TestGetOrder_InvalidID(t *testing.T) {
	r := newOrderRouter(&mockOrderService{}, &mockStatusService{}, &mockOrderStore{})

	req := httptest.NewRequest(http.MethodGet, "/orders/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

// =====================
// GET /orders
// =====================

func TestListOrders_StatusFilter(t *testing.T) {
	var captured database.ListOrdersParams
	store := &mockOrderStore{
		listOrdersFn: func(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error) {
			captured = arg
			return []database.Order{
				{ID: uuid.New(), Status: enum.OrderStatusPending, TotalAmount: testNumeric("5.00")},
			}, nil
		},
	}
	r := newOrderRouter(&mockOrderService{}, &mockStatusService{}, store)

	req := httptest.NewRequest(http.MethodGet, "/orders?status=PENDING&limit=5", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if !captured.Status.Valid || captured.Status.String != enum.OrderStatusPending {
		t.Errorf("status filter not passed: %+v", captured.Status)
	}
	if captured.Limit != 5 {
		t.Errorf("limit: got %d, want 5", captured.Limit)
	}
}

func TestListOrders_InvalidStatusFilter(t *testing.T) {
	r := newOrderRouter(&mockOrderService{}, &mockStatusService{}, &mockOrderStore{})

	req := httptest.NewRequest(http.MethodGet, "/orders?status=BOGUS", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

// =====================
// PUT /orders/{id}/status
// =====================

func TestUpdateStatus_Success(t *testing.T) {
	orderID := uuid.New()
	status := &mockStatusService{
		setFn: func(ctx context.Context, id uuid.UUID, target string) (database.Order, error) {
			if id != orderID {
				return database.Order{}, service.ErrOrderNotFound
			}
			return database.Order{ID: orderID, Status: target, TotalAmount: testNumeric("9.00")}, nil
		},
	}
	r := newOrderRouter(&mockOrderService{}, status, &mockOrderStore{})

	body := bytes.NewBufferString(`{"status":"READY"}`)
	req := httptest.NewRequest(http.MethodPut, "/orders/"+orderID.String()+"/status", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != enum.OrderStatusReady {
		t.Errorf("status: got %s, want READY", resp.Status)
	}
}

func TestUpdateStatus_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"invalid status", service.ErrInvalidStatus, http.StatusBadRequest},
		{"not found", service.ErrOrderNotFound, http.StatusNotFound},
		{"transition rejected", service.ErrTransitionNotAllowed, http.StatusConflict},
		{"internal", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status := &mockStatusService{
				setFn: func(ctx context.Context, id uuid.UUID, target string) (database.Order, error) {
					return database.Order{}, tc.err
				},
			}
			r := newOrderRouter(&mockOrderService{}, status, &mockOrderStore{})

			body := bytes.NewBufferString(`{"status":"READY"}`)
			req := httptest.NewRequest(http.MethodPut, "/orders/"+uuid.NewString()+"/status", body)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d", rec.Code, tc.wantCode)
			}
		})
	}
}

func TestUpdateStatus_MissingStatus(t *testing.T) {
	r := newOrderRouter(&mockOrderService{}, &mockStatusService{}, &mockOrderStore{})

	body := bytes.NewBufferString(`{}`)
	req := httptest.NewRequest(http.MethodPut, "/orders/"+uuid.NewString()+"/status", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}
