package handler

import (
	"context"
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

// ReportStore defines the database methods needed by report handlers.
// Satisfied by *database.Queries.
type ReportStore interface {
	GetSalesTotals(ctx context.Context, arg database.GetSalesTotalsParams) (database.GetSalesTotalsRow, error)
	GetStallSalesTotals(ctx context.Context, arg database.GetStallSalesTotalsParams) (database.GetStallSalesTotalsRow, error)
	GetStall(ctx context.Context, id uuid.UUID) (database.Stall, error)
	GetStallMarginInputs(ctx context.Context, arg database.GetStallMarginInputsParams) (database.GetStallMarginInputsRow, error)
	ListMenuProfitability(ctx context.Context, stallID uuid.UUID) ([]database.ListMenuProfitabilityRow, error)
}

// ReportHandler handles reporting endpoints.
type ReportHandler struct {
	store ReportStore
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(store ReportStore) *ReportHandler {
	return &ReportHandler{store: store}
}

// RegisterAdminRoutes registers the report endpoints.
func (h *ReportHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/reports/sales", h.Sales)
	r.Get("/reports/stalls/{id}/breakeven", h.Breakeven)
	r.Get("/reports/stalls/{id}/menu-profitability", h.MenuProfitability)
}

// --- Response types ---

type salesReportResponse struct {
	Period     string    `json:"period"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	OrderCount int64     `json:"order_count"`
	TotalSales string    `json:"total_sales"`
}

type breakevenResponse struct {
	StallID           uuid.UUID `json:"stall_id"`
	Month             string    `json:"month"`
	FixedCostsMonthly string    `json:"fixed_costs_monthly"`
	Revenue           string    `json:"revenue"`
	CostOfGoods       string    `json:"cost_of_goods"`
	GrossMargin       string    `json:"gross_margin"`
	BreakevenReached  bool      `json:"breakeven_reached"`
}

type menuProfitabilityResponse struct {
	MenuItemID      uuid.UUID `json:"menu_item_id"`
	Name            string    `json:"name"`
	Price           string    `json:"price"`
	CostOfGoodsSold string    `json:"cost_of_goods_sold"`
	MarginPerUnit   string    `json:"margin_per_unit"`
	UnitsSold       int64     `json:"units_sold"`
	Revenue         string    `json:"revenue"`
}

// --- Handlers ---

// Sales handles GET /reports/sales?period=daily|weekly|monthly&stall_id=...
func (h *ReportHandler) Sales(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "daily"
	}

	now := time.Now().UTC()
	var start, end time.Time
	switch period {
	case "daily":
		start = now.Truncate(24 * time.Hour)
		end = start.AddDate(0, 0, 1)
	case "weekly":
		start = now.Truncate(24 * time.Hour).AddDate(0, 0, -6)
		end = now.Truncate(24 * time.Hour).AddDate(0, 0, 1)
	case "monthly":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "period must be daily, weekly or monthly"})
		return
	}

	startTz := pgtype.Timestamptz{Time: start, Valid: true}
	endTz := pgtype.Timestamptz{Time: end, Valid: true}

	var orderCount int64
	var totalSales pgtype.Numeric

	if s := r.URL.Query().Get("stall_id"); s != "" {
		stallID, err := uuid.Parse(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid stall_id"})
			return
		}
		row, err := h.store.GetStallSalesTotals(r.Context(), database.GetStallSalesTotalsParams{
			StallID:   stallID,
			StartDate: startTz,
			EndDate:   endTz,
		})
		if err != nil {
			log.Printf("ERROR: stall sales totals: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		orderCount, totalSales = row.OrderCount, row.TotalSales
	} else {
		row, err := h.store.GetSalesTotals(r.Context(), database.GetSalesTotalsParams{
			StartDate: startTz,
			EndDate:   endTz,
		})
		if err != nil {
			log.Printf("ERROR: sales totals: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		orderCount, totalSales = row.OrderCount, row.TotalSales
	}

	writeJSON(w, http.StatusOK, salesReportResponse{
		Period:     period,
		StartDate:  start,
		EndDate:    end,
		OrderCount: orderCount,
		TotalSales: numericToString(totalSales),
	})
}

// Breakeven handles GET /reports/stalls/{id}/breakeven?month=YYYY-MM.
// Compares the stall's gross margin for the month against its fixed costs.
func (h *ReportHandler) Breakeven(w http.ResponseWriter, r *http.Request) {
	stallID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid stall ID"})
		return
	}

	now := time.Now().UTC()
	month := now.Format("2006-01")
	if s := r.URL.Query().Get("month"); s != "" {
		if _, err := time.Parse("2006-01", s); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid month format, use YYYY-MM"})
			return
		}
		month = s
	}
	start, _ := time.Parse("2006-01", month)
	end := start.AddDate(0, 1, 0)

	stall, err := h.store.GetStall(r.Context(), stallID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "stall not found"})
			return
		}
		log.Printf("ERROR: get stall for breakeven: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	inputs, err := h.store.GetStallMarginInputs(r.Context(), database.GetStallMarginInputsParams{
		StallID:   stallID,
		StartDate: pgtype.Timestamptz{Time: start, Valid: true},
		EndDate:   pgtype.Timestamptz{Time: end, Valid: true},
	})
	if err != nil {
		log.Printf("ERROR: stall margin inputs: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	revenue := numericDecimal(inputs.Revenue)
	costOfGoods := numericDecimal(inputs.CostOfGoods)
	fixedCosts := numericDecimal(stall.FixedCostsMonthly)
	grossMargin := revenue.Sub(costOfGoods)

	writeJSON(w, http.StatusOK, breakevenResponse{
		StallID:           stallID,
		Month:             month,
		FixedCostsMonthly: fixedCosts.StringFixed(2),
		Revenue:           revenue.StringFixed(2),
		CostOfGoods:       costOfGoods.StringFixed(2),
		GrossMargin:       grossMargin.StringFixed(2),
		BreakevenReached:  grossMargin.GreaterThanOrEqual(fixedCosts),
	})
}

// MenuProfitability handles GET /reports/stalls/{id}/menu-profitability.
func (h *ReportHandler) MenuProfitability(w http.ResponseWriter, r *http.Request) {
	stallID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid stall ID"})
		return
	}

	rows, err := h.store.ListMenuProfitability(r.Context(), stallID)
	if err != nil {
		log.Printf("ERROR: menu profitability: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]menuProfitabilityResponse, len(rows))
	for i, row := range rows {
		price := numericDecimal(row.Price)
		cogs := numericDecimal(row.CostOfGoodsSold)
		resp[i] = menuProfitabilityResponse{
			MenuItemID:      row.ID,
			Name:            row.Name,
			Price:           price.StringFixed(2),
			CostOfGoodsSold: cogs.StringFixed(2),
			MarginPerUnit:   price.Sub(cogs).StringFixed(2),
			UnitsSold:       row.UnitsSold,
			Revenue:         numericToString(row.Revenue),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// numericDecimal converts a pgtype.Numeric to a decimal, zero on null.
func numericDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}
