package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/hawkerhub/api/internal/database"
	"github.com/hawkerhub/api/internal/pricing"
)

// Errors returned by the order service.
var (
	ErrInvalidStallID     = errors.New("invalid stall_id")
	ErrStallNotFound      = errors.New("stall not found")
	ErrEmptyItems         = errors.New("items are required")
	ErrInvalidMenuItemID  = errors.New("invalid menu_item_id")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrMenuItemMismatch   = errors.New("menu item does not belong to stall")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrInvalidModifierID  = errors.New("invalid modifier_id")
	ErrModifierNotFound   = errors.New("modifier not found")
	ErrInvalidPriceChange = errors.New("invalid price_change")
	ErrNegativeTotal      = errors.New("order total cannot be negative")
	ErrIngredientNotFound = errors.New("inventory item not found")
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStore defines the DB methods needed to place orders.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	GetStall(ctx context.Context, id uuid.UUID) (database.Stall, error)
	GetMenuItemForOrder(ctx context.Context, id uuid.UUID) (database.GetMenuItemForOrderRow, error)
	GetModifierForOrder(ctx context.Context, id uuid.UUID) (database.GetModifierForOrderRow, error)
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
	CreateSelectedModifier(ctx context.Context, arg database.CreateSelectedModifierParams) (database.SelectedModifier, error)
	ListRecipeItemsByMenuItem(ctx context.Context, menuItemID uuid.UUID) ([]database.RecipeItem, error)
	DecrementInventoryStock(ctx context.Context, arg database.DecrementInventoryStockParams) (int64, error)
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
// This allows the service to create store instances from transactions.
type NewOrderStore func(db database.DBTX) OrderStore

// Notifier publishes order events to connected clients. Implementations
// must be called only after the surrounding transaction has committed.
type Notifier interface {
	OrderCreated(order database.Order)
	OrderStatusChanged(order database.Order)
}

// PlaceOrderRequest is the raw input for placing an order.
type PlaceOrderRequest struct {
	StallID    string
	OrderNotes string
	Items      []PlaceOrderItemRequest
}

// PlaceOrderItemRequest is a single item in the cart.
type PlaceOrderItemRequest struct {
	MenuItemID string
	Price      string
	Notes      string
	Modifiers  []PlaceOrderModifierRequest
}

// PlaceOrderModifierRequest is a modifier selected for a cart item.
type PlaceOrderModifierRequest struct {
	ModifierID  string
	Name        string
	PriceChange string
}

// PlaceOrderResult is the full created order with items.
type PlaceOrderResult struct {
	Order database.Order
	Items []OrderItemResult
}

// OrderItemResult is an item with its selected modifiers.
type OrderItemResult struct {
	Item      database.OrderItem
	Modifiers []database.SelectedModifier
}

// OrderService handles order placement business logic.
type OrderService struct {
	pool     TxBeginner
	newStore NewOrderStore
	notifier Notifier

	// When true, client-declared prices are discarded and the catalog's
	// current prices are charged instead.
	catalogPricing bool
}

// NewOrderService creates a new OrderService. The default pricing mode
// charges whatever prices the client declared.
func NewOrderService(pool TxBeginner, newStore NewOrderStore, notifier Notifier) *OrderService {
	return &OrderService{pool: pool, newStore: newStore, notifier: notifier}
}

// UseCatalogPricing switches the service to charge catalog prices,
// ignoring client-declared amounts. Call before serving requests.
func (s *OrderService) UseCatalogPricing() {
	s.catalogPricing = true
}

// PlaceOrder validates the cart, writes the order, its items and selected
// modifiers, and decrements ingredient stock, all in one transaction.
// Either every row lands or none do. The new_order event fires only after
// commit, exactly once.
func (s *OrderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	stallID, err := uuid.Parse(req.StallID)
	if err != nil {
		return nil, ErrInvalidStallID
	}

	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}

	cart, err := parseCart(req.Items)
	if err != nil {
		return nil, err
	}

	result, err := s.placeOrderTx(ctx, stallID, req.OrderNotes, cart)
	if err != nil {
		return nil, err
	}

	// Transaction committed; announce to the kitchen.
	s.notifier.OrderCreated(result.Order)

	return result, nil
}

// parseCart converts the raw request items into a priced cart.
func parseCart(items []PlaceOrderItemRequest) ([]pricing.CartItem, error) {
	cart := make([]pricing.CartItem, 0, len(items))
	for i, item := range items {
		menuItemID, err := uuid.Parse(item.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("item[%d]: %w", i, ErrInvalidMenuItemID)
		}
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return nil, fmt.Errorf("item[%d]: %w", i, ErrInvalidPrice)
		}

		cartItem := pricing.CartItem{
			MenuItemID: menuItemID,
			Price:      price,
			Notes:      item.Notes,
		}
		for j, mod := range item.Modifiers {
			modID, err := uuid.Parse(mod.ModifierID)
			if err != nil {
				return nil, fmt.Errorf("item[%d].modifiers[%d]: %w", i, j, ErrInvalidModifierID)
			}
			delta, err := decimal.NewFromString(mod.PriceChange)
			if err != nil {
				return nil, fmt.Errorf("item[%d].modifiers[%d]: %w", i, j, ErrInvalidPriceChange)
			}
			cartItem.Modifiers = append(cartItem.Modifiers, pricing.CartModifier{
				ModifierID:  modID,
				Name:        mod.Name,
				PriceChange: delta,
			})
		}
		cart = append(cart, cartItem)
	}
	return cart, nil
}

// placeOrderTx executes the full order placement in a single transaction.
func (s *OrderService) placeOrderTx(ctx context.Context, stallID uuid.UUID, orderNotes string, cart []pricing.CartItem) (*PlaceOrderResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	// --- Validate stall ---
	if _, err := store.GetStall(ctx, stallID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStallNotFound
		}
		return nil, fmt.Errorf("get stall: %w", err)
	}

	// --- Validate menu items belong to the stall ---
	for i, item := range cart {
		row, err := store.GetMenuItemForOrder(ctx, item.MenuItemID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("item[%d]: %w", i, ErrMenuItemNotFound)
			}
			return nil, fmt.Errorf("item[%d]: get menu item: %w", i, err)
		}
		if row.StallID != stallID {
			return nil, fmt.Errorf("item[%d]: %w", i, ErrMenuItemMismatch)
		}
	}

	// --- Resolve prices ---
	if s.catalogPricing {
		cart, err = pricing.ResolveFromCatalog(ctx, storeCatalog{store}, cart)
		if err != nil {
			return nil, err
		}
	}
	totalAmount := pricing.Total(cart)
	if totalAmount.IsNegative() {
		return nil, ErrNegativeTotal
	}

	// --- Insert order ---
	notes := pgtype.Text{}
	if orderNotes != "" {
		notes = pgtype.Text{String: orderNotes, Valid: true}
	}
	order, err := store.CreateOrder(ctx, database.CreateOrderParams{
		StallID:     stallID,
		TotalAmount: decimalToNumeric(totalAmount),
		OrderNotes:  notes,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// --- Insert items and modifiers ---
	var itemResults []OrderItemResult
	for _, item := range cart {
		itemNotes := pgtype.Text{}
		if item.Notes != "" {
			itemNotes = pgtype.Text{String: item.Notes, Valid: true}
		}
		orderItem, err := store.CreateOrderItem(ctx, database.CreateOrderItemParams{
			OrderID:    order.ID,
			MenuItemID: item.MenuItemID,
			UnitPrice:  decimalToNumeric(item.Price),
			Notes:      itemNotes,
		})
		if err != nil {
			return nil, fmt.Errorf("create order item: %w", err)
		}

		var modResults []database.SelectedModifier
		for _, mod := range item.Modifiers {
			sm, err := store.CreateSelectedModifier(ctx, database.CreateSelectedModifierParams{
				OrderItemID:  orderItem.ID,
				ModifierID:   mod.ModifierID,
				ModifierName: mod.Name,
				PriceChange:  decimalToNumeric(mod.PriceChange),
			})
			if err != nil {
				return nil, fmt.Errorf("create selected modifier: %w", err)
			}
			modResults = append(modResults, sm)
		}

		itemResults = append(itemResults, OrderItemResult{
			Item:      orderItem,
			Modifiers: modResults,
		})
	}

	// --- Decrement ingredient stock ---
	if err := s.decrementIngredients(ctx, store, cart); err != nil {
		return nil, err
	}

	// --- Commit ---
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &PlaceOrderResult{
		Order: order,
		Items: itemResults,
	}, nil
}

// decrementIngredients accumulates recipe usage across the whole cart and
// issues one atomic decrement per distinct ingredient. Two cart lines of
// the same dish decrement its ingredients twice. Statements run in sorted
// ingredient order so concurrent orders lock rows in the same sequence.
func (s *OrderService) decrementIngredients(ctx context.Context, store OrderStore, cart []pricing.CartItem) error {
	recipes := make(map[uuid.UUID][]database.RecipeItem)
	usage := make(map[uuid.UUID]decimal.Decimal)

	for _, item := range cart {
		recipe, ok := recipes[item.MenuItemID]
		if !ok {
			var err error
			recipe, err = store.ListRecipeItemsByMenuItem(ctx, item.MenuItemID)
			if err != nil {
				return fmt.Errorf("list recipe for menu item %s: %w", item.MenuItemID, err)
			}
			recipes[item.MenuItemID] = recipe
		}
		for _, ri := range recipe {
			usage[ri.InventoryItemID] = usage[ri.InventoryItemID].Add(numericToDecimal(ri.QuantityUsed))
		}
	}

	ids := make([]uuid.UUID, 0, len(usage))
	for id := range usage {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	for _, id := range ids {
		rows, err := store.DecrementInventoryStock(ctx, database.DecrementInventoryStockParams{
			ID:       id,
			Quantity: decimalToQuantity(usage[id]),
		})
		if err != nil {
			return fmt.Errorf("decrement inventory item %s: %w", id, err)
		}
		if rows == 0 {
			return fmt.Errorf("inventory item %s: %w", id, ErrIngredientNotFound)
		}
	}
	return nil
}

// storeCatalog adapts an OrderStore to the pricing catalog interface.
type storeCatalog struct {
	store OrderStore
}

func (c storeCatalog) MenuItemPrice(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	row, err := c.store.GetMenuItemForOrder(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, ErrMenuItemNotFound
		}
		return decimal.Zero, err
	}
	return numericToDecimal(row.Price), nil
}

func (c storeCatalog) ModifierPriceChange(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	row, err := c.store.GetModifierForOrder(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, ErrModifierNotFound
		}
		return decimal.Zero, err
	}
	return numericToDecimal(row.PriceChange), nil
}

// --- Helpers ---

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
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

// decimalToNumeric converts a money amount (2 decimal places).
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}

// decimalToQuantity converts a stock quantity (3 decimal places).
func decimalToQuantity(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(3))
	return n
}
