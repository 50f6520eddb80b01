package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hawkerhub/api/internal/database"
	"github.com/hawkerhub/api/internal/enum"
)

// Errors returned by the status service.
var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
)

// TransitionValidator decides whether an order may move from its current
// status to the requested target. Returning an error aborts the update.
type TransitionValidator func(current, target string) error

// AnyTarget permits every move between valid statuses, including skips
// (PENDING straight to SERVED) and backwards corrections. This is the
// default: kitchen staff fix mis-taps by re-setting the status freely.
func AnyTarget(current, target string) error {
	return nil
}

var nextStatus = map[string]string{
	enum.OrderStatusPending:    enum.OrderStatusInProgress,
	enum.OrderStatusInProgress: enum.OrderStatusReady,
	enum.OrderStatusReady:      enum.OrderStatusServed,
}

// Sequential permits only the forward chain
// PENDING -> IN_PROGRESS -> READY -> SERVED, one step at a time.
// SERVED is terminal.
func Sequential(current, target string) error {
	if nextStatus[current] != target {
		return fmt.Errorf("cannot move from %s to %s: %w", current, target, ErrTransitionNotAllowed)
	}
	return nil
}

// StatusStore defines the DB methods needed to update order status.
// Satisfied by *database.Queries.
type StatusStore interface {
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
}

// StatusService moves orders through their lifecycle and announces every
// change to the kitchen feed and the order's room.
type StatusService struct {
	store    StatusStore
	notifier Notifier
	validate TransitionValidator
}

// NewStatusService creates a StatusService. A nil validator defaults to
// AnyTarget.
func NewStatusService(store StatusStore, notifier Notifier, validate TransitionValidator) *StatusService {
	if validate == nil {
		validate = AnyTarget
	}
	return &StatusService{store: store, notifier: notifier, validate: validate}
}

// SetStatus updates an order's status after running the transition
// validator against the current value. The order_status_update event
// fires only after the row is written, exactly once.
func (s *StatusService) SetStatus(ctx context.Context, orderID uuid.UUID, target string) (database.Order, error) {
	if !isSettableStatus(target) {
		return database.Order{}, ErrInvalidStatus
	}

	current, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, ErrOrderNotFound
		}
		return database.Order{}, fmt.Errorf("get order: %w", err)
	}

	if err := s.validate(current.Status, target); err != nil {
		return database.Order{}, err
	}

	updated, err := s.store.UpdateOrderStatus(ctx, database.UpdateOrderStatusParams{
		ID:     orderID,
		Status: target,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, ErrOrderNotFound
		}
		return database.Order{}, fmt.Errorf("update order status: %w", err)
	}

	s.notifier.OrderStatusChanged(updated)

	return updated, nil
}

// isSettableStatus reports whether target is a status staff may set.
// PENDING is assigned at creation only and never re-entered via the API.
func isSettableStatus(s string) bool {
	switch s {
	case enum.OrderStatusInProgress, enum.OrderStatusReady, enum.OrderStatusServed:
		return true
	}
	return false
}
