package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/SVO0808/SVO-STUDIO/pkg/errors"

	"github.com/SVO0808/SVO-STUDIO/internal/domain"
	"github.com/SVO0808/SVO-STUDIO/internal/event"
)

// OrderConfirmation is the result of a successful checkout.
type OrderConfirmation struct {
	OrderID     string               `json:"order_id"`
	SessionID   string               `json:"session_id"`
	ItemCount   int                  `json:"item_count"`
	Pricing     domain.PricingResult `json:"pricing"`
	ConfirmedAt time.Time            `json:"confirmed_at"`
}

// CheckoutService implements the confirm-order flow on top of the cart.
type CheckoutService struct {
	carts    *CartService
	producer *event.Producer
	logger   *slog.Logger
	now      func() time.Time
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(carts *CartService, producer *event.Producer, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		producer: producer,
		logger:   logger,
		now:      time.Now,
	}
}

// NewCheckoutServiceAt creates a checkout service with an injected clock,
// used to pin card expiry checks in tests.
func NewCheckoutServiceAt(carts *CartService, producer *event.Producer, logger *slog.Logger, now func() time.Time) *CheckoutService {
	s := NewCheckoutService(carts, producer, logger)
	s.now = now
	return s
}

// ConfirmOrder validates the card details and, when they pass, prices the
// cart one final time, emits an order.confirmed event and clears the cart.
//
// Field validation failures are data, not errors: the returned map carries
// every failing field with its display message so the form shows them all at
// once. A non-nil map means no order was placed.
func (s *CheckoutService) ConfirmOrder(ctx context.Context, sessionID string, details domain.CardDetails) (*OrderConfirmation, map[domain.PaymentField]string, error) {
	if sessionID == "" {
		return nil, nil, apperrors.InvalidInput("session id is required")
	}

	if fieldErrs := details.Validate(s.now()); len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	cart, quote, err := s.carts.Quote(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if cart.IsEmpty() {
		return nil, nil, apperrors.InvalidInput("cannot check out an empty cart")
	}

	confirmation := &OrderConfirmation{
		OrderID:     uuid.New().String(),
		SessionID:   sessionID,
		ItemCount:   cart.TotalItemCount(),
		Pricing:     quote,
		ConfirmedAt: s.now().UTC(),
	}

	if err := s.producer.PublishOrderConfirmed(ctx, sessionID, confirmation.OrderID, confirmation.ItemCount, quote.Total); err != nil {
		s.logger.WarnContext(ctx, "failed to publish order.confirmed event",
			slog.String("session_id", sessionID),
			slog.String("order_id", confirmation.OrderID),
			slog.String("error", err.Error()),
		)
	}

	if _, err := s.carts.Clear(ctx, sessionID); err != nil {
		return nil, nil, fmt.Errorf("clear cart after order: %w", err)
	}

	s.logger.InfoContext(ctx, "order confirmed",
		slog.String("session_id", sessionID),
		slog.String("order_id", confirmation.OrderID),
		slog.Int("item_count", confirmation.ItemCount),
		slog.Int64("total", quote.Total),
	)

	return confirmation, nil, nil
}
