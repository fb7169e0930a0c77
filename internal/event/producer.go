package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SVO0808/SVO-STUDIO/internal/domain"
	pkgkafka "github.com/SVO0808/SVO-STUDIO/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCartUpdated    = "storefront.cart.updated"
	TopicCartCleared    = "storefront.cart.cleared"
	TopicCouponApplied  = "storefront.coupon.applied"
	TopicOrderConfirmed = "storefront.order.confirmed"
)

// Source identifier for events originating from this service.
const SourceStorefront = "storefront-engine"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID string         `json:"session_id"`
	Items     []CartItemData `json:"items"`
	ItemCount int            `json:"item_count"`
	Subtotal  int64          `json:"subtotal"`
}

// CartItemData is the item payload within cart events.
type CartItemData struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Size      string `json:"size"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// CouponAppliedData is the payload for a coupon.applied event.
type CouponAppliedData struct {
	SessionID string `json:"session_id"`
	Code      string `json:"code"`
	Subtotal  int64  `json:"subtotal"`
}

// OrderConfirmedData is the payload for an order.confirmed event.
type OrderConfirmedData struct {
	SessionID string `json:"session_id"`
	OrderID   string `json:"order_id"`
	ItemCount int    `json:"item_count"`
	Total     int64  `json:"total"`
}

// Producer publishes storefront domain events to Kafka. A nil Producer drops
// events silently, which keeps local setups without a broker working.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	if p == nil || p.kafka == nil {
		return nil
	}

	items := make([]CartItemData, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = CartItemData{
			ProductID: item.ProductID,
			Title:     item.Title,
			Size:      item.Size,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}
	}

	data := CartUpdatedData{
		SessionID: cart.SessionID,
		Items:     items,
		ItemCount: cart.TotalItemCount(),
		Subtotal:  cart.Subtotal(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.SessionID, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("session_id", cart.SessionID),
		slog.Int("item_count", cart.TotalItemCount()),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, sessionID string) error {
	if p == nil || p.kafka == nil {
		return nil
	}

	data := CartClearedData{SessionID: sessionID}

	event, err := pkgkafka.NewEvent(TopicCartCleared, sessionID, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("session_id", sessionID),
	)

	return nil
}

// PublishCouponApplied publishes a coupon.applied event.
func (p *Producer) PublishCouponApplied(ctx context.Context, cart *domain.Cart, code string) error {
	if p == nil || p.kafka == nil {
		return nil
	}

	data := CouponAppliedData{
		SessionID: cart.SessionID,
		Code:      code,
		Subtotal:  cart.Subtotal(),
	}

	event, err := pkgkafka.NewEvent(TopicCouponApplied, cart.SessionID, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create coupon.applied event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCouponApplied, event); err != nil {
		return fmt.Errorf("publish coupon.applied event: %w", err)
	}

	p.logger.DebugContext(ctx, "published coupon.applied event",
		slog.String("session_id", cart.SessionID),
		slog.String("code", code),
	)

	return nil
}

// PublishOrderConfirmed publishes an order.confirmed event.
func (p *Producer) PublishOrderConfirmed(ctx context.Context, sessionID, orderID string, itemCount int, total int64) error {
	if p == nil || p.kafka == nil {
		return nil
	}

	data := OrderConfirmedData{
		SessionID: sessionID,
		OrderID:   orderID,
		ItemCount: itemCount,
		Total:     total,
	}

	event, err := pkgkafka.NewEvent(TopicOrderConfirmed, sessionID, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.confirmed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderConfirmed, event); err != nil {
		return fmt.Errorf("publish order.confirmed event: %w", err)
	}

	p.logger.InfoContext(ctx, "published order.confirmed event",
		slog.String("session_id", sessionID),
		slog.String("order_id", orderID),
	)

	return nil
}
