package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "github.com/SVO0808/SVO-STUDIO/pkg/errors"

	"github.com/SVO0808/SVO-STUDIO/internal/domain"
	"github.com/SVO0808/SVO-STUDIO/internal/event"
	"github.com/SVO0808/SVO-STUDIO/internal/repository"
)

// Cart operation upper-bound limits to prevent abuse.
const (
	// MaxQuantityPerItem is the maximum quantity allowed for a single cart item.
	MaxQuantityPerItem = 100
	// MaxItemsPerCart is the maximum number of distinct line items allowed in a cart.
	MaxItemsPerCart = 50
	// MaxPriceCents is the maximum unit price in cents (100,000.00) allowed per item.
	MaxPriceCents = 100_000_00
)

// AddItemInput holds the parameters for adding an item to the cart.
type AddItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Title     string `json:"title"`
	UnitPrice int64  `json:"unit_price" validate:"gte=0"`
	ImageURL  string `json:"image_url"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// CartService implements the business logic for cart operations.
type CartService struct {
	repo     repository.CartRepository
	producer *event.Producer
	pricing  domain.PricingConfig
	coupons  *domain.CouponRules
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, producer *event.Producer, pricing domain.PricingConfig, coupons *domain.CouponRules, logger *slog.Logger) *CartService {
	return &CartService{
		repo:     repo,
		producer: producer,
		pricing:  pricing,
		coupons:  coupons,
		logger:   logger,
	}
}

// GetCart retrieves the cart for a session. A session without a stored cart
// gets a fresh empty cart. A stored payload that no longer decodes is
// discarded the same way: the shopper starts over rather than seeing an
// error page.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewCart(sessionID), nil
		}
		if errors.Is(err, repository.ErrCorruptCart) {
			s.logger.WarnContext(ctx, "discarding corrupt cart payload",
				slog.String("session_id", sessionID),
			)
			return domain.NewCart(sessionID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// AddItem adds an item to the session's cart. An existing line with the same
// product and size merges by increasing quantity, keeping the original unit
// price snapshot. An input without a product ID is ignored and the cart is
// returned unchanged.
func (s *CartService) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if input.ProductID == "" {
		return cart, nil
	}
	if input.UnitPrice < 0 {
		return nil, apperrors.InvalidInput("unit price must not be negative")
	}
	if input.UnitPrice > MaxPriceCents {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unit price must not exceed %d cents", MaxPriceCents))
	}
	if input.Quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}
	if cart.FindItemIndex(input.ProductID, input.Size) < 0 && len(cart.Items) >= MaxItemsPerCart {
		return nil, apperrors.InvalidInput(fmt.Sprintf("cart must not exceed %d distinct items", MaxItemsPerCart))
	}

	cart.AddItem(domain.LineItem{
		ProductID: input.ProductID,
		Title:     input.Title,
		UnitPrice: input.UnitPrice,
		ImageURL:  input.ImageURL,
		Size:      input.Size,
		Quantity:  input.Quantity,
	})

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishUpdated(ctx, cart)

	return cart, nil
}

// RemoveItem deletes the line item at the given position. An out-of-range
// index is a no-op: the cart is returned unchanged and nothing is persisted.
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, index int) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !cart.RemoveItem(index) {
		return cart, nil
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishUpdated(ctx, cart)

	return cart, nil
}

// ChangeQuantity adds delta to the quantity of the line item at the given
// position, clamped to a minimum of 1. An out-of-range index is a no-op.
func (s *CartService) ChangeQuantity(ctx context.Context, sessionID string, index, delta int) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !cart.ChangeQuantity(index, delta) {
		return cart, nil
	}
	if cart.Items[index].Quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishUpdated(ctx, cart)

	return cart, nil
}

// Clear replaces the session's cart with a fresh empty one. The empty cart is
// persisted rather than the key being deleted, so the discount flag and any
// stale items are wiped in one step.
func (s *CartService) Clear(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart := domain.NewCart(sessionID)
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx, sessionID); err != nil {
		s.logger.WarnContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	return cart, nil
}

// ApplyCoupon runs a coupon apply attempt against the session's cart. The
// cart is persisted only when the attempt actually changed it.
func (s *CartService) ApplyCoupon(ctx context.Context, sessionID, code string) (domain.CouponOutcome, *domain.Cart, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}

	outcome := cart.ApplyCoupon(code, s.coupons)
	if outcome != domain.CouponApplied {
		return outcome, cart, nil
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return "", nil, fmt.Errorf("save cart: %w", err)
	}

	if err := s.producer.PublishCouponApplied(ctx, cart, code); err != nil {
		s.logger.WarnContext(ctx, "failed to publish coupon.applied event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	return outcome, cart, nil
}

// Quote returns the session's cart together with its derived pricing
// breakdown. Nothing is persisted.
func (s *CartService) Quote(ctx context.Context, sessionID string) (*domain.Cart, domain.PricingResult, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, domain.PricingResult{}, err
	}
	return cart, domain.Quote(cart, s.pricing), nil
}

// Pricing exposes the configured pricing rules.
func (s *CartService) Pricing() domain.PricingConfig {
	return s.pricing
}

// publishUpdated emits a cart.updated event. Publish failures are logged and
// swallowed; the cart write already succeeded and the shopper should not see
// a broker outage.
func (s *CartService) publishUpdated(ctx context.Context, cart *domain.Cart) {
	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.WarnContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
	}
}
