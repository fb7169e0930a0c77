package repository

import (
	"context"
	"errors"

	"github.com/SVO0808/SVO-STUDIO/internal/domain"
)

// ErrCorruptCart reports that a persisted cart payload could not be decoded.
// Callers recover from it by starting a fresh cart; it is never surfaced to
// the shopper.
var ErrCorruptCart = errors.New("corrupt cart payload")

// CartRepository is the storage adapter for cart persistence. The cart is
// serialized wholesale and stored under a fixed per-session key.
type CartRepository interface {
	// Get retrieves the cart for a session. Returns an error wrapping
	// pkg/errors.ErrNotFound when no cart is stored, and one wrapping
	// ErrCorruptCart when the stored payload does not decode.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists the cart, overwriting any existing cart for the session.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the cart for a session. Deleting an absent cart is not
	// an error.
	Delete(ctx context.Context, sessionID string) error
}
