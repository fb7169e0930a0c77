package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/SVO0808/SVO-STUDIO/internal/domain"
	"github.com/SVO0808/SVO-STUDIO/internal/repository"
	apperrors "github.com/SVO0808/SVO-STUDIO/pkg/errors"
)

// CartRepository is an in-memory repository.CartRepository, used when no
// Redis is configured and in tests. Carts go through the same JSON
// round trip as the Redis store so serialization behavior is identical.
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

// NewCartRepository creates an empty in-memory cart repository.
func NewCartRepository() *CartRepository {
	return &CartRepository{
		carts: make(map[string][]byte),
	}
}

// Get retrieves the cart stored for the session.
func (r *CartRepository) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	r.mu.RLock()
	data, ok := r.carts[sessionID]
	r.mu.RUnlock()

	if !ok {
		return nil, apperrors.NotFound("cart", sessionID)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", repository.ErrCorruptCart)
	}

	return &cart, nil
}

// Save persists the cart for its session.
func (r *CartRepository) Save(_ context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	r.mu.Lock()
	r.carts[cart.SessionID] = data
	r.mu.Unlock()

	return nil
}

// Delete removes the cart for the session.
func (r *CartRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.carts, sessionID)
	r.mu.Unlock()

	return nil
}

// Corrupt overwrites the stored payload for a session with bytes that do not
// decode. Test helper for the fail-soft load path.
func (r *CartRepository) Corrupt(sessionID string) {
	r.mu.Lock()
	r.carts[sessionID] = []byte("{{not-json")
	r.mu.Unlock()
}
