package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SVO0808/SVO-STUDIO/internal/domain"
	"github.com/SVO0808/SVO-STUDIO/internal/repository"
	apperrors "github.com/SVO0808/SVO-STUDIO/pkg/errors"
)

func setupTestRedis(t *testing.T) (*CartRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	repo := NewCartRepository(client, 24*time.Hour)
	return repo, mr
}

func sampleCart() *domain.Cart {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domain.Cart{
		SessionID: "session-001",
		Items: []domain.LineItem{
			{
				ProductID: "1",
				Title:     "Slim Fit T-Shirt",
				UnitPrice: 2295,
				ImageURL:  "https://img.example.com/tee.jpg",
				Size:      "M",
				Quantity:  2,
			},
		},
		DiscountApplied: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestCartRepository_Get_Success(t *testing.T) {
	repo, mr := setupTestRedis(t)

	cart := sampleCart()
	data, err := json.Marshal(cart)
	require.NoError(t, err)

	require.NoError(t, mr.Set("cart:"+cart.SessionID, string(data)))

	got, err := repo.Get(context.Background(), cart.SessionID)
	require.NoError(t, err)
	assert.Equal(t, cart.SessionID, got.SessionID)
	assert.True(t, got.DiscountApplied)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "1", got.Items[0].ProductID)
	assert.Equal(t, "Slim Fit T-Shirt", got.Items[0].Title)
	assert.Equal(t, int64(2295), got.Items[0].UnitPrice)
	assert.Equal(t, "M", got.Items[0].Size)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestCartRepository_Get_NotFound(t *testing.T) {
	repo, _ := setupTestRedis(t)

	got, err := repo.Get(context.Background(), "no-such-session")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartRepository_Get_CorruptPayload(t *testing.T) {
	repo, mr := setupTestRedis(t)

	require.NoError(t, mr.Set("cart:session-bad", "{{not-valid-json"))

	got, err := repo.Get(context.Background(), "session-bad")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrCorruptCart)
}

func TestCartRepository_SaveRoundTrip(t *testing.T) {
	repo, mr := setupTestRedis(t)

	cart := sampleCart()
	require.NoError(t, repo.Save(context.Background(), cart))
	assert.True(t, mr.Exists("cart:"+cart.SessionID))

	got, err := repo.Get(context.Background(), cart.SessionID)
	require.NoError(t, err)
	assert.Equal(t, cart, got)
}

func TestCartRepository_Save_TTL(t *testing.T) {
	repo, mr := setupTestRedis(t)

	require.NoError(t, repo.Save(context.Background(), sampleCart()))

	ttl := mr.TTL("cart:session-001")
	assert.True(t, ttl > 23*time.Hour, "expected TTL > 23h, got %v", ttl)
	assert.True(t, ttl <= 24*time.Hour, "expected TTL <= 24h, got %v", ttl)
}

func TestCartRepository_Delete(t *testing.T) {
	repo, mr := setupTestRedis(t)

	cart := sampleCart()
	require.NoError(t, repo.Save(context.Background(), cart))
	require.NoError(t, repo.Delete(context.Background(), cart.SessionID))

	assert.False(t, mr.Exists("cart:"+cart.SessionID))
}

func TestCartRepository_Delete_NonExistent(t *testing.T) {
	repo, _ := setupTestRedis(t)

	assert.NoError(t, repo.Delete(context.Background(), "no-such-session"))
}
