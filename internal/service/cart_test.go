package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/SVO0808/SVO-STUDIO/pkg/errors"

	"github.com/SVO0808/SVO-STUDIO/internal/domain"
	"github.com/SVO0808/SVO-STUDIO/internal/event"
	"github.com/SVO0808/SVO-STUDIO/internal/repository/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestCartService(repo *memory.CartRepository) *CartService {
	return NewCartService(
		repo,
		event.NewProducer(nil, testLogger()),
		domain.DefaultPricingConfig(),
		domain.NewCouponRules(),
		testLogger(),
	)
}

func shirtInput() AddItemInput {
	return AddItemInput{
		ProductID: "1",
		Title:     "Slim Fit T-Shirt",
		UnitPrice: 2230,
		Size:      "M",
		Quantity:  1,
	}
}

func TestGetCart_NewSessionGetsEmptyCart(t *testing.T) {
	svc := newTestCartService(memory.NewCartRepository())

	cart, err := svc.GetCart(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", cart.SessionID)
	assert.True(t, cart.IsEmpty())
}

func TestGetCart_RequiresSessionID(t *testing.T) {
	svc := newTestCartService(memory.NewCartRepository())

	_, err := svc.GetCart(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestGetCart_CorruptPayloadStartsFresh(t *testing.T) {
	repo := memory.NewCartRepository()
	svc := newTestCartService(repo)

	_, err := svc.AddItem(context.Background(), "sess-1", shirtInput())
	require.NoError(t, err)

	repo.Corrupt("sess-1")

	cart, err := svc.GetCart(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.False(t, cart.DiscountApplied)
}

func TestAddItem_PersistsAndMerges(t *testing.T) {
	repo := memory.NewCartRepository()
	svc := newTestCartService(repo)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", shirtInput())
	require.NoError(t, err)

	// Same product and size merges, keeping the original price snapshot.
	input := shirtInput()
	input.UnitPrice = 9999
	cart, err := svc.AddItem(ctx, "sess-1", input)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, int64(2230), cart.Items[0].UnitPrice)

	// Same product in another size is a distinct line.
	other := shirtInput()
	other.Size = "L"
	cart, err = svc.AddItem(ctx, "sess-1", other)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)

	reloaded, err := svc.GetCart(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.TotalItemCount())
}

func TestAddItem_MissingProductIDIsIgnored(t *testing.T) {
	svc := newTestCartService(memory.NewCartRepository())

	cart, err := svc.AddItem(context.Background(), "sess-1", AddItemInput{Title: "ghost"})
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestAddItem_RejectsNegativePrice(t *testing.T) {
	svc := newTestCartService(memory.NewCartRepository())

	input := shirtInput()
	input.UnitPrice = -1
	_, err := svc.AddItem(context.Background(), "sess-1", input)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestRemoveItem_OutOfRangeIsNoOp(t *testing.T) {
	svc := newTestCartService(memory.NewCartRepository())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", shirtInput())
	require.NoError(t, err)

	for _, index := range []int{-1, 1, 42} {
		cart, err := svc.RemoveItem(ctx, "sess-1", index)
		require.NoError(t, err)
		assert.Len(t, cart.Items, 1)
	}

	cart, err := svc.RemoveItem(ctx, "sess-1", 0)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestChangeQuantity_ClampsAtOne(t *testing.T) {
	svc := newTestCartService(memory.NewCartRepository())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", shirtInput())
	require.NoError(t, err)

	cart, err := svc.ChangeQuantity(ctx, "sess-1", 0, -5)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	cart, err = svc.ChangeQuantity(ctx, "sess-1", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	// Out of range leaves the cart untouched.
	cart, err = svc.ChangeQuantity(ctx, "sess-1", 7, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestClear_PersistsEmptyCartAndResetsDiscount(t *testing.T) {
	svc := newTestCartService(memory.NewCartRepository())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", shirtInput())
	require.NoError(t, err)
	outcome, _, err := svc.ApplyCoupon(ctx, "sess-1", "WELCOME10")
	require.NoError(t, err)
	require.Equal(t, domain.CouponApplied, outcome)

	cart, err := svc.Clear(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.False(t, cart.DiscountApplied)

	reloaded, err := svc.GetCart(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, reloaded.IsEmpty())
	assert.False(t, reloaded.DiscountApplied)
}

func TestApplyCoupon_Outcomes(t *testing.T) {
	svc := newTestCartService(memory.NewCartRepository())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", shirtInput())
	require.NoError(t, err)

	outcome, _, err := svc.ApplyCoupon(ctx, "sess-1", "  welcome10 ")
	require.NoError(t, err)
	assert.Equal(t, domain.CouponApplied, outcome)

	outcome, _, err = svc.ApplyCoupon(ctx, "sess-1", "WELCOME10")
	require.NoError(t, err)
	assert.Equal(t, domain.CouponAlreadyApplied, outcome)

	svc2 := newTestCartService(memory.NewCartRepository())
	outcome, _, err = svc2.ApplyCoupon(ctx, "sess-2", "")
	require.NoError(t, err)
	assert.Equal(t, domain.CouponEmptyCode, outcome)

	outcome, cart, err := svc2.ApplyCoupon(ctx, "sess-2", "BOGUS")
	require.NoError(t, err)
	assert.Equal(t, domain.CouponInvalidCode, outcome)
	assert.False(t, cart.DiscountApplied)
}

func TestQuote_ReflectsDiscountAndShipping(t *testing.T) {
	svc := newTestCartService(memory.NewCartRepository())
	ctx := context.Background()

	input := shirtInput()
	input.UnitPrice = 5499
	_, err := svc.AddItem(ctx, "sess-1", input)
	require.NoError(t, err)

	_, quote, err := svc.Quote(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5499), quote.Subtotal)
	assert.Equal(t, int64(499), quote.ShippingCost)
	assert.Equal(t, int64(5998), quote.Total)
	assert.Equal(t, int64(501), quote.RemainingForFreeShipping)

	outcome, _, err := svc.ApplyCoupon(ctx, "sess-1", "WELCOME10")
	require.NoError(t, err)
	require.Equal(t, domain.CouponApplied, outcome)

	_, quote, err = svc.Quote(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, int64(549), quote.DiscountAmount)
	assert.Equal(t, int64(4950), quote.SubtotalAfterDiscount)
	assert.Equal(t, int64(499), quote.ShippingCost)
}

// mockCartRepository injects storage failures the memory repository cannot.
type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	args := m.Called(ctx, sessionID)
	if cart := args.Get(0); cart != nil {
		return cart.(*domain.Cart), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	return m.Called(ctx, cart).Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func TestGetCart_StorageFailurePropagates(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Get", mock.Anything, "sess-1").Return(nil, errors.New("redis down"))

	svc := NewCartService(repo, event.NewProducer(nil, testLogger()),
		domain.DefaultPricingConfig(), domain.NewCouponRules(), testLogger())

	_, err := svc.GetCart(context.Background(), "sess-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis down")
	repo.AssertExpectations(t)
}

func TestAddItem_SaveFailurePropagates(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Get", mock.Anything, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("write refused"))

	svc := NewCartService(repo, event.NewProducer(nil, testLogger()),
		domain.DefaultPricingConfig(), domain.NewCouponRules(), testLogger())

	_, err := svc.AddItem(context.Background(), "sess-1", shirtInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write refused")
	repo.AssertExpectations(t)
}
