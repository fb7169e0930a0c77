package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SVO0808/SVO-STUDIO/pkg/health"
	"github.com/SVO0808/SVO-STUDIO/pkg/httpclient"
	"github.com/SVO0808/SVO-STUDIO/pkg/middleware"

	"github.com/SVO0808/SVO-STUDIO/internal/catalog"
	"github.com/SVO0808/SVO-STUDIO/internal/domain"
	"github.com/SVO0808/SVO-STUDIO/internal/event"
	"github.com/SVO0808/SVO-STUDIO/internal/repository/memory"
	"github.com/SVO0808/SVO-STUDIO/internal/service"
)

const testSession = "sess-test"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fixedNow pins expiry validation to August 2026.
func fixedNow() time.Time {
	return time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
}

// newTestRouter wires a full router against in-memory storage and the given
// catalog upstream.
func newTestRouter(t *testing.T, catalogURL string) http.Handler {
	t.Helper()

	logger := testLogger()
	producer := event.NewProducer(nil, logger)

	carts := service.NewCartService(
		memory.NewCartRepository(),
		producer,
		domain.DefaultPricingConfig(),
		domain.NewCouponRules(),
		logger,
	)
	checkout := service.NewCheckoutServiceAt(carts, producer, logger, fixedNow)

	hc := httpclient.New(httpclient.Config{
		Timeout:         5 * time.Second,
		MaxConnsPerHost: 10,
	})
	catalogClient := catalog.NewClient(hc, catalogURL)

	return NewRouter(carts, checkout, catalogClient, health.NewHandler(),
		middleware.DefaultCORSConfig(), logger)
}

// doJSON issues a request with the test session header and decodes the
// response envelope.
func doJSON(t *testing.T, router http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", testSession)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	envelope := make(map[string]json.RawMessage)
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope),
			"response body: %s", rec.Body.String())
	}
	return rec, envelope
}

func addShirt(t *testing.T, router http.Handler) {
	t.Helper()
	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", AddItemRequest{
		ProductID: "1",
		Title:     "Slim Fit T-Shirt",
		UnitPrice: 2230,
		Size:      "M",
		Quantity:  1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
}
