package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/SVO0808/SVO-STUDIO/pkg/errors"
	"github.com/SVO0808/SVO-STUDIO/pkg/validator"

	"github.com/SVO0808/SVO-STUDIO/internal/domain"
	"github.com/SVO0808/SVO-STUDIO/internal/service"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding an item to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Title     string `json:"title" validate:"max=500"`
	UnitPrice int64  `json:"unit_price" validate:"gte=0"`
	ImageURL  string `json:"image_url"`
	Size      string `json:"size" validate:"max=10"`
	Quantity  int    `json:"quantity"`
}

// ChangeQuantityRequest is the JSON request body for changing a line quantity.
// Delta may be negative; the resulting quantity never drops below one.
type ChangeQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// ApplyCouponRequest is the JSON request body for a coupon apply attempt.
type ApplyCouponRequest struct {
	Code string `json:"code"`
}

// --- Response envelope ---

type response struct {
	Data  any            `json:"data,omitempty"`
	Error *errorResponse `json:"error,omitempty"`
}

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// cartView decorates the stored cart with derived values the storefront
// renders on every page.
type cartView struct {
	*domain.Cart
	ItemCount int `json:"item_count"`
}

// couponView reports a coupon apply attempt together with the refreshed quote.
type couponView struct {
	Outcome domain.CouponOutcome `json:"outcome"`
	Cart    cartView             `json:"cart"`
	Pricing domain.PricingResult `json:"pricing"`
}

func viewOf(cart *domain.Cart) cartView {
	return cartView{Cart: cart, ItemCount: cart.TotalItemCount()}
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionIDFromContext(r.Context())

	cart, err := h.service.GetCart(r.Context(), sessionID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: viewOf(cart)})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionIDFromContext(r.Context())

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	cart, err := h.service.AddItem(r.Context(), sessionID, service.AddItemInput{
		ProductID: req.ProductID,
		Title:     req.Title,
		UnitPrice: req.UnitPrice,
		ImageURL:  req.ImageURL,
		Size:      req.Size,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: viewOf(cart)})
}

// ChangeQuantity handles PUT /api/v1/cart/items/{index}
func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionIDFromContext(r.Context())

	index, ok := h.itemIndex(w, r)
	if !ok {
		return
	}

	var req ChangeQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	cart, err := h.service.ChangeQuantity(r.Context(), sessionID, index, req.Delta)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: viewOf(cart)})
}

// RemoveItem handles DELETE /api/v1/cart/items/{index}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionIDFromContext(r.Context())

	index, ok := h.itemIndex(w, r)
	if !ok {
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), sessionID, index)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: viewOf(cart)})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionIDFromContext(r.Context())

	cart, err := h.service.Clear(r.Context(), sessionID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: viewOf(cart)})
}

// Quote handles GET /api/v1/cart/quote
func (h *CartHandler) Quote(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionIDFromContext(r.Context())

	cart, quote, err := h.service.Quote(r.Context(), sessionID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]any{
		"cart":    viewOf(cart),
		"pricing": quote,
	}})
}

// ApplyCoupon handles POST /api/v1/cart/coupon
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionIDFromContext(r.Context())

	var req ApplyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	outcome, cart, err := h.service.ApplyCoupon(r.Context(), sessionID, req.Code)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: couponView{
		Outcome: outcome,
		Cart:    viewOf(cart),
		Pricing: domain.Quote(cart, h.service.Pricing()),
	}})
}

// --- Helpers ---

// itemIndex parses the {index} URL parameter. A non-numeric index is a client
// error; a numeric but out-of-range one is left to the service no-op rules.
func (h *CartHandler) itemIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "index must be an integer"},
		})
		return 0, false
	}
	return index, true
}

func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.Status, response{
			Error: &errorResponse{Code: appErr.Code, Message: appErr.Message},
		})
		return
	}

	status := apperrors.HTTPStatus(err)
	code := "INTERNAL_ERROR"
	message := "an internal error occurred"

	if errors.Is(err, apperrors.ErrNotFound) {
		code = "NOT_FOUND"
		message = "resource not found"
		status = http.StatusNotFound
	} else if errors.Is(err, apperrors.ErrInvalidInput) {
		code = "INVALID_INPUT"
		message = err.Error()
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	writeJSON(w, status, response{
		Error: &errorResponse{Code: code, Message: message},
	})
}

func writeValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "request validation failed",
				Fields:  valErr.Fields(),
			},
		})
		return
	}

	writeJSON(w, http.StatusBadRequest, response{
		Error: &errorResponse{Code: "INVALID_INPUT", Message: err.Error()},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}
