package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/SVO0808/SVO-STUDIO/internal/domain"
	"github.com/SVO0808/SVO-STUDIO/internal/service"
)

// CheckoutHandler handles HTTP requests for checkout endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
	now     func() time.Time
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
		now:     time.Now,
	}
}

// PaymentRequest is the JSON request body carrying the three card fields as
// the shopper typed them. Formatting and validation happen server side.
type PaymentRequest struct {
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

func (req PaymentRequest) details() domain.CardDetails {
	return domain.CardDetails{
		CardNumber: req.CardNumber,
		Expiry:     req.Expiry,
		CVV:        req.CVV,
	}
}

// paymentValidationView reports the outcome of a full-form validation pass.
type paymentValidationView struct {
	Valid       bool                           `json:"valid"`
	FieldErrors map[domain.PaymentField]string `json:"field_errors,omitempty"`
	Formatted   map[domain.PaymentField]string `json:"formatted"`
}

// ValidatePayment handles POST /api/v1/checkout/payment/validate. It mirrors
// the submit-time pass of the payment form: every field is checked and every
// failing field comes back with its message, alongside the display-formatted
// values for the frontend to echo into the inputs.
func (h *CheckoutHandler) ValidatePayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	fieldErrs := req.details().Validate(h.now())

	writeJSON(w, http.StatusOK, response{Data: paymentValidationView{
		Valid:       len(fieldErrs) == 0,
		FieldErrors: fieldErrs,
		Formatted: map[domain.PaymentField]string{
			domain.FieldCardNumber: domain.FormatCardNumber(req.CardNumber),
			domain.FieldExpiry:     domain.FormatExpiry(req.Expiry),
			domain.FieldCVV:        domain.FormatCVV(req.CVV),
		},
	}})
}

// ConfirmOrder handles POST /api/v1/checkout/confirm. Field validation
// failures come back as 422 with the per-field messages; an empty cart is a
// 400.
func (h *CheckoutHandler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionIDFromContext(r.Context())

	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	confirmation, fieldErrs, err := h.service.ConfirmOrder(r.Context(), sessionID, req.details())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if len(fieldErrs) > 0 {
		fields := make(map[string]string, len(fieldErrs))
		for field, msg := range fieldErrs {
			fields[string(field)] = msg
		}
		writeJSON(w, http.StatusUnprocessableEntity, response{
			Error: &errorResponse{
				Code:    "PAYMENT_VALIDATION_FAILED",
				Message: "payment details failed validation",
				Fields:  fields,
			},
		})
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: confirmation})
}
