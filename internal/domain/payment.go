package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// PaymentField identifies one of the three checkout card inputs.
type PaymentField string

const (
	FieldCardNumber PaymentField = "card_number"
	FieldExpiry     PaymentField = "expiry"
	FieldCVV        PaymentField = "cvv"
)

// Validation error messages shown next to the checkout fields.
const (
	MsgInvalidCardNumber = "Please enter a valid card number (13-19 digits)"
	MsgInvalidExpiry     = "Please enter a valid date (MM/YY)"
	MsgCardExpired       = "This card has expired"
	MsgInvalidCVV        = "CVV must be 3 or 4 digits"
)

var (
	// Three groups of exactly four digits followed by 1-7 trailing digits,
	// with optional separators, or a bare 13-19 digit run.
	cardNumberPattern = regexp.MustCompile(`^(\d{4}[ -]?){3}\d{1,7}$|^\d{13,19}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
	nonDigits         = regexp.MustCompile(`\D`)
)

// FormatCardNumber normalizes raw card input for display: strips non-digits,
// caps at 19 digits and inserts a space after every group of four.
func FormatCardNumber(raw string) string {
	digits := digitsOnly(raw, 19)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatExpiry normalizes raw expiry input: strips non-digits, caps at four
// digits and auto-inserts the slash after the two month digits.
func FormatExpiry(raw string) string {
	digits := digitsOnly(raw, 4)
	if len(digits) <= 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:]
}

// FormatCVV strips non-digits from raw CVV input and caps it at four digits.
func FormatCVV(raw string) string {
	return digitsOnly(raw, 4)
}

func digitsOnly(raw string, max int) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) > max {
		digits = digits[:max]
	}
	return digits
}

// ValidateCardNumber checks a formatted card number. Returns an empty string
// when valid, otherwise the error message to display.
func ValidateCardNumber(value string) string {
	if !cardNumberPattern.MatchString(value) {
		return MsgInvalidCardNumber
	}
	return ""
}

// ValidateExpiry checks a formatted MM/YY expiry against the given current
// time. The two-digit year is read as 2000+YY. A card is expired when its
// year is in the past, or its year is current and its month is before the
// current month; a card in its exact current month is still accepted.
func ValidateExpiry(value string, now time.Time) string {
	if !expiryPattern.MatchString(value) {
		return MsgInvalidExpiry
	}

	month, _ := strconv.Atoi(value[:2])
	year, _ := strconv.Atoi(value[3:])
	year += 2000

	curYear, curMonth := now.Year(), int(now.Month())
	if year < curYear || (year == curYear && month < curMonth) {
		return MsgCardExpired
	}
	return ""
}

// ValidateCVV checks a formatted CVV. Returns an empty string when valid.
func ValidateCVV(value string) string {
	if !cvvPattern.MatchString(value) {
		return MsgInvalidCVV
	}
	return ""
}

// CardDetails carries the three checkout field values for a full-form submit.
type CardDetails struct {
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// Validate re-runs all three field checks regardless of prior per-field
// history, returning every failing field with its message so the form can
// surface all errors simultaneously. An empty map means the form may submit.
func (d CardDetails) Validate(now time.Time) map[PaymentField]string {
	errs := make(map[PaymentField]string)
	if msg := ValidateCardNumber(FormatCardNumber(d.CardNumber)); msg != "" {
		errs[FieldCardNumber] = msg
	}
	if msg := ValidateExpiry(FormatExpiry(d.Expiry), now); msg != "" {
		errs[FieldExpiry] = msg
	}
	if msg := ValidateCVV(FormatCVV(d.CVV)); msg != "" {
		errs[FieldCVV] = msg
	}
	return errs
}

// FieldState is the transient per-field validation state. It is never
// persisted.
type FieldState struct {
	Raw          string `json:"raw"`
	Formatted    string `json:"formatted"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// PaymentForm tracks the three checkout fields through the
// input -> blur -> submit cycle.
type PaymentForm struct {
	now    func() time.Time
	fields map[PaymentField]*FieldState
}

// NewPaymentForm creates a form that validates expiry against the wall clock.
func NewPaymentForm() *PaymentForm {
	return NewPaymentFormAt(time.Now)
}

// NewPaymentFormAt creates a form with an injected clock.
func NewPaymentFormAt(now func() time.Time) *PaymentForm {
	return &PaymentForm{
		now: now,
		fields: map[PaymentField]*FieldState{
			FieldCardNumber: {},
			FieldExpiry:     {},
			FieldCVV:        {},
		},
	}
}

// Input records a keystroke-level update: the raw value is re-formatted and
// any standing error is cleared optimistically. Validation happens again only
// on blur or submit.
func (f *PaymentForm) Input(field PaymentField, raw string) FieldState {
	state, ok := f.fields[field]
	if !ok {
		return FieldState{}
	}
	state.Raw = raw
	state.Formatted = f.format(field, raw)
	state.ErrorMessage = ""
	return *state
}

// Blur validates a single field against its formatted value and records the
// resulting error message, if any.
func (f *PaymentForm) Blur(field PaymentField) FieldState {
	state, ok := f.fields[field]
	if !ok {
		return FieldState{}
	}
	state.ErrorMessage = f.validate(field, state.Formatted)
	return *state
}

// Submit validates all three fields at once. It returns true when the form
// may be submitted; otherwise every failing field keeps its message set.
func (f *PaymentForm) Submit() bool {
	ok := true
	for field, state := range f.fields {
		state.ErrorMessage = f.validate(field, state.Formatted)
		if state.ErrorMessage != "" {
			ok = false
		}
	}
	return ok
}

// Field returns a copy of the current state for the given field.
func (f *PaymentForm) Field(field PaymentField) FieldState {
	if state, ok := f.fields[field]; ok {
		return *state
	}
	return FieldState{}
}

func (f *PaymentForm) format(field PaymentField, raw string) string {
	switch field {
	case FieldCardNumber:
		return FormatCardNumber(raw)
	case FieldExpiry:
		return FormatExpiry(raw)
	case FieldCVV:
		return FormatCVV(raw)
	}
	return raw
}

func (f *PaymentForm) validate(field PaymentField, value string) string {
	switch field {
	case FieldCardNumber:
		return ValidateCardNumber(value)
	case FieldExpiry:
		return ValidateExpiry(value, f.now())
	case FieldCVV:
		return ValidateCVV(value)
	}
	return ""
}
