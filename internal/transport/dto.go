package transport

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a tolerant JSON scalar: it accepts a number or a numeric
// string and records whether a usable value was present. Anything else
// (null, objects, garbage strings) decodes as absent rather than failing
// the whole payload.
type Number struct {
	value float64
	ok    bool
}

func (n *Number) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		n.value, n.ok = f, true
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			n.value, n.ok = f, true
		}
	}
	return nil
}

func (n Number) Float64() (float64, bool) {
	return n.value, n.ok
}

// PositiveInt reports the value as a positive integer, or false when the
// value is absent, non-integral or not positive.
func (n Number) PositiveInt() (int64, bool) {
	if !n.ok || n.value <= 0 || n.value != math.Trunc(n.value) {
		return 0, false
	}
	return int64(n.value), true
}

// OrderItemPayload tolerates both the current field names and the legacy
// ones. UnitPrice is decoded only so that a client sending it is not an
// error; it is never read.
type OrderItemPayload struct {
	ProductID Number `json:"productId"`
	LegacyID  Number `json:"id"`
	Quantity  Number `json:"quantity"`
	LegacyQty Number `json:"qty"`
	UnitPrice Number `json:"unitPrice"`
}

type CustomerPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OrderRequest accepts the current shape (items) or the legacy one (cart).
// Pointers distinguish "key absent or null" from "present but empty":
// an explicit empty items array still wins over a populated legacy cart.
type OrderRequest struct {
	Items    *[]OrderItemPayload `json:"items"`
	Cart     *[]OrderItemPayload `json:"cart"`
	Customer CustomerPayload     `json:"customer"`
	Notes    string              `json:"notes"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type OrderResponse struct {
	Success  bool    `json:"success"`
	OrderRef string  `json:"orderRef"`
	Total    float64 `json:"total"`
	Message  string  `json:"message,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
