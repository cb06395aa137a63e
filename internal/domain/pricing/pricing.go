// Package pricing computes order quotes: shipping, promo discounts and
// totals. All amounts are rupees rounded to paise.
package pricing

import (
	"fmt"
	"math"
	"strings"
)

const (
	FreeShippingThreshold = 999.0
	ShippingFee           = 49.0
)

type DiscountKind string

const (
	Percent DiscountKind = "percent"
	Flat    DiscountKind = "flat"
)

type Promo struct {
	Code           string       `json:"code"`
	Kind           DiscountKind `json:"kind"`
	Value          float64      `json:"value"`
	MinSubtotal    float64      `json:"min_subtotal,omitempty"`
	FirstOrderOnly bool         `json:"first_order_only,omitempty"`
	Description    string       `json:"description"`
}

var promos = map[string]Promo{
	"NEW10": {
		Code: "NEW10", Kind: Percent, Value: 10, FirstOrderOnly: true,
		Description: "10% off your first order",
	},
	"FLAT100": {
		Code: "FLAT100", Kind: Flat, Value: 100, MinSubtotal: 500,
		Description: "₹100 off on orders of ₹500 or more",
	},
	"FITZONE20": {
		Code: "FITZONE20", Kind: Percent, Value: 20, MinSubtotal: 1500,
		Description: "20% off on orders of ₹1500 or more",
	},
}

// PromoError is a rejected promo code. Message is shown to the shopper.
type PromoError struct {
	Code    string
	Message string
}

func (e *PromoError) Error() string { return e.Message }

var ErrInvalidPromo = &PromoError{Code: "INVALID_PROMO", Message: "Invalid promo code"}

type Quote struct {
	Subtotal  float64 `json:"subtotal"`
	Shipping  float64 `json:"shipping"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
	PromoCode string  `json:"promo_code,omitempty"`
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func Lookup(code string) (Promo, bool) {
	p, ok := promos[NormalizeCode(code)]
	return p, ok
}

// Shipping is free from FreeShippingThreshold up and zero for an empty cart.
func Shipping(subtotal float64) float64 {
	if subtotal <= 0 || subtotal >= FreeShippingThreshold {
		return 0
	}
	return ShippingFee
}

// Discount applies p to subtotal after checking its precondition.
func Discount(p Promo, subtotal float64, isFirstOrder bool) (float64, error) {
	if p.FirstOrderOnly && !isFirstOrder {
		return 0, &PromoError{
			Code:    "PROMO_FIRST_ORDER_ONLY",
			Message: fmt.Sprintf("%s is valid only on your first order", p.Code),
		}
	}
	if p.MinSubtotal > 0 && subtotal < p.MinSubtotal {
		return 0, &PromoError{
			Code:    "PROMO_MIN_SUBTOTAL",
			Message: fmt.Sprintf("Minimum order of ₹%s required for %s", rupees(p.MinSubtotal), p.Code),
		}
	}

	var d float64
	switch p.Kind {
	case Percent:
		d = subtotal * p.Value / 100
	case Flat:
		d = p.Value
	}
	return round(math.Min(d, subtotal)), nil
}

// Calculate builds the quote for subtotal. An empty code applies no
// discount; an unknown or inapplicable code is an error.
func Calculate(subtotal float64, isFirstOrder bool, code string) (Quote, error) {
	subtotal = round(math.Max(subtotal, 0))
	q := Quote{
		Subtotal: subtotal,
		Shipping: Shipping(subtotal),
	}

	if code = NormalizeCode(code); code != "" {
		p, ok := promos[code]
		if !ok {
			return Quote{}, ErrInvalidPromo
		}
		d, err := Discount(p, subtotal, isFirstOrder)
		if err != nil {
			return Quote{}, err
		}
		q.Discount = d
		q.PromoCode = p.Code
	}

	q.Total = Total(q.Subtotal, q.Shipping, q.Discount)
	return q, nil
}

// Total is subtotal + shipping - discount, never below zero.
func Total(subtotal, shipping, discount float64) float64 {
	return round(math.Max(0, subtotal+shipping-discount))
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}

func rupees(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
