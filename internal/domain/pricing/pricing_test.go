package pricing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_NoPromo(t *testing.T) {
	q, err := Calculate(450, true, "")
	require.NoError(t, err)
	assert.Equal(t, Quote{Subtotal: 450, Shipping: 49, Total: 499}, q)

	q, err = Calculate(999, false, "")
	require.NoError(t, err)
	assert.Zero(t, q.Shipping)
	assert.Equal(t, 999.0, q.Total)

	q, err = Calculate(0, true, "")
	require.NoError(t, err)
	assert.Zero(t, q.Shipping)
	assert.Zero(t, q.Total)
}

func TestCalculate_NEW10(t *testing.T) {
	q, err := Calculate(1200, true, " new10 ")
	require.NoError(t, err)
	assert.Equal(t, 120.0, q.Discount)
	assert.Equal(t, "NEW10", q.PromoCode)
	assert.Equal(t, 1080.0, q.Total)

	_, err = Calculate(1200, false, "NEW10")
	var pe *PromoError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "NEW10 is valid only on your first order", pe.Message)
}

func TestCalculate_FLAT100(t *testing.T) {
	_, err := Calculate(499.99, true, "FLAT100")
	require.Error(t, err)
	assert.Equal(t, "Minimum order of ₹500 required for FLAT100", err.Error())

	q, err := Calculate(500, false, "FLAT100")
	require.NoError(t, err)
	assert.Equal(t, 100.0, q.Discount)
	assert.Equal(t, 449.0, q.Total) // 500 + 49 - 100
}

func TestCalculate_FITZONE20(t *testing.T) {
	_, err := Calculate(1499, false, "FITZONE20")
	assert.Error(t, err)

	q, err := Calculate(1500, false, "fitzone20")
	require.NoError(t, err)
	assert.Equal(t, 300.0, q.Discount)
	assert.Equal(t, 1200.0, q.Total)
}

func TestCalculate_UnknownCode(t *testing.T) {
	_, err := Calculate(800, true, "FREEBIE")
	assert.ErrorIs(t, err, ErrInvalidPromo)
	assert.Equal(t, "Invalid promo code", err.Error())
}

func TestTotal_ClampedAtZero(t *testing.T) {
	assert.Zero(t, Total(50, 0, 100))
	assert.Equal(t, 10.1, Total(10.05, 0.05, 0))
}

func TestCalculate_RoundsToPaise(t *testing.T) {
	q, err := Calculate(333.33, true, "NEW10")
	require.NoError(t, err)
	assert.Equal(t, 33.33, q.Discount)
	assert.Equal(t, 349.0, q.Total) // 333.33 + 49 - 33.33
}
