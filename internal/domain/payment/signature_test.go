package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignPayment(t *testing.T) {
	sig := SignPayment("secret", "order_1", "pay_1")
	assert.Equal(t, "52115a0d3400de9e86aade1f1b6eba9e8974604f4e267a9e9a16633a4c8dd2cb", sig)

	assert.True(t, VerifyPayment("secret", "order_1", "pay_1", sig))
	assert.False(t, VerifyPayment("secret", "order_1", "pay_2", sig))
	assert.False(t, VerifyPayment("other", "order_1", "pay_1", sig))
	assert.False(t, VerifyPayment("secret", "order_1", "pay_1", ""))
}

func TestVerifyWebhook(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)
	sig := SignWebhook("whsec", body)

	assert.True(t, VerifyWebhook("whsec", body, sig))
	assert.False(t, VerifyWebhook("whsec", []byte(`{"event":"payment.failed"}`), sig))
}
