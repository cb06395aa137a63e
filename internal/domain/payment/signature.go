package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignPayment is the checkout signature: hex HMAC-SHA256 of
// "order_id|payment_id" keyed with the API secret.
func SignPayment(secret, gatewayOrderID, paymentID string) string {
	return sign(secret, []byte(gatewayOrderID+"|"+paymentID))
}

func VerifyPayment(secret, gatewayOrderID, paymentID, signature string) bool {
	return equal(SignPayment(secret, gatewayOrderID, paymentID), signature)
}

// SignWebhook is the X-Razorpay-Signature value for body.
func SignWebhook(secret string, body []byte) string {
	return sign(secret, body)
}

func VerifyWebhook(secret string, body []byte, signature string) bool {
	return equal(SignWebhook(secret, body), signature)
}

func sign(secret string, msg []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(msg)
	return hex.EncodeToString(mac.Sum(nil))
}

func equal(expected, got string) bool {
	return got != "" && hmac.Equal([]byte(expected), []byte(got))
}
