// Package payment bridges a backend-created gateway order to the checkout
// overlay and back. The portal never touches card data or signatures itself;
// it hands the gateway's signed callback to the backend for verification.
package payment

import (
	"context"
	"time"
)

// CheckoutConfig is everything the checkout page template needs to open the
// gateway overlay for one order.
type CheckoutConfig struct {
	KeyID        string
	ScriptURL    string
	OrderID      string
	Amount       float64
	Currency     string
	Description  string
	StudentName  string
	StudentEmail string
	CallbackPath string
	// ReturnTab is where the screen lands after a verified payment.
	ReturnTab string
}

// Verification is the gateway's completion payload, forwarded verbatim to the
// backend verify endpoint which checks the signature against the secret key.
type Verification struct {
	OrderID   string `json:"order_id" binding:"required" form:"order_id"`
	PaymentID string `json:"payment_id" binding:"required" form:"payment_id"`
	Signature string `json:"signature" binding:"required" form:"signature"`
}

const (
	settleInterval    = 2 * time.Second
	settleMaxAttempts = 5
)

// WaitSettled polls probe until it reports the payment visible or attempts
// run out. It replaces the fixed post-payment sleep: the backend records the
// verified payment asynchronously, so the first refetch can race the write.
// Returning false is not an error; the history screen will show the payment
// on a later refresh.
func WaitSettled(ctx context.Context, probe func(ctx context.Context) (bool, error)) (bool, error) {
	ticker := time.NewTicker(settleInterval)
	defer ticker.Stop()

	for attempt := 0; attempt < settleMaxAttempts; attempt++ {
		visible, err := probe(ctx)
		if err != nil {
			return false, err
		}
		if visible {
			return true, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
		}
	}
	return false, nil
}
