// Package stripepay captures shipment charges through Stripe PaymentIntents.
package stripepay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// IntentCreator is the part of the Stripe client the gateway uses.
type IntentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// Gateway implements ports.PaymentGateway. Every capture is confirmed
// immediately; a payment that needs further customer action fails.
type Gateway struct {
	intents IntentCreator
}

func NewGateway(secretKey string) *Gateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return NewGatewayWithIntents(sc.PaymentIntents)
}

func NewGatewayWithIntents(intents IntentCreator) *Gateway {
	return &Gateway{intents: intents}
}

func (g *Gateway) Capture(ctx context.Context, req ports.PaymentRequest) (ports.PaymentConfirmation, error) {
	if req.AmountINR <= 0 {
		return ports.PaymentConfirmation{}, errs.NewPaymentError("amount must be positive")
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return ports.PaymentConfirmation{}, errs.NewPaymentError("payment method is missing")
	}

	params := &stripe.PaymentIntentParams{
		// Stripe amounts are in the smallest unit, paise for INR.
		Amount:        stripe.Int64(int64(req.AmountINR) * 100),
		Currency:      stripe.String(strings.ToLower(req.Currency)),
		PaymentMethod: stripe.String(req.PaymentMethod),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String(req.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	if req.PayerEmail != "" {
		params.ReceiptEmail = stripe.String(req.PayerEmail)
	}
	params.Context = ctx

	pi, err := g.intents.New(params)
	if err != nil {
		return ports.PaymentConfirmation{}, mapStripeError(err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return ports.PaymentConfirmation{}, errs.NewPaymentError(
			fmt.Sprintf("payment %s is %s", pi.ID, pi.Status))
	}

	confirmation := ports.PaymentConfirmation{PaymentID: pi.ID, OrderID: pi.ID}
	if pi.LatestCharge != nil && pi.LatestCharge.ID != "" {
		confirmation.OrderID = pi.LatestCharge.ID
	}
	return confirmation, nil
}

func mapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		switch stripeErr.Code {
		case stripe.ErrorCodeCardDeclined:
			return errs.NewPaymentErrorWithCause("card was declined", err)
		case stripe.ErrorCodeExpiredCard:
			return errs.NewPaymentErrorWithCause("card has expired", err)
		case stripe.ErrorCodeBalanceInsufficient:
			return errs.NewPaymentErrorWithCause("insufficient funds", err)
		}
		if stripeErr.HTTPStatusCode >= http.StatusInternalServerError {
			return errs.NewPaymentErrorWithCause("payment provider unavailable", err)
		}
	}
	return errs.NewPaymentErrorWithCause("capture failed", err)
}
