package shipment

import (
	"errors"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// Payment is the confirmation returned by the payment collaborator.
// A shipment without one was created with payment skipped.
type Payment struct {
	paymentID  string
	orderID    string
	payerEmail kernel.Email
	paidAt     time.Time
}

// NewPayment requires the payment reference; the order reference is optional.
func NewPayment(paymentID, orderID string, payerEmail kernel.Email, paidAt time.Time) (*Payment, error) {
	paymentID = strings.TrimSpace(paymentID)

	var idErr error
	if paymentID == "" {
		idErr = errs.NewValueIsRequiredError("paymentId")
	}
	if err := errors.Join(idErr, payerEmail.Validate()); err != nil {
		return nil, err
	}

	return &Payment{
		paymentID:  paymentID,
		orderID:    strings.TrimSpace(orderID),
		payerEmail: payerEmail,
		paidAt:     paidAt.UTC(),
	}, nil
}

func (p *Payment) PaymentID() string        { return p.paymentID }
func (p *Payment) OrderID() string          { return p.orderID }
func (p *Payment) PayerEmail() kernel.Email { return p.payerEmail }
func (p *Payment) PaidAt() time.Time        { return p.paidAt }
