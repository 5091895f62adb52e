package shipment

import (
	"errors"
	"fmt"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

// Parcel is what is shipped and where it goes.
type Parcel struct { //nolint:recvcheck //using for validation
	receiver        kernel.Email
	description     string
	weightGrams     int
	packageSize     string
	deliveryAddress string
	guard           guard.ConstructorGuard
}

// NewParcel checks the domain invariants of the parcel contents. Input coming
// from users is expected to have passed the validation policy first; this is
// the last line that keeps an invalid parcel out of an aggregate.
func NewParcel(
	receiver kernel.Email,
	description string,
	weightGrams int,
	packageSize string,
	deliveryAddress string,
) (Parcel, error) {
	packageSize = strings.TrimSpace(packageSize)
	deliveryAddress = strings.TrimSpace(deliveryAddress)

	var weightErr, sizeErr, addressErr error
	if weightGrams <= 0 {
		weightErr = errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%d is not greater than 0", weightGrams))
	}
	if packageSize == "" {
		sizeErr = errs.NewValueIsRequiredError("packageSize")
	}
	if deliveryAddress == "" {
		addressErr = errs.NewValueIsRequiredError("deliveryAddress")
	}
	if err := errors.Join(receiver.Validate(), weightErr, sizeErr, addressErr); err != nil {
		return Parcel{}, err
	}

	return Parcel{
		receiver:        receiver,
		description:     strings.TrimSpace(description),
		weightGrams:     weightGrams,
		packageSize:     packageSize,
		deliveryAddress: deliveryAddress,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (p Parcel) Validate() error {
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

func (p Parcel) Receiver() kernel.Email  { return p.receiver }
func (p Parcel) Description() string     { return p.description }
func (p Parcel) WeightGrams() int        { return p.weightGrams }
func (p Parcel) PackageSize() string     { return p.packageSize }
func (p Parcel) DeliveryAddress() string { return p.deliveryAddress }

func (p Parcel) withDescription(description string) Parcel {
	p.description = strings.TrimSpace(description)
	return p
}
