package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"
)

// SubmitFeedbackCommand rates a delivered shipment.
type SubmitFeedbackCommand struct {
	shipmentTarget
	rating  int
	comment string
}

func NewSubmitFeedbackCommand(
	principal identity.Principal,
	shipmentID kernel.UUID,
	rating int,
	comment string,
) (SubmitFeedbackCommand, error) {
	target, err := newShipmentTarget(principal, shipmentID)
	if err != nil {
		return SubmitFeedbackCommand{}, err
	}
	if rating < shipment.MinRating || rating > shipment.MaxRating {
		return SubmitFeedbackCommand{}, errs.NewValueIsOutOfRangeError("rating", rating, shipment.MinRating, shipment.MaxRating)
	}
	return SubmitFeedbackCommand{shipmentTarget: target, rating: rating, comment: comment}, nil
}

func (c SubmitFeedbackCommand) Rating() int     { return c.rating }
func (c SubmitFeedbackCommand) Comment() string { return c.comment }

// SubmitFeedbackCommandHandler writes the receiver's feedback once.
//
// Only the receiver learns whether feedback is already present: a repeat
// submission from the receiver is errs.AlreadyExistsError whether it lost
// the race at read time or at write time, while anyone else is refused as
// not permitted. The write itself is conditional on feedback still being
// absent.
type SubmitFeedbackCommandHandler struct {
	uowFactory ShipmentUoWFactory
	authz      services.AuthorizationPolicy
	now        func() time.Time
}

func NewSubmitFeedbackCommandHandler(
	uowFactory ShipmentUoWFactory,
	authz services.AuthorizationPolicy,
) SubmitFeedbackCommandHandler {
	return SubmitFeedbackCommandHandler{uowFactory: uowFactory, authz: authz, now: time.Now}
}

func (h SubmitFeedbackCommandHandler) Handle(ctx context.Context, cmd SubmitFeedbackCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()
	s, err := repo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	p := cmd.Principal()
	if err = h.authz.CanGiveFeedback(p, s); err != nil {
		if s.Feedback() != nil && s.IsReceiver(p.Email()) {
			return nil, errs.NewAlreadyExistsError("feedback", s.ID())
		}
		return nil, err
	}

	feedback, err := shipment.NewFeedback(cmd.Rating(), cmd.Comment(), p.Email(), h.now())
	if err != nil {
		return nil, err
	}
	if err = s.SubmitFeedback(feedback); err != nil {
		return nil, err
	}

	if err = repo.SetFeedback(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
