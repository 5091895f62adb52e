package shipment

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is the receiver's one-time rating of a delivered shipment.
type Feedback struct {
	rating      int
	comment     string
	by          kernel.Email
	submittedAt time.Time
}

func NewFeedback(rating int, comment string, by kernel.Email, submittedAt time.Time) (*Feedback, error) {
	var ratingErr error
	if rating < MinRating || rating > MaxRating {
		ratingErr = errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	if err := errors.Join(ratingErr, by.Validate()); err != nil {
		return nil, err
	}
	return &Feedback{rating: rating, comment: comment, by: by, submittedAt: submittedAt.UTC()}, nil
}

func (f *Feedback) Rating() int            { return f.rating }
func (f *Feedback) Comment() string        { return f.comment }
func (f *Feedback) By() kernel.Email       { return f.by }
func (f *Feedback) SubmittedAt() time.Time { return f.submittedAt }
