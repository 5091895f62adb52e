package shipment

import (
	"errors"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

var ErrCommentIsNotConstructed = errors.New("Comment must be created via NewComment or RestoreComment")

// Comment is one message of a shipment's discussion thread.
// Comments are never edited or deleted individually.
type Comment struct {
	id          kernel.UUID
	shipmentID  kernel.UUID
	text        string
	authorEmail kernel.Email
	authorName  string
	createdAt   time.Time

	isConstructed bool
}

func NewComment(
	shipmentID kernel.UUID,
	text string,
	authorEmail kernel.Email,
	authorName string,
	createdAt time.Time,
) (*Comment, error) {
	return RestoreComment(kernel.NewUUID(), shipmentID, text, authorEmail, authorName, createdAt)
}

func RestoreComment(
	id kernel.UUID,
	shipmentID kernel.UUID,
	text string,
	authorEmail kernel.Email,
	authorName string,
	createdAt time.Time,
) (*Comment, error) {
	text = strings.TrimSpace(text)

	var textErr error
	if text == "" {
		textErr = errs.NewValueIsRequiredError("text")
	}
	if err := errors.Join(id.Validate(), shipmentID.Validate(), textErr, authorEmail.Validate()); err != nil {
		return nil, err
	}
	if authorName == "" {
		authorName = authorEmail.String()
	}

	return &Comment{
		id:            id,
		shipmentID:    shipmentID,
		text:          text,
		authorEmail:   authorEmail,
		authorName:    authorName,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

func (c *Comment) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCommentIsNotConstructed
	}
	return nil
}

func (c *Comment) ID() kernel.UUID           { return c.id }
func (c *Comment) ShipmentID() kernel.UUID   { return c.shipmentID }
func (c *Comment) Text() string              { return c.text }
func (c *Comment) AuthorEmail() kernel.Email { return c.authorEmail }
func (c *Comment) AuthorName() string        { return c.authorName }
func (c *Comment) CreatedAt() time.Time      { return c.createdAt }
