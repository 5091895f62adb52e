package shipment

import (
	"fmt"
	"strings"

	"parceltrack/internal/pkg/errs"
)

// Status is the lifecycle state of a shipment.
//
// The statuses form one fixed total order:
//
//	Dispatched < InTransit < Delivered < Returned < Cancelled
//
// A transition is accepted only towards a status strictly later in that order.
// This is a forward walk through a list, not a semantic graph: Delivered may
// still move to Returned or Cancelled, nothing ever moves backwards, and
// Cancelled has no successor. allowedTargets spells the rule out per status so
// it can be reviewed and tested as a table.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota

	// Dispatched is the creation status. It is never reached through a transition.
	Dispatched

	InTransit

	// Delivered blocks edits and status updates by participants, and opens feedback.
	Delivered

	Returned

	// Cancelled is the last status in the order; no transition leaves it.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Dispatched: "Dispatched",
		InTransit:  "In Transit",
		Delivered:  "Delivered",
		Returned:   "Returned",
		Cancelled:  "Cancelled",
	}
}

// allowedTargets lists, per status, every status strictly after it in the fixed order.
func allowedTargets() map[Status][]Status {
	//nolint:exhaustive // Unknown has no targets
	return map[Status][]Status{
		Dispatched: {InTransit, Delivered, Returned, Cancelled},
		InTransit:  {Delivered, Returned, Cancelled},
		Delivered:  {Returned, Cancelled},
		Returned:   {Cancelled},
		Cancelled:  {},
	}
}

// Statuses returns all valid statuses in their fixed order.
func Statuses() []Status {
	return []Status{Dispatched, InTransit, Delivered, Returned, Cancelled}
}

// ParseStatus accepts the display names ("In Transit") as well as the
// compact forms ("InTransit", "in_transit"), case-insensitively.
func ParseStatus(s string) (Status, error) {
	normalized := strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	for _, status := range Statuses() {
		if strings.ReplaceAll(strings.ToLower(status.String()), " ", "") == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// Validate rejects Unknown and out-of-range values, e.g. read from storage.
func (s Status) Validate() error {
	if s < Dispatched || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// AllowedTargets returns the statuses a shipment in s may move to.
// The returned slice is a copy.
func (s Status) AllowedTargets() []Status {
	targets := allowedTargets()[s]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// CanTransitionTo reports whether target is in s.AllowedTargets().
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range allowedTargets()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ValidateTransition returns an InvalidTransitionError unless target is reachable from s.
func (s Status) ValidateTransition(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return nil
}

// IsTerminal reports whether participants may no longer edit the shipment or
// move its status. Delivered is terminal in this sense even though the status
// order itself still lists successors for it.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}
