package trade

import (
	"time"

	"github.com/shopspring/decimal"

	"main/internal/venue"
)

// Status tracks the lifecycle of a coordinated order.
type Status uint8

const (
	_status_beg Status = iota
	StatusSubmitted
	StatusAccepted
	StatusRejected
	StatusPartFilled
	StatusFilled
	StatusCanceled
	_status_end
)

func (s Status) IsAvailable() bool {
	return s > _status_beg && s < _status_end
}

// IsTerminal reports whether the order can no longer change state.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusFilled, StatusCanceled:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	switch s {
	case StatusSubmitted:
		return "submitted"
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	case StatusPartFilled:
		return "partially_filled"
	case StatusFilled:
		return "filled"
	case StatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Order holds the coordinator's view of one submitted order.
type Order struct {
	ID          string
	Venue       string
	Symbol      string
	Side        venue.Side
	Quantity    decimal.Decimal
	Status      Status
	FilledPrice decimal.Decimal
	SubmittedAt time.Time
	UpdatedAt   time.Time
}

// applyAck folds a venue acknowledgment into the order, refusing to
// move an order out of a terminal state.
func (o *Order) applyAck(ack venue.OrderAck, now time.Time) bool {
	if o.Status.IsTerminal() {
		return false
	}
	next, ok := statusFromAck(ack.Status)
	if !ok || next == o.Status {
		return false
	}
	o.Status = next
	if !ack.FilledPrice.IsZero() {
		o.FilledPrice = ack.FilledPrice
	}
	o.UpdatedAt = now
	return true
}

func statusFromAck(s venue.AckStatus) (Status, bool) {
	switch s {
	case venue.AckStatusAccepted:
		return StatusAccepted, true
	case venue.AckStatusRejected:
		return StatusRejected, true
	case venue.AckStatusPartFilled:
		return StatusPartFilled, true
	case venue.AckStatusFilled:
		return StatusFilled, true
	case venue.AckStatusCanceled:
		return StatusCanceled, true
	default:
		return 0, false
	}
}
