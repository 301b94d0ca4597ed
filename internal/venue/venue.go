package venue

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyOrderID     = errors.New("venue: empty response order id")
	ErrDecodeResponse   = errors.New("venue: decode response body")
	ErrUnexpectedStatus = errors.New("venue: unexpected http status")
)

// RejectedError is returned when a venue declines an order outright,
// carrying the venue's stated reason verbatim.
type RejectedError struct {
	Venue  string
	Reason string
}

func (e *RejectedError) Error() string {
	return "venue: " + e.Venue + " rejected order: " + e.Reason
}

// Side is the venue-facing trade direction.
type Side uint8

const (
	_side_beg Side = iota
	SideBuy
	SideSell
	_side_end
)

func (s Side) IsAvailable() bool {
	return s > _side_beg && s < _side_end
}

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	default:
		return "unknown"
	}
}

// AckStatus is the normalized venue order status. Each client maps its
// wire statuses onto this set.
type AckStatus uint8

const (
	_ack_status_beg AckStatus = iota
	AckStatusAccepted
	AckStatusRejected
	AckStatusPartFilled
	AckStatusFilled
	AckStatusCanceled
	_ack_status_end
)

func (s AckStatus) IsAvailable() bool {
	return s > _ack_status_beg && s < _ack_status_end
}

func (s AckStatus) String() string {
	switch s {
	case AckStatusAccepted:
		return "accepted"
	case AckStatusRejected:
		return "rejected"
	case AckStatusPartFilled:
		return "partially_filled"
	case AckStatusFilled:
		return "filled"
	case AckStatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// OrderRequest is one market order submission.
type OrderRequest struct {
	Symbol   string
	Side     Side
	Quantity decimal.Decimal
}

// OrderAck is the venue's view of an order after submission or a
// status poll.
type OrderAck struct {
	OrderID     string
	Status      AckStatus
	FilledPrice decimal.Decimal
}

// Position is one holding reported by a venue account.
type Position struct {
	Symbol      string
	Quantity    decimal.Decimal
	MarketValue decimal.Decimal
}

// Client is the execution venue collaborator: one client per asset
// class, constructed only when credentials are configured.
type Client interface {
	Name() string
	SubmitOrder(ctx context.Context, req OrderRequest) (OrderAck, error)
	OrderStatus(ctx context.Context, orderID string) (OrderAck, error)
	Positions(ctx context.Context) ([]Position, error)
}
