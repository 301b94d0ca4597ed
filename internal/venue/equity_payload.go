package venue

import (
	"github.com/shopspring/decimal"
	wire "github.com/yanun0323/decimal"
	"github.com/yanun0323/errors"
)

type equityOrderRequest struct {
	Symbol      string `json:"symbol"`
	Qty         string `json:"qty"`
	Side        string `json:"side"`
	Type        string `json:"type"`
	TimeInForce string `json:"time_in_force"`
}

type equityOrderPayload struct {
	ID             string        `json:"id"`
	Status         string        `json:"status"`
	FilledAvgPrice *wire.Decimal `json:"filled_avg_price"`
}

type equityErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type equityPositionPayload struct {
	Symbol      string `json:"symbol"`
	Qty         string `json:"qty"`
	MarketValue string `json:"market_value"`
}

func (p equityOrderPayload) ack() (OrderAck, error) {
	if p.ID == "" {
		return OrderAck{}, ErrEmptyOrderID
	}
	status, ok := equityAckStatus(p.Status)
	if !ok {
		return OrderAck{}, errors.Wrap(ErrDecodeResponse, "unknown order status: "+p.Status)
	}

	price := decimal.Zero
	if p.FilledAvgPrice != nil {
		price = parseWireDecimal(p.FilledAvgPrice.String())
	}
	return OrderAck{OrderID: p.ID, Status: status, FilledPrice: price}, nil
}

// equityAckStatus maps brokerage wire statuses onto the normalized
// set. Pre-acceptance lifecycle states all read as accepted: the order
// is live at the venue.
func equityAckStatus(s string) (AckStatus, bool) {
	switch s {
	case "new", "accepted", "pending_new", "accepted_for_bidding":
		return AckStatusAccepted, true
	case "partially_filled":
		return AckStatusPartFilled, true
	case "filled":
		return AckStatusFilled, true
	case "canceled", "expired", "done_for_day", "stopped":
		return AckStatusCanceled, true
	case "rejected", "suspended":
		return AckStatusRejected, true
	default:
		return 0, false
	}
}
