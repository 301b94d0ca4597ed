package venue

import (
	"strconv"

	"github.com/shopspring/decimal"
	wire "github.com/yanun0323/decimal"
	"github.com/yanun0323/errors"
)

type cryptoOrderPayload struct {
	OrderID             int64         `json:"orderId"`
	Status              string        `json:"status"`
	ExecutedQty         *wire.Decimal `json:"executedQty"`
	CummulativeQuoteQty *wire.Decimal `json:"cummulativeQuoteQty"`
}

type cryptoErrorPayload struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

type cryptoAccountPayload struct {
	Balances []cryptoBalancePayload `json:"balances"`
}

type cryptoBalancePayload struct {
	Asset  string        `json:"asset"`
	Free   *wire.Decimal `json:"free"`
	Locked *wire.Decimal `json:"locked"`
}

func (p cryptoOrderPayload) ack() (OrderAck, error) {
	if p.OrderID == 0 {
		return OrderAck{}, ErrEmptyOrderID
	}
	status, ok := cryptoAckStatus(p.Status)
	if !ok {
		return OrderAck{}, errors.Wrap(ErrDecodeResponse, "unknown order status: "+p.Status)
	}

	// The exchange reports the spent quote amount and the executed base
	// quantity rather than an average price. Derive one when both are
	// present and non-zero.
	price := decimal.Zero
	if p.ExecutedQty != nil && p.CummulativeQuoteQty != nil {
		qty := parseWireDecimal(p.ExecutedQty.String())
		quote := parseWireDecimal(p.CummulativeQuoteQty.String())
		if !qty.IsZero() {
			price = quote.Div(qty)
		}
	}
	return OrderAck{
		OrderID:     strconv.FormatInt(p.OrderID, 10),
		Status:      status,
		FilledPrice: price,
	}, nil
}

func cryptoAckStatus(s string) (AckStatus, bool) {
	switch s {
	case "NEW", "PENDING_NEW":
		return AckStatusAccepted, true
	case "PARTIALLY_FILLED":
		return AckStatusPartFilled, true
	case "FILLED":
		return AckStatusFilled, true
	case "CANCELED", "EXPIRED", "EXPIRED_IN_MATCH":
		return AckStatusCanceled, true
	case "REJECTED":
		return AckStatusRejected, true
	default:
		return 0, false
	}
}

// positions folds account balances into holdings, dropping zero rows.
// Spot balances carry no market valuation.
func (p cryptoAccountPayload) positions() []Position {
	out := make([]Position, 0, len(p.Balances))
	for _, b := range p.Balances {
		qty := decimal.Zero
		if b.Free != nil {
			qty = parseWireDecimal(b.Free.String())
		}
		if b.Locked != nil {
			qty = qty.Add(parseWireDecimal(b.Locked.String()))
		}
		if qty.IsZero() {
			continue
		}
		out = append(out, Position{Symbol: b.Asset, Quantity: qty})
	}
	return out
}
