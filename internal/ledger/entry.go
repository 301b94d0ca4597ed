package ledger

import (
	"encoding/hex"
	"time"

	"github.com/bytedance/sonic"
	"github.com/zeebo/blake3"

	"main/internal/trade"
)

// Entry is one immutable verification record for an executed order.
// Payload is the exact canonical byte sequence that was hashed and
// anchored; it never changes after recording.
type Entry struct {
	OrderID     string
	Venue       string
	Symbol      string
	Side        string
	Quantity    string
	Status      string
	FilledPrice string
	RecordedAt  int64
	Payload     []byte
	Hash        string
	Reference   string
}

// canonicalPayload fixes the field set and order of the anchored
// bytes. Any change here breaks hash verification of old entries.
type canonicalPayload struct {
	OrderID     string `json:"order_id"`
	Venue       string `json:"venue"`
	Symbol      string `json:"symbol"`
	Side        string `json:"side"`
	Quantity    string `json:"quantity"`
	Status      string `json:"status"`
	FilledPrice string `json:"filled_price"`
	RecordedAt  int64  `json:"recorded_at"`
}

func newEntry(order trade.Order, now time.Time) (Entry, error) {
	entry := Entry{
		OrderID:     order.ID,
		Venue:       order.Venue,
		Symbol:      order.Symbol,
		Side:        order.Side.String(),
		Quantity:    order.Quantity.String(),
		Status:      order.Status.String(),
		FilledPrice: order.FilledPrice.String(),
		RecordedAt:  now.Unix(),
	}

	payload, err := sonic.ConfigStd.Marshal(canonicalPayload{
		OrderID:     entry.OrderID,
		Venue:       entry.Venue,
		Symbol:      entry.Symbol,
		Side:        entry.Side,
		Quantity:    entry.Quantity,
		Status:      entry.Status,
		FilledPrice: entry.FilledPrice,
		RecordedAt:  entry.RecordedAt,
	})
	if err != nil {
		return Entry{}, err
	}

	sum := blake3.Sum256(payload)
	entry.Payload = payload
	entry.Hash = hex.EncodeToString(sum[:])
	return entry, nil
}

// Verify recomputes the content hash over the stored payload.
func (e Entry) Verify() bool {
	sum := blake3.Sum256(e.Payload)
	return hex.EncodeToString(sum[:]) == e.Hash
}
