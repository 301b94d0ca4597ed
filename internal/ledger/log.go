// Package ledger keeps the verification log: a tamper-evident record
// of executed orders, each anchored on an external ledger.
package ledger

import (
	"context"
	"errors"
	"time"

	yerrors "github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"main/internal/trade"
)

var (
	ErrLoggingFailed  = errors.New("ledger: logging failed")
	ErrDuplicateEntry = errors.New("ledger: entry already recorded")
	ErrNotRecordable  = errors.New("ledger: order never reached the venue")
)

// Notary anchors a memo externally and returns its reference.
type Notary interface {
	Publish(ctx context.Context, memo []byte) (string, error)
}

// Store persists recorded entries. Inserting an order id twice fails
// with ErrDuplicateEntry.
type Store interface {
	Insert(ctx context.Context, entry Entry) error
	Get(ctx context.Context, orderID string) (Entry, bool, error)
	List(ctx context.Context) ([]Entry, error)
}

// Log records verification entries. Recording is all-or-nothing: an
// entry exists only if its memo was anchored first, so a lookup miss
// for an executed order means the anchoring step failed, not that the
// trade did.
type Log struct {
	store  Store
	notary Notary
}

func NewLog(store Store, notary Notary) *Log {
	return &Log{store: store, notary: notary}
}

// Record builds the canonical entry for the order, anchors it through
// the notary, then persists it. Any failure reports ErrLoggingFailed
// and leaves no entry behind; the order itself stands regardless.
func (l *Log) Record(ctx context.Context, order trade.Order) (Entry, error) {
	if order.Status == trade.StatusSubmitted || order.Status == trade.StatusRejected {
		return Entry{}, yerrors.Wrap(ErrNotRecordable, order.ID)
	}
	entry, err := newEntry(order, time.Now())
	if err != nil {
		return Entry{}, yerrors.Wrap(ErrLoggingFailed, err.Error())
	}

	ref, err := l.notary.Publish(ctx, entry.Payload)
	if err != nil {
		logs.Errorf("anchor entry for order %s: %v", order.ID, err)
		return Entry{}, yerrors.Wrap(ErrLoggingFailed, err.Error())
	}
	entry.Reference = ref

	if err := l.store.Insert(ctx, entry); err != nil {
		if errors.Is(err, ErrDuplicateEntry) {
			return Entry{}, err
		}
		logs.Errorf("persist entry for order %s: %v", order.ID, err)
		return Entry{}, yerrors.Wrap(ErrLoggingFailed, err.Error())
	}

	logs.Infof("recorded order %s, hash %s, ref %s", entry.OrderID, entry.Hash, entry.Reference)
	return entry, nil
}

// Lookup returns the entry for an order id. Absence is a valid
// outcome, not an error.
func (l *Log) Lookup(ctx context.Context, orderID string) (Entry, bool, error) {
	return l.store.Get(ctx, orderID)
}

// Entries returns all recorded entries in recording order.
func (l *Log) Entries(ctx context.Context) ([]Entry, error) {
	return l.store.List(ctx)
}
