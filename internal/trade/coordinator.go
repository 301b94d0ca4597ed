package trade

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	yerrors "github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"main/internal/venue"
)

var (
	ErrVenueUnavailable = errors.New("trade: venue unavailable")
	ErrUnknownOrder     = errors.New("trade: order not found")
	ErrInvalidRequest   = errors.New("trade: invalid order request")
)

// Request is one trade submission from the caller's point of view.
type Request struct {
	Symbol   string
	Side     venue.Side
	Quantity decimal.Decimal
}

// Holding is one aggregated position across venues.
type Holding struct {
	Venue       string
	Symbol      string
	Quantity    decimal.Decimal
	MarketValue decimal.Decimal
}

// Coordinator routes orders to the venue matching their asset class
// and tracks each order's lifecycle. Submissions are never
// deduplicated: the same request twice yields two orders.
type Coordinator struct {
	equity venue.Client
	crypto venue.Client

	mu       sync.Mutex
	orders   map[string]*Order
	sequence []string
	locks    map[string]*sync.Mutex
	rejected uint64
}

// NewCoordinator creates a coordinator over the configured venue
// clients. Either client may be nil when its credentials are absent.
func NewCoordinator(equity, crypto venue.Client) *Coordinator {
	return &Coordinator{
		equity: equity,
		crypto: crypto,
		orders: make(map[string]*Order),
		locks:  make(map[string]*sync.Mutex),
	}
}

// Submit sends the order to its venue and records the outcome. A
// rejection is recorded as a terminal order and reported through a
// *venue.RejectedError; a transport failure leaves no order behind.
func (c *Coordinator) Submit(ctx context.Context, req Request) (Order, error) {
	if req.Symbol == "" || !req.Side.IsAvailable() || !req.Quantity.IsPositive() {
		return Order{}, ErrInvalidRequest
	}
	client := c.route(req.Symbol)
	if client == nil {
		return Order{}, yerrors.Wrap(ErrVenueUnavailable, "no venue configured for "+req.Symbol)
	}

	now := time.Now()
	order := &Order{
		Venue:       client.Name(),
		Symbol:      req.Symbol,
		Side:        req.Side,
		Quantity:    req.Quantity,
		Status:      StatusSubmitted,
		SubmittedAt: now,
		UpdatedAt:   now,
	}

	ack, err := client.SubmitOrder(ctx, venue.OrderRequest{
		Symbol:   req.Symbol,
		Side:     req.Side,
		Quantity: req.Quantity,
	})
	if err != nil {
		var rejected *venue.RejectedError
		if errors.As(err, &rejected) {
			order.Status = StatusRejected
			order.UpdatedAt = time.Now()
			c.record(order, c.nextRejectedID())
			logs.Infof("order rejected by %s: %s", order.Venue, rejected.Reason)
			return *order, err
		}
		return Order{}, yerrors.Wrap(ErrVenueUnavailable, err.Error())
	}

	order.applyAck(ack, time.Now())
	c.record(order, ack.OrderID)
	logs.Infof("order %s %s: %s %s %s", order.ID, order.Status, order.Side, order.Quantity, order.Symbol)
	return *order, nil
}

// RefreshStatus polls the venue for the order's current state.
// Refreshes of the same order are serialized; a terminal order is
// returned as-is without touching the venue.
func (c *Coordinator) RefreshStatus(ctx context.Context, orderID string) (Order, error) {
	c.mu.Lock()
	order, ok := c.orders[orderID]
	if !ok {
		c.mu.Unlock()
		return Order{}, yerrors.Wrap(ErrUnknownOrder, orderID)
	}
	lock := c.locks[orderID]
	c.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	c.mu.Lock()
	snapshot := *order
	c.mu.Unlock()
	if snapshot.Status.IsTerminal() {
		return snapshot, nil
	}

	client := c.route(snapshot.Symbol)
	if client == nil {
		return snapshot, yerrors.Wrap(ErrVenueUnavailable, "no venue configured for "+snapshot.Symbol)
	}
	ack, err := client.OrderStatus(ctx, orderID)
	if err != nil {
		return snapshot, yerrors.Wrap(ErrVenueUnavailable, err.Error())
	}

	c.mu.Lock()
	order.applyAck(ack, time.Now())
	snapshot = *order
	c.mu.Unlock()
	return snapshot, nil
}

// Order returns the tracked order by id.
func (c *Coordinator) Order(orderID string) (Order, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	order, ok := c.orders[orderID]
	if !ok {
		return Order{}, false
	}
	return *order, true
}

// Orders returns all tracked orders in submission order.
func (c *Coordinator) Orders() []Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Order, 0, len(c.sequence))
	for _, id := range c.sequence {
		out = append(out, *c.orders[id])
	}
	return out
}

// Pending returns tracked orders still awaiting a terminal state.
func (c *Coordinator) Pending() []Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Order, 0, len(c.sequence))
	for _, id := range c.sequence {
		if o := c.orders[id]; !o.Status.IsTerminal() {
			out = append(out, *o)
		}
	}
	return out
}

// Portfolio fetches holdings from every configured venue.
func (c *Coordinator) Portfolio(ctx context.Context) ([]Holding, error) {
	out := make([]Holding, 0, 8)
	for _, client := range []venue.Client{c.equity, c.crypto} {
		if client == nil {
			continue
		}
		positions, err := client.Positions(ctx)
		if err != nil {
			return nil, yerrors.Wrap(ErrVenueUnavailable, client.Name()+": "+err.Error())
		}
		for _, p := range positions {
			out = append(out, Holding{
				Venue:       client.Name(),
				Symbol:      p.Symbol,
				Quantity:    p.Quantity,
				MarketValue: p.MarketValue,
			})
		}
	}
	return out, nil
}

// route picks the venue by asset class: pair symbols like BTC/USDT
// trade on the crypto venue, plain tickers on the equity venue.
func (c *Coordinator) route(symbol string) venue.Client {
	if strings.Contains(symbol, "/") {
		return c.crypto
	}
	return c.equity
}

func (c *Coordinator) record(order *Order, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	order.ID = id
	c.orders[id] = order
	c.sequence = append(c.sequence, id)
	c.locks[id] = &sync.Mutex{}
}

// nextRejectedID labels orders the venue declined without assigning an
// id of its own.
func (c *Coordinator) nextRejectedID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rejected++
	return "rejected-" + strconv.FormatUint(c.rejected, 10)
}
