package trade

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/venue"
)

type fakeVenue struct {
	name       string
	submitAck  venue.OrderAck
	submitErr  error
	statusAck  venue.OrderAck
	statusErr  error
	positions  []venue.Position
	submits    int
	statusHits int
}

func (f *fakeVenue) Name() string { return f.name }

func (f *fakeVenue) SubmitOrder(_ context.Context, _ venue.OrderRequest) (venue.OrderAck, error) {
	f.submits++
	return f.submitAck, f.submitErr
}

func (f *fakeVenue) OrderStatus(_ context.Context, _ string) (venue.OrderAck, error) {
	f.statusHits++
	return f.statusAck, f.statusErr
}

func (f *fakeVenue) Positions(_ context.Context) ([]venue.Position, error) {
	return f.positions, nil
}

func buyRequest(symbol string) Request {
	return Request{Symbol: symbol, Side: venue.SideBuy, Quantity: decimal.NewFromInt(10)}
}

func TestSubmitAccepted(t *testing.T) {
	eq := &fakeVenue{
		name:      "eq",
		submitAck: venue.OrderAck{OrderID: "ord-1", Status: venue.AckStatusAccepted},
	}
	c := NewCoordinator(eq, nil)

	order, err := c.Submit(context.Background(), buyRequest("AAPL"))
	require.NoError(t, err)
	assert.Equal(t, "ord-1", order.ID)
	assert.Equal(t, StatusAccepted, order.Status)
	assert.Equal(t, "eq", order.Venue)
}

func TestSubmitRoutesPairSymbolToCrypto(t *testing.T) {
	eq := &fakeVenue{name: "eq", submitAck: venue.OrderAck{OrderID: "e1", Status: venue.AckStatusAccepted}}
	cr := &fakeVenue{name: "cr", submitAck: venue.OrderAck{OrderID: "c1", Status: venue.AckStatusAccepted}}
	c := NewCoordinator(eq, cr)

	order, err := c.Submit(context.Background(), buyRequest("BTC/USDT"))
	require.NoError(t, err)
	assert.Equal(t, "cr", order.Venue)
	assert.Equal(t, 1, cr.submits)
	assert.Equal(t, 0, eq.submits)
}

func TestSubmitRejectedIsRecordedTerminal(t *testing.T) {
	eq := &fakeVenue{
		name:      "eq",
		submitErr: &venue.RejectedError{Venue: "eq", Reason: "insufficient buying power"},
	}
	c := NewCoordinator(eq, nil)

	order, err := c.Submit(context.Background(), buyRequest("AAPL"))
	var rejected *venue.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, StatusRejected, order.Status)

	tracked, ok := c.Order(order.ID)
	require.True(t, ok)
	assert.Equal(t, StatusRejected, tracked.Status)
}

func TestSubmitVenueUnavailable(t *testing.T) {
	eq := &fakeVenue{name: "eq", submitErr: errors.New("connection refused")}
	c := NewCoordinator(eq, nil)

	_, err := c.Submit(context.Background(), buyRequest("AAPL"))
	require.ErrorIs(t, err, ErrVenueUnavailable)
	assert.Empty(t, c.Orders(), "a transport failure must not leave an order behind")
}

func TestSubmitNoVenueConfigured(t *testing.T) {
	c := NewCoordinator(nil, nil)
	_, err := c.Submit(context.Background(), buyRequest("AAPL"))
	require.ErrorIs(t, err, ErrVenueUnavailable)
}

func TestSubmitInvalidRequest(t *testing.T) {
	c := NewCoordinator(&fakeVenue{name: "eq"}, nil)

	_, err := c.Submit(context.Background(), Request{Symbol: "AAPL", Side: venue.SideBuy})
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = c.Submit(context.Background(), Request{Symbol: "", Side: venue.SideBuy, Quantity: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestSubmitNeverDeduplicates(t *testing.T) {
	eq := &fakeVenue{name: "eq", submitAck: venue.OrderAck{OrderID: "ord-1", Status: venue.AckStatusAccepted}}
	c := NewCoordinator(eq, nil)

	_, err := c.Submit(context.Background(), buyRequest("AAPL"))
	require.NoError(t, err)
	eq.submitAck.OrderID = "ord-2"
	_, err = c.Submit(context.Background(), buyRequest("AAPL"))
	require.NoError(t, err)

	assert.Equal(t, 2, eq.submits)
	assert.Len(t, c.Orders(), 2)
}

func TestRefreshStatusTransitions(t *testing.T) {
	eq := &fakeVenue{
		name:      "eq",
		submitAck: venue.OrderAck{OrderID: "ord-1", Status: venue.AckStatusAccepted},
		statusAck: venue.OrderAck{OrderID: "ord-1", Status: venue.AckStatusPartFilled},
	}
	c := NewCoordinator(eq, nil)
	order, err := c.Submit(context.Background(), buyRequest("AAPL"))
	require.NoError(t, err)

	refreshed, err := c.RefreshStatus(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPartFilled, refreshed.Status)

	eq.statusAck = venue.OrderAck{
		OrderID:     "ord-1",
		Status:      venue.AckStatusFilled,
		FilledPrice: decimal.NewFromFloat(187.25),
	}
	refreshed, err = c.RefreshStatus(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFilled, refreshed.Status)
	assert.Equal(t, "187.25", refreshed.FilledPrice.String())
}

func TestRefreshTerminalSkipsVenue(t *testing.T) {
	eq := &fakeVenue{
		name:      "eq",
		submitAck: venue.OrderAck{OrderID: "ord-1", Status: venue.AckStatusFilled},
		statusAck: venue.OrderAck{OrderID: "ord-1", Status: venue.AckStatusAccepted},
	}
	c := NewCoordinator(eq, nil)
	order, err := c.Submit(context.Background(), buyRequest("AAPL"))
	require.NoError(t, err)
	require.Equal(t, StatusFilled, order.Status)

	refreshed, err := c.RefreshStatus(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFilled, refreshed.Status, "terminal state must never regress")
	assert.Equal(t, 0, eq.statusHits)
}

func TestRefreshUnknownOrder(t *testing.T) {
	c := NewCoordinator(&fakeVenue{name: "eq"}, nil)
	_, err := c.RefreshStatus(context.Background(), "nope")
	require.ErrorIs(t, err, ErrUnknownOrder)
}

func TestRefreshVenueFailureKeepsState(t *testing.T) {
	eq := &fakeVenue{
		name:      "eq",
		submitAck: venue.OrderAck{OrderID: "ord-1", Status: venue.AckStatusAccepted},
		statusErr: errors.New("connection reset"),
	}
	c := NewCoordinator(eq, nil)
	order, err := c.Submit(context.Background(), buyRequest("AAPL"))
	require.NoError(t, err)

	got, err := c.RefreshStatus(context.Background(), order.ID)
	require.ErrorIs(t, err, ErrVenueUnavailable)
	assert.Equal(t, StatusAccepted, got.Status)
}

func TestPending(t *testing.T) {
	eq := &fakeVenue{name: "eq", submitAck: venue.OrderAck{OrderID: "ord-1", Status: venue.AckStatusAccepted}}
	c := NewCoordinator(eq, nil)
	_, err := c.Submit(context.Background(), buyRequest("AAPL"))
	require.NoError(t, err)

	eq.submitAck = venue.OrderAck{OrderID: "ord-2", Status: venue.AckStatusFilled}
	_, err = c.Submit(context.Background(), buyRequest("MSFT"))
	require.NoError(t, err)

	pending := c.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "ord-1", pending[0].ID)
}

func TestPortfolioAggregatesVenues(t *testing.T) {
	eq := &fakeVenue{name: "eq", positions: []venue.Position{
		{Symbol: "AAPL", Quantity: decimal.NewFromInt(10), MarketValue: decimal.NewFromInt(1872)},
	}}
	cr := &fakeVenue{name: "cr", positions: []venue.Position{
		{Symbol: "BTC", Quantity: decimal.NewFromFloat(0.5)},
	}}
	c := NewCoordinator(eq, cr)

	holdings, err := c.Portfolio(context.Background())
	require.NoError(t, err)
	require.Len(t, holdings, 2)
	assert.Equal(t, "eq", holdings[0].Venue)
	assert.Equal(t, "cr", holdings[1].Venue)
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusSubmitted.IsTerminal())
	assert.False(t, StatusAccepted.IsTerminal())
	assert.False(t, StatusPartFilled.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusFilled.IsTerminal())
	assert.True(t, StatusCanceled.IsTerminal())
}
