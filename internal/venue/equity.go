package venue

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"
)

const (
	_equityBaseUrl = "https://paper-api.alpaca.markets"

	_equityKeyHeader    = "APCA-API-KEY-ID"
	_equitySecretHeader = "APCA-API-SECRET-KEY"

	_equityRequestTimeout = 15 * time.Second
)

// Equity submits paper-trading market orders to an Alpaca-style
// brokerage REST API.
type Equity struct {
	client  *http.Client
	baseURL string
	key     string
	secret  string
}

// NewEquity creates an equity venue client. An empty baseURL selects
// the paper-trading endpoint.
func NewEquity(client *http.Client, baseURL, key, secret string) *Equity {
	if baseURL == "" {
		baseURL = _equityBaseUrl
	}
	return &Equity{client: client, baseURL: baseURL, key: key, secret: secret}
}

func (e *Equity) Name() string {
	return "alpaca-paper"
}

func (e *Equity) SubmitOrder(ctx context.Context, req OrderRequest) (OrderAck, error) {
	body := equityOrderRequest{
		Symbol:      req.Symbol,
		Qty:         req.Quantity.String(),
		Side:        req.Side.String(),
		Type:        "market",
		TimeInForce: "day",
	}
	payload, err := sonic.ConfigFastest.Marshal(body)
	if err != nil {
		return OrderAck{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, _equityRequestTimeout)
	defer cancel()
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v2/orders", bytes.NewReader(payload))
	if err != nil {
		return OrderAck{}, err
	}
	r.Header.Set("Content-Type", "application/json")
	e.authorize(r)

	return e.do(r)
}

func (e *Equity) OrderStatus(ctx context.Context, orderID string) (OrderAck, error) {
	ctx, cancel := context.WithTimeout(ctx, _equityRequestTimeout)
	defer cancel()
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/v2/orders/"+orderID, nil)
	if err != nil {
		return OrderAck{}, err
	}
	e.authorize(r)

	return e.do(r)
}

func (e *Equity) Positions(ctx context.Context) ([]Position, error) {
	ctx, cancel := context.WithTimeout(ctx, _equityRequestTimeout)
	defer cancel()
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/v2/positions", nil)
	if err != nil {
		return nil, err
	}
	e.authorize(r)

	resp, err := e.client.Do(r)
	if err != nil {
		return nil, errors.Wrap(err, "fetch equity positions")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrap(ErrUnexpectedStatus, resp.Status)
	}

	var data []equityPositionPayload
	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, errors.Wrap(ErrDecodeResponse, err.Error())
	}

	out := make([]Position, 0, len(data))
	for _, p := range data {
		out = append(out, Position{
			Symbol:      p.Symbol,
			Quantity:    parseWireDecimal(p.Qty),
			MarketValue: parseWireDecimal(p.MarketValue),
		})
	}
	return out, nil
}

func (e *Equity) authorize(r *http.Request) {
	r.Header.Set(_equityKeyHeader, e.key)
	r.Header.Set(_equitySecretHeader, e.secret)
}

func (e *Equity) do(r *http.Request) (OrderAck, error) {
	resp, err := e.client.Do(r)
	if err != nil {
		return OrderAck{}, errors.Wrap(err, "send equity order request")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnprocessableEntity {
		var decline equityErrorPayload
		if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(&decline); err != nil {
			return OrderAck{}, errors.Wrap(ErrDecodeResponse, err.Error())
		}
		return OrderAck{}, &RejectedError{Venue: e.Name(), Reason: decline.Message}
	}
	if resp.StatusCode != http.StatusOK {
		return OrderAck{}, errors.Wrap(ErrUnexpectedStatus, resp.Status)
	}

	var data equityOrderPayload
	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(&data); err != nil {
		return OrderAck{}, errors.Wrap(ErrDecodeResponse, err.Error())
	}
	return data.ack()
}

func parseWireDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
