package venue

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/yanun0323/errors"
)

const (
	_cryptoBaseUrl = "https://testnet.binance.vision"

	_cryptoKeyHeader      = "X-MBX-APIKEY"
	_cryptoRequestTimeout = 15 * time.Second
)

// Crypto submits market orders to a Binance-style testnet exchange
// with HMAC-signed query parameters.
type Crypto struct {
	client  *http.Client
	baseURL string
	key     string
	secret  string

	// The exchange requires the symbol on order-status queries, so the
	// client remembers the symbol of each order it submitted.
	mu      sync.Mutex
	symbols map[string]string
}

// NewCrypto creates a crypto venue client. An empty baseURL selects
// the testnet endpoint.
func NewCrypto(client *http.Client, baseURL, key, secret string) *Crypto {
	if baseURL == "" {
		baseURL = _cryptoBaseUrl
	}
	return &Crypto{
		client:  client,
		baseURL: baseURL,
		key:     key,
		secret:  secret,
		symbols: make(map[string]string),
	}
}

func (c *Crypto) Name() string {
	return "binance-testnet"
}

func (c *Crypto) SubmitOrder(ctx context.Context, req OrderRequest) (OrderAck, error) {
	symbol := cryptoSymbol(req.Symbol)
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("side", strings.ToUpper(req.Side.String()))
	params.Set("type", "MARKET")
	params.Set("quantity", req.Quantity.String())
	params.Set("timestamp", strconv.FormatInt(time.Now().UnixMilli(), 10))

	ack, err := c.signedCall(ctx, http.MethodPost, "/api/v3/order", params)
	if err != nil {
		return OrderAck{}, err
	}

	c.mu.Lock()
	c.symbols[ack.OrderID] = symbol
	c.mu.Unlock()
	return ack, nil
}

func (c *Crypto) OrderStatus(ctx context.Context, orderID string) (OrderAck, error) {
	c.mu.Lock()
	symbol := c.symbols[orderID]
	c.mu.Unlock()

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("orderId", orderID)
	params.Set("timestamp", strconv.FormatInt(time.Now().UnixMilli(), 10))

	return c.signedCall(ctx, http.MethodGet, "/api/v3/order", params)
}

func (c *Crypto) Positions(ctx context.Context) ([]Position, error) {
	params := url.Values{}
	params.Set("timestamp", strconv.FormatInt(time.Now().UnixMilli(), 10))

	ctx, cancel := context.WithTimeout(ctx, _cryptoRequestTimeout)
	defer cancel()
	r, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v3/account?"+c.sign(params), nil)
	if err != nil {
		return nil, err
	}
	r.Header.Set(_cryptoKeyHeader, c.key)

	resp, err := c.client.Do(r)
	if err != nil {
		return nil, errors.Wrap(err, "fetch crypto account")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrap(ErrUnexpectedStatus, resp.Status)
	}

	var data cryptoAccountPayload
	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, errors.Wrap(ErrDecodeResponse, err.Error())
	}
	return data.positions(), nil
}

func (c *Crypto) signedCall(ctx context.Context, method, path string, params url.Values) (OrderAck, error) {
	ctx, cancel := context.WithTimeout(ctx, _cryptoRequestTimeout)
	defer cancel()
	r, err := http.NewRequestWithContext(ctx, method, c.baseURL+path+"?"+c.sign(params), nil)
	if err != nil {
		return OrderAck{}, err
	}
	r.Header.Set(_cryptoKeyHeader, c.key)

	resp, err := c.client.Do(r)
	if err != nil {
		return OrderAck{}, errors.Wrap(err, "send crypto order request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError {
		var decline cryptoErrorPayload
		if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(&decline); err != nil {
			return OrderAck{}, errors.Wrap(ErrDecodeResponse, err.Error())
		}
		return OrderAck{}, &RejectedError{Venue: c.Name(), Reason: decline.Msg}
	}
	if resp.StatusCode != http.StatusOK {
		return OrderAck{}, errors.Wrap(ErrUnexpectedStatus, resp.Status)
	}

	var data cryptoOrderPayload
	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(&data); err != nil {
		return OrderAck{}, errors.Wrap(ErrDecodeResponse, err.Error())
	}
	return data.ack()
}

// sign appends the HMAC-SHA256 signature of the encoded query string,
// keyed with the account secret.
func (c *Crypto) sign(params url.Values) string {
	encoded := params.Encode()
	mac := hmac.New(sha256.New, []byte(c.secret))
	mac.Write([]byte(encoded))
	return encoded + "&signature=" + hex.EncodeToString(mac.Sum(nil))
}

// cryptoSymbol collapses "BTC/USDT" into the exchange's "BTCUSDT".
func cryptoSymbol(symbol string) string {
	return strings.ToUpper(strings.ReplaceAll(symbol, "/", ""))
}
