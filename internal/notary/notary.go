// Package notary anchors audit memos on an external ledger by sending
// zero-value self-transfers whose note field carries the memo.
package notary

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	yerrors "github.com/yanun0323/errors"
)

var (
	ErrEmptyMemo        = errors.New("notary: empty memo")
	ErrEmptyReference   = errors.New("notary: empty transaction reference")
	ErrDecodeResponse   = errors.New("notary: decode response body")
	ErrUnexpectedStatus = errors.New("notary: unexpected http status")
)

const (
	_notaryBaseUrl     = "https://testnet-api.algonode.cloud"
	_notaryExplorerUrl = "https://testnet.explorer.perawallet.app/tx/"

	_notaryKeyHeader      = "X-API-Key"
	_notaryRequestTimeout = 15 * time.Second

	// MaxMemoSize is the ledger's note field capacity in bytes.
	MaxMemoSize = 256
)

// Client publishes memos to the external ledger's REST gateway.
type Client struct {
	client  *http.Client
	baseURL string
	key     string
	account string
}

// NewClient creates a notary client for the given ledger account. An
// empty baseURL selects the testnet gateway.
func NewClient(client *http.Client, baseURL, key, account string) *Client {
	if baseURL == "" {
		baseURL = _notaryBaseUrl
	}
	return &Client{client: client, baseURL: baseURL, key: key, account: account}
}

type transferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
	Note   []byte `json:"note"`
}

type transferResponse struct {
	TxID string `json:"txId"`
}

// Publish anchors the memo in a zero-value self-transfer and returns
// the ledger transaction id. Memos longer than MaxMemoSize are
// truncated to fit the note field.
func (c *Client) Publish(ctx context.Context, memo []byte) (string, error) {
	if len(memo) == 0 {
		return "", ErrEmptyMemo
	}
	if len(memo) > MaxMemoSize {
		memo = memo[:MaxMemoSize]
	}

	payload, err := sonic.ConfigFastest.Marshal(transferRequest{
		From:   c.account,
		To:     c.account,
		Amount: 0,
		Note:   memo,
	})
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, _notaryRequestTimeout)
	defer cancel()
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/transactions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set(_notaryKeyHeader, c.key)

	resp, err := c.client.Do(r)
	if err != nil {
		return "", yerrors.Wrap(err, "send notary transfer")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", yerrors.Wrap(ErrUnexpectedStatus, resp.Status)
	}

	var data transferResponse
	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", yerrors.Wrap(ErrDecodeResponse, err.Error())
	}
	if data.TxID == "" {
		return "", ErrEmptyReference
	}
	return data.TxID, nil
}

// ExplorerURL returns a browsable link for a published reference.
func ExplorerURL(ref string) string {
	return _notaryExplorerUrl + ref
}
