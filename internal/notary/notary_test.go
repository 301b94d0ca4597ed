package notary

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSelfTransfer(t *testing.T) {
	var got transferRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/transactions", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get(_notaryKeyHeader))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, sonic.Unmarshal(body, &got))
		w.Write([]byte(`{"txId":"TX123ABC"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "test-key", "ACCT1")
	ref, err := c.Publish(context.Background(), []byte("hello ledger"))
	require.NoError(t, err)
	assert.Equal(t, "TX123ABC", ref)
	assert.Equal(t, "ACCT1", got.From)
	assert.Equal(t, got.From, got.To, "notarization is a self-transfer")
	assert.EqualValues(t, 0, got.Amount)
	assert.Equal(t, []byte("hello ledger"), got.Note)
}

func TestPublishTruncatesLongMemo(t *testing.T) {
	var got transferRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, sonic.Unmarshal(body, &got))
		w.Write([]byte(`{"txId":"TX1"}`))
	}))
	defer srv.Close()

	memo := make([]byte, MaxMemoSize*2)
	for i := range memo {
		memo[i] = 'a'
	}
	c := NewClient(srv.Client(), srv.URL, "k", "ACCT1")
	_, err := c.Publish(context.Background(), memo)
	require.NoError(t, err)
	assert.Len(t, got.Note, MaxMemoSize)
}

func TestPublishEmptyMemo(t *testing.T) {
	c := NewClient(http.DefaultClient, "http://unused", "k", "ACCT1")
	_, err := c.Publish(context.Background(), nil)
	require.ErrorIs(t, err, ErrEmptyMemo)
}

func TestPublishGatewayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "k", "ACCT1")
	_, err := c.Publish(context.Background(), []byte("memo"))
	require.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestPublishEmptyReference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"txId":""}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "k", "ACCT1")
	_, err := c.Publish(context.Background(), []byte("memo"))
	require.ErrorIs(t, err, ErrEmptyReference)
}

func TestExplorerURL(t *testing.T) {
	assert.Equal(t, _notaryExplorerUrl+"TX9", ExplorerURL("TX9"))
}
