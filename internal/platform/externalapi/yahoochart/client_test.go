package yahoochart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	}, &http.Client{Timeout: 5 * time.Second})
}

// TestFetchChart_Success はチャートAPIの並列配列がPriceBarへ変換され、
// null混じりのスロットが除外されることを検証します。
func TestFetchChart_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		assert.Equal(t, "6mo", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"chart": {
				"result": [{
					"meta": {"symbol": "AAPL", "currency": "USD"},
					"timestamp": [1704067200, 1704153600, 1704240000],
					"indicators": {
						"quote": [{
							"open":   [185.0, null, 187.2],
							"high":   [187.5, 188.0, 189.0],
							"low":    [184.2, 185.0, 186.8],
							"close":  [186.9, 187.1, 188.5],
							"volume": [52000000, 48000000, null]
						}]
					}
				}],
				"error": null
			}
		}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	bars, err := c.FetchChart(context.Background(), "AAPL", "6mo", "1d")
	require.NoError(t, err)

	// openがnullの2本目は除外される
	require.Len(t, bars, 2)

	first := bars[0]
	assert.Equal(t, "AAPL", first.Symbol)
	assert.Equal(t, "6mo", first.Range)
	assert.Equal(t, "1d", first.Interval)
	assert.Equal(t, time.Unix(1704067200, 0).UTC(), first.Time)
	assert.Equal(t, 185.0, first.Open)
	assert.Equal(t, 186.9, first.Close)
	assert.Equal(t, int64(52000000), first.Volume)

	// volumeだけnullのスロットは出来高0で残る
	assert.Equal(t, int64(0), bars[1].Volume)
}

// TestFetchChart_APIError はchart.errorが設定されたレスポンスで
// エラーを返すことを検証します。
func TestFetchChart_APIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"chart": {
				"result": null,
				"error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}
			}
		}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	bars, err := c.FetchChart(context.Background(), "DELISTED", "6mo", "1d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not Found")
	assert.Nil(t, bars)
}

// TestFetchChart_EmptyResult は結果なしのレスポンスで (nil, nil) を返すことを検証します。
func TestFetchChart_EmptyResult(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"chart": {"result": [], "error": null}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	bars, err := c.FetchChart(context.Background(), "AAPL", "1mo", "1d")
	require.NoError(t, err)
	assert.Nil(t, bars)
}

// TestFetchChart_HTTPError は4xx/5xxレスポンスでエラーを返すことを検証します。
func TestFetchChart_HTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.FetchChart(context.Background(), "AAPL", "1mo", "1d")
	assert.Error(t, err)
}
