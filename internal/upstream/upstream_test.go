package upstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/tcg-analytics/internal/upstream"
)

func TestDoJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		call       upstream.Call
		handler    http.HandlerFunc
		wantErr    bool
		wantStatus int
		errContain string
		check      func(t *testing.T, got map[string]any)
	}{
		{
			name: "decodes 200 response and forwards headers",
			call: upstream.Call{
				Service: "test",
				Op:      "get",
				Method:  http.MethodGet,
				Header:  http.Header{"X-Api-Key": {"secret"}},
			},
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
				_, _ = w.Write([]byte(`{"price": 10.50, "name": "Charizard"}`))
			},
			check: func(t *testing.T, got map[string]any) {
				t.Helper()
				assert.Equal(t, "Charizard", got["name"])
				assert.Equal(t, json.Number("10.50"), got["price"])
			},
		},
		{
			name: "encodes JSON body",
			call: upstream.Call{
				Service: "test",
				Op:      "post",
				Method:  http.MethodPost,
				Body:    map[string]string{"image": "aGVsbG8="},
			},
			handler: func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				assert.JSONEq(t, `{"image":"aGVsbG8="}`, string(body))
				_, _ = w.Write([]byte(`{}`))
			},
		},
		{
			name: "non-2xx becomes RequestError with status",
			call: upstream.Call{Service: "justtcg", Op: "get_card", Method: http.MethodGet},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid key"}`))
			},
			wantErr:    true,
			wantStatus: http.StatusUnauthorized,
			errContain: "justtcg get_card request failed (status 401)",
		},
		{
			name: "invalid JSON becomes RequestError",
			call: upstream.Call{Service: "ebay", Op: "search", Method: http.MethodGet},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
			wantErr:    true,
			errContain: "parsing response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			call := tt.call
			call.URL = srv.URL

			var got map[string]any
			err := upstream.DoJSON(context.Background(), srv.Client(), call, &got)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)

				var reqErr *upstream.RequestError
				require.ErrorAs(t, err, &reqErr)
				assert.Equal(t, tt.wantStatus, reqErr.StatusCode)
				assert.False(t, upstream.IsNotConfigured(err))
				return
			}

			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestDoJSON_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := upstream.DoJSON(context.Background(), http.DefaultClient, upstream.Call{
		Service: "ebay",
		Op:      "search",
		Method:  http.MethodGet,
		URL:     url,
	}, nil)
	require.Error(t, err)

	var reqErr *upstream.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Zero(t, reqErr.StatusCode)
	assert.NotNil(t, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "ebay search request failed")
}

func TestRequestError_TruncatesBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("x", 2048)))
	}))
	defer srv.Close()

	err := upstream.DoJSON(context.Background(), srv.Client(), upstream.Call{
		Service: "justtcg",
		Op:      "get_card",
		Method:  http.MethodGet,
		URL:     srv.URL,
	}, nil)

	var reqErr *upstream.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Less(t, len(reqErr.Body), 600)
	assert.True(t, strings.HasSuffix(reqErr.Body, "..."))
}

func TestIsNotConfigured(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("%w: api key is required", upstream.ErrNotConfigured)
	assert.True(t, upstream.IsNotConfigured(wrapped))
	assert.False(t, upstream.IsNotConfigured(errors.New("boom")))
	assert.False(t, upstream.IsNotConfigured(nil))
}
