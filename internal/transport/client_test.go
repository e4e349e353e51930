package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmatch/stockmatch/pkg/errors"
)

func TestClientGetDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "secret", r.Header.Get("key"))
		_, _ = w.Write([]byte(`{"status":200}`))
	}))
	defer srv.Close()

	c := New(HeaderAuth{Headers: map[string]string{"key": "secret"}}, WithHTTPClient(srv.Client()))
	resp, err := c.Get(context.Background(), srv.URL+"/x")
	require.NoError(t, err)

	var out struct{ Status int }
	require.NoError(t, DecodeResponse(resp, "test", &out))
	assert.Equal(t, 200, out.Status)
}

func TestDecodeResponseErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   "nope",
			check: func(t *testing.T, err error) {
				var authErr *errors.AuthenticationError
				assert.ErrorAs(t, err, &authErr)
				assert.True(t, errors.IsUnauthorized(err))
			},
		},
		{
			name:   "server error",
			status: http.StatusBadGateway,
			body:   strings.Repeat("x", 1000),
			check: func(t *testing.T, err error) {
				var apiErr *errors.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "/x", apiErr.Endpoint)
				assert.Len(t, apiErr.Message, maxErrorBody+3)
				assert.ErrorIs(t, err, errors.ErrUpstreamUnavailable)
			},
		},
		{
			name:   "bad json",
			status: http.StatusOK,
			body:   "{",
			check: func(t *testing.T, err error) {
				var parseErr *errors.ParseError
				assert.ErrorAs(t, err, &parseErr)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resp, err := New(nil).Get(context.Background(), srv.URL+"/x")
			require.NoError(t, err)

			var out map[string]any
			tt.check(t, DecodeResponse(resp, "test", &out))
		})
	}
}
