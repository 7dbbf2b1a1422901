// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
)

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	})
}

func TestRouterRejectsDuplicates(t *testing.T) {
	require := require.New(t)

	r := newRouter()
	require.NoError(r.AddRouter("/base", "/a", okHandler("a")))
	require.NoError(r.AddRouter("/base", "/b", okHandler("b")))
	require.ErrorIs(r.AddRouter("/base", "/a", okHandler("a")), errAlreadyReserved)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/base/b", nil))
	require.Equal("b", rec.Body.String())
}

func TestFilterInvalidHosts(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		host    string
		code    int
	}{
		{name: "wildcard", allowed: []string{"*"}, host: "example.com", code: http.StatusOK},
		{name: "empty", host: "example.com", code: http.StatusOK},
		{name: "listed", allowed: []string{"Example.com"}, host: "example.com:9660", code: http.StatusOK},
		{name: "ip", allowed: []string{"example.com"}, host: "127.0.0.1:9660", code: http.StatusOK},
		{name: "unlisted", allowed: []string{"example.com"}, host: "evil.com", code: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := filterInvalidHosts(okHandler("ok"), tt.allowed)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestDispatchAndShutdown(t *testing.T) {
	require := require.New(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	cfg := NewDefaultConfig()
	cfg.ShutdownTimeout = time.Second
	s := New(logging.NoLog{}, listener, cfg)
	require.Equal(listener.Addr(), s.Addr())
	require.NoError(s.AddRoute(okHandler("pong"), "/api", "/ping"))

	done := make(chan error, 1)
	go func() {
		done <- s.Dispatch()
	}()

	resp, err := http.Get("http://" + listener.Addr().String() + "/api/ping")
	require.NoError(err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(err)
	require.NoError(resp.Body.Close())
	require.Equal("pong", string(body))

	require.NoError(s.Shutdown())
	require.NoError(<-done)
}
