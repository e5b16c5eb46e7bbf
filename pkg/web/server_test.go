package web_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biopass/biopass/pkg/web"
)

func TestServeListener(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctrl := newController(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- web.ServeListener(ctx, ln, web.Config{ShutdownTimeout: time.Second}, web.NewRouter(ctrl), nil)
	}()

	url := "http://" + ln.Addr().String()
	require.Eventually(t, func() bool {
		resp, err := http.Get(url + "/healthz")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	// an open event stream must not hold up shutdown
	resp, err := http.Get(url + "/pass/events")
	require.NoError(t, err)
	defer resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServe_BadAddr(t *testing.T) {
	t.Parallel()

	err := web.Serve(context.Background(), web.Config{Addr: "not-an-addr"}, nil, nil)
	assert.ErrorIs(t, err, web.ErrStart)
}
