package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biopass/biopass/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestSessionPrefix(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"long id is cut", "abcdefghijklmnopqrstuvwxyz012345", "abcdefghijklmnop"},
		{"short id kept", "abc", "abc"},
		{"exact length kept", "abcdefghijklmnop", "abcdefghijklmnop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := logger.SessionPrefix(tt.id)
			assert.Equal(t, "session", attr.Key)
			assert.Equal(t, tt.want, attr.Value.String())
		})
	}

	assert.True(t, logger.SessionPrefix("").Equal(slog.Attr{}))
}

func TestDomainAttrs(t *testing.T) {
	assert.Equal(t, int64(42), logger.TimeLeft(42).Value.Int64())
	assert.Equal(t, uint64(7), logger.Epoch(7).Value.Uint64())
	assert.Equal(t, "expiring", logger.Status("expiring").Value.String())
	assert.Equal(t, "lifecycle", logger.Component("lifecycle").Value.String())
	assert.Equal(t, "request_id", logger.RequestID("abc").Key)
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.True(t, logger.Fingerprint("").Equal(slog.Attr{}))
}
