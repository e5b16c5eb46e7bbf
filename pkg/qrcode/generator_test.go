package qrcode_test

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biopass/biopass/pkg/qrcode"
)

// A realistic token payload: base64url claims, dot, base64url signature.
const sampleToken = "eyJzZXNzaW9uSWQiOiJhYmNkZWZnaGlqa2xtbm9wcXJzdHV2d3h5ejAxMjM0NSIsImlhdCI6MTcwMDAwMDAwMCwiZXhwIjoxNzAwMDAwMTIwLCJub25jZSI6Ik1UWXRZbmwwWlMxdWIyNWpaUSJ9.c2lnbmF0dXJlLXJhdy1yLXMtNjQtYnl0ZXMtc2lnbmF0dXJlLXJhdy1yLXMtNjQtYnl0ZXMtc2lnbmF0dXJl"

func TestPNG(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty content", func(t *testing.T) {
		t.Parallel()
		for _, content := range []string{"", "   \t\n"} {
			img, err := qrcode.PNG(content)
			assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
			assert.Nil(t, img)
		}
	})

	t.Run("renders token at requested size", func(t *testing.T) {
		t.Parallel()
		data, err := qrcode.PNG(sampleToken, qrcode.WithSize(300))
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 300, img.Bounds().Dx())
		assert.Equal(t, 300, img.Bounds().Dy())
	})

	t.Run("falls back to default size", func(t *testing.T) {
		t.Parallel()
		data, err := qrcode.PNG(sampleToken, qrcode.WithSize(0))
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, qrcode.DefaultSize, img.Bounds().Dx())
	})

	t.Run("uses custom colours", func(t *testing.T) {
		t.Parallel()
		data, err := qrcode.PNG(sampleToken,
			qrcode.WithForeground(qrcode.ExpiringColor),
			qrcode.WithBackground(color.White),
		)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)

		// the quiet zone in the corner is background
		r, g, b, _ := img.At(0, 0).RGBA()
		assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
	})

	t.Run("payload too large", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.PNG(strings.Repeat("x", 5000))
		assert.ErrorIs(t, err, qrcode.ErrEncode)
	})
}

func TestDataURI(t *testing.T) {
	t.Parallel()

	uri, err := qrcode.DataURI(sampleToken)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(raw))
	assert.NoError(t, err)

	_, err = qrcode.DataURI("")
	assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
}

func TestTerminal(t *testing.T) {
	t.Parallel()

	out, err := qrcode.Terminal(sampleToken, false)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Greater(t, len(lines), 10)
	assert.True(t, strings.ContainsAny(out, "█▀▄"))

	inverse, err := qrcode.Terminal(sampleToken, true)
	require.NoError(t, err)
	assert.NotEqual(t, out, inverse)

	_, err = qrcode.Terminal(" ", false)
	assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
}
