package qrcode

import (
	"encoding/base64"
	"errors"
	"image/color"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the PNG edge length in pixels when none is given.
const DefaultSize = 256

// Palette colours for the two live statuses.
var (
	ValidColor    = color.RGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}
	ExpiringColor = color.RGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff}
)

// Option adjusts how a code is rendered.
type Option func(*options)

type options struct {
	size       int
	foreground color.Color
	background color.Color
	noBorder   bool
}

// WithSize sets the PNG edge length. Non-positive sizes fall back to DefaultSize.
func WithSize(px int) Option {
	return func(o *options) { o.size = px }
}

func WithForeground(c color.Color) Option {
	return func(o *options) { o.foreground = c }
}

// WithBackground sets the background; color.Transparent is allowed.
func WithBackground(c color.Color) Option {
	return func(o *options) { o.background = c }
}

func WithoutBorder() Option {
	return func(o *options) { o.noBorder = true }
}

// encode builds the code at error-correction level High, so a partly
// obscured token still scans.
func encode(content string, o *options) (*skipqrcode.QRCode, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	q, err := skipqrcode.New(content, skipqrcode.High)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	if o.foreground != nil {
		q.ForegroundColor = o.foreground
	}
	if o.background != nil {
		q.BackgroundColor = o.background
	}
	q.DisableBorder = o.noBorder
	return q, nil
}

func apply(opts []Option) *options {
	o := &options{size: DefaultSize}
	for _, opt := range opts {
		opt(o)
	}
	if o.size <= 0 {
		o.size = DefaultSize
	}
	return o
}

// PNG renders content as a PNG image.
func PNG(content string, opts ...Option) ([]byte, error) {
	o := apply(opts)
	q, err := encode(content, o)
	if err != nil {
		return nil, err
	}
	img, err := q.PNG(o.size)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	return img, nil
}

// DataURI renders content as a base64 PNG data URI for an <img> src.
func DataURI(content string, opts ...Option) (string, error) {
	img, err := PNG(content, opts...)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(img), nil
}

// Terminal renders content with Unicode half blocks, two modules per
// character row. inverse swaps dark and light for light-on-dark terminals.
func Terminal(content string, inverse bool) (string, error) {
	q, err := encode(content, apply(nil))
	if err != nil {
		return "", err
	}
	return q.ToSmallString(inverse), nil
}
