// Package qrcode renders a pass token as a QR code.
//
// Codes are always built at error-correction level High. PNG and DataURI
// serve the web page; Terminal prints the same code with half-block
// characters for the CLI. Colours and size are set with options:
//
//	img, err := qrcode.PNG(tok, qrcode.WithForeground(qrcode.ExpiringColor), qrcode.WithBackground(color.Transparent))
//
// Empty content returns ErrEmptyContent; encoder failures (for instance a
// payload too long for any QR version) are wrapped in ErrEncode.
package qrcode
