package web

import "errors"

var (
	ErrStart    = errors.New("web: server failed to start")
	ErrShutdown = errors.New("web: server shutdown failed")
)
