package logger

import (
	"log/slog"
	"strconv"
)

// SessionPrefixLen is how much of a session id may appear in logs and on screen.
const SessionPrefixLen = 16

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// If id is empty, it returns an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Status records a lifecycle status under the key "status".
func Status(status string) slog.Attr {
	return slog.String("status", status)
}

// SessionPrefix records at most SessionPrefixLen characters of a session id
// under the key "session". If id is empty, it returns an empty Attr.
func SessionPrefix(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	if len(id) > SessionPrefixLen {
		id = id[:SessionPrefixLen]
	}
	return slog.String("session", id)
}

// TimeLeft records remaining session seconds under the key "time_left".
func TimeLeft(seconds int) slog.Attr {
	return slog.Int("time_left", seconds)
}

// Epoch records the controller epoch under the key "epoch".
func Epoch(epoch uint64) slog.Attr {
	return slog.Uint64("epoch", epoch)
}

// Fingerprint records a public key fingerprint under the key "key".
func Fingerprint(fp string) slog.Attr {
	if fp == "" {
		return slog.Attr{}
	}
	return slog.String("key", fp)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
