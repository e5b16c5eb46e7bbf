package store

import "errors"

var (
	ErrNotFound          = errors.New("store: key not found")
	ErrInvalidKey        = errors.New("store: invalid key")
	ErrInvalidConfig     = errors.New("store: invalid configuration")
	ErrUnknownDriver     = errors.New("store: unknown driver")
	ErrNotReady          = errors.New("store: backend did not become ready")
	ErrHealthcheckFailed = errors.New("store: healthcheck failed")
	ErrMigrationFailed   = errors.New("store: schema migration failed")
	ErrAccessDenied      = errors.New("store: access denied")
	ErrBucketNotFound    = errors.New("store: bucket not found")
	ErrOperationTimeout  = errors.New("store: operation timed out")
	ErrOperationCanceled = errors.New("store: operation canceled")
)
