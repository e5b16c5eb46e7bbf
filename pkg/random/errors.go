package random

import "errors"

var (
	ErrRandomnessUnavailable = errors.New("random: secure randomness unavailable")
	ErrInvalidLength         = errors.New("random: length must be positive")
)
