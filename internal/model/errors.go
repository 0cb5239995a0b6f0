package model

import "errors"

// Failure taxonomy. Every error is recovered at the component boundary and
// turned into a degraded per-indicator result; nothing here is fatal.
var (
	// ErrDataUnavailable means a source file could not be loaded or decoded.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrInsufficientData means a series is too short for forecasting.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrModelUnavailable means redistribution was requested before the
	// historical computation for that indicator succeeded.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrUnsupportedIndicator means an unrecognized indicator tag.
	ErrUnsupportedIndicator = errors.New("unsupported indicator")
)
