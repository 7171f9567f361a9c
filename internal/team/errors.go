package team

import "errors"

// ErrInvalidInput is the root of the input-validation error taxonomy.
// Every rejection at snapshot construction, scoring, or report time wraps it,
// so callers can match the whole family with errors.Is.
var ErrInvalidInput = errors.New("team: invalid input")
