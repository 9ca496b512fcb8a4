package pricing

import "errors"

var (
	ErrInvalidInput = errors.New("invalid_input")
	ErrConvergence  = errors.New("convergence_failure")
)
