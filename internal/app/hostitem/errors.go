package hostitem

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInvalidPayout  = errors.New("invalid_payout")
	ErrNotFound       = errors.New("not_found")
)
