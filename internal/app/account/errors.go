package account

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrWeakPassword       = errors.New("weak_password")
	ErrUserExists         = errors.New("user_exists")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrInvalidRole        = errors.New("invalid_role")
	ErrInvalidCode        = errors.New("invalid_code")
	ErrTooManyRequests    = errors.New("too_many_requests")
	ErrUnsupportedImage   = errors.New("unsupported_image")
	ErrImageTooLarge      = errors.New("image_too_large")
)
