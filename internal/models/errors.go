package models

import "errors"

// Error kinds surfaced by services. Handlers map these to HTTP status codes;
// everything else is treated as an internal error.
var (
	// ErrPositionNotFound indicates the position id does not exist.
	ErrPositionNotFound = errors.New("position not found")

	// ErrPositionForbidden indicates the position exists but belongs to
	// another user.
	ErrPositionForbidden = errors.New("position belongs to another user")

	// ErrAssetNotFound indicates the symbol is absent from the asset feed
	// even after a successful refresh.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrUserNotFound indicates no account exists for the given id or name.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists indicates a registration conflict on username or email.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials indicates a failed login. Deliberately generic:
	// it does not reveal whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
