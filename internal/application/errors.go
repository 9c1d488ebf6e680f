package application

import "errors"

// Business-rule errors. Handlers map these onto HTTP statuses; anything not in
// this list is treated as an internal failure, logged with full detail and
// returned as an opaque 500.
var (
	ErrDuplicateAccount     = errors.New("username or email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailNotVerified     = errors.New("email not verified")
	ErrAlreadyVerified      = errors.New("email already verified")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")
	ErrDeliveryFailed       = errors.New("could not deliver email")

	// ErrNotFoundOrForbidden covers both "does not exist" and "exists but is
	// not yours" so responses never leak existence of other users' resources.
	ErrNotFoundOrForbidden = errors.New("not found")

	ErrDuplicateEntry  = errors.New("movie already in collection")
	ErrEntryNotFound   = errors.New("movie not in collection")
	ErrWatchlistFull   = errors.New("watchlist is full")
	ErrAlreadyReported = errors.New("review already reported")
)
