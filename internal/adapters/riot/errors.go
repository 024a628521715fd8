package riot

import "errors"

// Sentinel kinds for lookup errors.
var (
	// ErrAccountNotFound means a stored account id no longer resolves.
	ErrAccountNotFound = errors.New("account not found")
)

// errNotFoundStatus marks a 404 response internally so Resolve can attach
// the offending id before the error escapes the package.
var errNotFoundStatus = errors.New("riot: not found")

func errorsIsNotFound(err error) bool {
	return errors.Is(err, errNotFoundStatus)
}
