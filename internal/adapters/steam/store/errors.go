package store

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrUpstream = errors.New("storefront request failed")
)
