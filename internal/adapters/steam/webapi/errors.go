package webapi

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNotFound = errors.New("identity not found")
	ErrUpstream = errors.New("steam web api request failed")
)
