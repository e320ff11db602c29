// Package api declares HTTP contracts and route registration helpers.
package api

import "fmt"

// NewKind tags a sentinel error with the operation that raised it.
// Callers can still match the sentinel with errors.Is.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind tags a sentinel with the operation and keeps the underlying
// cause in the chain.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// Wrap tags an arbitrary error with the operation it surfaced from.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
