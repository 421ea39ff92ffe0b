// Package domain defines domain-level errors for the instruments feature.
package domain

import "errors"

var (
	// ErrInstrumentNotFound indicates that no instrument matched the given id or symbol.
	// Other features (watchlist, prices) also return it when they depend on an instrument that does not exist.
	ErrInstrumentNotFound = errors.New("instrument not found")
)
