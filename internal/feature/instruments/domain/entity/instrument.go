// Package entity defines the domain models for the instruments feature.
package entity

// Instrument represents a listed stock that can be searched, watched and charted.
type Instrument struct {
	ID     uint    // Store-assigned identifier
	Symbol string  // Ticker symbol (e.g., "AAPL", "2330.TW"), unique
	Name   string  // Display name
	Price  float64 // Current price, used as the starting point of mock series
}
