// Package tui provides the primary terminal user interface implementation.
package tui

type state int

const (
	catalogState state = iota
	searchState
	detailState
	playingState
	errorState
	askState
)
