// Package ui is the terminal host for a card stack, built on Bubble Tea.
//
// The SwipeView renders the controller's frame onto a cell canvas and
// translates mouse drags and flick keys into gestures. Settle callbacks
// are delivered as messages by a ProgramScheduler so the controller is only
// used from the program goroutine.
package ui
