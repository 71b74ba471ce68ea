package cyclorama

import (
	"log/slog"

	Ct "github.com/maroda/cyclorama/types"
)

// Navigator is the part of the slider the lock toggles
type Navigator interface {
	SetAllowNavigation(allow bool)
}

// TransitionLock gates prev/next while a slide transition is in flight.
// It is two states, UNLOCKED (initial) and LOCKED.
// Requests made while LOCKED are dropped, never queued.
type TransitionLock struct {
	locked bool
	nav    Navigator
}

func NewTransitionLock(nav Navigator) *TransitionLock {
	return &TransitionLock{nav: nav}
}

// Start is called on the slider's transition-start notification
func (tl *TransitionLock) Start() {
	tl.locked = true
	if tl.nav != nil {
		tl.nav.SetAllowNavigation(false)
	}
}

// End is called on transition-end
func (tl *TransitionLock) End() {
	tl.locked = false
	if tl.nav != nil {
		tl.nav.SetAllowNavigation(true)
	}
}

// Release clears a held lock on teardown so navigation never stays stuck
func (tl *TransitionLock) Release() {
	if tl.locked {
		slog.Debug("Releasing transition lock on teardown")
	}
	tl.End()
}

func (tl *TransitionLock) Locked() bool { return tl.locked }

func (tl *TransitionLock) Nav() Ct.NavState {
	return Ct.NavState{PrevEnabled: !tl.locked, NextEnabled: !tl.locked}
}
