package session

import (
	"fmt"
)

// Identity is the authenticated user context returned by the registration call.
type Identity struct {
	// Opaque identifier assigned by the remote service.
	ID string
	// Display name.
	Username string
}

// Label returns the user-visible login label for this identity.
func (i *Identity) Label() string {
	return fmt.Sprintf("Logged in as: %s (ID: %s)", i.Username, i.ID)
}

// Observer is notified whenever the current identity changes.
type Observer interface {
	IdentityChanged(identity *Identity)
}

// Store holds the current identity for the lifetime of the process.
// It must only be mutated from the control flow that owns the UI.
type Store struct {
	identity *Identity
	observer Observer
}

// NewStore instantiates and returns a new store with no identity.
func NewStore(observer Observer) *Store {
	return &Store{observer: observer}
}

// Set replaces the current identity unconditionally.
func (s *Store) Set(identity *Identity) {
	s.identity = identity
	if s.observer != nil {
		s.observer.IdentityChanged(identity)
	}
}

// Get returns the current identity, or nil if nobody is logged in.
func (s *Store) Get() *Identity {
	return s.identity
}
