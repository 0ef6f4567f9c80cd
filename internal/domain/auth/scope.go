// Package auth reifies the per-request authorization decision. A Scope is
// computed once from the authenticated caller and threaded explicitly
// through every read and mutation instead of re-deriving role checks
// downstream.
package auth

import (
	"github.com/google/uuid"

	"parkspot/internal/domain/user"
)

// Scope is the read filter and mutation policy for one caller.
// An admin scope is unrestricted; an owner scope pins every read and
// write to the caller's own rows.
type Scope struct {
	callerID uuid.UUID
	admin    bool
}

func AdminScope(callerID uuid.UUID) Scope {
	return Scope{callerID: callerID, admin: true}
}

func OwnerScope(callerID uuid.UUID) Scope {
	return Scope{callerID: callerID}
}

// ScopeFor derives the scope from the caller's role.
func ScopeFor(u *user.User) Scope {
	if u.IsAdmin() {
		return AdminScope(u.ID())
	}
	return OwnerScope(u.ID())
}

func (s Scope) CallerID() uuid.UUID {
	return s.callerID
}

func (s Scope) IsAdmin() bool {
	return s.admin
}

// OwnerFilter returns the userId predicate for reads: nil means
// unrestricted, otherwise reads must match the returned owner.
func (s Scope) OwnerFilter() *uuid.UUID {
	if s.admin {
		return nil
	}
	id := s.callerID
	return &id
}

// CanSetUserID reports whether the caller may create or update a booking
// owned by target. Standard callers may only act on their own rows.
func (s Scope) CanSetUserID(target uuid.UUID) bool {
	return s.admin || target == s.callerID
}

// DefaultOwner is the userId applied when a create request omits it.
func (s Scope) DefaultOwner() uuid.UUID {
	return s.callerID
}
