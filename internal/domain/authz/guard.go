package authz

import (
	"github.com/faithconnect/backend/internal/domain/identity"
)

// Scope is the access level a route section demands
type Scope string

const (
	ScopeAny        Scope = "any"        // Any authenticated account (member portal)
	ScopeAdmin      Scope = "admin"      // Branch administration section
	ScopeSuperAdmin Scope = "superadmin" // Platform administration section
)

// Outcome is the result category of an authorization check
type Outcome string

const (
	OutcomeAllow   Outcome = "allow"
	OutcomeDeny    Outcome = "deny"
	OutcomeLoading Outcome = "loading" // Session resolution still pending
)

// Redirect targets for denied requests
const (
	RedirectAuth   = "/auth"
	RedirectAdmin  = "/admin"
	RedirectPortal = "/portal"
)

// Decision is the result of an authorization check. A denial always names
// where the client should land instead; it is never surfaced as an error.
type Decision struct {
	Outcome        Outcome
	RedirectTarget string
}

// Allowed returns true if the request may proceed
func (d Decision) Allowed() bool {
	return d.Outcome == OutcomeAllow
}

// Allow is the decision that lets a request through
func Allow() Decision {
	return Decision{Outcome: OutcomeAllow}
}

// Deny is the decision that redirects the client elsewhere
func Deny(redirectTarget string) Decision {
	return Decision{Outcome: OutcomeDeny, RedirectTarget: redirectTarget}
}

// Loading is the transient decision while the session is still resolving
func Loading() Decision {
	return Decision{Outcome: OutcomeLoading}
}

// Authorize decides whether a session may enter a scope. Pure: same inputs,
// same decision.
//
// No usable session sends the client to sign in. A session that fails the
// super-admin check lands on the branch-admin home, and one that fails the
// admin check lands on the member portal, so nobody dead-ends on a blank
// denial page.
func Authorize(session *identity.Session, profile *identity.Profile, scope Scope) Decision {
	if session == nil || session.IsExpired() {
		return Deny(RedirectAuth)
	}

	role := session.Role
	if profile != nil {
		role = profile.Role
	}

	switch scope {
	case ScopeSuperAdmin:
		if !role.IsSuperAdmin() {
			return Deny(RedirectAdmin)
		}
	case ScopeAdmin:
		if !role.IsAdmin() {
			return Deny(RedirectPortal)
		}
	}

	return Allow()
}
