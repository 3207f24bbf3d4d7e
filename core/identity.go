package core

import "context"

// Ports consumed by the HTTP adapter and other UI-layer callers.

// RegisterInput is the payload for account creation. Role is restricted to
// the self-registerable roles; admin accounts come from the bootstrap fixture.
type RegisterInput struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	Password  string  `json:"password"`
	Role      Role    `json:"role"`
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate carries the mutable profile fields. Nil means "leave as is";
// ID, email, role and createdAt are immutable through this path.
type ProfileUpdate struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// IdentityProvider is the four-operation contract (plus profile update and
// the synchronous conveniences) the UI layer consumes. Implementations
// resolve every call to a definitive Result and never surface a raw fault.
type IdentityProvider interface {
	Register(ctx context.Context, input RegisterInput) *Result
	Login(ctx context.Context, creds Credentials) *Result
	Logout(ctx context.Context) *Result
	CurrentUser(ctx context.Context) *Result
	UpdateProfile(ctx context.Context, update ProfileUpdate) *Result

	// Synchronous conveniences over the session pointer; neither simulates
	// latency nor re-resolves against the live collection.
	IsAuthenticated() bool
	UserRole() (Role, bool)
}
