package core

import "time"

// Role gates which dashboard and navigation set a user is routed to.
// It is set once at account creation and is never changed by profile updates.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleBusOperator Role = "BUS_OPERATOR"
	RolePassenger   Role = "PASSENGER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleBusOperator, RolePassenger:
		return true
	}
	return false
}

// SelfRegisterable reports whether a user may pick r during registration.
// Admin accounts only exist through the bootstrap fixture.
func (r Role) SelfRegisterable() bool {
	return r == RolePassenger || r == RoleBusOperator
}

// User is an identity record in the user collection.
//
// The stored credential lives in a separate email-keyed map and is never
// part of this struct, so a User can be returned to callers as-is.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     *string   `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy so callers can't mutate stored records through
// the pointer handed back in a Result.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	out := *u
	if u.Phone != nil {
		phone := *u.Phone
		out.Phone = &phone
	}
	return &out
}
