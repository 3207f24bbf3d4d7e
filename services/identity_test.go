package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Syed-Zahaab-Hussain/e-ticketing/core"
	"github.com/Syed-Zahaab-Hussain/e-ticketing/pkg/crypto"
)

// newTestIdentity builds an Identity over the given fake with zero latency.
func newTestIdentity(storage core.KVStore) *Identity {
	return NewIdentity(storage, crypto.NewPlaintext(), LatencyConfig{}, zerolog.Nop())
}

func strptr(s string) *string { return &s }

// countUsers reads the persisted user collection directly.
func countUsers(t *testing.T, storage core.KVStore) int {
	t.Helper()
	raw, err := storage.Load(core.UsersKey)
	if errors.Is(err, core.ErrKeyNotFound) {
		return 0
	}
	if err != nil {
		t.Fatalf("load users: %v", err)
	}
	var users []core.User
	if err := json.Unmarshal(raw, &users); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	return len(users)
}

// mutateUsers edits the persisted collection out-of-band, simulating
// another writer (e.g. an admin deactivating an account).
func mutateUsers(t *testing.T, storage core.KVStore, fn func([]core.User) []core.User) {
	t.Helper()
	raw, err := storage.Load(core.UsersKey)
	if err != nil {
		t.Fatalf("load users: %v", err)
	}
	var users []core.User
	if err := json.Unmarshal(raw, &users); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	users = fn(users)
	raw, err = json.Marshal(users)
	if err != nil {
		t.Fatalf("encode users: %v", err)
	}
	if err := storage.Store(core.UsersKey, raw); err != nil {
		t.Fatalf("store users: %v", err)
	}
}

func registerAlice(t *testing.T, identity *Identity) *core.User {
	t.Helper()
	result := identity.Register(context.Background(), core.RegisterInput{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Password:  "password1",
		Role:      core.RolePassenger,
	})
	if !result.Success {
		t.Fatalf("Register() = %+v, want success", result)
	}
	return result.User
}

// Requirement: registration allocates a record with fresh timestamps, grows
// the collection by one, and rejects duplicates and non-registerable roles
// without mutating state.
func TestIdentity_Register(t *testing.T) {
	tests := []struct {
		name      string
		input     core.RegisterInput
		setup     func(*Identity)
		wantErr   string
		wantUsers int
	}{
		{
			name: "creates passenger account",
			input: core.RegisterInput{
				FirstName: "Alice", LastName: "Smith",
				Email: "alice@example.com", Password: "password1",
				Role: core.RolePassenger,
			},
			wantUsers: 1,
		},
		{
			name: "creates operator account",
			input: core.RegisterInput{
				FirstName: "Olga", LastName: "Operator",
				Email: "olga@example.com", Password: "password1",
				Role: core.RoleBusOperator,
			},
			wantUsers: 1,
		},
		{
			name: "rejects duplicate email",
			input: core.RegisterInput{
				FirstName: "Alice", LastName: "Clone",
				Email: "alice@example.com", Password: "other",
				Role: core.RolePassenger,
			},
			setup:     func(id *Identity) { registerAlice(t, id) },
			wantErr:   core.CodeEmailExists,
			wantUsers: 1,
		},
		{
			name: "email comparison is case-sensitive",
			input: core.RegisterInput{
				FirstName: "Alice", LastName: "Upper",
				Email: "ALICE@example.com", Password: "other",
				Role: core.RolePassenger,
			},
			setup:     func(id *Identity) { registerAlice(t, id) },
			wantUsers: 2,
		},
		{
			name: "rejects admin self-registration",
			input: core.RegisterInput{
				FirstName: "Eve", LastName: "Admin",
				Email: "eve@example.com", Password: "password1",
				Role: core.RoleAdmin,
			},
			wantErr:   core.CodeRegistrationFailed,
			wantUsers: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			storage := NewFakeKVStore()
			identity := newTestIdentity(storage)
			if test.setup != nil {
				test.setup(identity)
			}

			result := identity.Register(context.Background(), test.input)

			if test.wantErr != "" {
				if result.Success {
					t.Fatalf("Register() = %+v, want failure", result)
				}
				if result.Error != test.wantErr {
					t.Errorf("Register() error = %q, want %q", result.Error, test.wantErr)
				}
			} else {
				if !result.Success {
					t.Fatalf("Register() = %+v, want success", result)
				}
				if result.User == nil {
					t.Fatal("Register() returned no user")
				}
				if result.User.ID == "" {
					t.Error("Register() user has empty ID")
				}
				if !result.User.IsActive {
					t.Error("Register() user should be active")
				}
				if result.User.CreatedAt.IsZero() || result.User.UpdatedAt.IsZero() {
					t.Error("Register() user has zero timestamps")
				}
			}
			if got := countUsers(t, storage); got != test.wantUsers {
				t.Errorf("user collection size = %d, want %d", got, test.wantUsers)
			}
		})
	}
}

// Requirement: registration signs the new user in (session pointer set).
func TestIdentity_Register_SetsSession(t *testing.T) {
	identity := newTestIdentity(NewFakeKVStore())
	user := registerAlice(t, identity)

	if !identity.IsAuthenticated() {
		t.Error("IsAuthenticated() = false after registration")
	}

	result := identity.CurrentUser(context.Background())
	if !result.Success {
		t.Fatalf("CurrentUser() = %+v, want success", result)
	}
	if result.User.ID != user.ID || result.User.Email != user.Email {
		t.Errorf("CurrentUser() = %s/%s, want %s/%s",
			result.User.ID, result.User.Email, user.ID, user.Email)
	}
}

// Requirement: login validates against the stored credential; unknown
// email, inactive account and wrong secret all fail with the same code.
func TestIdentity_Login(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		setup    func(*testing.T, *Identity, core.KVStore)
		wantErr  string
	}{
		{
			name:     "registered user with correct password",
			email:    "alice@example.com",
			password: "password1",
			setup: func(t *testing.T, id *Identity, _ core.KVStore) {
				registerAlice(t, id)
			},
		},
		{
			name:     "wrong password",
			email:    "alice@example.com",
			password: "nope",
			setup: func(t *testing.T, id *Identity, _ core.KVStore) {
				registerAlice(t, id)
			},
			wantErr: core.CodeInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "ghost@example.com",
			password: "whatever",
			setup: func(t *testing.T, id *Identity, _ core.KVStore) {
				registerAlice(t, id)
			},
			wantErr: core.CodeInvalidCredentials,
		},
		{
			name:     "inactive account",
			email:    "alice@example.com",
			password: "password1",
			setup: func(t *testing.T, id *Identity, storage core.KVStore) {
				registerAlice(t, id)
				mutateUsers(t, storage, func(users []core.User) []core.User {
					for i := range users {
						users[i].IsActive = false
					}
					return users
				})
			},
			wantErr: core.CodeInvalidCredentials,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			storage := NewFakeKVStore()
			identity := newTestIdentity(storage)
			if test.setup != nil {
				test.setup(t, identity, storage)
			}

			result := identity.Login(context.Background(), core.Credentials{
				Email:    test.email,
				Password: test.password,
			})

			if test.wantErr != "" {
				if result.Success {
					t.Fatalf("Login() = %+v, want failure", result)
				}
				if result.Error != test.wantErr {
					t.Errorf("Login() error = %q, want %q", result.Error, test.wantErr)
				}
			} else if !result.Success {
				t.Fatalf("Login() = %+v, want success", result)
			}
		})
	}
}

// Requirement: the first login against an empty store materializes exactly
// one demo account per role, and they can sign in.
func TestIdentity_Login_Bootstrap(t *testing.T) {
	storage := NewFakeKVStore()
	identity := newTestIdentity(storage)

	result := identity.Login(context.Background(), core.Credentials{
		Email:    "admin@e-ticket.com",
		Password: "admin123",
	})
	if !result.Success {
		t.Fatalf("Login() = %+v, want bootstrap demo admin to sign in", result)
	}
	if result.User.Role != core.RoleAdmin {
		t.Errorf("Login() role = %s, want ADMIN", result.User.Role)
	}
	if got := countUsers(t, storage); got != 3 {
		t.Errorf("user collection size = %d, want 3 demo accounts", got)
	}

	// A second login must not re-seed.
	_ = identity.Login(context.Background(), core.Credentials{
		Email:    "operator@e-ticket.com",
		Password: "operator123",
	})
	if got := countUsers(t, storage); got != 3 {
		t.Errorf("user collection size after second login = %d, want 3", got)
	}
}

// Requirement: bootstrap does not run once anyone has registered.
func TestIdentity_Bootstrap_SkippedWhenPopulated(t *testing.T) {
	storage := NewFakeKVStore()
	identity := newTestIdentity(storage)
	registerAlice(t, identity)

	result := identity.Login(context.Background(), core.Credentials{
		Email:    "admin@e-ticket.com",
		Password: "admin123",
	})
	if result.Success {
		t.Fatal("Login() as demo admin should fail, collection was already populated")
	}
	if got := countUsers(t, storage); got != 1 {
		t.Errorf("user collection size = %d, want 1", got)
	}
}

// Requirement: logout always succeeds and clears the session pointer.
func TestIdentity_Logout(t *testing.T) {
	identity := newTestIdentity(NewFakeKVStore())
	registerAlice(t, identity)

	result := identity.Logout(context.Background())
	if !result.Success {
		t.Fatalf("Logout() = %+v, want success", result)
	}

	current := identity.CurrentUser(context.Background())
	if current.Success || current.Error != core.CodeNotAuthenticated {
		t.Errorf("CurrentUser() after logout = %+v, want NOT_AUTHENTICATED", current)
	}

	// No precondition: logging out twice still succeeds.
	if again := identity.Logout(context.Background()); !again.Success {
		t.Errorf("second Logout() = %+v, want success", again)
	}
}

// Requirement: CurrentUser re-resolves the pointer against the live
// collection; a deactivated record invalidates the session and clears the
// pointer so the next call reports NOT_AUTHENTICATED.
func TestIdentity_CurrentUser_StalePointer(t *testing.T) {
	storage := NewFakeKVStore()
	identity := newTestIdentity(storage)
	registerAlice(t, identity)

	mutateUsers(t, storage, func(users []core.User) []core.User {
		for i := range users {
			users[i].IsActive = false
		}
		return users
	})

	result := identity.CurrentUser(context.Background())
	if result.Success || result.Error != core.CodeInvalidSession {
		t.Fatalf("CurrentUser() = %+v, want INVALID_SESSION", result)
	}

	second := identity.CurrentUser(context.Background())
	if second.Success || second.Error != core.CodeNotAuthenticated {
		t.Errorf("CurrentUser() after invalidation = %+v, want NOT_AUTHENTICATED", second)
	}
}

// Requirement: CurrentUser returns the live record, not the denormalized
// snapshot, so out-of-band edits show up without a fresh login.
func TestIdentity_CurrentUser_ReturnsLiveRecord(t *testing.T) {
	storage := NewFakeKVStore()
	identity := newTestIdentity(storage)
	registerAlice(t, identity)

	mutateUsers(t, storage, func(users []core.User) []core.User {
		for i := range users {
			users[i].FirstName = "Renamed"
		}
		return users
	})

	result := identity.CurrentUser(context.Background())
	if !result.Success {
		t.Fatalf("CurrentUser() = %+v, want success", result)
	}
	if result.User.FirstName != "Renamed" {
		t.Errorf("CurrentUser() FirstName = %q, want the live value %q", result.User.FirstName, "Renamed")
	}
}

// Requirement: profile updates merge the given fields, refresh updatedAt,
// and leave id, email, role and createdAt untouched.
func TestIdentity_UpdateProfile(t *testing.T) {
	identity := newTestIdentity(NewFakeKVStore())
	registered := registerAlice(t, identity)

	time.Sleep(2 * time.Millisecond) // let the clock advance past createdAt

	result := identity.UpdateProfile(context.Background(), core.ProfileUpdate{
		FirstName: strptr("X"),
		Phone:     strptr("+19998887766"),
	})
	if !result.Success {
		t.Fatalf("UpdateProfile() = %+v, want success", result)
	}

	current := identity.CurrentUser(context.Background())
	if !current.Success {
		t.Fatalf("CurrentUser() = %+v, want success", current)
	}
	user := current.User

	if user.FirstName != "X" {
		t.Errorf("FirstName = %q, want %q", user.FirstName, "X")
	}
	if user.LastName != "Smith" {
		t.Errorf("LastName = %q, want untouched %q", user.LastName, "Smith")
	}
	if user.Phone == nil || *user.Phone != "+19998887766" {
		t.Errorf("Phone = %v, want +19998887766", user.Phone)
	}
	if user.ID != registered.ID {
		t.Errorf("ID = %q, want immutable %q", user.ID, registered.ID)
	}
	if user.Email != registered.Email {
		t.Errorf("Email = %q, want immutable %q", user.Email, registered.Email)
	}
	if user.Role != registered.Role {
		t.Errorf("Role = %s, want immutable %s", user.Role, registered.Role)
	}
	if !user.CreatedAt.Equal(registered.CreatedAt) {
		t.Errorf("CreatedAt = %v, want immutable %v", user.CreatedAt, registered.CreatedAt)
	}
	if !user.UpdatedAt.After(registered.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want later than %v", user.UpdatedAt, registered.UpdatedAt)
	}
}

// Requirement: update requires a session, and a session whose record was
// deleted out-of-band reports USER_NOT_FOUND.
func TestIdentity_UpdateProfile_Failures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*testing.T, *Identity, core.KVStore)
		wantErr string
	}{
		{
			name:    "no session",
			setup:   func(*testing.T, *Identity, core.KVStore) {},
			wantErr: core.CodeNotAuthenticated,
		},
		{
			name: "record deleted behind the session",
			setup: func(t *testing.T, id *Identity, storage core.KVStore) {
				registerAlice(t, id)
				mutateUsers(t, storage, func([]core.User) []core.User {
					return []core.User{}
				})
			},
			wantErr: core.CodeUserNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			storage := NewFakeKVStore()
			identity := newTestIdentity(storage)
			test.setup(t, identity, storage)

			result := identity.UpdateProfile(context.Background(), core.ProfileUpdate{
				FirstName: strptr("X"),
			})
			if result.Success || result.Error != test.wantErr {
				t.Errorf("UpdateProfile() = %+v, want %s", result, test.wantErr)
			}
		})
	}
}

// Requirement: storage faults are downgraded to the operation's generic
// failure code; no operation surfaces a raw error.
func TestIdentity_StorageFaults(t *testing.T) {
	faultErr := errors.New("disk on fire")

	tests := []struct {
		name     string
		operate  func(*Identity) *core.Result
		wantCode string
	}{
		{
			name: "register",
			operate: func(id *Identity) *core.Result {
				return id.Register(context.Background(), core.RegisterInput{
					FirstName: "A", LastName: "B",
					Email: "a@b.com", Password: "p", Role: core.RolePassenger,
				})
			},
			wantCode: core.CodeRegistrationFailed,
		},
		{
			name: "login",
			operate: func(id *Identity) *core.Result {
				return id.Login(context.Background(), core.Credentials{Email: "a@b.com", Password: "p"})
			},
			wantCode: core.CodeLoginFailed,
		},
		{
			name: "current user",
			operate: func(id *Identity) *core.Result {
				return id.CurrentUser(context.Background())
			},
			wantCode: core.CodeGetUserFailed,
		},
		{
			name: "update profile",
			operate: func(id *Identity) *core.Result {
				return id.UpdateProfile(context.Background(), core.ProfileUpdate{FirstName: strptr("X")})
			},
			wantCode: core.CodeUpdateFailed,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			storage := NewFakeKVStore()
			storage.loadErr = faultErr
			identity := newTestIdentity(storage)

			result := test.operate(identity)
			if result.Success {
				t.Fatalf("operation = %+v, want failure", result)
			}
			if result.Error != test.wantCode {
				t.Errorf("error code = %q, want %q", result.Error, test.wantCode)
			}
			if result.Message == "" {
				t.Error("failure result has no user-displayable message")
			}
		})
	}
}

// Requirement: a cancelled context still yields a definitive failure
// result, not a hang or a panic.
func TestIdentity_CancelledContext(t *testing.T) {
	identity := NewIdentity(NewFakeKVStore(), crypto.NewPlaintext(),
		LatencyConfig{Login: time.Minute}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := identity.Login(ctx, core.Credentials{Email: "a@b.com", Password: "p"})
	if result.Success {
		t.Fatalf("Login() = %+v, want failure on cancelled context", result)
	}
	if result.Error != core.CodeLoginFailed {
		t.Errorf("Login() error = %q, want %q", result.Error, core.CodeLoginFailed)
	}
}

// Requirement: the synchronous conveniences reflect the session pointer
// without latency.
func TestIdentity_SyncAccessors(t *testing.T) {
	identity := newTestIdentity(NewFakeKVStore())

	if identity.IsAuthenticated() {
		t.Error("IsAuthenticated() = true on empty store")
	}
	if _, ok := identity.UserRole(); ok {
		t.Error("UserRole() reported a role on empty store")
	}

	registerAlice(t, identity)

	if !identity.IsAuthenticated() {
		t.Error("IsAuthenticated() = false after registration")
	}
	role, ok := identity.UserRole()
	if !ok || role != core.RolePassenger {
		t.Errorf("UserRole() = %s/%v, want PASSENGER/true", role, ok)
	}
}

// Requirement: end-to-end register → logout → failed login → successful
// login round-trip returns the same record identity.
func TestIdentity_EndToEnd(t *testing.T) {
	identity := newTestIdentity(NewFakeKVStore())
	ctx := context.Background()

	registered := identity.Register(ctx, core.RegisterInput{
		FirstName: "Alice", LastName: "Smith",
		Email: "alice@example.com", Password: "correct-horse",
		Role: core.RolePassenger,
	})
	if !registered.Success {
		t.Fatalf("Register() = %+v", registered)
	}

	if result := identity.Logout(ctx); !result.Success {
		t.Fatalf("Logout() = %+v", result)
	}

	wrong := identity.Login(ctx, core.Credentials{Email: "alice@example.com", Password: "battery-staple"})
	if wrong.Success || wrong.Error != core.CodeInvalidCredentials {
		t.Fatalf("Login() with wrong password = %+v, want INVALID_CREDENTIALS", wrong)
	}

	right := identity.Login(ctx, core.Credentials{Email: "alice@example.com", Password: "correct-horse"})
	if !right.Success {
		t.Fatalf("Login() = %+v, want success", right)
	}
	if right.User.ID != registered.User.ID {
		t.Errorf("Login() ID = %q, want the registered ID %q", right.User.ID, registered.User.ID)
	}
}

// Requirement: the store works unchanged with a hashing credential handler;
// the plaintext map is a placeholder, not a load-bearing assumption.
func TestIdentity_WithArgon2Handler(t *testing.T) {
	identity := NewIdentity(NewFakeKVStore(), crypto.NewArgon2(), LatencyConfig{}, zerolog.Nop())
	ctx := context.Background()

	registered := identity.Register(ctx, core.RegisterInput{
		FirstName: "Alice", LastName: "Smith",
		Email: "alice@example.com", Password: "password1",
		Role: core.RolePassenger,
	})
	if !registered.Success {
		t.Fatalf("Register() = %+v", registered)
	}

	good := identity.Login(ctx, core.Credentials{Email: "alice@example.com", Password: "password1"})
	if !good.Success {
		t.Errorf("Login() = %+v, want success with hashed credential", good)
	}
	bad := identity.Login(ctx, core.Credentials{Email: "alice@example.com", Password: "password2"})
	if bad.Success {
		t.Errorf("Login() = %+v, want failure with wrong password", bad)
	}
}
