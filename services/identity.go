package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Syed-Zahaab-Hussain/e-ticketing/core"
	"github.com/Syed-Zahaab-Hussain/e-ticketing/pkg/crypto"
)

// LatencyConfig holds the per-operation simulated network delay. Zero values
// skip the delay entirely, which is what tests want.
type LatencyConfig struct {
	Register      time.Duration
	Login         time.Duration
	Logout        time.Duration
	CurrentUser   time.Duration
	UpdateProfile time.Duration
}

// DefaultLatencyConfig mirrors the delays of the API the store stands in for.
func DefaultLatencyConfig() LatencyConfig {
	return LatencyConfig{
		Register:      time.Second,
		Login:         time.Second,
		Logout:        500 * time.Millisecond,
		CurrentUser:   300 * time.Millisecond,
		UpdateProfile: 800 * time.Millisecond,
	}
}

// Identity owns the persisted user collection, the demo credential map and
// the session pointer. Every operation resolves to a definitive Result;
// storage faults are logged and downgraded to the operation's generic
// failure code, never returned as Go errors.
//
// A single mutex serializes the read-modify-write of each operation so
// concurrent callers can't race on the user collection. The underlying
// KVStore is still the unit of sharing: this guards one process, not one
// storage area shared by many processes.
type Identity struct {
	storage   core.KVStore
	passwords crypto.PasswordHandler
	ids       *crypto.NanoIDGenerator
	latency   LatencyConfig
	log       zerolog.Logger

	mu sync.Mutex
}

var _ core.IdentityProvider = (*Identity)(nil)

func NewIdentity(storage core.KVStore, passwords crypto.PasswordHandler, latency LatencyConfig, log zerolog.Logger) *Identity {
	return &Identity{
		storage:   storage,
		passwords: passwords,
		ids:       crypto.NewNanoID(),
		latency:   latency,
		log:       log,
	}
}

// Init materializes the bootstrap demo accounts if the user collection has
// never been populated. Call once at process start.
func (s *Identity) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureBootstrap()
}

// Reset drops all three persisted records. Test teardown.
func (s *Identity) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.Reset()
}

// Register creates a new account, stores its credential and signs it in by
// overwriting the session pointer.
func (s *Identity) Register(ctx context.Context, input core.RegisterInput) *core.Result {
	if err := s.wait(ctx, s.latency.Register); err != nil {
		return s.fault(err, "Registration failed. Please try again.", core.CodeRegistrationFailed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !input.Role.SelfRegisterable() {
		return core.Fail("Registration is only open to passengers and bus operators.", core.CodeRegistrationFailed)
	}

	users, err := s.loadUsers()
	if err != nil {
		return s.fault(err, "Registration failed. Please try again.", core.CodeRegistrationFailed)
	}

	// Email uniqueness over the full collection; byte-for-byte comparison.
	for i := range users {
		if users[i].Email == input.Email {
			return core.Fail("User with this email already exists.", core.CodeEmailExists)
		}
	}

	id, err := s.ids.Generate()
	if err != nil {
		return s.fault(err, "Registration failed. Please try again.", core.CodeRegistrationFailed)
	}

	secret, err := s.passwords.Hash(input.Password)
	if err != nil {
		return s.fault(err, "Registration failed. Please try again.", core.CodeRegistrationFailed)
	}

	now := time.Now().UTC()
	user := core.User{
		ID:        id,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Role:      input.Role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	users = append(users, user)
	if err := s.saveUsers(users); err != nil {
		return s.fault(err, "Registration failed. Please try again.", core.CodeRegistrationFailed)
	}

	secrets, err := s.loadSecrets()
	if err != nil {
		return s.fault(err, "Registration failed. Please try again.", core.CodeRegistrationFailed)
	}
	secrets[input.Email] = secret
	if err := s.saveSecrets(secrets); err != nil {
		return s.fault(err, "Registration failed. Please try again.", core.CodeRegistrationFailed)
	}

	if err := s.saveSessionPointer(&user); err != nil {
		return s.fault(err, "Registration failed. Please try again.", core.CodeRegistrationFailed)
	}

	return core.OK("User registered successfully.", user.Clone())
}

// Login authenticates by email and secret and sets the session pointer.
// Unknown email, inactive account and wrong secret are indistinguishable to
// the caller.
func (s *Identity) Login(ctx context.Context, creds core.Credentials) *core.Result {
	if err := s.wait(ctx, s.latency.Login); err != nil {
		return s.fault(err, "Login failed. Please try again.", core.CodeLoginFailed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Demo accounts exist even if nobody ever registered.
	if err := s.ensureBootstrap(); err != nil {
		return s.fault(err, "Login failed. Please try again.", core.CodeLoginFailed)
	}

	users, err := s.loadUsers()
	if err != nil {
		return s.fault(err, "Login failed. Please try again.", core.CodeLoginFailed)
	}

	var user *core.User
	for i := range users {
		if users[i].Email == creds.Email {
			user = &users[i]
			break
		}
	}
	if user == nil || !user.IsActive {
		return core.Fail("Invalid email or password.", core.CodeInvalidCredentials)
	}

	secrets, err := s.loadSecrets()
	if err != nil {
		return s.fault(err, "Login failed. Please try again.", core.CodeLoginFailed)
	}

	stored, exists := secrets[creds.Email]
	if !exists {
		return core.Fail("Invalid email or password.", core.CodeInvalidCredentials)
	}
	ok, err := s.passwords.Verify(creds.Password, stored)
	if err != nil {
		return s.fault(err, "Login failed. Please try again.", core.CodeLoginFailed)
	}
	if !ok {
		return core.Fail("Invalid email or password.", core.CodeInvalidCredentials)
	}

	if err := s.saveSessionPointer(user); err != nil {
		return s.fault(err, "Login failed. Please try again.", core.CodeLoginFailed)
	}

	return core.OK("Login successful.", user.Clone())
}

// Logout clears the session pointer. There is no precondition: logging out
// while logged out still succeeds.
func (s *Identity) Logout(ctx context.Context) *core.Result {
	if err := s.wait(ctx, s.latency.Logout); err != nil {
		return s.fault(err, "Logout failed. Please try again.", core.CodeLogoutFailed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Delete(core.CurrentUserKey); err != nil {
		return s.fault(err, "Logout failed. Please try again.", core.CodeLogoutFailed)
	}
	return core.OK("Logout successful.", nil)
}

// CurrentUser reads the session pointer and re-resolves it against the live
// user collection. The snapshot in the pointer is denormalized; returning
// the live record is what lets role and profile edits show up without a
// fresh login. A pointer to a vanished or deactivated record is cleared.
func (s *Identity) CurrentUser(ctx context.Context) *core.Result {
	if err := s.wait(ctx, s.latency.CurrentUser); err != nil {
		return s.fault(err, "Failed to retrieve user information.", core.CodeGetUserFailed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pointer, err := s.loadSessionPointer()
	if err != nil {
		return s.fault(err, "Failed to retrieve user information.", core.CodeGetUserFailed)
	}
	if pointer == nil {
		return core.Fail("No user is currently logged in.", core.CodeNotAuthenticated)
	}

	users, err := s.loadUsers()
	if err != nil {
		return s.fault(err, "Failed to retrieve user information.", core.CodeGetUserFailed)
	}

	var live *core.User
	for i := range users {
		if users[i].ID == pointer.ID {
			live = &users[i]
			break
		}
	}
	if live == nil || !live.IsActive {
		if err := s.storage.Delete(core.CurrentUserKey); err != nil {
			return s.fault(err, "Failed to retrieve user information.", core.CodeGetUserFailed)
		}
		return core.Fail("User session is invalid.", core.CodeInvalidSession)
	}

	return core.OK("User retrieved successfully.", live.Clone())
}

// UpdateProfile merges the given fields into the session's user record,
// refreshes updatedAt and overwrites the session pointer with the updated
// record. ID, email, role and createdAt cannot change through this path.
func (s *Identity) UpdateProfile(ctx context.Context, update core.ProfileUpdate) *core.Result {
	if err := s.wait(ctx, s.latency.UpdateProfile); err != nil {
		return s.fault(err, "Failed to update profile.", core.CodeUpdateFailed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pointer, err := s.loadSessionPointer()
	if err != nil {
		return s.fault(err, "Failed to update profile.", core.CodeUpdateFailed)
	}
	if pointer == nil {
		return core.Fail("User not authenticated.", core.CodeNotAuthenticated)
	}

	users, err := s.loadUsers()
	if err != nil {
		return s.fault(err, "Failed to update profile.", core.CodeUpdateFailed)
	}

	index := -1
	for i := range users {
		if users[i].ID == pointer.ID {
			index = i
			break
		}
	}
	if index == -1 {
		return core.Fail("User not found.", core.CodeUserNotFound)
	}

	user := &users[index]
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Phone != nil {
		user.Phone = update.Phone
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.saveUsers(users); err != nil {
		return s.fault(err, "Failed to update profile.", core.CodeUpdateFailed)
	}
	if err := s.saveSessionPointer(user); err != nil {
		return s.fault(err, "Failed to update profile.", core.CodeUpdateFailed)
	}

	return core.OK("Profile updated successfully.", user.Clone())
}

// IsAuthenticated reports whether a session pointer is set. It trusts the
// snapshot and does not re-resolve; use CurrentUser for that.
func (s *Identity) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pointer, err := s.loadSessionPointer()
	return err == nil && pointer != nil
}

// UserRole returns the session snapshot's role, if any.
func (s *Identity) UserRole() (core.Role, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pointer, err := s.loadSessionPointer()
	if err != nil || pointer == nil {
		return "", false
	}
	return pointer.Role, true
}

// wait simulates network latency, honoring context cancellation. A
// cancelled call still produces a definitive failure Result upstream.
func (s *Identity) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// fault logs an unexpected internal error and downgrades it to a generic
// failure result so the caller always gets a definitive answer.
func (s *Identity) fault(err error, message, code string) *core.Result {
	s.log.Error().Err(err).Str("code", code).Msg("identity operation fault")
	return core.Fail(message, code)
}

func (s *Identity) loadUsers() ([]core.User, error) {
	raw, err := s.storage.Load(core.UsersKey)
	if errors.Is(err, core.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	var users []core.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (s *Identity) saveUsers(users []core.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := s.storage.Store(core.UsersKey, raw); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (s *Identity) loadSessionPointer() (*core.User, error) {
	raw, err := s.storage.Load(core.CurrentUserKey)
	if errors.Is(err, core.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session pointer: %w", err)
	}

	var user core.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decode session pointer: %w", err)
	}
	return &user, nil
}

func (s *Identity) saveSessionPointer(user *core.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session pointer: %w", err)
	}
	if err := s.storage.Store(core.CurrentUserKey, raw); err != nil {
		return fmt.Errorf("save session pointer: %w", err)
	}
	return nil
}

func (s *Identity) loadSecrets() (map[string]string, error) {
	raw, err := s.storage.Load(core.DemoPasswordsKey)
	if errors.Is(err, core.ErrKeyNotFound) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	secrets := make(map[string]string)
	if err := json.Unmarshal(raw, &secrets); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	return secrets, nil
}

func (s *Identity) saveSecrets(secrets map[string]string) error {
	raw, err := json.Marshal(secrets)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := s.storage.Store(core.DemoPasswordsKey, raw); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}
