// Package eticket is the embeddable identity and session store of the
// e-ticketing platform. Consumers construct a store with New, inject a
// storage backend, and drive the five identity operations through the
// returned provider.
package eticket

import (
	"github.com/rs/zerolog"

	"github.com/Syed-Zahaab-Hussain/e-ticketing/core"
	"github.com/Syed-Zahaab-Hussain/e-ticketing/pkg/crypto"
	"github.com/Syed-Zahaab-Hussain/e-ticketing/pkg/kvstore"
	"github.com/Syed-Zahaab-Hussain/e-ticketing/services"
)

// interfaces
type (
	KVStore = core.KVStore

	IdentityProvider = core.IdentityProvider

	PasswordHandler = crypto.PasswordHandler
)

// structs
type (
	Identity      = services.Identity
	LatencyConfig = services.LatencyConfig
	GuardDecision = services.GuardDecision
)

type (
	User          = core.User
	Role          = core.Role
	Result        = core.Result
	RegisterInput = core.RegisterInput
	Credentials   = core.Credentials
	ProfileUpdate = core.ProfileUpdate
)

const (
	RoleAdmin       = core.RoleAdmin
	RoleBusOperator = core.RoleBusOperator
	RolePassenger   = core.RolePassenger
)

const (
	CodeEmailExists        = core.CodeEmailExists
	CodeInvalidCredentials = core.CodeInvalidCredentials
	CodeNotAuthenticated   = core.CodeNotAuthenticated
	CodeInvalidSession     = core.CodeInvalidSession
	CodeUserNotFound       = core.CodeUserNotFound
)

// Constructors & helpers (convenience re-exports)
var (
	NewMemoryStore       = kvstore.NewMemory
	NewFileStore         = kvstore.NewFile
	NewPlaintext         = crypto.NewPlaintext
	NewArgon2            = crypto.NewArgon2
	DefaultLatencyConfig = services.DefaultLatencyConfig
	Guard                = services.Guard
	DashboardPath        = services.DashboardPath
)

var (
	ErrStorageRequired = core.ErrStorageRequired
	ErrKeyNotFound     = core.ErrKeyNotFound
)

// Config assembles a store. Storage is the only required field.
type Config struct {
	// Storage persists the user collection, the session pointer, and the
	// credential map. Required.
	Storage KVStore

	// PasswordHandler scores stored secrets. Defaults to the plaintext
	// handler, which keeps credentials readable in storage. That mirrors
	// the demo data contract; swap in NewArgon2 before holding real
	// accounts.
	PasswordHandler PasswordHandler

	// Latency configures the simulated per-operation delays. Nil selects
	// the defaults; a pointer to the zero value disables delays entirely.
	Latency *LatencyConfig

	// Logger receives operational fault logs. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

// New validates the config, fills in defaults, constructs the store, and
// seeds the demo accounts.
func New(config Config) (*Identity, error) {
	if config.Storage == nil {
		return nil, ErrStorageRequired
	}

	passwords := config.PasswordHandler
	if passwords == nil {
		passwords = crypto.NewPlaintext()
	}

	latency := DefaultLatencyConfig()
	if config.Latency != nil {
		latency = *config.Latency
	}

	log := zerolog.Nop()
	if config.Logger != nil {
		log = *config.Logger
	}

	identity := services.NewIdentity(config.Storage, passwords, latency, log)
	if err := identity.Init(); err != nil {
		return nil, err
	}
	return identity, nil
}
