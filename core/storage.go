package core

// Persisted storage keys. The layout is three records in a key-value area:
// an ordered user collection, a zero-or-one session pointer snapshot, and
// the demo credential map (mock only; a real backend hashes these).
const (
	UsersKey         = "eticket_users"
	CurrentUserKey   = "eticket_current_user"
	DemoPasswordsKey = "eticket_demo_passwords"
)

// KVStore is the persistence port the identity store writes through. Values
// are opaque JSON payloads; implementations do not interpret them.
//
// Load returns ErrKeyNotFound when the key has never been written or was
// deleted. Reset drops every key and exists for test teardown.
type KVStore interface {
	Load(key string) ([]byte, error)
	Store(key string, value []byte) error
	Delete(key string) error
	Reset() error
}
