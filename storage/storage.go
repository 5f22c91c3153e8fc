package storage

// Storage is the durable local key-value surface used for cart snapshots.
// Get reports absence through the second return value rather than an error.
type Storage interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}
