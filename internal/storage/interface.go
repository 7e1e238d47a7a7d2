package storage

import "errors"

// ErrNotInitialized is returned by Load when the backing database has not
// been created yet.
var ErrNotInitialized = errors.New("storage not initialized, run 'wellnest init' first")

// Backend is a durable string key-value store partitioned into namespaces.
// Implementations must make every Put visible to subsequent Gets from the
// same process.
type Backend interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	Get(namespace, key string) (value string, ok bool, err error)
	Put(namespace, key, value string) error
	Delete(namespace, key string) error
	Keys(namespace string) ([]string, error)

	GetConfigPath() string
}
