package storage

import (
	"strconv"
	"sync"

	"github.com/julianstephens/wellnest/internal/logger"
)

// Prefs is the application's handle on persisted state. It is constructed
// once by the host and passed to every component that needs storage.
type Prefs struct {
	backend Backend

	mu         sync.Mutex
	namespaces map[string]*Namespace
}

func New(backend Backend) *Prefs {
	return &Prefs{
		backend:    backend,
		namespaces: make(map[string]*Namespace),
	}
}

// Backend returns the underlying backend.
func (p *Prefs) Backend() Backend {
	return p.backend
}

// Namespace returns the handle for name. Handles are shared, so every caller
// asking for the same namespace serializes on the same guard.
func (p *Prefs) Namespace(name string) *Namespace {
	p.mu.Lock()
	defer p.mu.Unlock()

	ns, ok := p.namespaces[name]
	if !ok {
		ns = &Namespace{name: name, backend: p.backend}
		p.namespaces[name] = ns
	}
	return ns
}

// Namespace is a named partition of the store with its own mutual-exclusion
// guard. Reads never take the guard; read-modify-write sequences must run
// inside Update.
type Namespace struct {
	name    string
	backend Backend
	mu      sync.Mutex
}

func (n *Namespace) Name() string {
	return n.name
}

// Update runs fn while holding the namespace guard. fn must not call Update
// on the same namespace.
func (n *Namespace) Update(fn func() error) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return fn()
}

// raw returns the stored text for key. Backend failures are logged and
// reported as a missing key.
func (n *Namespace) raw(key string) (string, bool) {
	v, ok, err := n.backend.Get(n.name, key)
	if err != nil {
		logger.Warn("Failed to read preference", "namespace", n.name, "key", key, "error", err)
		return "", false
	}
	return v, ok
}

func (n *Namespace) put(key, value string) error {
	if err := n.backend.Put(n.name, key, value); err != nil {
		logger.Error("Failed to write preference", "namespace", n.name, "key", key, "error", err)
		return err
	}
	return nil
}

func (n *Namespace) GetString(key, def string) string {
	v, ok := n.raw(key)
	if !ok {
		return def
	}
	return v
}

func (n *Namespace) PutString(key, value string) error {
	return n.put(key, value)
}

func (n *Namespace) GetInt(key string, def int) int {
	return int(n.GetInt64(key, int64(def)))
}

func (n *Namespace) PutInt(key string, value int) error {
	return n.put(key, strconv.Itoa(value))
}

func (n *Namespace) GetInt64(key string, def int64) int64 {
	v, ok := n.raw(key)
	if !ok {
		return def
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		logger.Warn("Malformed integer preference, using default", "namespace", n.name, "key", key, "value", v)
		return def
	}
	return parsed
}

func (n *Namespace) PutInt64(key string, value int64) error {
	return n.put(key, strconv.FormatInt(value, 10))
}

func (n *Namespace) GetFloat(key string, def float64) float64 {
	v, ok := n.raw(key)
	if !ok {
		return def
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logger.Warn("Malformed float preference, using default", "namespace", n.name, "key", key, "value", v)
		return def
	}
	return parsed
}

func (n *Namespace) PutFloat(key string, value float64) error {
	return n.put(key, strconv.FormatFloat(value, 'f', -1, 64))
}

func (n *Namespace) GetBool(key string, def bool) bool {
	v, ok := n.raw(key)
	if !ok {
		return def
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		logger.Warn("Malformed boolean preference, using default", "namespace", n.name, "key", key, "value", v)
		return def
	}
	return parsed
}

func (n *Namespace) PutBool(key string, value bool) error {
	return n.put(key, strconv.FormatBool(value))
}

// Has reports whether key is present.
func (n *Namespace) Has(key string) bool {
	_, ok := n.raw(key)
	return ok
}

func (n *Namespace) Remove(key string) error {
	return n.backend.Delete(n.name, key)
}

// All returns every key-value pair in the namespace.
func (n *Namespace) All() (map[string]string, error) {
	keys, err := n.backend.Keys(n.name)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := n.raw(k); ok {
			out[k] = v
		}
	}
	return out, nil
}
