package kvstore

import (
	"sort"
	"strings"
	"sync"
)

// Memory keeps keys in a thread-safe map.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory constructs an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		values: make(map[string]string),
	}
}

// Get returns the value for key.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

// Remove deletes key; missing keys are ignored.
func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

// Keys returns the sorted keys starting with prefix.
func (m *Memory) Keys(prefix string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Open implements Opener by prefixing keys of the shared map.
func (m *Memory) Open(namespace string) (KV, error) {
	if !validNamespace(namespace) {
		return nil, ErrInvalidNamespace
	}
	return Prefixed(m, namespace), nil
}

type prefixed struct {
	kv     KV
	prefix string
}

// Prefixed scopes every key of kv under "namespace:".
func Prefixed(kv KV, namespace string) KV {
	return prefixed{kv: kv, prefix: namespace + ":"}
}

func (p prefixed) Get(key string) (string, bool) { return p.kv.Get(p.prefix + key) }
func (p prefixed) Set(key, value string) error   { return p.kv.Set(p.prefix+key, value) }
func (p prefixed) Remove(key string) error       { return p.kv.Remove(p.prefix + key) }
