package kvstore

import "errors"

// KV is a string key-value store with write-through semantics.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// Opener hands out a KV scoped to a namespace, e.g. one per user.
type Opener interface {
	Open(namespace string) (KV, error)
}

// ErrInvalidNamespace is returned for namespaces that cannot be stored safely.
var ErrInvalidNamespace = errors.New("invalid namespace")
