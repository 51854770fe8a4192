// Package preferences defines a small key/value store for client-side
// settings such as the theme. Values are opaque JSON documents.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("preference not found")

// ErrInvalidKey is returned for keys that cannot be used as object names.
var ErrInvalidKey = errors.New("invalid preference key")

// Store persists preferences.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Keys(ctx context.Context) ([]string, error)
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateKey rejects keys that would escape the store's namespace.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// ObjectName is the file or object name a key is stored under.
func ObjectName(key string) string {
	return key + ".json"
}
