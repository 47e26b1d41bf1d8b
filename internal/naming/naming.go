// Package naming chooses the names under which uploaded files are stored.
//
// A stored name is a random UUID followed by the lower-cased extension of the
// uploader's filename. Nothing else from the original name survives, so two
// uploads called "report.pdf" never collide and a crafted name cannot escape
// the storage namespace.
package naming

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrKeySpaceExhausted    = errors.New("could not allocate a unique storage key")
)

// DefaultMaxAttempts bounds how many fresh keys Allocate draws before giving up.
const DefaultMaxAttempts = 5

// allowedExtensions maps each accepted extension to the only content type
// its files are ever served with.
var allowedExtensions = map[string]string{
	"txt":  "text/plain; charset=utf-8",
	"pdf":  "application/pdf",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
}

// AllowedExtensions returns the accepted extensions in a stable order.
func AllowedExtensions() []string {
	return []string{"txt", "pdf", "png", "jpg", "jpeg", "gif"}
}

// Extension returns the lower-cased text after the last '.' in name.
// ok is false when name has no '.' or nothing follows it.
func Extension(name string) (ext string, ok bool) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return "", false
	}
	return strings.ToLower(name[i+1:]), true
}

// IsAllowedExtension reports whether name carries one of the accepted extensions.
func IsAllowedExtension(name string) bool {
	ext, ok := Extension(name)
	if !ok {
		return false
	}
	_, allowed := allowedExtensions[ext]
	return allowed
}

// ContentType returns the content type for name's extension. Unsupported
// extensions get application/octet-stream.
func ContentType(name string) string {
	ext, _ := Extension(name)
	if ct, ok := allowedExtensions[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// KeyExistsFunc reports whether a storage key is already taken.
type KeyExistsFunc func(ctx context.Context, key string) (bool, error)

// Allocator hands out storage keys that are not yet in use.
type Allocator struct {
	// Exists is consulted for every candidate. A nil Exists accepts the first candidate.
	Exists KeyExistsFunc
	// MaxAttempts defaults to DefaultMaxAttempts when zero or negative.
	MaxAttempts int

	newID func() string
}

// NewAllocator returns an Allocator that checks candidates with exists.
func NewAllocator(exists KeyExistsFunc) *Allocator {
	return &Allocator{Exists: exists, MaxAttempts: DefaultMaxAttempts}
}

// Allocate returns a fresh storage key for a file called originalName.
func (a *Allocator) Allocate(ctx context.Context, originalName string) (string, error) {
	if !IsAllowedExtension(originalName) {
		return "", ErrUnsupportedExtension
	}
	ext, _ := Extension(originalName)

	attempts := a.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	gen := a.newID
	if gen == nil {
		gen = func() string { return uuid.NewString() }
	}

	for i := 0; i < attempts; i++ {
		key := gen() + "." + ext
		if a.Exists == nil {
			return key, nil
		}
		taken, err := a.Exists(ctx, key)
		if err != nil {
			return "", fmt.Errorf("check storage key: %w", err)
		}
		if !taken {
			return key, nil
		}
	}
	return "", ErrKeySpaceExhausted
}
