// Package store provides the durable key-value collaborator the submission
// controller persists drafts and history to. Implementations are synchronous
// and fallible; none of them retry.
package store

import (
	"context"
	"fmt"
	"strings"
)

// Keys used by the registration flow.
const (
	KeyDraft   = "draft"
	KeyHistory = "history"
)

// Store reads and writes string values by key. Read reports ok=false with a
// nil error when the key has never been written.
type Store interface {
	Read(ctx context.Context, key string) (value string, ok bool, err error)
	Write(ctx context.Context, key, value string) error
}

// Func adapts a pair of functions into a Store.
type Func struct {
	ReadFn  func(ctx context.Context, key string) (string, bool, error)
	WriteFn func(ctx context.Context, key, value string) error
}

// Read calls ReadFn, reporting a missing key when it is nil.
func (f Func) Read(ctx context.Context, key string) (string, bool, error) {
	if f.ReadFn == nil {
		return "", false, nil
	}
	return f.ReadFn(ctx, key)
}

// Write calls WriteFn, failing when it is nil.
func (f Func) Write(ctx context.Context, key, value string) error {
	if f.WriteFn == nil {
		return fmt.Errorf("%w: write not supported", ErrUnavailable)
	}
	return f.WriteFn(ctx, key, value)
}

func checkKey(key string) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" || trimmed != key || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
