// Package testsupport holds fixtures shared by package tests: a fully valid
// draft, scripted field inputs, a store that fails on demand and a captured
// logger.
package testsupport

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/store"
)

// ErrInjected is the default failure returned by FaultyStore.
var ErrInjected = errors.New("testsupport: injected store failure")

// FieldInput is one scripted edit.
type FieldInput struct {
	Field model.FieldName
	Value any
}

// ValidInputs returns edits that make every field pass, in display order.
func ValidInputs() []FieldInput {
	return []FieldInput{
		{Field: model.FieldFullName, Value: "abc"},
		{Field: model.FieldEmail, Value: "a@b.c"},
		{Field: model.FieldPassword, Value: "abcd123!"},
		{Field: model.FieldPhoneNumber, Value: "1234567890"},
		{Field: model.FieldAge, Value: "30"},
		{Field: model.FieldCountry, Value: "us"},
		{Field: model.FieldAgreeToTerms, Value: true},
	}
}

// ValidDraft is the draft produced by ValidInputs.
func ValidDraft() model.Draft {
	return model.Draft{
		FullName:     "abc",
		Email:        "a@b.c",
		Password:     "abcd123!",
		PhoneNumber:  "1234567890",
		Age:          "30",
		Country:      "us",
		AgreeToTerms: true,
	}
}

// Editor is anything accepting raw field edits.
type Editor interface {
	OnFieldChange(field model.FieldName, raw any) error
}

// FillValid applies ValidInputs to editor, failing the test on error.
func FillValid(t *testing.T, editor Editor) {
	t.Helper()
	for _, input := range ValidInputs() {
		if err := editor.OnFieldChange(input.Field, input.Value); err != nil {
			t.Fatalf("fill %s: %v", input.Field, err)
		}
	}
}

// FixedClock returns a clock frozen at at.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// FaultyStore wraps a Store and fails selected keys on demand.
type FaultyStore struct {
	store.Store

	mu         sync.Mutex
	readFails  map[string]error
	writeFails map[string]error
	writes     []string
}

// NewFaultyStore wraps base, or a fresh memory store when base is nil.
func NewFaultyStore(base store.Store) *FaultyStore {
	if base == nil {
		base = store.NewMemoryStore(nil)
	}
	return &FaultyStore{
		Store:      base,
		readFails:  make(map[string]error),
		writeFails: make(map[string]error),
	}
}

// FailWrite makes writes to key return err (ErrInjected when nil).
func (f *FaultyStore) FailWrite(key string, err error) {
	if err == nil {
		err = ErrInjected
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeFails[key] = err
}

// FailRead makes reads of key return err (ErrInjected when nil).
func (f *FaultyStore) FailRead(key string, err error) {
	if err == nil {
		err = ErrInjected
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readFails[key] = err
}

// Heal clears every injected failure.
func (f *FaultyStore) Heal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readFails = make(map[string]error)
	f.writeFails = make(map[string]error)
}

// Writes lists the keys successfully written, in order.
func (f *FaultyStore) Writes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.writes...)
}

func (f *FaultyStore) Read(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	err := f.readFails[key]
	f.mu.Unlock()
	if err != nil {
		return "", false, err
	}
	return f.Store.Read(ctx, key)
}

func (f *FaultyStore) Write(ctx context.Context, key, value string) error {
	f.mu.Lock()
	err := f.writeFails[key]
	f.mu.Unlock()
	if err != nil {
		return err
	}
	if err := f.Store.Write(ctx, key, value); err != nil {
		return err
	}
	f.mu.Lock()
	f.writes = append(f.writes, key)
	f.mu.Unlock()
	return nil
}

// CaptureLogger returns a debug-level text logger writing into the returned
// buffer.
func CaptureLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), buf
}
