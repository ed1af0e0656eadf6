package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-regform/pkg/model"
)

// LoadDraft reads the saved draft. ok is false when none was saved. A payload
// that does not decode is reported as ErrCorrupt.
func LoadDraft(ctx context.Context, s Store) (model.Draft, bool, error) {
	raw, ok, err := s.Read(ctx, KeyDraft)
	if err != nil || !ok {
		return model.Draft{}, false, err
	}
	draft, err := model.DecodeDraft([]byte(raw))
	if err != nil {
		return model.Draft{}, false, fmt.Errorf("%w: %s: %v", ErrCorrupt, KeyDraft, err)
	}
	return draft, true, nil
}

// SaveDraft writes draft as the latest snapshot.
func SaveDraft(ctx context.Context, s Store, draft model.Draft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("store: encode draft: %w", err)
	}
	return s.Write(ctx, KeyDraft, string(raw))
}

// LoadHistory reads every submission record in append order. A missing key
// is an empty history.
func LoadHistory(ctx context.Context, s Store) ([]model.SubmissionRecord, error) {
	raw, ok, err := s.Read(ctx, KeyHistory)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var records []model.SubmissionRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, KeyHistory, err)
	}
	return records, nil
}

// AppendHistory adds record to the end of the persisted history. Existing
// entries are carried over as raw JSON, unknown keys included.
func AppendHistory(ctx context.Context, s Store, record model.SubmissionRecord) error {
	raw, ok, err := s.Read(ctx, KeyHistory)
	if err != nil {
		return err
	}
	var entries []json.RawMessage
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrCorrupt, KeyHistory, err)
		}
	}

	encoded, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("store: encode record: %w", err)
	}
	entries = append(entries, encoded)

	out, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("store: encode history: %w", err)
	}
	return s.Write(ctx, KeyHistory, string(out))
}
