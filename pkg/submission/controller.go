// Package submission drives the registration form: it applies edits to the
// form state, gates submission on validity, persists accepted submissions and
// restores the last saved draft on construction.
package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-regform/pkg/metrics"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/state"
	"github.com/goliatone/go-regform/pkg/store"
)

// Controller owns the form state for one session. Calls are expected from a
// single event loop and are not safe for concurrent use.
type Controller struct {
	store  store.Store
	state  *state.State
	phases *phaseTracker
	cfg    config
	log    *slog.Logger
}

// New builds a controller over s and restores the last saved draft. A missing
// or unreadable draft is not an error: the form starts from defaults and the
// problem is logged.
func New(ctx context.Context, s store.Store, opts ...Option) (*Controller, error) {
	if s == nil {
		return nil, ErrStoreRequired
	}

	cfg := config{
		logger:      slog.New(slog.DiscardHandler),
		now:         time.Now,
		successText: DefaultSuccessText,
		failureText: DefaultFailureText,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.sessionID == "" {
		cfg.sessionID = uuid.NewString()
	}

	c := &Controller{
		store: cfg.metrics.InstrumentStore(s),
		cfg:   cfg,
		log:   cfg.logger.With("component", "submission", "session", cfg.sessionID),
	}
	c.state = state.New(c.load(ctx))
	c.phases = newPhaseTracker(c.state.Phase(), c.log)
	return c, nil
}

func (c *Controller) load(ctx context.Context) model.Draft {
	draft, ok, err := store.LoadDraft(ctx, c.store)
	switch {
	case err != nil:
		attrs := []any{"error", err}
		if errors.Is(err, store.ErrCorrupt) {
			attrs = append(attrs, "reason", "malformed")
		}
		c.log.WarnContext(ctx, "discarding saved draft", attrs...)
		c.cfg.metrics.IncrementRestore(metrics.RestoreDiscard)
		return model.Draft{}
	case !ok:
		c.cfg.metrics.IncrementRestore(metrics.RestoreEmpty)
		return model.Draft{}
	default:
		c.log.DebugContext(ctx, "restored saved draft")
		c.cfg.metrics.IncrementRestore(metrics.RestoreRestored)
		return draft
	}
}

// OnFieldChange applies a raw input value. agreeToTerms takes a bool, every
// other field a string. Rejected values leave the state unchanged.
func (c *Controller) OnFieldChange(field model.FieldName, raw any) error {
	if err := c.state.Apply(field, raw); err != nil {
		c.log.Debug("rejected field change", "field", field, "error", err)
		return fmt.Errorf("submission: field change: %w", err)
	}
	c.cfg.metrics.IncrementFieldChange(field)
	c.trackPhase(context.Background())
	return nil
}

// OnSubmit persists the current draft when every field is valid. On success
// the form resets and a success message is set; on failure the draft is kept
// for retry, a failure message is set and the cause is returned wrapped in
// ErrPersistence. An invalid form is a no-op returning ErrFormInvalid.
func (c *Controller) OnSubmit(ctx context.Context) error {
	if !c.state.Valid() {
		c.cfg.metrics.IncrementSubmission(metrics.ResultRejected)
		return ErrFormInvalid
	}

	draft := c.state.Draft()
	record := model.NewSubmissionRecord(draft, c.cfg.now())

	if err := c.persist(ctx, draft, record); err != nil {
		c.state.SetMessage(state.Message{Kind: state.MessageFailure, Text: c.cfg.failureText})
		c.cfg.metrics.IncrementSubmission(metrics.ResultFailure)
		c.log.ErrorContext(ctx, "submission not saved", "error", err)
		c.trackPhase(ctx)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	c.state.Reset()
	c.state.SetMessage(state.Message{Kind: state.MessageSuccess, Text: c.cfg.successText})
	c.cfg.metrics.IncrementSubmission(metrics.ResultSuccess)
	c.log.InfoContext(ctx, "submission saved", "submitted_at", record.SubmissionDate)
	c.trackPhase(ctx)
	return nil
}

func (c *Controller) trackPhase(ctx context.Context) {
	if err := c.phases.follow(ctx, c.state.Phase()); err != nil {
		c.log.ErrorContext(ctx, "phase tracking out of step", "error", err)
	}
}

// persist appends to history first, then saves the draft snapshot. A failed
// draft write after a successful append still fails the submit.
func (c *Controller) persist(ctx context.Context, draft model.Draft, record model.SubmissionRecord) error {
	if err := store.AppendHistory(ctx, c.store, record); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	if err := store.SaveDraft(ctx, c.store, draft); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// History returns every persisted submission in append order.
func (c *Controller) History(ctx context.Context) ([]model.SubmissionRecord, error) {
	records, err := store.LoadHistory(ctx, c.store)
	if err != nil {
		return nil, fmt.Errorf("submission: history: %w", err)
	}
	return records, nil
}

// Snapshot returns a copy of the current form state.
func (c *Controller) Snapshot() state.Snapshot { return c.state.Snapshot() }

// Draft returns the current values.
func (c *Controller) Draft() model.Draft { return c.state.Draft() }

// Valid reports whether the form can be submitted.
func (c *Controller) Valid() bool { return c.state.Valid() }

// Message returns the outcome of the last submit, cleared by the next edit.
func (c *Controller) Message() state.Message { return c.state.Message() }

// Phase reports the state machine position.
func (c *Controller) Phase() state.Phase { return c.state.Phase() }

// SessionID identifies this controller in logs.
func (c *Controller) SessionID() string { return c.cfg.sessionID }
