package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/state"
	"github.com/goliatone/go-regform/pkg/store"
	"github.com/goliatone/go-regform/pkg/submission"
	"github.com/goliatone/go-regform/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	passwords    []string
	infoMessages []string
	inputPos     int
	selectPos    int
	confirmPos   int
	passPos      int

	beforeConfirm func(pos int)
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	if s.beforeConfirm != nil {
		s.beforeConfirm(s.confirmPos)
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) sawInfo(substr string) bool {
	for _, msg := range s.infoMessages {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

// validScript answers every prompt of the registration form correctly and
// then confirms the submit.
func validScript() *stubDriver {
	return &stubDriver{
		inputs:    []string{"abc", "a@b.c", "1234567890", "30"},
		passwords: []string{"abcd123!"},
		selectIdx: []int{0},
		confirm:   []bool{true, true},
	}
}

func newController(t *testing.T, s store.Store) *submission.Controller {
	t.Helper()
	ctrl, err := submission.New(context.Background(), s)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return ctrl
}

func TestRun_RepromptsUntilFieldsPass(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"ab", "abc", "a@b.c", "1234567890", "70", "30"},
		passwords: []string{"abcd123!"},
		selectIdx: []int{0},
		confirm:   []bool{false, true, true},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	mem := store.NewMemoryStore(nil)
	ctrl := newController(t, mem)

	if err := r.Run(context.Background(), model.Registration(), ctrl); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, want := range []string{
		"Full name must be at least 3 characters",
		"Age must be between 18 and 65",
		"You must agree to the terms",
		submission.DefaultSuccessText,
	} {
		if !driver.sawInfo(want) {
			t.Fatalf("expected info %q, got %v", want, driver.infoMessages)
		}
	}
	if ctrl.Phase() != state.PhaseSubmitted {
		t.Fatalf("expected submitted phase, got %s", ctrl.Phase())
	}

	history, err := store.LoadHistory(context.Background(), mem)
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected one record, got %d", len(history))
	}
	if diff := cmp.Diff(testsupport.ValidDraft(), history[0].Draft); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_DeclinedSubmitWritesNothing(t *testing.T) {
	driver := validScript()
	driver.confirm = []bool{true, false}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	faulty := testsupport.NewFaultyStore(nil)
	ctrl := newController(t, faulty)

	err = r.Run(context.Background(), model.Registration(), ctrl)
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
	if len(faulty.Writes()) != 0 {
		t.Fatalf("expected no writes, got %v", faulty.Writes())
	}
	if ctrl.Phase() != state.PhaseEditingValid {
		t.Fatalf("expected editing_valid, got %s", ctrl.Phase())
	}
}

func TestRun_FailedSaveCanBeRetried(t *testing.T) {
	faulty := testsupport.NewFaultyStore(nil)
	faulty.FailWrite(store.KeyHistory, nil)

	driver := validScript()
	driver.confirm = []bool{true, true, true}
	driver.beforeConfirm = func(pos int) {
		if pos == 2 {
			faulty.Heal()
		}
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctrl := newController(t, faulty)

	if err := r.Run(context.Background(), model.Registration(), ctrl); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !driver.sawInfo(submission.DefaultFailureText) {
		t.Fatalf("expected failure message, got %v", driver.infoMessages)
	}
	if !driver.sawInfo(submission.DefaultSuccessText) {
		t.Fatalf("expected success message after retry, got %v", driver.infoMessages)
	}
	if diff := cmp.Diff([]string{store.KeyHistory, store.KeyDraft}, faulty.Writes()); diff != "" {
		t.Fatalf("writes mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_FailedSaveNotRetried(t *testing.T) {
	faulty := testsupport.NewFaultyStore(nil)
	faulty.FailWrite(store.KeyHistory, nil)

	driver := validScript()
	driver.confirm = []bool{true, true, false}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctrl := newController(t, faulty)

	err = r.Run(context.Background(), model.Registration(), ctrl)
	if !errors.Is(err, ErrDeclined) || !errors.Is(err, submission.ErrPersistence) {
		t.Fatalf("expected declined persistence error, got %v", err)
	}
	if diff := cmp.Diff(testsupport.ValidDraft(), ctrl.Draft()); diff != "" {
		t.Fatalf("draft should be kept (-want +got):\n%s", diff)
	}
}

func TestRun_InvalidChoice(t *testing.T) {
	driver := validScript()
	driver.selectIdx = []int{-1}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	err = r.Run(context.Background(), model.Registration(), newController(t, store.NewMemoryStore(nil)))
	if !errors.Is(err, ErrInvalidChoice) {
		t.Fatalf("expected ErrInvalidChoice, got %v", err)
	}
}

func TestRun_DriverErrorStops(t *testing.T) {
	r, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if err := r.Run(context.Background(), model.Registration(), newController(t, store.NewMemoryStore(nil))); err == nil {
		t.Fatalf("expected error when the driver has no answers")
	}
}

func TestRender_OutputFormats(t *testing.T) {
	s := state.New(model.Draft{})
	if err := s.Apply(model.FieldEmail, "bad"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	view := render.NewView(model.Registration(), s.Snapshot())

	r, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), model.Registration(), view)
	if err != nil {
		t.Fatalf("render json: %v", err)
	}
	var decoded struct {
		Values map[string]any    `json:"values"`
		Errors map[string]string `json:"errors"`
		Phase  string            `json:"phase"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Values["email"] != "bad" {
		t.Fatalf("unexpected values %v", decoded.Values)
	}
	if diff := cmp.Diff(map[string]string{"email": "Please enter a valid email address"}, decoded.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if decoded.Phase != string(state.PhaseEditingInvalid) {
		t.Fatalf("unexpected phase %q", decoded.Phase)
	}

	pretty, err := New(WithPromptDriver(&stubDriver{}), WithOutputFormat(OutputFormatPrettyText))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if pretty.ContentType() != "text/plain" {
		t.Fatalf("unexpected content type %q", pretty.ContentType())
	}
	text, err := pretty.Render(context.Background(), model.Registration(), view)
	if err != nil {
		t.Fatalf("render pretty: %v", err)
	}
	if !strings.Contains(string(text), "errors.email=Please enter a valid email address\n") {
		t.Fatalf("unexpected pretty output:\n%s", text)
	}

	form, err := New(WithPromptDriver(&stubDriver{}), WithOutputFormat(OutputFormatFormURLEncoded))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	encoded, err := form.Render(context.Background(), model.Registration(), view)
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	if !strings.Contains(string(encoded), "values.email=bad") {
		t.Fatalf("unexpected form output %s", encoded)
	}
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	if _, err := New(WithOutputFormat("xml")); err == nil {
		t.Fatalf("expected error for unknown output format")
	}
}
