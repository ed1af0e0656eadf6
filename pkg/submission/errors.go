package submission

import "errors"

var (
	// ErrFormInvalid is returned by OnSubmit when at least one field fails
	// validation. The form is left untouched and no message is set.
	ErrFormInvalid = errors.New("submission: form is invalid")
	// ErrPersistence wraps store failures during submit.
	ErrPersistence = errors.New("submission: persistence failed")
	// ErrStoreRequired is returned when New receives a nil store.
	ErrStoreRequired = errors.New("submission: store is required")
	// ErrIllegalTransition reports a phase change outside the form lifecycle.
	ErrIllegalTransition = errors.New("submission: illegal phase transition")
)
