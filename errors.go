package main

import (
	"errors"
	"fmt"
)

// Failure kinds for a single input. Every one of them aborts the whole run.
var (
	ErrOpen   = errors.New("open failure")
	ErrRead   = errors.New("read failure")
	ErrDecode = errors.New("decode failure")

	// ErrTokenize marks a tokenizer failure on an otherwise readable input.
	ErrTokenize = errors.New("tokenize failure")
)

// InputError reports which input failed, how, and why.
type InputError struct {
	Label string
	Kind  error // One of ErrOpen, ErrRead, ErrDecode, ErrTokenize
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *InputError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// countError tags err with a failure kind so processInputs can attach the label.
type countError struct {
	kind error
	err  error
}

func (e *countError) Error() string { return fmt.Sprintf("%s: %v", e.kind, e.err) }

func (e *countError) Unwrap() []error { return []error{e.kind, e.err} }

func readFailure(err error) error { return &countError{kind: ErrRead, err: err} }
func decodeFailure(err error) error { return &countError{kind: ErrDecode, err: err} }

// labelError attaches label to an error returned while counting an input.
func labelError(label string, err error) *InputError {
	var ce *countError
	if errors.As(err, &ce) {
		return &InputError{Label: label, Kind: ce.kind, Err: ce.err}
	}
	return &InputError{Label: label, Kind: ErrRead, Err: err}
}
