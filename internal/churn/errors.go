// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package churn

import (
	"errors"
	"fmt"
)

// ErrModelNotLoaded indicates the pipeline was invoked before the trained
// model artifacts were loaded. Fatal for that call; the caller must load
// artifacts first.
var ErrModelNotLoaded = errors.New("model artifacts are not loaded")

// ValidationError reports a malformed or out-of-domain input record, such as
// a categorical value the encoder never saw during training or a missing
// required field. It is surfaced to the caller and never silently defaulted.
type ValidationError struct {
	// Field is the offending feature or attribute name.
	Field string

	// Value is the rejected value, rendered for the message.
	Value string

	// Reason describes why the value was rejected.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid input for %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid input for %q: value %q %s", e.Field, e.Value, e.Reason)
}

// NewValidationError constructs a ValidationError for the given field.
func NewValidationError(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// ShapeMismatchError reports a disagreement between the feature-order length
// and a vector length. This is an internal invariant violation indicating a
// packaging bug in the artifacts, not a user input problem, and is treated
// as non-recoverable for the process.
type ShapeMismatchError struct {
	// Want is the expected length (the feature-order length).
	Want int

	// Got is the actual vector length.
	Got int

	// Context names the vector being checked.
	Context string
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch in %s: expected %d features, got %d", e.Context, e.Want, e.Got)
}
