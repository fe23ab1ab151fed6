// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrDuplicateCommand is returned when (name, arity) is already registered.
	ErrDuplicateCommand = errors.New("duplicate command")

	// ErrInvalidName is returned for names that normalize to the empty string.
	ErrInvalidName = errors.New("invalid command name")

	// ErrInvalidHandler is returned for a zero Handler value.
	ErrInvalidHandler = errors.New("invalid handler")

	// ErrUnsupportedType is returned when a parameter type cannot be coerced.
	ErrUnsupportedType = errors.New("unsupported argument type")

	// ErrInvalidArgument is returned when a token does not parse as its parameter type.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCommandNotFound covers both an unknown (name, arity) and arguments
	// that fail to coerce.
	ErrCommandNotFound = errors.New("command not found")

	// ErrHandlerFault is returned when a handler returns an error or panics.
	ErrHandlerFault = errors.New("command failed")

	// ErrBusy is returned when Execute is entered while another line is running.
	ErrBusy = errors.New("dispatcher busy")
)

// =============================================================================
// REGISTER ERROR
// =============================================================================

// RegisterError describes a rejected registration.
type RegisterError struct {
	Name  string
	Arity int
	Err   error
}

func (e *RegisterError) Error() string {
	return fmt.Sprintf("register %s/%d: %v", e.Name, e.Arity, e.Err)
}

func (e *RegisterError) Unwrap() error {
	return e.Err
}

// =============================================================================
// COERCION ERROR
// =============================================================================

// CoercionError describes a token that could not be converted.
type CoercionError struct {
	// Index is the zero-based argument position
	Index int
	Token string
	Type  TypeTag
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("argument %d (%q): cannot convert to %s: %v", e.Index+1, e.Token, e.Type, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// =============================================================================
// DISPATCH ERROR
// =============================================================================

// DispatchError is returned in Result.Err. Kind is one of ErrCommandNotFound,
// ErrHandlerFault or ErrBusy; Cause carries the underlying detail (a
// *CoercionError, the handler's error, a recovered panic) when there is one.
type DispatchError struct {
	Command string
	Kind    error
	Cause   error
}

func (e *DispatchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v: %v", e.Command, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Kind)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *DispatchError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// IsNotFound reports whether err is a not-found dispatch failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCommandNotFound)
}

// IsHandlerFault reports whether err came from a failing handler.
func IsHandlerFault(err error) bool {
	return errors.Is(err, ErrHandlerFault)
}
