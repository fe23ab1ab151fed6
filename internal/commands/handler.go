// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
)

// =============================================================================
// ARGUMENT TYPES
// =============================================================================

// TypeTag names the value type a parameter is coerced to.
type TypeTag int

const (
	TypeInvalid TypeTag = iota
	TypeString
	TypeInt
	TypeInt64
	TypeUint
	TypeFloat32
	TypeFloat64
	TypeBool
)

// String returns the Go name of the type, used in signatures.
func (t TypeTag) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeInt64:
		return "int64"
	case TypeUint:
		return "uint"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	case TypeBool:
		return "bool"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Scalar is the closed set of parameter types a typed handler may take.
type Scalar interface {
	string | int | int64 | uint | float32 | float64 | bool
}

// TagOf returns the TypeTag for T.
func TagOf[T Scalar]() TypeTag {
	var zero T
	switch any(zero).(type) {
	case string:
		return TypeString
	case int:
		return TypeInt
	case int64:
		return TypeInt64
	case uint:
		return TypeUint
	case float32:
		return TypeFloat32
	case float64:
		return TypeFloat64
	case bool:
		return TypeBool
	}
	return TypeInvalid
}

// Param describes one positional parameter.
type Param struct {
	// Name is shown in signatures and help
	Name string

	// Type drives coercion of the raw token
	Type TypeTag
}

// =============================================================================
// HANDLER
// =============================================================================

// Handler is a uniform invocable over one of the typed function shapes.
// Build one with Func0 .. Func4, or Raw for custom parameter types.
//
// A handler built from a method value or closure keeps its receiver alive
// through that capture; the registry never manages the receiver itself.
type Handler struct {
	params      []Param
	description string
	call        func(args []any) error
}

// Params returns a copy of the parameter list.
func (h Handler) Params() []Param {
	out := make([]Param, len(h.params))
	copy(out, h.params)
	return out
}

// Arity returns the number of parameters.
func (h Handler) Arity() int {
	return len(h.params)
}

// Named returns a copy of h with display names for its parameters.
// Extra names are ignored; missing ones keep their defaults.
func (h Handler) Named(names ...string) Handler {
	h.params = h.Params()
	for i, name := range names {
		if i >= len(h.params) {
			break
		}
		if name != "" {
			h.params[i].Name = name
		}
	}
	return h
}

// Describe returns a copy of h carrying a one-line description for help.
func (h Handler) Describe(description string) Handler {
	h.description = description
	return h
}

// valid reports whether the handler was built by one of the constructors.
func (h Handler) valid() bool {
	return h.call != nil
}

func defaultParams(tags ...TypeTag) []Param {
	params := make([]Param, len(tags))
	for i, tag := range tags {
		params[i] = Param{Name: fmt.Sprintf("arg%d", i+1), Type: tag}
	}
	return params
}

// Func0 wraps a handler that takes no arguments.
func Func0(fn func() error) Handler {
	return Handler{
		call: func([]any) error { return fn() },
	}
}

// Func1 wraps a handler with one typed argument.
func Func1[A Scalar](fn func(A) error) Handler {
	return Handler{
		params: defaultParams(TagOf[A]()),
		call: func(args []any) error {
			return fn(args[0].(A))
		},
	}
}

// Func2 wraps a handler with two typed arguments.
func Func2[A, B Scalar](fn func(A, B) error) Handler {
	return Handler{
		params: defaultParams(TagOf[A](), TagOf[B]()),
		call: func(args []any) error {
			return fn(args[0].(A), args[1].(B))
		},
	}
}

// Func3 wraps a handler with three typed arguments.
func Func3[A, B, C Scalar](fn func(A, B, C) error) Handler {
	return Handler{
		params: defaultParams(TagOf[A](), TagOf[B](), TagOf[C]()),
		call: func(args []any) error {
			return fn(args[0].(A), args[1].(B), args[2].(C))
		},
	}
}

// Func4 wraps a handler with four typed arguments.
func Func4[A, B, C, D Scalar](fn func(A, B, C, D) error) Handler {
	return Handler{
		params: defaultParams(TagOf[A](), TagOf[B](), TagOf[C](), TagOf[D]()),
		call: func(args []any) error {
			return fn(args[0].(A), args[1].(B), args[2].(C), args[3].(D))
		},
	}
}

// Raw wraps a handler that receives the coerced values as a slice.
// Parameters with a TypeTag outside the supported set never reach fn:
// coercion rejects them with ErrUnsupportedType.
func Raw(params []Param, fn func(args []any) error) Handler {
	p := make([]Param, len(params))
	copy(p, params)
	return Handler{params: p, call: fn}
}
