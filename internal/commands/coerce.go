// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
	"strconv"
)

// Coerce converts token to a value of type t using strconv's parsing rules.
// Integers are base 10. Booleans accept what strconv.ParseBool accepts.
func Coerce(token string, t TypeTag) (any, error) {
	switch t {
	case TypeString:
		return token, nil
	case TypeInt:
		v, err := strconv.Atoi(token)
		if err != nil {
			return nil, invalid(err)
		}
		return v, nil
	case TypeInt64:
		v, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, invalid(err)
		}
		return v, nil
	case TypeUint:
		v, err := strconv.ParseUint(token, 10, strconv.IntSize)
		if err != nil {
			return nil, invalid(err)
		}
		return uint(v), nil
	case TypeFloat32:
		v, err := strconv.ParseFloat(token, 32)
		if err != nil {
			return nil, invalid(err)
		}
		return float32(v), nil
	case TypeFloat64:
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, invalid(err)
		}
		return v, nil
	case TypeBool:
		v, err := strconv.ParseBool(token)
		if err != nil {
			return nil, invalid(err)
		}
		return v, nil
	default:
		return nil, ErrUnsupportedType
	}
}

// CoerceAll converts every token against its parameter. It stops at the
// first failure and returns no values, so a handler never sees a partial
// binding.
func CoerceAll(tokens []string, params []Param) ([]any, error) {
	if len(tokens) != len(params) {
		return nil, fmt.Errorf("%w: got %d arguments, want %d", ErrInvalidArgument, len(tokens), len(params))
	}

	values := make([]any, len(params))
	for i, p := range params {
		v, err := Coerce(tokens[i], p.Type)
		if err != nil {
			return nil, &CoercionError{Index: i, Token: tokens[i], Type: p.Type, Err: err}
		}
		values[i] = v
	}
	return values, nil
}

// invalid keeps strconv's reason (syntax or range) while marking the error
// as ErrInvalidArgument.
func invalid(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, numErr.Err)
	}
	return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
}
