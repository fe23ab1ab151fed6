// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func nop0() Handler {
	return Func0(func() error { return nil })
}

func nopN(arity int) Handler {
	params := make([]Param, arity)
	for i := range params {
		params[i] = Param{Name: fmt.Sprintf("p%d", i), Type: TypeString}
	}
	return Raw(params, func([]any) error { return nil })
}

// =============================================================================
// NORMALIZATION
// =============================================================================

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"help", "help"},
		{"  help  ", "help"},
		{"spawn enemy", "spawn_enemy"},
		{"a\tb c", "a_b_c"},
		{"Help", "Help"},
		{"café", "café"},
		{"   ", ""},
	}

	for _, tc := range tests {
		got := NormalizeName(tc.input)
		if got != tc.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// =============================================================================
// REGISTER / RESOLVE
// =============================================================================

func TestRegistry_RegisterAndResolve(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register("spawn enemy", Func1(func(int) error { return nil }).Named("count")))

	d, ok := r.Resolve("spawn_enemy", 1)
	require.True(t, ok)
	assert.Equal(t, "spawn_enemy", d.Name)
	assert.Equal(t, []Param{{Name: "count", Type: TypeInt}}, d.Params)
	assert.Equal(t, "spawn_enemy <count:int>", d.Signature())
	assert.Equal(t, "<count:int>", d.ParamsDisplay())

	_, ok = r.Resolve("spawn_enemy", 0)
	assert.False(t, ok, "arity is part of the identity")

	_, ok = r.Resolve("Spawn_enemy", 1)
	assert.False(t, ok, "names are case-sensitive")
}

func TestRegistry_DuplicateKeepsOriginal(t *testing.T) {
	var logs bytes.Buffer
	r := NewRegistry(log.New(&logs))

	first := Func1(func(string) error { return nil }).Describe("first")
	second := Func1(func(int) error { return nil }).Describe("second")

	require.NoError(t, r.Register("echo", first))
	err := r.Register("echo", second)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateCommand)
	var regErr *RegisterError
	require.True(t, errors.As(err, &regErr))
	assert.Equal(t, "echo", regErr.Name)
	assert.Equal(t, 1, regErr.Arity)

	d, ok := r.Resolve("echo", 1)
	require.True(t, ok)
	assert.Equal(t, "first", d.Description)
	assert.Equal(t, TypeString, d.Params[0].Type)
	assert.Contains(t, logs.String(), "already registered")
}

func TestRegistry_SameNameDifferentArity(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register("help", nop0()))
	require.NoError(t, r.Register("help", Func1(func(string) error { return nil })))

	assert.Equal(t, 2, r.Len())
	ds := r.Lookup("help")
	require.Len(t, ds, 2)
	assert.Equal(t, 0, ds[0].Arity())
	assert.Equal(t, 1, ds[1].Arity())
}

func TestRegistry_RejectsInvalid(t *testing.T) {
	r := NewRegistry(nil)
	assert.ErrorIs(t, r.Register("  ", nop0()), ErrInvalidName)
	assert.ErrorIs(t, r.Register("ok", Handler{}), ErrInvalidHandler)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_UnregisterRemovesAllArities(t *testing.T) {
	r := NewRegistry(nil)
	for arity := 0; arity <= 2; arity++ {
		require.NoError(t, r.Register("foo", nopN(arity)))
	}
	require.NoError(t, r.Register("bar", nop0()))

	assert.Equal(t, 3, r.Unregister("foo"))
	for n := 0; n <= 3; n++ {
		_, ok := r.Resolve("foo", n)
		assert.False(t, ok, "foo/%d should be gone", n)
	}
	_, ok := r.Resolve("bar", 0)
	assert.True(t, ok)
	assert.Equal(t, 0, r.Unregister("foo"))
}

func TestRegistry_ListSorted(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register("zeta", nop0()))
	require.NoError(t, r.Register("alpha", nopN(2)))
	require.NoError(t, r.Register("alpha", nop0()))
	require.NoError(t, r.Register("mid", nop0()))

	var got []string
	for d := range r.All() {
		got = append(got, fmt.Sprintf("%s/%d", d.Name, d.Arity()))
	}
	assert.Equal(t, []string{"alpha/0", "alpha/2", "mid/0", "zeta/0"}, got)
}

func TestRegistry_AllStopsEarly(t *testing.T) {
	r := NewRegistry(nil)
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, r.Register(name, nop0()))
	}

	var seen int
	for range r.All() {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

// =============================================================================
// PROPERTIES
// =============================================================================

func TestRegistry_ResolveProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := NewRegistry(nil)
		type key struct {
			name  string
			arity int
		}
		registered := map[key]string{}

		n := rapid.IntRange(1, 30).Draw(t, "n")
		for i := 0; i < n; i++ {
			k := key{
				name:  rapid.SampledFrom([]string{"a", "b", "help", "echo", "spawn"}).Draw(t, "name"),
				arity: rapid.IntRange(0, 4).Draw(t, "arity"),
			}
			desc := fmt.Sprintf("reg-%d", i)
			err := r.Register(k.name, nopN(k.arity).Describe(desc))
			if _, dup := registered[k]; dup {
				if !errors.Is(err, ErrDuplicateCommand) {
					t.Fatalf("duplicate %v accepted", k)
				}
				continue
			}
			if err != nil {
				t.Fatalf("register %v: %v", k, err)
			}
			registered[k] = desc
		}

		for k, desc := range registered {
			d, ok := r.Resolve(k.name, k.arity)
			if !ok {
				t.Fatalf("%v not resolvable", k)
			}
			if d.Description != desc {
				t.Fatalf("%v resolved to %q, want original %q", k, d.Description, desc)
			}
		}
		if r.Len() != len(registered) {
			t.Fatalf("Len() = %d, want %d", r.Len(), len(registered))
		}
	})
}

func TestHandlerNamed(t *testing.T) {
	h := Func2(func(string, float64) error { return nil })
	named := h.Named("who", "", "extra")

	assert.Equal(t, "arg1", h.Params()[0].Name, "Named must not modify the original")
	params := named.Params()
	assert.Equal(t, "who", params[0].Name)
	assert.Equal(t, "arg2", params[1].Name)
	assert.Equal(t, TypeFloat64, params[1].Type)
}

func TestTagOf(t *testing.T) {
	assert.Equal(t, TypeString, TagOf[string]())
	assert.Equal(t, TypeInt, TagOf[int]())
	assert.Equal(t, TypeInt64, TagOf[int64]())
	assert.Equal(t, TypeUint, TagOf[uint]())
	assert.Equal(t, TypeFloat32, TagOf[float32]())
	assert.Equal(t, TypeFloat64, TagOf[float64]())
	assert.Equal(t, TypeBool, TagOf[bool]())
	assert.True(t, strings.HasPrefix(TypeTag(99).String(), "type("))
}
