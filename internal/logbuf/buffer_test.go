// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logbuf

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// =============================================================================
// PUSH / EVICTION
// =============================================================================

func TestPushAssignsSequence(t *testing.T) {
	b := New(4)
	first := b.Push("a", Info)
	second := b.Push("b", Warning)

	assert.Equal(t, uint64(1), first.Seq)
	assert.Equal(t, uint64(2), second.Seq)
	assert.Equal(t, Warning, second.Severity)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 2, b.Live())
}

func TestPushEvictsOldest(t *testing.T) {
	b := New(3)
	var handles []*Handle
	for i := 0; i < 5; i++ {
		handles = append(handles, b.Push(fmt.Sprintf("line %d", i), Info).Handle)
	}

	entries := b.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "line 2", entries[0].Text)
	assert.Equal(t, "line 4", entries[2].Text)

	assert.False(t, handles[0].Valid())
	assert.False(t, handles[1].Valid())
	assert.True(t, handles[2].Valid())
	assert.Equal(t, 3, b.Live())
}

func TestEvictionRunsReleaseCallback(t *testing.T) {
	b := New(1)
	e := b.Push("first", Info)

	released := false
	require.True(t, e.Handle.Attach("rendered", func() { released = true }))
	assert.Equal(t, "rendered", e.Handle.Value())

	b.Push("second", Info)
	assert.True(t, released, "release callback should run synchronously on eviction")
	assert.Nil(t, e.Handle.Value())
	assert.False(t, e.Handle.Attach("again", nil), "released handle must refuse attachments")
}

func TestClear(t *testing.T) {
	b := New(5)
	var releases int
	for i := 0; i < 4; i++ {
		e := b.Push("x", Info)
		e.Handle.Attach(i, func() { releases++ })
	}

	b.Clear()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Live())
	assert.Equal(t, 4, releases)

	// Safe to call again with zero entries.
	b.Clear()
	assert.Equal(t, 0, b.Len())
}

func TestClearKeepsSequenceMonotonic(t *testing.T) {
	b := New(2)
	b.Push("a", Info)
	b.Push("b", Info)
	b.Clear()

	e := b.Push("c", Info)
	assert.Equal(t, uint64(3), e.Seq)
	assert.Equal(t, uint64(3), b.LastSeq())
}

func TestEntriesSince(t *testing.T) {
	b := New(10)
	b.Push("a", Info)
	mark := b.LastSeq()
	b.Push("b", Error)
	b.Push("c", Info)

	got := b.EntriesSince(mark)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Text)
	assert.Equal(t, "c", got[1].Text)
	assert.Empty(t, b.EntriesSince(b.LastSeq()))
}

func TestWriteSplitsLines(t *testing.T) {
	b := New(10)
	n, err := b.Write([]byte("one\r\n\ntwo\n"))
	require.NoError(t, err)
	assert.Equal(t, len("one\r\n\ntwo\n"), n)

	entries := b.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "one", entries[0].Text)
	assert.Equal(t, "two", entries[1].Text)
}

func TestVersionChangesOnMutation(t *testing.T) {
	b := New(2)
	v0 := b.Version()
	b.Push("a", Info)
	v1 := b.Version()
	assert.NotEqual(t, v0, v1)

	b.Clear()
	assert.NotEqual(t, v1, b.Version())

	v2 := b.Version()
	b.Clear()
	assert.Equal(t, v2, b.Version(), "clearing an empty buffer is not a mutation")
}

// =============================================================================
// CAPACITY
// =============================================================================

func TestNewDefaultsCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, New(0).Capacity())
	assert.Equal(t, DefaultCapacity, New(-3).Capacity())
}

func TestSetCapacityShrinks(t *testing.T) {
	b := New(5)
	var handles []*Handle
	for i := 0; i < 5; i++ {
		handles = append(handles, b.Push(fmt.Sprint(i), Info).Handle)
	}

	require.NoError(t, b.SetCapacity(2))
	entries := b.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "3", entries[0].Text)
	assert.Equal(t, "4", entries[1].Text)
	assert.False(t, handles[2].Valid())
	assert.Equal(t, 2, b.Live())

	b.Push("5", Info)
	entries = b.Entries()
	assert.Equal(t, "4", entries[0].Text)
	assert.Equal(t, "5", entries[1].Text)
}

func TestSetCapacityGrows(t *testing.T) {
	b := New(2)
	b.Push("a", Info)
	b.Push("b", Info)
	require.NoError(t, b.SetCapacity(4))

	b.Push("c", Info)
	b.Push("d", Info)
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, "a", b.Entries()[0].Text)
}

func TestSetCapacityRejectsNonPositive(t *testing.T) {
	b := New(2)
	assert.ErrorIs(t, b.SetCapacity(0), ErrInvalidCapacity)
	assert.Equal(t, 2, b.Capacity())
}

// =============================================================================
// PROPERTIES
// =============================================================================

func TestPushBeyondCapacityProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 64).Draw(t, "capacity")
		extra := rapid.IntRange(1, 64).Draw(t, "extra")

		b := New(capacity)
		for i := 0; i < capacity+extra; i++ {
			b.Push(fmt.Sprint(i), Info)
		}

		entries := b.Entries()
		if len(entries) != capacity {
			t.Fatalf("len = %d, want %d", len(entries), capacity)
		}
		if b.Live() != capacity {
			t.Fatalf("live handles = %d, want %d", b.Live(), capacity)
		}
		// The oldest `extra` entries are gone and survivors have no gaps.
		if entries[0].Seq != uint64(extra+1) {
			t.Fatalf("oldest seq = %d, want %d", entries[0].Seq, extra+1)
		}
		for i := 1; i < len(entries); i++ {
			if entries[i].Seq != entries[i-1].Seq+1 {
				t.Fatalf("gap between seq %d and %d", entries[i-1].Seq, entries[i].Seq)
			}
		}
	})
}

func TestCapacityInvariantProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := New(rapid.IntRange(1, 16).Draw(t, "capacity"))
		ops := rapid.SliceOf(rapid.IntRange(0, 9)).Draw(t, "ops")

		for _, op := range ops {
			switch {
			case op == 0:
				b.Clear()
			case op == 1:
				_ = b.SetCapacity(rapid.IntRange(1, 16).Draw(t, "resize"))
			default:
				b.Push("x", Severity(op%4))
			}
			if b.Len() > b.Capacity() {
				t.Fatalf("len %d exceeds capacity %d", b.Len(), b.Capacity())
			}
			if b.Live() != b.Len() {
				t.Fatalf("live %d != len %d", b.Live(), b.Len())
			}
		}
	})
}

// =============================================================================
// CONCURRENCY
// =============================================================================

func TestConcurrentPushAndRead(t *testing.T) {
	b := New(16)
	var wg sync.WaitGroup

	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				b.Push("x", Info)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			entries := b.Entries()
			for j := 1; j < len(entries); j++ {
				if entries[j].Seq <= entries[j-1].Seq {
					t.Errorf("entries out of order: %d after %d", entries[j].Seq, entries[j-1].Seq)
					return
				}
			}
		}
	}()
	wg.Wait()

	assert.Equal(t, 16, b.Len())
	assert.Equal(t, uint64(800), b.LastSeq())
}
