// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

func hintRegistry(t *testing.T, names ...string) *Registry {
	t.Helper()
	r := NewRegistry(nil)
	for _, name := range names {
		if err := r.Register(name, nop0()); err != nil {
			t.Fatalf("Register(%q): %v", name, err)
		}
	}
	return r
}

// =============================================================================
// FILTER
// =============================================================================

func TestHintIndex_Filter(t *testing.T) {
	x := NewHintIndex(hintRegistry(t, "help", "echo", "hexdump"))

	got := x.Filter("he")
	want := []Hint{
		{Name: "help", Signature: "help"},
		{Name: "hexdump", Signature: "hexdump"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Filter(he) mismatch (-want +got):\n%s", diff)
	}
}

func TestHintIndex_FilterIsCaseSensitive(t *testing.T) {
	x := NewHintIndex(hintRegistry(t, "Help", "help"))
	got := x.Filter("H")
	if len(got) != 1 || got[0].Name != "Help" {
		t.Errorf("Filter(H) = %v, want only Help", got)
	}
}

func TestHintIndex_FilterShowsOverloads(t *testing.T) {
	r := hintRegistry(t, "help")
	if err := r.Register("help", Func1(func(string) error { return nil }).Named("command")); err != nil {
		t.Fatal(err)
	}

	got := NewHintIndex(r).Filter("help")
	want := []Hint{
		{Name: "help", Signature: "help"},
		{Name: "help", Signature: "help <command:string>"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Filter(help) mismatch (-want +got):\n%s", diff)
	}
}

// =============================================================================
// CYCLE
// =============================================================================

func TestCycle(t *testing.T) {
	tests := []struct {
		name    string
		current int
		count   int
		dir     Direction
		want    int
	}{
		{"none selected forward", -1, 3, Forward, 0},
		{"middle forward", 1, 3, Forward, 2},
		{"last wraps forward", 2, 3, Forward, 0},
		{"first wraps backward", 0, 3, Backward, 2},
		{"middle backward", 2, 3, Backward, 1},
		{"none selected backward", -1, 3, Backward, 2},
		{"empty forward", -1, 0, Forward, -1},
		{"empty backward", 0, 0, Backward, -1},
		{"stale index forward", 7, 3, Forward, 0},
		{"stale index backward", 7, 3, Backward, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Cycle(tc.current, tc.count, tc.dir); got != tc.want {
				t.Errorf("Cycle(%d, %d, %v) = %d, want %d", tc.current, tc.count, tc.dir, got, tc.want)
			}
		})
	}
}

func TestCycleProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 50).Draw(t, "count")
		if Cycle(-1, count, Forward) != 0 {
			t.Fatal("-1 forward must land on 0")
		}
		if Cycle(count-1, count, Forward) != 0 {
			t.Fatal("last forward must wrap to 0")
		}
		if Cycle(0, count, Backward) != count-1 {
			t.Fatal("0 backward must wrap to count-1")
		}

		// count forward steps from any index return to it.
		start := rapid.IntRange(0, count-1).Draw(t, "start")
		i := start
		for n := 0; n < count; n++ {
			i = Cycle(i, count, Forward)
		}
		if i != start {
			t.Fatalf("full forward cycle ended at %d, want %d", i, start)
		}
	})
}

// =============================================================================
// SELECTION STATE
// =============================================================================

func TestHintIndex_RefreshAndSelect(t *testing.T) {
	x := NewHintIndex(hintRegistry(t, "help", "hexdump", "echo"))

	if !x.Refresh("he") {
		t.Fatal("first refresh should report a change")
	}
	if x.Len() != 2 || x.Selected() != -1 {
		t.Fatalf("after refresh: len=%d selected=%d", x.Len(), x.Selected())
	}
	if x.Refresh("he") {
		t.Error("same input should not report a change")
	}

	x.Next()
	if name, ok := x.Confirm(); !ok || name != "help" {
		t.Errorf("Confirm() = %q, %v, want help", name, ok)
	}
	x.Next()
	x.Next()
	if x.Selected() != 0 {
		t.Errorf("Selected() = %d after wrap, want 0", x.Selected())
	}
	x.Prev()
	if h, _ := x.Current(); h.Name != "hexdump" {
		t.Errorf("Prev() selected %q, want hexdump", h.Name)
	}
}

func TestHintIndex_RefreshFollowsFirstWord(t *testing.T) {
	x := NewHintIndex(hintRegistry(t, "echo", "exit"))

	x.Refresh("ec")
	x.Next()
	if x.Refresh("echo hello") {
		t.Error("typing arguments should not change the list for the same command")
	}
	if x.Selected() != 0 {
		t.Error("selection should survive an unchanged list")
	}

	x.Refresh("e")
	if x.Len() != 2 || x.Selected() != -1 {
		t.Errorf("changed list should reset selection: len=%d selected=%d", x.Len(), x.Selected())
	}
}

func TestHintIndex_EmptyInputAndConfirmWithoutSelection(t *testing.T) {
	x := NewHintIndex(hintRegistry(t, "help"))

	x.Refresh("")
	if x.Len() != 0 {
		t.Errorf("empty input should have no hints, got %d", x.Len())
	}
	if x.Next() != -1 {
		t.Error("Next on an empty list must stay at -1")
	}
	if _, ok := x.Confirm(); ok {
		t.Error("Confirm without a selection should fail")
	}

	x.Refresh("h")
	x.Reset()
	if x.Len() != 0 || x.Text() != "" {
		t.Error("Reset should clear hints and text")
	}
}
