// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logbuf

import "testing"

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input   string
		want    Severity
		wantErr bool
	}{
		{"info", Info, false},
		{"", Info, false},
		{"debug", Info, false},
		{"WARN", Warning, false},
		{"warning", Warning, false},
		{" error ", Error, false},
		{"fatal", Fatal, false},
		{"loud", Info, true},
	}

	for _, tc := range tests {
		got, err := ParseSeverity(tc.input)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseSeverity(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseSeverity(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestSeverityUnmarshalText(t *testing.T) {
	var s Severity
	if err := s.UnmarshalText([]byte("warn")); err != nil || s != Warning {
		t.Errorf("UnmarshalText(warn) = %v, %v", s, err)
	}
	if err := s.UnmarshalText([]byte("nope")); err == nil {
		t.Error("UnmarshalText(nope) should fail")
	}
}

func TestSeverityString(t *testing.T) {
	if got := Severity(42).String(); got != "severity(42)" {
		t.Errorf("String() = %q", got)
	}
	if !Fatal.AtLeast(Error) || Warning.AtLeast(Error) {
		t.Error("AtLeast ordering is wrong")
	}
}
