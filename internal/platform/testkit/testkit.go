// Package testkit provides testing helpers
package testkit

import (
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"
)

// MustPanic asserts that fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
}

// MustContain asserts that haystack contains needle
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q to contain %q", haystack, needle)
	}
}

// DecodeJSON decodes r into T or fails the test
func DecodeJSON[T any](t *testing.T, r io.Reader) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	return v
}

// FixedClock returns a now func pinned to ts
func FixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}
