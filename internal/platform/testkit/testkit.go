// Package testkit holds small helpers shared by package tests
package testkit

import (
	"strings"
	"sync"
	"testing"
)

var seamMu sync.Mutex

// Swap replaces a package-level seam for the duration of t
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// Serial holds a process-wide lock until t ends; use it in tests that Swap shared seams
func Serial(t *testing.T) {
	t.Helper()
	seamMu.Lock()
	t.Cleanup(seamMu.Unlock)
}

// MustPanic fails t unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
}

// MustContain fails t when haystack lacks needle, printing a bounded tail of haystack
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		return
	}
	tail := haystack
	if len(tail) > 2048 {
		tail = "..." + tail[len(tail)-2048:]
	}
	t.Fatalf("expected output to contain %q\n--- output ---\n%s", needle, tail)
}
