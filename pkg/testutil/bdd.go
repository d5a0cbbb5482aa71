package testutil

import "testing"

// Given, When, and Then wrap t.Run with scenario-style prefixes so smoke
// tests read as behavior descriptions. The full godog suite lives in e2e/;
// these cover the lightweight in-process cases.
func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Given "+desc, fn)
}

func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("When "+desc, fn)
}

func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Then "+desc, fn)
}
