// SPDX-License-Identifier: MIT
//
// Package assert reports precondition violations in the primitive packages.
// Builds tagged with "debug" panic on a failed check; regular builds compile
// the checks away and leave the caller to return its documented fallback.
package assert

// Enabled reports whether assertions are compiled in.
const Enabled = enabled

// That panics with msg when cond is false and assertions are enabled.
func That(cond bool, msg string) {
	if enabled && !cond {
		panic("assertion failed: " + msg)
	}
}
