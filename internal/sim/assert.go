//go:build !debug

package sim

// assertf checks a programming invariant. Release builds skip the check;
// build with -tags debug to panic on violations.
func assertf(bool, string, ...any) {}
