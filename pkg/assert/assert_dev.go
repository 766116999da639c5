//go:build !release

package assert

import "fmt"

// That panics with the formatted message when cond is false. Release builds compile it out.
func That(cond bool, format string, args ...any) { //nolint:goprintffuncname // it's ok
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

// Unreachable marks a branch that a well-formed caller can never take.
func Unreachable(format string, args ...any) { //nolint:goprintffuncname // it's ok
	panic("unreachable: " + fmt.Sprintf(format, args...))
}
