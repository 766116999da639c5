package testutils

import "github.com/argus-labs/godesc/pkg/assert"

const maxChoices = 32

// Enum walks every combination of the choices a test body makes. Each pass through the body draws
// values with Intn, Bool or Pick; Next then advances the rightmost choice that still has room and
// resets the ones after it, so the passes enumerate the choices in lexicographic order.
//
//	for e := testutils.NewEnum(); e.Next(); {
//		n := e.Intn(3)
//		...
//	}
//
// See https://matklad.github.io/2021/11/07/generate-all-the-things.html.
type Enum struct {
	started bool
	values  []uint32
	bounds  []uint32
	pos     int
}

func NewEnum() *Enum {
	return &Enum{}
}

// Next reports whether another combination is left and prepares it.
func (e *Enum) Next() bool {
	if !e.started {
		e.started = true
		return true
	}
	for i := len(e.values) - 1; i >= 0; i-- {
		if e.values[i] < e.bounds[i] {
			e.values[i]++
			e.values = e.values[:i+1]
			e.bounds = e.bounds[:i+1]
			e.pos = 0
			return true
		}
	}
	return false
}

func (e *Enum) choose(bound uint32) uint32 {
	assert.That(e.pos < maxChoices, "enum: more than %d choices in one pass", maxChoices)
	if e.pos == len(e.values) {
		e.values = append(e.values, 0)
		e.bounds = append(e.bounds, 0)
	}
	e.bounds[e.pos] = bound
	v := e.values[e.pos]
	e.pos++
	return v
}

// Intn returns a value in [0, bound].
func (e *Enum) Intn(bound int) int {
	assert.That(bound >= 0, "enum: negative bound %d", bound)
	return int(e.choose(uint32(bound))) //nolint:gosec // bounds are small
}

func (e *Enum) Bool() bool {
	return e.Intn(1) == 1
}

// Pick returns one element of s.
func Pick[T any](e *Enum, s []T) T {
	assert.That(len(s) > 0, "enum: pick from empty slice")
	return s[e.Intn(len(s)-1)]
}

// Permute reorders s in place, covering every permutation across passes.
func Permute[T any](e *Enum, s []T) {
	for i := 0; i < len(s)-1; i++ {
		j := i + e.Intn(len(s)-1-i)
		s[i], s[j] = s[j], s[i]
	}
}
