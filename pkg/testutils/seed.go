// Package testutils holds generators for descriptor tests.
package testutils

import (
	"math/rand/v2"
	"os"
	"strconv"
	"testing"
	"time"
)

// Seed drives every random generator in a test binary. Set TEST_SEED to replay a failure.
var Seed uint64 //nolint:gochecknoglobals // shared so a failing run can be replayed

func init() { //nolint:gochecknoinits // seed must be fixed before any test starts
	Seed = uint64(time.Now().UnixNano()) //nolint:gosec // overflow is fine for a seed
	if env := os.Getenv("TEST_SEED"); env != "" {
		if parsed, err := strconv.ParseUint(env, 0, 64); err == nil {
			Seed = parsed
		}
	}
}

// NewRand returns a generator seeded from Seed and logs how to reproduce the run.
func NewRand(t *testing.T) *rand.Rand {
	t.Helper()
	t.Logf("to reproduce: TEST_SEED=0x%x", Seed)
	return rand.New(rand.NewPCG(Seed, Seed^0x9e3779b97f4a7c15)) //nolint:gosec // tests only
}
