package descriptor

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// UnitTolerance is the allowed deviation of a rotation quaternion's norm from 1.
const UnitTolerance = 1e-3

type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Vector4 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Quat is a rotation quaternion. The zero value is not a valid rotation, use IdentityQuat.
type Quat struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// UnitScale is the scale of an entry without a scale block.
func UnitScale() Vector3 {
	return Vector3{X: 1, Y: 1, Z: 1}
}

// ScaleOrUnit treats the zero Vector3 as an unset scale. Decoded entries always carry a scale;
// objects built in code may leave it zero.
func ScaleOrUnit(v Vector3) Vector3 {
	if v == (Vector3{}) {
		return UnitScale()
	}
	return v
}

func IdentityQuat() Quat {
	return Quat{W: 1}
}

func (q Quat) Norm() float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// IsUnit reports whether the norm of q is within UnitTolerance of 1.
func (q Quat) IsUnit() bool {
	return math.Abs(q.Norm()-1) <= UnitTolerance
}

func (q Quat) IsIdentity() bool {
	return q == IdentityQuat()
}

// parseFloats splits a comma separated list of exactly n floats, e.g. "1.0, 2.0, 3.0".
func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, eris.Errorf("expected %d comma separated numbers, got %d", n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, eris.Errorf("invalid number %q", strings.TrimSpace(p))
		}
		out[i] = v
	}
	return out, nil
}
