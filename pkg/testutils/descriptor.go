package testutils

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/argus-labs/godesc/pkg/descriptor"
)

// RandString returns a random alphanumeric string of length n.
func RandString(r *rand.Rand, n int) string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = chars[r.IntN(len(chars))]
	}
	return string(b)
}

// RandCoord returns a coordinate with millimetre precision in [-1000, 1000].
func RandCoord(r *rand.Rand) float64 {
	return float64(r.IntN(2_000_001)-1_000_000) / 1000
}

func RandVector3(r *rand.Rand) descriptor.Vector3 {
	return descriptor.Vector3{X: RandCoord(r), Y: RandCoord(r), Z: RandCoord(r)}
}

// RandQuat returns a random unit quaternion.
func RandQuat(r *rand.Rand) descriptor.Quat {
	for {
		q := descriptor.Quat{X: r.NormFloat64(), Y: r.NormFloat64(), Z: r.NormFloat64(), W: r.NormFloat64()}
		n := q.Norm()
		if n < 1e-6 {
			continue
		}
		return descriptor.Quat{X: q.X / n, Y: q.Y / n, Z: q.Z / n, W: q.W / n}
	}
}

// RandProperty returns a property of a random type whose value decodes.
func RandProperty(r *rand.Rand, id string) descriptor.Property {
	f := func() string { return strconv.FormatFloat(RandCoord(r), 'f', -1, 64) }

	p := descriptor.Property{ID: id}
	switch r.IntN(7) {
	case 0:
		p.Type, p.Value = descriptor.PropertyNumber, f()
	case 1:
		p.Type, p.Value = descriptor.PropertyHash, RandString(r, 6)
	case 2:
		p.Type, p.Value = descriptor.PropertyURL, "#"+RandString(r, 6)
	case 3:
		p.Type, p.Value = descriptor.PropertyVector3, f()+", "+f()+", "+f()
	case 4:
		p.Type, p.Value = descriptor.PropertyVector4, f()+", "+f()+", "+f()+", "+f()
	case 5:
		q := RandQuat(r)
		p.Type = descriptor.PropertyQuat
		p.Value = fmt.Sprintf("%g, %g, %g, %g", q.X, q.Y, q.Z, q.W)
	default:
		p.Type, p.Value = descriptor.PropertyBoolean, strconv.FormatBool(r.IntN(2) == 1)
	}
	return p
}

// RandComponent returns a script component with up to three properties.
func RandComponent(r *rand.Rand, id string) descriptor.Component {
	c := descriptor.Component{
		ID:        id,
		Component: "/scripts/" + RandString(r, 8) + ".script",
		Position:  RandVector3(r),
		Rotation:  RandQuat(r),
	}
	if r.IntN(2) == 0 {
		c.Scale = RandVector3(r)
	}
	for i := range r.IntN(4) {
		c.Properties = append(c.Properties, RandProperty(r, "prop"+strconv.Itoa(i)))
	}
	return c
}

// RandEmbedded returns an embedded component of one of the built-in types with well-formed data.
func RandEmbedded(r *rand.Rand, id string) descriptor.EmbeddedComponent {
	e := descriptor.EmbeddedComponent{ID: id, Position: RandVector3(r), Rotation: descriptor.IdentityQuat()}
	name := RandString(r, 8)
	switch r.IntN(4) {
	case 0:
		e.Type = descriptor.TypeSprite
		e.Data = fmt.Sprintf("default_animation: %q\nmaterial: %q\ntextures {\n  sampler: \"texture_sampler\"\n  texture: %q\n}\n",
			RandString(r, 5), descriptor.DefaultSpriteMaterial, "/atlases/"+name+".atlas")
	case 1:
		e.Type = descriptor.TypeFactory
		e.Data = fmt.Sprintf("prototype: %q\n", "/objects/"+name+".go")
	case 2:
		e.Type = descriptor.TypeCollectionProxy
		e.Data = fmt.Sprintf("collection: %q\n", "/levels/"+name+".collection")
	default:
		e.Type = descriptor.TypeSound
		e.Data = fmt.Sprintf("sound: %q\nlooping: %d\n", "/sounds/"+name+".wav", r.IntN(2))
	}
	return e
}

// RandGameObject returns a decodable object with up to four entries of each kind, interleaved at
// random. Ids are unique.
func RandGameObject(r *rand.Rand) *descriptor.GameObject {
	g := &descriptor.GameObject{}
	nc, ne := r.IntN(5), r.IntN(5)
	for i := 0; i < nc+ne; i++ {
		// Pick the remaining kind in proportion to how many of it are left.
		if r.IntN(nc+ne-i) < nc-len(g.Components) {
			g.AddComponent(RandComponent(r, "script"+strconv.Itoa(len(g.Components))))
		} else {
			g.AddEmbedded(RandEmbedded(r, "embedded"+strconv.Itoa(len(g.EmbeddedComponents))))
		}
	}
	return g
}
