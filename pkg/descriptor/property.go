package descriptor

import (
	"strconv"
	"strings"

	"github.com/argus-labs/godesc/pkg/ddf"
	"github.com/rotisserie/eris"
)

// PropertyType tags how a script property value string is interpreted.
type PropertyType string

const (
	PropertyNumber  PropertyType = "PROPERTY_TYPE_NUMBER"
	PropertyHash    PropertyType = "PROPERTY_TYPE_HASH"
	PropertyURL     PropertyType = "PROPERTY_TYPE_URL"
	PropertyVector3 PropertyType = "PROPERTY_TYPE_VECTOR3"
	PropertyVector4 PropertyType = "PROPERTY_TYPE_VECTOR4"
	PropertyQuat    PropertyType = "PROPERTY_TYPE_QUAT"
	PropertyBoolean PropertyType = "PROPERTY_TYPE_BOOLEAN"
)

var propertyTypes = map[PropertyType]struct{}{
	PropertyNumber:  {},
	PropertyHash:    {},
	PropertyURL:     {},
	PropertyVector3: {},
	PropertyVector4: {},
	PropertyQuat:    {},
	PropertyBoolean: {},
}

func (t PropertyType) IsValid() bool {
	_, ok := propertyTypes[t]
	return ok
}

// Property overrides a script property on a component.
type Property struct {
	ID    string       `json:"id"`
	Value string       `json:"value"`
	Type  PropertyType `json:"type"`

	Pos ddf.Position `json:"-"`
}

// Decode interprets Value according to Type. The result is a float64, string, bool, Vector3,
// Vector4 or Quat.
func (p Property) Decode() (any, error) {
	switch p.Type {
	case PropertyNumber:
		v, err := strconv.ParseFloat(strings.TrimSpace(p.Value), 64)
		if err != nil {
			return nil, eris.Errorf("property %q: invalid number %q", p.ID, p.Value)
		}
		return v, nil
	case PropertyHash, PropertyURL:
		return p.Value, nil
	case PropertyBoolean:
		v, err := strconv.ParseBool(strings.TrimSpace(p.Value))
		if err != nil {
			return nil, eris.Errorf("property %q: invalid boolean %q", p.ID, p.Value)
		}
		return v, nil
	case PropertyVector3:
		f, err := parseFloats(p.Value, 3)
		if err != nil {
			return nil, eris.Wrapf(err, "property %q", p.ID)
		}
		return Vector3{X: f[0], Y: f[1], Z: f[2]}, nil
	case PropertyVector4:
		f, err := parseFloats(p.Value, 4)
		if err != nil {
			return nil, eris.Wrapf(err, "property %q", p.ID)
		}
		return Vector4{X: f[0], Y: f[1], Z: f[2], W: f[3]}, nil
	case PropertyQuat:
		f, err := parseFloats(p.Value, 4)
		if err != nil {
			return nil, eris.Wrapf(err, "property %q", p.ID)
		}
		return Quat{X: f[0], Y: f[1], Z: f[2], W: f[3]}, nil
	default:
		return nil, eris.Errorf("property %q: unknown type %q", p.ID, p.Type)
	}
}
