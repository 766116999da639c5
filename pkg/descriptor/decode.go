package descriptor

import (
	"io"
	"os"

	"github.com/argus-labs/godesc/pkg/ddf"
	"github.com/rotisserie/eris"
)

var (
	ErrUnknownField = eris.New("unknown field")
	ErrMissingField = eris.New("missing required field")
	ErrDuplicateID  = eris.New("duplicate id")
	ErrInvalidValue = eris.New("invalid value")
)

const (
	fieldComponents         = "components"
	fieldEmbeddedComponents = "embedded_components"
)

// Load reads and decodes the descriptor at path.
func Load(path string) (*GameObject, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open descriptor %s", path)
	}
	defer f.Close()
	return Parse(path, f)
}

// Parse reads a descriptor from r. name is used in error positions and as GameObject.Name.
func Parse(name string, r io.Reader) (*GameObject, error) {
	msg, err := ddf.Parse(name, r)
	if err != nil {
		return nil, err
	}
	return Decode(name, msg)
}

// ParseBytes is Parse for in-memory sources.
func ParseBytes(name string, src []byte) (*GameObject, error) {
	msg, err := ddf.ParseString(name, string(src))
	if err != nil {
		return nil, err
	}
	return Decode(name, msg)
}

// Decode builds a GameObject from a parsed document. It rejects unknown fields, missing required
// fields, unknown property types, duplicate ids and malformed embedded data.
func Decode(name string, msg *ddf.Message) (*GameObject, error) {
	g := &GameObject{Name: name}
	if unknown := msg.Unknown(fieldComponents, fieldEmbeddedComponents); unknown != nil {
		return nil, ddf.Errorf(unknown.Pos, "unknown field %q in game object", unknown.Name).WithCause(ErrUnknownField)
	}

	seen := make(map[string]ddf.Position)
	checkID := func(id string, pos ddf.Position) error {
		if first, dup := seen[id]; dup {
			return ddf.Errorf(pos, "duplicate id %q (first defined at %s)", id, first).WithCause(ErrDuplicateID)
		}
		seen[id] = pos
		return nil
	}

	for _, f := range msg.Fields {
		block, err := f.AsMessage()
		if err != nil {
			return nil, err
		}
		switch f.Name {
		case fieldComponents:
			c, err := decodeComponent(f.Pos, block)
			if err != nil {
				return nil, err
			}
			if err := checkID(c.ID, c.Pos); err != nil {
				return nil, err
			}
			g.Components = append(g.Components, c)
			g.order = append(g.order, entryRef{kind: KindComponent, index: len(g.Components) - 1})
		case fieldEmbeddedComponents:
			e, err := decodeEmbedded(f.Pos, block)
			if err != nil {
				return nil, err
			}
			if err := checkID(e.ID, e.Pos); err != nil {
				return nil, err
			}
			g.EmbeddedComponents = append(g.EmbeddedComponents, e)
			g.order = append(g.order, entryRef{kind: KindEmbedded, index: len(g.EmbeddedComponents) - 1})
		}
	}
	return g, nil
}

func requireString(pos ddf.Position, m *ddf.Message, block, name string) (string, error) {
	f := m.Get(name)
	if f == nil {
		return "", ddf.Errorf(pos, "%s entry is missing required field %q", block, name).WithCause(ErrMissingField)
	}
	v, err := f.AsString()
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", ddf.Errorf(f.Pos, "%s field %q cannot be empty", block, name).WithCause(ErrMissingField)
	}
	return v, nil
}

func decodeComponent(pos ddf.Position, m *ddf.Message) (Component, error) {
	c := Component{Pos: pos, Rotation: IdentityQuat(), Scale: UnitScale()}
	if unknown := m.Unknown("id", "component", "position", "rotation", "scale", "properties"); unknown != nil {
		return c, ddf.Errorf(unknown.Pos, "unknown field %q in components entry", unknown.Name).WithCause(ErrUnknownField)
	}

	var err error
	if c.ID, err = requireString(pos, m, "components", "id"); err != nil {
		return c, err
	}
	if c.Component, err = requireString(pos, m, "components", "component"); err != nil {
		return c, err
	}
	if c.Position, err = decodeVector3(m.Get("position"), 0); err != nil {
		return c, err
	}
	if c.Rotation, err = decodeQuat(m.Get("rotation")); err != nil {
		return c, err
	}
	if c.Scale, err = decodeVector3(m.Get("scale"), 1); err != nil {
		return c, err
	}

	seen := make(map[string]struct{})
	for _, f := range m.All("properties") {
		block, err := f.AsMessage()
		if err != nil {
			return c, err
		}
		p, err := decodeProperty(f.Pos, block)
		if err != nil {
			return c, err
		}
		if _, dup := seen[p.ID]; dup {
			return c, ddf.Errorf(f.Pos, "component %q has duplicate property %q", c.ID, p.ID).WithCause(ErrDuplicateID)
		}
		seen[p.ID] = struct{}{}
		c.Properties = append(c.Properties, p)
	}
	return c, nil
}

func decodeProperty(pos ddf.Position, m *ddf.Message) (Property, error) {
	p := Property{Pos: pos}
	if unknown := m.Unknown("id", "value", "type"); unknown != nil {
		return p, ddf.Errorf(unknown.Pos, "unknown field %q in properties entry", unknown.Name).WithCause(ErrUnknownField)
	}

	var err error
	if p.ID, err = requireString(pos, m, "properties", "id"); err != nil {
		return p, err
	}
	vf := m.Get("value")
	if vf == nil {
		return p, ddf.Errorf(pos, "properties entry is missing required field %q", "value").WithCause(ErrMissingField)
	}
	if p.Value, err = vf.AsString(); err != nil {
		return p, err
	}
	tf := m.Get("type")
	if tf == nil {
		return p, ddf.Errorf(pos, "properties entry is missing required field %q", "type").WithCause(ErrMissingField)
	}
	typ, err := tf.AsEnum()
	if err != nil {
		return p, err
	}
	p.Type = PropertyType(typ)
	if !p.Type.IsValid() {
		return p, ddf.Errorf(tf.Pos, "unknown property type %q", typ).WithCause(ErrInvalidValue)
	}
	return p, nil
}

func decodeEmbedded(pos ddf.Position, m *ddf.Message) (EmbeddedComponent, error) {
	e := EmbeddedComponent{Pos: pos, Rotation: IdentityQuat(), Scale: UnitScale()}
	if unknown := m.Unknown("id", "type", "data", "position", "rotation", "scale"); unknown != nil {
		return e, ddf.Errorf(unknown.Pos, "unknown field %q in embedded_components entry", unknown.Name).WithCause(ErrUnknownField)
	}

	var err error
	if e.ID, err = requireString(pos, m, "embedded_components", "id"); err != nil {
		return e, err
	}
	if e.Type, err = requireString(pos, m, "embedded_components", "type"); err != nil {
		return e, err
	}
	if df := m.Get("data"); df != nil {
		if e.Data, err = df.AsString(); err != nil {
			return e, err
		}
		e.DataPos = df.Pos
	} else {
		e.DataPos = pos
	}
	if e.Position, err = decodeVector3(m.Get("position"), 0); err != nil {
		return e, err
	}
	if e.Rotation, err = decodeQuat(m.Get("rotation")); err != nil {
		return e, err
	}
	if e.Scale, err = decodeVector3(m.Get("scale"), 1); err != nil {
		return e, err
	}

	data, err := ddf.ParseString("", e.Data)
	if err != nil {
		return e, ddf.Errorf(e.DataPos, "embedded component %q data: %v", e.ID, err).WithCause(err)
	}
	if e.Payload, err = decodePayload(e.Type, data); err != nil {
		return e, ddf.Errorf(e.DataPos, "embedded component %q %s payload: %v", e.ID, e.Type, err).WithCause(err)
	}
	return e, nil
}

// decodeVector3 reads an x/y/z block. Omitted coordinates, and an omitted block, take def.
func decodeVector3(f *ddf.Field, def float64) (Vector3, error) {
	v := Vector3{X: def, Y: def, Z: def}
	if f == nil {
		return v, nil
	}
	m, err := f.AsMessage()
	if err != nil {
		return v, err
	}
	if unknown := m.Unknown("x", "y", "z"); unknown != nil {
		return v, ddf.Errorf(unknown.Pos, "unknown field %q in %s", unknown.Name, f.Name).WithCause(ErrUnknownField)
	}
	for _, c := range []struct {
		name string
		dst  *float64
	}{{"x", &v.X}, {"y", &v.Y}, {"z", &v.Z}} {
		if *c.dst, err = readFloat(m, c.name, def); err != nil {
			return v, err
		}
	}
	return v, nil
}

func decodeQuat(f *ddf.Field) (Quat, error) {
	q := IdentityQuat()
	if f == nil {
		return q, nil
	}
	m, err := f.AsMessage()
	if err != nil {
		return q, err
	}
	if unknown := m.Unknown("x", "y", "z", "w"); unknown != nil {
		return q, ddf.Errorf(unknown.Pos, "unknown field %q in %s", unknown.Name, f.Name).WithCause(ErrUnknownField)
	}
	for _, c := range []struct {
		name string
		dst  *float64
		def  float64
	}{{"x", &q.X, 0}, {"y", &q.Y, 0}, {"z", &q.Z, 0}, {"w", &q.W, 1}} {
		if *c.dst, err = readFloat(m, c.name, c.def); err != nil {
			return q, err
		}
	}
	return q, nil
}
