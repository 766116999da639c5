package descriptor

import (
	"github.com/argus-labs/godesc/pkg/ddf"
)

type encodeOptions struct {
	omitDefaults bool
}

// EncodeOption configures Marshal and Encode.
type EncodeOption func(*encodeOptions)

// WithOmitDefaults leaves out transform fields that hold their default value, the layout newer
// editor versions write.
func WithOmitDefaults() EncodeOption {
	return func(o *encodeOptions) {
		o.omitDefaults = true
	}
}

// Marshal writes g in the canonical text layout, preserving entry order.
func Marshal(g *GameObject, opts ...EncodeOption) []byte {
	return ddf.Marshal(Encode(g, opts...))
}

// Encode converts g back into a data-format message.
func Encode(g *GameObject, opts ...EncodeOption) *ddf.Message {
	var o encodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	root := &ddf.Message{}
	for _, e := range g.Entries() {
		switch e.Kind {
		case KindComponent:
			encodeComponent(root.AddMessage(fieldComponents), e.Component, o)
		case KindEmbedded:
			encodeEmbedded(root.AddMessage(fieldEmbeddedComponents), e.Embedded, o)
		}
	}
	return root
}

func encodeComponent(m *ddf.Message, c *Component, o encodeOptions) {
	m.AddString("id", c.ID)
	m.AddString("component", c.Component)
	encodeTransform(m, c.Position, c.Rotation, c.Scale, o)
	for _, p := range c.Properties {
		pm := m.AddMessage("properties")
		pm.AddString("id", p.ID)
		pm.AddString("value", p.Value)
		pm.AddIdent("type", string(p.Type))
	}
}

func encodeEmbedded(m *ddf.Message, e *EmbeddedComponent, o encodeOptions) {
	m.AddString("id", e.ID)
	m.AddString("type", e.Type)
	m.AddString("data", e.Data)
	encodeTransform(m, e.Position, e.Rotation, e.Scale, o)
}

// encodeTransform writes position and rotation, then scale when it is not the unit scale. Editors
// only write scale blocks for scaled entries, so the unit scale is left out in both layouts.
func encodeTransform(m *ddf.Message, pos Vector3, rot Quat, scale Vector3, o encodeOptions) {
	if !o.omitDefaults || pos != (Vector3{}) {
		pm := m.AddMessage("position")
		addCoord(pm, "x", pos.X, 0, o)
		addCoord(pm, "y", pos.Y, 0, o)
		addCoord(pm, "z", pos.Z, 0, o)
	}
	if !o.omitDefaults || !rot.IsIdentity() {
		rm := m.AddMessage("rotation")
		addCoord(rm, "x", rot.X, 0, o)
		addCoord(rm, "y", rot.Y, 0, o)
		addCoord(rm, "z", rot.Z, 0, o)
		addCoord(rm, "w", rot.W, 1, o)
	}
	if scale = ScaleOrUnit(scale); scale != UnitScale() {
		sm := m.AddMessage("scale")
		addCoord(sm, "x", scale.X, 1, o)
		addCoord(sm, "y", scale.Y, 1, o)
		addCoord(sm, "z", scale.Z, 1, o)
	}
}

func addCoord(m *ddf.Message, name string, v, def float64, o encodeOptions) {
	if o.omitDefaults && v == def {
		return
	}
	m.AddFloat(name, v)
}
