package descriptor

import (
	"path"
	"strings"
	"sync"

	"github.com/argus-labs/godesc/pkg/ddf"
	"github.com/rotisserie/eris"
)

// RefKind classifies what a referenced resource is used for.
type RefKind string

const (
	RefComponent  RefKind = "component"
	RefAtlas      RefKind = "atlas"
	RefMaterial   RefKind = "material"
	RefPrototype  RefKind = "prototype"
	RefCollection RefKind = "collection"
	RefSound      RefKind = "sound"
	RefMesh       RefKind = "mesh"
	RefTexture    RefKind = "texture"
	RefResource   RefKind = "resource"
)

// Reference is a resource path used by an entry of a game object.
type Reference struct {
	Owner string  `json:"owner"`
	Field string  `json:"field"`
	Kind  RefKind `json:"kind"`
	Path  string  `json:"path"`

	Pos ddf.Position `json:"-"`
}

// Payload is the typed view of an embedded component's data block.
type Payload interface {
	Type() string
	References() []Reference
}

// PayloadDecoder builds a Payload from a parsed data block.
type PayloadDecoder func(data *ddf.Message) (Payload, error)

var (
	payloadMu       sync.RWMutex
	payloadDecoders = map[string]PayloadDecoder{
		TypeSprite:            decodeSprite,
		TypeFactory:           decodeFactory(TypeFactory),
		TypeCollectionFactory: decodeFactory(TypeCollectionFactory),
		TypeCollectionProxy:   decodeCollectionProxy,
		TypeSound:             decodeSound,
		TypeModel:             decodeModel,
	}
)

// RegisterPayload installs a decoder for an embedded component type. Registering the same type
// twice is an error.
func RegisterPayload(typ string, dec PayloadDecoder) error {
	if typ == "" {
		return eris.New("payload type cannot be empty")
	}
	if dec == nil {
		return eris.Errorf("payload decoder for %q cannot be nil", typ)
	}

	payloadMu.Lock()
	defer payloadMu.Unlock()
	if _, exists := payloadDecoders[typ]; exists {
		return eris.Errorf("payload type %q is already registered", typ)
	}
	payloadDecoders[typ] = dec
	return nil
}

func decodePayload(typ string, data *ddf.Message) (Payload, error) {
	payloadMu.RLock()
	dec, ok := payloadDecoders[typ]
	payloadMu.RUnlock()
	if !ok {
		return &Generic{TypeName: typ, data: data}, nil
	}
	return dec(data)
}

// Generic is the payload of embedded types without a registered decoder. String fields that
// look like project paths are reported as references.
type Generic struct {
	TypeName string `json:"type"`

	data *ddf.Message
}

func (g *Generic) Type() string { return g.TypeName }

func (g *Generic) References() []Reference {
	var refs []Reference
	var walk func(prefix string, m *ddf.Message)
	walk = func(prefix string, m *ddf.Message) {
		if m == nil {
			return
		}
		for _, f := range m.Fields {
			name := f.Name
			if prefix != "" {
				name = prefix + "." + f.Name
			}
			switch f.Kind {
			case ddf.KindMessage:
				walk(name, f.Message)
			case ddf.KindString:
				if looksLikeResource(f.Value) {
					refs = append(refs, Reference{Field: name, Kind: RefResource, Path: f.Value, Pos: f.Pos})
				}
			case ddf.KindNumber, ddf.KindIdent, ddf.KindUndefined:
			}
		}
	}
	walk("", g.data)
	return refs
}

func looksLikeResource(s string) bool {
	return strings.HasPrefix(s, "/") && !strings.ContainsAny(s, " \n\t") && path.Ext(s) != ""
}

// readString returns the string value of name, or "" when absent.
func readString(m *ddf.Message, name string) (string, error) {
	f := m.Get(name)
	if f == nil {
		return "", nil
	}
	return f.AsString()
}

func readFloat(m *ddf.Message, name string, def float64) (float64, error) {
	f := m.Get(name)
	if f == nil {
		return def, nil
	}
	return f.AsFloat()
}

func readBool(m *ddf.Message, name string) (bool, error) {
	f := m.Get(name)
	if f == nil {
		return false, nil
	}
	return f.AsBool()
}

func ref(m *ddf.Message, field string, kind RefKind, p string) Reference {
	r := Reference{Field: field, Kind: kind, Path: p}
	if f := m.Get(field); f != nil {
		r.Pos = f.Pos
	}
	return r
}
