package descriptor

import (
	"github.com/argus-labs/godesc/pkg/ddf"
)

// Factory spawns game objects (factory) or collections (collectionfactory) from a prototype.
type Factory struct {
	Kind            string `json:"-"`
	Prototype       string `json:"prototype"`
	LoadDynamically bool   `json:"load_dynamically,omitempty"`

	data *ddf.Message
}

func (f *Factory) Type() string { return f.Kind }

func (f *Factory) References() []Reference {
	if f.Prototype == "" {
		return nil
	}
	return []Reference{ref(f.data, "prototype", RefPrototype, f.Prototype)}
}

func decodeFactory(kind string) PayloadDecoder {
	return func(data *ddf.Message) (Payload, error) {
		f := &Factory{Kind: kind, data: data}
		var err error
		if f.Prototype, err = readString(data, "prototype"); err != nil {
			return nil, err
		}
		if f.LoadDynamically, err = readBool(data, "load_dynamically"); err != nil {
			return nil, err
		}
		return f, nil
	}
}

// CollectionProxy loads a collection on demand.
type CollectionProxy struct {
	Collection string `json:"collection"`
	Exclude    bool   `json:"exclude,omitempty"`

	data *ddf.Message
}

func (c *CollectionProxy) Type() string { return TypeCollectionProxy }

func (c *CollectionProxy) References() []Reference {
	if c.Collection == "" {
		return nil
	}
	return []Reference{ref(c.data, "collection", RefCollection, c.Collection)}
}

func decodeCollectionProxy(data *ddf.Message) (Payload, error) {
	c := &CollectionProxy{data: data}
	var err error
	if c.Collection, err = readString(data, "collection"); err != nil {
		return nil, err
	}
	if c.Exclude, err = readBool(data, "exclude"); err != nil {
		return nil, err
	}
	return c, nil
}

type Sound struct {
	Sound   string  `json:"sound"`
	Looping bool    `json:"looping"`
	Group   string  `json:"group,omitempty"`
	Gain    float64 `json:"gain"`

	data *ddf.Message
}

func (s *Sound) Type() string { return TypeSound }

func (s *Sound) References() []Reference {
	if s.Sound == "" {
		return nil
	}
	return []Reference{ref(s.data, "sound", RefSound, s.Sound)}
}

func decodeSound(data *ddf.Message) (Payload, error) {
	s := &Sound{data: data}
	var err error
	if s.Sound, err = readString(data, "sound"); err != nil {
		return nil, err
	}
	if s.Looping, err = readBool(data, "looping"); err != nil {
		return nil, err
	}
	if s.Group, err = readString(data, "group"); err != nil {
		return nil, err
	}
	if s.Gain, err = readFloat(data, "gain", 1); err != nil {
		return nil, err
	}
	return s, nil
}

type Model struct {
	Mesh             string   `json:"mesh"`
	Material         string   `json:"material"`
	Textures         []string `json:"textures,omitempty"`
	Skeleton         string   `json:"skeleton,omitempty"`
	Animations       string   `json:"animations,omitempty"`
	DefaultAnimation string   `json:"default_animation,omitempty"`

	data *ddf.Message
}

func (m *Model) Type() string { return TypeModel }

func (m *Model) References() []Reference {
	var refs []Reference
	if m.Mesh != "" {
		refs = append(refs, ref(m.data, "mesh", RefMesh, m.Mesh))
	}
	if m.Material != "" {
		refs = append(refs, ref(m.data, "material", RefMaterial, m.Material))
	}
	for i, f := range m.data.All("textures") {
		if i < len(m.Textures) && m.Textures[i] != "" {
			refs = append(refs, Reference{Field: "textures", Kind: RefTexture, Path: m.Textures[i], Pos: f.Pos})
		}
	}
	if m.Skeleton != "" {
		refs = append(refs, ref(m.data, "skeleton", RefResource, m.Skeleton))
	}
	if m.Animations != "" {
		refs = append(refs, ref(m.data, "animations", RefResource, m.Animations))
	}
	return refs
}

func decodeModel(data *ddf.Message) (Payload, error) {
	m := &Model{data: data}
	fields := []struct {
		name string
		dst  *string
	}{
		{"mesh", &m.Mesh},
		{"material", &m.Material},
		{"skeleton", &m.Skeleton},
		{"animations", &m.Animations},
		{"default_animation", &m.DefaultAnimation},
	}
	for _, fd := range fields {
		v, err := readString(data, fd.name)
		if err != nil {
			return nil, err
		}
		*fd.dst = v
	}
	for _, f := range data.All("textures") {
		tex, err := f.AsString()
		if err != nil {
			return nil, err
		}
		m.Textures = append(m.Textures, tex)
	}
	return m, nil
}
