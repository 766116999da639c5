package descriptor

import (
	"github.com/argus-labs/godesc/pkg/ddf"
)

const (
	TypeSprite            = "sprite"
	TypeFactory           = "factory"
	TypeCollectionFactory = "collectionfactory"
	TypeCollectionProxy   = "collectionproxy"
	TypeSound             = "sound"
	TypeModel             = "model"
)

// DefaultSpriteMaterial is used by sprites that do not name a material.
const DefaultSpriteMaterial = "/builtins/materials/sprite.material"

// BlendMode is the sprite blend mode enum.
type BlendMode string

const (
	BlendAlpha    BlendMode = "BLEND_MODE_ALPHA"
	BlendAdd      BlendMode = "BLEND_MODE_ADD"
	BlendAddAlpha BlendMode = "BLEND_MODE_ADD_ALPHA"
	BlendMult     BlendMode = "BLEND_MODE_MULT"
	BlendScreen   BlendMode = "BLEND_MODE_SCREEN"
)

func (b BlendMode) IsValid() bool {
	switch b {
	case BlendAlpha, BlendAdd, BlendAddAlpha, BlendMult, BlendScreen:
		return true
	default:
		return false
	}
}

// SpriteTexture binds an atlas to a material sampler (newer sprite layout).
type SpriteTexture struct {
	Sampler string `json:"sampler"`
	Texture string `json:"texture"`
}

// Sprite draws an animation out of an atlas.
type Sprite struct {
	TileSet          string          `json:"tile_set,omitempty"`
	Textures         []SpriteTexture `json:"textures,omitempty"`
	DefaultAnimation string          `json:"default_animation"`
	Material         string          `json:"material"`
	BlendMode        BlendMode       `json:"blend_mode"`

	data *ddf.Message
}

func (s *Sprite) Type() string { return TypeSprite }

// Atlas returns the atlas the default animation is looked up in: tile_set when set,
// otherwise the first texture binding.
func (s *Sprite) Atlas() string {
	if s.TileSet != "" {
		return s.TileSet
	}
	if len(s.Textures) > 0 {
		return s.Textures[0].Texture
	}
	return ""
}

func (s *Sprite) References() []Reference {
	var refs []Reference
	if s.TileSet != "" {
		refs = append(refs, ref(s.data, "tile_set", RefAtlas, s.TileSet))
	}
	for i, tex := range s.Textures {
		r := Reference{Field: "textures.texture", Kind: RefAtlas, Path: tex.Texture}
		if blocks := s.data.All("textures"); i < len(blocks) {
			if f := blocks[i].Message.Get("texture"); f != nil {
				r.Pos = f.Pos
			}
		}
		refs = append(refs, r)
	}
	if s.Material != "" {
		refs = append(refs, ref(s.data, "material", RefMaterial, s.Material))
	}
	return refs
}

func decodeSprite(data *ddf.Message) (Payload, error) {
	s := &Sprite{data: data, Material: DefaultSpriteMaterial, BlendMode: BlendAlpha}

	var err error
	if s.TileSet, err = readString(data, "tile_set"); err != nil {
		return nil, err
	}
	if s.DefaultAnimation, err = readString(data, "default_animation"); err != nil {
		return nil, err
	}
	if data.Has("material") {
		if s.Material, err = readString(data, "material"); err != nil {
			return nil, err
		}
	}
	if f := data.Get("blend_mode"); f != nil {
		mode, err := f.AsEnum()
		if err != nil {
			return nil, err
		}
		s.BlendMode = BlendMode(mode)
		if !s.BlendMode.IsValid() {
			return nil, ddf.Errorf(f.Pos, "sprite has unknown blend mode %q", mode).WithCause(ErrInvalidValue)
		}
	}

	for _, f := range data.All("textures") {
		block, err := f.AsMessage()
		if err != nil {
			return nil, err
		}
		var tex SpriteTexture
		if tex.Sampler, err = readString(block, "sampler"); err != nil {
			return nil, err
		}
		if tex.Texture, err = readString(block, "texture"); err != nil {
			return nil, err
		}
		if tex.Texture == "" {
			return nil, ddf.Errorf(f.Pos, "sprite textures entry is missing required field %q", "texture").WithCause(ErrMissingField)
		}
		s.Textures = append(s.Textures, tex)
	}

	return s, nil
}
