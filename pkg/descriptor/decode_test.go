package descriptor_test

import (
	"path/filepath"
	"testing"

	"github.com/argus-labs/godesc/pkg/descriptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectDir = "../../testdata/project"

func load(t *testing.T, rel string) *descriptor.GameObject {
	t.Helper()
	g, err := descriptor.Load(filepath.Join(projectDir, rel))
	require.NoError(t, err)
	return g
}

func TestLoad_WeaponArrow(t *testing.T) {
	t.Parallel()

	g := load(t, "game/characters_props/Items/weapon_arrow.go")
	require.Len(t, g.Components, 1)
	require.Len(t, g.EmbeddedComponents, 1)

	weapons := g.Components[0]
	assert.Equal(t, "Weapons", weapons.ID)
	assert.Equal(t, "/scripts/game/Weapons.script", weapons.Component)
	assert.Equal(t, descriptor.IdentityQuat(), weapons.Rotation)

	prop, ok := weapons.Property("type")
	require.True(t, ok)
	assert.Equal(t, descriptor.PropertyNumber, prop.Type)
	v, err := prop.Decode()
	require.NoError(t, err)
	assert.InDelta(t, 13.0, v, 1e-9)

	arrow := g.EmbeddedComponents[0]
	assert.Equal(t, "arrow", arrow.ID)
	assert.Equal(t, descriptor.TypeSprite, arrow.Type)
	sprite, ok := arrow.Payload.(*descriptor.Sprite)
	require.True(t, ok)
	assert.Equal(t, "/game/characters_props/Items/weapons.atlas", sprite.TileSet)
	assert.Equal(t, "/game/characters_props/Items/weapons.atlas", sprite.Atlas())
	assert.Equal(t, "red_square", sprite.DefaultAnimation)
	assert.Equal(t, "/builtins/materials/sprite.material", sprite.Material)
	assert.Equal(t, descriptor.BlendAlpha, sprite.BlendMode)
}

func TestLoad_GreenCharacterKeepsEntryOrderAndTransforms(t *testing.T) {
	t.Parallel()

	g := load(t, "game/characters_props/Characters/green_character.go")

	var ids []string
	for _, e := range g.Entries() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"Antagonist", "head", "left-hand", "right-hand", "wmd"}, ids)

	right, ok := g.Entry("right-hand")
	require.True(t, ok)
	assert.Equal(t, descriptor.KindEmbedded, right.Kind)
	assert.Equal(t, descriptor.Vector3{X: 49, Y: -70}, right.Position)

	wmd, ok := g.Entry("wmd")
	require.True(t, ok)
	assert.Equal(t, "weapon_axe", wmd.Embedded.Payload.(*descriptor.Sprite).DefaultAnimation)
}

func TestLoad_NewerLayout(t *testing.T) {
	t.Parallel()

	g := load(t, "game/props/crate.go")

	crate := g.Components[0]
	assert.Equal(t, descriptor.Vector3{}, crate.Position)
	assert.Equal(t, descriptor.IdentityQuat(), crate.Rotation)
	require.Len(t, crate.Properties, 4)

	sprite := g.EmbeddedComponents[0]
	assert.Equal(t, descriptor.Vector3{Z: 0.7}, sprite.Position)
	payload := sprite.Payload.(*descriptor.Sprite)
	assert.Empty(t, payload.TileSet)
	require.Len(t, payload.Textures, 1)
	assert.Equal(t, "texture_sampler", payload.Textures[0].Sampler)
	assert.Equal(t, "/game/characters_props/Items/weapons.atlas", payload.Atlas())

	factory := g.EmbeddedComponents[1].Payload.(*descriptor.Factory)
	assert.Equal(t, descriptor.TypeFactory, factory.Type())
	assert.Equal(t, "/game/characters_props/Items/weapon_arrow.go", factory.Prototype)
}

func TestReferences(t *testing.T) {
	t.Parallel()

	g := load(t, "game/props/crate.go")
	refs := g.References()

	type short struct {
		owner string
		kind  descriptor.RefKind
		path  string
	}
	got := make([]short, 0, len(refs))
	for _, r := range refs {
		got = append(got, short{r.Owner, r.Kind, r.Path})
		assert.True(t, r.Pos.IsValid(), "reference %s has no position", r.Path)
	}
	assert.Equal(t, []short{
		{"crate", descriptor.RefComponent, "/scripts/game/crate.script"},
		{"sprite", descriptor.RefAtlas, "/game/characters_props/Items/weapons.atlas"},
		{"sprite", descriptor.RefMaterial, "/builtins/materials/sprite.material"},
		{"debris_factory", descriptor.RefPrototype, "/game/characters_props/Items/weapon_arrow.go"},
	}, got)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		wantMsg string
		wantIs  error
	}{
		{
			name: "duplicate id across entry kinds",
			src: `components {
  id: "body"
  component: "/a.script"
}
embedded_components {
  id: "body"
  type: "sprite"
  data: ""
}
`,
			wantMsg: `obj.go:5:1: duplicate id "body" (first defined at obj.go:1:1)`,
			wantIs:  descriptor.ErrDuplicateID,
		},
		{
			name:    "missing id",
			src:     "components {\n  component: \"/a.script\"\n}\n",
			wantMsg: `obj.go:1:1: components entry is missing required field "id"`,
			wantIs:  descriptor.ErrMissingField,
		},
		{
			name:    "missing component path",
			src:     "components {\n  id: \"a\"\n}\n",
			wantMsg: `missing required field "component"`,
			wantIs:  descriptor.ErrMissingField,
		},
		{
			name:    "empty embedded type",
			src:     "embedded_components {\n  id: \"a\"\n  type: \"\"\n}\n",
			wantMsg: `obj.go:3:3: embedded_components field "type" cannot be empty`,
			wantIs:  descriptor.ErrMissingField,
		},
		{
			name:    "unknown top level field",
			src:     "scale_along_z: 0\n",
			wantMsg: `unknown field "scale_along_z" in game object`,
			wantIs:  descriptor.ErrUnknownField,
		},
		{
			name:    "unknown component field",
			src:     "components {\n  id: \"a\"\n  component: \"/a.script\"\n  pivot { x: 1.0 }\n}\n",
			wantMsg: `obj.go:4:3: unknown field "pivot" in components entry`,
			wantIs:  descriptor.ErrUnknownField,
		},
		{
			name:    "unknown scale coordinate",
			src:     "embedded_components {\n  id: \"a\"\n  type: \"factory\"\n  scale { w: 1.0 }\n}\n",
			wantMsg: `unknown field "w" in scale`,
			wantIs:  descriptor.ErrUnknownField,
		},
		{
			name: "unknown property type",
			src: `components {
  id: "a"
  component: "/a.script"
  properties {
    id: "p"
    value: "1"
    type: PROPERTY_TYPE_MATRIX4
  }
}
`,
			wantMsg: `obj.go:7:5: unknown property type "PROPERTY_TYPE_MATRIX4"`,
			wantIs:  descriptor.ErrInvalidValue,
		},
		{
			name: "duplicate property",
			src: `components {
  id: "a"
  component: "/a.script"
  properties { id: "p" value: "1" type: PROPERTY_TYPE_NUMBER }
  properties { id: "p" value: "2" type: PROPERTY_TYPE_NUMBER }
}
`,
			wantMsg: `component "a" has duplicate property "p"`,
			wantIs:  descriptor.ErrDuplicateID,
		},
		{
			name:    "malformed embedded data",
			src:     "embedded_components {\n  id: \"s\"\n  type: \"sprite\"\n  data: \"tile_set \\\"x\\\"\\n\"\n}\n",
			wantMsg: `obj.go:4:3: embedded component "s" data: 1:1: expected ':'`,
		},
		{
			name:    "bad blend mode",
			src:     "embedded_components {\n  id: \"s\"\n  type: \"sprite\"\n  data: \"blend_mode: BLEND_MODE_GLOW\\n\"\n}\n",
			wantMsg: `sprite has unknown blend mode "BLEND_MODE_GLOW"`,
			wantIs:  descriptor.ErrInvalidValue,
		},
		{
			name:    "position is not a message",
			src:     "components {\n  id: \"a\"\n  component: \"/a.script\"\n  position: 1.0\n}\n",
			wantMsg: `field "position": expected message, got number`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := descriptor.ParseBytes("obj.go", []byte(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
			if tc.wantIs != nil {
				require.ErrorIs(t, err, tc.wantIs)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := descriptor.Load(filepath.Join(projectDir, "nope.go"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open descriptor")
}

func TestLoad_Scale(t *testing.T) {
	t.Parallel()

	g, err := descriptor.Load("../../testdata/format/checked.go")
	require.NoError(t, err)

	scaled := descriptor.Vector3{X: 1.1, Y: 1.2, Z: 1.3}
	sprite, ok := g.Entry("referenced_sprite")
	require.True(t, ok)
	assert.Equal(t, scaled, sprite.Scale)
	assert.Equal(t, descriptor.Vector3{X: 0.1, Y: 0.2, Z: 0.3}, sprite.Position)

	script, ok := g.Entry("referenced_script")
	require.True(t, ok)
	assert.Equal(t, descriptor.UnitScale(), script.Scale)

	embedded, ok := g.Entry("embedded_sprite")
	require.True(t, ok)
	assert.Equal(t, scaled, embedded.Embedded.Scale)
}

func TestDecode_PartialScaleDefaultsToOne(t *testing.T) {
	t.Parallel()

	g, err := descriptor.ParseBytes("obj.go", []byte("components {\n  id: \"a\"\n  component: \"/a.script\"\n  scale {\n    y: 2.0\n  }\n}\n"))
	require.NoError(t, err)
	assert.Equal(t, descriptor.Vector3{X: 1, Y: 2, Z: 1}, g.Components[0].Scale)
}
