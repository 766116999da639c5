package descriptor_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/argus-labs/godesc/pkg/descriptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_ReproducesFullLayout(t *testing.T) {
	t.Parallel()

	for _, rel := range []string{
		"game/characters_props/Items/weapon_arrow.go",
		"game/characters_props/Characters/green_character.go",
	} {
		t.Run(filepath.Base(rel), func(t *testing.T) {
			t.Parallel()
			src, err := os.ReadFile(filepath.Join(projectDir, rel))
			require.NoError(t, err)

			g, err := descriptor.ParseBytes(rel, src)
			require.NoError(t, err)
			assert.Equal(t, string(src), string(descriptor.Marshal(g)))
		})
	}
}

func TestMarshal_OmitDefaultsReproducesNewerLayout(t *testing.T) {
	t.Parallel()

	for _, rel := range []string{"game/props/crate.go", "game/levels/loader.go"} {
		t.Run(filepath.Base(rel), func(t *testing.T) {
			t.Parallel()
			src, err := os.ReadFile(filepath.Join(projectDir, rel))
			require.NoError(t, err)

			g, err := descriptor.ParseBytes(rel, src)
			require.NoError(t, err)
			assert.Equal(t, string(src), string(descriptor.Marshal(g, descriptor.WithOmitDefaults())))
		})
	}
}

func TestMarshal_BuiltObject(t *testing.T) {
	t.Parallel()

	g := &descriptor.GameObject{}
	g.AddEmbedded(descriptor.EmbeddedComponent{
		ID:       "sprite",
		Type:     "sprite",
		Data:     "default_animation: \"idle\"\n",
		Position: descriptor.Vector3{X: 1.5},
		Rotation: descriptor.IdentityQuat(),
	})
	g.AddComponent(descriptor.Component{
		ID:        "script",
		Component: "/main/player.script",
		Rotation:  descriptor.Quat{Z: 0.70710677, W: 0.70710677},
	})

	want := `embedded_components {
  id: "sprite"
  type: "sprite"
  data: "default_animation: \"idle\"\n"
  ""
  position {
    x: 1.5
  }
}
components {
  id: "script"
  component: "/main/player.script"
  rotation {
    z: 0.70710677
    w: 0.70710677
  }
}
`
	assert.Equal(t, want, string(descriptor.Marshal(g, descriptor.WithOmitDefaults())))

	// Marshal output decodes back to the same entries.
	back, err := descriptor.ParseBytes("built.go", descriptor.Marshal(g))
	require.NoError(t, err)
	assert.Equal(t, g.Components[0].Rotation, back.Components[0].Rotation)
	assert.Equal(t, "sprite", back.Entries()[0].ID)
}

func TestMarshal_ReproducesScale(t *testing.T) {
	t.Parallel()

	src, err := os.ReadFile("../../testdata/format/checked.go")
	require.NoError(t, err)

	g, err := descriptor.ParseBytes("checked.go", src)
	require.NoError(t, err)
	assert.Equal(t, string(src), string(descriptor.Marshal(g, descriptor.WithOmitDefaults())))
}

func TestMarshal_ScaleLayout(t *testing.T) {
	t.Parallel()

	g := &descriptor.GameObject{}
	g.AddComponent(descriptor.Component{
		ID:        "unset",
		Component: "/a.script",
		Rotation:  descriptor.IdentityQuat(),
	})
	g.AddComponent(descriptor.Component{
		ID:        "scaled",
		Component: "/a.script",
		Rotation:  descriptor.IdentityQuat(),
		Scale:     descriptor.Vector3{X: 1, Y: 2, Z: 1},
	})

	want := `components {
  id: "unset"
  component: "/a.script"
}
components {
  id: "scaled"
  component: "/a.script"
  scale {
    y: 2.0
  }
}
`
	assert.Equal(t, want, string(descriptor.Marshal(g, descriptor.WithOmitDefaults())))

	full := string(descriptor.Marshal(g))
	assert.Contains(t, full, "  scale {\n    x: 1.0\n    y: 2.0\n    z: 1.0\n  }\n")
	assert.Equal(t, 1, strings.Count(full, "scale {"))
}
