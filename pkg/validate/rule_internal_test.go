package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argus-labs/godesc/pkg/descriptor"
)

const crateSrc = `components {
  id: "crate"
  component: "/scripts/game/crate.script"
  properties {
    id: "spawn"
    value: "1.0, 2.0, 0.0"
    type: PROPERTY_TYPE_VECTOR3
  }
  properties {
    id: "broken"
    value: "not a number"
    type: PROPERTY_TYPE_NUMBER
  }
}
embedded_components {
  id: "sprite"
  type: "sprite"
  data: "tile_set: \"/game/items.atlas\"\n"
  "default_animation: \"spin\"\n"
  ""
  position {
    z: 0.5
  }
}
`

func TestEntryEnv(t *testing.T) {
	t.Parallel()

	g, err := descriptor.ParseBytes("crate.go", []byte(crateSrc))
	require.NoError(t, err)
	entries := g.Entries()
	require.Len(t, entries, 2)

	env := entryEnv("crate.go", entries[0])
	assert.Equal(t, "component", env["kind"])
	assert.Equal(t, "/scripts/game/crate.script", env["path"])
	assert.Equal(t, "", env["type_name"])
	props := env["properties"].(map[string]any)
	assert.Equal(t, map[string]any{"x": 1.0, "y": 2.0, "z": 0.0}, props["spawn"])
	assert.Equal(t, "not a number", props["broken"])
	assert.Equal(t, 1.0, env["rotation"].(map[string]any)["w"])
	assert.Equal(t, map[string]any{"x": 1.0, "y": 1.0, "z": 1.0}, env["scale"])

	env = entryEnv("crate.go", entries[1])
	assert.Equal(t, "embedded", env["kind"])
	assert.Equal(t, "sprite", env["type_name"])
	assert.Equal(t, 0.5, env["position"].(map[string]any)["z"])
	payload := env["payload"].(map[string]any)
	assert.Equal(t, "spin", payload["default_animation"])
	assert.Equal(t, "/game/items.atlas", payload["tile_set"])
	assert.Equal(t, "BLEND_MODE_ALPHA", payload["blend_mode"])
}

func TestCompiledRule_Eval(t *testing.T) {
	t.Parallel()

	rule, err := compileRule(Rule{Name: "centered", When: `kind == "component"`, Expr: "position.x == 0"})
	require.NoError(t, err)
	assert.Equal(t, SeverityError, rule.Severity)

	ok, err := rule.eval(map[string]any{"kind": "component", "position": map[string]any{"x": 1.0}})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = rule.eval(map[string]any{"kind": "embedded", "position": map[string]any{"x": 1.0}})
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, `entry "a" fails rule "centered"`, rule.message("a"))
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	a := cacheKey("fp", "a.go", []byte("x"))
	assert.Len(t, a, 64)
	assert.Equal(t, a, cacheKey("fp", "a.go", []byte("x")))
	assert.NotEqual(t, a, cacheKey("fp", "b.go", []byte("x")))
	assert.NotEqual(t, a, cacheKey("fp2", "a.go", []byte("x")))
	// Separators keep name and content from running together.
	assert.NotEqual(t, cacheKey("fp", "a", []byte("b.go")), cacheKey("fp", "a.go", []byte("")))
}
