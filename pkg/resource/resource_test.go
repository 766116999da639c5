package resource_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argus-labs/godesc/pkg/resource"
)

const projectDir = "../../testdata/project"

func newResolver(t *testing.T, opts ...resource.Option) *resource.Resolver {
	t.Helper()
	r, err := resource.New(projectDir, opts...)
	require.NoError(t, err)
	return r
}

func TestNew_RootMustBeDirectory(t *testing.T) {
	t.Parallel()

	_, err := resource.New(filepath.Join(projectDir, "godesc.yaml"))
	require.Error(t, err)

	_, err = resource.New(filepath.Join(projectDir, "missing"))
	require.Error(t, err)
}

func TestExists(t *testing.T) {
	t.Parallel()
	r := newResolver(t)

	tests := []struct {
		path    string
		wantErr error
	}{
		{path: "/game/characters_props/Items/weapons.atlas"},
		{path: "/scripts/game/Weapons.script"},
		{path: "/builtins/materials/sprite.material"},
		{path: "/game/props/../levels/arena.collection"},
		{path: "/game/missing.atlas", wantErr: resource.ErrNotFound},
		{path: "/game/levels", wantErr: resource.ErrNotFound},
		{path: "game/props/crate.go", wantErr: resource.ErrNotAbsolute},
		{path: "/game/../../etc/passwd", wantErr: resource.ErrOutsideRoot},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()
			err := r.Exists(tc.path)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestAnimations(t *testing.T) {
	t.Parallel()
	r := newResolver(t)

	names, err := r.Animations("/game/characters_props/Items/weapons.atlas")
	require.NoError(t, err)
	assert.Equal(t, []string{"arrow_spin", "red_square", "blue_square"}, names)

	names, err = r.Animations("/game/characters_props/Characters/character.atlas")
	require.NoError(t, err)
	assert.Equal(t, []string{"green_walk", "green_character", "green_hand", "weapon_axe"}, names)

	names, err = r.Animations("/game/tiles/ground.tilesource")
	require.NoError(t, err)
	assert.Equal(t, []string{"grass", "water"}, names)

	names, err = r.Animations("/builtins/graphics/particle_blob.tilesource")
	require.NoError(t, err)
	assert.Nil(t, names)

	_, err = r.Animations("/game/props/crate.go")
	require.ErrorIs(t, err, resource.ErrNoAnimation)

	_, err = r.Animations("/game/missing.atlas")
	require.ErrorIs(t, err, resource.ErrNotFound)
}

func TestAnimations_Cached(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	atlas := filepath.Join(dir, "hero.atlas")
	require.NoError(t, os.WriteFile(atlas, []byte("animations {\n  id: \"run\"\n}\n"), 0o600))

	r, err := resource.New(dir, resource.WithCacheSize(1024))
	require.NoError(t, err)

	names, err := r.Animations("/hero.atlas")
	require.NoError(t, err)
	assert.Equal(t, []string{"run"}, names)

	// The cached list is served even after the file changes.
	require.NoError(t, os.WriteFile(atlas, []byte("animations {\n  id: \"jump\"\n}\n"), 0o600))
	names, err = r.Animations("/hero.atlas")
	require.NoError(t, err)
	assert.Equal(t, []string{"run"}, names)
}

func TestAnimations_MalformedAtlas(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.atlas"), []byte("animations {\n"), 0o600))

	r, err := resource.New(dir)
	require.NoError(t, err)

	_, err = r.Animations("/bad.atlas")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/bad.atlas:")
}
