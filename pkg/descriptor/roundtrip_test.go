package descriptor_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argus-labs/godesc/pkg/descriptor"
	"github.com/argus-labs/godesc/pkg/testutils"
)

func entryIDs(g *descriptor.GameObject) []string {
	var ids []string
	for _, e := range g.Entries() {
		ids = append(ids, e.ID)
	}
	return ids
}

func refPaths(g *descriptor.GameObject) []string {
	var paths []string
	for _, r := range g.References() {
		paths = append(paths, r.Owner+" "+r.Path)
	}
	return paths
}

// Marshalling a decoded object reproduces the bytes it was decoded from.
func TestMarshal_IsFixpointOfParse(t *testing.T) {
	t.Parallel()
	r := testutils.NewRand(t)

	for i := range 200 {
		g := testutils.RandGameObject(r)
		for _, opts := range [][]descriptor.EncodeOption{nil, {descriptor.WithOmitDefaults()}} {
			first := descriptor.Marshal(g, opts...)
			decoded, err := descriptor.ParseBytes("rand.go", first)
			require.NoError(t, err, "object %d:\n%s", i, first)

			second := descriptor.Marshal(decoded, opts...)
			assert.Equal(t, string(first), string(second), "object %d", i)
			assert.Equal(t, entryIDs(g), entryIDs(decoded), "object %d", i)

			again, err := descriptor.ParseBytes("rand.go", second)
			require.NoError(t, err)
			assert.Equal(t, refPaths(decoded), refPaths(again), "object %d", i)
			owners := map[string]bool{}
			for _, ref := range decoded.References() {
				owners[ref.Owner] = true
			}
			assert.Len(t, owners, len(g.Entries()), "every entry references a resource")
		}
	}
}

func TestMarshal_PreservesInterleaving(t *testing.T) {
	t.Parallel()

	for e := testutils.NewEnum(); e.Next(); {
		kinds := make([]descriptor.EntryKind, 0, 4)
		for range e.Intn(2) {
			kinds = append(kinds, descriptor.KindComponent)
		}
		for range e.Intn(2) {
			kinds = append(kinds, descriptor.KindEmbedded)
		}
		testutils.Permute(e, kinds)

		var opts []descriptor.EncodeOption
		if e.Bool() {
			opts = append(opts, descriptor.WithOmitDefaults())
		}

		g := &descriptor.GameObject{}
		var want []string
		for i, kind := range kinds {
			id := string(kind) + strconv.Itoa(i)
			want = append(want, id)
			if kind == descriptor.KindComponent {
				g.AddComponent(descriptor.Component{ID: id, Component: "/main/a.script", Rotation: descriptor.IdentityQuat()})
			} else {
				g.AddEmbedded(descriptor.EmbeddedComponent{
					ID: id, Type: descriptor.TypeFactory, Data: "prototype: \"/main/a.go\"\n",
					Rotation: descriptor.IdentityQuat(),
				})
			}
		}

		decoded, err := descriptor.ParseBytes("order.go", descriptor.Marshal(g, opts...))
		require.NoError(t, err)
		assert.Equal(t, want, entryIDs(decoded), "kinds %v", kinds)
	}
}
