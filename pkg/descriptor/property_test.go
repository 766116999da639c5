package descriptor_test

import (
	"testing"

	"github.com/argus-labs/godesc/pkg/descriptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperty_Decode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		prop    descriptor.Property
		want    any
		wantErr string
	}{
		{
			name: "number",
			prop: descriptor.Property{ID: "n", Value: "2.0", Type: descriptor.PropertyNumber},
			want: 2.0,
		},
		{
			name: "hash",
			prop: descriptor.Property{ID: "h", Value: "hash2", Type: descriptor.PropertyHash},
			want: "hash2",
		},
		{
			name: "url",
			prop: descriptor.Property{ID: "u", Value: "/url", Type: descriptor.PropertyURL},
			want: "/url",
		},
		{
			name: "vector3",
			prop: descriptor.Property{ID: "v", Value: "1.0, 2.0, 3.0", Type: descriptor.PropertyVector3},
			want: descriptor.Vector3{X: 1, Y: 2, Z: 3},
		},
		{
			name: "vector4",
			prop: descriptor.Property{ID: "v", Value: "1.0, 2.0, 3.0, 4.0", Type: descriptor.PropertyVector4},
			want: descriptor.Vector4{X: 1, Y: 2, Z: 3, W: 4},
		},
		{
			name: "quat",
			prop: descriptor.Property{ID: "q", Value: "1.0, 0.0, 0.0, 0.0", Type: descriptor.PropertyQuat},
			want: descriptor.Quat{X: 1},
		},
		{
			name: "boolean",
			prop: descriptor.Property{ID: "b", Value: "true", Type: descriptor.PropertyBoolean},
			want: true,
		},
		{
			name:    "bad number",
			prop:    descriptor.Property{ID: "n", Value: "lots", Type: descriptor.PropertyNumber},
			wantErr: `property "n": invalid number "lots"`,
		},
		{
			name:    "short vector",
			prop:    descriptor.Property{ID: "v", Value: "1.0, 2.0", Type: descriptor.PropertyVector3},
			wantErr: "expected 3 comma separated numbers, got 2",
		},
		{
			name:    "bad boolean",
			prop:    descriptor.Property{ID: "b", Value: "yes", Type: descriptor.PropertyBoolean},
			wantErr: `invalid boolean "yes"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := tc.prop.Decode()
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestQuat_IsUnit(t *testing.T) {
	t.Parallel()

	assert.True(t, descriptor.IdentityQuat().IsUnit())
	assert.True(t, descriptor.Quat{Z: 0.70710677, W: 0.70710677}.IsUnit())
	assert.False(t, descriptor.Quat{}.IsUnit())
	assert.False(t, descriptor.Quat{X: 1, W: 1}.IsUnit())
}
