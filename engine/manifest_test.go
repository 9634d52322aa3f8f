package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/engine"
	"github.com/plus3/lumen/mathf"
	"github.com/plus3/lumen/physics"
)

const sampleManifest = `{
  "name": "level-1",
  "entities": [
    {
      "name": "player",
      "transform": {
        "position": {"X": 1, "Y": 2, "Z": 0},
        "rotation": {"X": 0, "Y": 0, "Z": 0, "W": 1},
        "scale": {"X": 1, "Y": 1, "Z": 1}
      },
      "sprite": {"texture": "player.png", "color": [1, 1, 1, 1], "size": {"X": 1, "Y": 1}},
      "rigidBody": {"type": "dynamic", "position": {"X": 1, "Y": 2}, "mass": 2},
      "collider": {"shape": "circle", "radius": 0.5}
    },
    {
      "name": "ground",
      "rigidBody": {"type": "static", "position": {"X": 0, "Y": -5}},
      "collider": {"shape": "box", "halfExtents": {"X": 10, "Y": 0.5}}
    },
    {
      "name": "marker"
    }
  ]
}`

func TestLoadCompiledGame(t *testing.T) {
	eng := engine.New(engine.DefaultConfig(), &engine.NullRenderer{})

	require.NoError(t, eng.LoadCompiledGame([]byte(sampleManifest)))
	assert.Equal(t, 3, eng.World().EntityCount())
	assert.Equal(t, 2, eng.Physics().BodyCount())

	// The player hydrated with transform, sprite, body and collider.
	players := 0
	ecs.Each2(eng.World(), func(id ecs.EntityId, transform *mathf.Transform, sprite *engine.Sprite) {
		players++
		assert.Equal(t, mathf.V2(1, 2), transform.XY())
		assert.Equal(t, "player.png", sprite.Texture)

		body, ok := eng.Physics().Body(id)
		require.True(t, ok)
		assert.Equal(t, 2.0, body.Mass)
		assert.Equal(t, physics.Dynamic, body.Type)

		collider, ok := eng.Physics().ColliderOf(id)
		require.True(t, ok)
		assert.Equal(t, physics.Circle{Radius: 0.5}, collider)
	})
	assert.Equal(t, 1, players)
}

func TestDecodeManifestMalformed(t *testing.T) {
	_, err := engine.DecodeManifest([]byte("{not json"))
	assert.Error(t, err)

	eng := engine.New(engine.DefaultConfig(), &engine.NullRenderer{})
	assert.Error(t, eng.LoadCompiledGame([]byte("[]")), "top-level array is not a manifest")
}

func TestLoadManifestSkipsBadEntities(t *testing.T) {
	eng := engine.New(engine.DefaultConfig(), &engine.NullRenderer{})

	m := &engine.Manifest{
		Entities: []engine.EntityRecord{
			{Name: "ok", Transform: ptr(mathf.At(0, 0))},
			{Name: "bad-shape", Collider: &engine.ColliderRecord{Shape: "wedge"}},
			{Name: "bad-mass", RigidBody: &engine.BodyRecord{Type: "dynamic", Mass: ptr(-1.0)}},
			{Name: "also-ok", Transform: ptr(mathf.At(1, 1))},
		},
	}

	err := eng.LoadManifest(m)
	require.Error(t, err)
	assert.ErrorContains(t, err, "bad-shape")
	assert.ErrorContains(t, err, "bad-mass")

	// Bad records are skipped entirely; good ones still load.
	assert.Equal(t, 2, eng.World().EntityCount())
	assert.Equal(t, 0, eng.Physics().BodyCount())
}

func TestBodyRecordDefaults(t *testing.T) {
	record := &engine.BodyRecord{Position: mathf.V2(3, 4)}
	body, err := record.ToBody()
	require.NoError(t, err)

	assert.Equal(t, physics.Dynamic, body.Type, "omitted type defaults to dynamic")
	assert.Equal(t, mathf.V2(3, 4), body.Position)
	assert.Equal(t, 1.0, body.Mass)
	assert.Equal(t, 0.5, body.Restitution)
}

func TestBodyRecordUnknownType(t *testing.T) {
	record := &engine.BodyRecord{Type: "squishy"}
	_, err := record.ToBody()
	assert.ErrorContains(t, err, "squishy")
}

func TestColliderRecordShapes(t *testing.T) {
	tests := []struct {
		name    string
		record  engine.ColliderRecord
		want    physics.Collider
		wantErr bool
	}{
		{
			name:   "circle",
			record: engine.ColliderRecord{Shape: "circle", Radius: 2},
			want:   physics.Circle{Radius: 2},
		},
		{
			name:   "box",
			record: engine.ColliderRecord{Shape: "box", HalfExtents: mathf.V2(1, 2)},
			want:   physics.Box{HalfExtents: mathf.V2(1, 2)},
		},
		{
			name: "polygon",
			record: engine.ColliderRecord{
				Shape:    "polygon",
				Vertices: []mathf.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
			},
			want: physics.Polygon{Vertices: []mathf.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}},
		},
		{name: "zero radius", record: engine.ColliderRecord{Shape: "circle"}, wantErr: true},
		{name: "degenerate polygon", record: engine.ColliderRecord{Shape: "polygon"}, wantErr: true},
		{name: "unknown", record: engine.ColliderRecord{Shape: "capsule"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.record.ToCollider()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestManifestRoundTrip(t *testing.T) {
	original := &engine.Manifest{
		Name: "round-trip",
		Entities: []engine.EntityRecord{
			{
				Name:      "thing",
				Transform: ptr(mathf.At(7, 8)),
				Collider:  &engine.ColliderRecord{Shape: "circle", Radius: 1},
			},
		},
	}

	data, err := engine.EncodeManifest(original)
	require.NoError(t, err)

	decoded, err := engine.DecodeManifest(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func ptr[T any](v T) *T {
	return &v
}
