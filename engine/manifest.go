package engine

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/mathf"
	"github.com/plus3/lumen/physics"
)

// Manifest is the persisted compiled-game format: a list of entities, each
// optionally carrying a transform, sprite, rigid body and collider. The
// compiler emits it; the core decodes and instantiates it. Malformed
// payloads surface as error values, never panics, and a bad entity does not
// prevent the rest of the manifest from loading.
type Manifest struct {
	Name     string         `json:"name"`
	Entities []EntityRecord `json:"entities"`
}

// EntityRecord describes one entity to hydrate. Absent components are
// simply not attached.
type EntityRecord struct {
	Name      string           `json:"name"`
	Transform *mathf.Transform `json:"transform,omitempty"`
	Sprite    *Sprite          `json:"sprite,omitempty"`
	RigidBody *BodyRecord      `json:"rigidBody,omitempty"`
	Collider  *ColliderRecord  `json:"collider,omitempty"`
}

// BodyRecord is the serialized rigid body. Optional numeric fields fall
// back to the physics defaults when omitted.
type BodyRecord struct {
	Type           string     `json:"type"`
	Position       mathf.Vec2 `json:"position"`
	Rotation       float64    `json:"rotation"`
	Velocity       mathf.Vec2 `json:"velocity"`
	Mass           *float64   `json:"mass,omitempty"`
	Restitution    *float64   `json:"restitution,omitempty"`
	Friction       *float64   `json:"friction,omitempty"`
	LinearDamping  *float64   `json:"linearDamping,omitempty"`
	AngularDamping *float64   `json:"angularDamping,omitempty"`
}

// ToBody converts the record into a physics body.
func (r *BodyRecord) ToBody() (*physics.Body, error) {
	var bodyType physics.BodyType
	switch r.Type {
	case "static":
		bodyType = physics.Static
	case "dynamic", "":
		bodyType = physics.Dynamic
	case "kinematic":
		bodyType = physics.Kinematic
	default:
		return nil, fmt.Errorf("unknown body type %q", r.Type)
	}

	body := physics.NewBody(r.Position, bodyType)
	body.Rotation = r.Rotation
	body.Velocity = r.Velocity
	if r.Mass != nil {
		if *r.Mass <= 0 {
			return nil, fmt.Errorf("mass must be positive, got %v", *r.Mass)
		}
		body.Mass = *r.Mass
	}
	if r.Restitution != nil {
		body.Restitution = *r.Restitution
	}
	if r.Friction != nil {
		body.Friction = *r.Friction
	}
	if r.LinearDamping != nil {
		body.LinearDamping = *r.LinearDamping
	}
	if r.AngularDamping != nil {
		body.AngularDamping = *r.AngularDamping
	}
	return body, nil
}

// ColliderRecord is the serialized collider, discriminated by Shape.
type ColliderRecord struct {
	Shape       string       `json:"shape"`
	Radius      float64      `json:"radius,omitempty"`
	HalfExtents mathf.Vec2   `json:"halfExtents,omitempty"`
	Vertices    []mathf.Vec2 `json:"vertices,omitempty"`
}

// ToCollider converts the record into a physics collider.
func (r *ColliderRecord) ToCollider() (physics.Collider, error) {
	switch r.Shape {
	case "circle":
		if r.Radius <= 0 {
			return nil, fmt.Errorf("circle radius must be positive, got %v", r.Radius)
		}
		return physics.Circle{Radius: r.Radius}, nil
	case "box":
		if r.HalfExtents.X <= 0 || r.HalfExtents.Y <= 0 {
			return nil, fmt.Errorf("box half extents must be positive, got %v", r.HalfExtents)
		}
		return physics.Box{HalfExtents: r.HalfExtents}, nil
	case "polygon":
		if len(r.Vertices) < 3 {
			return nil, fmt.Errorf("polygon needs at least 3 vertices, got %d", len(r.Vertices))
		}
		return physics.Polygon{Vertices: r.Vertices}, nil
	default:
		return nil, fmt.Errorf("unknown collider shape %q", r.Shape)
	}
}

// DecodeManifest parses a compiled-game payload.
func DecodeManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

// EncodeManifest serializes a manifest. Provided for the editor boundary so
// the format round-trips.
func EncodeManifest(m *Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return data, nil
}

// LoadManifest hydrates the manifest's entities into the engine. Entities
// with invalid records are skipped; their errors are joined into the return
// value so the caller can log and continue with the rest of the scene.
func (e *Engine) LoadManifest(m *Manifest) error {
	var errs []error
	for i := range m.Entities {
		if err := e.loadEntity(&m.Entities[i]); err != nil {
			errs = append(errs, fmt.Errorf("entity %q: %w", m.Entities[i].Name, err))
		}
	}
	return errors.Join(errs...)
}

// LoadCompiledGame decodes a compiled-game payload and hydrates it.
func (e *Engine) LoadCompiledGame(data []byte) error {
	m, err := DecodeManifest(data)
	if err != nil {
		return err
	}
	return e.LoadManifest(m)
}

func (e *Engine) loadEntity(rec *EntityRecord) error {
	// Validate before creating so a bad record leaves no partial entity.
	var body *physics.Body
	var collider physics.Collider
	var err error
	if rec.RigidBody != nil {
		if body, err = rec.RigidBody.ToBody(); err != nil {
			return err
		}
	}
	if rec.Collider != nil {
		if collider, err = rec.Collider.ToCollider(); err != nil {
			return err
		}
	}

	id := e.world.CreateEntity()
	if rec.Transform != nil {
		ecs.Add(e.world, id, *rec.Transform)
	}
	if rec.Sprite != nil {
		ecs.Add(e.world, id, *rec.Sprite)
	}
	if body != nil {
		e.phys.AddBody(id, body)
	}
	if collider != nil {
		e.phys.AddCollider(id, collider)
	}
	return nil
}
