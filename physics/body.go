package physics

import "github.com/plus3/lumen/mathf"

// BodyType controls how the simulator treats a body.
type BodyType int

const (
	// Static bodies never move and have infinite effective mass.
	Static BodyType = iota
	// Dynamic bodies are integrated and respond to forces and impulses.
	Dynamic
	// Kinematic bodies are positioned externally; the integrator and the
	// impulse solver both leave them alone.
	Kinematic
)

func (t BodyType) String() string {
	switch t {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	default:
		return "unknown"
	}
}

// Body is the simulation-facing rigid body state. The physics world owns
// the authoritative copy; any ECS-side component is authoring convenience.
type Body struct {
	Position        mathf.Vec2 `json:"position"`
	Rotation        float64    `json:"rotation"`
	Velocity        mathf.Vec2 `json:"velocity"`
	AngularVelocity float64    `json:"angularVelocity"`
	Force           mathf.Vec2 `json:"-"`
	Torque          float64    `json:"-"`
	Mass            float64    `json:"mass"`
	Inertia         float64    `json:"inertia"`
	Restitution     float64    `json:"restitution"`
	Friction        float64    `json:"friction"`
	LinearDamping   float64    `json:"linearDamping"`
	AngularDamping  float64    `json:"angularDamping"`
	Type            BodyType   `json:"type"`
}

// NewBody returns a body at the given position with default mass, inertia,
// restitution, friction and damping.
func NewBody(position mathf.Vec2, bodyType BodyType) *Body {
	return &Body{
		Position:       position,
		Mass:           1,
		Inertia:        1,
		Restitution:    0.5,
		Friction:       0.5,
		LinearDamping:  0.1,
		AngularDamping: 0.1,
		Type:           bodyType,
	}
}

// WithMass sets the mass and returns the body for chaining.
func (b *Body) WithMass(mass float64) *Body {
	b.Mass = mass
	return b
}

// WithVelocity sets the initial velocity and returns the body for chaining.
func (b *Body) WithVelocity(velocity mathf.Vec2) *Body {
	b.Velocity = velocity
	return b
}

// WithRestitution sets the restitution coefficient and returns the body for
// chaining.
func (b *Body) WithRestitution(restitution float64) *Body {
	b.Restitution = restitution
	return b
}

// WithDamping sets linear and angular damping and returns the body for
// chaining.
func (b *Body) WithDamping(linear, angular float64) *Body {
	b.LinearDamping = linear
	b.AngularDamping = angular
	return b
}

// InverseMass is 1/mass for dynamic bodies and 0 otherwise, so static and
// kinematic bodies drop out of impulse and correction math.
func (b *Body) InverseMass() float64 {
	if b.Type != Dynamic {
		return 0
	}
	return 1 / b.Mass
}

// ApplyForce accumulates a force for the next integration step. Only
// dynamic bodies respond.
func (b *Body) ApplyForce(force mathf.Vec2) {
	if b.Type == Dynamic {
		b.Force = b.Force.Add(force)
	}
}

// ApplyImpulse changes velocity immediately. Only dynamic bodies respond.
func (b *Body) ApplyImpulse(impulse mathf.Vec2) {
	if b.Type == Dynamic {
		b.Velocity = b.Velocity.Add(impulse.Div(b.Mass))
	}
}

// ApplyTorque accumulates torque for the next integration step. Only
// dynamic bodies respond.
func (b *Body) ApplyTorque(torque float64) {
	if b.Type == Dynamic {
		b.Torque += torque
	}
}
