package physics

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/mathf"
)

const (
	// DefaultFixedTimestep is the default simulation tick length.
	DefaultFixedTimestep = 1.0 / 60.0

	// correctionPercent is the fraction of remaining penetration corrected
	// per tick (Baumgarte positional bias).
	correctionPercent = 0.2
	// penetrationSlop is the overlap tolerated without correction, which
	// keeps resting contacts from jittering.
	penetrationSlop = 0.01
)

// World simulates rigid bodies on a fixed timestep. Bodies and colliders
// are keyed by entity ID and owned by this world; ECS-side copies of the
// same data are authoring convenience, not simulation state. A world is
// not safe for concurrent use.
type World struct {
	bodies    *intmap.Map[ecs.EntityId, *Body]
	colliders *intmap.Map[ecs.EntityId, Collider]

	// Insertion-ordered entity lists. Map iteration order is randomized in
	// Go, and integration and pair ordering change floating-point results,
	// so the deterministic tick walks these instead.
	bodyOrder     []ecs.EntityId
	colliderOrder []ecs.EntityId

	collisionPairs  [][2]ecs.EntityId
	collisionEvents []CollisionEvent

	gravity       mathf.Vec2
	fixedTimestep float64
	accumulator   float64
}

// NewWorld creates a physics world with downward gravity and the default
// fixed timestep.
func NewWorld() *World {
	return &World{
		bodies:        intmap.New[ecs.EntityId, *Body](256),
		colliders:     intmap.New[ecs.EntityId, Collider](256),
		gravity:       mathf.V2(0, -9.81),
		fixedTimestep: DefaultFixedTimestep,
	}
}

// SetGravity replaces the global gravity vector.
func (w *World) SetGravity(gravity mathf.Vec2) {
	w.gravity = gravity
}

// Gravity returns the global gravity vector.
func (w *World) Gravity() mathf.Vec2 {
	return w.gravity
}

// FixedTimestep returns the tick length in seconds.
func (w *World) FixedTimestep() float64 {
	return w.fixedTimestep
}

// SetFixedTimestep changes the tick length. Must be positive.
func (w *World) SetFixedTimestep(dt float64) {
	if dt <= 0 {
		panic("physics: fixed timestep must be positive")
	}
	w.fixedTimestep = dt
}

// Alpha is the fraction of a tick accumulated since the last completed
// tick, in [0, 1). Renderers use it to interpolate between tick states.
func (w *World) Alpha() float64 {
	return w.accumulator / w.fixedTimestep
}

// AddBody registers or replaces the body for an entity.
func (w *World) AddBody(id ecs.EntityId, body *Body) {
	if _, exists := w.bodies.Get(id); !exists {
		w.bodyOrder = append(w.bodyOrder, id)
	}
	w.bodies.Put(id, body)
}

// AddCollider registers or replaces the collider for an entity.
func (w *World) AddCollider(id ecs.EntityId, collider Collider) {
	if _, exists := w.colliders.Get(id); !exists {
		w.colliderOrder = append(w.colliderOrder, id)
	}
	w.colliders.Put(id, collider)
}

// RemoveBody removes both the body and the collider for an entity. It is a
// no-op for entities this world has never seen.
func (w *World) RemoveBody(id ecs.EntityId) {
	if _, ok := w.bodies.Get(id); ok {
		w.bodies.Del(id)
		w.bodyOrder = removeId(w.bodyOrder, id)
	}
	if _, ok := w.colliders.Get(id); ok {
		w.colliders.Del(id)
		w.colliderOrder = removeId(w.colliderOrder, id)
	}
}

func removeId(ids []ecs.EntityId, id ecs.EntityId) []ecs.EntityId {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// Body returns the body registered for an entity, or false.
func (w *World) Body(id ecs.EntityId) (*Body, bool) {
	return w.bodies.Get(id)
}

// ColliderOf returns the collider registered for an entity, or false.
func (w *World) ColliderOf(id ecs.EntityId) (Collider, bool) {
	return w.colliders.Get(id)
}

// BodyCount returns the number of registered bodies.
func (w *World) BodyCount() int {
	return len(w.bodyOrder)
}

// CollisionPairs returns the broad-phase candidate pairs from the most
// recent tick. Valid until the next tick starts.
func (w *World) CollisionPairs() [][2]ecs.EntityId {
	return w.collisionPairs
}

// CollisionEvents returns the confirmed collisions from the most recent
// tick. Valid until the next tick starts.
func (w *World) CollisionEvents() []CollisionEvent {
	return w.collisionEvents
}

// Step advances the simulation by dt of wall-clock time, running zero or
// more whole fixed-timestep ticks and carrying the remainder. Physics state
// therefore only ever advances in uniform increments, independent of the
// caller's frame rate.
func (w *World) Step(dt float64) {
	w.accumulator += dt
	for w.accumulator >= w.fixedTimestep {
		w.Tick(w.fixedTimestep)
		w.accumulator -= w.fixedTimestep
	}
}

// Tick runs exactly one fixed update. The engine frame loop calls this
// directly so it can interleave the system schedule with each tick; most
// other callers want Step.
func (w *World) Tick(dt float64) {
	w.collisionPairs = w.collisionPairs[:0]
	w.collisionEvents = w.collisionEvents[:0]

	w.integrateVelocities(dt)
	w.broadPhase()
	w.narrowPhase()
	w.resolveContacts()
	w.integratePositions(dt)
}

func (w *World) integrateVelocities(dt float64) {
	for _, id := range w.bodyOrder {
		body, _ := w.bodies.Get(id)
		if body.Type != Dynamic {
			continue
		}

		body.ApplyForce(w.gravity.Scale(body.Mass))

		acceleration := body.Force.Div(body.Mass)
		body.Velocity = body.Velocity.Add(acceleration.Scale(dt))

		body.Velocity = body.Velocity.Scale(1 - body.LinearDamping*dt)
		body.AngularVelocity *= 1 - body.AngularDamping*dt

		body.Force = mathf.Vec2{}
		body.Torque = 0
	}
}

// broadPhase shortlists collider pairs by AABB overlap. O(n²) over all
// unordered pairs; small scenes only.
func (w *World) broadPhase() {
	for i := 0; i < len(w.colliderOrder); i++ {
		for j := i + 1; j < len(w.colliderOrder); j++ {
			a := w.colliderOrder[i]
			b := w.colliderOrder[j]

			bodyA, okA := w.bodies.Get(a)
			bodyB, okB := w.bodies.Get(b)
			if okA && okB && bodyA.Type == Static && bodyB.Type == Static {
				continue // a static pair can never produce a useful contact
			}

			if w.aabbOverlap(a, b) {
				w.collisionPairs = append(w.collisionPairs, [2]ecs.EntityId{a, b})
			}
		}
	}
}

func (w *World) aabbOverlap(a, b ecs.EntityId) bool {
	colliderA, _ := w.colliders.Get(a)
	colliderB, _ := w.colliders.Get(b)

	posA := w.bodyPosition(a)
	posB := w.bodyPosition(b)

	minA, maxA := colliderA.AABB(posA)
	minB, maxB := colliderB.AABB(posB)

	return minA.X <= maxB.X && maxA.X >= minB.X &&
		minA.Y <= maxB.Y && maxA.Y >= minB.Y
}

func (w *World) bodyPosition(id ecs.EntityId) mathf.Vec2 {
	if body, ok := w.bodies.Get(id); ok {
		return body.Position
	}
	return mathf.Vec2{}
}

func (w *World) narrowPhase() {
	for _, pair := range w.collisionPairs {
		if contact, ok := w.checkCollision(pair[0], pair[1]); ok {
			w.collisionEvents = append(w.collisionEvents, CollisionEvent{
				A:       pair[0],
				B:       pair[1],
				Contact: contact,
			})
		}
	}
}

// checkCollision runs the exact shape-pair test. Only circle-circle is
// implemented; every other pair reports no contact. That incompleteness is
// deliberate and callers should not rely on box or polygon contacts.
func (w *World) checkCollision(a, b ecs.EntityId) (Contact, bool) {
	bodyA, okA := w.bodies.Get(a)
	bodyB, okB := w.bodies.Get(b)
	if !okA || !okB {
		return Contact{}, false
	}
	colliderA, _ := w.colliders.Get(a)
	colliderB, _ := w.colliders.Get(b)

	circleA, okA := colliderA.(Circle)
	circleB, okB := colliderB.(Circle)
	if !okA || !okB {
		return Contact{}, false
	}

	distance := bodyA.Position.Distance(bodyB.Position)
	radiusSum := circleA.Radius + circleB.Radius
	if distance >= radiusSum {
		return Contact{}, false
	}

	normal := bodyB.Position.Sub(bodyA.Position).Normalize()
	return Contact{
		Point:       bodyA.Position.Add(normal.Scale(circleA.Radius)),
		Normal:      normal,
		Penetration: radiusSum - distance,
	}, true
}

func (w *World) resolveContacts() {
	for _, event := range w.collisionEvents {
		bodyA, okA := w.bodies.Get(event.A)
		bodyB, okB := w.bodies.Get(event.B)
		if !okA || !okB {
			continue
		}
		if bodyA.Type == Static && bodyB.Type == Static {
			continue
		}

		normal := event.Contact.Normal
		relativeVelocity := bodyB.Velocity.Sub(bodyA.Velocity)
		velocityAlongNormal := relativeVelocity.Dot(normal)

		// Bodies already separating; no impulse.
		if velocityAlongNormal > 0 {
			continue
		}

		invMassA := bodyA.InverseMass()
		invMassB := bodyB.InverseMass()
		invMassSum := invMassA + invMassB
		if invMassSum == 0 {
			continue
		}

		restitution := (bodyA.Restitution + bodyB.Restitution) * 0.5
		j := -(1 + restitution) * velocityAlongNormal / invMassSum
		impulse := normal.Scale(j)

		if bodyA.Type == Dynamic {
			bodyA.Velocity = bodyA.Velocity.Sub(impulse.Scale(invMassA))
		}
		if bodyB.Type == Dynamic {
			bodyB.Velocity = bodyB.Velocity.Add(impulse.Scale(invMassB))
		}

		// Positional correction: push a fraction of the remaining
		// penetration out along the normal, split by inverse mass.
		depth := event.Contact.Penetration - penetrationSlop
		if depth < 0 {
			depth = 0
		}
		correction := normal.Scale(depth / invMassSum * correctionPercent)

		if bodyA.Type == Dynamic {
			bodyA.Position = bodyA.Position.Sub(correction.Scale(invMassA))
		}
		if bodyB.Type == Dynamic {
			bodyB.Position = bodyB.Position.Add(correction.Scale(invMassB))
		}
	}
}

func (w *World) integratePositions(dt float64) {
	for _, id := range w.bodyOrder {
		body, _ := w.bodies.Get(id)
		if body.Type != Dynamic {
			continue
		}
		body.Position = body.Position.Add(body.Velocity.Scale(dt))
		body.Rotation += body.AngularVelocity * dt
	}
}

// Clear removes every body, collider and pending collision record.
func (w *World) Clear() {
	w.bodies.Clear()
	w.colliders.Clear()
	w.bodyOrder = w.bodyOrder[:0]
	w.colliderOrder = w.colliderOrder[:0]
	w.collisionPairs = w.collisionPairs[:0]
	w.collisionEvents = w.collisionEvents[:0]
	w.accumulator = 0
}
