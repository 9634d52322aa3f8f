// Command sim-stress drives a headless engine full of colliding circle
// bodies and reports tick throughput and per-system timings.
package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/pkg/profile"

	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/engine"
	"github.com/plus3/lumen/mathf"
	"github.com/plus3/lumen/physics"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "How long to run the simulation.")
	bodyCount := flag.Int("bodies", 500, "Number of dynamic circle bodies to spawn.")
	gravity := flag.Float64("gravity", -9.81, "Vertical gravity.")
	seed := flag.Int64("seed", 1, "RNG seed for the initial scene.")
	profileMode := flag.String("profile", "off", "Profiling mode: cpu, mem or off.")
	flag.Parse()

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	case "off":
	default:
		log.Fatalf("unknown profile mode %q", *profileMode)
	}

	eng := engine.New(engine.DefaultConfig(), &engine.NullRenderer{})
	eng.Physics().SetGravity(mathf.V2(0, *gravity))

	rng := rand.New(rand.NewSource(*seed))
	log.Printf("Spawning %d bodies...", *bodyCount)
	for i := 0; i < *bodyCount; i++ {
		spawnBody(eng, rng)
	}

	counter := &collisionCounter{}
	eng.AddSystem(counter)
	eng.AddSystem(engine.SyncTransforms{})

	log.Printf("Running for %s...", *duration)
	start := time.Now()
	ticks := 0
	for time.Since(start) < *duration {
		ticks += eng.StepOnly(eng.Config().FixedTimestep)
	}
	elapsed := time.Since(start)

	report(eng, ticks, elapsed, counter.events)
}

func spawnBody(eng *engine.Engine, rng *rand.Rand) {
	id := eng.World().CreateEntity()

	position := mathf.V2(rng.Float64()*100-50, rng.Float64()*100-50)
	ecs.Add(eng.World(), id, mathf.At(position.X, position.Y))
	ecs.Add(eng.World(), id, engine.NewSprite("", mathf.Splat2(1)))

	body := physics.NewBody(position, physics.Dynamic).
		WithRestitution(0.6).
		WithVelocity(mathf.V2(rng.Float64()*10-5, rng.Float64()*10-5))
	eng.Physics().AddBody(id, body)
	eng.Physics().AddCollider(id, physics.Circle{Radius: 0.5})
}

// collisionCounter tallies collision events across the run.
type collisionCounter struct {
	events int
}

func (c *collisionCounter) Execute(_ *ecs.World, phys *physics.World, _ float64) {
	c.events += len(phys.CollisionEvents())
}

func report(eng *engine.Engine, ticks int, elapsed time.Duration, events int) {
	log.Printf("--- report ---")
	log.Printf("ticks:            %d", ticks)
	log.Printf("wall time:        %s", elapsed)
	log.Printf("ticks/sec:        %.1f", float64(ticks)/elapsed.Seconds())
	log.Printf("bodies:           %d", eng.Physics().BodyCount())
	log.Printf("collision events: %d", events)

	stats := eng.Schedule().Stats()
	for _, s := range stats.Systems {
		log.Printf("system %-20s runs=%d avg=%s max=%s",
			s.Name, s.ExecutionCount, s.AvgDuration, s.MaxDuration)
	}
}
