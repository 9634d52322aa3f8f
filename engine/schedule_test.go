package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/engine"
	"github.com/plus3/lumen/physics"
)

type orderedSystem struct {
	name string
	log  *[]string

	initialized bool
	cleaned     bool
}

func (s *orderedSystem) Execute(*ecs.World, *physics.World, float64) {
	*s.log = append(*s.log, s.name)
}

func (s *orderedSystem) Initialize(*ecs.World) {
	s.initialized = true
}

func (s *orderedSystem) Cleanup(*ecs.World) {
	s.cleaned = true
}

func TestScheduleExecutionOrder(t *testing.T) {
	world := ecs.NewWorld()
	phys := physics.NewWorld()
	schedule := engine.NewSchedule(world)

	var log []string
	input := &orderedSystem{name: "input", log: &log}
	movement := &orderedSystem{name: "movement", log: &log}
	render := &orderedSystem{name: "render", log: &log}

	schedule.Add(input)
	schedule.Add(movement)
	schedule.Add(render)

	schedule.Execute(world, phys, 1.0/60)
	schedule.Execute(world, phys, 1.0/60)

	assert.Equal(t, []string{
		"input", "movement", "render",
		"input", "movement", "render",
	}, log, "registration order must be preserved every tick")
}

func TestScheduleLifecycleHooks(t *testing.T) {
	world := ecs.NewWorld()
	schedule := engine.NewSchedule(world)

	var log []string
	system := &orderedSystem{name: "s", log: &log}

	schedule.Add(system)
	assert.True(t, system.initialized, "Initialize runs at registration")
	assert.False(t, system.cleaned)

	schedule.Clear()
	assert.True(t, system.cleaned, "Cleanup runs at teardown")
	assert.Equal(t, 0, schedule.Len())
}

func TestScheduleGroupsRunAfterOrderedSystems(t *testing.T) {
	world := ecs.NewWorld()
	phys := physics.NewWorld()
	schedule := engine.NewSchedule(world)

	var log []string
	schedule.Add(&orderedSystem{name: "first", log: &log})
	schedule.AddGroup(
		&orderedSystem{name: "group-a", log: &log},
		&orderedSystem{name: "group-b", log: &log},
	)

	schedule.Execute(world, phys, 1.0/60)
	assert.Equal(t, []string{"first", "group-a", "group-b"}, log)
	assert.Equal(t, 3, schedule.Len())
}

func TestScheduleSystemFunc(t *testing.T) {
	world := ecs.NewWorld()
	phys := physics.NewWorld()
	schedule := engine.NewSchedule(world)

	gotDt := 0.0
	schedule.Add(engine.SystemFunc(func(_ *ecs.World, _ *physics.World, dt float64) {
		gotDt = dt
	}))

	schedule.Execute(world, phys, 0.25)
	assert.Equal(t, 0.25, gotDt)
}

func TestScheduleStats(t *testing.T) {
	world := ecs.NewWorld()
	phys := physics.NewWorld()
	schedule := engine.NewSchedule(world)

	var log []string
	schedule.Add(&orderedSystem{name: "s", log: &log})

	schedule.Execute(world, phys, 1.0/60)
	schedule.Execute(world, phys, 1.0/60)

	stats := schedule.Stats()
	require.Len(t, stats.Systems, 1)
	assert.Equal(t, "orderedSystem", stats.Systems[0].Name)
	assert.Equal(t, int64(2), stats.Systems[0].ExecutionCount)
	assert.Equal(t, int64(2), stats.TotalExecutions)
	assert.GreaterOrEqual(t, stats.Systems[0].MaxDuration, stats.Systems[0].MinDuration)
}
