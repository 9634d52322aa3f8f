package engine

import (
	"reflect"
	"time"

	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/physics"
)

// ScheduleStats provides statistics about schedule execution.
type ScheduleStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Schedule is an ordered list of systems run once per fixed physics tick.
// The schedule exclusively owns its systems and talks to them only through
// the System interface. Parallel groups are a structural placeholder: they
// preserve grouping for a future executor but run sequentially, after the
// ordered systems, in registration order.
type Schedule struct {
	world *ecs.World

	systems     []System
	groups      [][]System
	systemStats []*systemStatsInternal
	groupStats  [][]*systemStatsInternal
}

// NewSchedule creates an empty schedule bound to a world. The world
// reference is only used to drive lifecycle hooks.
func NewSchedule(world *ecs.World) *Schedule {
	return &Schedule{world: world}
}

// Add appends a system in execution order and runs its Initialize hook if
// it has one.
func (s *Schedule) Add(system System) {
	if init, ok := system.(Initializer); ok {
		init.Initialize(s.world)
	}
	s.systems = append(s.systems, system)
	s.systemStats = append(s.systemStats, newSystemStats(system))
}

// AddGroup appends a group of systems that a future executor may run in
// parallel. Today the group executes sequentially.
func (s *Schedule) AddGroup(systems ...System) {
	stats := make([]*systemStatsInternal, 0, len(systems))
	for _, system := range systems {
		if init, ok := system.(Initializer); ok {
			init.Initialize(s.world)
		}
		stats = append(stats, newSystemStats(system))
	}
	s.groups = append(s.groups, systems)
	s.groupStats = append(s.groupStats, stats)
}

func newSystemStats(system System) *systemStatsInternal {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	}
}

// Execute runs every system once, strictly in registration order, then the
// parallel groups.
func (s *Schedule) Execute(world *ecs.World, phys *physics.World, dt float64) {
	for i, system := range s.systems {
		runTimed(system, s.systemStats[i], world, phys, dt)
	}
	for gi, group := range s.groups {
		for i, system := range group {
			runTimed(system, s.groupStats[gi][i], world, phys, dt)
		}
	}
}

func runTimed(system System, stats *systemStatsInternal, world *ecs.World, phys *physics.World, dt float64) {
	start := time.Now()
	system.Execute(world, phys, dt)
	duration := time.Since(start)

	stats.executionCount++
	stats.lastDuration = duration
	stats.totalDuration += duration
	if duration < stats.minDuration {
		stats.minDuration = duration
	}
	if duration > stats.maxDuration {
		stats.maxDuration = duration
	}
}

// Len returns the number of registered systems, groups included.
func (s *Schedule) Len() int {
	n := len(s.systems)
	for _, group := range s.groups {
		n += len(group)
	}
	return n
}

// Clear runs every system's Cleanup hook and empties the schedule.
func (s *Schedule) Clear() {
	for _, system := range s.systems {
		if fin, ok := system.(Finalizer); ok {
			fin.Cleanup(s.world)
		}
	}
	for _, group := range s.groups {
		for _, system := range group {
			if fin, ok := system.(Finalizer); ok {
				fin.Cleanup(s.world)
			}
		}
	}
	s.systems = nil
	s.groups = nil
	s.systemStats = nil
	s.groupStats = nil
}

// Stats returns statistics about system execution.
func (s *Schedule) Stats() *ScheduleStats {
	internal := make([]*systemStatsInternal, 0, s.Len())
	internal = append(internal, s.systemStats...)
	for _, group := range s.groupStats {
		internal = append(internal, group...)
	}

	stats := &ScheduleStats{
		SystemCount: len(internal),
		Systems:     make([]SystemStats, len(internal)),
	}

	var totalExecs int64
	for i, in := range internal {
		avgDuration := time.Duration(0)
		if in.executionCount > 0 {
			avgDuration = in.totalDuration / time.Duration(in.executionCount)
		}
		stats.Systems[i] = SystemStats{
			Name:           in.name,
			ExecutionCount: in.executionCount,
			MinDuration:    in.minDuration,
			MaxDuration:    in.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   in.lastDuration,
			TotalDuration:  in.totalDuration,
		}
		totalExecs += in.executionCount
	}
	stats.TotalExecutions = totalExecs
	return stats
}
