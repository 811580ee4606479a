package engine

import "voxelmesh/internal/profiling"

// Schedule runs named passes in a fixed relative order each tick,
// flushing the world's deferred commands after every pass so mutations
// requested during a pass are visible to the next one.
type Schedule struct {
	world  *World
	passes []pass
}

type pass struct {
	name string
	fn   func()
}

func NewSchedule(w *World) *Schedule {
	return &Schedule{world: w}
}

// Add appends a pass. Order of Add calls is the execution order.
func (s *Schedule) Add(name string, fn func()) {
	s.passes = append(s.passes, pass{name: name, fn: fn})
}

// Tick runs one full frame of passes.
func (s *Schedule) Tick() {
	profiling.ResetFrame()
	for _, p := range s.passes {
		stop := profiling.Track(p.name)
		p.fn()
		stop()
		s.world.Flush()
	}
}
