package integrator

import "sync/atomic"

// RayStats counts cast rays by kind. Safe for concurrent use by render workers.
type RayStats struct {
	primary    atomic.Int64
	shadow     atomic.Int64
	reflection atomic.Int64
	deepest    atomic.Int64
}

// RayCounts is a point-in-time copy of RayStats
type RayCounts struct {
	Primary       int64 `json:"primary"`
	Shadow        int64 `json:"shadow"`
	Reflection    int64 `json:"reflection"`
	DeepestBounce int   `json:"deepestBounce"` // Highest bounce count of any reflection ray
}

// Total returns the number of rays of every kind
func (c RayCounts) Total() int64 {
	return c.Primary + c.Shadow + c.Reflection
}

func (s *RayStats) addPrimary() { s.primary.Add(1) }
func (s *RayStats) addShadow() { s.shadow.Add(1) }
func (s *RayStats) addReflection(bounces int) {
	s.reflection.Add(1)
	for {
		current := s.deepest.Load()
		if int64(bounces) <= current || s.deepest.CompareAndSwap(current, int64(bounces)) {
			return
		}
	}
}

// Snapshot returns the current counts
func (s *RayStats) Snapshot() RayCounts {
	return RayCounts{
		Primary:       s.primary.Load(),
		Shadow:        s.shadow.Load(),
		Reflection:    s.reflection.Load(),
		DeepestBounce: int(s.deepest.Load()),
	}
}

// Reset zeroes every counter
func (s *RayStats) Reset() {
	s.primary.Store(0)
	s.shadow.Store(0)
	s.reflection.Store(0)
	s.deepest.Store(0)
}
