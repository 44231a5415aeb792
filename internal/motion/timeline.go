// Package motion runs staged, time-driven sequences of changes on a single entity.
//
// A Timeline is a list of Stages played in order. Each Stage receives its
// progress in [0, 1] as simulated time advances; a Group plays several stages
// side by side. Timelines only move when Advance is called, so a caller that
// stops advancing (for example while the match is paused) keeps the exact
// progress of every stage.
package motion

import "time"

// Stage is one step of a timeline.
type Stage struct {
	Name     string
	Duration time.Duration
	Begin    func()          // Called once when the stage is entered (may be nil)
	Step     func(p float64) // Called with progress in [0, 1] (may be nil)
}

// Group combines stages that run at the same time. The group lasts as long as
// its longest member; shorter members hold their final state once complete.
func Group(name string, stages ...Stage) Stage {
	var longest time.Duration
	for _, s := range stages {
		if s.Duration > longest {
			longest = s.Duration
		}
	}

	return Stage{
		Name:     name,
		Duration: longest,
		Begin: func() {
			for _, s := range stages {
				if s.Begin != nil {
					s.Begin()
				}
			}
		},
		Step: func(p float64) {
			elapsed := p * float64(longest)
			for _, s := range stages {
				if s.Step == nil {
					continue
				}
				if s.Duration <= 0 {
					s.Step(1)
					continue
				}
				sp := elapsed / float64(s.Duration)
				if sp > 1 {
					sp = 1
				}
				s.Step(sp)
			}
		},
	}
}

// Timeline plays stages in sequence.
type Timeline struct {
	stages    []Stage
	cursor    int           // Index of the current stage
	elapsed   time.Duration // Time spent in the current stage
	entered   bool          // Whether Begin ran for the current stage
	cancelled bool
}

// NewTimeline creates a timeline positioned at the start of its first stage.
func NewTimeline(stages ...Stage) *Timeline {
	return &Timeline{stages: stages}
}

// Advance moves the timeline forward by dt. Time left over when a stage
// finishes carries into the next one. Returns true once every stage is complete.
// A cancelled timeline never changes again.
func (t *Timeline) Advance(dt time.Duration) bool {
	if t.cancelled {
		return true
	}
	if dt < 0 {
		dt = 0
	}

	for t.cursor < len(t.stages) {
		s := t.stages[t.cursor]
		if !t.entered {
			t.entered = true
			if s.Begin != nil {
				s.Begin()
			}
			if t.cancelled {
				return true // Begin may end the timeline (e.g. a removal stage)
			}
		}

		remaining := s.Duration - t.elapsed
		if dt < remaining {
			t.elapsed += dt
			if s.Step != nil {
				s.Step(float64(t.elapsed) / float64(s.Duration))
			}
			return false
		}

		// Stage completes within this advance
		dt -= remaining
		if s.Step != nil {
			s.Step(1)
		}
		if t.cancelled {
			return true
		}
		t.cursor++
		t.elapsed = 0
		t.entered = false
	}
	return true
}

// Cancel abandons the timeline. No stage callback runs afterwards.
func (t *Timeline) Cancel() {
	t.cancelled = true
}

// Cancelled reports whether the timeline was abandoned.
func (t *Timeline) Cancelled() bool {
	return t.cancelled
}

// StageName returns the current stage's name, or "" once finished.
func (t *Timeline) StageName() string {
	if t.cursor >= len(t.stages) {
		return ""
	}
	return t.stages[t.cursor].Name
}

// Progress returns how far the current stage has run, in [0, 1].
func (t *Timeline) Progress() float64 {
	if t.cursor >= len(t.stages) {
		return 1
	}
	d := t.stages[t.cursor].Duration
	if d <= 0 {
		return 0
	}
	return float64(t.elapsed) / float64(d)
}
