package match

import (
	"time"

	"github.com/tomz197/blastar/internal/object"
	"github.com/tomz197/blastar/internal/physics"
)

// Tick advances the match by dt of simulated time. Negative deltas count as zero.
// Deltas longer than Config.MaxStep run as consecutive steps of at most MaxStep,
// so a stalled caller catches up without skipping contacts.
//
// While active: the spawner timer runs and its events are drained, the ship,
// projectiles and hazard timelines advance, newly begun contacts are resolved in
// detection order, and projectiles that left the play area are removed. While
// paused nothing advances. After game over the scene is frozen and only the end
// delay runs.
func (m *Match) Tick(dt time.Duration) TickResult {
	if dt < 0 {
		dt = 0
	}

	var res TickResult
	for {
		if m.state != StateActive {
			// Nothing moves, so the remainder needs no slicing
			m.substep(dt, &res)
			break
		}
		slice := min(dt, m.cfg.MaxStep)
		dt -= slice
		m.substep(slice, &res)
		if dt <= 0 {
			break
		}
	}

	m.compact()

	res.Destroyed = m.removed
	m.removed = nil
	res.Visuals = m.visuals()
	res.State = m.state
	res.Score = m.score
	res.GroundHP = m.ground.HP
	res.Band = m.ground.Band()
	res.SessionEnded = m.state == StateGameOver && m.overElapsed >= m.cfg.GameOverDelay
	return res
}

// substep runs one slice of at most MaxStep. A game over latched by an earlier
// slice sends the rest of the tick to the end delay.
func (m *Match) substep(dt time.Duration, res *TickResult) {
	switch m.state {
	case StateActive:
		m.spawner.Advance(dt, &m.queue)
		m.queue.Drain(m.runStep)
		m.advance(dt)
		m.detect(res)
		m.settle()
	case StateGameOver:
		m.overElapsed += dt
	}
}

// runStep applies one queued event.
func (m *Match) runStep(s step) {
	switch s.kind {
	case stepSpawnHazard:
		if m.state == StateActive {
			m.spawnHazard(randomHazardParams(m.rng, m.cfg.HazardHP))
		}
	}
}

// advance updates every live entity. Projectiles that ask for removal are
// destroyed at once; hazards that finished their timeline wait for settle so
// their final position is still checked against the ground.
func (m *Match) advance(dt time.Duration) {
	ctx := object.UpdateContext{
		Delta:  dt,
		Bounds: m.boundary,
	}

	for _, obj := range m.objects {
		if obj.IsDestroyed() {
			continue
		}
		remove, err := obj.Update(ctx)
		if err != nil {
			m.logger.Error("update failed", "id", obj.Header().ID, "kind", obj.Header().Kind, "err", err)
			continue
		}
		if !remove {
			continue
		}
		if h, ok := obj.(*object.Hazard); ok {
			m.landed = append(m.landed, h)
			continue
		}
		m.destroy(obj)
	}
}

// settle removes hazards whose timeline ended and that no contact resolved.
func (m *Match) settle() {
	for _, h := range m.landed {
		if !h.IsDestroyed() {
			m.destroy(h)
		}
	}
	clear(m.landed)
	m.landed = m.landed[:0]
}

// detect finds overlapping projectile/hazard and hazard/ground pairs, keeps the
// ones that began this step, and resolves them in order.
func (m *Match) detect(res *TickResult) {
	m.hazardBuf = m.hazardBuf[:0]
	m.projectileBuf = m.projectileBuf[:0]
	for _, obj := range m.objects {
		if obj.IsDestroyed() {
			continue
		}
		switch o := obj.(type) {
		case *object.Hazard:
			m.hazardBuf = append(m.hazardBuf, o)
		case *object.Projectile:
			m.projectileBuf = append(m.projectileBuf, o)
		}
	}

	m.grid.Clear()
	for i, h := range m.hazardBuf {
		m.grid.Insert(h.X, h.Y, i)
	}

	pairs := m.pairBuf[:0]
	for _, p := range m.projectileBuf {
		m.grid.QueryAround(p.X, p.Y, func(i int) bool {
			h := m.hazardBuf[i]
			if object.Overlaps(p, h) {
				pairs = append(pairs, physics.NewPair(uint64(p.ID), uint64(h.ID)))
			}
			return false
		})
	}
	for _, h := range m.hazardBuf {
		if object.Overlaps(h, m.ground) {
			pairs = append(pairs, physics.NewPair(uint64(h.ID), uint64(m.ground.ID)))
		}
	}
	m.pairBuf = pairs

	for _, pair := range m.contacts.Step(pairs) {
		r := m.Collide(object.ID(pair.A), object.ID(pair.B))
		if r.Outcome == OutcomeIgnored {
			continue // An earlier resolution this step removed one side
		}
		res.Collisions = append(res.Collisions, r)
		res.Sounds = append(res.Sounds, r.Sounds...)
	}
}

// compact drops destroyed entities from the objects slice.
func (m *Match) compact() {
	kept := m.objects[:0]
	for _, obj := range m.objects {
		if !obj.IsDestroyed() {
			kept = append(kept, obj)
		}
	}
	clear(m.objects[len(kept):])
	m.objects = kept
}

// visuals reports the render state of every live entity.
func (m *Match) visuals() []Visual {
	visuals := make([]Visual, 0, len(m.objects))
	for _, obj := range m.objects {
		b := obj.Header()
		w, h := b.Volume.Extent()
		v := Visual{
			ID:      b.ID,
			Kind:    b.Kind,
			X:       b.X,
			Y:       b.Y,
			W:       w,
			H:       h,
			Opacity: 1,
		}
		if hz, ok := obj.(*object.Hazard); ok {
			v.W, v.H = hz.Size, hz.Size
			v.Rotation = hz.Rotation
			v.Opacity = hz.Opacity
			v.Stage = hz.Stage()
			v.StageProgress = hz.StageProgress()
		}
		visuals = append(visuals, v)
	}
	return visuals
}
