package match

import (
	"github.com/tomz197/blastar/internal/object"
)

// Collide resolves a contact between two entities. The pair may arrive in either
// order. Stale ids and pairs without a rule return OutcomeIgnored with no effect.
func (m *Match) Collide(a, b object.ID) CollisionResult {
	objA, okA := m.index[a]
	objB, okB := m.index[b]
	if !okA || !okB || a == b {
		return CollisionResult{}
	}
	return m.resolve(objA, objB)
}

// resolve applies the rule for a pair of live entities. A resolution completes,
// including its removals, before the next one starts.
func (m *Match) resolve(a, b object.Object) CollisionResult {
	// Normalize so the lower kind comes first
	if a.Header().Kind > b.Header().Kind {
		a, b = b, a
	}

	switch x := a.(type) {
	case *object.Projectile:
		if h, ok := b.(*object.Hazard); ok {
			return m.resolveShot(x, h)
		}
	case *object.Hazard:
		if g, ok := b.(*object.Ground); ok {
			return m.resolveGround(x, g)
		}
	}
	return CollisionResult{}
}

// resolveShot applies a projectile hit to a hazard.
func (m *Match) resolveShot(p *object.Projectile, h *object.Hazard) CollisionResult {
	if m.state == StateGameOver {
		return CollisionResult{}
	}

	// The projectile goes first so a repeated report of this pair is stale
	m.destroy(p)
	res := CollisionResult{Destroyed: []object.ID{p.ID}}

	if h.Hit(m.cfg.HitDamage) {
		m.destroy(h)
		m.score += m.cfg.KillScore
		res.Outcome = OutcomeKill
		res.ScoreDelta = m.cfg.KillScore
		res.Sounds = []Sound{SoundCoin}
		res.Destroyed = append(res.Destroyed, h.ID)
		m.logger.Debug("hazard destroyed", "id", h.ID, "score", m.score)
		return res
	}

	m.score += m.cfg.HitScore
	res.Outcome = OutcomeHit
	res.ScoreDelta = m.cfg.HitScore
	res.Sounds = []Sound{SoundQuietHit}
	return res
}

// resolveGround applies a hazard reaching the ground.
func (m *Match) resolveGround(h *object.Hazard, g *object.Ground) CollisionResult {
	m.destroy(h)
	res := CollisionResult{
		Outcome:   OutcomeGroundSpent,
		Sounds:    []Sound{SoundGroundHit},
		Destroyed: []object.ID{h.ID},
	}
	if m.state == StateGameOver {
		return res
	}

	g.Damage(m.cfg.GroundDamage)
	res.Outcome = OutcomeGroundHit
	res.GroundDelta = -m.cfg.GroundDamage
	res.Sounds = append(res.Sounds, SoundExplosion)
	m.logger.Debug("ground hit", "hazard", h.ID, "hp", g.HP, "band", g.Band())

	if g.Depleted() {
		m.state = StateGameOver
		res.GameOver = true
		m.logger.Info("game over", "score", m.score)
	}
	return res
}
