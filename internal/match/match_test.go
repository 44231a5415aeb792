package match

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tomz197/blastar/internal/config"
	"github.com/tomz197/blastar/internal/object"
)

const frame = 10 * time.Millisecond

// newTestMatch returns a seeded match whose spawner never fires on its own.
func newTestMatch(t *testing.T, mutate func(*Config)) *Match {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.SpawnInterval = time.Hour
	if mutate != nil {
		mutate(&cfg)
	}
	return New(cfg, config.DiscardLogger())
}

// tickFor advances m in frame-sized steps and returns every result.
func tickFor(m *Match, d time.Duration) []TickResult {
	var results []TickResult
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		results = append(results, m.Tick(frame))
	}
	return results
}

func (m *Match) spawnTestHazard(x, holdY float64, class object.SizeClass) *object.Hazard {
	id := m.spawnHazard(hazardParams(x, holdY, class, m.cfg.HazardHP))
	obj, _ := m.Lookup(id)
	return obj.(*object.Hazard)
}

func hasID(ids []object.ID, id object.ID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestHitSequenceScoresSeven(t *testing.T) {
	m := newTestMatch(t, nil)
	h := m.spawnTestHazard(0, 0, object.SizeHalf)

	tests := []struct {
		outcome Outcome
		delta   int
		score   int
		hp      int
		sound   Sound
	}{
		{OutcomeHit, 1, 1, 20, SoundQuietHit},
		{OutcomeHit, 1, 2, 10, SoundQuietHit},
		{OutcomeKill, 5, 7, 0, SoundCoin},
	}

	for i, tt := range tests {
		shot := m.Fire()
		if !shot.OK || shot.Sound != SoundLaserShot {
			t.Fatalf("fire %d: %+v", i+1, shot)
		}

		var r CollisionResult
		if i%2 == 0 {
			r = m.Collide(shot.ID, h.ID)
		} else {
			r = m.Collide(h.ID, shot.ID) // Either order resolves the same rule
		}

		if r.Outcome != tt.outcome {
			t.Errorf("hit %d: outcome = %v, want %v", i+1, r.Outcome, tt.outcome)
		}
		if r.ScoreDelta != tt.delta || m.Score() != tt.score {
			t.Errorf("hit %d: delta=%d score=%d, want %d/%d", i+1, r.ScoreDelta, m.Score(), tt.delta, tt.score)
		}
		if h.HP != tt.hp {
			t.Errorf("hit %d: hp = %d, want %d", i+1, h.HP, tt.hp)
		}
		if want := float64(tt.hp) / 30; math.Abs(h.Opacity-want) > 1e-9 {
			t.Errorf("hit %d: opacity = %f, want %f", i+1, h.Opacity, want)
		}
		if len(r.Sounds) != 1 || r.Sounds[0] != tt.sound {
			t.Errorf("hit %d: sounds = %v, want [%s]", i+1, r.Sounds, tt.sound)
		}
		if !hasID(r.Destroyed, shot.ID) {
			t.Errorf("hit %d: projectile %d not destroyed", i+1, shot.ID)
		}
		if _, ok := m.Lookup(shot.ID); ok {
			t.Errorf("hit %d: projectile still live", i+1)
		}
	}

	if _, ok := m.Lookup(h.ID); ok {
		t.Error("hazard should be destroyed after the lethal hit")
	}
	if m.GroundHP() != 600 {
		t.Errorf("ground hp = %d, want 600", m.GroundHP())
	}
}

func TestDuplicateCollisionIsNoop(t *testing.T) {
	m := newTestMatch(t, nil)
	h := m.spawnTestHazard(0, 0, object.SizeHalf)
	shot := m.Fire()

	first := m.Collide(shot.ID, h.ID)
	second := m.Collide(shot.ID, h.ID)

	if first.Outcome != OutcomeHit {
		t.Fatalf("first outcome = %v, want hit", first.Outcome)
	}
	if second.Outcome != OutcomeIgnored || second.ScoreDelta != 0 || len(second.Sounds) != 0 {
		t.Errorf("second delivery = %+v, want ignored with no effect", second)
	}
	if m.Score() != 1 || h.HP != 20 {
		t.Errorf("score=%d hp=%d, want 1/20", m.Score(), h.HP)
	}
}

func TestUnmatchedPairsIgnored(t *testing.T) {
	m := newTestMatch(t, nil)
	h := m.spawnTestHazard(0, 0, object.SizeHalf)
	shot := m.Fire()
	player := m.Player().ID
	ground := m.ground.ID

	pairs := []struct {
		name string
		a, b object.ID
	}{
		{"player/hazard", player, h.ID},
		{"projectile/ground", shot.ID, ground},
		{"projectile/player", shot.ID, player},
		{"stale id", 9999, h.ID},
		{"self", h.ID, h.ID},
	}
	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			if r := m.Collide(p.a, p.b); r.Outcome != OutcomeIgnored || len(r.Destroyed) != 0 {
				t.Errorf("Collide = %+v, want ignored", r)
			}
		})
	}

	if m.Score() != 0 || m.GroundHP() != 600 || h.HP != 30 {
		t.Errorf("score=%d ground=%d hp=%d, want untouched", m.Score(), m.GroundHP(), h.HP)
	}
	if _, ok := m.Lookup(shot.ID); !ok {
		t.Error("projectile should still be live")
	}
}

func TestGroundDamageAndLatch(t *testing.T) {
	m := newTestMatch(t, func(c *Config) { c.GroundHP = 60 })
	h1 := m.spawnTestHazard(-100, 0, object.SizeHalf)
	h2 := m.spawnTestHazard(0, 0, object.SizeHalf)
	h3 := m.spawnTestHazard(100, 0, object.SizeHalf)
	ground := m.ground.ID

	r := m.Collide(h1.ID, ground)
	if r.Outcome != OutcomeGroundHit || r.GroundDelta != -30 || m.GroundHP() != 30 {
		t.Fatalf("first contact = %+v, ground=%d; want ground hit, -30, 30", r, m.GroundHP())
	}
	if len(r.Sounds) != 2 || r.Sounds[0] != SoundGroundHit || r.Sounds[1] != SoundExplosion {
		t.Errorf("sounds = %v, want [groundHit explosion]", r.Sounds)
	}
	if r.GameOver || m.IsGameOver() {
		t.Fatal("game over too early")
	}

	r = m.Collide(ground, h2.ID)
	if !r.GameOver || !m.IsGameOver() || m.GroundHP() != 0 {
		t.Fatalf("second contact = %+v, ground=%d; want game over at 0", r, m.GroundHP())
	}

	r = m.Collide(h3.ID, ground)
	if r.Outcome != OutcomeGroundSpent || r.GroundDelta != 0 || m.GroundHP() != 0 {
		t.Errorf("contact after latch = %+v, ground=%d; want no damage", r, m.GroundHP())
	}
	if len(r.Sounds) != 1 || r.Sounds[0] != SoundGroundHit {
		t.Errorf("sounds after latch = %v, want [groundHit]", r.Sounds)
	}
	if !hasID(r.Destroyed, h3.ID) {
		t.Error("hazard should still be destroyed after the latch")
	}
}

func TestNoDecrementAfterLatchInSameTick(t *testing.T) {
	m := newTestMatch(t, func(c *Config) { c.GroundHP = 30 })
	m.spawnTestHazard(0, 0, object.SizeHalf)
	m.spawnTestHazard(0, 0, object.SizeHalf)

	var over *TickResult
	for i := 0; i < 2000 && over == nil; i++ {
		res := m.Tick(frame)
		if res.State == StateGameOver {
			over = &res
		}
	}
	if over == nil {
		t.Fatal("match never ended")
	}

	if len(over.Collisions) != 2 {
		t.Fatalf("collisions = %d, want both hazards resolved in the same tick", len(over.Collisions))
	}
	if over.Collisions[0].Outcome != OutcomeGroundHit || !over.Collisions[0].GameOver {
		t.Errorf("first = %+v, want latching ground hit", over.Collisions[0])
	}
	if over.Collisions[1].Outcome != OutcomeGroundSpent || over.Collisions[1].GroundDelta != 0 {
		t.Errorf("second = %+v, want ground spent", over.Collisions[1])
	}
	if over.GroundHP != 0 {
		t.Errorf("ground hp = %d, want 0", over.GroundHP)
	}
	if len(over.Destroyed) != 2 {
		t.Errorf("destroyed = %v, want both hazards", over.Destroyed)
	}
}

func TestPauseResumesWithoutTimeJump(t *testing.T) {
	mutate := func(c *Config) { c.SpawnInterval = 1500 * time.Millisecond }
	paused := newTestMatch(t, mutate)
	control := newTestMatch(t, mutate)

	tickFor(paused, 2*time.Second)
	tickFor(control, 2*time.Second)

	if got := paused.TogglePause(); got != StatePaused {
		t.Fatalf("TogglePause = %v, want paused", got)
	}
	hazards := len(paused.Hazards())
	until := paused.NextSpawnIn()
	y := paused.Hazards()[0].Y

	if paused.Fire().OK || paused.MovePlayerTo(50) {
		t.Error("fire and move should be rejected while paused")
	}

	for _, res := range tickFor(paused, 5*time.Second) {
		if res.State != StatePaused || len(res.Collisions) != 0 {
			t.Fatalf("paused tick = %+v", res)
		}
	}
	if len(paused.Hazards()) != hazards || paused.NextSpawnIn() != until {
		t.Errorf("spawner advanced while paused: hazards %d->%d, next %v->%v",
			hazards, len(paused.Hazards()), until, paused.NextSpawnIn())
	}
	if paused.Hazards()[0].Y != y {
		t.Errorf("hazard moved while paused: %f -> %f", y, paused.Hazards()[0].Y)
	}

	if got := paused.TogglePause(); got != StateActive {
		t.Fatalf("TogglePause = %v, want active", got)
	}
	tickFor(paused, 2*time.Second)
	tickFor(control, 2*time.Second)

	a, b := paused.Hazards(), control.Hazards()
	if len(a) != len(b) {
		t.Fatalf("hazards = %d, want %d as without the pause", len(a), len(b))
	}
	for i := range a {
		if a[i].X != b[i].X || a[i].Y != b[i].Y || a[i].Size != b[i].Size || a[i].Stage() != b[i].Stage() {
			t.Errorf("hazard %d: (%f, %f, %f, %v), want (%f, %f, %f, %v)", i,
				a[i].X, a[i].Y, a[i].Size, a[i].Stage(), b[i].X, b[i].Y, b[i].Size, b[i].Stage())
		}
	}
	if paused.NextSpawnIn() != control.NextSpawnIn() {
		t.Errorf("next spawn in %v, want %v", paused.NextSpawnIn(), control.NextSpawnIn())
	}
}

func TestSpawnerFirstTriggerAfterInterval(t *testing.T) {
	m := newTestMatch(t, func(c *Config) { c.SpawnInterval = 1500 * time.Millisecond })

	tickFor(m, 1490*time.Millisecond)
	if n := len(m.Hazards()); n != 0 {
		t.Fatalf("hazards before first interval = %d, want 0", n)
	}

	m.Tick(frame)
	hazards := m.Hazards()
	if len(hazards) != 1 {
		t.Fatalf("hazards after first interval = %d, want 1", len(hazards))
	}
	if h := hazards[0]; h.HP != 30 || h.Stage() != object.StageDescending {
		t.Errorf("hp=%d stage=%v, want 30/descending", h.HP, h.Stage())
	}

	tickFor(m, 1500*time.Millisecond)
	if n := len(m.Hazards()); n != 2 {
		t.Errorf("hazards after second interval = %d, want 2", n)
	}
}

func TestRandomHazardParams(t *testing.T) {
	m := newTestMatch(t, nil)
	classes := map[object.SizeClass]int{}

	for i := 0; i < 300; i++ {
		id, ok := m.SpawnHazard()
		if !ok {
			t.Fatal("SpawnHazard rejected on an active match")
		}
		obj, _ := m.Lookup(id)
		h := obj.(*object.Hazard)

		classes[h.Class]++
		if h.X < HazardMinX || h.X > HazardMaxX || h.X != math.Trunc(h.X) {
			t.Fatalf("x = %f, want integer in [%d, %d]", h.X, HazardMinX, HazardMaxX)
		}
		if h.HoldY < HoldMinY || h.HoldY > HoldMaxY || h.HoldY != math.Trunc(h.HoldY) {
			t.Fatalf("hold y = %f, want integer in [%d, %d]", h.HoldY, HoldMinY, HoldMaxY)
		}
		wantSize := BaseHazardSize / float64(h.Class)
		if h.Size != wantSize || h.Y != SceneHeight+wantSize {
			t.Fatalf("size=%f y=%f, want %f/%f", h.Size, h.Y, wantSize, SceneHeight+wantSize)
		}
		if h.HP != 30 {
			t.Fatalf("hp = %d, want 30", h.HP)
		}
	}

	if classes[object.SizeHalf] == 0 || classes[object.SizeThird] == 0 {
		t.Errorf("size classes = %v, want both", classes)
	}
}

func TestGameOverIsTerminal(t *testing.T) {
	m := newTestMatch(t, func(c *Config) { c.GroundHP = 30 })
	h1 := m.spawnTestHazard(0, 0, object.SizeHalf)
	h2 := m.spawnTestHazard(50, 0, object.SizeHalf)
	m.Collide(h1.ID, m.ground.ID)

	if !m.IsGameOver() {
		t.Fatal("expected game over")
	}
	if got := m.TogglePause(); got != StateGameOver {
		t.Errorf("TogglePause = %v, want game over", got)
	}
	if m.Fire().OK {
		t.Error("fire accepted after game over")
	}
	if m.MovePlayerTo(10) {
		t.Error("move accepted after game over")
	}
	if _, ok := m.SpawnHazard(); ok {
		t.Error("spawn accepted after game over")
	}

	y := h2.Y
	for _, res := range tickFor(m, 1990*time.Millisecond) {
		if res.SessionEnded {
			t.Fatal("session ended before the delay")
		}
	}
	if h2.Y != y {
		t.Error("scene should be frozen after game over")
	}

	if res := m.Tick(frame); !res.SessionEnded || res.State != StateGameOver {
		t.Errorf("after delay: ended=%v state=%v, want true/game over", res.SessionEnded, res.State)
	}
}

func TestKillBeforeHoldEndToEnd(t *testing.T) {
	m := newTestMatch(t, nil)
	h := m.spawnTestHazard(100, 0, object.SizeHalf)
	m.MovePlayerTo(100)

	// Wait until the hazard is on screen
	for i := 0; h.Y > 350; i++ {
		if i > 1000 {
			t.Fatal("hazard never entered the play area")
		}
		m.Tick(frame)
	}

	var hits []Outcome
	var destroyed []object.ID
	for i := 0; i < 3; i++ {
		if !m.Fire().OK {
			t.Fatalf("fire %d rejected", i+1)
		}
		for _, res := range tickFor(m, 50*time.Millisecond) {
			for _, c := range res.Collisions {
				hits = append(hits, c.Outcome)
			}
			destroyed = append(destroyed, res.Destroyed...)
		}
	}
	for i := 0; i < 200 && len(hits) < 3; i++ {
		res := m.Tick(frame)
		for _, c := range res.Collisions {
			hits = append(hits, c.Outcome)
		}
		destroyed = append(destroyed, res.Destroyed...)
		if res.GroundHP != 600 {
			t.Fatalf("ground hp = %d, want 600", res.GroundHP)
		}
	}

	want := []Outcome{OutcomeHit, OutcomeHit, OutcomeKill}
	if len(hits) != len(want) {
		t.Fatalf("outcomes = %v, want %v", hits, want)
	}
	for i := range want {
		if hits[i] != want[i] {
			t.Errorf("outcome %d = %v, want %v", i, hits[i], want[i])
		}
	}
	if h.Stage() != object.StageDone || !hasID(destroyed, h.ID) {
		t.Error("hazard should be destroyed and reported")
	}
	if h.Expired() {
		t.Error("hazard was killed, not expired")
	}
	if m.Score() != 7 || m.GroundHP() != 600 {
		t.Errorf("score=%d ground=%d, want 7/600", m.Score(), m.GroundHP())
	}
}

func TestUntouchedHazardEndToEnd(t *testing.T) {
	m := newTestMatch(t, nil)
	h := m.spawnTestHazard(0, 350, object.SizeThird)

	var ground []CollisionResult
	var destroyed []object.ID
	for i := 0; i < 2000; i++ {
		res := m.Tick(frame)
		ground = append(ground, res.Collisions...)
		destroyed = append(destroyed, res.Destroyed...)
		if _, ok := m.Lookup(h.ID); !ok {
			break
		}
	}

	if len(ground) != 1 || ground[0].Outcome != OutcomeGroundHit {
		t.Fatalf("collisions = %+v, want one ground hit", ground)
	}
	if !hasID(destroyed, h.ID) {
		t.Error("hazard removal not reported")
	}
	if m.GroundHP() != 570 || m.Score() != 0 {
		t.Errorf("ground=%d score=%d, want 570/0", m.GroundHP(), m.Score())
	}
	if m.Band() != object.BandHealthy {
		t.Errorf("band = %v, want healthy", m.Band())
	}
}

func TestProjectileRemovedOutsideBounds(t *testing.T) {
	m := newTestMatch(t, nil)
	shot := m.Fire()

	var destroyed []object.ID
	for _, res := range tickFor(m, time.Second) {
		destroyed = append(destroyed, res.Destroyed...)
	}
	if !hasID(destroyed, shot.ID) {
		t.Error("projectile should be removed after leaving the play area")
	}
	if _, ok := m.Lookup(shot.ID); ok {
		t.Error("projectile still live")
	}
}

func TestMovePlayerClampsAndGlides(t *testing.T) {
	m := newTestMatch(t, nil)
	if !m.MovePlayerTo(1000) {
		t.Fatal("move rejected")
	}
	if want := SceneWidth/2 - PlayerMargin; m.Player().TargetX != want {
		t.Errorf("target = %f, want %f", m.Player().TargetX, want)
	}

	tickFor(m, 100*time.Millisecond)
	if x := m.Player().X; x <= 0 || x >= m.Player().TargetX {
		t.Errorf("x mid-glide = %f, want between 0 and target", x)
	}
	tickFor(m, 200*time.Millisecond)
	if m.Player().X != m.Player().TargetX {
		t.Errorf("x = %f, want %f", m.Player().X, m.Player().TargetX)
	}

	shot := m.Fire()
	obj, _ := m.Lookup(shot.ID)
	if b := obj.Header(); b.X != m.Player().X || b.Y != PlayerY+object.MuzzleOffset {
		t.Errorf("projectile at (%f, %f), want above the ship", b.X, b.Y)
	}
}

func TestNegativeDeltaIsZero(t *testing.T) {
	m := newTestMatch(t, func(c *Config) { c.SpawnInterval = time.Second })
	h := m.spawnTestHazard(0, 0, object.SizeHalf)
	y, until := h.Y, m.NextSpawnIn()

	m.Tick(-time.Second)
	if h.Y != y || m.NextSpawnIn() != until {
		t.Error("negative delta advanced the simulation")
	}
}

func TestTickVisuals(t *testing.T) {
	m := newTestMatch(t, nil)
	h := m.spawnTestHazard(0, 0, object.SizeHalf)
	m.Collide(m.Fire().ID, h.ID)

	res := m.Tick(frame)
	kinds := map[object.Kind]int{}
	for _, v := range res.Visuals {
		kinds[v.Kind]++
		if v.ID == h.ID {
			if v.W != h.Size || math.Abs(v.Opacity-20.0/30.0) > 1e-9 {
				t.Errorf("hazard visual = %+v", v)
			}
			if v.Stage != object.StageDescending || v.StageProgress <= 0 || v.StageProgress >= 1 {
				t.Errorf("hazard stage = %v at %f, want descending in (0, 1)", v.Stage, v.StageProgress)
			}
		}
	}
	for _, k := range []object.Kind{object.KindBoundary, object.KindGround, object.KindPlayer, object.KindHazard} {
		if kinds[k] != 1 {
			t.Errorf("%v visuals = %d, want 1", k, kinds[k])
		}
	}
	if kinds[object.KindProjectile] != 0 {
		t.Error("destroyed projectile still reported")
	}
	if res.Score != 1 || res.Band != object.BandHealthy || res.State != StateActive {
		t.Errorf("result = score %d band %v state %v", res.Score, res.Band, res.State)
	}
}

func TestConfigNormalize(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}

	cfg.SpawnInterval = -time.Second
	cfg.GroundHP = 0
	cfg.HitScore = 3
	cfg.MaxStep = 0
	err := cfg.Normalize()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	def := DefaultConfig()
	if cfg.SpawnInterval != def.SpawnInterval || cfg.GroundHP != def.GroundHP || cfg.MaxStep != def.MaxStep {
		t.Errorf("rejected fields not defaulted: %+v", cfg)
	}
	if cfg.HitScore != 3 {
		t.Errorf("valid field changed to %d", cfg.HitScore)
	}
}

func TestNewWithInvalidConfigUsesDefaults(t *testing.T) {
	m := New(Config{Seed: 1}, config.DiscardLogger())
	if m.Config().SpawnInterval != 1500*time.Millisecond || m.GroundHP() != 600 {
		t.Errorf("config = %+v, ground = %d", m.Config(), m.GroundHP())
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("BLASTAR_SPAWN_INTERVAL", "2s")
	t.Setenv("BLASTAR_GROUND_HP", "300")
	t.Setenv("BLASTAR_HAZARD_HP", "bad")
	t.Setenv("BLASTAR_SEED", "42")

	cfg, err := ConfigFromEnv()
	if err == nil {
		t.Error("expected an error for BLASTAR_HAZARD_HP")
	}
	if cfg.SpawnInterval != 2*time.Second || cfg.GroundHP != 300 || cfg.Seed != 42 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.HazardHP != 30 {
		t.Errorf("hazard hp = %d, want default 30", cfg.HazardHP)
	}
}

func TestStepQueueDrainsNestedEvents(t *testing.T) {
	var q stepQueue
	q.Push(step{kind: stepSpawnHazard})

	var seen int
	q.Drain(func(s step) {
		seen++
		if seen == 1 {
			q.Push(step{kind: stepSpawnHazard})
		}
	})
	if seen != 2 || q.Len() != 0 {
		t.Errorf("seen=%d len=%d, want 2/0", seen, q.Len())
	}
}

func TestLongTickDuringFallDamagesGround(t *testing.T) {
	m := newTestMatch(t, nil)
	h := m.spawnTestHazard(0, 350, object.SizeThird)

	for i := 0; h.Stage() != object.StageFalling; i++ {
		if i > 2000 {
			t.Fatal("hazard never started falling")
		}
		m.Tick(frame)
	}

	var collisions []CollisionResult
	for _, dt := range []time.Duration{100 * time.Millisecond, 500 * time.Millisecond} {
		res := m.Tick(dt)
		collisions = append(collisions, res.Collisions...)
	}

	if len(collisions) != 1 || collisions[0].Outcome != OutcomeGroundHit {
		t.Fatalf("collisions = %+v, want one ground hit", collisions)
	}
	if _, ok := m.Lookup(h.ID); ok {
		t.Error("hazard still live after landing")
	}
	if m.GroundHP() != 570 {
		t.Errorf("ground hp = %d, want 570", m.GroundHP())
	}
}

func TestLandingAtEndOfFallHitsGround(t *testing.T) {
	m := newTestMatch(t, nil)
	h := m.spawnTestHazard(0, 350, object.SizeThird)

	for h.Stage() != object.StageFalling {
		m.Tick(frame)
	}
	// One slice covering the whole fall: the only contact check sees the final position
	m.cfg.MaxStep = time.Second
	res := m.Tick(time.Second)

	if len(res.Collisions) != 1 || res.Collisions[0].Outcome != OutcomeGroundHit {
		t.Fatalf("collisions = %+v, want one ground hit", res.Collisions)
	}
	if !hasID(res.Destroyed, h.ID) || m.GroundHP() != 570 {
		t.Errorf("destroyed=%v ground=%d, want hazard removed and 570", res.Destroyed, m.GroundHP())
	}
}

func TestEndToEndAtTickSizes(t *testing.T) {
	sizes := []time.Duration{
		10 * time.Millisecond,
		40 * time.Millisecond,
		100 * time.Millisecond,
		250 * time.Millisecond,
		700 * time.Millisecond, // Longer than the whole fall
	}

	for _, dt := range sizes {
		t.Run("untouched/"+dt.String(), func(t *testing.T) {
			m := newTestMatch(t, nil)
			h := m.spawnTestHazard(0, 350, object.SizeThird)

			var collisions []CollisionResult
			for i := 0; i < 5000; i++ {
				res := m.Tick(dt)
				collisions = append(collisions, res.Collisions...)
				if _, ok := m.Lookup(h.ID); !ok {
					break
				}
			}
			if len(collisions) != 1 || collisions[0].Outcome != OutcomeGroundHit {
				t.Fatalf("collisions = %+v, want one ground hit", collisions)
			}
			if m.GroundHP() != 570 || m.Score() != 0 {
				t.Errorf("ground=%d score=%d, want 570/0", m.GroundHP(), m.Score())
			}
		})

		t.Run("kill/"+dt.String(), func(t *testing.T) {
			m := newTestMatch(t, nil)
			h := m.spawnTestHazard(100, 0, object.SizeHalf)
			m.MovePlayerTo(100)

			for i := 0; h.Y > 350 || m.Player().X != 100; i++ {
				if i > 5000 {
					t.Fatal("setup never finished")
				}
				m.Tick(dt)
			}

			var hits []Outcome
			for shot := 0; shot < 3; shot++ {
				if !m.Fire().OK {
					t.Fatalf("fire %d rejected", shot+1)
				}
				before := len(hits)
				for i := 0; i < 1000 && len(hits) == before; i++ {
					for _, c := range m.Tick(dt).Collisions {
						hits = append(hits, c.Outcome)
					}
				}
			}

			want := []Outcome{OutcomeHit, OutcomeHit, OutcomeKill}
			if len(hits) != len(want) {
				t.Fatalf("outcomes = %v, want %v", hits, want)
			}
			for i := range want {
				if hits[i] != want[i] {
					t.Errorf("outcome %d = %v, want %v", i, hits[i], want[i])
				}
			}
			if m.Score() != 7 || m.GroundHP() != 600 {
				t.Errorf("score=%d ground=%d, want 7/600", m.Score(), m.GroundHP())
			}
		})
	}
}

func TestStalledTickCatchesUp(t *testing.T) {
	mutate := func(c *Config) { c.SpawnInterval = 1500 * time.Millisecond }
	stalled := newTestMatch(t, mutate)
	steady := newTestMatch(t, mutate)

	// One stalled tick plays out like the same span in MaxStep-sized ticks
	stalled.Tick(4 * time.Second)
	slice := steady.Config().MaxStep
	for elapsed := time.Duration(0); elapsed < 4*time.Second; elapsed += slice {
		steady.Tick(slice)
	}

	a, b := stalled.Hazards(), steady.Hazards()
	if len(a) != len(b) || len(a) != 2 {
		t.Fatalf("hazards = %d, want %d (2)", len(a), len(b))
	}
	for i := range a {
		if a[i].X != b[i].X || math.Abs(a[i].Y-b[i].Y) > 1e-6 {
			t.Errorf("hazard %d at (%f, %f), want (%f, %f)", i, a[i].X, a[i].Y, b[i].X, b[i].Y)
		}
	}
	if stalled.NextSpawnIn() != steady.NextSpawnIn() {
		t.Errorf("next spawn in %v, want %v", stalled.NextSpawnIn(), steady.NextSpawnIn())
	}

	// The tick after the stall is an ordinary one
	if res := stalled.Tick(frame); res.State != StateActive || len(res.Visuals) != len(steady.Tick(frame).Visuals) {
		t.Errorf("tick after stall = %+v", res)
	}
}

func TestLongTickAfterGameOverEndsSession(t *testing.T) {
	m := newTestMatch(t, func(c *Config) { c.GroundHP = 30 })
	h := m.spawnTestHazard(0, 350, object.SizeThird)

	res := m.Tick(20 * time.Second)
	if _, ok := m.Lookup(h.ID); ok {
		t.Fatal("hazard should have landed")
	}
	if res.State != StateGameOver || !res.SessionEnded {
		t.Errorf("state=%v ended=%v, want game over and ended", res.State, res.SessionEnded)
	}
}
