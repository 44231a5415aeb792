// Package match implements the simulation core of a Blastar session:
// hazard spawning, motion timelines, collision rules, scoring and game over.
//
// A Match is single-threaded. Every method must be called from the goroutine
// that calls Tick; hosts funnel input from other goroutines onto that one.
package match

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/blastar/internal/object"
	"github.com/tomz197/blastar/internal/physics"
)

// collisionGridCellSize must be >= the largest hazard radius plus half a projectile diagonal.
const collisionGridCellSize = 40.0

// Match is one session's simulation.
type Match struct {
	cfg    Config
	logger *log.Logger
	rng    *rand.Rand

	state       State
	score       int
	overElapsed time.Duration // Time spent in StateGameOver

	player   *object.Player
	ground   *object.Ground
	boundary *object.Boundary

	objects []object.Object              // Live entities in creation order
	index   map[object.ID]object.Object // Live entities by id
	nextID  object.ID

	spawner  *spawner
	queue    stepQueue
	contacts *physics.ContactTracker
	grid     *physics.SpatialGrid

	removed []object.ID      // Destroyed since the last tick result
	landed  []*object.Hazard // Timelines finished this step, removed after detection

	// Reusable per-tick buffers
	hazardBuf     []*object.Hazard
	projectileBuf []*object.Projectile
	pairBuf       []physics.Pair
}

// New creates a match in StateActive. Out-of-range config fields fall back to
// their defaults and are logged as a warning.
func New(cfg Config, logger *log.Logger) *Match {
	if err := cfg.Normalize(); err != nil {
		logger.Warn("config adjusted", "err", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := &Match{
		cfg:      cfg,
		logger:   logger,
		rng:      rand.New(rand.NewSource(seed)),
		state:    StateActive,
		index:    make(map[object.ID]object.Object),
		spawner:  newSpawner(cfg.SpawnInterval),
		contacts: physics.NewContactTracker(),
		grid: physics.NewSpatialGrid(
			-SceneWidth/2-collisionGridCellSize, -SceneHeight/2-collisionGridCellSize,
			SceneWidth+2*collisionGridCellSize, SceneHeight+2*collisionGridCellSize,
			collisionGridCellSize,
		),
	}

	m.boundary = object.NewBoundary(m.allocID(), 0, 0, SceneWidth, SceneHeight)
	m.ground = object.NewGround(m.allocID(), 0, GroundY, GroundWidth, GroundHeight, cfg.GroundHP)
	m.player = object.NewPlayer(m.allocID(), 0, PlayerY, PlayerWidth, PlayerHeight, cfg.PlayerGlide)
	m.add(m.boundary)
	m.add(m.ground)
	m.add(m.player)

	return m
}

func (m *Match) allocID() object.ID {
	m.nextID++
	return m.nextID
}

func (m *Match) add(obj object.Object) {
	m.objects = append(m.objects, obj)
	m.index[obj.Header().ID] = obj
}

// destroy removes a live entity immediately: later lookups of its id are stale.
// The objects slice is compacted at the end of the tick.
func (m *Match) destroy(obj object.Object) {
	id := obj.Header().ID
	if _, ok := m.index[id]; !ok {
		return
	}
	obj.MarkDestroyed()
	delete(m.index, id)
	m.contacts.Forget(uint64(id))
	m.removed = append(m.removed, id)
}

// Config returns the normalized configuration.
func (m *Match) Config() Config {
	return m.cfg
}

// State returns the current lifecycle state.
func (m *Match) State() State {
	return m.state
}

// IsGameOver reports whether the game-over latch is closed.
func (m *Match) IsGameOver() bool {
	return m.state == StateGameOver
}

// Score returns the current score.
func (m *Match) Score() int {
	return m.score
}

// GroundHP returns the current ground health.
func (m *Match) GroundHP() int {
	return m.ground.HP
}

// Band returns the ground's visual health band.
func (m *Match) Band() object.Band {
	return m.ground.Band()
}

// Player returns the ship.
func (m *Match) Player() *object.Player {
	return m.player
}

// Lookup returns the live entity with the given id.
func (m *Match) Lookup(id object.ID) (object.Object, bool) {
	obj, ok := m.index[id]
	return obj, ok
}

// Hazards returns the live hazards in creation order.
func (m *Match) Hazards() []*object.Hazard {
	var hazards []*object.Hazard
	for _, obj := range m.objects {
		if h, ok := obj.(*object.Hazard); ok && !h.IsDestroyed() {
			hazards = append(hazards, h)
		}
	}
	return hazards
}

// NextSpawnIn returns the simulated time until the spawner fires again.
func (m *Match) NextSpawnIn() time.Duration {
	return m.spawner.Until()
}

// SpawnHazard creates a hazard with randomized parameters, as the spawner does.
// Returns false after game over.
func (m *Match) SpawnHazard() (object.ID, bool) {
	if m.state == StateGameOver {
		return 0, false
	}
	return m.spawnHazard(randomHazardParams(m.rng, m.cfg.HazardHP)), true
}

func (m *Match) spawnHazard(p object.HazardParams) object.ID {
	h := object.NewHazard(m.allocID(), p)
	m.add(h)
	m.logger.Debug("hazard spawned", "id", h.ID, "x", p.X, "hold", p.HoldY, "size", p.Size)
	return h.ID
}

// Fire launches a projectile from the ship's muzzle. Rejected while paused or over.
func (m *Match) Fire() FireResult {
	if m.state != StateActive {
		return FireResult{}
	}
	x, y := m.player.Muzzle()
	p := object.NewProjectile(m.allocID(), x, y, m.cfg.ProjectileSpeed)
	m.add(p)
	return FireResult{ID: p.ID, Sound: SoundLaserShot, OK: true}
}

// MovePlayerTo sets the ship's target x, clamped to the play area. The ship
// glides there over Config.PlayerGlide. Rejected while paused or over.
func (m *Match) MovePlayerTo(x float64) bool {
	if m.state != StateActive {
		return false
	}
	m.player.MoveTo(m.boundary.ClampX(x, PlayerMargin))
	return true
}

// TogglePause flips between StateActive and StatePaused and returns the new state.
// It has no effect once the match is over.
func (m *Match) TogglePause() State {
	switch m.state {
	case StateActive:
		m.state = StatePaused
	case StatePaused:
		m.state = StateActive
	}
	return m.state
}
