package match

import (
	"math/rand"
	"time"

	"github.com/tomz197/blastar/internal/object"
)

// spawner emits one spawn event per interval of simulated time.
type spawner struct {
	interval time.Duration
	elapsed  time.Duration
}

func newSpawner(interval time.Duration) *spawner {
	return &spawner{interval: interval}
}

// Advance accumulates dt and queues a spawn for every full interval crossed.
func (s *spawner) Advance(dt time.Duration, q *stepQueue) {
	s.elapsed += dt
	for s.elapsed >= s.interval {
		s.elapsed -= s.interval
		q.Push(step{kind: stepSpawnHazard})
	}
}

// Until returns the simulated time left before the next spawn.
func (s *spawner) Until() time.Duration {
	return s.interval - s.elapsed
}

// randomHazardParams draws the randomized parameters of a new hazard.
func randomHazardParams(rng *rand.Rand, hp int) object.HazardParams {
	class := object.SizeHalf
	if rng.Intn(2) == 1 {
		class = object.SizeThird
	}
	x := float64(HazardMinX + rng.Intn(HazardMaxX-HazardMinX+1))
	holdY := float64(HoldMinY + rng.Intn(HoldMaxY-HoldMinY+1))
	return hazardParams(x, holdY, class, hp)
}

// hazardParams builds the parameters of a hazard at x that holds at holdY.
func hazardParams(x, holdY float64, class object.SizeClass, hp int) object.HazardParams {
	size := BaseHazardSize / float64(class)
	return object.HazardParams{
		X:                x,
		SpawnY:           SceneHeight + size,
		HoldY:            holdY,
		GroundY:          GroundY,
		Size:             size,
		Class:            class,
		HP:               hp,
		Descend:          DescendDuration,
		GrowTo:           GrowSize,
		Grow:             GrowDuration,
		Revolutions:      SpinRevolutions,
		RevolutionPeriod: RevolutionPeriod,
		Fall:             FallDuration,
	}
}
