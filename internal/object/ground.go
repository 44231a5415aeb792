package object

// Band is the visual health band of the ground.
type Band int

const (
	BandHealthy  Band = iota // hp >= 400
	BandWarning              // 200 <= hp < 400
	BandCritical             // hp < 200
)

// Band thresholds.
const (
	bandHealthyMin = 400
	bandWarningMin = 200
)

func (b Band) String() string {
	switch b {
	case BandHealthy:
		return "healthy"
	case BandWarning:
		return "warning"
	default:
		return "critical"
	}
}

// BandFor returns the band for a ground health value.
func BandFor(hp int) Band {
	switch {
	case hp >= bandHealthyMin:
		return BandHealthy
	case hp >= bandWarningMin:
		return BandWarning
	default:
		return BandCritical
	}
}

// Ground is the structure beneath the player; its hit points are the match's health pool.
type Ground struct {
	Body
	HP    int
	MaxHP int
}

// NewGround creates the ground as a static rectangle.
func NewGround(id ID, x, y, width, height float64, hp int) *Ground {
	return &Ground{
		Body: Body{
			ID:     id,
			Kind:   KindGround,
			X:      x,
			Y:      y,
			Volume: Rect(width, height),
		},
		HP:    hp,
		MaxHP: hp,
	}
}

// Damage subtracts n hit points. Health is never restored, so negative n is ignored.
func (g *Ground) Damage(n int) {
	if n > 0 {
		g.HP -= n
	}
}

// Depleted reports whether the ground has no health left.
func (g *Ground) Depleted() bool {
	return g.HP <= 0
}

// Band returns the current visual band.
func (g *Ground) Band() Band {
	return BandFor(g.HP)
}

// Update is a no-op; the ground is static.
func (g *Ground) Update(UpdateContext) (bool, error) {
	return false, nil
}
