package object

import (
	"math"
	"testing"
	"time"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func testHazardParams() HazardParams {
	return HazardParams{
		X:                50,
		SpawnY:           832,
		HoldY:            200,
		GroundY:          -324,
		Size:             64,
		Class:            SizeHalf,
		HP:               30,
		Descend:          5 * time.Second,
		GrowTo:           80,
		Grow:             3 * time.Second,
		Revolutions:      12,
		RevolutionPeriod: 400 * time.Millisecond,
		Fall:             500 * time.Millisecond,
	}
}

func TestHazardHitSequence(t *testing.T) {
	h := NewHazard(1, testHazardParams())

	tests := []struct {
		wantLethal  bool
		wantHP      int
		wantOpacity float64
	}{
		{false, 20, 20.0 / 30.0},
		{false, 10, 10.0 / 30.0},
		{true, 0, 0},
	}
	for i, tt := range tests {
		if got := h.Hit(10); got != tt.wantLethal {
			t.Errorf("hit %d: lethal = %v, want %v", i+1, got, tt.wantLethal)
		}
		if h.HP != tt.wantHP {
			t.Errorf("hit %d: hp = %d, want %d", i+1, h.HP, tt.wantHP)
		}
		if !approx(h.Opacity, tt.wantOpacity) {
			t.Errorf("hit %d: opacity = %f, want %f", i+1, h.Opacity, tt.wantOpacity)
		}
	}
}

func TestHazardHPNeverNegative(t *testing.T) {
	p := testHazardParams()
	p.HP = 5
	h := NewHazard(1, p)

	if !h.Hit(10) {
		t.Fatal("hit on a hazard with 5 hp should be lethal")
	}
	if h.HP != 0 {
		t.Errorf("hp = %d, want 0", h.HP)
	}
}

func TestHazardRadiusFollowsSize(t *testing.T) {
	h := NewHazard(1, testHazardParams())
	if !approx(h.Volume.Radius, 64.0/3.0) {
		t.Errorf("radius = %f, want %f", h.Volume.Radius, 64.0/3.0)
	}
}

func TestHazardTimeline(t *testing.T) {
	p := testHazardParams()
	h := NewHazard(1, p)
	ctx := UpdateContext{Delta: 2500 * time.Millisecond}

	if remove, _ := h.Update(ctx); remove {
		t.Fatal("hazard removed mid-descent")
	}
	if h.Stage() != StageDescending {
		t.Fatalf("stage = %v, want descending", h.Stage())
	}
	if want := (p.SpawnY + p.HoldY) / 2; !approx(h.Y, want) {
		t.Errorf("y halfway through descent = %f, want %f", h.Y, want)
	}

	// Finish the descent and grow fully
	h.Update(UpdateContext{Delta: 2500*time.Millisecond + 3*time.Second})
	if h.Stage() != StageHolding {
		t.Fatalf("stage = %v, want holding", h.Stage())
	}
	if !approx(h.Y, p.HoldY) {
		t.Errorf("y = %f, want hold height %f", h.Y, p.HoldY)
	}
	if !approx(h.Size, 80) {
		t.Errorf("size = %f, want 80", h.Size)
	}
	if !approx(h.Volume.Radius, 80.0/3.0) {
		t.Errorf("radius = %f, want %f", h.Volume.Radius, 80.0/3.0)
	}
	if h.X != p.X {
		t.Errorf("x changed to %f", h.X)
	}

	// Spin ends after 12 revolutions of 0.4s
	h.Update(UpdateContext{Delta: 1800 * time.Millisecond})
	if h.Stage() != StageFalling {
		t.Fatalf("stage = %v, want falling", h.Stage())
	}
	if !approx(h.Rotation, -24*math.Pi) {
		t.Errorf("rotation = %f, want %f", h.Rotation, -24*math.Pi)
	}

	if remove, _ := h.Update(UpdateContext{Delta: 500 * time.Millisecond}); !remove {
		t.Fatal("hazard should be removed once its timeline completes")
	}
	if !h.Expired() || h.Stage() != StageDone {
		t.Errorf("expired=%v stage=%v, want true/done", h.Expired(), h.Stage())
	}
	if !approx(h.Y, p.GroundY) {
		t.Errorf("y = %f, want ground height %f", h.Y, p.GroundY)
	}
}

func TestHazardDestroyedStopsMoving(t *testing.T) {
	h := NewHazard(1, testHazardParams())
	h.Update(UpdateContext{Delta: time.Second})
	y := h.Y

	h.MarkDestroyed()
	remove, _ := h.Update(UpdateContext{Delta: time.Second})
	if !remove {
		t.Error("destroyed hazard should be removed")
	}
	if h.Y != y {
		t.Errorf("destroyed hazard moved from %f to %f", y, h.Y)
	}
	if h.Stage() != StageDone {
		t.Errorf("stage = %v, want done", h.Stage())
	}
}

func TestPlayerGlide(t *testing.T) {
	p := NewPlayer(1, 0, -280, 50, 40, 200*time.Millisecond)
	p.MoveTo(100)

	p.Update(UpdateContext{Delta: 100 * time.Millisecond})
	if !approx(p.X, 50) {
		t.Errorf("x halfway through glide = %f, want 50", p.X)
	}
	if !p.Gliding() {
		t.Error("player should still be gliding")
	}

	p.Update(UpdateContext{Delta: 150 * time.Millisecond})
	if p.X != 100 {
		t.Errorf("x after glide = %f, want 100", p.X)
	}
	if p.Gliding() {
		t.Error("player should have stopped gliding")
	}
	if p.Y != -280 {
		t.Errorf("y changed to %f", p.Y)
	}

	mx, my := p.Muzzle()
	if mx != 100 || my != -280+MuzzleOffset {
		t.Errorf("muzzle = (%f, %f), want (100, %f)", mx, my, -280+MuzzleOffset)
	}
}

func TestPlayerRetargetMidGlide(t *testing.T) {
	p := NewPlayer(1, 0, -280, 50, 40, 200*time.Millisecond)
	p.MoveTo(100)
	p.Update(UpdateContext{Delta: 100 * time.Millisecond})

	p.MoveTo(0)
	p.Update(UpdateContext{Delta: 100 * time.Millisecond})
	if !approx(p.X, 25) {
		t.Errorf("x = %f, want 25", p.X)
	}
}

func TestProjectileLeavesBounds(t *testing.T) {
	bounds := NewBoundary(1, 0, 0, 445, 768)
	p := NewProjectile(2, 0, 370, 1000)
	ctx := UpdateContext{Delta: 10 * time.Millisecond, Bounds: bounds}

	if remove, _ := p.Update(ctx); remove {
		t.Fatal("projectile still overlapping the top edge should stay")
	}
	if !approx(p.Y, 380) {
		t.Errorf("y = %f, want 380", p.Y)
	}

	if remove, _ := p.Update(ctx); !remove {
		t.Errorf("projectile at y=%f should have left the play area", p.Y)
	}
}

func TestGroundBands(t *testing.T) {
	tests := []struct {
		hp   int
		want Band
	}{
		{600, BandHealthy},
		{400, BandHealthy},
		{399, BandWarning},
		{200, BandWarning},
		{199, BandCritical},
		{0, BandCritical},
		{-30, BandCritical},
	}
	for _, tt := range tests {
		if got := BandFor(tt.hp); got != tt.want {
			t.Errorf("BandFor(%d) = %v, want %v", tt.hp, got, tt.want)
		}
	}
}

func TestGroundDamage(t *testing.T) {
	g := NewGround(1, 0, -354, 445, 60, 60)
	g.Damage(30)
	if g.HP != 30 || g.Depleted() {
		t.Fatalf("hp=%d depleted=%v, want 30/false", g.HP, g.Depleted())
	}
	g.Damage(-10)
	if g.HP != 30 {
		t.Errorf("negative damage changed hp to %d", g.HP)
	}
	g.Damage(30)
	if !g.Depleted() {
		t.Error("ground at 0 hp should be depleted")
	}
}

func TestOverlaps(t *testing.T) {
	ground := NewGround(1, 0, -354, 445, 60, 600)
	h := NewHazard(2, testHazardParams())

	h.Y = -324 + h.Volume.Radius - 1
	if !Overlaps(h, ground) || !Overlaps(ground, h) {
		t.Error("hazard dipping into the ground should overlap both ways")
	}

	h.Y = -324 + h.Volume.Radius + 1
	if Overlaps(h, ground) {
		t.Error("hazard just above the ground should not overlap")
	}

	shot := NewProjectile(3, h.X, h.Y, 0)
	if !Overlaps(shot, h) {
		t.Error("projectile at the hazard center should overlap")
	}
}

func TestBoundaryContainsAndClamp(t *testing.T) {
	b := NewBoundary(1, 0, 0, 445, 768)
	if !b.Contains(NewProjectile(2, 0, 0, 0)) {
		t.Error("centered projectile should be contained")
	}
	if b.Contains(NewProjectile(3, 0, 383, 0)) {
		t.Error("projectile crossing the top edge should not be contained")
	}
	if got := b.ClampX(500, 25); got != 197.5 {
		t.Errorf("ClampX(500, 25) = %f, want 197.5", got)
	}
	if b.Top() != 384 {
		t.Errorf("Top = %f, want 384", b.Top())
	}
}
