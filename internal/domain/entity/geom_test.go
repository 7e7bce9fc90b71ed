package entity

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func assertVec3InDelta(t *testing.T, want, got mgl64.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}

func TestIsometricConversion(t *testing.T) {
	h := math.Sqrt2 / 2

	tests := []struct {
		name  string
		input mgl64.Vec2
		want  mgl64.Vec3
	}{
		{"up maps to +x+z diagonal", mgl64.Vec2{0, 1}, mgl64.Vec3{h, 0, h}},
		{"right maps to +x-z diagonal", mgl64.Vec2{1, 0}, mgl64.Vec3{h, 0, -h}},
		{"down maps to -x-z diagonal", mgl64.Vec2{0, -1}, mgl64.Vec3{-h, 0, -h}},
		{"zero stays zero", mgl64.Vec2{}, mgl64.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec3InDelta(t, tt.want, IsometricConversion(tt.input), 1e-9)
		})
	}
}

func TestIsometricConversion_PreservesMagnitude(t *testing.T) {
	in := mgl64.Vec2{0.3, -0.8}
	out := IsometricConversion(in)
	assert.InDelta(t, in.Len(), out.Len(), 1e-9)
	assert.InDelta(t, 0.0, out.Y(), 1e-12)
}

func TestLookRotation(t *testing.T) {
	dirs := []mgl64.Vec3{
		{1, 0, 0},
		{0, 0, -1},
		{-3, 0, 4},
		{1, -1, 1},
	}

	for _, dir := range dirs {
		q := LookRotation(dir)
		assertVec3InDelta(t, dir.Normalize(), q.Rotate(Forward), 1e-9)
		// Stays upright: local right has no vertical component
		assert.InDelta(t, 0.0, q.Rotate(Right).Y(), 1e-9)
	}

	assert.Equal(t, mgl64.QuatIdent(), LookRotation(mgl64.Vec3{}))
}

func TestSlerp(t *testing.T) {
	from := mgl64.QuatIdent()
	to := LookRotation(mgl64.Vec3{1, 0, 0})

	t.Run("zero amount keeps start", func(t *testing.T) {
		assertVec3InDelta(t, Forward, Slerp(from, to, 0).Rotate(Forward), 1e-9)
	})

	t.Run("amount is clamped to one", func(t *testing.T) {
		assertVec3InDelta(t, mgl64.Vec3{1, 0, 0}, Slerp(from, to, 5).Rotate(Forward), 1e-9)
	})

	t.Run("half way is 45 degrees", func(t *testing.T) {
		h := math.Sqrt2 / 2
		assertVec3InDelta(t, mgl64.Vec3{h, 0, h}, Slerp(from, to, 0.5).Rotate(Forward), 1e-9)
	})

	t.Run("takes shortest arc for negated quaternion", func(t *testing.T) {
		h := math.Sqrt2 / 2
		got := Slerp(from, to.Scale(-1), 0.5).Rotate(Forward)
		assertVec3InDelta(t, mgl64.Vec3{h, 0, h}, got, 1e-9)
	})
}

func TestSmoothDamp(t *testing.T) {
	t.Run("converges without overshoot", func(t *testing.T) {
		pos := mgl64.Vec3{}
		target := mgl64.Vec3{10, 0, 0}
		var vel mgl64.Vec3

		prev := pos.X()
		for i := 0; i < 300; i++ {
			pos = SmoothDamp(pos, target, &vel, 0.125, 1.0/60.0)
			assert.LessOrEqual(t, pos.X(), 10.0)
			assert.GreaterOrEqual(t, pos.X(), prev, "monotonic approach")
			prev = pos.X()
		}
		assertVec3InDelta(t, target, pos, 1e-3)
	})

	t.Run("at target stays put", func(t *testing.T) {
		target := mgl64.Vec3{1, 2, 3}
		var vel mgl64.Vec3
		got := SmoothDamp(target, target, &vel, 0.125, 1.0/60.0)
		assertVec3InDelta(t, target, got, 1e-12)
		assertVec3InDelta(t, mgl64.Vec3{}, vel, 1e-12)
	})

	t.Run("zero dt is a no-op", func(t *testing.T) {
		var vel mgl64.Vec3
		got := SmoothDamp(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{5, 0, 0}, &vel, 0.1, 0)
		assert.Equal(t, mgl64.Vec3{1, 0, 0}, got)
	})
}
