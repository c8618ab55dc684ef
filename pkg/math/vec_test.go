package math

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{1, -2, 7.25}
	b := Vec3{-3.5, 4, 0.1}

	tests := []struct {
		name string
		t    float32
		want Vec3
	}{
		{"start", 0, a},
		{"end", 1, b},
		{"middle", 0.5, Vec3{-1.25, 1, 3.675}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Lerp(b, tt.t)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) || !near(got.Z, tt.want.Z) {
				t.Errorf("Lerp(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}

	// Endpoints must be exact, not just close.
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %v, want exactly %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want exactly %v", got, b)
	}
}

func TestVec3Distance(t *testing.T) {
	got := Vec3{1, 2, 3}.Distance(Vec3{4, 6, 3})
	if got != 5 {
		t.Errorf("Vec3.Distance() = %v, want 5", got)
	}
}

func TestVec3XZ(t *testing.T) {
	got := Vec3{1, 99, -2}.XZ()
	want := Vec2{1, -2}
	if got != want {
		t.Errorf("Vec3.XZ() = %v, want %v", got, want)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -2}
	b := Vec3{3, -1, -2}
	if got, want := a.Min(b), (Vec3{1, -1, -2}); got != want {
		t.Errorf("Vec3.Min() = %v, want %v", got, want)
	}
	if got, want := a.Max(b), (Vec3{3, 5, -2}); got != want {
		t.Errorf("Vec3.Max() = %v, want %v", got, want)
	}
}
