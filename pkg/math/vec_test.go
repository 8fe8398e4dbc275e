package math

import (
	"testing"

	"github.com/chewxy/math32"
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

func TestVec2Cross(t *testing.T) {
	tests := []struct {
		a, b Vec2
		want float32
	}{
		{Vec2{1, 0}, Vec2{0, 1}, 1},
		{Vec2{0, 1}, Vec2{1, 0}, -1},
		{Vec2{2, 4}, Vec2{1, 2}, 0},
	}
	for _, tt := range tests {
		if got := tt.a.Cross(tt.b); got != tt.want {
			t.Errorf("%v.Cross(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestVec2IsFinite(t *testing.T) {
	if !(Vec2{1, 2}).IsFinite() {
		t.Error("finite vector reported as non-finite")
	}
	if (Vec2{math32.NaN(), 0}).IsFinite() {
		t.Error("NaN vector reported as finite")
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

func TestVec3NormalizeZero(t *testing.T) {
	got := Vec3{}.Normalize()
	if !got.IsZero() {
		t.Errorf("Vec3{}.Normalize() = %v, want zero vector", got)
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !(Vec3{1, 2, 3}).IsFinite() {
		t.Error("expected finite vector")
	}
	if (Vec3{math32.NaN(), 0, 0}).IsFinite() {
		t.Error("NaN component should not be finite")
	}
	if (Vec4{0, 0, 0, math32.Inf(1)}).IsFinite() {
		t.Error("Inf component should not be finite")
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -2}
	b := Vec3{3, 0, -1}
	if got := a.Min(b); got != (Vec3{1, 0, -2}) {
		t.Errorf("Min() = %v", got)
	}
	if got := a.Max(b); got != (Vec3{3, 5, -1}) {
		t.Errorf("Max() = %v", got)
	}
}

func TestUVec3IsDegenerate(t *testing.T) {
	tests := []struct {
		tri  UVec3
		want bool
	}{
		{UVec3{0, 1, 2}, false},
		{UVec3{0, 0, 2}, true},
		{UVec3{0, 1, 1}, true},
		{UVec3{2, 1, 2}, true},
	}
	for _, tt := range tests {
		if got := tt.tri.IsDegenerate(); got != tt.want {
			t.Errorf("%v.IsDegenerate() = %v, want %v", tt.tri, got, tt.want)
		}
	}
}
