// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package hit

import (
	"testing"

	"golang.org/x/image/math/f64"
)

func TestRaycasterTopMost(t *testing.T) {
	r := NewRaycaster()
	back := Rect{Min: f64.Vec2{0, 0}, Max: f64.Vec2{100, 100}}
	front := Rect{Min: f64.Vec2{40, 40}, Max: f64.Vec2{60, 60}}
	r.Add(back)
	r.Add(front)

	got, ok := r.Raycast(f64.Vec2{50, 50})
	if !ok || got != Target(front) {
		t.Errorf("Raycast(50,50) = %v, %v; want front", got, ok)
	}

	got, ok = r.Raycast(f64.Vec2{10, 10})
	if !ok || got != Target(back) {
		t.Errorf("Raycast(10,10) = %v, %v; want back", got, ok)
	}

	if _, ok := r.Raycast(f64.Vec2{200, 200}); ok {
		t.Error("Raycast(200,200) should miss")
	}
}

func TestRaycasterPolygonFallsThrough(t *testing.T) {
	r := NewRaycaster()
	back := Rect{Min: f64.Vec2{0, 0}, Max: f64.Vec2{10, 10}}
	tri := NewPolygon(Identity, f64.Vec2{0, 0}, f64.Vec2{10, 0}, f64.Vec2{0, 10})
	r.Add(back)
	r.Add(tri)

	// Outside the triangle but inside its bounds: the rect underneath gets it.
	got, ok := r.Raycast(f64.Vec2{9, 9})
	if !ok || got != Target(back) {
		t.Errorf("Raycast(9,9) = %v, %v; want back rect", got, ok)
	}
}

func TestRaycasterDisabled(t *testing.T) {
	r := NewRaycaster()
	r.Add(Rect{Max: f64.Vec2{10, 10}})
	r.SetEnabled(false)

	if r.Enabled() {
		t.Error("Enabled() = true after SetEnabled(false)")
	}
	if _, ok := r.Raycast(f64.Vec2{5, 5}); ok {
		t.Error("disabled raycaster should miss")
	}
}

func TestRaycasterRemove(t *testing.T) {
	r := NewRaycaster()
	a := Rect{Max: f64.Vec2{1, 1}}
	r.Add(a)
	r.Add(nil)

	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	if !r.Remove(a) {
		t.Error("Remove(a) = false, want true")
	}
	if r.Remove(a) {
		t.Error("second Remove(a) = true, want false")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}
