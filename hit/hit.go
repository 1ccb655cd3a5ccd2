// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package hit

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Target is anything that can accept a pointer at a screen position.
type Target interface {
	// Contains reports whether the screen-space point p hits the target.
	Contains(p f64.Vec2) bool
}

// Identity is the identity affine transform.
var Identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// Transform applies the affine transform m to p.
func Transform(m f64.Aff3, p f64.Vec2) f64.Vec2 {
	return f64.Vec2{
		m[0]*p[0] + m[1]*p[1] + m[2],
		m[3]*p[0] + m[4]*p[1] + m[5],
	}
}

// Invert returns the inverse of m.
// Returns the identity transform if m is not invertible.
func Invert(m f64.Aff3) f64.Aff3 {
	det := m[0]*m[4] - m[1]*m[3]
	if math.Abs(det) < 1e-10 {
		return Identity
	}

	invDet := 1.0 / det
	return f64.Aff3{
		m[4] * invDet,
		-m[1] * invDet,
		(m[1]*m[5] - m[2]*m[4]) * invDet,
		-m[3] * invDet,
		m[0] * invDet,
		(m[2]*m[3] - m[0]*m[5]) * invDet,
	}
}

// Rect is an axis-aligned screen rectangle that receives pointer input
// without drawing anything. Use it to make an invisible region block or
// catch clicks.
type Rect struct {
	Min, Max f64.Vec2
}

// Contains reports whether p lies inside the rectangle, edges included.
func (r Rect) Contains(p f64.Vec2) bool {
	return p[0] >= r.Min[0] && p[0] <= r.Max[0] && p[1] >= r.Min[1] && p[1] <= r.Max[1]
}

// Polygon is an image whose hit area is a closed polygon instead of its
// bounding rectangle. Points are in local space; ToScreen maps local space
// to screen space.
type Polygon struct {
	Points   []f64.Vec2
	ToScreen f64.Aff3

	toLocal f64.Aff3
}

// NewPolygon creates a polygon target with the given local→screen transform.
func NewPolygon(toScreen f64.Aff3, points ...f64.Vec2) *Polygon {
	return &Polygon{
		Points:   points,
		ToScreen: toScreen,
		toLocal:  Invert(toScreen),
	}
}

// SetTransform replaces the local→screen transform.
func (g *Polygon) SetTransform(toScreen f64.Aff3) {
	g.ToScreen = toScreen
	g.toLocal = Invert(toScreen)
}

// Contains reports whether the screen point p lies inside the polygon
// under the non-zero winding rule.
func (g *Polygon) Contains(p f64.Vec2) bool {
	if len(g.Points) < 3 {
		return false
	}
	return g.Winding(Transform(g.toLocal, p)) != 0
}

// Winding returns the winding number of a local-space point relative to
// the polygon. 0 = outside.
// Uses ray casting with a horizontal ray to the right.
func (g *Polygon) Winding(pt f64.Vec2) int {
	var winding int
	n := len(g.Points)
	for i := 0; i < n; i++ {
		winding += edgeWinding(g.Points[i], g.Points[(i+1)%n], pt)
	}
	return winding
}

// edgeWinding computes the winding contribution of one polygon edge.
func edgeWinding(p0, p1, pt f64.Vec2) int {
	if p0[1] <= pt[1] && p1[1] > pt[1] {
		// Upward crossing
		if isLeft(p0, p1, pt) > 0 {
			return 1
		}
	} else if p0[1] > pt[1] && p1[1] <= pt[1] {
		// Downward crossing
		if isLeft(p0, p1, pt) < 0 {
			return -1
		}
	}
	return 0
}

// isLeft returns positive if pt is left of line p0-p1, negative if right, 0 if on.
func isLeft(p0, p1, pt f64.Vec2) float64 {
	return (p1[0]-p0[0])*(pt[1]-p0[1]) - (pt[0]-p0[0])*(p1[1]-p0[1])
}
