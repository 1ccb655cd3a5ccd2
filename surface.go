// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package depth

import (
	"github.com/gogpu/depth/hit"
	"golang.org/x/image/math/f64"
)

// RenderMode controls whether a surface honors an explicit sort key.
type RenderMode uint8

const (
	// RenderModeNormal draws the surface at its scene-default depth and
	// ignores the sort key.
	RenderModeNormal RenderMode = iota

	// RenderModeOverride draws the surface by its sort key.
	RenderModeOverride
)

func (m RenderMode) String() string {
	switch m {
	case RenderModeNormal:
		return "normal"
	case RenderModeOverride:
		return "override"
	default:
		return "unknown"
	}
}

// Surface is the render state owned by a depth node.
//
// Some hosts invalidate cached geometry on every write, so the propagator
// only calls a setter when the value actually changes.
type Surface interface {
	RenderMode() RenderMode
	SetRenderMode(RenderMode)

	OverrideSorting() bool
	SetOverrideSorting(bool)

	SortKey() SortKey
	SetLayer(LayerID)
	SetOrder(int)
}

// Renderer is a drawable with a sort key. Every renderer below a depth node
// receives that node's effective sort key on each propagation.
type Renderer interface {
	SortKey() SortKey
	SetSortKey(SortKey)
}

// Router routes pointer input to the hit targets of a node.
// [hit.Raycaster] is the default implementation.
type Router interface {
	Raycast(p f64.Vec2) (hit.Target, bool)
}

// SurfaceFactory builds the surface for a depth node the first time the
// node needs one.
type SurfaceFactory func(t *Tree, id NodeID) Surface

// RouterFactory builds the input router for a depth node the first time
// the node needs one.
type RouterFactory func(t *Tree, id NodeID) Router

// Canvas is the default [Surface]: plain render state with a write counter.
type Canvas struct {
	mode     RenderMode
	override bool
	key      SortKey
	writes   int
}

// NewCanvas returns a canvas in RenderModeNormal on the default layer.
func NewCanvas() *Canvas {
	return &Canvas{}
}

func (c *Canvas) RenderMode() RenderMode { return c.mode }
func (c *Canvas) OverrideSorting() bool  { return c.override }
func (c *Canvas) SortKey() SortKey       { return c.key }

func (c *Canvas) SetRenderMode(m RenderMode) {
	c.mode = m
	c.writes++
}

func (c *Canvas) SetOverrideSorting(v bool) {
	c.override = v
	c.writes++
}

func (c *Canvas) SetLayer(id LayerID) {
	c.key.Layer = id
	c.writes++
}

func (c *Canvas) SetOrder(order int) {
	c.key.Order = order
	c.writes++
}

// Writes returns the number of setter calls the canvas has received.
func (c *Canvas) Writes() int { return c.writes }

// Sprite is the default [Renderer]: a named sort key with a write counter.
type Sprite struct {
	Name string

	key    SortKey
	writes int
}

// NewSprite creates a sprite on the default layer at order 0.
func NewSprite(name string) *Sprite {
	return &Sprite{Name: name}
}

func (s *Sprite) SortKey() SortKey { return s.key }

func (s *Sprite) SetSortKey(k SortKey) {
	s.key = k
	s.writes++
}

// Writes returns the number of SetSortKey calls the sprite has received.
func (s *Sprite) Writes() int { return s.writes }

func (s *Sprite) String() string { return s.Name }

func defaultSurfaceFactory(*Tree, NodeID) Surface { return NewCanvas() }

func defaultRouterFactory(*Tree, NodeID) Router { return hit.NewRaycaster() }
