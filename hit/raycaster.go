// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package hit

import "golang.org/x/image/math/f64"

// Raycaster routes pointer positions to the targets registered on one
// node. Targets added later sit on top of earlier ones.
//
// A Raycaster is the input-routing companion that depth.Propagator
// attaches to nodes that request hit testing.
type Raycaster struct {
	targets []Target
	enabled bool
}

// NewRaycaster creates an enabled raycaster with no targets.
func NewRaycaster() *Raycaster {
	return &Raycaster{enabled: true}
}

// Add registers a target on top of the existing ones.
func (r *Raycaster) Add(t Target) {
	if t == nil {
		return
	}
	r.targets = append(r.targets, t)
}

// Remove unregisters a target. It reports whether t was registered.
func (r *Raycaster) Remove(t Target) bool {
	for i, x := range r.targets {
		if x == t {
			r.targets = append(r.targets[:i], r.targets[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered targets.
func (r *Raycaster) Len() int {
	return len(r.targets)
}

// SetEnabled turns routing on or off. A disabled raycaster hits nothing.
func (r *Raycaster) SetEnabled(enabled bool) {
	r.enabled = enabled
}

// Enabled reports whether the raycaster routes input.
func (r *Raycaster) Enabled() bool {
	return r.enabled
}

// Raycast returns the top-most target containing p.
func (r *Raycaster) Raycast(p f64.Vec2) (Target, bool) {
	if !r.enabled {
		return nil, false
	}
	for i := len(r.targets) - 1; i >= 0; i-- {
		if r.targets[i].Contains(p) {
			return r.targets[i], true
		}
	}
	return nil, false
}
