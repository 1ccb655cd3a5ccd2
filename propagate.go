// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package depth

import (
	"errors"
	"fmt"

	"github.com/gogpu/depth/pool"
)

// Stats describes the work done by one Propagator call.
type Stats struct {
	// Trees is the number of depth trees propagated.
	Trees int

	// Skipped counts Update calls that returned early because the node has
	// a depth-bearing ancestor.
	Skipped int

	// Nodes is the number of depth nodes visited.
	Nodes int

	// Resolutions counts effective-order computations. Each node is
	// resolved at most once per tree, so this never exceeds Nodes.
	Resolutions int

	// Renderers is the number of renderer sort keys written.
	Renderers int

	// SurfaceWrites counts setter calls on node surfaces. Unchanged values
	// are not written.
	SurfaceWrites int

	// SurfacesBuilt and RoutersBuilt count companions created on demand.
	SurfacesBuilt int
	RoutersBuilt  int
}

func (s *Stats) add(o Stats) {
	s.Trees += o.Trees
	s.Skipped += o.Skipped
	s.Nodes += o.Nodes
	s.Resolutions += o.Resolutions
	s.Renderers += o.Renderers
	s.SurfaceWrites += o.SurfaceWrites
	s.SurfacesBuilt += o.SurfacesBuilt
	s.RoutersBuilt += o.RoutersBuilt
}

// Propagator computes effective sort keys for the depth trees of a [Tree]
// and pushes them into surfaces and renderers.
//
// A depth tree is a depth node without a depth-bearing ancestor (its root)
// together with every depth node below it. For each tree the propagator:
//
//  1. resolves one sorting layer for the whole tree from the nearest
//     sorting group above the root, falling back to the default layer
//  2. resolves the effective order of every node; relative nodes add
//     their order to their nearest depth ancestor's effective order
//  3. writes the owning node's sort key into every renderer of the
//     subtree, where the owner is the nearest depth node at or above the
//     renderer
//  4. updates each node's surface, building it (and its router) on first
//     use and writing only the fields that changed
//
// Propagation is synchronous and single-threaded. The Propagator reuses
// scratch lists between calls; like the Tree, it is not safe for
// concurrent use.
type Propagator struct {
	tree  *Tree
	opts  propagatorOptions
	nodes *pool.Pool[NodeID]
}

// NewPropagator creates a propagator for t.
func NewPropagator(t *Tree, opts ...PropagatorOption) *Propagator {
	o := defaultPropagatorOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Propagator{
		tree:  t,
		opts:  o,
		nodes: pool.New[NodeID](),
	}
}

// Tree returns the tree the propagator works on.
func (p *Propagator) Tree() *Tree {
	return p.tree
}

// Update is the per-frame entry point for one depth node.
//
// If id has a depth-bearing ancestor, Update does nothing and reports the
// call as skipped: the tree root's own Update covers id. Otherwise id is a
// tree root and its tree is propagated.
func (p *Propagator) Update(id NodeID) (Stats, error) {
	t := p.tree
	if err := t.check(id); err != nil {
		return Stats{}, err
	}
	if t.nodes[id].depth == nil {
		return Stats{}, fmt.Errorf("%w: %q", ErrNotDepthNode, t.nodes[id].name)
	}

	anc, err := t.nearestDepth(id)
	if err != nil {
		return Stats{}, p.fail(id, err)
	}
	if anc != NoNode {
		return Stats{Skipped: 1}, nil
	}
	return p.propagate(id)
}

// UpdateAll calls Update for every depth node in creation order, the way a
// host loop ticking every node would. Only tree roots do any work.
// It stops at the first error.
func (p *Propagator) UpdateAll() (Stats, error) {
	var total Stats
	for i := range p.tree.nodes {
		if p.tree.nodes[i].depth == nil {
			continue
		}
		st, err := p.Update(NodeID(i))
		total.add(st)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Propagate recomputes the depth tree containing id on demand, for example
// after its configuration changed. id may be any node of the tree, or a
// plain node below one of its depth nodes; propagation always starts at
// the tree root.
// It returns [ErrNotDepthNode] if no depth node is at or above id.
func (p *Propagator) Propagate(id NodeID) (Stats, error) {
	t := p.tree
	if err := t.check(id); err != nil {
		return Stats{}, err
	}
	root, err := t.treeRoot(id)
	if err != nil {
		return Stats{}, p.fail(id, err)
	}
	if root == NoNode {
		return Stats{}, fmt.Errorf("%w: %q", ErrNotDepthNode, t.nodes[id].name)
	}
	return p.propagate(root)
}

func (p *Propagator) propagate(root NodeID) (Stats, error) {
	st := Stats{Trees: 1}

	nodes := p.nodes.Get()
	defer p.nodes.Put(nodes)

	if err := p.tree.collectDepth(root, nodes); err != nil {
		return st, p.fail(root, err)
	}
	st.Nodes = nodes.Len()

	if err := p.resolveLayer(root, nodes.Items); err != nil {
		return st, p.fail(root, err)
	}
	if err := p.resolveOrders(nodes.Items, &st); err != nil {
		return st, p.fail(root, err)
	}
	if err := p.applyRenderers(root, &st); err != nil {
		return st, p.fail(root, err)
	}
	for _, id := range nodes.Items {
		p.applySurface(id, &st)
	}

	Logger().Debug("depth: propagated",
		"root", p.tree.nodes[root].name,
		"nodes", st.Nodes,
		"resolutions", st.Resolutions,
		"renderers", st.Renderers,
		"surface_writes", st.SurfaceWrites)
	return st, nil
}

func (p *Propagator) fail(id NodeID, err error) error {
	if errors.Is(err, ErrCycle) {
		Logger().Warn("depth: propagation aborted", "node", p.tree.nodes[id].name, "err", err)
	}
	return err
}

// resolveLayer assigns one layer to every node of the tree: the layer of
// the nearest sorting group above root, or the default layer.
func (p *Propagator) resolveLayer(root NodeID, nodes []NodeID) error {
	t := p.tree
	layer := p.opts.defaultLayer
	g, err := t.nearestGroup(root)
	if err != nil {
		return err
	}
	if g != NoNode {
		layer = *t.nodes[g].group
	}
	for _, id := range nodes {
		t.nodes[id].depth.layer = layer
	}
	return nil
}

// resolveOrders computes the effective order of every node.
func (p *Propagator) resolveOrders(nodes []NodeID, st *Stats) error {
	t := p.tree
	for _, id := range nodes {
		t.nodes[id].depth.resolved = false
	}
	for _, id := range nodes {
		if err := p.resolveOrder(id, 0, st); err != nil {
			return err
		}
	}
	return nil
}

// resolveOrder computes the effective order of id, resolving its depth
// ancestor first when id is relative. Resolved nodes return immediately.
func (p *Propagator) resolveOrder(id NodeID, hops int, st *Stats) error {
	t := p.tree
	s := t.nodes[id].depth
	if s.resolved {
		return nil
	}
	if hops > len(t.nodes) {
		return fmt.Errorf("%w: resolving %q", ErrCycle, t.nodes[id].name)
	}

	st.Resolutions++
	order := s.cfg.Order
	if s.cfg.Mode == Relative {
		anc, err := t.nearestDepth(id)
		if err != nil {
			return err
		}
		if anc != NoNode {
			if err := p.resolveOrder(anc, hops+1, st); err != nil {
				return err
			}
			order += t.nodes[anc].depth.order
		}
	}

	s.order = order
	s.resolved = true
	s.valid = true
	return nil
}

// applyRenderers writes every renderer's owner sort key. Renderer writes
// are unconditional.
func (p *Propagator) applyRenderers(root NodeID, st *Stats) error {
	t := p.tree
	return t.walk(root, func(id, owner NodeID) {
		if len(t.nodes[id].renderers) == 0 {
			return
		}
		// A renderer may detach itself from SetSortKey.
		rs := t.renderers.GetCopy(t.nodes[id].renderers)
		defer t.renderers.Put(rs)

		s := t.nodes[owner].depth
		key := SortKey{Layer: s.layer, Order: s.order}
		for _, r := range rs.Items {
			r.SetSortKey(key)
		}
		st.Renderers += rs.Len()
	})
}

// applySurface brings the surface of id in line with its effective sort
// key, writing only what differs.
func (p *Propagator) applySurface(id NodeID, st *Stats) {
	s := p.tree.nodes[id].depth
	if !s.cfg.Surface {
		return
	}

	if s.surface == nil {
		s.surface = p.opts.newSurface(p.tree, id)
		if s.surface == nil {
			return
		}
		st.SurfacesBuilt++
	}

	sf := s.surface
	if sf.RenderMode() == RenderModeNormal {
		sf.SetRenderMode(RenderModeOverride)
		st.SurfaceWrites++
	}
	if !sf.OverrideSorting() {
		sf.SetOverrideSorting(true)
		st.SurfaceWrites++
	}
	key := sf.SortKey()
	if key.Layer != s.layer {
		sf.SetLayer(s.layer)
		st.SurfaceWrites++
	}
	if key.Order != s.order {
		sf.SetOrder(s.order)
		st.SurfaceWrites++
	}

	if s.cfg.HitTest && s.router == nil {
		s.router = p.opts.newRouter(p.tree, id)
		if s.router != nil {
			st.RoutersBuilt++
		}
	}
}
