// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package depth

import (
	"fmt"
	"slices"

	"github.com/gogpu/depth/pool"
)

// NodeID indexes a node in a [Tree].
type NodeID int32

// NoNode is the parent of root nodes and the result of failed lookups.
const NoNode NodeID = -1

// sceneNode is one entry in the tree arena.
type sceneNode struct {
	name     string
	parent   NodeID
	children []NodeID

	depth     *depthState // nil for plain scene nodes
	group     *LayerID    // non-nil for sorting groups
	renderers []Renderer
}

// frame is a pending visit in a subtree walk: the node and the nearest
// depth node at or above its parent.
type frame struct {
	id    NodeID
	owner NodeID
}

// Tree is an explicit scene hierarchy. Nodes live in an arena and are
// addressed by [NodeID]; parent links and child lists are kept up to date
// by the mutating methods.
//
// Every node may carry a depth configuration ([Tree.SetDepth]), a sorting
// group ([Tree.SetGroup]) and any number of renderers
// ([Tree.AttachRenderer]).
//
// Methods taking a NodeID panic if the ID does not belong to the tree,
// except where they return [ErrUnknownNode]. A Tree is not safe for
// concurrent use.
type Tree struct {
	nodes     []sceneNode
	frames    *pool.Pool[frame]
	renderers *pool.Pool[Renderer]
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{
		frames:    pool.New[frame](),
		renderers: pool.New[Renderer](),
	}
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Contains reports whether id belongs to the tree.
func (t *Tree) Contains(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

func (t *Tree) check(id NodeID) error {
	if !t.Contains(id) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return nil
}

func (t *Tree) node(id NodeID) *sceneNode {
	if !t.Contains(id) {
		panic(fmt.Sprintf("depth: node %d out of range [0,%d)", id, len(t.nodes)))
	}
	return &t.nodes[id]
}

// Add creates a node under parent. Pass NoNode to create a root.
func (t *Tree) Add(parent NodeID, name string) NodeID {
	if parent != NoNode {
		t.node(parent)
	}
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, sceneNode{name: name, parent: parent})
	if parent != NoNode {
		p := &t.nodes[parent]
		p.children = append(p.children, id)
	}
	return id
}

// Name returns the name the node was created with.
func (t *Tree) Name(id NodeID) string {
	return t.node(id).name
}

// Find returns the first node with the given name, in creation order.
func (t *Tree) Find(name string) (NodeID, bool) {
	for i := range t.nodes {
		if t.nodes[i].name == name {
			return NodeID(i), true
		}
	}
	return NoNode, false
}

// Parent returns the parent of id, or NoNode for roots.
func (t *Tree) Parent(id NodeID) NodeID {
	return t.node(id).parent
}

// Children returns the children of id in insertion order.
// The returned slice must not be modified.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.node(id).children
}

// Roots returns every node without a parent, in creation order.
func (t *Tree) Roots() []NodeID {
	var roots []NodeID
	for i := range t.nodes {
		if t.nodes[i].parent == NoNode {
			roots = append(roots, NodeID(i))
		}
	}
	return roots
}

// Reparent moves id and its subtree under parent. Pass NoNode to make id a
// root. Moving a node below itself returns [ErrCycle].
func (t *Tree) Reparent(id, parent NodeID) error {
	if err := t.check(id); err != nil {
		return err
	}
	if parent != NoNode {
		if err := t.check(parent); err != nil {
			return err
		}
		for p := parent; p != NoNode; p = t.nodes[p].parent {
			if p == id {
				return fmt.Errorf("%w: cannot move %q below itself", ErrCycle, t.nodes[id].name)
			}
		}
	}

	n := &t.nodes[id]
	if n.parent == parent {
		return nil
	}
	if n.parent != NoNode {
		old := &t.nodes[n.parent]
		if i := slices.Index(old.children, id); i >= 0 {
			old.children = slices.Delete(old.children, i, i+1)
		}
	}
	n.parent = parent
	if parent != NoNode {
		p := &t.nodes[parent]
		p.children = append(p.children, id)
	}
	return nil
}

// SetDepth makes id a depth node with the given configuration, or updates
// the configuration of an existing depth node. A surface or router already
// built for the node is kept.
func (t *Tree) SetDepth(id NodeID, d Depth) {
	n := t.node(id)
	if n.depth == nil {
		n.depth = &depthState{}
	}
	n.depth.cfg = d
}

// Depth returns the depth configuration of id.
func (t *Tree) Depth(id NodeID) (Depth, bool) {
	n := t.node(id)
	if n.depth == nil {
		return Depth{}, false
	}
	return n.depth.cfg, true
}

// IsDepth reports whether id carries a depth configuration.
func (t *Tree) IsDepth(id NodeID) bool {
	return t.node(id).depth != nil
}

// ClearDepth turns id back into a plain scene node. Its surface and router
// are dropped.
func (t *Tree) ClearDepth(id NodeID) {
	t.node(id).depth = nil
}

// SetGroup makes id a sorting group drawing on layer. Depth trees below a
// group take their layer from the nearest group above their root.
func (t *Tree) SetGroup(id NodeID, layer LayerID) {
	t.node(id).group = &layer
}

// Group returns the layer of the sorting group on id.
func (t *Tree) Group(id NodeID) (LayerID, bool) {
	n := t.node(id)
	if n.group == nil {
		return 0, false
	}
	return *n.group, true
}

// ClearGroup removes the sorting group from id.
func (t *Tree) ClearGroup(id NodeID) {
	t.node(id).group = nil
}

// AttachRenderer attaches r to id. Nil renderers are ignored.
func (t *Tree) AttachRenderer(id NodeID, r Renderer) {
	n := t.node(id)
	if r == nil {
		return
	}
	n.renderers = append(n.renderers, r)
}

// DetachRenderer removes r from id. It reports whether r was attached.
func (t *Tree) DetachRenderer(id NodeID, r Renderer) bool {
	n := t.node(id)
	i := slices.Index(n.renderers, r)
	if i < 0 {
		return false
	}
	n.renderers = slices.Delete(n.renderers, i, i+1)
	return true
}

// Renderers returns the renderers attached directly to id.
// The returned slice must not be modified.
func (t *Tree) Renderers(id NodeID) []Renderer {
	return t.node(id).renderers
}

// Effective returns the sort key computed for id by the last propagation
// that reached it. ok is false for plain nodes and depth nodes that have
// not been propagated yet.
func (t *Tree) Effective(id NodeID) (key SortKey, ok bool) {
	n := t.node(id)
	if n.depth == nil || !n.depth.valid {
		return SortKey{}, false
	}
	return SortKey{Layer: n.depth.layer, Order: n.depth.order}, true
}

// Surface returns the surface built for id, or nil.
func (t *Tree) Surface(id NodeID) Surface {
	n := t.node(id)
	if n.depth == nil {
		return nil
	}
	return n.depth.surface
}

// Router returns the input router built for id, or nil.
func (t *Tree) Router(id NodeID) Router {
	n := t.node(id)
	if n.depth == nil {
		return nil
	}
	return n.depth.router
}

// NearestDepthAncestor returns the closest strict ancestor of id that is a
// depth node, skipping plain intermediates. It returns NoNode if there is
// none.
func (t *Tree) NearestDepthAncestor(id NodeID) NodeID {
	t.node(id)
	anc, _ := t.nearestDepth(id)
	return anc
}

// NearestGroupAncestor returns the closest strict ancestor of id that is a
// sorting group, or NoNode.
func (t *Tree) NearestGroupAncestor(id NodeID) NodeID {
	t.node(id)
	anc, _ := t.nearestGroup(id)
	return anc
}

// TreeRoot returns the topmost depth node at or above id: the node whose
// update drives propagation for id. It returns NoNode if neither id nor any
// ancestor is a depth node.
func (t *Tree) TreeRoot(id NodeID) NodeID {
	t.node(id)
	root, _ := t.treeRoot(id)
	return root
}

func (t *Tree) nearestDepth(id NodeID) (NodeID, error) {
	return t.ancestor(id, func(n *sceneNode) bool { return n.depth != nil })
}

func (t *Tree) nearestGroup(id NodeID) (NodeID, error) {
	return t.ancestor(id, func(n *sceneNode) bool { return n.group != nil })
}

func (t *Tree) treeRoot(id NodeID) (NodeID, error) {
	root := NoNode
	if t.nodes[id].depth != nil {
		root = id
	}
	for cur, hops := id, 0; ; hops++ {
		if hops > len(t.nodes) {
			return NoNode, fmt.Errorf("%w: above %q", ErrCycle, t.nodes[id].name)
		}
		anc, err := t.nearestDepth(cur)
		if err != nil {
			return NoNode, err
		}
		if anc == NoNode {
			return root, nil
		}
		root, cur = anc, anc
	}
}

// ancestor walks the parent links of id and returns the first strict
// ancestor matching pred. The walk is bounded by the node count.
func (t *Tree) ancestor(id NodeID, pred func(*sceneNode) bool) (NodeID, error) {
	hops := 0
	for p := t.nodes[id].parent; p != NoNode; p = t.nodes[p].parent {
		if hops++; p == id || hops > len(t.nodes) {
			return NoNode, fmt.Errorf("%w: above %q", ErrCycle, t.nodes[id].name)
		}
		if pred(&t.nodes[p]) {
			return p, nil
		}
	}
	return NoNode, nil
}

// walk visits the subtree of root in pre-order. owner is the nearest depth
// node at or above the visited node, or NoNode.
func (t *Tree) walk(root NodeID, visit func(id, owner NodeID)) error {
	owner, err := t.nearestDepth(root)
	if err != nil {
		return err
	}

	stack := t.frames.Get()
	defer t.frames.Put(stack)

	stack.Append(frame{id: root, owner: owner})
	visited := 0
	for stack.Len() > 0 {
		f := stack.Items[stack.Len()-1]
		stack.Items = stack.Items[:stack.Len()-1]

		if visited++; visited > len(t.nodes) {
			return fmt.Errorf("%w: below %q", ErrCycle, t.nodes[root].name)
		}

		n := &t.nodes[f.id]
		if n.depth != nil {
			f.owner = f.id
		}
		visit(f.id, f.owner)

		// Push in reverse so children are visited in insertion order.
		for i := len(n.children) - 1; i >= 0; i-- {
			stack.Append(frame{id: n.children[i], owner: f.owner})
		}
	}
	return nil
}

// collectDepth appends every depth node in the subtree of root, root
// included, to out in pre-order.
func (t *Tree) collectDepth(root NodeID, out *pool.List[NodeID]) error {
	return t.walk(root, func(id, _ NodeID) {
		if t.nodes[id].depth != nil {
			out.Append(id)
		}
	})
}

// collectRenderers appends every renderer in the subtree of root to out in
// pre-order.
func (t *Tree) collectRenderers(root NodeID, out *pool.List[Renderer]) error {
	return t.walk(root, func(id, _ NodeID) {
		out.Append(t.nodes[id].renderers...)
	})
}
