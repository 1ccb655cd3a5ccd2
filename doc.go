// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package depth computes consistent draw order for hierarchies of UI nodes.
//
// # Overview
//
// A scene is a [Tree] of nodes. Some nodes are depth nodes: they carry an
// order that is either absolute or relative to the nearest depth node
// above them. Some nodes are sorting groups that select a sorting layer.
// Any node may hold renderers.
//
// A [Propagator] flattens each depth tree into one sorting layer and one
// effective order per node, then writes those values into the nodes'
// surfaces and into every renderer below them.
//
// # Quick Start
//
//	tree := depth.NewTree()
//	root := tree.Add(depth.NoNode, "window")
//	tree.SetDepth(root, depth.NewDepth(10))
//
//	popup := tree.Add(root, "popup")
//	tree.SetDepth(popup, depth.Depth{Order: 5, Mode: depth.Relative, Surface: true})
//	tree.AttachRenderer(popup, depth.NewSprite("shadow"))
//
//	p := depth.NewPropagator(tree)
//	if _, err := p.UpdateAll(); err != nil {
//	    log.Fatal(err)
//	}
//	key, _ := tree.Effective(popup) // {Layer: 0, Order: 15}
//
// # Update model
//
// There is no global ticking. Call [Propagator.UpdateAll] from the
// application's frame loop, or [Propagator.Propagate] after changing a
// tree. [Propagator.Update] mirrors a per-node frame callback: only tree
// roots do work, so calling it for every node costs one pass per tree.
//
// # Layers
//
// Sorting layers are named and ordered by a [LayerRegistry]. The layer used
// for trees outside any sorting group is injected with [WithDefaultLayer].
//
// # Related packages
//
//   - [github.com/gogpu/depth/hit]: hit targets and the default input router
//   - [github.com/gogpu/depth/pool]: scratch lists used by tree walks
//   - [github.com/gogpu/depth/scenefile]: TOML and YAML scene documents
package depth
