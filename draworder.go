// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package depth

import (
	"cmp"
	"slices"
)

// DrawOrder returns the renderers in the subtree of root in the order they
// draw, back to front: by layer rank in reg, then by order. Renderers with
// equal sort keys keep their tree pre-order.
//
// Pass NoNode as root to order the renderers of the whole forest. With a
// nil registry, layers are ordered by ID.
func (t *Tree) DrawOrder(reg *LayerRegistry, root NodeID) ([]Renderer, error) {
	roots := []NodeID{root}
	if root == NoNode {
		roots = t.Roots()
	} else if err := t.check(root); err != nil {
		return nil, err
	}

	list := t.renderers.Get()
	defer t.renderers.Put(list)
	for _, r := range roots {
		if err := t.collectRenderers(r, list); err != nil {
			return nil, err
		}
	}
	rs := slices.Clone(list.Items)

	compare := compareByID
	if reg != nil {
		compare = reg.Compare
	}
	slices.SortStableFunc(rs, func(a, b Renderer) int {
		return compare(a.SortKey(), b.SortKey())
	})
	return rs, nil
}

func compareByID(a, b SortKey) int {
	if c := cmp.Compare(a.Layer, b.Layer); c != 0 {
		return c
	}
	return cmp.Compare(a.Order, b.Order)
}
