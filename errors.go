// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package depth

import "errors"

var (
	// ErrCycle is returned when the node hierarchy loops back on itself.
	// Trees built through [Tree.Add] and [Tree.Reparent] cannot contain a
	// cycle; seeing this error means the tree was corrupted.
	ErrCycle = errors.New("depth: cyclic node hierarchy")

	// ErrUnknownNode is returned for a NodeID that does not belong to the tree.
	ErrUnknownNode = errors.New("depth: unknown node")

	// ErrNotDepthNode is returned when an operation needs a depth node
	// and the node carries no depth configuration.
	ErrNotDepthNode = errors.New("depth: node has no depth configuration")

	// ErrDuplicateLayer is returned when registering a sorting layer name twice.
	ErrDuplicateLayer = errors.New("depth: duplicate sorting layer")

	// ErrUnknownLayer is returned for a sorting layer name or ID that is
	// not registered.
	ErrUnknownLayer = errors.New("depth: unknown sorting layer")
)
