// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package depth

import (
	"fmt"
	"strings"
)

// OrderMode selects how a node's configured order is interpreted.
type OrderMode uint8

const (
	// Absolute uses the configured order as is.
	Absolute OrderMode = iota

	// Relative adds the configured order to the effective order of the
	// nearest depth-bearing ancestor. Without such an ancestor it behaves
	// like Absolute.
	Relative
)

func (m OrderMode) String() string {
	switch m {
	case Absolute:
		return "absolute"
	case Relative:
		return "relative"
	default:
		return fmt.Sprintf("OrderMode(%d)", m)
	}
}

// ParseOrderMode parses "absolute" or "relative", ignoring case.
// The empty string parses as Absolute.
func ParseOrderMode(s string) (OrderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "absolute":
		return Absolute, nil
	case "relative":
		return Relative, nil
	default:
		return Absolute, fmt.Errorf("depth: invalid order mode %q", s)
	}
}

// Depth is the sort-order configuration of a depth node.
type Depth struct {
	// Order is the configured sorting order.
	Order int

	// Mode selects absolute or parent-relative ordering.
	Mode OrderMode

	// Surface makes the node own a render surface that receives the
	// effective layer and order.
	Surface bool

	// HitTest attaches an input router to the node's surface.
	// Ignored when Surface is false.
	HitTest bool
}

// NewDepth returns the default configuration of a UI depth node: absolute
// order with a hit-tested surface.
func NewDepth(order int) Depth {
	return Depth{Order: order, Mode: Absolute, Surface: true, HitTest: true}
}

// depthState is a depth node's configuration plus the values derived from
// it by the last propagation.
type depthState struct {
	cfg Depth

	order    int
	layer    LayerID
	resolved bool
	valid    bool // order/layer were written by at least one propagation

	surface Surface
	router  Router
}
