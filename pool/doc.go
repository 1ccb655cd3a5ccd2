// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pool provides typed, pool-backed scratch lists.
//
// Tree walks in package depth collect nodes and renderers into short-lived
// slices on every update. Pool keeps those slices alive between updates so
// a steady-state propagation does not allocate.
//
// Handles are counted: [Pool.Outstanding] reports lists taken and not yet
// returned, which lets tests assert that a walk released everything it
// acquired.
package pool
