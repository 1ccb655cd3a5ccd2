// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scenefile reads declarative scene documents for package depth.
//
// A document lists sorting layers and a forest of nodes. It can be written
// in TOML:
//
//	default_layer = "UI"
//	layers = ["Background", "Default", "UI"]
//
//	[[node]]
//	name = "window"
//	depth = { order = 10 }
//	renderers = ["frame"]
//
//	  [[node.children]]
//	  name = "popup"
//	  depth = { order = 5, mode = "relative", hit_test = false }
//
// or the equivalent YAML, with "nodes" in place of "node". [Build] turns a
// document into a [depth.Tree] with a [depth.Sprite] per named renderer.
package scenefile
