// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package depth

// PropagatorOption configures a Propagator during creation.
// Use functional options to customize Propagator behavior.
//
// Example:
//
//	// Default layer, default canvases and raycasters
//	p := depth.NewPropagator(tree)
//
//	// Trees outside any sorting group draw on the "UI" layer
//	ui, _ := layers.Lookup("UI")
//	p := depth.NewPropagator(tree, depth.WithDefaultLayer(ui))
type PropagatorOption func(*propagatorOptions)

// propagatorOptions holds optional configuration for Propagator creation.
type propagatorOptions struct {
	defaultLayer LayerID
	newSurface   SurfaceFactory
	newRouter    RouterFactory
}

// defaultPropagatorOptions returns the default propagator options.
func defaultPropagatorOptions() propagatorOptions {
	return propagatorOptions{
		defaultLayer: DefaultLayer,
		newSurface:   defaultSurfaceFactory,
		newRouter:    defaultRouterFactory,
	}
}

// WithDefaultLayer sets the layer used by trees that have no sorting group
// above their root.
func WithDefaultLayer(id LayerID) PropagatorOption {
	return func(o *propagatorOptions) {
		o.defaultLayer = id
	}
}

// WithSurfaceFactory sets the function that builds a node's surface the
// first time the node needs one. Nil restores the default, which builds a
// [Canvas].
//
// The factory may return nil to leave a node without a surface; it is
// asked again on the next propagation.
func WithSurfaceFactory(f SurfaceFactory) PropagatorOption {
	return func(o *propagatorOptions) {
		if f == nil {
			f = defaultSurfaceFactory
		}
		o.newSurface = f
	}
}

// WithRouterFactory sets the function that builds a node's input router
// the first time the node needs one. Nil restores the default, which
// builds a [hit.Raycaster].
func WithRouterFactory(f RouterFactory) PropagatorOption {
	return func(o *propagatorOptions) {
		if f == nil {
			f = defaultRouterFactory
		}
		o.newRouter = f
	}
}
