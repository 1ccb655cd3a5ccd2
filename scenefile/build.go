// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scenefile

import (
	"fmt"

	"github.com/gogpu/depth"
)

// Scene is a document turned into live depth structures.
type Scene struct {
	Tree         *depth.Tree
	Layers       *depth.LayerRegistry
	DefaultLayer depth.LayerID

	// Sprites holds the renderers created for the document, by name.
	Sprites map[string]*depth.Sprite
}

// Propagator returns a propagator for the scene's tree using the scene's
// default layer. opts are applied after it.
func (s *Scene) Propagator(opts ...depth.PropagatorOption) *depth.Propagator {
	all := append([]depth.PropagatorOption{depth.WithDefaultLayer(s.DefaultLayer)}, opts...)
	return depth.NewPropagator(s.Tree, all...)
}

// Build creates the tree, layer registry and sprites described by doc.
func Build(doc *Document) (*Scene, error) {
	reg, err := buildLayers(doc.Layers)
	if err != nil {
		return nil, err
	}

	def := depth.DefaultLayer
	if doc.DefaultLayer != "" {
		if def, err = reg.Lookup(doc.DefaultLayer); err != nil {
			return nil, fmt.Errorf("default_layer: %w", err)
		}
	}

	b := builder{
		scene: &Scene{
			Tree:         depth.NewTree(),
			Layers:       reg,
			DefaultLayer: def,
			Sprites:      make(map[string]*depth.Sprite),
		},
	}
	for i := range doc.Nodes {
		if err := b.add(depth.NoNode, &doc.Nodes[i]); err != nil {
			return nil, err
		}
	}
	return b.scene, nil
}

// buildLayers registers names back to front around the built-in default
// layer.
func buildLayers(names []string) (*depth.LayerRegistry, error) {
	reg := depth.NewLayerRegistry()

	defaultAt := -1
	for i, name := range names {
		if id, ok := reg.ID(name); ok && id == depth.DefaultLayer {
			defaultAt = i
			break
		}
	}

	for i, name := range names {
		if i == defaultAt {
			continue
		}
		var err error
		if i < defaultAt {
			_, err = reg.Insert(name, i)
		} else {
			_, err = reg.Add(name)
		}
		if err != nil {
			return nil, fmt.Errorf("layers[%d]: %w", i, err)
		}
	}
	return reg, nil
}

type builder struct {
	scene *Scene
}

func (b *builder) add(parent depth.NodeID, n *Node) error {
	if n.Name == "" {
		return fmt.Errorf("scenefile: node without name below %q", b.parentName(parent))
	}

	t := b.scene.Tree
	id := t.Add(parent, n.Name)

	if n.Depth != nil {
		mode, err := depth.ParseOrderMode(n.Depth.Mode)
		if err != nil {
			return fmt.Errorf("node %q: %w", n.Name, err)
		}
		t.SetDepth(id, depth.Depth{
			Order:   n.Depth.Order,
			Mode:    mode,
			Surface: boolOr(n.Depth.Surface, true),
			HitTest: boolOr(n.Depth.HitTest, true),
		})
	}

	if n.Group != "" {
		layer, err := b.scene.Layers.Lookup(n.Group)
		if err != nil {
			return fmt.Errorf("node %q: %w", n.Name, err)
		}
		t.SetGroup(id, layer)
	}

	for _, name := range n.Renderers {
		if _, dup := b.scene.Sprites[name]; dup {
			return fmt.Errorf("node %q: duplicate renderer %q", n.Name, name)
		}
		s := depth.NewSprite(name)
		b.scene.Sprites[name] = s
		t.AttachRenderer(id, s)
	}

	for i := range n.Children {
		if err := b.add(id, &n.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) parentName(id depth.NodeID) string {
	if id == depth.NoNode {
		return "<root>"
	}
	return b.scene.Tree.Name(id)
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
