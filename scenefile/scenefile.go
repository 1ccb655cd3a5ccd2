// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scenefile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrFormat is returned for files whose format cannot be determined or
// parsed.
var ErrFormat = errors.New("scenefile: unsupported format")

// Format is a scene document encoding.
type Format string

const (
	// TOML documents use [[node]] arrays of tables.
	TOML Format = "toml"
	// YAML documents use a "nodes" sequence.
	YAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrFormat, path)
	}
}

// Document is a declarative scene.
type Document struct {
	// DefaultLayer names the layer for trees outside any sorting group.
	// Empty means depth.DefaultLayerName.
	DefaultLayer string `toml:"default_layer" yaml:"default_layer"`

	// Layers lists sorting layers back to front. "Default" always exists;
	// listing it places it among the others, otherwise it stays at the back.
	Layers []string `toml:"layers" yaml:"layers"`

	Nodes []Node `toml:"node" yaml:"nodes"`
}

// Node is one scene node and its subtree.
type Node struct {
	Name string `toml:"name" yaml:"name"`

	// Depth makes the node a depth node.
	Depth *Depth `toml:"depth" yaml:"depth"`

	// Group makes the node a sorting group on the named layer.
	Group string `toml:"group" yaml:"group"`

	// Renderers names sprites attached to the node.
	Renderers []string `toml:"renderers" yaml:"renderers"`

	Children []Node `toml:"children" yaml:"children"`
}

// Depth is the depth configuration of a node.
type Depth struct {
	Order int    `toml:"order" yaml:"order"`
	Mode  string `toml:"mode" yaml:"mode"`

	// Surface and HitTest default to true when omitted.
	Surface *bool `toml:"surface" yaml:"surface"`
	HitTest *bool `toml:"hit_test" yaml:"hit_test"`
}

// Load reads a scene document, picking the format from the extension.
func Load(path string) (*Document, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	doc, err := Decode(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode reads a scene document. Unknown keys are rejected.
func Decode(r io.Reader, f Format) (*Document, error) {
	var doc Document
	switch f {
	case TOML:
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("scenefile: unknown key %q", undecoded[0].String())
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, f)
	}
	return &doc, nil
}
