// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scenefile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/depth"
)

const sceneTOML = `
default_layer = "UI"
layers = ["Background", "Default", "UI"]

[[node]]
name = "canvas"
group = "Background"

  [[node.children]]
  name = "window"
  depth = { order = 10 }
  renderers = ["frame"]

    [[node.children.children]]
    name = "popup"
    depth = { order = 5, mode = "relative", hit_test = false }
    renderers = ["popup-bg", "popup-text"]

[[node]]
name = "hud"
depth = { order = -1, surface = false }
renderers = ["crosshair"]
`

const sceneYAML = `
default_layer: UI
layers: [Background, Default, UI]
nodes:
  - name: canvas
    group: Background
    children:
      - name: window
        depth: {order: 10}
        renderers: [frame]
        children:
          - name: popup
            depth: {order: 5, mode: relative, hit_test: false}
            renderers: [popup-bg, popup-text]
  - name: hud
    depth: {order: -1, surface: false}
    renderers: [crosshair]
`

func ptr[T any](v T) *T { return &v }

func wantDocument() *Document {
	return &Document{
		DefaultLayer: "UI",
		Layers:       []string{"Background", "Default", "UI"},
		Nodes: []Node{
			{
				Name:  "canvas",
				Group: "Background",
				Children: []Node{{
					Name:      "window",
					Depth:     &Depth{Order: 10},
					Renderers: []string{"frame"},
					Children: []Node{{
						Name:      "popup",
						Depth:     &Depth{Order: 5, Mode: "relative", HitTest: ptr(false)},
						Renderers: []string{"popup-bg", "popup-text"},
					}},
				}},
			},
			{
				Name:      "hud",
				Depth:     &Depth{Order: -1, Surface: ptr(false)},
				Renderers: []string{"crosshair"},
			},
		},
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		format Format
		input  string
	}{
		{TOML, sceneTOML},
		{YAML, sceneYAML},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			doc, err := Decode(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if diff := cmp.Diff(wantDocument(), doc); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeUnknownKey(t *testing.T) {
	tests := []struct {
		format Format
		input  string
	}{
		{TOML, "[[node]]\nname = \"a\"\ncolour = \"red\"\n"},
		{YAML, "nodes:\n  - name: a\n    colour: red\n"},
	}
	for _, tt := range tests {
		if _, err := Decode(strings.NewReader(tt.input), tt.format); err == nil {
			t.Errorf("Decode(%s) with unknown key should fail", tt.format)
		}
	}
}

func TestDecodeEmptyYAML(t *testing.T) {
	doc, err := Decode(strings.NewReader(""), YAML)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if diff := cmp.Diff(&Document{}, doc); diff != "" {
		t.Errorf("Decode(empty) mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"scene.toml", TOML, false},
		{"a/b/scene.YAML", YAML, false},
		{"scene.yml", YAML, false},
		{"scene.json", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrFormat) {
			t.Errorf("FormatFromPath(%q) error = %v, want ErrFormat", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte(sceneYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(wantDocument(), doc); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load(missing) should fail")
	}
}

type nodeResult struct {
	Layer   string
	Order   int
	Surface bool
	Router  bool
}

func TestBuildAndPropagate(t *testing.T) {
	doc, err := Decode(strings.NewReader(sceneTOML), TOML)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	scene, err := Build(doc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if diff := cmp.Diff([]string{"Background", "Default", "UI"}, layerNames(scene.Layers)); diff != "" {
		t.Errorf("layers mismatch (-want +got):\n%s", diff)
	}

	st, err := scene.Propagator().UpdateAll()
	if err != nil {
		t.Fatalf("UpdateAll() error = %v", err)
	}
	if st.Trees != 2 {
		t.Errorf("Trees = %d, want 2", st.Trees)
	}

	got := map[string]nodeResult{}
	for _, name := range []string{"window", "popup", "hud"} {
		id, ok := scene.Tree.Find(name)
		if !ok {
			t.Fatalf("node %q not found", name)
		}
		key, ok := scene.Tree.Effective(id)
		if !ok {
			t.Fatalf("node %q not propagated", name)
		}
		got[name] = nodeResult{
			Layer:   scene.Layers.Name(key.Layer),
			Order:   key.Order,
			Surface: scene.Tree.Surface(id) != nil,
			Router:  scene.Tree.Router(id) != nil,
		}
	}
	want := map[string]nodeResult{
		"window": {Layer: "Background", Order: 10, Surface: true, Router: true},
		"popup":  {Layer: "Background", Order: 15, Surface: true, Router: false},
		"hud":    {Layer: "UI", Order: -1, Surface: false, Router: false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("propagation mismatch (-want +got):\n%s", diff)
	}

	sprites := map[string]depth.SortKey{}
	for name, s := range scene.Sprites {
		sprites[name] = s.SortKey()
	}
	bg, _ := scene.Layers.ID("Background")
	ui, _ := scene.Layers.ID("UI")
	wantSprites := map[string]depth.SortKey{
		"frame":      {Layer: bg, Order: 10},
		"popup-bg":   {Layer: bg, Order: 15},
		"popup-text": {Layer: bg, Order: 15},
		"crosshair":  {Layer: ui, Order: -1},
	}
	if diff := cmp.Diff(wantSprites, sprites); diff != "" {
		t.Errorf("sprite keys mismatch (-want +got):\n%s", diff)
	}
}

func layerNames(reg *depth.LayerRegistry) []string {
	var out []string
	for _, id := range reg.Layers() {
		out = append(out, reg.Name(id))
	}
	return out
}

func TestBuildLayerPlacement(t *testing.T) {
	tests := []struct {
		name   string
		layers []string
		want   []string
	}{
		{"default omitted", []string{"A", "B"}, []string{"Default", "A", "B"}},
		{"default first", []string{"Default", "A"}, []string{"Default", "A"}},
		{"default middle", []string{"A", "B", "Default", "C"}, []string{"A", "B", "Default", "C"}},
		{"default last", []string{"A", "Default"}, []string{"A", "Default"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := Build(&Document{Layers: tt.layers})
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, layerNames(scene.Layers)); diff != "" {
				t.Errorf("layers mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantErr error
	}{
		{
			name:    "duplicate layer",
			doc:     Document{Layers: []string{"A", "A"}},
			wantErr: depth.ErrDuplicateLayer,
		},
		{
			name:    "unknown default layer",
			doc:     Document{DefaultLayer: "Nope"},
			wantErr: depth.ErrUnknownLayer,
		},
		{
			name:    "unknown group layer",
			doc:     Document{Nodes: []Node{{Name: "a", Group: "Nope"}}},
			wantErr: depth.ErrUnknownLayer,
		},
		{
			name: "bad order mode",
			doc:  Document{Nodes: []Node{{Name: "a", Depth: &Depth{Mode: "sideways"}}}},
		},
		{
			name: "missing name",
			doc:  Document{Nodes: []Node{{Name: "a", Children: []Node{{}}}}},
		},
		{
			name: "duplicate renderer",
			doc:  Document{Nodes: []Node{{Name: "a", Renderers: []string{"x"}, Children: []Node{{Name: "b", Renderers: []string{"x"}}}}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(&tt.doc)
			if err == nil {
				t.Fatal("Build() should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Build() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
