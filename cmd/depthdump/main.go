// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command depthdump loads a scene document, propagates its depth trees and
// prints the resulting sort keys and draw order.
//
// Usage:
//
//	depthdump [-v] scene.toml
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/depth"
	"github.com/gogpu/depth/scenefile"
)

var (
	nameStyle   = lipgloss.NewStyle().Bold(true)
	depthStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	groupStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

func main() {
	verbose := flag.Bool("v", false, "log propagation details to stderr")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-v] scene.(toml|yaml)\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if *verbose {
		depth.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(os.Stdout, flag.Arg(0)); err != nil {
		log.Fatalf("depthdump: %v", err)
	}
}

func run(w io.Writer, path string) error {
	doc, err := scenefile.Load(path)
	if err != nil {
		return err
	}
	scene, err := scenefile.Build(doc)
	if err != nil {
		return err
	}

	st, err := scene.Propagator().UpdateAll()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, headerStyle.Render("Hierarchy"))
	for _, root := range scene.Tree.Roots() {
		dumpNode(w, scene, root, 0)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("Draw order"))
	rs, err := scene.Tree.DrawOrder(scene.Layers, depth.NoNode)
	if err != nil {
		return err
	}
	for _, r := range rs {
		k := r.SortKey()
		fmt.Fprintf(w, "  %-24s %s\n", r, dimStyle.Render(fmt.Sprintf("%s/%d", scene.Layers.Name(k.Layer), k.Order)))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf(
		"%d trees, %d depth nodes, %d renderers, %d surface writes",
		st.Trees, st.Nodes, st.Renderers, st.SurfaceWrites)))
	return nil
}

func dumpNode(w io.Writer, scene *scenefile.Scene, id depth.NodeID, level int) {
	t := scene.Tree
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", level+1))
	b.WriteString(nameStyle.Render(t.Name(id)))

	if layer, ok := t.Group(id); ok {
		b.WriteString(" ")
		b.WriteString(groupStyle.Render("group:" + scene.Layers.Name(layer)))
	}
	if cfg, ok := t.Depth(id); ok {
		key, _ := t.Effective(id)
		b.WriteString(" ")
		b.WriteString(depthStyle.Render(fmt.Sprintf("%s %d → %s/%d",
			cfg.Mode, cfg.Order, scene.Layers.Name(key.Layer), key.Order)))
		if t.Surface(id) != nil {
			b.WriteString(dimStyle.Render(" surface"))
		}
		if t.Router(id) != nil {
			b.WriteString(dimStyle.Render(" hit"))
		}
	}
	for _, r := range t.Renderers(id) {
		b.WriteString(dimStyle.Render(fmt.Sprintf(" [%s]", r)))
	}
	fmt.Fprintln(w, b.String())

	for _, child := range t.Children(id) {
		dumpNode(w, scene, child, level+1)
	}
}
