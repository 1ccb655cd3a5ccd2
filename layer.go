// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package depth

import (
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/text/unicode/norm"
)

// LayerID identifies a sorting layer. IDs are stable for the lifetime of a
// registry; the draw position of a layer is its rank, not its ID.
type LayerID int32

const (
	// DefaultLayer is the ID of the layer every registry starts with.
	DefaultLayer LayerID = 0

	// DefaultLayerName is the name of [DefaultLayer].
	DefaultLayerName = "Default"
)

// SortKey is the pair a renderer is sorted by: layer first, then order
// within the layer.
type SortKey struct {
	Layer LayerID
	Order int
}

func (k SortKey) String() string {
	return fmt.Sprintf("%d/%d", k.Layer, k.Order)
}

// LayerRegistry is an ordered set of named sorting layers.
// Layers registered earlier draw behind layers registered later.
//
// Names are compared after Unicode NFC normalization, so a name typed with
// combining marks matches the same name in precomposed form.
type LayerRegistry struct {
	names  []string // by rank
	ids    []LayerID
	rank   map[LayerID]int
	byName map[string]LayerID
	nextID LayerID
}

// NewLayerRegistry creates a registry holding only [DefaultLayerName].
func NewLayerRegistry() *LayerRegistry {
	r := &LayerRegistry{
		rank:   make(map[LayerID]int),
		byName: make(map[string]LayerID),
	}
	r.insert(DefaultLayerName, len(r.names))
	return r
}

// Add registers a layer in front of all existing layers.
func (r *LayerRegistry) Add(name string) (LayerID, error) {
	return r.Insert(name, len(r.names))
}

// Insert registers a layer at the given rank, shifting the layers at and
// after that rank one step towards the front.
func (r *LayerRegistry) Insert(name string, rank int) (LayerID, error) {
	key := norm.NFC.String(name)
	if key == "" {
		return 0, fmt.Errorf("%w: empty name", ErrUnknownLayer)
	}
	if _, ok := r.byName[key]; ok {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateLayer, name)
	}
	rank = min(max(rank, 0), len(r.names))
	return r.insert(key, rank), nil
}

func (r *LayerRegistry) insert(key string, rank int) LayerID {
	id := r.nextID
	r.nextID++

	r.names = slices.Insert(r.names, rank, key)
	r.ids = slices.Insert(r.ids, rank, id)
	r.byName[key] = id
	for i := rank; i < len(r.ids); i++ {
		r.rank[r.ids[i]] = i
	}
	return id
}

// ID returns the ID of the named layer.
func (r *LayerRegistry) ID(name string) (LayerID, bool) {
	id, ok := r.byName[norm.NFC.String(name)]
	return id, ok
}

// Lookup is like ID but returns [ErrUnknownLayer] for unregistered names.
func (r *LayerRegistry) Lookup(name string) (LayerID, error) {
	id, ok := r.ID(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
	}
	return id, nil
}

// Name returns the name of a layer, or "" if id is not registered.
func (r *LayerRegistry) Name(id LayerID) string {
	i, ok := r.rank[id]
	if !ok {
		return ""
	}
	return r.names[i]
}

// Rank returns the draw position of a layer (0 = back).
// Unregistered layers rank behind every registered one.
func (r *LayerRegistry) Rank(id LayerID) int {
	i, ok := r.rank[id]
	if !ok {
		return -1
	}
	return i
}

// Len returns the number of registered layers.
func (r *LayerRegistry) Len() int {
	return len(r.names)
}

// Layers returns the layer IDs in draw order (back to front).
func (r *LayerRegistry) Layers() []LayerID {
	return slices.Clone(r.ids)
}

// Compare orders two sort keys by layer rank, then by order.
// It returns a negative number when a draws before b.
func (r *LayerRegistry) Compare(a, b SortKey) int {
	if ra, rb := r.Rank(a.Layer), r.Rank(b.Layer); ra != rb {
		return ra - rb
	}
	return cmp.Compare(a.Order, b.Order)
}

// Less reports whether a draws before b.
func (r *LayerRegistry) Less(a, b SortKey) bool {
	return r.Compare(a, b) < 0
}
