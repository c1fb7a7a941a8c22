// Package index provides an exact nearest-neighbour vector index.
package index

import (
	"fmt"
	"sort"
)

// Flat is a flat L2 index: vectors are stored as-is and search is an
// exhaustive scan by squared Euclidean distance. Ties are broken by
// insertion order. Built once, read-only afterwards.
type Flat struct {
	dimension int
	vectors   [][]float32
}

// NewFlat creates an empty index for vectors of the given dimension.
func NewFlat(dimension int) *Flat {
	return &Flat{dimension: dimension}
}

// Build bulk-loads vectors into a new index. Sequential ids are assigned
// in input order. An empty input yields a valid empty index.
func Build(dimension int, vectors [][]float32) (*Flat, error) {
	idx := NewFlat(dimension)
	for i, v := range vectors {
		if len(v) != dimension {
			return nil, fmt.Errorf("vector %d has dimension %d, want %d", i, len(v), dimension)
		}
		idx.vectors = append(idx.vectors, v)
	}
	return idx, nil
}

// Len returns the number of stored vectors.
func (f *Flat) Len() int {
	return len(f.vectors)
}

// Dimension returns the index vector dimension.
func (f *Flat) Dimension() int {
	return f.dimension
}

// Search returns the ids of up to k vectors nearest to query, ascending
// by squared Euclidean distance. An empty index returns an empty result.
func (f *Flat) Search(query []float32, k int) []int {
	if len(f.vectors) == 0 || k <= 0 {
		return nil
	}

	type hit struct {
		id   int
		dist float32
	}

	hits := make([]hit, len(f.vectors))
	for i, v := range f.vectors {
		hits[i] = hit{id: i, dist: squaredL2(query, v)}
	}

	// Stable sort keeps insertion order for equal distances.
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].dist < hits[b].dist
	})

	if k > len(hits) {
		k = len(hits)
	}
	ids := make([]int, k)
	for i := 0; i < k; i++ {
		ids[i] = hits[i].id
	}
	return ids
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
