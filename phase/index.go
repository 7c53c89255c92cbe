// Package phase answers which phase block (haploblock) of an individual
// contains a genomic position. Within one block, the haplotype assignment of
// each allele is known, so two heterozygous variants in the same block can be
// placed in cis or in trans.
package phase

import (
	"errors"
	"fmt"

	"github.com/Workiva/go-datastructures/augmentedtree"
)

// ErrNoIndex is returned when phase information is requested for an
// individual who has no index.
var ErrNoIndex = errors.New("no phase index for individual")

// Block is a phase block on one chromosome. Start and End are 1-based and
// inclusive.
type Block struct {
	ID    uint64
	Chrom string
	Start int
	End   int
}

func (b Block) Contains(chrom string, pos int) bool {
	return b.Chrom == chrom && b.Start <= pos && pos <= b.End
}

// interval adapts a Block to the augmented tree, stored half-open as
// [Start, End+1).
type interval struct {
	low  int64
	high int64
	id   uint64
}

func (iv interval) LowAtDimension(uint64) int64 {
	return iv.low
}

func (iv interval) HighAtDimension(uint64) int64 {
	return iv.high
}

func (iv interval) OverlapsAtDimension(other augmentedtree.Interval, d uint64) bool {
	return iv.low < other.HighAtDimension(d) && other.LowAtDimension(d) < iv.high
}

func (iv interval) ID() uint64 {
	return iv.id
}

// Index holds the phase blocks of one individual.
type Index struct {
	trees  map[string]augmentedtree.Tree
	blocks map[uint64]Block
}

func NewIndex(blocks ...Block) *Index {
	ix := &Index{
		trees:  make(map[string]augmentedtree.Tree),
		blocks: make(map[uint64]Block, len(blocks)),
	}

	for _, b := range blocks {
		ix.Add(b)
	}

	return ix
}

// Add inserts a block. Block ids must be unique within the index.
func (ix *Index) Add(b Block) {
	tree, exists := ix.trees[b.Chrom]
	if !exists {
		tree = augmentedtree.New(1)
		ix.trees[b.Chrom] = tree
	}

	tree.Add(interval{low: int64(b.Start), high: int64(b.End) + 1, id: b.ID})
	ix.blocks[b.ID] = b
}

func (ix *Index) Len() int {
	return len(ix.blocks)
}

// Find returns the id of the block containing chrom:pos. When blocks
// overlap, the lowest id wins.
func (ix *Index) Find(chrom string, pos int) (uint64, bool) {
	tree, exists := ix.trees[chrom]
	if !exists {
		return 0, false
	}

	var (
		best  uint64
		found bool
	)
	for _, hit := range tree.Query(interval{low: int64(pos), high: int64(pos) + 1}) {
		b, ok := ix.blocks[hit.ID()]
		if !ok || !b.Contains(chrom, pos) {
			continue
		}
		if !found || b.ID < best {
			best = b.ID
			found = true
		}
	}

	return best, found
}

// Set maps individual id to that individual's phase index.
type Set map[string]*Index

// Find looks up the block containing chrom:pos for one individual. Asking
// about an individual without an index is an error, not a miss.
func (s Set) Find(individualID, chrom string, pos int) (uint64, bool, error) {
	ix, exists := s[individualID]
	if !exists || ix == nil {
		return 0, false, fmt.Errorf("%w %q", ErrNoIndex, individualID)
	}

	id, found := ix.Find(chrom, pos)
	return id, found, nil
}

// Has reports whether an index exists for the individual.
func (s Set) Has(individualID string) bool {
	ix, exists := s[individualID]
	return exists && ix != nil
}
