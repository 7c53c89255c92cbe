package phase

import (
	"sort"

	"github.com/carbocation/pedmodels/genotype"
)

type psKey struct {
	individual string
	chrom      string
	phaseSet   string
}

// Builder derives phase blocks from calls streamed in file order.
//
// When a call carries a phase set (the VCF PS field), the phase set names the
// block. Otherwise consecutive phased calls of an individual form a block,
// which is closed by an unphased heterozygous call or a change of chromosome.
// Unphased homozygous calls and no-calls carry no phase information and leave
// the block open.
type Builder struct {
	nextID   uint64
	open     map[string]*Block
	closed   map[string][]Block
	psBlocks map[psKey]*Block
	seen     map[string]struct{}
}

func NewBuilder() *Builder {
	return &Builder{
		open:     make(map[string]*Block),
		closed:   make(map[string][]Block),
		psBlocks: make(map[psKey]*Block),
		seen:     make(map[string]struct{}),
	}
}

func (b *Builder) newID() uint64 {
	b.nextID++
	return b.nextID
}

// Add records one call. phaseSet may be empty.
func (b *Builder) Add(individualID, chrom string, pos int, call genotype.Call, phaseSet string) {
	b.seen[individualID] = struct{}{}

	if call.Phased && phaseSet != "" && phaseSet != "." {
		key := psKey{individual: individualID, chrom: chrom, phaseSet: phaseSet}
		block, exists := b.psBlocks[key]
		if !exists {
			b.psBlocks[key] = &Block{ID: b.newID(), Chrom: chrom, Start: pos, End: pos}
			return
		}
		if pos < block.Start {
			block.Start = pos
		}
		if pos > block.End {
			block.End = pos
		}
		return
	}

	current := b.open[individualID]
	if current != nil && current.Chrom != chrom {
		b.close(individualID)
		current = nil
	}

	if call.Phased {
		if current == nil {
			b.open[individualID] = &Block{ID: b.newID(), Chrom: chrom, Start: pos, End: pos}
			return
		}
		if pos > current.End {
			current.End = pos
		}
		return
	}

	if call.Heterozygote() {
		b.close(individualID)
	}
}

// Has reports whether any call of the individual has been added.
func (b *Builder) Has(individualID string) bool {
	_, seen := b.seen[individualID]
	return seen
}

func (b *Builder) close(individualID string) {
	if current := b.open[individualID]; current != nil {
		b.closed[individualID] = append(b.closed[individualID], *current)
		delete(b.open, individualID)
	}
}

// Prune drops the blocks that can no longer contain a lookup once every
// remaining query is at or after chrom:pos: blocks on other chromosomes and
// blocks ending before pos. Open blocks are kept.
func (b *Builder) Prune(chrom string, pos int) {
	for id, blocks := range b.closed {
		kept := blocks[:0]
		for _, block := range blocks {
			if block.Chrom == chrom && block.End >= pos {
				kept = append(kept, block)
			}
		}
		if len(kept) == 0 {
			delete(b.closed, id)
			continue
		}
		b.closed[id] = kept
	}

	for key, block := range b.psBlocks {
		if block.Chrom != chrom || block.End < pos {
			delete(b.psBlocks, key)
		}
	}
}

// Set snapshots every block seen so far, including blocks that are still
// open, into a Set with one index per individual that has been added.
func (b *Builder) Set() Set {
	perIndividual := make(map[string][]Block, len(b.seen))

	for id, blocks := range b.closed {
		perIndividual[id] = append(perIndividual[id], blocks...)
	}
	for id, block := range b.open {
		perIndividual[id] = append(perIndividual[id], *block)
	}
	for key, block := range b.psBlocks {
		perIndividual[key.individual] = append(perIndividual[key.individual], *block)
	}

	out := make(Set, len(b.seen))
	for id := range b.seen {
		blocks := perIndividual[id]
		sort.Slice(blocks, func(i, j int) bool { return blocks[i].ID < blocks[j].ID })
		out[id] = NewIndex(blocks...)
	}

	return out
}
