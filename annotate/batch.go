package annotate

import (
	"fmt"

	"github.com/carbocation/pedmodels/inheritance"
	"github.com/carbocation/vcfgo"
	"gopkg.in/guregu/null.v3"
)

// Record is one VCF line together with the variant that is checked for it.
type Record struct {
	VCF     *vcfgo.Variant
	Variant *inheritance.Variant

	// Genes overlapping the variant, sorted. Empty for intergenic variants.
	Genes []string
}

func (r *Record) Intergenic() bool {
	return len(r.Genes) == 0
}

// Batcher cuts a position-sorted stream of records into runs that can be
// checked independently. Consecutive records that share a gene stay in one
// run. An intergenic record always forms a run of its own.
type Batcher struct {
	pending []*Record
	chrom   string
	genes   map[string]struct{}
}

func NewBatcher() *Batcher {
	return &Batcher{genes: make(map[string]struct{})}
}

// Add returns the runs that rec completes, in order.
func (b *Batcher) Add(rec *Record) [][]*Record {
	var out [][]*Record

	if rec.Intergenic() {
		if run := b.Flush(); run != nil {
			out = append(out, run)
		}
		return append(out, []*Record{rec})
	}

	if len(b.pending) > 0 && (rec.Variant.Chrom != b.chrom || !b.shares(rec)) {
		out = append(out, b.Flush())
	}

	b.pending = append(b.pending, rec)
	b.chrom = rec.Variant.Chrom
	for _, g := range rec.Genes {
		b.genes[g] = struct{}{}
	}

	return out
}

func (b *Batcher) shares(rec *Record) bool {
	for _, g := range rec.Genes {
		if _, exists := b.genes[g]; exists {
			return true
		}
	}

	return false
}

// Front returns the first record of the pending run, or nil.
func (b *Batcher) Front() *Record {
	if len(b.pending) == 0 {
		return nil
	}

	return b.pending[0]
}

// Flush returns the pending run, or nil if there is none.
func (b *Batcher) Flush() []*Record {
	if len(b.pending) == 0 {
		return nil
	}

	out := b.pending
	b.pending = nil
	b.chrom = ""
	b.genes = make(map[string]struct{})

	return out
}

// Unit is one run of records laid out as groups. A record overlapping
// several genes is checked once per gene on a clone, and the clones are
// merged back afterwards.
type Unit struct {
	Records []*Record

	groups map[string]*inheritance.Group
	clones [][]*inheritance.Variant
}

func NewUnit(records []*Record) *Unit {
	u := &Unit{
		Records: records,
		groups:  make(map[string]*inheritance.Group),
		clones:  make([][]*inheritance.Variant, len(records)),
	}

	for i, rec := range records {
		if rec.Intergenic() {
			rec.Variant.CompCandidate = null.BoolFrom(false)
			id := fmt.Sprintf("intergenic:%d:%s", i, rec.Variant.Key())
			u.groups[id] = inheritance.NewGroup(id, rec.Variant)
			u.clones[i] = []*inheritance.Variant{rec.Variant}
			continue
		}

		for _, gene := range rec.Genes {
			clone := rec.Variant.Clone()
			g, exists := u.groups[gene]
			if !exists {
				g = inheritance.NewGroup(gene)
				u.groups[gene] = g
			}
			g.Variants = append(g.Variants, clone)
			u.clones[i] = append(u.clones[i], clone)
		}
	}

	return u
}

// HasPairs reports whether any group could yield a compound pair.
func (u *Unit) HasPairs() bool {
	for _, g := range u.groups {
		if len(g.Variants) > 1 {
			return true
		}
	}

	return false
}

func (u *Unit) Batch(phase inheritance.PhaseLookup) *inheritance.Batch {
	return &inheritance.Batch{Groups: u.groups, Phase: phase}
}

// Merge folds the checked clones into each record's variant: a model holds
// if it held in any gene, and compound partners from every gene are kept.
func (u *Unit) Merge() {
	for i, rec := range u.Records {
		var models inheritance.Models
		compounds := make(map[string]int)

		for _, c := range u.clones[i] {
			models |= c.Models
			for partner, rank := range c.Compounds {
				compounds[partner] = rank
			}
		}

		rec.Variant.Models = models
		rec.Variant.Compounds = compounds
	}
}
