package annotate

import (
	"context"
	"io"
	"log"

	"github.com/carbocation/pedmodels/generegion"
	"github.com/carbocation/pedmodels/inheritance"
	"github.com/carbocation/pedmodels/pedigree"
	"github.com/carbocation/pedmodels/phase"
	"github.com/carbocation/vcfgo"
)

// LogEvery controls how often progress is logged, in variants.
var LogEvery = 100000

type Config struct {
	Family *pedigree.Family

	// Regions groups variants by gene. When nil, every variant is treated
	// as intergenic and no compound pairs are formed.
	Regions *generegion.Index

	Options inheritance.Options
}

type Stats struct {
	Variants int
	Units    int
}

// Pipeline reads variants, checks them in runs and hands each annotated
// record to an emit function in input order.
type Pipeline struct {
	cfg       Config
	checker   *inheritance.Checker
	converter *Converter
	batcher   *Batcher
	phase     *phase.Builder

	Stats Stats
}

func NewPipeline(header *vcfgo.Header, cfg Config) (*Pipeline, error) {
	converter, err := NewConverter(header, cfg.Family)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:       cfg,
		checker:   inheritance.NewChecker(cfg.Family, cfg.Options),
		converter: converter,
		batcher:   NewBatcher(),
		phase:     phase.NewBuilder(),
	}, nil
}

// Run consumes src until io.EOF. It stops at the first error; records of
// the failing run are not emitted. The input must be sorted by position
// within each chromosome; phase blocks behind the oldest pending record are
// discarded as the stream advances.
func (p *Pipeline) Run(ctx context.Context, src Source, emit func(*Record) error) error {
	var last *inheritance.Variant

	for {
		v, err := src.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}

		rec := p.record(v)
		last = rec.Variant
		p.Stats.Variants++
		if LogEvery > 0 && p.Stats.Variants%LogEvery == 0 {
			log.Printf("Processed %d variants. Last %s:%d\n", p.Stats.Variants, last.Chrom, last.Pos)
		}

		for _, run := range p.batcher.Add(rec) {
			if err := p.process(ctx, run, emit); err != nil {
				return err
			}
		}

		if p.cfg.Options.Phased {
			front := p.batcher.Front()
			if front == nil {
				front = rec
			}
			p.phase.Prune(front.Variant.Chrom, front.Variant.Pos)
		}
	}

	if run := p.batcher.Flush(); run != nil {
		if err := p.process(ctx, run, emit); err != nil {
			return err
		}
	}

	log.Printf("Processed %d variants in %d units.\n", p.Stats.Variants, p.Stats.Units)

	return nil
}

func (p *Pipeline) record(v *vcfgo.Variant) *Record {
	rec := &Record{VCF: v, Variant: p.converter.Convert(v)}

	if p.cfg.Options.Phased {
		sets := p.converter.PhaseSets(v)
		for id, call := range rec.Variant.Calls {
			p.phase.Add(id, rec.Variant.Chrom, rec.Variant.Pos, call, sets[id])
		}
	}

	if p.cfg.Regions != nil {
		for _, r := range p.cfg.Regions.Overlapping(rec.Variant.Chrom, rec.Variant.Pos) {
			rec.Genes = append(rec.Genes, r.Name)
		}
	}

	return rec
}

func (p *Pipeline) process(ctx context.Context, run []*Record, emit func(*Record) error) error {
	unit := NewUnit(run)
	p.Stats.Units++

	var lookup inheritance.PhaseLookup
	if p.cfg.Options.Phased {
		if unit.HasPairs() {
			lookup = p.phase.Set()
		} else {
			lookup = noBlocks{p.phase}
		}
	}

	if err := p.checker.CheckBatch(ctx, unit.Batch(lookup)); err != nil {
		return err
	}
	unit.Merge()

	for _, rec := range run {
		if err := Annotate(rec, p.cfg.Family.ID); err != nil {
			return err
		}
		if err := emit(rec); err != nil {
			return err
		}
	}

	return nil
}

// noBlocks stands in for the phase data of units that form no pairs and so
// never look up a block.
type noBlocks struct {
	b *phase.Builder
}

func (n noBlocks) Has(individualID string) bool {
	return n.b.Has(individualID)
}

func (n noBlocks) Find(individualID, chrom string, pos int) (uint64, bool, error) {
	return 0, false, nil
}
