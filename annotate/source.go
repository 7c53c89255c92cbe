package annotate

import (
	"fmt"
	"io"
	"log"

	"github.com/brentp/irelate/interfaces"
	"github.com/carbocation/bix"
	"github.com/carbocation/pedmodels/chrpos"
	"github.com/carbocation/vcfgo"
)

// Source yields VCF variants in file order and io.EOF at the end.
type Source interface {
	Next() (*vcfgo.Variant, error)
}

type readerSource struct {
	rdr *vcfgo.Reader
}

// FromReader streams every variant of a VCF.
func FromReader(rdr *vcfgo.Reader) Source {
	return &readerSource{rdr: rdr}
}

func (s *readerSource) Next() (*vcfgo.Variant, error) {
	v := s.rdr.Read()

	if err := s.rdr.Error(); err != nil {
		log.Println("Invalid VCF line. Attempting to continue. Invalid features include:")
		log.Println(err)
		s.rdr.Clear()
	}

	if v == nil {
		return nil, io.EOF
	}

	return v, nil
}

// variantIterator yields the variants of one region query.
type variantIterator interface {
	Next() (*vcfgo.Variant, error)
	Close() error
}

type regionQuery func(chrpos.TabixLocus) (variantIterator, error)

type tabixSource struct {
	query regionQuery
	loci  []chrpos.TabixLocus
	next  int
	vals  variantIterator
	seen  map[string]struct{}
}

// FromTabix yields the variants of each locus in turn. Loci are sorted and
// merged first, so the variants of one gene stay adjacent even when the
// loci were listed out of order or split the gene. A variant reached by
// more than one locus is yielded once.
func FromTabix(tbx *bix.Bix, loci []chrpos.TabixLocus) Source {
	return newRegionSource(func(locus chrpos.TabixLocus) (variantIterator, error) {
		vals, err := tbx.Query(locus)
		if err != nil {
			return nil, err
		}
		return bixIterator{vals}, nil
	}, loci)
}

func newRegionSource(query regionQuery, loci []chrpos.TabixLocus) *tabixSource {
	return &tabixSource{
		query: query,
		loci:  chrpos.MergeTabixLoci(loci),
		seen:  make(map[string]struct{}),
	}
}

func (s *tabixSource) Next() (*vcfgo.Variant, error) {
	for {
		if s.vals == nil {
			if s.next >= len(s.loci) {
				return nil, io.EOF
			}

			vals, err := s.query(s.loci[s.next])
			if err != nil {
				return nil, fmt.Errorf("tabix query %v: %w", s.loci[s.next], err)
			}
			s.vals = vals
			s.next++
		}

		snp, err := s.vals.Next()
		if err == io.EOF {
			s.vals.Close()
			s.vals = nil
			continue
		} else if err != nil {
			return nil, err
		}

		key := fmt.Sprintf("%s:%d:%s:%v", snp.Chrom(), snp.Pos, snp.Ref(), snp.Alt())
		if _, dup := s.seen[key]; dup {
			continue
		}
		s.seen[key] = struct{}{}

		return snp, nil
	}
}

// bixIterator unwraps the variants returned by a tabix query.
type bixIterator struct {
	vals interfaces.RelatableIterator
}

func (it bixIterator) Next() (*vcfgo.Variant, error) {
	v, err := it.vals.Next()
	if err != nil {
		return nil, err
	}

	// Unwrap multiple layers to get to vcfgo.Variant{}
	wrapped, ok := v.(interfaces.VarWrap)
	if !ok {
		return nil, fmt.Errorf("%s:%d: not a valid VarWrap", v.Chrom(), v.End())
	}
	snp, ok := wrapped.IVariant.(*vcfgo.Variant)
	if !ok {
		return nil, fmt.Errorf("%s:%d: not a valid IVariant", v.Chrom(), v.End())
	}

	return snp, nil
}

func (it bixIterator) Close() error {
	return it.vals.Close()
}
