// Package chrpos describes genomic regions in the form tabix understands.
package chrpos

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/brentp/irelate/interfaces"
	"github.com/carbocation/pedmodels"
	"github.com/carbocation/pfx"
)

var _ interfaces.IPosition = TabixLocus{}

// TabixLocus is a 0-based, half-open region on one chromosome, as used by
// BED files and tabix queries.
type TabixLocus struct {
	chrom string
	start int
	end   int
}

func MakeTabixLocus(chrom string, start, end int) TabixLocus {
	return TabixLocus{chrom, start, end}
}

func (tl TabixLocus) Chrom() string {
	return tl.chrom
}

func (tl TabixLocus) Start() uint32 {
	return uint32(tl.start)
}

func (tl TabixLocus) End() uint32 {
	return uint32(tl.end)
}

// Contains reports whether the 1-based position pos lies in the locus.
func (tl TabixLocus) Contains(chrom string, pos int) bool {
	return chrom == tl.chrom && pos > tl.start && pos <= tl.end
}

func (tl TabixLocus) String() string {
	return fmt.Sprintf("%s:%d-%d", tl.chrom, tl.start+1, tl.end)
}

// ParseRegion reads a samtools-style region: "chr", "chr:pos" or
// "chr:start-end", where positions are 1-based and inclusive. Commas in
// numbers are ignored. A bare chromosome spans the whole chromosome.
func ParseRegion(region string) (TabixLocus, error) {
	region = strings.TrimSpace(region)
	if region == "" {
		return TabixLocus{}, fmt.Errorf("empty region")
	}

	colon := strings.LastIndex(region, ":")
	if colon < 0 {
		return MakeTabixLocus(region, 0, 1<<29), nil
	}

	chrom, span := region[:colon], strings.ReplaceAll(region[colon+1:], ",", "")
	if chrom == "" {
		return TabixLocus{}, fmt.Errorf("region %q has no chromosome", region)
	}

	startText, endText, isRange := strings.Cut(span, "-")
	start, err := strconv.Atoi(startText)
	if err != nil || start < 1 {
		return TabixLocus{}, fmt.Errorf("region %q: start %q is not a positive integer", region, startText)
	}

	end := start
	if isRange {
		if end, err = strconv.Atoi(endText); err != nil || end < start {
			return TabixLocus{}, fmt.Errorf("region %q: end %q is not an integer at least as large as the start", region, endText)
		}
	}

	return MakeTabixLocus(chrom, start-1, end), nil
}

// TabixLociFromPath reads a BED-like file of regions (chrom, start, end in
// the first three tab-delimited columns). Lines with fewer columns, header
// lines and comments are skipped.
func TabixLociFromPath(path string, client *storage.Client) ([]TabixLocus, error) {
	f, err := pedmodels.Open(path, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	loci, err := ReadTabixLoci(f)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return loci, nil
}

func ReadTabixLoci(r io.Reader) ([]TabixLocus, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	tabixLoci := make([]TabixLocus, 0)
	for {
		v, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		if len(v) < 3 || v[0] == "track" || v[0] == "browser" {
			continue
		}

		start, err := strconv.Atoi(v[1])
		if err != nil {
			return nil, err
		}
		end, err := strconv.Atoi(v[2])
		if err != nil {
			return nil, err
		}
		tabixLoci = append(tabixLoci, MakeTabixLocus(v[0], start, end))
	}

	if len(tabixLoci) < 1 {
		return nil, fmt.Errorf("no valid loci identified")
	}

	return tabixLoci, nil
}

// MergeTabixLoci sorts loci by start within each chromosome and merges those
// that overlap or touch. Chromosomes keep the order in which they first
// appear, so a region list written in VCF order queries in VCF order.
func MergeTabixLoci(loci []TabixLocus) []TabixLocus {
	rank := make(map[string]int)
	for _, l := range loci {
		if _, exists := rank[l.chrom]; !exists {
			rank[l.chrom] = len(rank)
		}
	}

	sorted := append([]TabixLocus(nil), loci...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].chrom != sorted[j].chrom {
			return rank[sorted[i].chrom] < rank[sorted[j].chrom]
		}
		return sorted[i].start < sorted[j].start
	})

	out := make([]TabixLocus, 0, len(sorted))
	for _, l := range sorted {
		if n := len(out); n > 0 && out[n-1].chrom == l.chrom && l.start <= out[n-1].end {
			if l.end > out[n-1].end {
				out[n-1].end = l.end
			}
			continue
		}
		out = append(out, l)
	}

	return out
}
