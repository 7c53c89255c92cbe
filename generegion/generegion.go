// Package generegion loads gene intervals and answers which genes overlap a
// position. Genes are the usual co-inheritance unit within which compound
// heterozygous pairs are searched.
package generegion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/Workiva/go-datastructures/augmentedtree"
	"github.com/carbocation/pedmodels"
	"github.com/carbocation/pfx"
)

var ErrUnknownLayout = errors.New("unknown gene region layout")

// Region is a named interval. Start and End are 1-based and inclusive.
type Region struct {
	Name  string
	Chrom string
	Start int
	End   int
}

func (r Region) Contains(chrom string, pos int) bool {
	return NormalizeChrom(r.Chrom) == NormalizeChrom(chrom) && r.Start <= pos && pos <= r.End
}

// NormalizeChrom drops a leading "chr" so that "chr1" and "1" match.
func NormalizeChrom(chrom string) string {
	if len(chrom) > 3 && strings.EqualFold(chrom[:3], "chr") {
		return chrom[3:]
	}

	return chrom
}

// ReadPath reads a local or gs:// file, possibly compressed, in the named
// layout.
func ReadPath(path, layoutName string, client *storage.Client) ([]Region, error) {
	layout, exists := Layouts[layoutName]
	if !exists {
		return nil, fmt.Errorf("%w %q; valid layout names include: %s", ErrUnknownLayout, layoutName, LayoutNames())
	}

	f, err := pedmodels.Open(path, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	regions, err := Read(f, layout)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return regions, nil
}

// Read parses every row. Rows sharing a name and chromosome are merged into
// one region spanning all of them.
func Read(r io.Reader, layout Layout) ([]Region, error) {
	cr := csv.NewReader(r)
	cr.Comma = layout.Delimiter
	cr.Comment = layout.Comment
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header := make(map[string]int)
	colName := layout.ColName

	type key struct{ name, chrom string }
	merged := make(map[key]*Region)
	order := make([]key, 0)

	for i := 0; ; i++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		if layout.Header && i == 0 {
			for col, name := range row {
				header[name] = col
			}
			for _, name := range layout.NameHeaders {
				if col, exists := header[name]; exists {
					colName = col
					break
				}
			}
			if colName < 0 {
				return nil, fmt.Errorf("header has none of the name columns %v", layout.NameHeaders)
			}
			continue
		}

		if len(row) == 0 || strings.HasPrefix(row[0], "track") || strings.HasPrefix(row[0], "browser") {
			continue
		}
		if layout.Keep != nil && !layout.Keep(header, row) {
			continue
		}

		reg, err := parseRow(layout, colName, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		k := key{reg.Name, reg.Chrom}
		if prior, exists := merged[k]; exists {
			if reg.Start < prior.Start {
				prior.Start = reg.Start
			}
			if reg.End > prior.End {
				prior.End = reg.End
			}
			continue
		}
		merged[k] = &reg
		order = append(order, k)
	}

	out := make([]Region, 0, len(order))
	for _, k := range order {
		out = append(out, *merged[k])
	}

	return out, nil
}

func parseRow(layout Layout, colName int, row []string) (Region, error) {
	for _, col := range []int{layout.ColChromosome, layout.ColStart, layout.ColEnd} {
		if col >= len(row) {
			return Region{}, fmt.Errorf("expected at least %d columns, found %d", col+1, len(row))
		}
	}

	start, err := strconv.Atoi(row[layout.ColStart])
	if err != nil {
		return Region{}, err
	}
	end, err := strconv.Atoi(row[layout.ColEnd])
	if err != nil {
		return Region{}, err
	}
	if layout.ZeroBased {
		start++
	}
	if end < start {
		return Region{}, fmt.Errorf("end %d precedes start %d", end, start)
	}

	reg := Region{Chrom: row[layout.ColChromosome], Start: start, End: end}

	if colName >= 0 && colName < len(row) {
		reg.Name = strings.TrimSpace(row[colName])
	}
	if reg.Name == "" {
		// Unnamed intervals are still distinct units
		reg.Name = fmt.Sprintf("%s:%d-%d", reg.Chrom, reg.Start, reg.End)
	}

	return reg, nil
}

type interval struct {
	low, high int64
	id        uint64
}

func (iv interval) LowAtDimension(uint64) int64  { return iv.low }
func (iv interval) HighAtDimension(uint64) int64 { return iv.high }
func (iv interval) ID() uint64                   { return iv.id }

func (iv interval) OverlapsAtDimension(other augmentedtree.Interval, d uint64) bool {
	return iv.low < other.HighAtDimension(d) && other.LowAtDimension(d) < iv.high
}

// Index finds the regions overlapping a position.
type Index struct {
	trees   map[string]augmentedtree.Tree
	regions []Region
}

func NewIndex(regions []Region) *Index {
	ix := &Index{
		trees:   make(map[string]augmentedtree.Tree),
		regions: append([]Region(nil), regions...),
	}

	for i, r := range ix.regions {
		chrom := NormalizeChrom(r.Chrom)
		tree, exists := ix.trees[chrom]
		if !exists {
			tree = augmentedtree.New(1)
			ix.trees[chrom] = tree
		}
		tree.Add(interval{low: int64(r.Start), high: int64(r.End) + 1, id: uint64(i)})
	}

	return ix
}

func (ix *Index) Len() int {
	return len(ix.regions)
}

// Overlapping returns the regions containing chrom:pos, sorted by name.
func (ix *Index) Overlapping(chrom string, pos int) []Region {
	tree, exists := ix.trees[NormalizeChrom(chrom)]
	if !exists {
		return nil
	}

	var out []Region
	for _, hit := range tree.Query(interval{low: int64(pos), high: int64(pos) + 1}) {
		r := ix.regions[hit.ID()]
		if r.Contains(chrom, pos) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}
