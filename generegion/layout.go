package generegion

import (
	"sort"
	"strings"
)

// Layout describes where a gene interval file keeps its columns.
type Layout struct {
	Delimiter rune
	Comment   rune

	// Header is set when the first row names the columns.
	Header bool

	ColChromosome int
	ColStart      int
	ColEnd        int
	ColName       int

	// NameHeaders, when set, locates the name column by header instead of
	// ColName. The first header that is present wins.
	NameHeaders []string

	// ZeroBased marks 0-based, half-open coordinates (BED). Otherwise
	// coordinates are 1-based and inclusive.
	ZeroBased bool

	// Keep, when set, drops rows for which it returns false.
	Keep func(header map[string]int, row []string) bool
}

var Layouts = map[string]Layout{
	"BED": {
		Delimiter:     '\t',
		Comment:       '#',
		ColChromosome: 0,
		ColStart:      1,
		ColEnd:        2,
		ColName:       3,
		ZeroBased:     true,
	},

	// Ensembl BioMart export with the columns gene stable id, transcript
	// stable id, protein stable id, chromosome, gene start, gene end,
	// strand, transcript start, transcript end, transcript length and gene
	// name. Transcripts of one gene are merged.
	"BIOMART": {
		Delimiter:     '\t',
		Comment:       '#',
		Header:        true,
		ColChromosome: 3,
		ColStart:      4,
		ColEnd:        5,
		ColName:       10,
	},

	// Flattened GTF as written by gtf2tsv: the eight fixed GTF columns
	// followed by one column per attribute. Only "gene" features are used.
	"GTF2TSV": {
		Delimiter:     '\t',
		Comment:       '#',
		Header:        true,
		ColChromosome: 0,
		ColStart:      3,
		ColEnd:        4,
		ColName:       -1,
		NameHeaders:   []string{"gene_name", "gene_id"},
		Keep: func(header map[string]int, row []string) bool {
			col, exists := header["feature"]
			return exists && col < len(row) && row[col] == "gene"
		},
	},
}

func LayoutNames() string {
	names := make([]string, 0, len(Layouts))
	for m := range Layouts {
		names = append(names, m)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}
