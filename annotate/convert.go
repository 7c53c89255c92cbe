// Package annotate connects VCF records to the inheritance checks: it
// converts samples to calls, groups variants by gene, runs the checks, and
// writes the results back as INFO fields.
package annotate

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/carbocation/pedmodels/genotype"
	"github.com/carbocation/pedmodels/inheritance"
	"github.com/carbocation/pedmodels/pedigree"
	"github.com/carbocation/vcfgo"
)

// Converter maps the samples of a VCF onto the members of one family.
type Converter struct {
	family  *pedigree.Family
	columns map[string]int

	multiallelic sync.Once
	sampleErr    sync.Once
}

// NewConverter fails when no family member is a sample in the VCF. Members
// that are absent are logged and treated as not called.
func NewConverter(header *vcfgo.Header, fam *pedigree.Family) (*Converter, error) {
	c := &Converter{
		family:  fam,
		columns: make(map[string]int),
	}

	for i, name := range header.SampleNames {
		if _, member := fam.Individuals[name]; member {
			c.columns[name] = i
		}
	}

	if len(c.columns) == 0 {
		return nil, fmt.Errorf("none of the %d members of family %s is a sample in the VCF", len(fam.Individuals), fam.ID)
	}

	missing := make([]string, 0)
	for _, id := range fam.IDs() {
		if _, found := c.columns[id]; !found {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		log.Printf("Family %s members not found in the VCF will be treated as not called: %s\n", fam.ID, strings.Join(missing, ", "))
	}

	return c, nil
}

// Members returns the ids of the family members present in the VCF.
func (c *Converter) Members() []string {
	out := make([]string, 0, len(c.columns))
	for id := range c.columns {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}

func (c *Converter) parse(v *vcfgo.Variant) {
	if v.Samples != nil {
		return
	}

	if err := v.Header.ParseSamples(v); err != nil {
		c.sampleErr.Do(func() {
			log.Printf("Sample parsing error at %s:%d (further errors are not logged): %v\n", v.Chrom(), v.Pos, err)
		})
	}
}

// Convert builds the variant the checks operate on. Only the first ALT
// allele is evaluated; carriers of other ALT alleles count as reference.
func (c *Converter) Convert(v *vcfgo.Variant) *inheritance.Variant {
	c.parse(v)

	alts := v.Alt()
	if len(alts) > 1 {
		c.multiallelic.Do(func() {
			log.Printf("Multi-allelic site at %s:%d: only the first ALT allele is evaluated. Split multi-allelic sites to evaluate every allele.\n", v.Chrom(), v.Pos)
		})
	}

	out := &inheritance.Variant{
		Chrom:      v.Chrom(),
		Pos:        int(v.Pos),
		Ref:        v.Ref(),
		ExternalID: v.Id(),
		Calls:      make(map[string]genotype.Call, len(c.columns)),
	}
	if len(alts) > 0 {
		out.Alt = alts[0]
	}

	for id, col := range c.columns {
		if col >= len(v.Samples) || v.Samples[col] == nil {
			continue
		}
		s := v.Samples[col]
		out.Calls[id] = genotype.FromGT(s.GT, s.Phased, 1)
	}

	return out
}

// PhaseSets returns the PS field of each member that has one.
func (c *Converter) PhaseSets(v *vcfgo.Variant) map[string]string {
	c.parse(v)

	out := make(map[string]string)
	for id, col := range c.columns {
		if col >= len(v.Samples) || v.Samples[col] == nil {
			continue
		}
		if ps, exists := v.Samples[col].Fields["PS"]; exists {
			out[id] = ps
		}
	}

	return out
}
