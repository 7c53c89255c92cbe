// Package inheritance decides, for each variant seen in a family, which
// Mendelian inheritance patterns are consistent with the genotypes of every
// family member. Each pattern is a deterministic predicate over genotypes,
// affectation status and parent links; nothing here is statistical.
package inheritance

import (
	"fmt"
	"strings"

	"github.com/carbocation/pedmodels/genotype"
	"gopkg.in/guregu/null.v3"
)

// Variant is one biallelic site with the calls of the family members and
// the annotation state the checks write.
type Variant struct {
	Chrom      string
	Pos        int
	Ref        string
	Alt        string
	ExternalID string

	// Calls is keyed by individual id. Individuals without an entry are
	// treated as not called.
	Calls map[string]genotype.Call

	Models Models

	// Compounds maps the Key of each accepted compound partner to its rank,
	// which is always 0.
	Compounds map[string]int

	// CompCandidate is false for variants that may not take part in a
	// compound pair. Absent means eligible.
	CompCandidate null.Bool
}

// Key identifies the variant as chrom_pos_ref_alt.
func (v *Variant) Key() string {
	return fmt.Sprintf("%s_%d_%s_%s", v.Chrom, v.Pos, v.Ref, v.Alt)
}

func (v *Variant) String() string {
	return v.Key()
}

// Call returns the call for an individual, or genotype.Missing.
func (v *Variant) Call(individualID string) genotype.Call {
	if c, ok := v.Calls[individualID]; ok {
		return c
	}

	return genotype.Missing
}

// XLinked reports whether the variant sits on the X chromosome, with or
// without a "chr" prefix.
func (v *Variant) XLinked() bool {
	return IsXChromosome(v.Chrom)
}

func IsXChromosome(chrom string) bool {
	c := strings.ToUpper(chrom)
	c = strings.TrimPrefix(c, "CHR")
	return c == "X"
}

// EligibleForCompound is false only when CompCandidate was explicitly set
// to false.
func (v *Variant) EligibleForCompound() bool {
	return !v.CompCandidate.Valid || v.CompCandidate.Bool
}

// Reset clears the flags and compounds.
func (v *Variant) Reset() {
	v.Models = 0
	v.Compounds = make(map[string]int)
}

// Clone copies the annotation state. Calls are immutable and shared.
func (v *Variant) Clone() *Variant {
	out := *v
	out.Compounds = make(map[string]int, len(v.Compounds))
	for k, rank := range v.Compounds {
		out.Compounds[k] = rank
	}

	return &out
}

// Group holds the variants of one co-inheritance unit, typically one gene.
// Compound pairs are only formed within a group.
type Group struct {
	ID       string
	Variants []*Variant
}

func NewGroup(id string, variants ...*Variant) *Group {
	return &Group{ID: id, Variants: variants}
}

// PhaseLookup answers which phase block of an individual contains a
// position. Find returns an error when the individual has no phase data at
// all, and found=false when the position lies outside every block.
type PhaseLookup interface {
	Find(individualID, chrom string, pos int) (block uint64, found bool, err error)
	Has(individualID string) bool
}

// Batch is the unit of work handed to a Checker. Phase is only consulted
// for phased analysis.
type Batch struct {
	Groups map[string]*Group
	Phase  PhaseLookup
}

func NewBatch(phase PhaseLookup, groups ...*Group) *Batch {
	b := &Batch{
		Groups: make(map[string]*Group, len(groups)),
		Phase:  phase,
	}
	for _, g := range groups {
		b.Groups[g.ID] = g
	}

	return b
}

// validate rejects batches where one variant value is listed more than once,
// whether by two groups or twice in one group.
func (b *Batch) validate() error {
	owner := make(map[*Variant]string)
	for id, g := range b.Groups {
		if g == nil {
			return fmt.Errorf("%w: group %q is nil", ErrInvalidInput, id)
		}
		for _, v := range g.Variants {
			if v == nil {
				return fmt.Errorf("%w: group %q holds a nil variant", ErrInvalidInput, id)
			}
			if other, exists := owner[v]; exists {
				return fmt.Errorf("%w: variant %s is listed by groups %q and %q; clone it per group", ErrInvalidInput, v, other, id)
			}
			owner[v] = id
		}
	}

	return nil
}
