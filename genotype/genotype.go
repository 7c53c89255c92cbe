// Package genotype classifies a single individual's call at a single variant
// into one of four mutually exclusive states, and keeps track of which
// haplotype carries each allele when the call is phased.
package genotype

// Genotype is the zygosity class of a diploid (or hemizygous) call with
// respect to one alternate allele.
type Genotype uint8

const (
	NotCalled Genotype = iota
	HomRef
	Het
	HomAlt
)

func (g Genotype) String() string {
	switch g {
	case HomRef:
		return "HOMOZYGOUS_REFERENCE"
	case Het:
		return "HETEROZYGOUS"
	case HomAlt:
		return "HOMOZYGOUS_ALTERNATE"
	default:
		return "NOT_CALLED"
	}
}

// NoAllele marks an allele slot that was missing ('.') or absent (haploid
// calls only fill Allele1).
const NoAllele = -1

// Call is an immutable genotype observation for one (variant, individual).
// Allele1 and Allele2 hold 0 for the reference and 1 for the evaluated
// alternate allele, in the order written in the VCF; when Phased is set,
// Allele1 sits on the first haplotype and Allele2 on the second.
type Call struct {
	Genotype Genotype
	Phased   bool
	Allele1  int
	Allele2  int
}

// Missing is the call used for individuals that have no data at a variant.
var Missing = Call{Genotype: NotCalled, Allele1: NoAllele, Allele2: NoAllele}

func (c Call) Genotyped() bool {
	return c.Genotype != NotCalled
}

func (c Call) HomoRef() bool {
	return c.Genotype == HomRef
}

func (c Call) Heterozygote() bool {
	return c.Genotype == Het
}

func (c Call) HomoAlt() bool {
	return c.Genotype == HomAlt
}

// HasVariant reports whether at least one copy of the alternate allele was
// observed.
func (c Call) HasVariant() bool {
	return c.Genotype == Het || c.Genotype == HomAlt
}

// AltHaplotype returns 1 or 2 for the haplotype carrying the alternate allele
// of a phased heterozygous call. It returns 0 when that cannot be determined.
func (c Call) AltHaplotype() int {
	if !c.Phased || c.Genotype != Het {
		return 0
	}

	switch {
	case c.Allele1 > 0 && c.Allele2 == 0:
		return 1
	case c.Allele1 == 0 && c.Allele2 > 0:
		return 2
	}

	return 0
}

func (c Call) String() string {
	if c.Genotype == NotCalled {
		return "./."
	}

	sep := "/"
	if c.Phased {
		sep = "|"
	}

	if c.Allele2 == NoAllele {
		return alleleString(c.Allele1)
	}

	return alleleString(c.Allele1) + sep + alleleString(c.Allele2)
}

func alleleString(a int) string {
	switch a {
	case NoAllele:
		return "."
	case 0:
		return "0"
	default:
		return "1"
	}
}
