package genotype

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError describes a GT string that could not be interpreted.
type ParseError struct {
	GT     string
	Reason string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("genotype %q: %s", e.GT, e.Reason)
}

// Parse interprets a VCF GT string such as "0|1", "1/1", "./." or the
// haploid "1", evaluating the first alternate allele.
func Parse(gt string) (Call, error) {
	return ParseAlt(gt, 1)
}

// ParseAlt is like Parse but evaluates the alt'th alternate allele (1-based,
// as numbered in the GT field). Other alternate alleles count as reference.
func ParseAlt(gt string, alt int) (Call, error) {
	gt = strings.TrimSpace(gt)
	if gt == "" {
		return Missing, nil
	}

	phased := strings.Contains(gt, "|")
	if phased && strings.Contains(gt, "/") {
		return Missing, ParseError{GT: gt, Reason: "mixed phased and unphased separators"}
	}

	var parts []string
	if phased {
		parts = strings.Split(gt, "|")
	} else {
		parts = strings.Split(gt, "/")
	}

	alleles := make([]int, 0, len(parts))
	for _, part := range parts {
		if part == "." {
			alleles = append(alleles, NoAllele)
			continue
		}

		a, err := strconv.Atoi(part)
		if err != nil || a < 0 {
			return Missing, ParseError{GT: gt, Reason: fmt.Sprintf("allele %q is not a non-negative integer", part)}
		}
		alleles = append(alleles, a)
	}

	return FromGT(alleles, phased, alt), nil
}

// FromGT classifies the integer alleles of a VCF sample (as decoded by vcfgo,
// where -1 denotes a missing allele) against the alt'th alternate allele.
//
// VCF, for an alt like A,C, stores genotypes like 0/1, 0/2. Alleles that are
// neither the reference nor the evaluated alternate are treated as
// reference.
func FromGT(gt []int, phased bool, alt int) Call {
	if len(gt) == 0 {
		return Missing
	}

	c := Call{Phased: phased && len(gt) > 1, Allele1: NoAllele, Allele2: NoAllele}

	altCount := 0
	for i, a := range gt {
		if a < 0 {
			// A partially missing call is still a no-call
			return Call{Phased: c.Phased, Allele1: NoAllele, Allele2: NoAllele}
		}

		coded := 0
		if a == alt {
			coded = 1
			altCount++
		}

		switch i {
		case 0:
			c.Allele1 = coded
		case 1:
			c.Allele2 = coded
		}
	}

	switch altCount {
	case 0:
		c.Genotype = HomRef
	case len(gt):
		c.Genotype = HomAlt
	default:
		c.Genotype = Het
	}

	return c
}
