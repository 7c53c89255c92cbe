package inheritance

import (
	"fmt"

	"github.com/carbocation/pedmodels/pedigree"
)

// CheckCompoundCandidate filters variants before pairs are formed. A variant
// marked ineligible, a variant anyone is homozygous for, and a variant some
// affected member lacks are never part of a compound pair. With strict,
// every affected member must be heterozygous.
func CheckCompoundCandidate(v *Variant, fam *pedigree.Family, strict bool) bool {
	if !v.EligibleForCompound() {
		return false
	}

	for id, ind := range fam.Individuals {
		call := v.Call(id)
		if call.HomoAlt() {
			return false
		}

		switch ind.Affectation {
		case pedigree.Affected:
			if call.HomoRef() {
				return false
			}
			if strict && !call.Heterozygote() {
				return false
			}
		case pedigree.Healthy, pedigree.AffectationUnknown:
		}
	}

	return true
}

// CheckCompounds evaluates a pair of candidates. A healthy member
// heterozygous at both variants falsifies the pair. With phased set, an
// affected member whose two alternate alleles sit on the same haplotype of
// one phase block falsifies it too. Positions outside any block, or in
// different blocks, say nothing about phase.
//
// A phase lookup that fails is returned wrapped in ErrMissingAnnotation.
func CheckCompounds(v1, v2 *Variant, fam *pedigree.Family, phase PhaseLookup, phased bool) (bool, error) {
	for id, ind := range fam.Individuals {
		c1, c2 := v1.Call(id), v2.Call(id)

		switch ind.Affectation {
		case pedigree.Healthy:
			if c1.Heterozygote() && c2.Heterozygote() {
				return false, nil
			}
		case pedigree.Affected:
			if !phased {
				continue
			}
			cis, err := sameHaplotype(id, v1, v2, phase)
			if err != nil {
				return false, err
			}
			if cis {
				return false, nil
			}
		case pedigree.AffectationUnknown:
		}
	}

	return true, nil
}

// sameHaplotype is true only when phase proves both alternate alleles of
// individualID sit on one haplotype.
func sameHaplotype(individualID string, v1, v2 *Variant, phase PhaseLookup) (bool, error) {
	if phase == nil {
		return false, fmt.Errorf("%w: phased analysis requested without phase data", ErrMissingAnnotation)
	}
	if v1.Chrom != v2.Chrom {
		return false, nil
	}

	b1, found1, err := phase.Find(individualID, v1.Chrom, v1.Pos)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMissingAnnotation, err)
	}
	b2, found2, err := phase.Find(individualID, v2.Chrom, v2.Pos)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMissingAnnotation, err)
	}
	if !found1 || !found2 || b1 != b2 {
		return false, nil
	}

	h1, h2 := v1.Call(individualID).AltHaplotype(), v2.Call(individualID).AltHaplotype()

	return h1 != 0 && h1 == h2, nil
}
