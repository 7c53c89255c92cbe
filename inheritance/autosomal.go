package inheritance

import (
	"github.com/carbocation/pedmodels/pedigree"
)

// CheckDominant reports whether v is consistent with autosomal dominant
// inheritance in fam. Healthy carriers and affected individuals that are
// called but not heterozygous falsify the model. With strict, every member
// must be called.
func CheckDominant(v *Variant, fam *pedigree.Family, strict bool) bool {
	for id, ind := range fam.Individuals {
		call := v.Call(id)
		if strict && !call.Genotyped() {
			return false
		}

		switch ind.Affectation {
		case pedigree.Healthy:
			if call.HasVariant() {
				return false
			}
		case pedigree.Affected:
			if call.Genotyped() && !call.Heterozygote() {
				return false
			}
		case pedigree.AffectationUnknown:
		}
	}

	return true
}

// CheckRecessive reports whether v is consistent with autosomal recessive
// homozygous inheritance in fam.
func CheckRecessive(v *Variant, fam *pedigree.Family, strict bool) bool {
	for id, ind := range fam.Individuals {
		call := v.Call(id)
		if strict && !call.Genotyped() {
			return false
		}

		switch ind.Affectation {
		case pedigree.Healthy:
			if call.HomoAlt() {
				return false
			}
		case pedigree.Affected:
			if call.Genotyped() && !call.HomoAlt() {
				return false
			}
		case pedigree.AffectationUnknown:
		}
	}

	return true
}
