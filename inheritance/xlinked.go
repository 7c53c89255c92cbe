package inheritance

import (
	"fmt"

	"github.com/carbocation/pedmodels/genotype"
	"github.com/carbocation/pedmodels/pedigree"
)

// XStrictPolicy decides what strict mode means for the X-linked checks.
type XStrictPolicy uint8

const (
	// XStrictRequireCalls fails the model when any member is not called,
	// the same as the autosomal checks.
	XStrictRequireCalls XStrictPolicy = iota

	// XStrictRejectCalls fails the model when any member is called. It
	// reproduces output from pipelines that applied the inverted condition
	// and is only useful for comparing against them.
	XStrictRejectCalls
)

func (p XStrictPolicy) String() string {
	switch p {
	case XStrictRequireCalls:
		return "require-calls"
	case XStrictRejectCalls:
		return "reject-calls"
	}

	return fmt.Sprintf("XStrictPolicy(%d)", uint8(p))
}

func ParseXStrictPolicy(s string) (XStrictPolicy, error) {
	for _, p := range []XStrictPolicy{XStrictRequireCalls, XStrictRejectCalls} {
		if p.String() == s {
			return p, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown X strict policy %q (want require-calls or reject-calls)", ErrInvalidInput, s)
}

func (p XStrictPolicy) fails(call genotype.Call) bool {
	switch p {
	case XStrictRequireCalls:
		return !call.Genotyped()
	case XStrictRejectCalls:
		return call.Genotyped()
	}

	panic(fmt.Sprintf("inheritance: unknown X strict policy %d", p))
}

// CheckXRecessive reports whether v is consistent with X-linked recessive
// inheritance. Healthy males may not carry the variant at all.
func CheckXRecessive(v *Variant, fam *pedigree.Family, strict bool, policy XStrictPolicy) bool {
	for id, ind := range fam.Individuals {
		call := v.Call(id)
		if strict && policy.fails(call) {
			return false
		}
		if !call.Genotyped() {
			continue
		}

		switch ind.Affectation {
		case pedigree.Healthy:
			if call.HomoAlt() {
				return false
			}
			if ind.Sex == pedigree.Male && call.HasVariant() {
				return false
			}
		case pedigree.Affected:
			if call.HomoRef() {
				return false
			}
			if ind.Sex == pedigree.Female && !call.HomoAlt() {
				return false
			}
		case pedigree.AffectationUnknown:
		}
	}

	return true
}

// CheckXDominant reports whether v is consistent with X-linked dominant
// inheritance.
func CheckXDominant(v *Variant, fam *pedigree.Family, strict bool, policy XStrictPolicy) bool {
	for id, ind := range fam.Individuals {
		call := v.Call(id)
		if strict && policy.fails(call) {
			return false
		}
		if !call.Genotyped() {
			continue
		}

		switch ind.Affectation {
		case pedigree.Healthy:
			switch ind.Sex {
			case pedigree.Female:
				if call.HomoAlt() {
					return false
				}
			case pedigree.Male:
				if call.HasVariant() {
					return false
				}
			case pedigree.SexUnknown:
			}
		case pedigree.Affected:
			if call.HomoRef() {
				return false
			}
		case pedigree.AffectationUnknown:
		}
	}

	return true
}
