package inheritance

import (
	"github.com/carbocation/pedmodels/genotype"
	"github.com/carbocation/pedmodels/pedigree"
)

// Revision is what the parents of one individual say about a model that
// held: flags to set because a de novo event is possible, and inherited
// flags to retract because the called parents rule inheritance out.
type Revision struct {
	DeNovo  Models
	Retract Models
}

func (r Revision) Merge(o Revision) Revision {
	return Revision{DeNovo: r.DeNovo | o.DeNovo, Retract: r.Retract | o.Retract}
}

// Apply sets the de novo flags and then clears the retracted ones.
func (r Revision) Apply(m Models) Models {
	return (m | r.DeNovo) &^ r.Retract
}

func (r Revision) Empty() bool {
	return r.DeNovo == 0 && r.Retract == 0
}

// CheckParents refines a model that held for v1 (and, for Compound, the pair
// v1, v2) using the calls of ind's parents. Individuals without recorded
// parents yield an empty Revision. With strict, rules that would need more
// parents than are recorded are skipped.
func CheckParents(p Pattern, ind *pedigree.Individual, v1, v2 *Variant, strict bool) Revision {
	var out Revision
	if !ind.HasParents() {
		return out
	}

	inherited, deNovo := p.Flags()
	mark := func(called bool) {
		out.DeNovo = out.DeNovo.With(deNovo)
		if called {
			out.Retract = out.Retract.With(inherited)
		}
	}

	hasMother, hasFather := ind.HasMother(), ind.HasFather()
	mother, father := v1.Call(ind.MotherID), v1.Call(ind.FatherID)

	switch p {
	case Recessive:
		switch {
		case hasMother && hasFather:
			if lacks(mother, father) {
				mark(mother.Genotyped() && father.Genotyped())
			}
		case !strict:
			out.DeNovo = out.DeNovo.With(deNovo)
		}

	case Dominant:
		switch {
		case hasMother && hasFather:
			if lacks(mother, father) {
				mark(mother.Genotyped() && father.Genotyped())
			}
		case hasMother:
			if lacks(mother) {
				mark(mother.Genotyped())
			}
		case hasFather:
			if lacks(father) {
				mark(father.Genotyped())
			}
		}

	case XRecessive, XDominant:
		switch ind.Sex {
		case pedigree.Male:
			if hasMother && lacks(mother) {
				mark(mother.Genotyped())
			}
		case pedigree.Female:
			if hasMother && hasFather && lacks(mother, father) {
				mark(mother.Genotyped() && father.Genotyped())
			}
		case pedigree.SexUnknown:
		}

	case Compound:
		if !hasMother || !hasFather || v2 == nil {
			break
		}
		mother2, father2 := v2.Call(ind.MotherID), v2.Call(ind.FatherID)
		// Either side may lack both variants, but retraction needs every
		// parental call at both loci.
		if lacks(mother, mother2) || lacks(father, father2) {
			mark(mother.Genotyped() && mother2.Genotyped() && father.Genotyped() && father2.Genotyped())
		}
	}

	return out
}

// lacks is true when none of the calls carries the alternate allele. A
// parent that was not called does not carry it as far as we can tell.
func lacks(calls ...genotype.Call) bool {
	for _, c := range calls {
		if c.HasVariant() {
			return false
		}
	}

	return true
}
