package inheritance

import (
	"testing"

	"github.com/carbocation/pedmodels/pedigree"
	"github.com/stretchr/testify/assert"
)

func TestCheckParents(t *testing.T) {
	both := &pedigree.Individual{ID: "kid", MotherID: "mom", FatherID: "dad", Sex: pedigree.Female}
	boy := &pedigree.Individual{ID: "kid", MotherID: "mom", FatherID: "dad", Sex: pedigree.Male}
	unknownSex := &pedigree.Individual{ID: "kid", MotherID: "mom", FatherID: "dad"}
	motherOnly := &pedigree.Individual{ID: "kid", MotherID: "mom", FatherID: pedigree.NoParent}
	fatherOnly := &pedigree.Individual{ID: "kid", MotherID: pedigree.NoParent, FatherID: "dad", Sex: pedigree.Male}
	girlMotherOnly := &pedigree.Individual{ID: "kid", MotherID: "mom", FatherID: pedigree.NoParent, Sex: pedigree.Female}
	boyMotherOnly := &pedigree.Individual{ID: "kid", MotherID: "mom", FatherID: pedigree.NoParent, Sex: pedigree.Male}
	orphan := &pedigree.Individual{ID: "kid", MotherID: pedigree.NoParent, FatherID: pedigree.NoParent}

	dn := func(ms ...Model) Models { return Models(0).With(ms...) }

	for _, v := range []struct {
		Name     string
		Pattern  Pattern
		Ind      *pedigree.Individual
		GTs      map[string]string
		Strict   bool
		Expected Revision
	}{
		{"recessive, clean called parents", Recessive, both, map[string]string{"mom": "0/0", "dad": "0/0"}, false, Revision{DeNovo: dn(ARhomDn), Retract: dn(ARhom)}},
		{"recessive, clean uncalled father", Recessive, both, map[string]string{"mom": "0/0"}, false, Revision{DeNovo: dn(ARhomDn)}},
		{"recessive, carrier parent", Recessive, both, map[string]string{"mom": "0/1", "dad": "0/0"}, false, Revision{}},
		{"recessive, one parent", Recessive, motherOnly, map[string]string{"mom": "0/1"}, false, Revision{DeNovo: dn(ARhomDn)}},
		{"recessive, one parent, strict", Recessive, motherOnly, map[string]string{"mom": "0/1"}, true, Revision{}},
		{"dominant, clean called parents", Dominant, both, map[string]string{"mom": "0/0", "dad": "0/0"}, false, Revision{DeNovo: dn(ADdn), Retract: dn(AD)}},
		{"dominant, father only, clean", Dominant, fatherOnly, map[string]string{"dad": "0/0"}, true, Revision{DeNovo: dn(ADdn), Retract: dn(AD)}},
		{"dominant, mother only, uncalled", Dominant, motherOnly, map[string]string{}, false, Revision{DeNovo: dn(ADdn)}},
		{"dominant, mother only, carrier", Dominant, motherOnly, map[string]string{"mom": "0/1"}, false, Revision{}},
		{"X recessive, boy, clean mother", XRecessive, boy, map[string]string{"mom": "0/0", "dad": "1"}, false, Revision{DeNovo: dn(XRdn), Retract: dn(XR)}},
		{"X dominant, boy, uncalled mother", XDominant, boy, map[string]string{"dad": "0"}, false, Revision{DeNovo: dn(XDdn)}},
		{"X dominant, girl, carrier father", XDominant, both, map[string]string{"mom": "0/0", "dad": "1"}, false, Revision{}},
		{"X dominant, girl, clean parents", XDominant, both, map[string]string{"mom": "0/0", "dad": "0"}, false, Revision{DeNovo: dn(XDdn), Retract: dn(XD)}},
		{"X recessive, girl, mother only, strict", XRecessive, girlMotherOnly, map[string]string{"mom": "0/0"}, true, Revision{}},
		{"X dominant, girl, mother only, strict", XDominant, girlMotherOnly, map[string]string{"mom": "0/0"}, true, Revision{}},
		{"X recessive, boy, mother only, strict", XRecessive, boyMotherOnly, map[string]string{"mom": "0/0"}, true, Revision{DeNovo: dn(XRdn), Retract: dn(XR)}},
		{"X recessive, unknown sex",XRecessive, unknownSex, map[string]string{"mom": "0/0", "dad": "0"}, false, Revision{}},
		{"no parents", Dominant, orphan, map[string]string{}, false, Revision{}},
	} {
		v1 := variant(t, "1", 100, v.GTs)
		assert.Equal(t, v.Expected, CheckParents(v.Pattern, v.Ind, v1, nil, v.Strict), v.Name)
	}
}

func TestCheckParentsCompoundSides(t *testing.T) {
	kid := &pedigree.Individual{ID: "kid", MotherID: "mom", FatherID: "dad"}

	v1 := variant(t, "1", 100, map[string]string{"mom": "0/1", "dad": "0/0"})
	v2 := variant(t, "1", 200, map[string]string{"mom": "0/0", "dad": "0/1"})
	assert.Equal(t, Revision{}, CheckParents(Compound, kid, v1, v2, false))

	// The father carries neither, but was not called at v2.
	v1 = variant(t, "1", 100, map[string]string{"mom": "0/1", "dad": "0/0"})
	v2 = variant(t, "1", 200, map[string]string{"mom": "0/1"})
	assert.Equal(t, Revision{DeNovo: Models(0).With(ARcompDn)}, CheckParents(Compound, kid, v1, v2, false))

	v2 = variant(t, "1", 200, map[string]string{"mom": "0/1", "dad": "0/0"})
	assert.Equal(t, Revision{DeNovo: Models(0).With(ARcompDn), Retract: Models(0).With(ARcomp)}, CheckParents(Compound, kid, v1, v2, false))

	// The mother carries neither and was called at both, but the father was
	// never called.
	v1 = variant(t, "1", 100, map[string]string{"mom": "0/0"})
	v2 = variant(t, "1", 200, map[string]string{"mom": "0/0"})
	assert.Equal(t, Revision{DeNovo: Models(0).With(ARcompDn)}, CheckParents(Compound, kid, v1, v2, false))

	v1 = variant(t, "1", 100, map[string]string{"mom": "0/1", "dad": "0/0"})
	v2 = variant(t, "1", 200, map[string]string{"mom": "0/1", "dad": "0/0"})
	motherOnly := &pedigree.Individual{ID: "kid", MotherID: "mom", FatherID: pedigree.NoParent}
	assert.Equal(t, Revision{}, CheckParents(Compound, motherOnly, v1, v2, false))
	assert.Equal(t, Revision{}, CheckParents(Compound, motherOnly, v1, v2, true))
}

func TestRevisionApply(t *testing.T) {
	r := Revision{DeNovo: Models(0).With(ADdn), Retract: Models(0).With(AD)}
	assert.Equal(t, Models(0).With(ADdn, ARhom), r.Apply(Models(0).With(AD, ARhom)))
	assert.True(t, Revision{}.Empty())
	assert.False(t, r.Empty())
}
