// Package pedigree models the members of a family, their sex, their
// affectation status, and their parent links.
package pedigree

import "sort"

// NoParent is the sentinel recorded when a parent is not in the pedigree.
const NoParent = "0"

type Sex uint8

const (
	SexUnknown Sex = iota
	Male
	Female
)

func (s Sex) String() string {
	switch s {
	case Male:
		return "male"
	case Female:
		return "female"
	default:
		return "unknown"
	}
}

type Affectation uint8

const (
	AffectationUnknown Affectation = iota
	Affected
	Healthy
)

func (a Affectation) String() string {
	switch a {
	case Affected:
		return "affected"
	case Healthy:
		return "healthy"
	default:
		return "unknown"
	}
}

type Individual struct {
	ID          string
	FamilyID    string
	MotherID    string
	FatherID    string
	Sex         Sex
	Affectation Affectation
}

func (i Individual) HasMother() bool {
	return i.MotherID != NoParent && i.MotherID != ""
}

func (i Individual) HasFather() bool {
	return i.FatherID != NoParent && i.FatherID != ""
}

// HasParents is true when at least one parent is recorded.
func (i Individual) HasParents() bool {
	return i.HasMother() || i.HasFather()
}

func (i Individual) Affected() bool {
	return i.Affectation == Affected
}

func (i Individual) Healthy() bool {
	return i.Affectation == Healthy
}

// Family is a set of individuals keyed by id. Iteration through Members is in
// id order so that every check visits individuals deterministically.
type Family struct {
	ID          string
	Individuals map[string]*Individual
}

func NewFamily(id string, members ...Individual) *Family {
	f := &Family{
		ID:          id,
		Individuals: make(map[string]*Individual, len(members)),
	}
	for _, m := range members {
		f.Add(m)
	}

	return f
}

// Add inserts or replaces a member.
func (f *Family) Add(ind Individual) {
	if ind.FamilyID == "" {
		ind.FamilyID = f.ID
	}
	f.Individuals[ind.ID] = &ind
}

func (f *Family) Individual(id string) (*Individual, bool) {
	ind, ok := f.Individuals[id]
	return ind, ok
}

// Phenotype returns the affectation of id, or AffectationUnknown if id is not
// a member.
func (f *Family) Phenotype(id string) Affectation {
	if ind, ok := f.Individuals[id]; ok {
		return ind.Affectation
	}

	return AffectationUnknown
}

// IDs returns the member ids in sorted order.
func (f *Family) IDs() []string {
	out := make([]string, 0, len(f.Individuals))
	for id := range f.Individuals {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}

// Members returns the individuals in id order.
func (f *Family) Members() []*Individual {
	ids := f.IDs()
	out := make([]*Individual, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.Individuals[id])
	}

	return out
}

// Affected returns the ids of all affected members in id order.
func (f *Family) Affected() []string {
	out := make([]string, 0)
	for _, ind := range f.Members() {
		if ind.Affected() {
			out = append(out, ind.ID)
		}
	}

	return out
}
