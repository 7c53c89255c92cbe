package pedigree

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/carbocation/pedmodels"
)

var ErrUnknownFamily = errors.New("family not found in pedigree")

// Families maps family id to family.
type Families map[string]*Family

// FromPED groups PED rows into families and validates parent links.
func FromPED(rows []pedmodels.PEDRow) (Families, error) {
	out := make(Families)

	for _, row := range rows {
		fam, exists := out[row.FamilyID]
		if !exists {
			fam = NewFamily(row.FamilyID)
			out[row.FamilyID] = fam
		}

		if _, dup := fam.Individuals[row.IndividualID]; dup {
			return nil, fmt.Errorf("line %d: individual %s appears twice in family %s", row.Line, row.IndividualID, row.FamilyID)
		}

		fam.Add(Individual{
			ID:          row.IndividualID,
			FamilyID:    row.FamilyID,
			MotherID:    row.MaternalID,
			FatherID:    row.PaternalID,
			Sex:         ParseSex(row.Sex),
			Affectation: ParseAffectation(row.Phenotype),
		})
	}

	for _, fam := range out {
		if err := fam.Validate(); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// ParseSex follows the PED convention: 1=male, 2=female, other=unknown.
func ParseSex(code string) Sex {
	switch code {
	case "1":
		return Male
	case "2":
		return Female
	default:
		return SexUnknown
	}
}

// ParseAffectation follows the PED convention: 1=unaffected, 2=affected,
// other (0, -9, ...) = unknown.
func ParseAffectation(code string) Affectation {
	switch code {
	case "1":
		return Healthy
	case "2":
		return Affected
	default:
		return AffectationUnknown
	}
}

// Validate checks that recorded parents who are members of the family have
// a sex compatible with their role, and that nobody is their own parent.
func (f *Family) Validate() error {
	for _, ind := range f.Members() {
		if ind.MotherID == ind.ID || ind.FatherID == ind.ID {
			return fmt.Errorf("family %s: %s is recorded as their own parent", f.ID, ind.ID)
		}

		if ind.HasMother() {
			if mother, ok := f.Individuals[ind.MotherID]; ok && mother.Sex == Male {
				return fmt.Errorf("family %s: mother %s of %s is recorded as male", f.ID, mother.ID, ind.ID)
			}
		}

		if ind.HasFather() {
			if father, ok := f.Individuals[ind.FatherID]; ok && father.Sex == Female {
				return fmt.Errorf("family %s: father %s of %s is recorded as female", f.ID, father.ID, ind.ID)
			}
		}
	}

	return nil
}

func (fs Families) IDs() []string {
	out := make([]string, 0, len(fs))
	for id := range fs {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}

func (fs Families) Get(id string) (*Family, error) {
	if fam, ok := fs[id]; ok {
		return fam, nil
	}

	return nil, fmt.Errorf("%w: %q (families present: %s)", ErrUnknownFamily, id, strings.Join(fs.IDs(), ", "))
}

// Only returns the single family in the pedigree, or an error if there is not
// exactly one.
func (fs Families) Only() (*Family, error) {
	if len(fs) != 1 {
		return nil, fmt.Errorf("%w: expected exactly one family but found %d (%s); choose one explicitly", ErrUnknownFamily, len(fs), strings.Join(fs.IDs(), ", "))
	}

	for _, fam := range fs {
		return fam, nil
	}

	return nil, nil
}
