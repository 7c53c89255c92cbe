package pedmodels

// Map columns in the PED file to their positions. Columns beyond the sixth
// (marker genotypes in linkage-format files) are ignored.
const (
	FamilyID int = iota
	IndividualID
	PaternalID
	MaternalID
	Sex
	Phenotype
)

type PEDRow struct {
	FamilyID     string
	IndividualID string
	PaternalID   string // "0" when not recorded
	MaternalID   string // "0" when not recorded
	Sex          string // 1=male, 2=female, anything else unknown
	Phenotype    string // 1=unaffected, 2=affected, anything else unknown
	Line         int
}
