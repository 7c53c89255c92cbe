package annotate

import (
	"sort"
	"strings"

	"github.com/carbocation/pedmodels/inheritance"
	"github.com/carbocation/vcfgo"
)

const (
	GeneticModelsKey = "GeneticModels"
	CompoundsKey     = "Compounds"
)

// AddHeader declares the INFO fields written by Annotate and appends extra
// header lines, each of which should start with "##".
func AddHeader(h *vcfgo.Header, extras ...string) {
	if h.Infos == nil {
		h.Infos = make(map[string]*vcfgo.Info)
	}

	h.Infos[GeneticModelsKey] = &vcfgo.Info{
		Id:          GeneticModelsKey,
		Number:      ".",
		Type:        "String",
		Description: "Inheritance models consistent with the family genotypes, as family:model|model",
	}
	h.Infos[CompoundsKey] = &vcfgo.Info{
		Id:          CompoundsKey,
		Number:      ".",
		Type:        "String",
		Description: "Compound heterozygous partners of this variant, as family:chrom_pos_ref_alt|chrom_pos_ref_alt",
	}

	h.Extras = append(h.Extras, extras...)
}

// FormatModels renders the GeneticModels value, or "" if no model holds.
func FormatModels(familyID string, m inheritance.Models) string {
	if m.Empty() {
		return ""
	}

	return familyID + ":" + m.String()
}

// FormatCompounds renders the Compounds value with partners in sorted order,
// or "" if there are none.
func FormatCompounds(familyID string, compounds map[string]int) string {
	if len(compounds) == 0 {
		return ""
	}

	partners := make([]string, 0, len(compounds))
	for k := range compounds {
		partners = append(partners, k)
	}
	sort.Strings(partners)

	return familyID + ":" + strings.Join(partners, "|")
}

// Annotate writes the checked state of rec.Variant into the INFO field of
// rec.VCF. Fields with nothing to report are left out.
func Annotate(rec *Record, familyID string) error {
	if models := FormatModels(familyID, rec.Variant.Models); models != "" {
		if err := rec.VCF.Info().Set(GeneticModelsKey, models); err != nil {
			return err
		}
	}

	if compounds := FormatCompounds(familyID, rec.Variant.Compounds); compounds != "" {
		if err := rec.VCF.Info().Set(CompoundsKey, compounds); err != nil {
			return err
		}
	}

	return nil
}
