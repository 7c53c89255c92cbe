package inheritance

import (
	"fmt"
	"strings"
)

// Model is one of the inheritance patterns, or its de novo variant, that a
// variant can be consistent with.
type Model uint8

const (
	XR Model = iota
	XRdn
	XD
	XDdn
	AD
	ADdn
	ARhom
	ARhomDn
	ARcomp
	ARcompDn

	numModels
)

var modelNames = [...]string{
	XR:       "XR",
	XRdn:     "XR_dn",
	XD:       "XD",
	XDdn:     "XD_dn",
	AD:       "AD",
	ADdn:     "AD_dn",
	ARhom:    "AR_hom",
	ARhomDn:  "AR_hom_dn",
	ARcomp:   "AR_comp",
	ARcompDn: "AR_comp_dn",
}

// Fails to compile unless modelNames names every Model.
var _ = [1]struct{}{}[len(modelNames)-int(numModels)]

// AllModels lists every model in declaration order.
var AllModels = func() []Model {
	out := make([]Model, 0, numModels)
	for m := Model(0); m < numModels; m++ {
		out = append(out, m)
	}
	return out
}()

func (m Model) String() string {
	if m >= numModels {
		return fmt.Sprintf("Model(%d)", uint8(m))
	}
	return modelNames[m]
}

func ParseModel(name string) (Model, error) {
	for m, n := range modelNames {
		if n == name {
			return Model(m), nil
		}
	}

	return 0, fmt.Errorf("%w: unknown inheritance model %q", ErrInvalidInput, name)
}

// Models is a fixed-size set of flags, one per Model. The zero value has
// every flag false.
type Models uint16

func (s Models) Has(m Model) bool {
	return s&(1<<m) != 0
}

func (s Models) With(ms ...Model) Models {
	for _, m := range ms {
		s |= 1 << m
	}
	return s
}

func (s Models) Without(ms ...Model) Models {
	for _, m := range ms {
		s &^= 1 << m
	}
	return s
}

func (s Models) Empty() bool {
	return s == 0
}

// List returns the flags that are set, in declaration order.
func (s Models) List() []Model {
	out := make([]Model, 0, numModels)
	for _, m := range AllModels {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

// String joins the set flags with '|', e.g. "AD|AD_dn".
func (s Models) String() string {
	names := make([]string, 0, numModels)
	for _, m := range s.List() {
		names = append(names, m.String())
	}
	return strings.Join(names, "|")
}

// ParseModels is the inverse of Models.String.
func ParseModels(s string) (Models, error) {
	var out Models
	if s == "" {
		return out, nil
	}

	for _, name := range strings.Split(s, "|") {
		m, err := ParseModel(name)
		if err != nil {
			return 0, err
		}
		out = out.With(m)
	}

	return out, nil
}

// Pattern selects the row of the parental refinement table to apply.
type Pattern uint8

const (
	Dominant Pattern = iota
	Recessive
	XRecessive
	XDominant
	Compound
)

// Flags returns the non-de-novo flag and the de novo flag governed by p.
func (p Pattern) Flags() (inherited, deNovo Model) {
	switch p {
	case Dominant:
		return AD, ADdn
	case Recessive:
		return ARhom, ARhomDn
	case XRecessive:
		return XR, XRdn
	case XDominant:
		return XD, XDdn
	case Compound:
		return ARcomp, ARcompDn
	}

	panic(fmt.Sprintf("inheritance: unknown pattern %d", p))
}

func (p Pattern) String() string {
	switch p {
	case Dominant:
		return "dominant"
	case Recessive:
		return "recessive"
	case XRecessive:
		return "X-linked recessive"
	case XDominant:
		return "X-linked dominant"
	case Compound:
		return "compound"
	}

	return fmt.Sprintf("Pattern(%d)", uint8(p))
}
