package inheritance

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelsSetAndClear(t *testing.T) {
	var m Models
	assert.True(t, m.Empty())
	assert.Equal(t, "", m.String())

	m = m.With(AD, ARcompDn)
	assert.True(t, m.Has(AD))
	assert.True(t, m.Has(ARcompDn))
	assert.False(t, m.Has(ADdn))
	assert.Equal(t, "AD|AR_comp_dn", m.String())

	m = m.Without(AD)
	assert.Equal(t, []Model{ARcompDn}, m.List())
}

func TestParseModels(t *testing.T) {
	m, err := ParseModels("XR_dn|AR_hom")
	require.NoError(t, err)
	assert.Equal(t, Models(0).With(XRdn, ARhom), m)

	m, err = ParseModels("")
	require.NoError(t, err)
	assert.True(t, m.Empty())

	_, err = ParseModels("AD|AX")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestEveryModelHasAName(t *testing.T) {
	assert.Len(t, AllModels, 10)

	names := make(map[string]bool)
	for _, m := range AllModels {
		assert.NotEmpty(t, m.String())
		names[m.String()] = true
	}
	assert.Len(t, names, len(AllModels))
}

func TestPatternFlags(t *testing.T) {
	for _, v := range []struct {
		Pattern   Pattern
		Inherited Model
		DeNovo    Model
	}{
		{Dominant, AD, ADdn},
		{Recessive, ARhom, ARhomDn},
		{XRecessive, XR, XRdn},
		{XDominant, XD, XDdn},
		{Compound, ARcomp, ARcompDn},
	} {
		inherited, deNovo := v.Pattern.Flags()
		assert.Equal(t, v.Inherited, inherited, v.Pattern.String())
		assert.Equal(t, v.DeNovo, deNovo, v.Pattern.String())
	}
}
