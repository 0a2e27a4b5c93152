package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMappingSpec(t *testing.T) {
	m, err := parseMappingSpec("date=Posted, desc=Memo ,amount=Value")
	require.NoError(t, err)
	assert.Equal(t, "Posted", m.Date)
	assert.Equal(t, "Memo", m.Description)
	assert.Equal(t, "Value", m.Amount)
}

func TestParseMappingSpec_SplitColumns(t *testing.T) {
	m, err := parseMappingSpec("date=When,description=What,debit=Out,credit=In")
	require.NoError(t, err)
	assert.True(t, m.UsesSplitColumns())
}

func TestParseMappingSpec_Invalid(t *testing.T) {
	cases := []string{
		"date=Posted",
		"date=Posted,desc=Memo",
		"bogus=X,date=A,desc=B,amount=C",
		"date,desc=B,amount=C",
		"",
	}
	for _, spec := range cases {
		_, err := parseMappingSpec(spec)
		assert.Error(t, err, "spec %q", spec)
	}
}
