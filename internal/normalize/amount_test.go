package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"$1,234.56", "1234.56"},
		{"(45.00)", "-45.00"},
		{"45.00", "45.00"},
		{"-45.00", "-45.00"},
		{" £2,000 ", "2000.00"},
		{"€9.99", "9.99"},
		{"( $12.34 )", "-12.34"},
		{"0", "0.00"},
		{"+17.50", "17.50"},
	}
	for _, tc := range cases {
		got, err := Amount(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got.StringFixed(2), "input %q", tc.in)
	}
}

func TestAmount_Bad(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "12.3.4", "()"} {
		_, err := Amount(in)
		assert.ErrorIs(t, err, ErrBadAmount, "input %q", in)
	}
}
