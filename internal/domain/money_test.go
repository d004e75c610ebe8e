package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		input string
		want  Money
	}{
		{"20.00", 2000},
		{"0.99", 99},
		{"150", 15000},
		{"19.5", 1950},
		{"0", 0},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestParseMoneyRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "abc", "1.2.3", "10.999", "20.-5", "20.x1", "5. 1"} {
		_, err := ParseMoney(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "20.00", Money(2000).String())
	assert.Equal(t, "0.05", Money(5).String())
	assert.Equal(t, "1234.50", Money(123450).String())
}

func TestMoneyNegative(t *testing.T) {
	assert.True(t, Money(-1).Negative())
	assert.False(t, Money(0).Negative())
	assert.False(t, Money(100).Negative())
}
