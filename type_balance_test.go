package payscope

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBalance(t *testing.T) {
	testCases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "100", want: "100"},
		{input: "12.50", want: "12.5"},
		{input: "-5", want: "-5"},
		{input: "0.001", want: "0.001"},
		{input: "1e3", want: "1000"},
		{input: "1_000", want: "1000"},
		{input: "1_000.25", want: "1000.25"},
		{input: "0x1F", want: "31"},
		{input: "-0x10", want: "-16"},
		{input: "0o17", want: "15"},
		{input: "0b101", want: "5"},
		{input: "100000000000000000000", want: "100000000000000000000"},
		{input: "0xZZ", wantErr: true},
		{input: "_", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
		{input: "NaN", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseBalance(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestBalanceFormat(t *testing.T) {
	testCases := []struct {
		balance Balance
		want    string
	}{
		{B(100), "$100.00"},
		{B(12.5), "$12.50"},
		{B(0), "$0.00"},
		{B(1234567), "$1,234,567.00"},
		{B(0.005), "$0.01"},
		// minor units beyond int64
		{mustParse(t, "100000000000000000000"), "$100,000,000,000,000,000,000.00"},
		{B(1e30), "$1" + strings.Repeat(",000", 10) + ".00"},
		{mustParse(t, "-92233720368547758.08"), "-$92,233,720,368,547,758.08"},
		{mustParse(t, "-92233720368547758.09"), "-$92,233,720,368,547,758.09"},
	}
	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.balance.Format("USD"))
		})
	}
}

func TestBalanceFormatUnknownCurrency(t *testing.T) {
	assert.Equal(t, "12.5 XYZ", B(12.5).Format("XYZ"))
}

func TestBalanceArithmetic(t *testing.T) {
	var zero Balance
	assert.True(t, zero.IsZero())
	assert.True(t, zero.Equal(B(0)))

	b := B(10).Sub(B(2.5)).Add(B(0.5))
	assert.True(t, b.Equal(B(8)))
	assert.True(t, b.Decimal().Equal(decimal.NewFromInt(8)))
	assert.True(t, B(1).LessThan(B(2)))
	assert.True(t, B(2).GreaterThanOrEqual(B(2)))
	assert.True(t, B(-1).IsNegative())
	assert.True(t, B(int64(3)).IsPositive())
	assert.True(t, B(decimal.NewFromInt(3)).Equal(B(3)))
}

func TestParseAccountID(t *testing.T) {
	id, err := ParseAccountID("069A79F4-44E9-4726-A5BE-FCA90E38AAF5")
	require.NoError(t, err)
	assert.Equal(t, alice, id)
	assert.Equal(t, "069a79f4-44e9-4726-a5be-fca90e38aaf5", id.String())

	_, err = ParseAccountID("Steve")
	assert.Error(t, err)

	assert.True(t, AccountID{}.IsZero())
	assert.False(t, NewAccountID().IsZero())
	assert.NotEqual(t, NewAccountID(), NewAccountID())

	assert.Equal(t, -1, alice.Compare(bob))
	assert.Equal(t, 1, bob.Compare(alice))
	assert.Equal(t, 0, alice.Compare(alice))
}
