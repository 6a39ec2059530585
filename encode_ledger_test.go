package payscope

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBalances(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeBalances(&buf, map[AccountID]Balance{
		bob:   B(12.5),
		alice: B(100),
		carol: B(0),
	}))

	want := `069a79f4-44e9-4726-a5be-fca90e38aaf5: 100
853c80ef-3c37-49fd-aa49-938b674adae6: 12.5
f84c6a6e-9a1d-4c1e-8fb4-3f8d8a5d4b21: 0
`
	assert.Equal(t, want, buf.String())
}

func TestDecodeBalances(t *testing.T) {
	testCases := []struct {
		name         string
		input        string
		want         map[AccountID]Balance
		wantWarnings int
	}{
		{
			name:  "empty file",
			input: "",
			want:  map[AccountID]Balance{},
		},
		{
			name:  "comments only",
			input: "# nothing yet\n",
			want:  map[AccountID]Balance{},
		},
		{
			name:  "empty mapping",
			input: "{}\n",
			want:  map[AccountID]Balance{},
		},
		{
			name: "canonical",
			input: `069a79f4-44e9-4726-a5be-fca90e38aaf5: 100
853c80ef-3c37-49fd-aa49-938b674adae6: 12.5
`,
			want: map[AccountID]Balance{alice: B(100), bob: B(12.5)},
		},
		{
			name: "hand edited",
			input: `# balances
"069A79F4-44E9-4726-A5BE-FCA90E38AAF5": 100.0
853c80ef-3c37-49fd-aa49-938b674adae6:   '7'
`,
			want: map[AccountID]Balance{alice: B(100), bob: B(7)},
		},
		{
			name: "integer literals",
			input: `069a79f4-44e9-4726-a5be-fca90e38aaf5: 0x1F
853c80ef-3c37-49fd-aa49-938b674adae6: 1_000
f84c6a6e-9a1d-4c1e-8fb4-3f8d8a5d4b21: 0o17
`,
			want: map[AccountID]Balance{alice: B(31), bob: B(1000), carol: B(15)},
		},
		{
			name:         "infinity is not a balance",
			input:        "069a79f4-44e9-4726-a5be-fca90e38aaf5: .inf\n",
			want:         map[AccountID]Balance{},
			wantWarnings: 1,
		},
		{
			name: "malformed keys are skipped",
			input: `069a79f4-44e9-4726-a5be-fca90e38aaf5: 1
Steve: 42
not-a-uuid: 3
`,
			want:         map[AccountID]Balance{alice: B(1)},
			wantWarnings: 2,
		},
		{
			name: "non numeric values are skipped",
			input: `069a79f4-44e9-4726-a5be-fca90e38aaf5: lots
853c80ef-3c37-49fd-aa49-938b674adae6: [1, 2]
f84c6a6e-9a1d-4c1e-8fb4-3f8d8a5d4b21:
`,
			want:         map[AccountID]Balance{},
			wantWarnings: 3,
		},
		{
			name:         "negative values are clamped",
			input:        "069a79f4-44e9-4726-a5be-fca90e38aaf5: -5\n",
			want:         map[AccountID]Balance{alice: B(0)},
			wantWarnings: 1,
		},
		{
			name: "duplicate keys, last wins",
			input: `069a79f4-44e9-4726-a5be-fca90e38aaf5: 1
069A79F4-44E9-4726-A5BE-FCA90E38AAF5: 2
`,
			want:         map[AccountID]Balance{alice: B(2)},
			wantWarnings: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, warnings, err := DecodeBalances(strings.NewReader(tc.input))
			require.NoError(t, err)
			assert.Len(t, warnings, tc.wantWarnings, "warnings: %v", warnings)
			assertBalances(t, tc.want, got)
		})
	}
}

func TestEncodeLargeBalances(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeBalances(&buf, map[AccountID]Balance{
		alice: mustParse(t, "100000000000000000000"),
		bob:   B(1e30),
	}))
	want := alice.String() + ": 100000000000000000000\n" +
		bob.String() + ": 1000000000000000000000000000000\n"
	assert.Equal(t, want, buf.String())
}

func TestDecodeBalancesWarningLines(t *testing.T) {
	input := `069a79f4-44e9-4726-a5be-fca90e38aaf5: 1

Steve: 42
`
	_, warnings, err := DecodeBalances(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, 3, warnings[0].Line)
	assert.Equal(t, "Steve", warnings[0].Key)
	assert.Contains(t, warnings[0].String(), "Steve")
}

func TestDecodeBalancesErrors(t *testing.T) {
	for name, input := range map[string]string{
		"sequence":  "- 1\n- 2\n",
		"scalar":    "hello\n",
		"bad yaml":  "a: [1,\n",
		"bad alias": "a: *missing\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := DecodeBalances(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

// Save(Load(Save(L))) == Save(L)
func TestBalancesRoundTrip(t *testing.T) {
	ledgers := []map[AccountID]Balance{
		{},
		{alice: B(0)},
		{alice: B(100), bob: B(0.01), carol: B(123456789.123456789)},
		{alice: mustParse(t, "0.30000000000000000000000001")},
		{alice: mustParse(t, "100000000000000000000"), bob: B(1e30)},
	}
	for _, l := range ledgers {
		var first bytes.Buffer
		require.NoError(t, EncodeBalances(&first, l))
		assert.NotContains(t, first.String(), "!!", "values are plain numbers")

		decoded, warnings, err := DecodeBalances(bytes.NewReader(first.Bytes()))
		require.NoError(t, err)
		assert.Empty(t, warnings)
		assertBalances(t, l, decoded)

		var second bytes.Buffer
		require.NoError(t, EncodeBalances(&second, decoded))
		assert.Equal(t, first.String(), second.String())
	}
}

func mustParse(t *testing.T, s string) Balance {
	t.Helper()
	b, err := ParseBalance(s)
	require.NoError(t, err)
	return b
}

// assertBalances compares balances by value, decimals with different exponents are equal.
func assertBalances(t *testing.T, want, got map[AccountID]Balance) {
	t.Helper()
	require.Len(t, got, len(want), "got %v", got)
	for id, w := range want {
		g, ok := got[id]
		if assert.True(t, ok, "missing account %v", id) {
			assert.True(t, w.Equal(g), "account %v: got %v, want %v", id, g, w)
		}
	}
}
