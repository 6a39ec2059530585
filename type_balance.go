package payscope

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the display currency used when none is configured.
const DefaultCurrency = "USD"

// Balance represents a monetary amount held by an account.
//
// Balances are exact decimals. The zero value is a zero balance.
type Balance struct {
	value decimal.Decimal
}

// B creates a Balance from a numeric value.
func B[T float64 | int | int64 | decimal.Decimal](value T) Balance {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return Balance{value: v}
	case float64:
		return Balance{value: decimal.NewFromFloat(v)}
	case int:
		return Balance{value: decimal.NewFromInt(int64(v))}
	case int64:
		return Balance{value: decimal.NewFromInt(v)}
	default:
		panic("unsupported type")
	}
}

// ParseBalance parses an amount such as "12", "12.50", "-3", "1_000" or "0x1F".
//
// Accepted are decimal numbers with an optional fraction and exponent, and
// integers with a 0x, 0o or 0b prefix. Underscores separate digits.
// The sign is not checked here, validation belongs to the ledger operations.
func ParseBalance(s string) (Balance, error) {
	text := strings.ReplaceAll(s, "_", "")
	unsigned := strings.ToLower(strings.TrimLeft(text, "+-"))
	if strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0o") || strings.HasPrefix(unsigned, "0b") {
		i, ok := new(big.Int).SetString(text, 0)
		if !ok {
			return Balance{}, fmt.Errorf("invalid amount %q", s)
		}
		return Balance{value: decimal.NewFromBigInt(i, 0)}, nil
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return Balance{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Balance{value: d}, nil
}

// Decimal returns the underlying decimal value.
func (b Balance) Decimal() decimal.Decimal { return b.value }

// String returns the canonical decimal text, as persisted in the ledger file.
func (b Balance) String() string { return b.value.String() }

// Format returns the amount rendered for display in the given currency, e.g. "$12.50".
//
// Unknown currency codes fall back to the canonical text followed by the code.
func (b Balance) Format(currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return b.value.String() + " " + currency
	}
	minor := b.value.Shift(int32(cur.Fraction)).Round(0)
	// the go-money formatter takes int64 minor units, MinInt64 has no absolute value.
	if minor.GreaterThan(minInt64) && minor.LessThanOrEqual(maxInt64) {
		return cur.Formatter().Format(minor.IntPart())
	}
	return formatMinor(cur, minor)
}

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// formatMinor lays out an amount in minor units like the go-money formatter,
// for amounts that do not fit an int64.
func formatMinor(cur *money.Currency, minor decimal.Decimal) string {
	digits := minor.Abs().BigInt().String()
	if len(digits) <= cur.Fraction {
		digits = strings.Repeat("0", cur.Fraction-len(digits)+1) + digits
	}
	if cur.Thousand != "" {
		for i := len(digits) - cur.Fraction - 3; i > 0; i -= 3 {
			digits = digits[:i] + cur.Thousand + digits[i:]
		}
	}
	if cur.Fraction > 0 {
		digits = digits[:len(digits)-cur.Fraction] + cur.Decimal + digits[len(digits)-cur.Fraction:]
	}
	out := strings.Replace(cur.Template, "1", digits, 1)
	out = strings.Replace(out, "$", cur.Grapheme, 1)
	if minor.IsNegative() {
		out = "-" + out
	}
	return out
}

func (b Balance) IsZero() bool                      { return b.value.IsZero() }
func (b Balance) IsPositive() bool                  { return b.value.IsPositive() }
func (b Balance) IsNegative() bool                  { return b.value.IsNegative() }
func (b Balance) Equal(o Balance) bool              { return b.value.Equal(o.value) }
func (b Balance) LessThan(o Balance) bool           { return b.value.LessThan(o.value) }
func (b Balance) GreaterThanOrEqual(o Balance) bool { return b.value.GreaterThanOrEqual(o.value) }

// binary operators.
func (b Balance) Add(o Balance) Balance { return Balance{value: b.value.Add(o.value)} }
func (b Balance) Sub(o Balance) Balance { return Balance{value: b.value.Sub(o.value)} }
