package payscope

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// The ledger file is a flat YAML mapping, one account per line:
//
//	069a79f4-44e9-4726-a5be-fca90e38aaf5: 100
//	853c80ef-3c37-49fd-aa49-938b674adae6: 12.5
//
// Keys are canonical account identifiers and values plain decimal numbers.
// Entries are written sorted by key so that the file is canonical and git friendly.

// Warning describes a ledger file entry that was skipped or adjusted while decoding.
type Warning struct {
	Line   int    // 1-based line of the entry in the file.
	Key    string // raw key as found in the file.
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %q: %s", w.Line, w.Key, w.Reason)
}

// DecodeBalances reads a ledger file from r.
//
// Values follow the ParseBalance grammar. Entries whose key is not a valid
// account identifier, or whose value is not a number, are skipped and reported as warnings. Negative values are clamped
// to zero and reported as warnings too. An empty input is an empty ledger.
// An input that is not a YAML mapping is an error.
func DecodeBalances(r io.Reader) (map[AccountID]Balance, []Warning, error) {
	balances := make(map[AccountID]Balance)
	var warnings []Warning

	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return balances, nil, nil
		}
		return nil, nil, fmt.Errorf("could not parse ledger: %w", err)
	}
	if len(doc.Content) == 0 {
		return balances, nil, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return balances, nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("could not parse ledger: line %d: expected a mapping of account to balance", root.Line)
	}

	seen := make(map[AccountID]int)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		id, err := ParseAccountID(key.Value)
		if err != nil {
			warnings = append(warnings, Warning{key.Line, key.Value, "not an account identifier, entry skipped"})
			continue
		}
		if value.Kind != yaml.ScalarNode || value.Tag == "!!null" {
			warnings = append(warnings, Warning{key.Line, key.Value, "balance is not a number, entry skipped"})
			continue
		}
		b, err := ParseBalance(value.Value)
		if err != nil {
			warnings = append(warnings, Warning{key.Line, key.Value, fmt.Sprintf("balance %q is not a number, entry skipped", value.Value)})
			continue
		}
		d := b.Decimal()
		if d.IsNegative() {
			warnings = append(warnings, Warning{key.Line, key.Value, fmt.Sprintf("negative balance %s clamped to 0", d)})
			d = decimal.Zero
		}
		if prev, dup := seen[id]; dup {
			warnings = append(warnings, Warning{key.Line, key.Value, fmt.Sprintf("duplicate of line %d, last entry wins", prev)})
		}
		seen[id] = key.Line
		balances[id] = Balance{value: d}
	}
	return balances, warnings, nil
}

// EncodeBalances writes balances to w in the canonical ledger file format.
func EncodeBalances(w io.Writer, balances map[AccountID]Balance) error {
	ids := slices.SortedFunc(maps.Keys(balances), AccountID.Compare)

	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, id := range ids {
		root.Content = append(root.Content, balanceNodes(id, balances[id])...)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("could not encode ledger: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("could not encode ledger: %w", err)
	}
	return nil
}

// balanceNodes returns the key and value nodes of a single entry.
//
// The value is left untagged: yaml resolves large integers as floats, an
// explicit tag would then be written to the file.
func balanceNodes(id AccountID, b Balance) []*yaml.Node {
	return []*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: id.String()},
		{Kind: yaml.ScalarNode, Value: b.String()},
	}
}
