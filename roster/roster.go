// Package roster resolves player names to account identifiers and answers
// capability checks, the two collaborators the ledger commands rely on.
//
// A roster is persisted as a small YAML file:
//
//	players:
//	  Steve: 069a79f4-44e9-4726-a5be-fca90e38aaf5
//	capabilities:
//	  money.set: [Steve]
package roster

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/etnz/payscope"
	"gopkg.in/yaml.v3"
)

// CapabilitySet is required to overwrite a balance.
const CapabilitySet = "money.set"

// Console is the caller name of the operator console. It holds every capability.
const Console = ""

// Directory resolves human readable names to account identifiers.
type Directory interface {
	// Resolve returns the identifier of a player that has been seen before.
	Resolve(name string) (payscope.AccountID, bool)
}

// Authorizer answers privileged operation checks.
type Authorizer interface {
	HasCapability(caller, capability string) bool
}

// player is an enrolled name.
type player struct {
	name string // display name, as enrolled.
	id   payscope.AccountID
}

// Roster is a file-backed Directory and Authorizer.
type Roster struct {
	mu           sync.RWMutex
	players      map[string]player // index players by lower-cased name
	capabilities map[string][]string
}

// New returns an empty roster.
func New() *Roster {
	return &Roster{
		players:      make(map[string]player),
		capabilities: make(map[string][]string),
	}
}

// jroster is the file representation of a roster.
type jroster struct {
	Players      map[string]string   `yaml:"players"`
	Capabilities map[string][]string `yaml:"capabilities,omitempty"`
}

// Load reads a roster file. A missing file is an empty roster.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read roster %q: %w", path, err)
	}
	r, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("roster %q: %w", path, err)
	}
	return r, nil
}

// Decode parses roster file content.
func Decode(data []byte) (*Roster, error) {
	var jr jroster
	if err := yaml.Unmarshal(data, &jr); err != nil {
		return nil, fmt.Errorf("format error: %w", err)
	}

	r := New()
	for name, raw := range jr.Players {
		id, err := payscope.ParseAccountID(raw)
		if err != nil {
			return nil, fmt.Errorf("format error: player %q: %w", name, err)
		}
		key := strings.ToLower(name)
		if _, exists := r.players[key]; exists {
			return nil, fmt.Errorf("format error: player %q is defined twice", name)
		}
		r.players[key] = player{name: name, id: id}
	}
	for capability, holders := range jr.Capabilities {
		r.capabilities[capability] = slices.Clone(holders)
	}
	return r, nil
}

// Save writes the roster to path, creating parent directories as needed.
func (r *Roster) Save(path string) error {
	data, err := r.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create directory for roster %q: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write roster %q: %w", path, err)
	}
	return nil
}

// Encode returns the file representation of the roster.
func (r *Roster) Encode() ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	jr := jroster{
		Players:      make(map[string]string, len(r.players)),
		Capabilities: r.capabilities,
	}
	for _, p := range r.players {
		jr.Players[p.name] = p.id.String()
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	// yaml sorts map keys, the output is canonical.
	if err := enc.Encode(jr); err != nil {
		return nil, fmt.Errorf("cannot encode roster: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("cannot encode roster: %w", err)
	}
	return buf.Bytes(), nil
}

// Resolve implements Directory. Names are case-insensitive.
func (r *Roster) Resolve(name string) (payscope.AccountID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[strings.ToLower(name)]
	return p.id, ok
}

// Name returns the display name of a name as enrolled, e.g. "Steve" for "steve".
func (r *Roster) Name(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.players[strings.ToLower(name)]; ok {
		return p.name
	}
	return name
}

// NameOf returns the display name of an account, if any player owns it.
func (r *Roster) NameOf(id payscope.AccountID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.players {
		if p.id == id {
			return p.name, true
		}
	}
	return "", false
}

// Enroll registers name with a fresh account identifier.
//
// Enrolling a known name returns its existing identifier and false.
func (r *Roster) Enroll(name string) (payscope.AccountID, bool, error) {
	if strings.TrimSpace(name) == "" {
		return payscope.AccountID{}, false, errors.New("player name cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(name)
	if p, ok := r.players[key]; ok {
		return p.id, false, nil
	}
	id := payscope.NewAccountID()
	r.players[key] = player{name: name, id: id}
	return id, true, nil
}

// Names returns the display names of all players, sorted.
func (r *Roster) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.players))
	for _, p := range r.players {
		names = append(names, p.name)
	}
	slices.SortFunc(names, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return names
}

// Grant gives capability to a player.
func (r *Roster) Grant(name, capability string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.ContainsFunc(r.capabilities[capability], func(h string) bool { return strings.EqualFold(h, name) }) {
		return
	}
	r.capabilities[capability] = append(r.capabilities[capability], name)
}

// HasCapability implements Authorizer. The Console holds every capability.
func (r *Roster) HasCapability(caller, capability string) bool {
	if caller == Console {
		return true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.ContainsFunc(r.capabilities[capability], func(h string) bool {
		return strings.EqualFold(h, caller)
	})
}

// Capabilities returns the sorted capability names declared in the roster.
func (r *Roster) Capabilities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.capabilities))
}

// Compile-time checks.
var (
	_ Directory  = (*Roster)(nil)
	_ Authorizer = (*Roster)(nil)
)
