package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/payscope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	steve = payscope.MustParseAccountID("069a79f4-44e9-4726-a5be-fca90e38aaf5")
	alex  = payscope.MustParseAccountID("853c80ef-3c37-49fd-aa49-938b674adae6")
)

const sample = `players:
  Steve: 069a79f4-44e9-4726-a5be-fca90e38aaf5
  Alex: 853c80ef-3c37-49fd-aa49-938b674adae6
capabilities:
  money.set: [Steve]
`

func TestDecode(t *testing.T) {
	r, err := Decode([]byte(sample))
	require.NoError(t, err)

	id, ok := r.Resolve("Steve")
	assert.True(t, ok)
	assert.Equal(t, steve, id)

	id, ok = r.Resolve("ALEX")
	assert.True(t, ok, "names are case-insensitive")
	assert.Equal(t, alex, id)

	_, ok = r.Resolve("Herobrine")
	assert.False(t, ok)

	assert.Equal(t, []string{"Alex", "Steve"}, r.Names())
	assert.Equal(t, []string{CapabilitySet}, r.Capabilities())
}

func TestDecodeErrors(t *testing.T) {
	for name, input := range map[string]string{
		"bad identifier": "players:\n  Steve: not-a-uuid\n",
		"duplicate name": "players:\n  Steve: 069a79f4-44e9-4726-a5be-fca90e38aaf5\n  steve: 853c80ef-3c37-49fd-aa49-938b674adae6\n",
		"not a roster":   "- Steve\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(input))
			assert.Error(t, err)
		})
	}
}

func TestNames(t *testing.T) {
	r := New()
	for _, name := range []string{"zoe", "Alex", "bob", "Steve"} {
		_, _, err := r.Enroll(name)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"Alex", "bob", "Steve", "zoe"}, r.Names())

	name, ok := r.NameOf(mustResolve(t, r, "BOB"))
	assert.True(t, ok)
	assert.Equal(t, "bob", name)
	assert.Equal(t, "Steve", r.Name("steve"))
	assert.Equal(t, "Unknown", r.Name("Unknown"))

	_, ok = r.NameOf(payscope.NewAccountID())
	assert.False(t, ok)
}

func TestEnroll(t *testing.T) {
	r := New()

	id, created, err := r.Enroll("Steve")
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, id.IsZero())

	again, created, err := r.Enroll("steve")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id, again, "an enrolled player keeps its identifier")
	assert.Equal(t, "Steve", r.Name("STEVE"))

	other, _, err := r.Enroll("Alex")
	require.NoError(t, err)
	assert.NotEqual(t, id, other)

	_, _, err = r.Enroll("  ")
	assert.Error(t, err)
}

func TestHasCapability(t *testing.T) {
	r, err := Decode([]byte(sample))
	require.NoError(t, err)

	assert.True(t, r.HasCapability(Console, CapabilitySet), "the console holds every capability")
	assert.True(t, r.HasCapability(Console, "anything"))
	assert.True(t, r.HasCapability("steve", CapabilitySet))
	assert.False(t, r.HasCapability("Alex", CapabilitySet))
	assert.False(t, r.HasCapability("Steve", "money.other"))

	r.Grant("Alex", CapabilitySet)
	r.Grant("alex", CapabilitySet)
	assert.True(t, r.HasCapability("Alex", CapabilitySet))

	round, err := r.Encode()
	require.NoError(t, err)
	decoded, err := Decode(round)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Steve", "Alex"}, decoded.capabilities[CapabilitySet])
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugins", "Payscope", "roster.yml")

	r, err := Load(path)
	require.NoError(t, err, "a missing roster is empty")
	assert.Empty(t, r.Names())

	id, _, err := r.Enroll("Steve")
	require.NoError(t, err)
	r.Grant("Steve", CapabilitySet)
	require.NoError(t, r.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, id, mustResolve(t, loaded, "steve"))
	assert.True(t, loaded.HasCapability("Steve", CapabilitySet))

	// encoding is stable across a load.
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	second, err := loaded.Encode()
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yml")
	require.NoError(t, os.WriteFile(path, []byte("players: [\n"), 0644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func mustResolve(t *testing.T, r *Roster, name string) payscope.AccountID {
	t.Helper()
	id, ok := r.Resolve(name)
	require.True(t, ok, "%s is not enrolled", name)
	return id
}
