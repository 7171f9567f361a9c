package team

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTeamFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "team.yaml")
	data := `name: core
members:
  - {id: ana, l: 2.0, v: 1.0, r: 0.1}
  - {id: ben, l: 1.0, v: 1.0, r: 0.5}
pairs:
  - {i: ana, j: ben, s: 0.8}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	snap, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "core", snap.Name())
	assert.Equal(t, 2, snap.Len())
	assert.Equal(t, 0.8, snap.Pairs()[0].S)
}

func TestLoadRejectsInvalidTeam(t *testing.T) {
	path := filepath.Join(t.TempDir(), "team.yaml")
	data := `members:
  - {id: ana, l: -2.0, v: 1.0, r: 0.1}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	snap, err := New("core", validMembers(), []Pair{{I: "ana", J: "ben", S: 0.8}})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "team.yaml")
	require.NoError(t, Save(path, snap))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, snap.Members(), loaded.Members())
	assert.Equal(t, snap.Pairs(), loaded.Pairs())
	assert.Equal(t, snap.Name(), loaded.Name())
}
