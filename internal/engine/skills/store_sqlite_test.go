package skills

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The store is a process-wide singleton, so one test exercises the whole
// save/load/restore sequence against a temp database.
func TestSessionStoreRoundTrip(t *testing.T) {
	SetSessionDBPath(filepath.Join(t.TempDir(), "sessions.db"))

	doc, err := LoadLatestSnapshot()
	require.NoError(t, err)
	assert.Nil(t, doc, "empty store should report no snapshot")

	s := readySession(t)
	require.NoError(t, s.RateSkill("systems_design", SelfRaterID, LevelAdvanced))
	require.NoError(t, SaveSnapshot(s.Export()))

	loaded, err := LoadLatestSnapshot()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, FormatVersion, loaded.FormatVersion)
	require.NotNil(t, loaded.SkillBank)
	assert.True(t, loaded.SkillBank.IsActive("systems_design"))

	restored := NewSession()
	require.NoError(t, RestoreSession(restored))
	got, ok := restored.Ratings().Get("systems_design", SelfRaterID)
	require.True(t, ok)
	assert.Equal(t, LevelAdvanced, got)

	// Later snapshots win.
	require.NoError(t, s.RateSkill("systems_design", SelfRaterID, LevelExpert))
	require.NoError(t, SaveSnapshot(s.Export()))
	loaded, err = LoadLatestSnapshot()
	require.NoError(t, err)
	got, ok = loaded.UserRatings.Get("systems_design", SelfRaterID)
	require.True(t, ok)
	assert.Equal(t, LevelExpert, got)
}

func TestSessionStorePrunesHistory(t *testing.T) {
	// Shares the singleton with the round-trip test; only row count matters.
	doc := NewSession().Export()
	for i := 0; i < keepSnapshots+10; i++ {
		require.NoError(t, SaveSnapshot(doc))
	}

	db, err := openSessionDB()
	require.NoError(t, err)
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&count))
	assert.LessOrEqual(t, count, keepSnapshots)
}

func TestExportDocumentJSONShape(t *testing.T) {
	s := readySession(t)
	payload, err := json.Marshal(s.Export())
	require.NoError(t, err)

	var probe map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &probe))
	assert.Contains(t, probe, "formatVersion")
	assert.Contains(t, probe, "skillBank")
	assert.Contains(t, probe, "raters")
	assert.NotContains(t, probe, "identifiedSkills", "current exports must not carry the legacy field")
}
