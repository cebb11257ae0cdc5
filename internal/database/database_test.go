package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilesshaxted/karma/internal/config"
)

func testDB(t *testing.T) *Database {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, Initialize(path))
	t.Cleanup(func() { Close() })
	return GetDB()
}

func TestGuildConfigRoundTrip(t *testing.T) {
	assert := assert.New(t)
	d := testDB(t)

	missing, err := d.GetGuildConfig("g1")
	require.NoError(t, err)
	assert.Nil(missing)

	gm := config.DefaultGuildModeration("g1")
	gm.ModerationTier = config.TierMedium
	gm.BlacklistedWords = "foo,bar"
	gm.FilterCaps = true
	gm.CapsPercent = 80
	gm.ExemptRoles = []string{"r1", "r2"}
	gm.LogChannelID = "log-chan"
	require.NoError(t, d.UpsertGuildConfig(gm))

	loaded, err := d.GetGuildConfig("g1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(config.TierMedium, loaded.ModerationTier)
	assert.Equal("foo,bar", loaded.BlacklistedWords)
	assert.True(loaded.FilterCaps)
	assert.Equal(80, loaded.CapsPercent)
	assert.Equal([]string{"r1", "r2"}, loaded.ExemptRoles)
	assert.Equal("log-chan", loaded.LogChannelID)

	// upsert updates in place
	gm.Enabled = false
	require.NoError(t, d.UpsertGuildConfig(gm))
	loaded, err = d.GetGuildConfig("g1")
	require.NoError(t, err)
	assert.False(loaded.Enabled)
}

func TestEnsureGuildConfigExists(t *testing.T) {
	assert := assert.New(t)
	d := testDB(t)

	require.NoError(t, d.EnsureGuildConfigExists("g1"))

	loaded, err := d.GetGuildConfig("g1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(loaded.Enabled)
	assert.Equal(config.TierNone, loaded.ModerationTier)

	// second call must not overwrite customizations
	loaded.FilterSpam = true
	require.NoError(t, d.UpsertGuildConfig(loaded))
	require.NoError(t, d.EnsureGuildConfigExists("g1"))

	again, err := d.GetGuildConfig("g1")
	require.NoError(t, err)
	assert.True(again.FilterSpam)
}

func TestLogActionSequentialCaseNumbers(t *testing.T) {
	assert := assert.New(t)
	d := testDB(t)

	n1, err := d.LogAction("Automoderation", "g1", "u1", "bot", "Spam detected.", "spam spam")
	require.NoError(t, err)
	assert.Equal(int64(1), n1)

	n2, err := d.LogAction("Automoderation", "g1", "u2", "bot", "External link detected.", "https://x")
	require.NoError(t, err)
	assert.Equal(int64(2), n2)

	// numbering is per guild
	other, err := d.LogAction("Automoderation", "g2", "u1", "bot", "Spam detected.", "")
	require.NoError(t, err)
	assert.Equal(int64(1), other)

	count, err := d.CaseCount("g1")
	require.NoError(t, err)
	assert.Equal(int64(2), count)
}

func TestUserCases(t *testing.T) {
	assert := assert.New(t)
	d := testDB(t)

	d.LogAction("Automoderation", "g1", "u1", "bot", "first", "")
	d.LogAction("Automoderation", "g1", "u2", "bot", "other user", "")
	d.LogAction("Automoderation", "g1", "u1", "bot", "second", "")

	cases, err := d.UserCases("g1", "u1", 10)
	require.NoError(t, err)
	require.Len(t, cases, 2)

	// newest first
	assert.Equal("second", cases[0].Reason)
	assert.Equal("first", cases[1].Reason)
	assert.Equal(int64(3), cases[0].CaseNumber)
}

func TestAddWarning(t *testing.T) {
	assert := assert.New(t)
	d := testDB(t)

	require.NoError(t, d.AddWarning("g1", "u1", "Spam detected.", 4))

	var count int64
	err := d.db.QueryRow(`SELECT COUNT(*) FROM user_warnings WHERE guild_id = ? AND user_id = ?`,
		"g1", "u1").Scan(&count)
	require.NoError(t, err)
	assert.Equal(int64(1), count)
}

func TestSplitJoinIDs(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]string{"a", "b"}, splitIDs("a, b"))
	assert.Empty(splitIDs(""))
	assert.Equal("a,b", joinIDs([]string{"a", "b"}))
	assert.Equal("", joinIDs(nil))
}
