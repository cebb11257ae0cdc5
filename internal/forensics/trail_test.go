package forensics

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailRecordsJSONLines(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "decisions.log")
	trail, err := NewTrail(path)
	require.NoError(t, err)
	defer trail.Close()

	require.NoError(t, trail.Record(&Entry{
		GuildID:   "g1",
		ChannelID: "c1",
		MessageID: "m1",
		UserID:    "u1",
		Filter:    "spam",
		Reason:    "Spam detected.",
		Steps:     map[string]string{"delete": "ok"},
	}))
	require.NoError(t, trail.Record(&Entry{
		GuildID: "g1",
		UserID:  "u2",
		Filter:  "word",
	}))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		entries = append(entries, e)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, entries, 2)
	assert.Equal("spam", entries[0].Filter)
	assert.Equal("ok", entries[0].Steps["delete"])
	assert.NotEmpty(entries[0].IncidentID)
	assert.NotZero(entries[0].Timestamp)
	assert.NotEqual(entries[0].IncidentID, entries[1].IncidentID)
}

func TestTrailCreatesParentDirectories(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "audit", "nested", "decisions.log")
	trail, err := NewTrail(path)
	require.NoError(t, err)
	defer trail.Close()

	require.NoError(t, trail.Record(&Entry{UserID: "u1"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(string(data), `"u1"`)
}

func TestTrailAppends(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "decisions.log")

	first, err := NewTrail(path)
	require.NoError(t, err)
	require.NoError(t, first.Record(&Entry{UserID: "u1"}))
	require.NoError(t, first.Close())

	second, err := NewTrail(path)
	require.NoError(t, err)
	require.NoError(t, second.Record(&Entry{UserID: "u2"}))
	require.NoError(t, second.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(string(data), `"u1"`)
	assert.Contains(string(data), `"u2"`)
}
