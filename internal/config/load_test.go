package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationJSON(t *testing.T) {
	assert := assert.New(t)

	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"6h"`), &d))
	assert.Equal(6*time.Hour, d.Std())

	out, err := json.Marshal(Duration(90 * time.Minute))
	require.NoError(t, err)
	assert.Equal(`"1h30m0s"`, string(out))

	assert.Error(json.Unmarshal([]byte(`"not a duration"`), &d))
	assert.Error(json.Unmarshal([]byte(`42`), &d))
}

func TestLoadOverridesDefaults(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{
		"database": {"path": "/tmp/mod.db"},
		"escalation": {"warning_window": "30m", "warning_threshold": 2}
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal("/tmp/mod.db", cfg.Database.Path)
	assert.Equal(30*time.Minute, cfg.Escalation.WarningWindow.Std())
	assert.Equal(2, cfg.Escalation.WarningThreshold)

	// untouched fields keep their defaults
	assert.Equal(6*time.Hour, cfg.Escalation.TimeoutDuration.Std())
	assert.Equal(4, cfg.Enforce.WorkerCount)
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	assert := assert.New(t)

	cfg := LoadOrDefault(filepath.Join(t.TempDir(), "absent.json"))
	assert.Equal("karma.db", cfg.Database.Path)
	assert.Equal(DefaultEscalationPolicy(), cfg.Escalation)
}

func TestDefaultEscalationPolicy(t *testing.T) {
	assert := assert.New(t)

	p := DefaultEscalationPolicy()
	assert.Equal(time.Hour, p.WarningWindow.Std())
	assert.Equal(3, p.WarningThreshold)
	assert.Equal(6*time.Hour, p.TimeoutDuration.Std())
	assert.Equal(30*24*time.Hour, p.TimeoutWindow.Std())
	assert.Equal(5, p.TimeoutThreshold)
	assert.Equal(7*24*time.Hour, p.SuspendDuration.Std())
	assert.True(p.ResetOnTimeoutFailure)
}

func TestProfileStore(t *testing.T) {
	assert := assert.New(t)

	ps := &ProfileStore{profiles: make(map[string]*GuildModeration)}

	assert.Nil(ps.Get("g1"))

	created := ps.GetOrCreate("g1")
	assert.Equal("g1", created.GuildID)
	assert.True(created.Enabled)
	assert.Same(created, ps.GetOrCreate("g1"))
	assert.Equal(1, ps.Count())

	ps.Remove("g1")
	assert.Nil(ps.Get("g1"))
	assert.Equal(0, ps.Count())
}
