package provider

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oddbit-project/sqlquery/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `{
	"database": {"dialect": "mysql", "dsn": "user:pass@/app"},
	"timezone": "Z"
}`

func TestNewJsonProvider_Sources(t *testing.T) {
	t.Run("raw message", func(t *testing.T) {
		p, err := NewJsonProvider(json.RawMessage(sampleConfig))
		require.NoError(t, err)
		assert.True(t, p.KeyExists("database"))
	})

	t.Run("byte slice", func(t *testing.T) {
		p, err := NewJsonProvider([]byte(sampleConfig))
		require.NoError(t, err)
		assert.True(t, p.KeyExists("database"))
	})

	t.Run("reader", func(t *testing.T) {
		p, err := NewJsonProvider(strings.NewReader(sampleConfig))
		require.NoError(t, err)
		assert.True(t, p.KeyExists("database"))
	})

	t.Run("file name", func(t *testing.T) {
		fname := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(fname, []byte(sampleConfig), 0644))

		p, err := NewJsonProvider(fname)
		require.NoError(t, err)
		assert.True(t, p.KeyExists("database"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewJsonProvider(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})

	t.Run("invalid source type", func(t *testing.T) {
		_, err := NewJsonProvider(42)
		assert.ErrorIs(t, err, ErrJsonInvalidSource)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := NewJsonProvider([]byte("{not json"))
		assert.Error(t, err)
	})
}

func TestJsonProvider_GetKey(t *testing.T) {
	p, err := NewJsonProvider([]byte(sampleConfig))
	require.NoError(t, err)

	var dbCfg struct {
		Dialect string `json:"dialect"`
		DSN     string `json:"dsn"`
	}
	require.NoError(t, p.GetKey("database", &dbCfg))
	assert.Equal(t, "mysql", dbCfg.Dialect)
	assert.Equal(t, "user:pass@/app", dbCfg.DSN)

	assert.ErrorIs(t, p.GetKey("missing", &dbCfg), config.ErrNoKey)
}

func TestJsonProvider_GetStringKey(t *testing.T) {
	p, err := NewJsonProvider([]byte(sampleConfig))
	require.NoError(t, err)

	tz, err := p.GetStringKey("timezone")
	require.NoError(t, err)
	assert.Equal(t, "Z", tz)

	_, err = p.GetStringKey("missing")
	assert.ErrorIs(t, err, config.ErrNoKey)

	// non-string value
	_, err = p.GetStringKey("database")
	assert.Error(t, err)
}

func TestJsonProvider_Get(t *testing.T) {
	p, err := NewJsonProvider([]byte(sampleConfig))
	require.NoError(t, err)

	var all map[string]any
	require.NoError(t, p.Get(&all))
	assert.Contains(t, all, "database")
	assert.Contains(t, all, "timezone")
}
