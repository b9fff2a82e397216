package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<API REQUEST_DUMP="true">
	<CONTEXT>
		<PORT>9090</PORT>
		<HOST>localhost</HOST>
		<MAX_CONNECTIONS>64</MAX_CONNECTIONS>
	</CONTEXT>
	<RATE_LIMIT ENABLED="true">
		<REQUESTS_PER_SECOND>5</REQUESTS_PER_SECOND>
		<BURST>10</BURST>
	</RATE_LIMIT>
	<DB>
		<HOST>db.internal</HOST>
		<NAME>testprep</NAME>
		<USERNAME>app</USERNAME>
		<PASSWORD TYPE="env">TESTPREP_DB_PASSWORD</PASSWORD>
	</DB>
</API>`

// LoadConfig parses once per process, so a single test drives it and the
// rest exercise the pieces directly.
func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleXML), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.RequestDump)
	assert.Equal(t, 9090, cfg.Context.Port)
	assert.Equal(t, 64, cfg.Context.MaxConnections)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, "db.internal", cfg.DB.Host)

	// Omitted fields fall back to defaults.
	assert.Equal(t, 20, cfg.Pagination.PageSize)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, "logs", cfg.Logging.Dir)

	assert.Same(t, cfg, GetConfig())
}

func TestApplyDefaults(t *testing.T) {
	var cfg APIConfig
	cfg.applyDefaults()

	assert.Equal(t, 8080, cfg.Context.Port)
	assert.Equal(t, 256, cfg.Context.MaxConnections)
	assert.Equal(t, 20.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
	assert.Equal(t, 10, cfg.Logging.MaxSizeMB)
	assert.Equal(t, 28, cfg.Logging.MaxAgeDays)
}

func TestDBPasswordResolve(t *testing.T) {
	plain := DBPassword{Type: "plain", Value: "hunter2"}
	got, err := plain.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)

	// Empty type behaves as plain.
	implicit := DBPassword{Value: "hunter2"}
	got, err = implicit.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)

	t.Setenv("TESTPREP_TEST_DB_PASSWORD", "from-env")
	env := DBPassword{Type: "env", Value: "TESTPREP_TEST_DB_PASSWORD"}
	got, err = env.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "from-env", got)

	missing := DBPassword{Type: "env", Value: "TESTPREP_TEST_DB_PASSWORD_MISSING"}
	_, err = missing.Resolve()
	assert.Error(t, err)

	unknown := DBPassword{Type: "vault", Value: "whatever"}
	_, err = unknown.Resolve()
	assert.Error(t, err)
}
