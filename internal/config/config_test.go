package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/carewise/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CAREWISE_DB", "CAREWISE_DATA_DIR", "CAREWISE_HTTP_ADDR",
		"OPENAI_API_KEY", "CAREWISE_LLM_PROVIDER", "CAREWISE_LLM_MODEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".carewise", "carewise.db"), cfg.DBPath)
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CAREWISE_DB", "/tmp/x.db")
	t.Setenv("CAREWISE_DATA_DIR", "records")
	t.Setenv("CAREWISE_HTTP_ADDR", "127.0.0.1:9000")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, "records", cfg.DataDir)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("CAREWISE_DATA_DIR")
	os.Unsetenv("OPENAI_API_KEY")
	t.Setenv("CAREWISE_DB", "/tmp/y.db")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CAREWISE_DATA_DIR=from_dotenv\nOPENAI_API_KEY=sk-test\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("CAREWISE_DATA_DIR")
		os.Unsetenv("OPENAI_API_KEY")
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "from_dotenv", cfg.DataDir)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
}
