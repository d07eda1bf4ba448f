package dotenv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/alexis-agent/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// clearEnv blanks the variables for the test; viper treats empty values as unset.
func clearEnv(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		t.Setenv(name, "")
	}
}

func TestSourceLoadsFromEnvFile(t *testing.T) {
	clearEnv(t, domain.CredentialFieldURL, domain.CredentialFieldAPIKey, domain.CredentialFieldAPISecret, domain.CredentialFieldToken)

	path := writeEnv(t, t.TempDir(), ".env.local", "LIVEKIT_URL=wss://alexis.livekit.cloud\nLIVEKIT_API_KEY=APIkey\nLIVEKIT_API_SECRET=\"s3cret\"\n")

	creds, err := NewSource(viper.New(), path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Credentials{URL: "wss://alexis.livekit.cloud", APIKey: "APIkey", APISecret: "s3cret"}, creds)
	assert.NoError(t, creds.Validate())
}

func TestSourceProcessEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t, domain.CredentialFieldToken)
	t.Setenv(domain.CredentialFieldURL, "wss://override.livekit.cloud")

	path := writeEnv(t, t.TempDir(), ".env.local", "LIVEKIT_URL=wss://file.livekit.cloud\nLIVEKIT_TOKEN=tok\n")

	creds, err := NewSource(viper.New(), path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "wss://override.livekit.cloud", creds.URL)
	assert.Equal(t, "tok", creds.Token)
}

func TestSourceExplicitValueOverridesFile(t *testing.T) {
	clearEnv(t, domain.CredentialFieldAPIKey)

	cfg := viper.New()
	cfg.Set(APIKeyKey, "from-flag")
	path := writeEnv(t, t.TempDir(), ".env.local", "LIVEKIT_API_KEY=from-file\n")

	creds, err := NewSource(cfg, path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-flag", creds.APIKey)
}

func TestSourceMissingFilesYieldIncompleteCredentials(t *testing.T) {
	clearEnv(t, domain.CredentialFieldURL)

	creds, err := NewSource(viper.New(), filepath.Join(t.TempDir(), "absent.env")).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, creds.URL)
	require.ErrorIs(t, creds.Validate(), domain.ErrConfiguration)
}

func TestSourceMalformedFileIsConfigurationError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".env.local"), 0o700))

	_, err := NewSource(viper.New(), filepath.Join(dir, ".env.local")).Load(context.Background())
	require.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestApplyFirstFileWins(t *testing.T) {
	clearEnv(t, "URL")

	dir := t.TempDir()
	local := writeEnv(t, dir, ".env.local", "URL=http://localhost:8080\n")
	shared := writeEnv(t, dir, ".env", "URL=https://backend.example.com\n")

	cfg := viper.New()
	loaded, err := Apply(cfg, []Binding{{Key: "backend.url", Env: "URL"}}, local, filepath.Join(dir, "missing.env"), shared)
	require.NoError(t, err)
	assert.Equal(t, []string{local, shared}, loaded)
	assert.Equal(t, "http://localhost:8080", cfg.GetString("backend.url"))
}
