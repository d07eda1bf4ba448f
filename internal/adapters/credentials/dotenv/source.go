// Package dotenv layers .env files underneath viper so flags, the process
// environment and the config file keep precedence over file values.
package dotenv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/bnema/alexis-agent/internal/domain"
	"github.com/bnema/alexis-agent/internal/ports"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Binding ties a viper key to the environment variable that feeds it.
type Binding struct {
	Key string
	Env string
}

const (
	URLKey       = "livekit.url"
	APIKeyKey    = "livekit.api_key"
	APISecretKey = "livekit.api_secret"
	TokenKey     = "livekit.token"
)

var CredentialBindings = []Binding{
	{Key: URLKey, Env: domain.CredentialFieldURL},
	{Key: APIKeyKey, Env: domain.CredentialFieldAPIKey},
	{Key: APISecretKey, Env: domain.CredentialFieldAPISecret},
	{Key: TokenKey, Env: domain.CredentialFieldToken},
}

// Apply binds every key to its variable and seeds viper defaults from the
// first file that defines it. Missing files are skipped; it returns the files
// that were read.
func Apply(cfg *viper.Viper, bindings []Binding, files ...string) ([]string, error) {
	if cfg == nil {
		return nil, errors.New("viper config is nil")
	}

	var loaded []string
	merged := map[string]string{}
	for _, file := range files {
		values, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, fmt.Errorf("read env file %s: %w", file, err)
		}
		loaded = append(loaded, file)
		for name, value := range values {
			if _, seen := merged[name]; !seen {
				merged[name] = value
			}
		}
	}

	for _, binding := range bindings {
		if err := cfg.BindEnv(binding.Key, binding.Env); err != nil {
			return loaded, fmt.Errorf("bind %s to %s: %w", binding.Key, binding.Env, err)
		}
		if value, ok := merged[binding.Env]; ok {
			cfg.SetDefault(binding.Key, value)
		}
	}

	return loaded, nil
}

// Source resolves the real-time service credentials. The env files are
// re-read on every Load.
type Source struct {
	cfg   *viper.Viper
	files []string
}

var _ ports.CredentialSource = (*Source)(nil)

func NewSource(cfg *viper.Viper, files ...string) *Source {
	if cfg == nil {
		cfg = viper.New()
	}
	return &Source{cfg: cfg, files: files}
}

func (s *Source) Load(ctx context.Context) (domain.Credentials, error) {
	if err := ctx.Err(); err != nil {
		return domain.Credentials{}, err
	}

	if _, err := Apply(s.cfg, CredentialBindings, s.files...); err != nil {
		return domain.Credentials{}, &domain.ConfigurationError{Err: err}
	}

	return domain.Credentials{
		URL:       strings.TrimSpace(s.cfg.GetString(URLKey)),
		APIKey:    strings.TrimSpace(s.cfg.GetString(APIKeyKey)),
		APISecret: strings.TrimSpace(s.cfg.GetString(APISecretKey)),
		Token:     strings.TrimSpace(s.cfg.GetString(TokenKey)),
	}, nil
}
