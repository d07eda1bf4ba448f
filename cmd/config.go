package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/alexis-agent/internal/application"
	"github.com/bnema/alexis-agent/internal/domain"
	"github.com/spf13/viper"
)

const (
	logLevelKey  = "log.level"
	logFormatKey = "log.format"

	agentRoomKey              = "agent.room"
	agentIdentityKey          = "agent.identity"
	agentNameKey              = "agent.name"
	agentVoiceKey             = "agent.voice"
	agentNoiseKey             = "agent.noise_cancellation"
	agentInstructionsKey      = "agent.instructions"
	agentGreetingKey          = "agent.greeting"
	agentTokenTTLKey          = "agent.token_ttl"
	retryMaxAttemptsKey       = "retry.max_attempts"
	retryInitialIntervalKey   = "retry.initial_interval"
	retryMaxIntervalKey       = "retry.max_interval"
	toolsMaxParallelKey       = "tools.max_parallel"
	backendURLKey             = "backend.url"
	backendTimeZoneKey        = "backend.timezone"
	backendTimeoutKey         = "backend.timeout"
	backendTokenSecretKey     = "backend.token_key"
	envFilesKey               = "env.files"
	secretsBackendKey         = "secrets.backend"
	secretsDirKey             = "secrets.dir"
	secretsPassDirKey         = "secrets.pass_dir"
	defaultBackendTokenSecret = "alexis/backend/access_token"
)

const (
	secretsBackendChain = "chain"
	secretsBackendFile  = "file"
	secretsBackendPass  = "pass"
)

const configDir = ".config/alexis"

func newConfig(homeDir string) *viper.Viper {
	cfg := viper.New()
	cfg.SetEnvPrefix("ALEXIS")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	retry := application.DefaultRetryPolicy()

	cfg.SetDefault(logLevelKey, "info")
	cfg.SetDefault(logFormatKey, "text")
	cfg.SetDefault(agentRoomKey, "alexis")
	cfg.SetDefault(agentIdentityKey, "alexis-agent")
	cfg.SetDefault(agentNameKey, application.DefaultAgentName)
	cfg.SetDefault(agentVoiceKey, application.DefaultVoice)
	cfg.SetDefault(agentNoiseKey, application.DefaultNoiseCancellation)
	cfg.SetDefault(agentInstructionsKey, application.DefaultInstructions)
	cfg.SetDefault(agentGreetingKey, application.DefaultGreeting)
	cfg.SetDefault(agentTokenTTLKey, time.Hour)
	cfg.SetDefault(retryMaxAttemptsKey, retry.MaxAttempts)
	cfg.SetDefault(retryInitialIntervalKey, retry.InitialInterval)
	cfg.SetDefault(retryMaxIntervalKey, retry.MaxInterval)
	cfg.SetDefault(toolsMaxParallelKey, 4)
	cfg.SetDefault(backendTimeZoneKey, domain.DefaultCalendarTimeZone)
	cfg.SetDefault(backendTimeoutKey, 30*time.Second)
	cfg.SetDefault(backendTokenSecretKey, defaultBackendTokenSecret)
	cfg.SetDefault(envFilesKey, []string{".env.local", ".env"})
	cfg.SetDefault(secretsBackendKey, secretsBackendChain)
	cfg.SetDefault(secretsDirKey, filepath.Join(homeDir, configDir, "secrets"))

	return cfg
}

func defaultConfigPath(homeDir string) string {
	return filepath.Join(homeDir, configDir, "config.toml")
}

// readConfigFile merges a TOML config file into cfg. The default path is
// optional; an explicitly requested file must exist.
func readConfigFile(cfg *viper.Viper, path string, explicit bool) error {
	cfg.SetConfigFile(path)
	cfg.SetConfigType("toml")

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !explicit && (errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	return nil
}
