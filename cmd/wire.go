package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bnema/alexis-agent/internal/adapters/backend"
	"github.com/bnema/alexis-agent/internal/adapters/credentials/dotenv"
	"github.com/bnema/alexis-agent/internal/adapters/livekit"
	sessionsview "github.com/bnema/alexis-agent/internal/adapters/render/sessions"
	tomlrepo "github.com/bnema/alexis-agent/internal/adapters/repo/toml"
	chainstore "github.com/bnema/alexis-agent/internal/adapters/secrets/chain"
	filestore "github.com/bnema/alexis-agent/internal/adapters/secrets/file"
	passstore "github.com/bnema/alexis-agent/internal/adapters/secrets/pass"
	"github.com/bnema/alexis-agent/internal/application"
	"github.com/bnema/alexis-agent/internal/domain"
	"github.com/bnema/alexis-agent/internal/logging"
	"github.com/bnema/alexis-agent/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	cfg        *viper.Viper
	homeDir    string
	configPath string

	logger         *slog.Logger
	secretStore    ports.SecretStore
	sessions       *tomlrepo.Repository
	connector      ports.RoomConnector
	sessionsRender func([]domain.SessionRecord, sessionsview.RenderOptions) (string, error)
	httpClient     *http.Client
	now            func() time.Time
}

var backendBindings = []dotenv.Binding{
	{Key: backendURLKey, Env: "URL"},
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	return &app{
		cfg:            newConfig(homeDir),
		homeDir:        homeDir,
		sessionsRender: sessionsview.Render,
		httpClient:     http.DefaultClient,
		now:            time.Now,
	}, nil
}

// load finishes wiring once flags are parsed.
func (a *app) load(logOutput io.Writer) error {
	path, explicit := a.configPath, a.configPath != ""
	if !explicit {
		path = defaultConfigPath(a.homeDir)
	}
	if err := readConfigFile(a.cfg, path, explicit); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  a.cfg.GetString(logLevelKey),
		Format: a.cfg.GetString(logFormatKey),
		Writer: logOutput,
	})
	if err != nil {
		return err
	}
	a.logger = logger
	slog.SetDefault(logger)

	if _, err := dotenv.Apply(a.cfg, backendBindings, a.envFiles()...); err != nil {
		return &domain.ConfigurationError{Err: err}
	}

	secretStore, err := a.wireSecretStore()
	if err != nil {
		return fmt.Errorf("wire secret store: %w", err)
	}
	a.secretStore = secretStore

	sessions, err := tomlrepo.NewRepository(a.cfg)
	if err != nil {
		return fmt.Errorf("wire session ledger: %w", err)
	}
	a.sessions = sessions

	if a.connector == nil {
		a.connector = livekit.NewConnector(livekit.WithLogger(logger))
	}

	return nil
}

func (a *app) wireSecretStore() (ports.SecretStore, error) {
	dir := a.cfg.GetString(secretsDirKey)
	passDir := a.cfg.GetString(secretsPassDirKey)

	switch backendName := strings.ToLower(strings.TrimSpace(a.cfg.GetString(secretsBackendKey))); backendName {
	case secretsBackendChain:
		return chainstore.NewPassFirstWithFileFallback(passDir, dir)
	case secretsBackendFile:
		return filestore.NewStore(dir), nil
	case secretsBackendPass:
		return passstore.NewStore(passstore.WithStoreDir(passDir)), nil
	default:
		return nil, &domain.ConfigurationError{
			Fields: []string{secretsBackendKey},
			Err:    fmt.Errorf("unknown secret backend %q", backendName),
		}
	}
}

func (a *app) envFiles() []string {
	return a.cfg.GetStringSlice(envFilesKey)
}

func (a *app) credentialSource() ports.CredentialSource {
	return dotenv.NewSource(a.cfg, a.envFiles()...)
}

func (a *app) workspace() *backend.Client {
	return &backend.Client{
		BaseURL:        a.cfg.GetString(backendURLKey),
		HTTPClient:     a.httpClient,
		RequestTimeout: a.cfg.GetDuration(backendTimeoutKey),
		TimeZone:       a.cfg.GetString(backendTimeZoneKey),
		Secrets:        a.secretStore,
		TokenKey:       a.cfg.GetString(backendTokenSecretKey),
		Logger:         a.logger.With("component", "backend"),
	}
}

func (a *app) assistantTools() ([]application.Tool, error) {
	return application.AssistantTools(a.workspace())
}

func (a *app) roomOptions() ports.RoomOptions {
	return ports.RoomOptions{
		Room:              a.cfg.GetString(agentRoomKey),
		Identity:          a.cfg.GetString(agentIdentityKey),
		DisplayName:       a.cfg.GetString(agentNameKey),
		Instructions:      a.cfg.GetString(agentInstructionsKey),
		Greeting:          a.cfg.GetString(agentGreetingKey),
		Voice:             a.cfg.GetString(agentVoiceKey),
		NoiseCancellation: a.cfg.GetString(agentNoiseKey),
		TokenTTL:          a.cfg.GetDuration(agentTokenTTLKey),
	}
}

func (a *app) bootstrapConfig() (application.BootstrapConfig, error) {
	attempts := a.cfg.GetInt(retryMaxAttemptsKey)
	if attempts < 1 {
		return application.BootstrapConfig{}, &domain.ConfigurationError{
			Fields: []string{retryMaxAttemptsKey},
			Err:    errors.New("must be at least 1"),
		}
	}

	return application.BootstrapConfig{
		Room: a.roomOptions(),
		Retry: application.RetryPolicy{
			MaxAttempts:     uint(attempts),
			InitialInterval: a.cfg.GetDuration(retryInitialIntervalKey),
			MaxInterval:     a.cfg.GetDuration(retryMaxIntervalKey),
		},
		MaxParallelToolCalls: a.cfg.GetInt(toolsMaxParallelKey),
	}, nil
}

func (a *app) newBootstrapper(opts ...application.BootstrapperOption) (*application.Bootstrapper, error) {
	cfg, err := a.bootstrapConfig()
	if err != nil {
		return nil, err
	}

	opts = append([]application.BootstrapperOption{
		application.WithLogger(a.logger),
		application.WithSessionRepository(a.sessions),
	}, opts...)

	return application.NewBootstrapper(a.credentialSource(), a.connector, a.assistantTools, cfg, opts...), nil
}
