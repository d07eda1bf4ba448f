package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bnema/alexis-agent/internal/domain"
	"github.com/bnema/alexis-agent/internal/ports"
	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
)

// RetryPolicy bounds connection attempts while the session is connecting.
type RetryPolicy struct {
	MaxAttempts     uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     5,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
	}
}

func (p RetryPolicy) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	return b
}

type BootstrapConfig struct {
	Room                 ports.RoomOptions
	Retry                RetryPolicy
	MaxParallelToolCalls int
}

// ToolsFunc returns the tool set to register. It is called once per run.
type ToolsFunc func() ([]Tool, error)

type Bootstrapper struct {
	credentials ports.CredentialSource
	connector   ports.RoomConnector
	tools       ToolsFunc
	sessions    ports.SessionRepository
	clock       ports.Clock
	logger      *slog.Logger
	cfg         BootstrapConfig

	lifecycle *domain.Lifecycle
}

type BootstrapperOption func(*Bootstrapper)

func WithSessionRepository(repo ports.SessionRepository) BootstrapperOption {
	return func(b *Bootstrapper) { b.sessions = repo }
}

func WithClock(clock ports.Clock) BootstrapperOption {
	return func(b *Bootstrapper) {
		if clock != nil {
			b.clock = clock
		}
	}
}

func WithLogger(logger *slog.Logger) BootstrapperOption {
	return func(b *Bootstrapper) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithStateObserver registers a callback for every session state change.
func WithStateObserver(observer domain.StateObserver) BootstrapperOption {
	return func(b *Bootstrapper) {
		b.lifecycle = domain.NewLifecycle(b.logStateChange, observer)
	}
}

func NewBootstrapper(credentials ports.CredentialSource, connector ports.RoomConnector, tools ToolsFunc, cfg BootstrapConfig, opts ...BootstrapperOption) *Bootstrapper {
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = DefaultRetryPolicy().MaxAttempts
	}
	if cfg.MaxParallelToolCalls <= 0 {
		cfg.MaxParallelToolCalls = defaultMaxParallelToolCalls
	}

	b := &Bootstrapper{
		credentials: credentials,
		connector:   connector,
		tools:       tools,
		clock:       ports.SystemClock{},
		logger:      slog.Default(),
		cfg:         cfg,
	}
	b.lifecycle = domain.NewLifecycle(b.logStateChange)

	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("room", cfg.Room.Room)

	return b
}

func (b *Bootstrapper) State() domain.SessionState {
	return b.lifecycle.State()
}

func (b *Bootstrapper) LoadCredentials(ctx context.Context) (domain.Credentials, error) {
	if b.credentials == nil {
		return domain.Credentials{}, &domain.ConfigurationError{Err: errors.New("no credential source configured")}
	}

	creds, err := b.credentials.Load(ctx)
	if err != nil {
		var cfgErr *domain.ConfigurationError
		if errors.As(err, &cfgErr) {
			return domain.Credentials{}, err
		}
		return domain.Credentials{}, &domain.ConfigurationError{Err: fmt.Errorf("load credentials: %w", err)}
	}
	if err := creds.Validate(); err != nil {
		return domain.Credentials{}, err
	}

	return creds, nil
}

func (b *Bootstrapper) RegisterTools() (*ToolRegistry, error) {
	if b.tools == nil {
		return RegisterTools()
	}

	tools, err := b.tools()
	if err != nil {
		return nil, &domain.ConfigurationError{Err: fmt.Errorf("build tools: %w", err)}
	}

	return RegisterTools(tools...)
}

// StartSession connects to the room with the bounded retry policy. Invalid
// credentials fail before any connection attempt. Any failure terminates the
// lifecycle; success leaves it connected.
func (b *Bootstrapper) StartSession(ctx context.Context, creds domain.Credentials, registry *ToolRegistry) (_ *Session, err error) {
	defer func() {
		if err != nil {
			b.lifecycle.Terminate()
		}
	}()

	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		return nil, &domain.ConfigurationError{Fields: []string{"tools"}, Err: errors.New("tool registry is nil")}
	}
	if err := b.lifecycle.AdvanceTo(domain.SessionStateConnecting); err != nil {
		return nil, err
	}

	opts := b.cfg.Room
	opts.Tools = registry.Specs()

	attempts := 0
	conn, err := backoff.Retry(ctx, func() (ports.RoomConnection, error) {
		attempts++
		conn, err := b.connector.Connect(ctx, creds, opts)
		if err != nil {
			if conn != nil {
				conn.Disconnect()
			}
			if errors.Is(err, domain.ErrConfiguration) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return conn, nil
	},
		backoff.WithBackOff(b.cfg.Retry.backOff()),
		backoff.WithMaxTries(b.cfg.Retry.MaxAttempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			b.logger.Warn("room connection failed, retrying", "attempt", attempts, "retry_in", next, "error", err)
		}),
	)
	if err != nil {
		if errors.Is(err, domain.ErrConfiguration) {
			return nil, err
		}
		return nil, &domain.ConnectionError{Room: opts.Room, Attempts: attempts, Err: err}
	}

	id := uuid.NewString()
	session := &Session{
		id:          id,
		room:        opts.Room,
		identity:    opts.Identity,
		conn:        conn,
		tools:       registry,
		lifecycle:   b.lifecycle,
		usage:       NewUsageCollector(),
		clock:       b.clock,
		logger:      b.logger.With("session_id", id),
		maxParallel: b.cfg.MaxParallelToolCalls,
		startedAt:   b.clock.Now(),
	}
	if err := b.lifecycle.Advance(domain.SessionStateConnected); err != nil {
		conn.Disconnect()
		return nil, err
	}
	session.logger.Info("session connected", "attempts", attempts, "tools", registry.Len())

	return session, nil
}

// Run loads credentials, registers tools, connects and serves the session
// until it ends. The session is always released before Run returns. A
// Bootstrapper runs at most once.
func (b *Bootstrapper) Run(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			b.logger.Error("agent run failed", "state", b.lifecycle.State(), "error", err)
		}
		b.lifecycle.Terminate()
	}()

	if err := b.lifecycle.Advance(domain.SessionStateLoadingConfig); err != nil {
		return err
	}
	creds, err := b.LoadCredentials(ctx)
	if err != nil {
		return err
	}

	if err := b.lifecycle.Advance(domain.SessionStateRegisteringTools); err != nil {
		return err
	}
	registry, err := b.RegisterTools()
	if err != nil {
		return err
	}
	b.logger.Info("tools registered", "count", registry.Len())

	session, err := b.StartSession(ctx, creds, registry)
	if err != nil {
		return err
	}
	defer func() {
		session.Close()
		if saveErr := b.saveRecord(session.Record()); saveErr != nil {
			b.logger.Warn("record session", "error", saveErr)
		}
	}()

	return session.Serve(ctx)
}

func (b *Bootstrapper) saveRecord(record domain.SessionRecord) error {
	if b.sessions == nil {
		return nil
	}

	// The run context may already be canceled; the ledger write must still happen.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.sessions.Save(ctx, record); err != nil {
		return fmt.Errorf("save session record: %w", err)
	}
	return nil
}

func (b *Bootstrapper) logStateChange(from, to domain.SessionState) {
	b.logger.Debug("session state changed", "from", from, "to", to)
}
