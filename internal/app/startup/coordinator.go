package startup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"diagport/internal/domain"
	"diagport/internal/infra/portspec"
	"diagport/internal/infra/telemetry"
)

// CoordinatorConfig wires the coordinator's collaborators.
type CoordinatorConfig struct {
	Environment domain.EnvironmentSource
	Server      domain.ServerController
	Factory     domain.SessionFactory
	Metrics     domain.Metrics
	Logger      *zap.Logger

	// Disabled marks a build without diagnostics support; Initialize
	// degrades to a logged no-op.
	Disabled bool

	// PortsEnvVar overrides the environment variable consulted when no
	// explicit options are given. Defaults to domain.DefaultPortsEnvVar.
	PortsEnvVar string
}

// Coordinator owns the diagnostics startup sequence: it consumes
// configuration once, decides whether the runtime suspends at its startup
// checkpoint, and holds the pending session registry until the embedding
// layer asks for activation. All process-wide startup state lives here
// rather than in package globals so a test harness can run many sequences
// side by side.
type Coordinator struct {
	env         domain.EnvironmentSource
	server      domain.ServerController
	metrics     domain.Metrics
	logger      *zap.Logger
	parser      *portspec.Parser
	registry    *Registry
	disabled    bool
	portsEnvVar string

	mu               sync.Mutex
	initialized      bool
	serverEnabled    bool
	suspendOnStartup bool
	controller       domain.Controller
}

func NewCoordinator(cfg CoordinatorConfig) *Coordinator {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("startup")

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}

	portsEnvVar := cfg.PortsEnvVar
	if portsEnvVar == "" {
		portsEnvVar = domain.DefaultPortsEnvVar
	}

	return &Coordinator{
		env:         cfg.Environment,
		server:      cfg.Server,
		metrics:     metrics,
		logger:      logger,
		parser:      portspec.NewParser(logger),
		registry:    NewRegistry(cfg.Factory, metrics, logger),
		disabled:    cfg.Disabled,
		portsEnvVar: portsEnvVar,
	}
}

// Initialize runs the one-shot startup negotiation. A nil opts derives
// configuration from the environment; environment absence (or an unusable
// port spec) leaves the coordinator uninitialized so a later explicit call
// can still succeed. A configuration error aborts atomically: no flags are
// set and no session configs are registered. Once initialized, further calls
// are no-ops regardless of input.
func (c *Coordinator) Initialize(ctx context.Context, opts *domain.DiagnosticOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		c.logger.Debug("diagnostics already initialized, ignoring")
		return nil
	}
	if c.disabled {
		c.logger.Info("diagnostics not supported in this build")
		return nil
	}

	fromEnv := opts == nil
	if fromEnv {
		opts = c.optionsFromEnvironment()
		if opts == nil {
			return nil
		}
	}

	// Validate and coerce before touching any state so a bad config
	// leaves the coordinator exactly as it was.
	suspend := false
	if opts.Server != nil {
		if opts.Server.ConnectURL == "" {
			return domain.E(domain.CodeInvalidConfig, "startup.Initialize", "server connect URL must not be empty", nil)
		}
		var err error
		suspend, err = coerceSuspend(opts.Server.Suspend)
		if err != nil {
			return domain.Wrap(domain.CodeInvalidConfig, "startup.Initialize", err)
		}
	}

	if opts.Server != nil {
		c.attachServer(ctx, opts.Server.ConnectURL, suspend)
	}

	for _, config := range opts.Sessions {
		if err := c.registry.Register(config); err != nil {
			return err
		}
	}

	c.initialized = true
	return nil
}

// Initialized reports whether a configuration has been applied.
func (c *Coordinator) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// ServerEnabled reports whether a diagnostic server connection was started.
func (c *Coordinator) ServerEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serverEnabled
}

// SuspendOnStartup reports the suspend decision.
func (c *Coordinator) SuspendOnStartup() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suspendOnStartup
}

// OnRuntimeCheckpoint is invoked by the embedding layer once native startup
// reaches its checkpoint. A no-op unless a server connection was started;
// otherwise the controller is notified and the suspend decision is written
// into slot. A failing notification degrades the server feature but never
// blocks startup.
func (c *Coordinator) OnRuntimeCheckpoint(ctx context.Context, slot domain.SuspendSlot) {
	c.mu.Lock()
	enabled := c.serverEnabled
	suspend := c.suspendOnStartup
	controller := c.controller
	c.mu.Unlock()

	if !enabled {
		return
	}

	if err := controller.NotifyCheckpoint(ctx); err != nil {
		c.logger.Warn("checkpoint notification failed",
			telemetry.EventField(telemetry.EventCheckpointReached),
			zap.Error(err),
		)
	} else {
		c.logger.Info("runtime checkpoint reported",
			telemetry.EventField(telemetry.EventCheckpointReached),
			zap.Bool("suspend", suspend),
		)
	}

	if slot != nil {
		slot.Set(suspend)
	}
}

// ActivateSessions drains the registry, creating and starting one session
// per registered config. It must not run before a completed Initialize;
// that ordering is enforced here rather than left to call-site discipline.
func (c *Coordinator) ActivateSessions(ctx context.Context) ([]domain.StartupSession, error) {
	c.mu.Lock()
	initialized := c.initialized
	c.mu.Unlock()

	if !initialized {
		return nil, domain.E(domain.CodeFailedPrecond, "startup.ActivateSessions", "", domain.ErrNotInitialized)
	}
	return c.registry.ActivateAll(ctx), nil
}

// StartupSessions returns the activation result, or nil before activation.
func (c *Coordinator) StartupSessions() []domain.StartupSession {
	return c.registry.Sessions()
}

// Registry exposes the pending-config registry for callers that supply
// configs outside an Initialize call.
func (c *Coordinator) Registry() *Registry {
	return c.registry
}

func (c *Coordinator) optionsFromEnvironment() *domain.DiagnosticOptions {
	if c.env == nil {
		return nil
	}
	raw, ok := c.env.Lookup(c.portsEnvVar)
	if !ok || raw == "" {
		return nil
	}
	return portspec.OptionsFromSpec(c.parser.Parse(raw))
}

func (c *Coordinator) attachServer(ctx context.Context, url string, suspend bool) {
	if c.server == nil {
		c.logger.Warn("no server controller configured, skipping attach",
			telemetry.EventField(telemetry.EventAttachFailure),
			telemetry.PortURIField(url),
		)
		c.metrics.ObserveServerAttach(domain.AttachOutcomeDenied, 0)
		return
	}

	c.logger.Info("attaching diagnostic server",
		telemetry.EventField(telemetry.EventAttachAttempt),
		telemetry.PortURIField(url),
	)

	started := time.Now()
	controller, err := c.server.Start(ctx, url)
	if err != nil {
		// A server that fails to start must not block startup and must
		// not force a suspend.
		c.logger.Warn("diagnostic server attach failed",
			telemetry.EventField(telemetry.EventAttachFailure),
			telemetry.PortURIField(url),
			telemetry.DurationField(time.Since(started)),
			zap.Error(err),
		)
		c.metrics.ObserveServerAttach(domain.AttachOutcomeError, time.Since(started))
		return
	}
	if controller == nil {
		c.logger.Warn("diagnostic server declined to start",
			telemetry.EventField(telemetry.EventAttachFailure),
			telemetry.PortURIField(url),
			telemetry.DurationField(time.Since(started)),
		)
		c.metrics.ObserveServerAttach(domain.AttachOutcomeDenied, time.Since(started))
		return
	}

	c.logger.Info("diagnostic server attached",
		telemetry.EventField(telemetry.EventAttachSuccess),
		telemetry.PortURIField(url),
		telemetry.DurationField(time.Since(started)),
	)
	c.metrics.ObserveServerAttach(domain.AttachOutcomeStarted, time.Since(started))
	c.controller = controller
	c.serverEnabled = true
	if suspend {
		c.suspendOnStartup = true
	}
}

// coerceSuspend normalizes the suspend flag, which configuration surfaces
// without boolean support pass as the exact strings "true" or "false".
func coerceSuspend(value any) (bool, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		switch v {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, fmt.Errorf("invalid suspend value %v, expected a bool or \"true\"/\"false\"", value)
}
