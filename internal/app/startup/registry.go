package startup

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"diagport/internal/domain"
	"diagport/internal/infra/telemetry"
)

// Registry holds session configs registered before the runtime checkpoint
// and activates them exactly once. Registration order is preserved in the
// activation result, one slot per config, with a nil handle marking a config
// the factory declined or failed on.
type Registry struct {
	factory domain.SessionFactory
	metrics domain.Metrics
	logger  *zap.Logger

	mu       sync.Mutex
	pending  []domain.SessionConfig
	drained  bool
	sessions []domain.StartupSession
}

func NewRegistry(factory domain.SessionFactory, metrics domain.Metrics, logger *zap.Logger) *Registry {
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		factory: factory,
		metrics: metrics,
		logger:  logger.Named("registry"),
	}
}

// Register appends a session config. Append-only and unbounded; calls after
// the drain are rejected so the one-shot activation contract stays intact.
func (r *Registry) Register(config domain.SessionConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.drained {
		return domain.E(domain.CodeFailedPrecond, "startup.Register", "registry already drained", nil)
	}
	r.pending = append(r.pending, config)
	r.metrics.SetRegisteredConfigs(len(r.pending))
	return nil
}

// Len reports the number of configs awaiting activation.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// ActivateAll drains the registry: each config is handed to the session
// factory in registration order, and a created session is started before the
// next config is processed. One bad config never aborts the rest. The result
// is cached; subsequent calls return it without touching the factory again.
func (r *Registry) ActivateAll(ctx context.Context) []domain.StartupSession {
	r.mu.Lock()
	if r.drained {
		sessions := r.sessions
		r.mu.Unlock()
		return sessions
	}
	configs := r.pending
	r.pending = nil
	r.drained = true
	r.mu.Unlock()

	sessions := make([]domain.StartupSession, 0, len(configs))
	for i, config := range configs {
		sessions = append(sessions, r.activate(ctx, i, config))
	}

	r.mu.Lock()
	r.sessions = sessions
	r.metrics.SetRegisteredConfigs(0)
	r.mu.Unlock()
	return sessions
}

// Sessions returns the activation result, or nil before the drain.
func (r *Registry) Sessions() []domain.StartupSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions
}

func (r *Registry) activate(ctx context.Context, slot int, config domain.SessionConfig) domain.StartupSession {
	session := domain.StartupSession{
		ID:     uuid.NewString(),
		Config: config,
	}

	handle, err := r.factory.Create(ctx, config)
	if err != nil {
		r.logger.Warn("session creation failed",
			telemetry.EventField(telemetry.EventSessionFailure),
			telemetry.SlotField(slot),
			zap.Error(err),
		)
		r.metrics.ObserveSessionActivation(domain.SessionOutcomeError)
		return session
	}
	if handle == nil {
		r.logger.Warn("session config declined by factory",
			telemetry.EventField(telemetry.EventSessionDeclined),
			telemetry.SlotField(slot),
		)
		r.metrics.ObserveSessionActivation(domain.SessionOutcomeDeclined)
		return session
	}

	if err := handle.Start(ctx); err != nil {
		r.logger.Warn("session start failed",
			telemetry.EventField(telemetry.EventSessionFailure),
			telemetry.SessionIDField(session.ID),
			telemetry.SlotField(slot),
			zap.Error(err),
		)
		r.metrics.ObserveSessionActivation(domain.SessionOutcomeError)
		return session
	}

	r.logger.Info("session started",
		telemetry.EventField(telemetry.EventSessionStarted),
		telemetry.SessionIDField(session.ID),
		telemetry.SlotField(slot),
	)
	r.metrics.ObserveSessionActivation(domain.SessionOutcomeStarted)
	session.Handle = handle
	return session
}
