package telemetry

import (
	"time"

	"diagport/internal/domain"
)

type NoopMetrics struct{}

func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) ObserveServerAttach(_ domain.AttachOutcome, _ time.Duration) {}

func (n *NoopMetrics) ObserveSessionActivation(_ domain.SessionOutcome) {}

func (n *NoopMetrics) SetRegisteredConfigs(_ int) {}

var _ domain.Metrics = (*NoopMetrics)(nil)
