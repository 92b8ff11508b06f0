package telemetry

import (
	"time"

	"go.uber.org/zap"
)

const (
	FieldEvent      = "event"
	FieldPortURI    = "portURI"
	FieldSessionID  = "sessionID"
	FieldSlot       = "slot"
	FieldDurationMs = "duration_ms"
)

const (
	EventParseWarning      = "parse_warning"
	EventAttachAttempt     = "attach_attempt"
	EventAttachSuccess     = "attach_success"
	EventAttachFailure     = "attach_failure"
	EventSessionStarted    = "session_started"
	EventSessionDeclined   = "session_declined"
	EventSessionFailure    = "session_failure"
	EventCheckpointReached = "checkpoint_reached"
)

func EventField(event string) zap.Field {
	return zap.String(FieldEvent, event)
}

func PortURIField(uri string) zap.Field {
	return zap.String(FieldPortURI, uri)
}

func SessionIDField(sessionID string) zap.Field {
	return zap.String(FieldSessionID, sessionID)
}

func SlotField(slot int) zap.Field {
	return zap.Int(FieldSlot, slot)
}

func DurationField(duration time.Duration) zap.Field {
	return zap.Int64(FieldDurationMs, duration.Milliseconds())
}
