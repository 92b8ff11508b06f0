package domain

import "time"

// AttachOutcome labels the result of a server attach attempt.
type AttachOutcome string

const (
	AttachOutcomeStarted AttachOutcome = "started"
	AttachOutcomeDenied  AttachOutcome = "denied"
	AttachOutcomeError   AttachOutcome = "error"
)

// SessionOutcome labels the result of activating one registered config.
type SessionOutcome string

const (
	SessionOutcomeStarted  SessionOutcome = "started"
	SessionOutcomeDeclined SessionOutcome = "declined"
	SessionOutcomeError    SessionOutcome = "error"
)

// Metrics receives activation and attach observations.
type Metrics interface {
	ObserveServerAttach(outcome AttachOutcome, duration time.Duration)
	ObserveSessionActivation(outcome SessionOutcome)
	SetRegisteredConfigs(count int)
}
