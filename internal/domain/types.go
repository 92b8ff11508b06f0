package domain

import "context"

// PortSpecification is the parsed form of a single diagnostic port entry.
// Connect is always true for a usable specification; listen-mode entries
// never survive parsing.
type PortSpecification struct {
	URI     string `json:"uri"`
	Connect bool   `json:"connect"`
	Suspend bool   `json:"suspend"`
}

// ServerOptions configures the diagnostic server connection.
//
// Suspend is either a bool or the strings "true"/"false"; configuration
// surfaces that cannot express booleans pass the string form. Anything else
// is rejected during initialization.
type ServerOptions struct {
	ConnectURL string `json:"connectUrl"`
	Suspend    any    `json:"suspend"`
}

// SessionConfig is an opaque tracing session configuration. It is produced
// by callers (or a config file), stored untouched, and forwarded verbatim to
// the SessionFactory at activation time.
type SessionConfig struct {
	Name     string         `json:"name,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
}

// DiagnosticOptions is the full startup configuration: at most one server
// connection plus an ordered list of session configs.
type DiagnosticOptions struct {
	Server   *ServerOptions  `json:"server,omitempty"`
	Sessions []SessionConfig `json:"sessions,omitempty"`
}

// StartupSession is one slot in the ordered activation result. Handle is nil
// when the factory declined the config; the slot is kept so positions line
// up with registration order.
type StartupSession struct {
	ID     string
	Config SessionConfig
	Handle SessionHandle
}

// Absent reports whether session creation was declined for this slot.
func (s StartupSession) Absent() bool {
	return s.Handle == nil
}

// EnvironmentSource supplies environment variables to the coordinator.
type EnvironmentSource interface {
	// Lookup returns the value and whether the variable is set.
	Lookup(name string) (string, bool)
}

// ServerController starts the diagnostic server connection. Start returns a
// nil Controller when the server could not be brought up; that is a
// degradation, not an error the caller must act on beyond logging.
type ServerController interface {
	Start(ctx context.Context, url string) (Controller, error)
}

// Controller is a started diagnostic server connection.
type Controller interface {
	// NotifyCheckpoint tells the connected diagnostics client that the
	// runtime reached its startup checkpoint and further commands may be
	// issued.
	NotifyCheckpoint(ctx context.Context) error
}

// SessionFactory turns a stored session config into a live session. A nil
// handle with a nil error means the factory declined the config.
type SessionFactory interface {
	Create(ctx context.Context, config SessionConfig) (SessionHandle, error)
}

// SessionHandle is a created tracing session. Start begins streaming;
// sessions stream nothing until started.
type SessionHandle interface {
	Start(ctx context.Context) error
}

// SuspendSlot receives the suspend-on-startup decision at the runtime
// checkpoint. Implementations encode the bool however the embedding layer
// expects (the in-process SlotVar writes int32 1/0).
type SuspendSlot interface {
	Set(suspend bool)
}

// SlotVar is an in-process SuspendSlot backed by an int32, matching the
// native boundary's integer-sized location.
type SlotVar struct {
	Value int32
}

func (s *SlotVar) Set(suspend bool) {
	if suspend {
		s.Value = 1
		return
	}
	s.Value = 0
}
