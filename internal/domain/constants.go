package domain

const (
	// DefaultPortsEnvVar is the environment variable holding the diagnostic
	// port specification: `<uri>[,<connect|listen>][,<suspend|nosuspend>]`
	// with `;`-separated alternatives, last one wins.
	DefaultPortsEnvVar = "DIAGPORT_PORTS"

	// MaxSpecComponents bounds a single port spec entry: the URI plus at
	// most two modifiers.
	MaxSpecComponents = 3
)
