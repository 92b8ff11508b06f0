package portspec

import (
	"strings"

	"go.uber.org/zap"

	"diagport/internal/domain"
	"diagport/internal/infra/telemetry"
)

// Parser turns the textual diagnostic port specification into a structured
// form. Parsing never fails hard: anything unusable yields nil plus a
// warning, matching the native diagnostic server's own tolerance.
type Parser struct {
	logger *zap.Logger
}

func NewParser(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger.Named("portspec")}
}

// Parse parses `<uri>[,<connect|listen>][,<suspend|nosuspend>]` with
// `;`-separated alternatives. Only the last alternative takes effect, and
// among conflicting modifiers the rightmost wins, mirroring the precedence
// the native diagnostic server applies so both components agree on the same
// input.
func (p *Parser) Parse(spec string) *domain.PortSpecification {
	segment, ok := p.lastSegment(spec)
	if !ok {
		return nil
	}

	components := strings.Split(segment, ",")
	if len(components) > domain.MaxSpecComponents {
		p.logger.Warn("port spec has too many components",
			telemetry.EventField(telemetry.EventParseWarning),
			zap.Int("components", len(components)),
			zap.Int("max", domain.MaxSpecComponents),
		)
		return nil
	}

	uri := components[0]
	if uri == "" {
		p.logger.Warn("port spec has an empty endpoint",
			telemetry.EventField(telemetry.EventParseWarning),
		)
		return nil
	}

	// Defaults before any modifier is applied.
	connect := true
	suspend := true

	// Rightmost occurrence of a conflicting modifier wins, so walk the
	// modifiers in reverse and let the first hit per category stick.
	connectSet := false
	suspendSet := false
	for i := len(components) - 1; i >= 1; i-- {
		switch modifier := components[i]; {
		case strings.EqualFold(modifier, "suspend"):
			if !suspendSet {
				suspend = true
				suspendSet = true
			}
		case strings.EqualFold(modifier, "nosuspend"):
			if !suspendSet {
				suspend = false
				suspendSet = true
			}
		case strings.EqualFold(modifier, "connect"):
			if !connectSet {
				connect = true
				connectSet = true
			}
		case strings.EqualFold(modifier, "listen"):
			if !connectSet {
				connect = false
				connectSet = true
			}
		default:
			p.logger.Warn("unknown port spec modifier",
				telemetry.EventField(telemetry.EventParseWarning),
				zap.String("modifier", modifier),
			)
		}
	}

	if !connect {
		p.logger.Warn("listen mode requested but not supported",
			telemetry.EventField(telemetry.EventParseWarning),
			telemetry.PortURIField(uri),
			zap.Error(domain.ErrListenUnsupported),
		)
		return nil
	}

	return &domain.PortSpecification{
		URI:     uri,
		Connect: connect,
		Suspend: suspend,
	}
}

func (p *Parser) lastSegment(spec string) (string, bool) {
	segments := make([]string, 0, 1)
	for _, segment := range strings.Split(spec, ";") {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		segments = append(segments, segment)
	}
	if len(segments) == 0 {
		return "", false
	}
	if len(segments) > 1 {
		p.logger.Warn("multiple port specs provided, using the last",
			telemetry.EventField(telemetry.EventParseWarning),
			zap.Int("discarded", len(segments)-1),
		)
	}
	return segments[len(segments)-1], true
}

// OptionsFromSpec maps a parsed specification into diagnostic options with
// exactly one server entry and no sessions.
func OptionsFromSpec(spec *domain.PortSpecification) *domain.DiagnosticOptions {
	if spec == nil {
		return nil
	}
	return &domain.DiagnosticOptions{
		Server: &domain.ServerOptions{
			ConnectURL: spec.URI,
			Suspend:    spec.Suspend,
		},
	}
}
