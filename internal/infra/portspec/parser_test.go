package portspec

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"diagport/internal/domain"
)

func TestParser_Parse_Empty(t *testing.T) {
	p := NewParser(zap.NewNop())

	require.Nil(t, p.Parse(""))
	require.Nil(t, p.Parse(";"))
	require.Nil(t, p.Parse(" ; "))
}

func TestParser_Parse_Defaults(t *testing.T) {
	p := NewParser(zap.NewNop())

	spec := p.Parse("/tmp/sock")
	require.NotNil(t, spec)
	require.Equal(t, domain.PortSpecification{URI: "/tmp/sock", Connect: true, Suspend: true}, *spec)
}

func TestParser_Parse_NoSuspend(t *testing.T) {
	p := NewParser(zap.NewNop())

	spec := p.Parse("/tmp/sock,nosuspend")
	require.NotNil(t, spec)
	require.Equal(t, domain.PortSpecification{URI: "/tmp/sock", Connect: true, Suspend: false}, *spec)
}

func TestParser_Parse_LastSegmentWins(t *testing.T) {
	p := NewParser(zap.NewNop())

	spec := p.Parse("/ignored/sock,nosuspend;/tmp/sock")
	require.NotNil(t, spec)
	require.Equal(t, "/tmp/sock", spec.URI)
	require.True(t, spec.Suspend)
}

func TestParser_Parse_LastSegmentListen(t *testing.T) {
	p := NewParser(zap.NewNop())

	// Last segment requests listen mode, so the whole parse yields nothing
	// even though the first segment would have been usable.
	require.Nil(t, p.Parse("a;b,listen,suspend"))
}

func TestParser_Parse_RightmostModifierWins(t *testing.T) {
	p := NewParser(zap.NewNop())

	spec := p.Parse("p,suspend,nosuspend")
	require.NotNil(t, spec)
	require.False(t, spec.Suspend)

	spec = p.Parse("p,listen,connect")
	require.NotNil(t, spec)
	require.True(t, spec.Connect)
}

func TestParser_Parse_ListenUnsupported(t *testing.T) {
	p := NewParser(zap.NewNop())

	require.Nil(t, p.Parse("p,listen"))
}

func TestParser_Parse_TooManyComponents(t *testing.T) {
	p := NewParser(zap.NewNop())

	require.Nil(t, p.Parse("p,connect,suspend,extra"))
}

func TestParser_Parse_UnknownModifierIgnored(t *testing.T) {
	p := NewParser(zap.NewNop())

	spec := p.Parse("p,bogus,nosuspend")
	require.NotNil(t, spec)
	require.Equal(t, "p", spec.URI)
	require.False(t, spec.Suspend)
}

func TestParser_Parse_ModifiersCaseInsensitive(t *testing.T) {
	p := NewParser(zap.NewNop())

	spec := p.Parse("p,NoSuspend")
	require.NotNil(t, spec)
	require.False(t, spec.Suspend)

	require.Nil(t, p.Parse("p,LISTEN"))
}

func TestParser_Parse_EmptyURI(t *testing.T) {
	p := NewParser(zap.NewNop())

	require.Nil(t, p.Parse(",suspend"))
}

func TestOptionsFromSpec(t *testing.T) {
	opts := OptionsFromSpec(&domain.PortSpecification{URI: "/tmp/sock", Connect: true, Suspend: false})
	require.NotNil(t, opts)
	require.NotNil(t, opts.Server)
	require.Equal(t, "/tmp/sock", opts.Server.ConnectURL)
	require.Equal(t, false, opts.Server.Suspend)
	require.Empty(t, opts.Sessions)

	require.Nil(t, OptionsFromSpec(nil))
}
