package envutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOSEnvironment_Lookup(t *testing.T) {
	env := NewOSEnvironment()

	t.Setenv("DIAGPORT_TEST_VAR", "  /tmp/sock,nosuspend  ")
	value, ok := env.Lookup("DIAGPORT_TEST_VAR")
	require.True(t, ok)
	require.Equal(t, "/tmp/sock,nosuspend", value)

	t.Setenv("DIAGPORT_TEST_VAR", "   ")
	_, ok = env.Lookup("DIAGPORT_TEST_VAR")
	require.False(t, ok)

	_, ok = env.Lookup("DIAGPORT_TEST_VAR_UNSET")
	require.False(t, ok)
}

func TestStaticEnvironment_Lookup(t *testing.T) {
	env := &StaticEnvironment{Vars: map[string]string{"A": "1"}}

	value, ok := env.Lookup("A")
	require.True(t, ok)
	require.Equal(t, "1", value)

	_, ok = env.Lookup("B")
	require.False(t, ok)
}
