package envutil

import (
	"os"
	"strings"
)

// OSEnvironment reads variables from the process environment. Values are
// trimmed; a variable set to only whitespace counts as unset.
type OSEnvironment struct{}

func NewOSEnvironment() *OSEnvironment {
	return &OSEnvironment{}
}

func (e *OSEnvironment) Lookup(name string) (string, bool) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

// StaticEnvironment serves a fixed variable map, for tests and embedding
// layers that snapshot the environment before mutating it.
type StaticEnvironment struct {
	Vars map[string]string
}

func (e *StaticEnvironment) Lookup(name string) (string, bool) {
	value, ok := e.Vars[name]
	return value, ok
}
