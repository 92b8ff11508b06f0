package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"diagport/internal/domain"
)

// Loader reads explicit diagnostic options from a YAML file. The suspend
// flag is carried through untouched (bool or string form); coercion happens
// during initialization so every configuration source is held to the same
// rule.
type Loader struct {
	logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger.Named("config")}
}

type rawOptions struct {
	Server   *rawServer   `mapstructure:"server"`
	Sessions []rawSession `mapstructure:"sessions"`
}

type rawServer struct {
	ConnectURL string `mapstructure:"connectUrl"`
	Suspend    any    `mapstructure:"suspend"`
}

type rawSession struct {
	Name     string         `mapstructure:"name"`
	Settings map[string]any `mapstructure:"settings"`
}

func (l *Loader) Load(path string) (*domain.DiagnosticOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	opts, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return opts, nil
}

func (l *Loader) Parse(data []byte) (*domain.DiagnosticOptions, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, domain.Wrap(domain.CodeInvalidConfig, "config.Parse", err)
	}

	var raw rawOptions
	if err := v.Unmarshal(&raw); err != nil {
		return nil, domain.Wrap(domain.CodeInvalidConfig, "config.Parse", err)
	}

	opts := &domain.DiagnosticOptions{}
	if raw.Server != nil {
		if raw.Server.ConnectURL == "" {
			return nil, domain.E(domain.CodeInvalidConfig, "config.Parse", "server.connectUrl must not be empty", nil)
		}
		opts.Server = &domain.ServerOptions{
			ConnectURL: raw.Server.ConnectURL,
			Suspend:    raw.Server.Suspend,
		}
	}
	for i, session := range raw.Sessions {
		if session.Name == "" {
			l.logger.Warn("session config has no name", zap.Int("index", i))
		}
		opts.Sessions = append(opts.Sessions, domain.SessionConfig{
			Name:     session.Name,
			Settings: session.Settings,
		})
	}
	return opts, nil
}
