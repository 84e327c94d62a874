package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/reoring/wirekit"
	"github.com/reoring/wirekit/jsonwire"
	"github.com/reoring/wirekit/xmlwire"
)

// Config is the CLI configuration file. Absent keys keep their defaults.
type Config struct {
	LogLevel string     `yaml:"log_level"`
	Language string     `yaml:"language"`
	Archive  string     `yaml:"archive"`
	Workers  int        `yaml:"workers"`
	JSON     JSONConfig `yaml:"json"`
	XML      XMLConfig  `yaml:"xml"`
}

// JSONConfig mirrors jsonwire.Options.
type JSONConfig struct {
	Indent          bool `yaml:"indent"`
	OmitNull        bool `yaml:"omit_null"`
	CaseInsensitive bool `yaml:"case_insensitive"`
}

// XMLConfig mirrors xmlwire.Options.
type XMLConfig struct {
	Indent          bool   `yaml:"indent"`
	OmitDeclaration bool   `yaml:"omit_declaration"`
	Namespace       string `yaml:"namespace"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	j := jsonwire.DefaultOptions()
	x := xmlwire.DefaultOptions()
	return Config{
		LogLevel: "info",
		Language: "en",
		Archive:  "wirekit.db",
		Workers:  4,
		JSON:     JSONConfig{Indent: j.Indent, OmitNull: j.OmitNull, CaseInsensitive: j.CaseInsensitive},
		XML:      XMLConfig{Indent: x.Indent, OmitDeclaration: x.OmitDeclaration, Namespace: x.Namespace},
	}
}

// LoadConfig reads path over DefaultConfig. Unknown keys are rejected. An
// empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}

// JSONOptions converts the json section into an option applied over the
// adapter defaults.
func (c Config) JSONOptions() wirekit.Option[jsonwire.Options] {
	return func(o *jsonwire.Options) {
		o.Indent = c.JSON.Indent
		o.OmitNull = c.JSON.OmitNull
		o.CaseInsensitive = c.JSON.CaseInsensitive
	}
}

// XMLOptions converts the xml section into an option applied over the adapter
// defaults.
func (c Config) XMLOptions() wirekit.Option[xmlwire.Options] {
	return func(o *xmlwire.Options) {
		o.Indent = c.XML.Indent
		o.OmitDeclaration = c.XML.OmitDeclaration
		o.Namespace = c.XML.Namespace
	}
}

// newLogger builds a console logger at level writing to stderr.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	return cfg.Build()
}
