package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/kinetree/pkg/urdf"
)

// DefaultConfigFile is read from the working directory when --config is
// not given.
const DefaultConfigFile = "kinetree.yaml"

// Config holds the settings shared by the commands. Flags override it.
type Config struct {
	LogLevel string       `yaml:"log_level"`
	Parts    string       `yaml:"parts"`
	Render   RenderConfig `yaml:"render"`
	Store    StoreConfig  `yaml:"store"`
}

// RenderConfig mirrors the emitter settings as strings.
type RenderConfig struct {
	Indent    string `yaml:"indent"`
	Materials string `yaml:"materials"`
	Target    string `yaml:"target"`
}

// StoreConfig selects and configures a document store.
type StoreConfig struct {
	Driver string        `yaml:"driver"`
	Path   string        `yaml:"path"`
	Prefix string        `yaml:"prefix"`
	TTL    time.Duration `yaml:"ttl"`
	Redis  RedisConfig   `yaml:"redis"`

	// EncryptionKey, 32 bytes in hex or base64, seals stored documents.
	EncryptionKey string `yaml:"encryption_key"`
}

// RedisConfig addresses the redis server used by the redis store and by
// the HTTP server's lock.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// DefaultConfig is used when no file is present.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Store: StoreConfig{
			Driver: DriverMemory,
			Path:   ".kinetree/robots.db",
			Redis:  RedisConfig{Addr: "localhost:6379"},
		},
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error
// unless required is set.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// URDF converts the render settings into an emitter configuration.
func (r RenderConfig) URDF() (urdf.Config, error) {
	indent, err := urdf.ParseIndent(r.Indent)
	if err != nil {
		return urdf.Config{}, err
	}
	materials, err := urdf.ParseMaterialReferences(r.Materials)
	if err != nil {
		return urdf.Config{}, err
	}
	target, err := urdf.ParseTarget(r.Target)
	if err != nil {
		return urdf.Config{}, err
	}
	return urdf.NewConfig(
		urdf.WithIndent(indent.Char, indent.Width),
		urdf.WithMaterialReferences(materials),
		urdf.WithTarget(target),
	), nil
}
