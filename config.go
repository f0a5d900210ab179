package pact

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the service configuration. It
// can be populated from JSON or YAML. The zero-value is useful – all nested
// fields inherit in-memory defaults.
type Config struct {
	Storage StorageConfig `json:"storage" yaml:"storage"`
	Events  EventsConfig  `json:"events" yaml:"events"`
	// DefinitionURL optionally points at a YAML workflow definition that
	// replaces the built-in accept/cancel/negotiate/modify machine.
	DefinitionURL string `json:"definitionURL,omitempty" yaml:"definitionURL,omitempty"`
}

// StorageConfig selects the persistence backend for negotiations and their
// history.
type StorageConfig struct {
	Vendor   string `json:"vendor" yaml:"vendor"`
	BasePath string `json:"basePath,omitempty" yaml:"basePath,omitempty"`
}

// EventsConfig selects the queue backend lifecycle events are published to.
type EventsConfig struct {
	Vendor   string `json:"vendor" yaml:"vendor"`
	BasePath string `json:"basePath,omitempty" yaml:"basePath,omitempty"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

const (
	// VendorMemory keeps all state in process memory.
	VendorMemory = "memory"
	// VendorFS persists state as JSON documents on a file system.
	VendorFS = "fs"
)

// DefaultConfig returns a Config with in-memory backends.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{Vendor: VendorMemory},
		Events:  EventsConfig{Vendor: VendorMemory},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	switch c.Storage.Vendor {
	case "", VendorMemory:
	case VendorFS:
		if c.Storage.BasePath == "" {
			return fmt.Errorf("storage.basePath is required for vendor %q", VendorFS)
		}
	default:
		return fmt.Errorf("unsupported storage.vendor: %q", c.Storage.Vendor)
	}
	switch c.Events.Vendor {
	case "", VendorMemory:
	case VendorFS:
		if c.Events.BasePath == "" {
			return fmt.Errorf("events.basePath is required for vendor %q", VendorFS)
		}
	default:
		return fmt.Errorf("unsupported events.vendor: %q", c.Events.Vendor)
	}
	return nil
}

// DecodeConfig parses a YAML (or JSON, being a YAML subset) document into a
// Config.
func DecodeConfig(data []byte) (*Config, error) {
	ret := DefaultConfig()
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
