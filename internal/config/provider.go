// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions names the inputs of one config load, mirroring what the
// --config flag and the test helpers can override.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config.cue when set.
	ConfigFilePath string
	// ConfigDirPath overrides the lxdock config directory lookup when set.
	ConfigDirPath string
}

// Provider loads the lxdock user configuration from explicit options,
// without touching the package-level cache.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider returns the file-backed configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load resolves and parses the config file named by opts.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
