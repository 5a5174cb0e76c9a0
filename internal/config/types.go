// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidImageServer is returned when the image_server value is blank.
	ErrInvalidImageServer = errors.New("invalid image server")
)

type (
	// ColorScheme selects the terminal color scheme for rendered output.
	ColorScheme string

	// UIConfig contains UI-related settings.
	UIConfig struct {
		// Verbose enables verbose output by default.
		Verbose bool `mapstructure:"verbose"`
		// ColorScheme sets the terminal color scheme (auto, dark, light).
		ColorScheme ColorScheme `mapstructure:"color_scheme"`
	}

	// Config is the lxdock user configuration.
	Config struct {
		// ImageServer is the remote image server used in pull mode when
		// the project file does not name one.
		ImageServer string `mapstructure:"image_server"`
		// LXDSocket is an explicit LXD unix socket path. Empty means
		// autodetect.
		LXDSocket string `mapstructure:"lxd_socket"`
		// UI contains UI-related settings.
		UI UIConfig `mapstructure:"ui"`
	}
)

// IsValid reports whether the color scheme is one of the known values.
func (s ColorScheme) IsValid() bool {
	switch s {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true
	}
	return false
}

// Validate checks constraints the CUE schema cannot express on its own.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ImageServer) == "" {
		return ErrInvalidImageServer
	}
	if !c.UI.ColorScheme.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidColorScheme, c.UI.ColorScheme)
	}
	return nil
}
