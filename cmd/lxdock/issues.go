// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/jchampion/lxdock/internal/config"
	"github.com/jchampion/lxdock/internal/issue"
)

// printIssueCard renders one of the known failure cards to stderr. The card
// supplements the returned error, it does not replace it.
func printIssueCard(id issue.Id) {
	card := issue.Get(id)
	if card == nil {
		return
	}
	rendered, err := card.Render(glamourStyle())
	if err != nil {
		return
	}
	fmt.Fprint(os.Stderr, rendered)
}

// glamourStyle picks the markdown style from the user config.
func glamourStyle() string {
	cfg, err := config.Load()
	if err != nil || cfg == nil {
		return styleForScheme(config.ColorSchemeAuto)
	}
	return styleForScheme(cfg.UI.ColorScheme)
}

// styleForScheme maps a configured color scheme onto a glamour style name.
func styleForScheme(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}
