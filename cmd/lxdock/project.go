// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"

	"github.com/jchampion/lxdock/internal/config"
	"github.com/jchampion/lxdock/internal/container"
	"github.com/jchampion/lxdock/internal/issue"
	"github.com/jchampion/lxdock/internal/lxd"
	"github.com/jchampion/lxdock/pkg/lxdockfile"
)

// loadProject discovers and parses the project file for the current
// directory, walking up to parent directories like git does.
func loadProject() (*lxdockfile.Project, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	path, err := lxdockfile.Discover(cwd)
	if err != nil {
		if errors.Is(err, lxdockfile.ErrNotFound) {
			printIssueCard(issue.ProjectFileNotFoundId)
			return nil, &ExitError{Code: ExitCodeNoProject, Err: issue.NewErrorContext().
				WithOperation("locating project file").
				WithResource(cwd).
				WithSuggestion("create one with `lxdock init`").
				WithSuggestion("or run lxdock from a directory that contains a .lxdock.yml").
				Wrap(err).
				BuildError()}
		}
		return nil, err
	}
	project, err := lxdockfile.Load(path)
	if err != nil {
		printIssueCard(issue.ProjectFileInvalidId)
		return nil, &ExitError{Code: ExitCodeNoProject, Err: err}
	}
	return project, nil
}

// connectLXD opens a connection to the local daemon, honoring the
// lxd_socket user config override.
func connectLXD() (lxd.Client, error) {
	socket := ""
	if cfg, err := config.Load(); err == nil && cfg != nil {
		socket = cfg.LXDSocket
	}
	client, err := lxd.Connect(socket)
	if err != nil {
		printIssueCard(issue.LXDConnectionFailedId)
		return nil, &ExitError{Code: ExitCodeNoDaemon, Err: err}
	}
	return client, nil
}

// applyUserDefaults fills project file gaps from the user-level config, so
// a configured image_server applies to every container that does not name
// its own.
func applyUserDefaults(cfg *lxdockfile.Container, user *config.Config) {
	if user == nil {
		return
	}
	if cfg.Server == "" {
		cfg.Server = user.ImageServer
	}
}

// selectContainers resolves command arguments to lifecycle drivers. With no
// arguments every container of the project is selected, in file order.
func selectContainers(args []string) (*lxdockfile.Project, []*container.Container, error) {
	project, err := loadProject()
	if err != nil {
		return nil, nil, err
	}
	client, err := connectLXD()
	if err != nil {
		return nil, nil, err
	}
	configs, err := project.Select(args)
	if err != nil {
		return nil, nil, err
	}

	userCfg, _ := config.Load()
	containers := make([]*container.Container, 0, len(configs))
	for _, cfg := range configs {
		applyUserDefaults(cfg, userCfg)
		logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: cfg.Name})
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
		containers = append(containers, container.New(project, *cfg, client, logger))
	}
	return project, containers, nil
}
