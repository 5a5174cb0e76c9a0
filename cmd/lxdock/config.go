// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jchampion/lxdock/internal/config"
)

var (
	configContainers bool

	// configCmd inspects the project file and the user configuration.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Show the merged project configuration",
		Long: `Show the project configuration after validation and merging of
container-level overrides, as lxdock sees it.

With --containers, only the container names are listed, one per line.

The 'user' subcommands manage lxdock's own configuration file:
  - Linux: ~/.config/lxdock/config.cue
  - macOS: ~/Library/Application Support/lxdock/config.cue`,
		RunE: runConfig,
	}
)

func init() {
	configCmd.Flags().BoolVar(&configContainers, "containers", false, "list container names only")

	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage the lxdock user configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	userCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current user configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			fmt.Print(config.GenerateCUE(cfg))
			return nil
		},
	})
	userCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a default user configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(config.DefaultConfig()); err != nil {
				return err
			}
			dir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"),
				filepath.Join(dir, "config.cue"))
			return nil
		},
	})
	userCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the user configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Println(filepath.Join(dir, "config.cue"))
			return nil
		},
	})
	configCmd.AddCommand(userCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	project, err := loadProject()
	if err != nil {
		return err
	}

	if configContainers {
		for i := range project.Containers {
			fmt.Println(project.Containers[i].Name)
		}
		return nil
	}

	out := map[string]any{
		"name":       project.Name,
		"containers": project.Containers,
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(out)
}
