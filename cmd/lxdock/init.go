// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	initForce   bool
	initImage   string
	initProject string

	// initCmd creates a new project file
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a new .lxdock.yml in the current directory",
		Long: `Create a new .lxdock.yml in the current directory with a starter
container definition.`,
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing .lxdock.yml")
	initCmd.Flags().StringVar(&initImage, "image", "ubuntu/jammy", "image the container is created from")
	initCmd.Flags().StringVar(&initProject, "project", "", "project name (default: current directory name)")
}

func runInit(cmd *cobra.Command, args []string) error {
	filename := ".lxdock.yml"

	if _, err := os.Stat(filename); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	name := initProject
	if name == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		name = filepath.Base(cwd)
	}

	content := generateProjectFile(name, initImage)
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Edit .lxdock.yml to declare shares and provisioning")
	fmt.Println("  2. Run 'lxdock up' to create and start the container")
	fmt.Println("  3. Run 'lxdock shell' to get a shell inside it")

	return nil
}

func generateProjectFile(name, image string) string {
	return fmt.Sprintf(`name: %s
image: %s

# Share the project directory with the container:
# shares:
#   - source: .
#     dest: /app

# Publish hostnames on the host:
# hostnames:
#   - %s.local

# Provision the container on first up:
# provisioning:
#   - type: shell
#     inline: echo "it works"
`, name, image, name)
}
