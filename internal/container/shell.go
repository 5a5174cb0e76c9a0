// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/jchampion/lxdock/internal/issue"
	"github.com/jchampion/lxdock/internal/lxd"
)

// guestShellScript holds the command a non-interactive `shell -c` run
// executes inside the container.
const guestShellScript = "/.lxdock.d/shell_cmd.sh"

// runInteractive is swapped out in tests.
var runInteractive = func(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Shell opens an interactive shell inside the running container, or runs a
// single command when cmdArgs is non-empty. username overrides the project
// file's shell user; root is the fallback.
//
// The session is delegated to the lxc binary: the exec API has no
// interactive terminal handling, and `lxc exec` already does it well. The
// command runs through `su -m` so the user's environment is preserved, and
// one-off commands go through a pushed script rather than `su -c` so that
// Ctrl-C reaches them.
func (c *Container) Shell(ctx context.Context, username string, cmdArgs []string) error {
	if _, err := c.requireRunning(); err != nil {
		return err
	}
	// The project file may have changed since the last up.
	if err := c.setupEnv(); err != nil {
		return err
	}

	shellUser := username
	if shellUser == "" {
		shellUser = c.cfg.Shell.User
	}

	args := []string{"exec", c.lxdName}
	if shellUser != "" && username == "" && c.cfg.Shell.Home != "" {
		args = append(args, "--env", "HOME="+c.cfg.Shell.Home)
	}
	if shellUser == "" {
		shellUser = "root"
	}
	args = append(args, "--", "su", "-m", shellUser)

	if len(cmdArgs) > 0 {
		if err := c.pushShellScript(cmdArgs); err != nil {
			return err
		}
		args = append(args, "-s", guestShellScript)
	}

	if err := runInteractive("lxc", args...); err != nil {
		return issue.WrapWithContext(err, "opening shell", c.cfg.Name)
	}
	return nil
}

// pushShellScript writes the quoted command into the container so su can
// run it as a login script. The parent directory is created first (the LXD
// files API does not) and made world-readable so non-root shell users can
// execute the script.
func (c *Container) pushShellScript(cmdArgs []string) error {
	quoted := make([]string, 0, len(cmdArgs))
	for _, arg := range cmdArgs {
		q, err := syntax.Quote(arg, syntax.LangPOSIX)
		if err != nil {
			return fmt.Errorf("quoting shell argument %q: %w", arg, err)
		}
		quoted = append(quoted, q)
	}

	dir := path.Dir(guestShellScript)
	for _, cmd := range [][]string{
		{"mkdir", "-p", dir},
		{"chmod", "a+rx", dir},
	} {
		code, err := c.client.Exec(c.lxdName, cmd, lxd.ExecOptions{})
		if err != nil {
			return err
		}
		if code != 0 {
			return fmt.Errorf("command %q exited with status %d in container %q",
				strings.Join(cmd, " "), code, c.cfg.Name)
		}
	}

	script := fmt.Sprintf("#!/bin/sh\n%s\n", strings.Join(quoted, " "))
	return c.client.PushFile(c.lxdName, guestShellScript, 0o755,
		strings.NewReader(script))
}
