// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ProjectFileNotFoundId Id = iota + 1
	ProjectFileInvalidId
	LXDConnectionFailedId
	ContainerNotCreatedId
	ContainerNotRunningId
	ContainerOperationFailedId
	ProvisionerToolMissingId
	ConfigLoadFailedId
	EtcHostsNotWritableId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation links shown in the footer
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	projectFileNotFoundIssue = &Issue{
		id: ProjectFileNotFoundId,
		mdMsg: `
# No lxdock file found!

We searched the current directory and its parents but found no project file.

## Accepted file names (in order of precedence):
1. .lxdock.yml
2. lxdock.yml
3. .lxdock.yaml
4. lxdock.yaml

## Things you can try:
- Create a project file in your current directory:
~~~
$ lxdock init
~~~

- Or move into the project:
~~~
$ cd /path/to/your/project
$ lxdock status
~~~

## Example project file:
~~~yaml
name: myproject
image: ubuntu/jammy

shares:
  - source: .
    dest: /app

hostnames:
  - myproject.local
~~~`,
	}

	projectFileInvalidIssue = &Issue{
		id: ProjectFileInvalidId,
		mdMsg: `
# Failed to read the lxdock file!

Your project file contains syntax errors or invalid configuration.

## Common issues:
- Invalid YAML (bad indentation, missing colons, tabs)
- Unknown keys (typos like ` + "`imgae`" + `)
- Missing required keys (` + "`name`" + ` for the project, ` + "`image`" + ` per container)
- A provisioning step without a known ` + "`type`" + `

## Things you can try:
- Check the error message above for the offending key
- Validate the merged configuration:
~~~
$ lxdock config
~~~`,
	}

	lxdConnectionFailedIssue = &Issue{
		id: LXDConnectionFailedId,
		mdMsg: `
# Can't reach the LXD daemon!

lxdock talks to LXD over its local unix socket, and the connection failed.

## Things you can try:
- Check that LXD is installed and running:
~~~
$ lxc info
~~~

- Make sure your user is in the lxd group:
~~~
$ sudo usermod -aG lxd $USER
$ newgrp lxd
~~~

- If LXD was installed via snap, the socket lives under
  /var/snap/lxd/common/lxd; set ` + "`lxd_socket`" + ` in your lxdock config
  if autodetection fails.`,
	}

	containerNotCreatedIssue = &Issue{
		id: ContainerNotCreatedId,
		mdMsg: `
# The container is not created!

This operation needs an existing container.

## Things you can try:
- Create and start it first:
~~~
$ lxdock up
~~~`,
	}

	containerNotRunningIssue = &Issue{
		id: ContainerNotRunningId,
		mdMsg: `
# The container is not running!

This operation needs a running container.

## Things you can try:
- Start it first:
~~~
$ lxdock up
~~~

- Check what state it is in:
~~~
$ lxdock status
~~~`,
	}

	containerOperationFailedIssue = &Issue{
		id: ContainerOperationFailedId,
		mdMsg: `
# Container operation failed!

LXD reported an error while acting on the container.

## Things you can try:
- Re-run with verbose output for the full error chain:
~~~
$ lxdock --verbose up
~~~

- Inspect the instance directly:
~~~
$ lxc info <instance-name> --show-log
~~~

- If the instance is wedged, destroy and recreate it:
~~~
$ lxdock destroy && lxdock up
~~~`,
	}

	provisionerToolMissingIssue = &Issue{
		id: ProvisionerToolMissingId,
		mdMsg: `
# Provisioning tool not found!

A provisioning step needs a tool that is not installed on your host.

## Required tools per provisioner:
- **ansible**: ansible-playbook
- **shell** (side: host): the script's interpreter
- **puppet**: puppet must be installed in the guest

## Things you can try:
- Install the missing tool and make sure it is in your PATH
- Remove the provisioning step from your lxdock file if unneeded`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load your lxdock configuration!

The user-level config file could not be read or did not validate.

## Config location:
- Linux: ~/.config/lxdock/config.cue
- macOS: ~/Library/Application Support/lxdock/config.cue

## Things you can try:
- Check the CUE syntax of the file
- Remove the file to fall back to defaults`,
	}

	etcHostsNotWritableIssue = &Issue{
		id: EtcHostsNotWritableId,
		mdMsg: `
# Can't update /etc/hosts!

Your project publishes hostnames, which means editing /etc/hosts, and the
file is not writable by your user.

## Things you can try:
- Re-run the command with sudo when prompted
- Drop the ` + "`hostnames`" + ` key from your lxdock file and use the
  container IP directly (shown by ` + "`lxdock status`" + `)`,
	}

	issues = map[Id]*Issue{
		projectFileNotFoundIssue.Id():      projectFileNotFoundIssue,
		projectFileInvalidIssue.Id():       projectFileInvalidIssue,
		lxdConnectionFailedIssue.Id():      lxdConnectionFailedIssue,
		containerNotCreatedIssue.Id():      containerNotCreatedIssue,
		containerNotRunningIssue.Id():      containerNotRunningIssue,
		containerOperationFailedIssue.Id(): containerOperationFailedIssue,
		provisionerToolMissingIssue.Id():   provisionerToolMissingIssue,
		configLoadFailedIssue.Id():         configLoadFailedIssue,
		etcHostsNotWritableIssue.Id():      etcHostsNotWritableIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
