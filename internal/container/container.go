// SPDX-License-Identifier: MPL-2.0

package container

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/canonical/lxd/shared/api"
	"github.com/charmbracelet/log"

	"github.com/jchampion/lxdock/internal/guest"
	"github.com/jchampion/lxdock/internal/host"
	"github.com/jchampion/lxdock/internal/issue"
	"github.com/jchampion/lxdock/internal/lxd"
	"github.com/jchampion/lxdock/internal/network"
	"github.com/jchampion/lxdock/internal/provision"
	"github.com/jchampion/lxdock/pkg/lxdockfile"
)

// Config keys stamped on every container lxdock creates. "made" marks
// ownership, "homedir" records which project directory the container
// belongs to, and "provisioned" records that provisioning completed once.
const (
	madeKey        = "user.lxdock.made"
	homedirKey     = "user.lxdock.homedir"
	provisionedKey = "user.lxdock.provisioned"
)

// sharePrefix names the disk devices lxdock manages on a container. Devices
// outside this prefix are never touched.
const sharePrefix = "lxdockshare"

// haltTimeoutSeconds is how long a clean stop may take before it is forced.
const haltTimeoutSeconds = 30

// Status values reported for a project container.
const (
	StatusNotCreated = "not-created"
	StatusRunning    = "running"
	StatusStopped    = "stopped"
	StatusUndefined  = "undefined"
)

// Container drives the lifecycle of one container declared in a project
// file.
type Container struct {
	projectName string
	homedir     string
	cfg         lxdockfile.Container

	client lxd.Client
	host   *host.Host
	logger *log.Logger

	lxdName string
}

// New builds the lifecycle driver for one container of a project.
func New(project *lxdockfile.Project, cfg lxdockfile.Container, client lxd.Client, logger *log.Logger) *Container {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: cfg.Name})
	}
	return &Container{
		projectName: project.Name,
		homedir:     project.Homedir,
		cfg:         cfg,
		client:      client,
		host:        &host.Host{},
		logger:      logger,
		lxdName:     LXDName(project.Name, cfg.Name, project.Homedir),
	}
}

// Name returns the container's name within the project file.
func (c *Container) Name() string { return c.cfg.Name }

// LXDName returns the globally unique LXD instance name.
func (c *Container) LXDName() string { return c.lxdName }

// Status reports the container state without creating anything.
func (c *Container) Status() (string, error) {
	inst, err := c.client.GetInstance(c.lxdName)
	if errors.Is(err, lxd.ErrNotFound) {
		return StatusNotCreated, nil
	}
	if err != nil {
		return "", err
	}
	switch {
	case lxd.IsRunning(inst):
		return StatusRunning, nil
	case lxd.IsStopped(inst):
		return StatusStopped, nil
	default:
		return StatusUndefined, nil
	}
}

// IPv4 returns the container's address, or empty when it has none or is not
// created.
func (c *Container) IPv4() string {
	state, err := c.client.GetInstanceState(c.lxdName)
	if err != nil {
		return ""
	}
	return lxd.IPv4(state)
}

// Up creates the container if needed, starts it, applies the project file's
// shares, users, hostnames and environment, and provisions according to
// mode.
func (c *Container) Up(ctx context.Context, mode ProvisioningMode) error {
	inst, err := c.ensureCreated()
	if err != nil {
		return err
	}

	if lxd.IsRunning(inst) {
		c.logger.Info("Container is already running", "container", c.cfg.Name)
		return nil
	}

	c.logger.Info("Starting container...", "container", c.cfg.Name)
	if err := c.client.StartInstance(c.lxdName); err != nil {
		return issue.WrapWithContext(err, "starting container", c.cfg.Name)
	}
	if inst, err = c.client.GetInstance(c.lxdName); err != nil {
		return err
	}
	if !lxd.IsRunning(inst) {
		return issue.NewErrorContext().
			WithOperation("starting container").
			WithResource(c.cfg.Name).
			WithSuggestion("inspect the LXD log with `lxc info --show-log " + c.lxdName + "`").
			BuildError()
	}

	ip, err := network.WaitForIPv4(ctx, c.client, c.lxdName, network.DefaultIPTimeout)
	if err != nil {
		return err
	}
	if ip == "" {
		c.logger.Warn("Container is up but never got an IP address; not provisioning",
			"container", c.cfg.Name)
		return nil
	}
	c.logger.Info("Container is up!", "container", c.cfg.Name, "ip", ip)

	if err := c.publishHostnames(ip); err != nil {
		return err
	}
	if err := c.setupUsers(); err != nil {
		return err
	}
	if err := c.setupShares(inst); err != nil {
		return err
	}
	if err := c.setupEnv(); err != nil {
		return err
	}

	switch mode {
	case ProvisioningDisabled:
		return nil
	case ProvisioningEnabled:
		return c.Provision(ctx)
	default:
		if c.isProvisioned(inst) {
			c.logger.Info("Container already provisioned, not provisioning",
				"container", c.cfg.Name)
			return nil
		}
		return c.Provision(ctx)
	}
}

// Halt stops the container cleanly, forcing the stop when a clean shutdown
// fails. Hostname bindings are withdrawn first so stale entries never
// linger in /etc/hosts.
func (c *Container) Halt(ctx context.Context) error {
	inst, err := c.client.GetInstance(c.lxdName)
	if errors.Is(err, lxd.ErrNotFound) {
		c.logger.Info("Container doesn't exist, nothing to stop")
		return nil
	}
	if err != nil {
		return err
	}
	if lxd.IsStopped(inst) {
		c.logger.Info("The container is already stopped")
		return nil
	}

	if err := c.withdrawHostnames(); err != nil {
		return err
	}

	c.logger.Info("Stopping...", "container", c.cfg.Name)
	if err := c.client.StopInstance(c.lxdName, haltTimeoutSeconds, false); err != nil {
		c.logger.Warn("Can't stop the container cleanly, forcing...", "error", err)
		if err := c.client.StopInstance(c.lxdName, -1, true); err != nil {
			return issue.WrapWithContext(err, "stopping container", c.cfg.Name)
		}
	}
	return nil
}

// Destroy stops and deletes the container. A container that was never
// created is not an error.
func (c *Container) Destroy(ctx context.Context) error {
	_, err := c.client.GetInstance(c.lxdName)
	if errors.Is(err, lxd.ErrNotFound) {
		c.logger.Info("Container doesn't exist, nothing to destroy")
		return nil
	}
	if err != nil {
		return err
	}

	if err := c.Halt(ctx); err != nil {
		return err
	}

	c.logger.Info("Destroying container...", "container", c.cfg.Name)
	if err := c.client.DeleteInstance(c.lxdName); err != nil {
		return issue.WrapWithContext(err, "destroying container", c.cfg.Name)
	}
	c.logger.Info("Container destroyed", "container", c.cfg.Name)
	return nil
}

// Provision runs the project file's provisioning steps against the running
// container. A container that has never been provisioned first gets
// barebones setup: the distribution's base packages plus the host user's
// SSH key in root's authorized_keys.
func (c *Container) Provision(ctx context.Context) error {
	inst, err := c.requireRunning()
	if err != nil {
		return err
	}

	// The project file may have changed since the last up.
	if err := c.setupEnv(); err != nil {
		return err
	}

	barebones := !c.isProvisioned(inst)
	g := guest.Detect(c.client, c.lxdName)

	if barebones {
		if err := c.performBarebonesSetup(g); err != nil {
			return err
		}
	}

	provisioners, err := provision.All(c.cfg.Provisioning)
	if err != nil {
		return err
	}

	target := provision.Target{
		Homedir:  c.homedir,
		Instance: c.lxdName,
		IP:       c.IPv4(),
		Guest:    g,
	}

	if barebones {
		for _, p := range provisioners {
			c.logger.Info("Performing setup for provisioner", "provisioner", p.Name())
			if err := p.Setup(target); err != nil {
				return err
			}
		}
	}

	c.logger.Info("Provisioning container...", "container", c.cfg.Name)
	for _, p := range provisioners {
		c.logger.Info("Provisioning", "provisioner", p.Name())
		if err := p.Provision(target); err != nil {
			return err
		}
	}

	return c.setConfigKey(provisionedKey, "true")
}

// requireRunning fetches the instance and fails with an actionable error
// when it is missing or stopped.
func (c *Container) requireRunning() (*api.Instance, error) {
	inst, err := c.client.GetInstance(c.lxdName)
	if errors.Is(err, lxd.ErrNotFound) {
		return nil, issue.NewErrorContext().
			WithOperation("using container").
			WithResource(c.cfg.Name).
			WithSuggestion("create and start it with `lxdock up " + c.cfg.Name + "`").
			BuildError()
	}
	if err != nil {
		return nil, err
	}
	if !lxd.IsRunning(inst) {
		return nil, issue.NewErrorContext().
			WithOperation("using container").
			WithResource(c.cfg.Name).
			WithSuggestion("start it with `lxdock up " + c.cfg.Name + "`").
			BuildError()
	}
	return inst, nil
}

// ensureCreated fetches the instance, creating it from its image first when
// it does not exist yet.
func (c *Container) ensureCreated() (*api.Instance, error) {
	inst, err := c.client.GetInstance(c.lxdName)
	if err == nil {
		return inst, nil
	}
	if !errors.Is(err, lxd.ErrNotFound) {
		return nil, err
	}

	c.logger.Info("Creating new container from image",
		"container", c.lxdName, "image", c.cfg.Image)

	config := map[string]string{}
	for k, v := range c.cfg.LXCConfig {
		config[k] = v
	}
	config["security.privileged"] = strconv.FormatBool(c.cfg.Privileged)
	config[madeKey] = "1"
	config[homedirKey] = c.homedir

	spec := lxd.InstanceSpec{
		Name: c.lxdName,
		Image: lxd.ImageSpec{
			Alias:    c.cfg.Image,
			Server:   c.cfg.EffectiveServer(),
			Protocol: string(c.cfg.EffectiveProtocol()),
		},
		Config:   config,
		Profiles: c.cfg.Profiles,
	}
	if err := c.client.CreateInstance(spec); err != nil {
		return nil, issue.WrapWithContext(err, "creating container", c.cfg.Name)
	}
	return c.client.GetInstance(c.lxdName)
}

// isProvisioned reports whether provisioning completed on this container
// before.
func (c *Container) isProvisioned(inst *api.Instance) bool {
	return inst.Config[provisionedKey] == "true"
}

// isPrivileged reports whether the container runs without UID mapping.
func (c *Container) isPrivileged(inst *api.Instance) bool {
	return inst.Config["security.privileged"] == "true"
}

// performBarebonesSetup installs the guest's base packages and pushes the
// host user's SSH public key so SSH-based provisioners can connect as root.
func (c *Container) performBarebonesSetup(g *guest.Guest) error {
	c.logger.Info("Doing bare bones setup on the machine...")
	if err := g.InstallBarebonesPackages(); err != nil {
		return err
	}

	pubkey, err := c.host.SSHPubkey()
	if err != nil {
		return err
	}
	if pubkey == nil {
		c.logger.Warn("SSH pubkey was not found. Provisioning tools may not work correctly...")
		return nil
	}
	return g.AddSSHPubkeyToRoot(pubkey)
}

// setupEnv applies the project file's environment overrides to the instance
// config.
func (c *Container) setupEnv() error {
	if len(c.cfg.Environment) == 0 {
		return nil
	}
	return c.mutateConfig(func(config map[string]string) {
		for k, v := range c.cfg.Environment {
			config["environment."+k] = v
		}
	})
}

// setupUsers creates the accounts declared in the project file. Creation is
// idempotent on the guest side: useradd fails on an existing account, which
// is only logged.
func (c *Container) setupUsers() error {
	if len(c.cfg.Users) == 0 {
		return nil
	}
	c.logger.Info("Ensuring users are created...")
	g := guest.Detect(c.client, c.lxdName)
	for _, u := range c.cfg.Users {
		if err := g.CreateUser(u.Name, u.Home, u.Password); err != nil {
			c.logger.Debug("User creation returned an error (it may already exist)",
				"user", u.Name, "error", err)
		}
	}
	return nil
}

// setupShares rebuilds the lxdock-managed disk devices from the project
// file. Shares dropped from the file disappear from the container; ACLs are
// only granted for sources that were not already shared, so repeated ups do
// not re-run setfacl.
func (c *Container) setupShares(inst *api.Instance) error {
	existingSources := map[string]bool{}
	devices := map[string]map[string]string{}
	for name, dev := range inst.Devices {
		if strings.HasPrefix(name, sharePrefix) {
			existingSources[dev["source"]] = true
		} else {
			devices[name] = dev
		}
	}

	if len(c.cfg.Shares) == 0 {
		// Shares removed from the project file still need their stale
		// devices detached.
		if len(existingSources) == 0 {
			return nil
		}
		c.logger.Info("Removing stale shares...")
		writable := inst.Writable()
		writable.Devices = devices
		return c.client.UpdateInstance(c.lxdName, writable)
	}
	c.logger.Info("Setting up shares...")

	privileged := c.isPrivileged(inst)
	for i, share := range c.cfg.Shares {
		source := filepath.Join(c.homedir, share.Source)
		if share.HostACL() && !existingSources[source] {
			c.logger.Info("Setting host-side ACL", "path", source)
			if err := c.host.GiveCurrentUserAccess(source); err != nil {
				return err
			}
			if !privileged {
				// Unprivileged containers see host files through the UID
				// map, so the mapped root needs access too.
				if err := c.host.GiveMappedUserAccess(source, 0); err != nil {
					return err
				}
				// Same for every account the project file creates.
				for _, u := range c.cfg.Users {
					uid, err := c.guestUID(u.Name)
					if err != nil {
						c.logger.Debug("Cannot resolve guest uid, skipping ACL",
							"user", u.Name, "error", err)
						continue
					}
					if err := c.host.GiveMappedUserAccess(source, uid); err != nil {
						return err
					}
				}
			}
		}
		devices[fmt.Sprintf("%s%d", sharePrefix, i+1)] = map[string]string{
			"type":   "disk",
			"source": source,
			"path":   share.Dest,
		}
	}

	writable := inst.Writable()
	writable.Devices = devices
	return c.client.UpdateInstance(c.lxdName, writable)
}

// guestUID resolves a username to its uid inside the container.
func (c *Container) guestUID(username string) (int, error) {
	var out bytes.Buffer
	code, err := c.client.Exec(c.lxdName, []string{"id", "-u", username},
		lxd.ExecOptions{Stdout: &out})
	if err != nil {
		return 0, err
	}
	if code != 0 {
		return 0, fmt.Errorf("id -u %s exited with status %d", username, code)
	}
	return strconv.Atoi(strings.TrimSpace(out.String()))
}

// publishHostnames points the project file's hostnames at the container in
// /etc/hosts.
func (c *Container) publishHostnames(ip string) error {
	if len(c.cfg.Hostnames) == 0 {
		return nil
	}
	etchosts, err := network.OpenEtcHosts("")
	if err != nil {
		return err
	}
	for _, hostname := range c.cfg.Hostnames {
		c.logger.Info("Binding hostname", "hostname", hostname, "ip", ip)
		etchosts.EnsureBindingPresent(hostname, ip)
	}
	if etchosts.Changed() {
		c.logger.Info("Saving host bindings to /etc/hosts. sudo may be needed")
		if err := etchosts.Save(); err != nil {
			return issue.WrapWithOperation(err, "saving /etc/hosts")
		}
	}
	return nil
}

// withdrawHostnames removes the container's hostnames from /etc/hosts.
func (c *Container) withdrawHostnames() error {
	if len(c.cfg.Hostnames) == 0 {
		return nil
	}
	etchosts, err := network.OpenEtcHosts("")
	if err != nil {
		return err
	}
	for _, hostname := range c.cfg.Hostnames {
		c.logger.Info("Unbinding hostname", "hostname", hostname)
		etchosts.EnsureBindingAbsent(hostname)
	}
	if etchosts.Changed() {
		c.logger.Info("Saving host bindings to /etc/hosts. sudo may be needed")
		if err := etchosts.Save(); err != nil {
			return issue.WrapWithOperation(err, "saving /etc/hosts")
		}
	}
	return nil
}

// setConfigKey writes one instance config key.
func (c *Container) setConfigKey(key, value string) error {
	return c.mutateConfig(func(config map[string]string) {
		config[key] = value
	})
}

func (c *Container) mutateConfig(mutate func(map[string]string)) error {
	inst, err := c.client.GetInstance(c.lxdName)
	if err != nil {
		return err
	}
	writable := inst.Writable()
	if writable.Config == nil {
		writable.Config = map[string]string{}
	}
	mutate(writable.Config)
	return c.client.UpdateInstance(c.lxdName, writable)
}
