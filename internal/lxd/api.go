// SPDX-License-Identifier: MPL-2.0

package lxd

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	lxdclient "github.com/canonical/lxd/client"
	"github.com/canonical/lxd/shared/api"
)

// apiClient implements Client against a live LXD daemon.
type apiClient struct {
	server lxdclient.InstanceServer
}

func (c *apiClient) GetInstance(name string) (*api.Instance, error) {
	instance, _, err := c.server.GetInstance(name)
	if err != nil {
		if api.StatusErrorCheck(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	return instance, nil
}

func (c *apiClient) CreateInstance(spec InstanceSpec) error {
	source, image, err := c.resolveImage(spec.Image)
	if err != nil {
		return fmt.Errorf("resolving image %q: %w", spec.Image.Alias, err)
	}

	req := api.InstancesPost{
		Name: spec.Name,
		Type: api.InstanceTypeContainer,
		InstancePut: api.InstancePut{
			Config:   spec.Config,
			Profiles: spec.Profiles,
			Devices:  spec.Devices,
		},
	}

	op, err := c.server.CreateInstanceFromImage(source, *image, req)
	if err != nil {
		return err
	}
	if err := op.Wait(); err != nil {
		return err
	}
	target, err := op.GetTarget()
	if err != nil {
		return err
	}
	if target.StatusCode != api.Success {
		return fmt.Errorf("instance creation failed: %s", target.Err)
	}
	return nil
}

// resolveImage finds the API image behind an alias, either on a remote image
// server or through a local alias.
func (c *apiClient) resolveImage(img ImageSpec) (lxdclient.ImageServer, *api.Image, error) {
	var source lxdclient.ImageServer = c.server
	if img.Server != "" {
		var err error
		switch img.Protocol {
		case "lxd":
			source, err = lxdclient.ConnectPublicLXD(img.Server, nil)
		default:
			source, err = lxdclient.ConnectSimpleStreams(img.Server, nil)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to image server %s: %w", img.Server, err)
		}
	}

	alias, _, err := source.GetImageAlias(img.Alias)
	if err != nil {
		return nil, nil, err
	}
	image, _, err := source.GetImage(alias.Target)
	if err != nil {
		return nil, nil, err
	}
	return source, image, nil
}

func (c *apiClient) StartInstance(name string) error {
	return c.updateState(name, api.InstanceStatePut{
		Action:  "start",
		Timeout: -1,
	})
}

func (c *apiClient) StopInstance(name string, timeout int, force bool) error {
	return c.updateState(name, api.InstanceStatePut{
		Action:  "stop",
		Timeout: timeout,
		Force:   force,
	})
}

func (c *apiClient) updateState(name string, req api.InstanceStatePut) error {
	op, err := c.server.UpdateInstanceState(name, req, "")
	if err != nil {
		return err
	}
	return op.Wait()
}

func (c *apiClient) DeleteInstance(name string) error {
	op, err := c.server.DeleteInstance(name)
	if err != nil {
		return err
	}
	return op.Wait()
}

func (c *apiClient) GetInstanceState(name string) (*api.InstanceState, error) {
	state, _, err := c.server.GetInstanceState(name)
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (c *apiClient) UpdateInstance(name string, put api.InstancePut) error {
	op, err := c.server.UpdateInstance(name, put, "")
	if err != nil {
		return err
	}
	return op.Wait()
}

func (c *apiClient) Exec(name string, command []string, opts ExecOptions) (int, error) {
	req := api.InstanceExecPost{
		Command:     command,
		Environment: opts.Env,
		WaitForWS:   true,
	}

	var stdin io.ReadCloser
	if opts.Stdin != nil {
		stdin = io.NopCloser(opts.Stdin)
	}
	args := lxdclient.InstanceExecArgs{
		Stdin:    stdin,
		Stdout:   nopWriteCloser{opts.Stdout},
		Stderr:   nopWriteCloser{opts.Stderr},
		DataDone: make(chan bool),
	}

	op, err := c.server.ExecInstance(name, req, &args)
	if err != nil {
		return -1, err
	}
	if err := op.Wait(); err != nil {
		return -1, err
	}
	// Output streams are serviced asynchronously; wait for them to drain.
	<-args.DataDone

	code, ok := op.Get().Metadata["return"].(float64)
	if !ok {
		return -1, fmt.Errorf("exec operation returned no exit code")
	}
	return int(code), nil
}

func (c *apiClient) PushFile(name, path string, mode int, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	return c.server.CreateInstanceFile(name, path, lxdclient.InstanceFileArgs{
		Content:   bytes.NewReader(data),
		Mode:      mode,
		Type:      "file",
		WriteMode: "overwrite",
	})
}

// nopWriteCloser adapts an io.Writer to the WriteCloser the exec API wants.
// A nil writer discards output.
type nopWriteCloser struct {
	w io.Writer
}

func (n nopWriteCloser) Write(p []byte) (int, error) {
	if n.w == nil {
		return len(p), nil
	}
	return n.w.Write(p)
}

func (n nopWriteCloser) Close() error { return nil }
