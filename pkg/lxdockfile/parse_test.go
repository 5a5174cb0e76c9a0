// SPDX-License-Identifier: MPL-2.0

package lxdockfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleContainerFile(t *testing.T) {
	data := []byte(`
name: myproject
image: ubuntu/jammy
hostnames:
  - myproject.local
`)
	p, err := Parse(data, "/work/myproject/.lxdock.yml")
	require.NoError(t, err)

	assert.Equal(t, "myproject", p.Name)
	assert.Equal(t, "/work/myproject", p.Homedir)
	require.Len(t, p.Containers, 1)

	c := p.Containers[0]
	assert.Equal(t, DefaultContainerName, c.Name)
	assert.Equal(t, "ubuntu/jammy", c.Image)
	assert.Equal(t, []string{"myproject.local"}, c.Hostnames)
	assert.Equal(t, ModePull, c.EffectiveMode())
	assert.Equal(t, ProtocolSimpleStreams, c.EffectiveProtocol())
	assert.Equal(t, DefaultImageServer, c.EffectiveServer())
}

func TestParse_ContainerInheritance(t *testing.T) {
	data := []byte(`
name: myproject
image: ubuntu/jammy
privileged: true
environment:
  STAGE: dev
containers:
  - name: web
    hostnames: [web.local]
  - name: db
    image: alpine/3.19
    privileged: false
    environment:
      STAGE: db
`)
	p, err := Parse(data, "/work/p/.lxdock.yml")
	require.NoError(t, err)
	require.Len(t, p.Containers, 2)

	web, err := p.Get("web")
	require.NoError(t, err)
	assert.Equal(t, "ubuntu/jammy", web.Image)
	assert.True(t, web.Privileged)
	assert.Equal(t, []string{"web.local"}, web.Hostnames)
	assert.Equal(t, map[string]string{"STAGE": "dev"}, web.Environment)

	db, err := p.Get("db")
	require.NoError(t, err)
	assert.Equal(t, "alpine/3.19", db.Image)
	assert.False(t, db.Privileged)
	// Maps are replaced, not merged.
	assert.Equal(t, map[string]string{"STAGE": "db"}, db.Environment)
}

func TestParse_EnvironmentScalarsAreStringified(t *testing.T) {
	data := []byte(`
name: p
image: ubuntu/jammy
environment:
  PORT: 8080
  DEBUG: true
lxc_config:
  limits.cpu: 2
`)
	p, err := Parse(data, "/work/p/.lxdock.yml")
	require.NoError(t, err)

	c := p.Containers[0]
	assert.Equal(t, "8080", c.Environment["PORT"])
	assert.Equal(t, "true", c.Environment["DEBUG"])
	assert.Equal(t, "2", c.LXCConfig["limits.cpu"])
}

func TestParse_Provisioning(t *testing.T) {
	data := []byte(`
name: p
image: debian/bookworm
provisioning:
  - type: ansible
    playbook: deploy/site.yml
    lxd_transport: true
    vars:
      ansible_python_interpreter: /usr/bin/python2
  - type: shell
    inline: "echo hello"
`)
	p, err := Parse(data, "/work/p/.lxdock.yml")
	require.NoError(t, err)

	steps := p.Containers[0].Provisioning
	require.Len(t, steps, 2)
	assert.Equal(t, ProvisionerAnsible, steps[0].Type)
	assert.Equal(t, "deploy/site.yml", steps[0].Playbook)
	assert.True(t, steps[0].LXDTransport)
	assert.Equal(t, "/usr/bin/python2", steps[0].Vars["ansible_python_interpreter"])
	assert.Equal(t, "echo hello", steps[1].Inline)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "empty file",
			data:    "",
			wantErr: "file is empty",
		},
		{
			name:    "missing project name",
			data:    "image: ubuntu/jammy",
			wantErr: `missing required key "name"`,
		},
		{
			name: "unknown key",
			data: `
name: p
image: ubuntu/jammy
imgae_server: oops
`,
			wantErr: "imgae_server",
		},
		{
			name: "containers not a list",
			data: `
name: p
containers: yes
`,
			wantErr: `"containers" must be a list`,
		},
		{
			name: "container entry not a mapping",
			data: `
name: p
containers: [web]
`,
			wantErr: "containers[0] must be a mapping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), "/work/p/.lxdock.yml")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr),
				"error %q should contain %q", err, tt.wantErr)
		})
	}
}

func TestProject_Select(t *testing.T) {
	p := &Project{
		Path: "/work/p/.lxdock.yml",
		Containers: []Container{
			{Name: "web"}, {Name: "db"}, {Name: "cache"},
		},
	}

	all, err := p.Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	some, err := p.Select([]string{"db", "web"})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "db", some[0].Name)
	assert.Equal(t, "web", some[1].Name)

	_, err = p.Select([]string{"missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"missing" is not defined`)
}
