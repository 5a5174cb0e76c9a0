// SPDX-License-Identifier: MPL-2.0

package lxdockfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "bad project name",
			data:    "name: -leading-dash\nimage: ubuntu/jammy\n",
			wantErr: "project name",
		},
		{
			name: "duplicate container names",
			data: `
name: p
image: ubuntu/jammy
containers:
  - name: web
  - name: web
`,
			wantErr: `container "web" is defined more than once`,
		},
		{
			name:    "missing image",
			data:    "name: p\nhostnames: [p.local]\n",
			wantErr: `missing required key "image"`,
		},
		{
			name:    "bad mode",
			data:    "name: p\nimage: ubuntu/jammy\nmode: fetch\n",
			wantErr: `mode must be "pull" or "local"`,
		},
		{
			name:    "bad protocol",
			data:    "name: p\nimage: ubuntu/jammy\nprotocol: http\n",
			wantErr: `protocol must be "simplestreams" or "lxd"`,
		},
		{
			name: "share without dest",
			data: `
name: p
image: ubuntu/jammy
shares:
  - source: ./src
`,
			wantErr: `both "source" and "dest" are required`,
		},
		{
			name: "share with relative dest",
			data: `
name: p
image: ubuntu/jammy
shares:
  - source: ./src
    dest: app
`,
			wantErr: "must be an absolute guest path",
		},
		{
			name: "user without name",
			data: `
name: p
image: ubuntu/jammy
users:
  - home: /opt/someone
`,
			wantErr: `users[0]: missing required key "name"`,
		},
		{
			name: "ansible without playbook",
			data: `
name: p
image: ubuntu/jammy
provisioning:
  - type: ansible
`,
			wantErr: `requires "playbook"`,
		},
		{
			name: "shell with script and inline",
			data: `
name: p
image: ubuntu/jammy
provisioning:
  - type: shell
    script: ./do.sh
    inline: echo hi
`,
			wantErr: `exactly one of "script" or "inline"`,
		},
		{
			name: "unknown provisioner",
			data: `
name: p
image: ubuntu/jammy
provisioning:
  - type: chef
`,
			wantErr: `unknown provisioner type "chef"`,
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

func TestValidate_ShareHostACLDefault(t *testing.T) {
	data := []byte(`
name: p
image: ubuntu/jammy
shares:
  - source: ./src
    dest: /app
  - source: ./data
    dest: /data
    set_host_acl: false
`)
	p, err := Parse(data, "/work/p/.lxdock.yml")
	require.NoError(t, err)

	shares := p.Containers[0].Shares
	require.Len(t, shares, 2)
	assert.True(t, shares[0].HostACL())
	assert.False(t, shares[1].HostACL())
}
