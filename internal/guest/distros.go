// SPDX-License-Identifier: MPL-2.0

package guest

// genericProfile is used when /etc/os-release names a distribution the
// registry does not know. It can run commands but not install packages.
var genericProfile = profile{id: "generic"}

// profiles maps /etc/os-release ID values to distribution adapters.
var profiles = map[string]profile{
	"alpine": {
		id:         "alpine",
		installCmd: []string{"apk", "add"},
		refreshCmd: []string{"apk", "update"},
		barebones:  []string{"openssh", "python3"},
		users:      adduser,
	},
	"arch": {
		id:         "arch",
		installCmd: []string{"pacman", "-S", "--noconfirm"},
		refreshCmd: []string{"pacman", "-Sy"},
		barebones:  []string{"openssh", "python"},
	},
	"centos": {
		id:         "centos",
		installCmd: []string{"yum", "-y", "install"},
		barebones:  []string{"openssh-server", "python3"},
	},
	"debian": {
		id:         "debian",
		installCmd: []string{"apt-get", "install", "-y"},
		refreshCmd: []string{"apt-get", "update"},
		barebones:  []string{"apt-utils", "aptitude", "openssh-server", "python3"},
	},
	"fedora": {
		id:         "fedora",
		installCmd: []string{"dnf", "-y", "install"},
		barebones:  []string{"openssh-server", "python3"},
	},
	"gentoo": {
		id:         "gentoo",
		installCmd: []string{"emerge"},
		barebones:  []string{"net-misc/openssh", "dev-lang/python"},
	},
	"opensuse": {
		id:         "opensuse",
		installCmd: []string{"zypper", "--non-interactive", "install"},
		barebones:  []string{"openssh", "python3"},
	},
	"ol": {
		id:         "ol",
		installCmd: []string{"yum", "-y", "install"},
		barebones:  []string{"openssh-server", "python3"},
	},
	"ubuntu": {
		id:         "ubuntu",
		installCmd: []string{"apt-get", "install", "-y"},
		refreshCmd: []string{"apt-get", "update"},
		barebones:  []string{"apt-utils", "aptitude", "openssh-server", "python3"},
	},
}
