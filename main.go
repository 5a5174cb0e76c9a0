// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/jchampion/lxdock/cmd/lxdock"

func main() {
	cmd.Execute()
}
