// SPDX-License-Identifier: MPL-2.0

// Package lxdockfile defines the schema of the .lxdock.yml project file and
// provides discovery, parsing and validation for it.
//
// A project file declares a project name plus one or more containers. Any
// container setting (image, shares, users, provisioning, ...) may be declared
// at the top level of the file, in which case it acts as a default inherited
// by every container in the file. Settings declared on a container entry
// replace the project-level value wholesale; maps and lists are not deep
// merged.
package lxdockfile
