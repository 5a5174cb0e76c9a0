// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCUEPath is the sentinel error wrapped by CUEPath.Validate.
var ErrInvalidCUEPath = errors.New("invalid CUE path")

// CUEPath is a JSON-path-style reference into a CUE document, as produced by
// FormatError (e.g., "containers[0].image").
type CUEPath string

// Validate checks that the path is non-blank.
func (p CUEPath) Validate() error {
	if strings.TrimSpace(string(p)) == "" {
		return fmt.Errorf("%w: path must not be blank", ErrInvalidCUEPath)
	}
	return nil
}

// String returns the path as a plain string.
func (p CUEPath) String() string {
	return string(p)
}
