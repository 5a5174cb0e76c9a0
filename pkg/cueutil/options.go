// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize is the maximum accepted size of a user-provided CUE
// file. Large enough for any hand-written config, small enough to keep a
// corrupt or malicious file from ballooning memory.
const DefaultMaxFileSize int64 = 1 << 20 // 1 MiB

type options struct {
	filename    string
	maxFileSize int64
	concrete    bool
}

// Option configures ParseAndDecode.
type Option func(*options)

func defaultOptions() options {
	return options{
		maxFileSize: DefaultMaxFileSize,
		concrete:    false,
	}
}

// WithFilename sets the filename reported in error messages.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithMaxFileSize overrides the maximum accepted file size.
func WithMaxFileSize(size int64) Option {
	return func(o *options) {
		o.maxFileSize = size
	}
}

// WithConcrete requires all values to be concrete during validation.
// Use for files where every field must be resolvable, not just well-typed.
func WithConcrete() Option {
	return func(o *options) {
		o.concrete = true
	}
}
