// SPDX-License-Identifier: MPL-2.0

package lxdockfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Load reads, parses and validates the project file at path.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	return Parse(data, abs)
}

// Parse parses and validates the raw project file contents. The path is used
// to derive the project home directory and to contextualize errors.
func Parse(data []byte, path string) (*Project, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: %s: file is empty", ErrInvalid, path)
	}

	name, _ := raw["name"].(string)
	if name == "" {
		return nil, fmt.Errorf("%w: %s: missing required key \"name\"", ErrInvalid, path)
	}

	defaults := make(map[string]any, len(raw))
	for k, v := range raw {
		if k == "name" || k == "containers" {
			continue
		}
		defaults[k] = v
	}

	project := &Project{
		Name:    name,
		Homedir: filepath.Dir(path),
		Path:    path,
	}

	entries, declared := raw["containers"]
	if !declared {
		// A file without a containers list describes a single container.
		c, err := decodeContainer(defaults, path, "")
		if err != nil {
			return nil, err
		}
		if c.Name == "" {
			c.Name = DefaultContainerName
		}
		project.Containers = []Container{*c}
	} else {
		list, ok := entries.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s: \"containers\" must be a list", ErrInvalid, path)
		}
		for i, entry := range list {
			overrides, ok := entry.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: %s: containers[%d] must be a mapping", ErrInvalid, path, i)
			}
			merged := mergeSettings(defaults, overrides)
			c, err := decodeContainer(merged, path, fmt.Sprintf("containers[%d]", i))
			if err != nil {
				return nil, err
			}
			project.Containers = append(project.Containers, *c)
		}
	}

	if err := validate(project); err != nil {
		return nil, err
	}
	return project, nil
}

// mergeSettings overlays per-container overrides on the project defaults.
// Values are replaced wholesale; maps and lists are never deep merged.
func mergeSettings(defaults, overrides map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// decodeContainer decodes one merged settings map into a Container with
// strict key checking, so typos in the project file surface as errors.
func decodeContainer(settings map[string]any, path, where string) (*Container, error) {
	settings = stringifyScalarMaps(settings)

	// Round-trip through YAML so the typed decoder performs coercion and
	// unknown-key detection in one place.
	encoded, err := yaml.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s: %v", ErrInvalid, path, where, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(encoded))
	dec.KnownFields(true)

	var c Container
	if err := dec.Decode(&c); err != nil {
		if where == "" {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
		}
		return nil, fmt.Errorf("%w: %s: %s: %v", ErrInvalid, path, where, err)
	}
	return &c, nil
}

// stringifyScalarMaps renders environment and lxc_config values as strings.
// The file may use bare ints or bools there (YAML has no reason to quote
// them) but both maps are passed to LXD as string config.
func stringifyScalarMaps(settings map[string]any) map[string]any {
	out := make(map[string]any, len(settings))
	for k, v := range settings {
		out[k] = v
	}
	for _, key := range []string{"environment", "lxc_config"} {
		m, ok := out[key].(map[string]any)
		if !ok {
			continue
		}
		str := make(map[string]string, len(m))
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			str[k] = fmt.Sprint(m[k])
		}
		out[key] = str
	}
	return out
}
