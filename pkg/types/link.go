package types

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// LinkTarget is the value attached to a destination path. It is either a
// directory anchor (the path must exist as a directory) or a file link whose
// Target is the path the symlink must point at.
//
// Inside a Package, Target is relative to the package source. Inside a
// LinkMap, Target is relative to the package catalog root.
type LinkTarget struct {
	Anchor bool
	Target string
}

// DirectoryAnchor returns the marker for "ensure this directory exists".
func DirectoryAnchor() LinkTarget {
	return LinkTarget{Anchor: true}
}

// FileLink returns a link target pointing at path.
func FileLink(path string) LinkTarget {
	return LinkTarget{Target: path}
}

// IsDirectory reports whether the target is a directory anchor.
func (t LinkTarget) IsDirectory() bool {
	return t.Anchor
}

func (t LinkTarget) String() string {
	if t.Anchor {
		return "<dir>"
	}
	return t.Target
}

// MarshalYAML encodes anchors as `true` and links as their target string,
// the layout used by the persisted state file.
func (t LinkTarget) MarshalYAML() (interface{}, error) {
	if t.Anchor {
		return true, nil
	}
	return t.Target, nil
}

// UnmarshalYAML accepts `true` or a non-empty string.
func (t *LinkTarget) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: link target must be a scalar", value.Line)
	}
	switch value.Tag {
	case "!!bool":
		var b bool
		if err := value.Decode(&b); err != nil {
			return err
		}
		if !b {
			return fmt.Errorf("line %d: link target cannot be false", value.Line)
		}
		*t = DirectoryAnchor()
	case "!!str":
		if value.Value == "" {
			return fmt.Errorf("line %d: link target cannot be empty", value.Line)
		}
		*t = FileLink(value.Value)
	default:
		return fmt.Errorf("line %d: unsupported link target %q", value.Line, value.Value)
	}
	return nil
}

// MarshalJSON mirrors the YAML encoding.
func (t LinkTarget) MarshalJSON() ([]byte, error) {
	if t.Anchor {
		return []byte("true"), nil
	}
	return json.Marshal(t.Target)
}

// UnmarshalJSON mirrors UnmarshalYAML.
func (t *LinkTarget) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		if !v {
			return fmt.Errorf("link target cannot be false")
		}
		*t = DirectoryAnchor()
	case string:
		if v == "" {
			return fmt.Errorf("link target cannot be empty")
		}
		*t = FileLink(v)
	default:
		return fmt.Errorf("unsupported link target %s", string(data))
	}
	return nil
}

// LinkMap maps mount-relative destination paths to what they must be.
type LinkMap map[string]LinkTarget

// SortedPaths returns the map keys in ascending order.
func (m LinkMap) SortedPaths() []string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Clone returns a shallow copy of the map.
func (m LinkMap) Clone() LinkMap {
	out := make(LinkMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
