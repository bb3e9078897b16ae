package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/toolkit/pkg/errors"
	"github.com/arthur-debert/toolkit/pkg/logging"
	"github.com/arthur-debert/toolkit/pkg/types"
)

// State is the persisted record of the previous run plus selection
// overrides.
type State struct {
	// Installed is the active set of the last run, sorted
	Installed []string

	// Selected holds explicit overrides. Absent means unset.
	Selected map[string]bool

	// Links is the LinkMap of the last run
	Links types.LinkMap

	// BuiltAt is when the last run was recorded. Zero if never.
	BuiltAt time.Time
}

// document is the on-disk layout. A null selected entry is read as unset.
type document struct {
	Installed []string         `yaml:"installed"`
	Selected  map[string]*bool `yaml:"selected"`
	Links     types.LinkMap    `yaml:"links"`
	BuiltAt   *time.Time       `yaml:"built_at,omitempty"`
}

// New returns an empty state.
func New() *State {
	return &State{
		Installed: []string{},
		Selected:  make(map[string]bool),
		Links:     make(types.LinkMap),
	}
}

// Load reads the state file at path. A missing file yields an empty state.
func Load(path string) (*State, error) {
	logger := logging.GetLogger("state")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("No state file, starting empty")
			return New(), nil
		}
		return nil, errors.Wrap(err, errors.ErrStateLoad, "cannot read state file").
			WithDetail("path", path)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrStateLoad, "cannot parse state file").
			WithDetail("path", path)
	}

	s := New()
	if doc.Installed != nil {
		s.Installed = append(s.Installed, doc.Installed...)
		sort.Strings(s.Installed)
	}
	for name, value := range doc.Selected {
		if value != nil {
			s.Selected[name] = *value
		}
	}
	for p, target := range doc.Links {
		s.Links[p] = target
	}
	if doc.BuiltAt != nil {
		s.BuiltAt = *doc.BuiltAt
	}

	logger.Debug().
		Str("path", path).
		Int("installed", len(s.Installed)).
		Int("links", len(s.Links)).
		Msg("Loaded state")
	return s, nil
}

// Save writes the state to path through a temporary file and a rename,
// creating the parent directory if needed.
func (s *State) Save(path string) error {
	doc := document{
		Installed: s.Installed,
		Selected:  make(map[string]*bool, len(s.Selected)),
		Links:     s.Links,
	}
	if doc.Installed == nil {
		doc.Installed = []string{}
	}
	if !s.BuiltAt.IsZero() {
		built := s.BuiltAt.UTC()
		doc.BuiltAt = &built
	}
	if doc.Links == nil {
		doc.Links = types.LinkMap{}
	}
	for name, value := range s.Selected {
		v := value
		doc.Selected[name] = &v
	}

	body, err := yaml.Marshal(&doc)
	if err != nil {
		return errors.Wrap(err, errors.ErrStateSave, "cannot encode state")
	}
	header := fmt.Sprintf("# toolkit state written %s\n# vim: ft=yaml\n", time.Now().Format(time.RFC3339))
	data := append([]byte(header), body...)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrStateSave, "cannot create state directory").
			WithDetail("path", path)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrStateSave, "cannot write state file").
			WithDetail("path", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, errors.ErrStateSave, "cannot replace state file").
			WithDetail("path", path)
	}

	logger := logging.GetLogger("state")
	logger.Debug().Str("path", path).Msg("Saved state")
	return nil
}

// Override returns the selection override for name and whether one is set.
func (s *State) Override(name string) (value, ok bool) {
	value, ok = s.Selected[name]
	return value, ok
}

// SetOverride records an explicit selection for name.
func (s *State) SetOverride(name string, value bool) {
	if s.Selected == nil {
		s.Selected = make(map[string]bool)
	}
	s.Selected[name] = value
}

// ClearOverride removes any selection for name. It reports whether one was
// set.
func (s *State) ClearOverride(name string) bool {
	_, ok := s.Selected[name]
	delete(s.Selected, name)
	return ok
}

// IsInstalled reports whether name was active on the last run.
func (s *State) IsInstalled(name string) bool {
	i := sort.SearchStrings(s.Installed, name)
	return i < len(s.Installed) && s.Installed[i] == name
}

// Record stores the outcome of a run.
func (s *State) Record(active []string, links types.LinkMap) {
	s.Installed = append([]string{}, active...)
	sort.Strings(s.Installed)
	s.Links = links.Clone()
	s.BuiltAt = time.Now().Truncate(time.Second)
}
