package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strconv"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// GroupSet maps group ids to configurations and remembers insertion
// order, which is also draw order.
type GroupSet struct {
	ids    []string
	groups map[string]*GroupConfig
}

// NewGroupSet creates an empty set.
func NewGroupSet() *GroupSet {
	return &GroupSet{groups: make(map[string]*GroupConfig)}
}

// DefaultGroupSet returns the single-group set used when no state exists.
func DefaultGroupSet() *GroupSet {
	s := NewGroupSet()
	s.Set("1", DefaultGroup())
	return s
}

// Set stores cfg under id. A new id is appended; an existing id keeps its position.
func (s *GroupSet) Set(id string, cfg *GroupConfig) {
	if s.groups == nil {
		s.groups = make(map[string]*GroupConfig)
	}
	if _, ok := s.groups[id]; !ok {
		s.ids = append(s.ids, id)
	}
	s.groups[id] = cfg
}

// Get returns the configuration for id, or nil.
func (s *GroupSet) Get(id string) *GroupConfig {
	if s == nil {
		return nil
	}
	return s.groups[id]
}

// Delete removes id. Missing ids are ignored.
func (s *GroupSet) Delete(id string) {
	if _, ok := s.groups[id]; !ok {
		return
	}
	delete(s.groups, id)
	s.ids = slices.DeleteFunc(s.ids, func(v string) bool { return v == id })
}

// IDs returns the ids in insertion order.
func (s *GroupSet) IDs() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.ids)
}

// Len returns the number of groups.
func (s *GroupSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// All yields id and configuration in insertion order.
func (s *GroupSet) All() iter.Seq2[string, *GroupConfig] {
	return func(yield func(string, *GroupConfig) bool) {
		if s == nil {
			return
		}
		for _, id := range s.ids {
			if !yield(id, s.groups[id]) {
				return
			}
		}
	}
}

// NextID returns one more than the largest numeric id, ignoring
// non-numeric ids.
func (s *GroupSet) NextID() string {
	highest := 0
	for _, id := range s.ids {
		if n, err := strconv.Atoi(id); err == nil && n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1)
}

// NextTarget cycles a group reference through "" (none) and every id in
// order. An unknown current value restarts the cycle at the first id.
func (s *GroupSet) NextTarget(current string) string {
	ids := s.IDs()
	if len(ids) == 0 {
		return ""
	}
	if current == "" {
		return ids[0]
	}
	i := slices.Index(ids, current)
	switch {
	case i < 0:
		return ids[0]
	case i == len(ids)-1:
		return ""
	default:
		return ids[i+1]
	}
}

// Clone returns a deep copy.
func (s *GroupSet) Clone() *GroupSet {
	c := NewGroupSet()
	for id, cfg := range s.All() {
		c.Set(id, cfg.Clone())
	}
	return c
}

// Equal reports whether both sets hold the same groups in the same order.
func (s *GroupSet) Equal(other *GroupSet) bool {
	if s.Len() == 0 || other.Len() == 0 {
		return s.Len() == other.Len()
	}
	if !slices.Equal(s.ids, other.ids) {
		return false
	}
	for _, id := range s.ids {
		if !reflect.DeepEqual(s.groups[id], other.groups[id]) {
			return false
		}
	}
	return true
}

// Validate checks every group.
func (s *GroupSet) Validate() error {
	for id, cfg := range s.All() {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("group %q: %w", id, err)
		}
	}
	return nil
}

// MarshalJSON encodes the set as an object whose keys keep insertion order.
func (s GroupSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range s.ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.groups[id])
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", id, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of groups in document order. Fields
// missing from a group keep their defaults. The receiver is unchanged on
// error.
func (s *GroupSet) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: malformed group set", ErrInvalidGroup)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return fmt.Errorf("%w: group set must be an object", ErrInvalidGroup)
	}

	next := NewGroupSet()
	var err error
	root.ForEach(func(key, value gjson.Result) bool {
		cfg := DefaultGroup()
		if e := json.Unmarshal([]byte(value.Raw), cfg); e != nil {
			err = fmt.Errorf("group %q: %w", key.String(), e)
			return false
		}
		next.Set(key.String(), cfg)
		return true
	})
	if err != nil {
		return err
	}

	*s = *next
	return nil
}

// MarshalYAML encodes the set as a mapping in insertion order.
func (s GroupSet) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, id := range s.ids {
		val := &yaml.Node{}
		if err := val.Encode(s.groups[id]); err != nil {
			return nil, fmt.Errorf("group %q: %w", id, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: id},
			val,
		)
	}
	return node, nil
}

// UnmarshalYAML decodes a mapping in document order, replacing the set.
func (s *GroupSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: groups must be a mapping (line %d)", ErrInvalidGroup, node.Line)
	}

	next := NewGroupSet()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		cfg := DefaultGroup()
		if err := val.Decode(cfg); err != nil {
			return fmt.Errorf("group %q: %w", key.Value, err)
		}
		next.Set(key.Value, cfg)
	}

	*s = *next
	return nil
}
