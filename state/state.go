// Package state turns the group configuration into a shareable fragment
// string and back, and persists it without blocking the frame loop.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/pthm-cable/flowtrails/config"
)

// ErrEmptyFragment is returned when there is no state to decode.
var ErrEmptyFragment = errors.New("state: empty fragment")

// Encode serializes groups as percent-encoded JSON suitable for a URL fragment.
func Encode(groups *config.GroupSet) (string, error) {
	data, err := json.Marshal(groups)
	if err != nil {
		return "", fmt.Errorf("encoding groups: %w", err)
	}
	return escape(string(data)), nil
}

// Decode parses a fragment produced by Encode. Anything up to and including
// a leading '#' (a full URL, for example) is ignored.
func Decode(fragment string) (*config.GroupSet, error) {
	if i := strings.IndexByte(fragment, '#'); i >= 0 {
		fragment = fragment[i+1:]
	}
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, ErrEmptyFragment
	}

	raw, err := url.PathUnescape(fragment)
	if err != nil {
		return nil, fmt.Errorf("unescaping fragment: %w", err)
	}

	groups := config.NewGroupSet()
	if err := groups.UnmarshalJSON([]byte(raw)); err != nil {
		return nil, fmt.Errorf("decoding groups: %w", err)
	}
	return groups, nil
}

// DecodeOrDefault returns the decoded groups, or the default set and the
// decode error when the fragment is unusable.
func DecodeOrDefault(fragment string) (*config.GroupSet, error) {
	groups, err := Decode(fragment)
	if err != nil {
		return config.DefaultGroupSet(), err
	}
	return groups, nil
}

// escape percent-encodes everything except the unreserved characters
// left alone by encodeURIComponent.
func escape(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s) * 2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
