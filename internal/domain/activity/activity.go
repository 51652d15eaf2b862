// Package activity contains the extracurricular activity model and the
// built-in seed catalog.
package activity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidActivity is returned by Validate for malformed records.
var ErrInvalidActivity = errors.New("invalid activity")

// Activity is a named extracurricular offering.
// Name is the catalog key and is not part of the serialized record.
type Activity struct {
	Name            string   `json:"-" koanf:"name"`
	Description     string   `json:"description" koanf:"description"`
	Schedule        string   `json:"schedule" koanf:"schedule"`
	MaxParticipants int      `json:"max_participants" koanf:"max_participants"`
	Participants    []string `json:"participants" koanf:"participants"`
}

// Clone returns a deep copy. Participants is never nil on the copy so it
// always serializes as an array.
func (a Activity) Clone() Activity {
	c := a
	c.Participants = make([]string, len(a.Participants))
	copy(c.Participants, a.Participants)
	return c
}

// HasParticipant reports whether email is registered. Comparison is exact.
func (a Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// SpotsLeft is the advisory remaining capacity. It is informational only and
// can be negative: capacity is never enforced.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// Validate checks a seed record.
func (a Activity) Validate() error {
	switch {
	case strings.TrimSpace(a.Name) == "":
		return fmt.Errorf("%w: missing name", ErrInvalidActivity)
	case a.MaxParticipants <= 0:
		return fmt.Errorf("%w: %q: max_participants must be positive", ErrInvalidActivity, a.Name)
	}
	seen := make(map[string]struct{}, len(a.Participants))
	for _, p := range a.Participants {
		if _, dup := seen[p]; dup {
			return fmt.Errorf("%w: %q: duplicate participant %q", ErrInvalidActivity, a.Name, p)
		}
		seen[p] = struct{}{}
	}
	return nil
}

// Catalog is an ordered set of activities. It marshals to a JSON object keyed
// by activity name, keys in slice order.
type Catalog []Activity

// Names returns activity names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, a := range c {
		names[i] = a.Name
	}
	return names
}

// Find returns the activity with the given name.
func (c Catalog) Find(name string) (Activity, bool) {
	for _, a := range c {
		if a.Name == name {
			return a, true
		}
	}
	return Activity{}, false
}

// TotalParticipants sums participants over all activities.
func (c Catalog) TotalParticipants() int {
	n := 0
	for _, a := range c {
		n += len(a.Participants)
	}
	return n
}

// MarshalJSON writes the catalog as an object, preserving order.
func (c Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return nil, err
		}
		if a.Participants == nil {
			a.Participants = []string{}
		}
		val, err := json.Marshal(a)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keyed by activity name. Key order is kept.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("catalog: expected object, got %v", tok)
	}
	out := Catalog{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("catalog: expected key, got %v", tok)
		}
		var a Activity
		if err := dec.Decode(&a); err != nil {
			return fmt.Errorf("catalog: %q: %w", name, err)
		}
		a.Name = name
		out = append(out, a)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = out
	return nil
}
