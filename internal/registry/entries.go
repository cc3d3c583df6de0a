package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
)

// Entries is a name -> Entry mapping that remembers insertion order.
// The order survives a JSON round trip, which is what ties navigation order
// to the directory read order of the indexer.
type Entries struct {
	order  []string
	byName map[string]Entry
	// aliases maps document keys that disagreed with the entry name to the
	// name the entry was stored under.
	aliases map[string]string
}

// Set inserts e, or replaces an existing entry with the same name in place.
func (m *Entries) Set(e Entry) {
	if m.byName == nil {
		m.byName = make(map[string]Entry)
	}
	if _, ok := m.byName[e.Name]; !ok {
		m.order = append(m.order, e.Name)
	}
	m.byName[e.Name] = e
}

// Get returns the entry stored under name.
func (m *Entries) Get(name string) (Entry, bool) {
	e, ok := m.byName[name]
	return e, ok
}

// Len returns the number of entries.
func (m *Entries) Len() int {
	return len(m.order)
}

// Names returns entry names in insertion order.
func (m *Entries) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Aliases returns the document keys that did not match their entry's name,
// mapped to the name the entry is stored under. Empty for indexes written by
// the indexer.
func (m *Entries) Aliases() map[string]string {
	out := make(map[string]string, len(m.aliases))
	for k, v := range m.aliases {
		out[k] = v
	}
	return out
}

// All iterates entries in insertion order.
func (m *Entries) All() iter.Seq2[string, Entry] {
	return func(yield func(string, Entry) bool) {
		for _, name := range m.order {
			if !yield(name, m.byName[name]) {
				return
			}
		}
	}
}

// MarshalJSON writes the mapping as a JSON object in insertion order.
func (m Entries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.byName[name])
		if err != nil {
			return nil, fmt.Errorf("cannot marshal entry %s: %w", name, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping the key order of the document.
func (m *Entries) UnmarshalJSON(data []byte) error {
	*m = Entries{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var e Entry
		if err := dec.Decode(&e); err != nil {
			return fmt.Errorf("entry %s: %w", key, err)
		}
		// Entries written by hand may omit name; otherwise the name field
		// wins and the key is remembered as an alias.
		if e.Name == "" {
			e.Name = key
		}
		if e.Name != key {
			if m.aliases == nil {
				m.aliases = make(map[string]string)
			}
			m.aliases[key] = e.Name
		}
		m.Set(e)
	}
	_, err = dec.Token()
	return err
}
