package keywords

import (
	"iter"
	"strings"

	"github.com/specialistvlad/qccodec/internal/qcerr"
)

// Entry is one keyword and its value.
type Entry struct {
	Key   string
	Value Value
}

// Pair builds an Entry.
func Pair(key string, v Value) Entry { return Entry{Key: key, Value: v} }

// Map is an insertion-ordered keyword mapping. The zero value is empty and
// ready to use.
type Map struct {
	entries []Entry
}

// NewMap builds a Map from entries, in order. A repeated key replaces the
// earlier value in place.
func NewMap(entries ...Entry) Map {
	var m Map
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

// Set stores v under key. An existing entry with exactly the same key keeps
// its position; otherwise the entry is appended. Keys that differ only in
// case are distinct entries here and are reported by CheckDuplicates.
func (m *Map) Set(key string, v Value) {
	for i := range m.entries {
		if m.entries[i].Key == key {
			m.entries[i].Value = v
			return
		}
	}
	m.entries = append(m.entries, Entry{Key: key, Value: v})
}

// Get returns the value stored under exactly key.
func (m Map) Get(key string) (Value, bool) {
	for _, e := range m.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Lookup finds key case-insensitively and returns the key as stored, its value
// and true. When key is absent it returns key itself, the zero Value and false,
// so callers can use the result as the name to emit either way.
func (m Map) Lookup(key string) (string, Value, bool) {
	for _, e := range m.entries {
		if strings.EqualFold(e.Key, key) {
			return e.Key, e.Value, true
		}
	}
	return key, Value{}, false
}

// Has reports whether key is present, ignoring case.
func (m Map) Has(key string) bool {
	_, _, ok := m.Lookup(key)
	return ok
}

// Len returns the number of entries.
func (m Map) Len() int { return len(m.entries) }

// Keys returns the keys in insertion order.
func (m Map) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the entries in insertion order.
func (m Map) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// All iterates over the entries in insertion order.
func (m Map) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, e := range m.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Clone returns a deep copy of m.
func (m Map) Clone() Map {
	if m.entries == nil {
		return Map{}
	}
	out := Map{entries: make([]Entry, len(m.entries))}
	for i, e := range m.entries {
		if e.Value.kind == KindBlock {
			e.Value.block = e.Value.block.Clone()
		}
		out.entries[i] = e
	}
	return out
}

// Equal reports whether both maps hold equal entries in the same order.
func (m Map) Equal(o Map) bool {
	if len(m.entries) != len(o.entries) {
		return false
	}
	for i := range m.entries {
		if m.entries[i].Key != o.entries[i].Key || !m.entries[i].Value.Equal(o.entries[i].Value) {
			return false
		}
	}
	return true
}

// CheckDuplicates fails when two keys, at this level or inside any block,
// are equal ignoring case. Which one a caseless lookup should pick is
// ambiguous, so this is a caller error.
func (m Map) CheckDuplicates() error {
	seen := make(map[string]string, len(m.entries))
	for _, e := range m.entries {
		folded := strings.ToLower(e.Key)
		if prev, ok := seen[folded]; ok {
			return qcerr.Encoderf("keywords %q and %q differ only in case", prev, e.Key)
		}
		seen[folded] = e.Key
		if e.Value.kind == KindBlock {
			if err := e.Value.block.CheckDuplicates(); err != nil {
				return err
			}
		}
	}
	return nil
}
