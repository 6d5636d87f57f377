package model

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Value is one tag value as reported by the extractor: either a scalar
// already rendered to text, or a list of primitive JSON values.
type Value interface {
	Render() string
	matches(filter string) bool
}

// Scalar is a single textual value. Numeric and boolean values from the
// extractor are normalized to Scalar during ingestion.
type Scalar string

func (s Scalar) Render() string { return string(s) }

func (s Scalar) matches(filter string) bool {
	return strings.Contains(strings.ToLower(string(s)), filter)
}

// List is a sequence of raw JSON primitives. Elements keep their decoded
// form (json.Number for numbers) so rendering round-trips the extractor's
// own text.
type List []any

func (l List) Render() string {
	parts := make([]string, 0, len(l))
	for _, v := range l {
		parts = append(parts, jsonString(v))
	}
	return strings.Join(parts, " ")
}

// The list branch matches raw element renderings against the already
// lowercased filter text; only the scalar branch lowercases the value
// side. Long-standing behavior, kept as-is.
func (l List) matches(filter string) bool {
	for _, v := range l {
		if strings.Contains(jsonString(v), filter) {
			return true
		}
	}
	return false
}

func jsonString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func valueEqual(a, b Value) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case Scalar:
		bv, ok := b.(Scalar)
		return ok && av == bv
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !reflect.DeepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Table is the namespace a tag belongs to (exiftool's tag table), e.g.
// Exif::Main. Subgroup may be empty.
type Table struct {
	Group    string
	Subgroup string
}

func (t Table) String() string {
	if t.Subgroup == "" {
		return t.Group
	}
	return t.Group + "::" + t.Subgroup
}

// Entry is one metadata field of one file.
type Entry struct {
	ShortName string
	Name      string // human-readable label
	Instance  string // group instance prefix from the extractor key, may be empty
	ID        *uint64
	Table     Table
	Value     Value
	Num       Value // numeric rendering, nil when the extractor has none
	Index     *uint64
	// BinarySizeKB is set only for fields whose payload can be pulled
	// out with -b; its presence, not its value, gates extraction.
	BinarySizeKB *float64
}

// Key is the structural identity of an Entry, used for cross-file joins.
type Key struct {
	ShortName string
	Table     Table
}

func (e *Entry) Key() Key {
	return Key{ShortName: e.ShortName, Table: e.Table}
}

// NumOrValue returns the numeric rendering when present, the value otherwise.
func (e *Entry) NumOrValue() Value {
	if e.Num != nil {
		return e.Num
	}
	return e.Value
}

// MatchesFilter reports whether the entry matches a user-typed filter,
// case-insensitively. A filter of the form <<X>> matches only against
// the rendered table string.
func (e *Entry) MatchesFilter(text string) bool {
	f := strings.ToLower(text)
	if strings.HasPrefix(f, "<<") && strings.HasSuffix(f, ">>") && len(f) >= 4 {
		return strings.Contains(strings.ToLower(e.Table.String()), f[2:len(f)-2])
	}
	if strings.Contains(strings.ToLower(e.Name), f) ||
		strings.Contains(strings.ToLower(e.ShortName), f) {
		return true
	}
	if e.Value != nil && e.Value.matches(f) {
		return true
	}
	return e.Num != nil && e.Num.matches(f)
}

// Equal reports whether two entries carry the same data. Display name and
// numeric rendering are excluded: compare mode treats entries with equal
// values but different numeric forms as the same.
func (e *Entry) Equal(o *Entry) bool {
	return e.ShortName == o.ShortName &&
		floatPtrEqual(e.BinarySizeKB, o.BinarySizeKB) &&
		uintPtrEqual(e.ID, o.ID) &&
		e.Table == o.Table &&
		valueEqual(e.Value, o.Value) &&
		uintPtrEqual(e.Index, o.Index)
}

// Render builds the multi-line summary used for the clipboard.
func (e *Entry) Render() string {
	id := "Unknown"
	if e.ID != nil {
		id = fmt.Sprintf("%d (0x%X)", *e.ID, *e.ID)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\nShort name: %s\nTag ID: %s\nTag family: %s\nTag value: %s\nTag numerical value: %s",
		e.Name, e.ShortName, id, e.Table.String(), e.Value.Render(), e.NumOrValue().Render())
	if e.Index != nil {
		fmt.Fprintf(&b, "\nTag index: %d", *e.Index)
	}
	return b.String()
}

func uintPtrEqual(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// FileEntrySet holds all entries extracted from one input file, in
// extraction order. Display never re-sorts them.
type FileEntrySet struct {
	Path    string
	Entries []Entry
}

// ByKey indexes the entries by key. When two entries collide on key the
// later one wins; the earlier entry is dropped from the index.
func (fs *FileEntrySet) ByKey() map[Key]*Entry {
	m := make(map[Key]*Entry, len(fs.Entries))
	for i := range fs.Entries {
		m[fs.Entries[i].Key()] = &fs.Entries[i]
	}
	return m
}
