package wire

import "strings"

// Attr is one named attribute.
type Attr struct {
	Name  string
	Value Value
}

// Record is an ordered attribute set. Order is wire order for decoded records.
type Record []Attr

// Get returns the first attribute named name.
func (r Record) Get(name string) (Value, bool) {
	for _, a := range r {
		if a.Name == name {
			return a.Value, true
		}
	}
	return Value{}, false
}

// With returns a copy of r with name set to v, replacing an existing entry
// in place or appending a new one.
func (r Record) With(name string, v Value) Record {
	out := make(Record, len(r), len(r)+1)
	copy(out, r)
	for i := range out {
		if out[i].Name == name {
			out[i].Value = v
			return out
		}
	}
	return append(out, Attr{Name: name, Value: v})
}

func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, a := range r {
		names[i] = a.Name
	}
	return names
}

func (r Record) Equal(o Record) bool {
	if len(r) != len(o) {
		return false
	}
	for i := range r {
		if r[i].Name != o[i].Name || !r[i].Value.Equal(o[i].Value) {
			return false
		}
	}
	return true
}

func (r Record) String() string {
	parts := make([]string, len(r))
	for i, a := range r {
		parts[i] = a.Name + "=" + a.Value.String()
	}
	return strings.Join(parts, ", ")
}

func (r Record) clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	copy(out, r)
	return out
}
