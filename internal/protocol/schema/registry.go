package schema

import (
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

// Payload is one catalogue entry: either a layout of its own or a reference
// to the layout the same message has as output.
type Payload struct {
	entries []Entry
	alias   bool
}

// Layout declares a payload layout.
func Layout(entries ...Entry) Payload {
	return Payload{entries: entries}
}

// SameAsGet declares an input payload identical to the output payload.
func SameAsGet() Payload {
	return Payload{alias: true}
}

// Tables is the declarative catalogue keyed by message token.
type Tables struct {
	Get  map[string]Payload
	Set  map[string]Payload
	Poll map[string]Payload
}

// Registry resolves (identity, mode) to a compiled schema. It is immutable
// after construction and safe for concurrent use.
type Registry struct {
	tables [3]map[Identity]*Schema
}

// NewRegistry compiles every table entry. Input entries declared with
// SameAsGet share the output schema.
func NewRegistry(t Tables) (*Registry, error) {
	r := &Registry{}
	for i := range r.tables {
		r.tables[i] = make(map[Identity]*Schema)
	}
	if err := r.load(Get, t.Get, nil); err != nil {
		return nil, err
	}
	if err := r.load(Set, t.Set, r.tables[Get]); err != nil {
		return nil, err
	}
	if err := r.load(Poll, t.Poll, r.tables[Get]); err != nil {
		return nil, err
	}
	log.Debug().
		Int("get", len(r.tables[Get])).
		Int("set", len(r.tables[Set])).
		Int("poll", len(r.tables[Poll])).
		Msg("schema registry loaded")
	return r, nil
}

func (r *Registry) load(mode Mode, table map[string]Payload, get map[Identity]*Schema) error {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := table[name]
		id, ok := LookupName(name)
		if !ok {
			return ValidationError{Message: name, Reason: "no identity for message name", Err: ErrInvalidField}
		}
		if p.alias {
			s, ok := get[id]
			if !ok {
				return ValidationError{Message: name, Reason: "alias to missing " + Get.String() + " layout", Err: ErrInvalidField}
			}
			r.tables[mode][id] = s
			continue
		}
		s, err := Compile(p.entries...)
		if err != nil {
			if ve, ok := err.(ValidationError); ok {
				ve.Message = name
				return ve
			}
			return err
		}
		r.tables[mode][id] = s
	}
	return nil
}

// Resolve returns the schema for id in mode. A miss is normal: the payload
// should then be treated as opaque bytes.
func (r *Registry) Resolve(id Identity, mode Mode) (*Schema, bool) {
	if r == nil || int(mode) >= len(r.tables) {
		return nil, false
	}
	s, ok := r.tables[mode][id]
	return s, ok
}

// ResolveName is Resolve keyed by message token.
func (r *Registry) ResolveName(name string, mode Mode) (*Schema, bool) {
	id, ok := LookupName(name)
	if !ok {
		return nil, false
	}
	return r.Resolve(id, mode)
}

// Identities lists every identity with a schema in mode, ordered by class then id.
func (r *Registry) Identities(mode Mode) []Identity {
	if r == nil || int(mode) >= len(r.tables) {
		return nil
	}
	out := make([]Identity, 0, len(r.tables[mode]))
	for id := range r.tables[mode] {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Class != out[j].Class {
			return out[i].Class < out[j].Class
		}
		return out[i].ID < out[j].ID
	})
	return out
}

var (
	catalogueOnce sync.Once
	catalogue     *Registry
)

// Catalogue returns the registry built from the bundled message tables.
func Catalogue() *Registry {
	catalogueOnce.Do(func() {
		r, err := NewRegistry(Tables{Get: getPayloads, Set: setPayloads, Poll: pollPayloads})
		if err != nil {
			panic(err)
		}
		catalogue = r
	})
	return catalogue
}
