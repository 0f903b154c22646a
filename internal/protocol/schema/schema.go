package schema

import (
	"errors"
	"fmt"

	"github.com/danmuck/ubxwire/internal/protocol/wire"
)

var (
	ErrInvalidField       = errors.New("schema: invalid field")
	ErrDuplicateName      = errors.New("schema: duplicate attribute name")
	ErrUnresolvedCount    = errors.New("schema: count reference does not name an earlier integer field")
	ErrAmbiguousRemainder = errors.New("schema: remaining group followed by variable-width fields")
	ErrNestedRemainder    = errors.New("schema: remaining group inside another group")
)

// ValidationError reports a schema rejected at load time.
type ValidationError struct {
	Message string
	Field   string
	Reason  string
	Err     error
}

func (e ValidationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("schema: field=%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("schema: message=%s field=%s: %s", e.Message, e.Field, e.Reason)
}

func (e ValidationError) Unwrap() error { return e.Err }

// Path locates an already-decoded value relative to the record being
// decoded: Up scopes outward, attribute Index in that scope, and bitfield
// child Bit (-1 when the attribute itself is the count).
type Path struct {
	Up    int
	Index int
	Bit   int
}

// Node is a compiled Entry.
type Node struct {
	Name  string
	Field Field
	Items []Node
	// Count is the resolved location of a CountRef group's cardinality.
	Count Path
	// Offsets holds each bit's LSB position, bitfields only.
	Offsets []uint
	// Width is the fixed wire width, or -1 when data-dependent.
	Width int
	// Tail is the fixed width of the siblings after this node, or -1.
	Tail int
}

// Schema is a compiled, immutable message layout.
type Schema struct {
	nodes []Node
	width int
}

// Compile validates entries and resolves count references into positional
// paths. Count references must name a field declared earlier.
func Compile(entries ...Entry) (*Schema, error) {
	var stack []*[]Node
	nodes, err := compileList(entries, stack, "", false)
	if err != nil {
		return nil, err
	}
	return &Schema{nodes: nodes, width: listWidth(nodes)}, nil
}

// MustCompile is Compile for static catalogue data.
func MustCompile(entries ...Entry) *Schema {
	s, err := Compile(entries...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Nodes() []Node { return s.nodes }

func (s *Schema) Len() int { return len(s.nodes) }

// FixedWidth is the payload size when it does not depend on data.
func (s *Schema) FixedWidth() (int, bool) {
	return s.width, s.width >= 0
}

func compileList(entries []Entry, stack []*[]Node, prefix string, nested bool) ([]Node, error) {
	nodes := make([]Node, 0, len(entries))
	stack = append(stack, &nodes)
	seen := make(map[string]struct{}, len(entries))

	for _, e := range entries {
		path := prefix + e.Name
		if e.Name == "" {
			return nil, ValidationError{Field: prefix + "?", Reason: "empty attribute name", Err: ErrInvalidField}
		}
		if _, dup := seen[e.Name]; dup {
			return nil, ValidationError{Field: path, Reason: "duplicate attribute name", Err: ErrDuplicateName}
		}
		seen[e.Name] = struct{}{}

		n := Node{Name: e.Name, Field: e.Field, Width: -1, Count: Path{Bit: -1}}
		f := e.Field
		switch f.Kind {
		case FieldScalar:
			if !f.Type.Valid() {
				return nil, ValidationError{Field: path, Reason: "invalid wire type " + f.Type.String(), Err: ErrInvalidField}
			}
			n.Width = f.Type.Width
		case FieldScaled:
			if !f.Type.Integral() || f.Type.Kind == wire.KindBytes || f.Scale.IsZero() {
				return nil, ValidationError{Field: path, Reason: "scale needs an integer type and a factor", Err: ErrInvalidField}
			}
			n.Width = f.Type.Width
		case FieldBitfield:
			offsets, err := compileBits(path, f)
			if err != nil {
				return nil, err
			}
			n.Offsets = offsets
			n.Width = f.Type.Width
		case FieldGroup:
			if len(f.Items) == 0 {
				return nil, ValidationError{Field: path, Reason: "group has no items", Err: ErrInvalidField}
			}
			switch f.Count.Kind {
			case CountLiteral:
				if f.Count.N < 0 {
					return nil, ValidationError{Field: path, Reason: "negative literal count", Err: ErrInvalidField}
				}
			case CountRef:
				p, ok := resolve(stack, f.Count.Ref)
				if !ok {
					return nil, ValidationError{Field: path, Reason: "unresolved count " + f.Count.Ref, Err: ErrUnresolvedCount}
				}
				n.Count = p
			case CountRemaining:
				if nested {
					return nil, ValidationError{Field: path, Reason: "remaining count must be top level", Err: ErrNestedRemainder}
				}
			default:
				return nil, ValidationError{Field: path, Reason: "missing count", Err: ErrInvalidField}
			}
			items, err := compileList(f.Items, stack, path+".", true)
			if err != nil {
				return nil, err
			}
			n.Items = items
			w := listWidth(items)
			if f.Count.Kind == CountRemaining && w == 0 {
				return nil, ValidationError{Field: path, Reason: "zero-width remaining group", Err: ErrInvalidField}
			}
			if f.Count.Kind == CountLiteral && w >= 0 {
				n.Width = f.Count.N * w
			}
		default:
			return nil, ValidationError{Field: path, Reason: "unknown field kind", Err: ErrInvalidField}
		}
		nodes = append(nodes, n)
	}

	tail := 0
	for i := len(nodes) - 1; i >= 0; i-- {
		nodes[i].Tail = tail
		if tail >= 0 && nodes[i].Width >= 0 {
			tail += nodes[i].Width
		} else {
			tail = -1
		}
		if nodes[i].Field.Kind == FieldGroup && nodes[i].Field.Count.Kind == CountRemaining && nodes[i].Tail < 0 {
			return nil, ValidationError{Field: prefix + nodes[i].Name, Reason: "remaining group must be followed by fixed-width fields", Err: ErrAmbiguousRemainder}
		}
	}
	return nodes, nil
}

func compileBits(path string, f Field) ([]uint, error) {
	if !f.Type.Integral() || f.Type.Kind == wire.KindFloat {
		return nil, ValidationError{Field: path, Reason: "bitfield parent must be an integer of at most 8 bytes", Err: ErrInvalidField}
	}
	offsets := make([]uint, len(f.Bits))
	seen := make(map[string]struct{}, len(f.Bits))
	var used uint
	for i, b := range f.Bits {
		if b.Name == "" || b.Width == 0 {
			return nil, ValidationError{Field: path, Reason: "bit needs a name and a width", Err: ErrInvalidField}
		}
		if _, dup := seen[b.Name]; dup {
			return nil, ValidationError{Field: path + "." + b.Name, Reason: "duplicate bit name", Err: ErrDuplicateName}
		}
		seen[b.Name] = struct{}{}
		offsets[i] = used
		used += b.Width
	}
	if used > uint(f.Type.Bits()) {
		return nil, ValidationError{
			Field:  path,
			Reason: "bit widths exceed parent width",
			Err:    &wire.TypeWidthError{Type: f.Type, Want: f.Type.Bits(), Got: int(used), Bits: true},
		}
	}
	return offsets, nil
}

// resolve searches the current scope, then enclosing scopes, for an earlier
// integer attribute or bitfield member named name.
func resolve(stack []*[]Node, name string) (Path, bool) {
	for up := 0; up < len(stack); up++ {
		scope := *stack[len(stack)-1-up]
		for idx := len(scope) - 1; idx >= 0; idx-- {
			n := scope[idx]
			switch n.Field.Kind {
			case FieldScalar:
				if n.Name == name && countable(n.Field.Type) {
					return Path{Up: up, Index: idx, Bit: -1}, true
				}
			case FieldBitfield:
				if n.Name == name {
					return Path{Up: up, Index: idx, Bit: -1}, true
				}
				for b, bit := range n.Field.Bits {
					if bit.Name == name {
						return Path{Up: up, Index: idx, Bit: b}, true
					}
				}
			}
		}
	}
	return Path{}, false
}

func countable(t wire.Type) bool {
	switch t.Kind {
	case wire.KindUnsigned, wire.KindSigned, wire.KindEnum:
		return t.Width <= 8
	default:
		return false
	}
}

func listWidth(nodes []Node) int {
	total := 0
	for _, n := range nodes {
		if n.Width < 0 {
			return -1
		}
		total += n.Width
	}
	return total
}
