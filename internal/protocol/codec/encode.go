package codec

import (
	"math/bits"

	"github.com/danmuck/ubxwire/internal/protocol/schema"
	"github.com/danmuck/ubxwire/internal/protocol/wire"
)

type encoder struct {
	out    []byte
	opts   Options
	scopes []scope
}

// Encode serialises attrs against s. Nothing is returned on error. A nil
// schema encodes the OpaqueAttr attribute verbatim.
func Encode(s *schema.Schema, attrs wire.Record, opts Options) ([]byte, error) {
	if s == nil {
		return EncodeOpaque(attrs)
	}
	e := &encoder{opts: opts}
	if w, ok := s.FixedWidth(); ok {
		e.out = make([]byte, 0, w)
	}
	if err := e.list(s.Nodes(), attrs, ""); err != nil {
		return nil, err
	}
	if e.out == nil {
		e.out = []byte{}
	}
	return e.out, nil
}

// EncodeOpaque returns the bytes carried by the OpaqueAttr attribute.
func EncodeOpaque(attrs wire.Record) ([]byte, error) {
	v, ok := attrs.Get(OpaqueAttr)
	if !ok {
		return nil, &MissingAttributeError{Path: OpaqueAttr}
	}
	b, err := v.Bytes()
	if err != nil {
		return nil, &TypeMismatchError{Path: OpaqueAttr, Type: wire.Type{Kind: wire.KindBytes}, Err: err}
	}
	return b, nil
}

func (e *encoder) list(nodes []schema.Node, rec wire.Record, prefix string) error {
	e.scopes = append(e.scopes, scope{nodes: nodes, rec: &rec})
	defer func() { e.scopes = e.scopes[:len(e.scopes)-1] }()

	for i := range nodes {
		n := &nodes[i]
		path := prefix + n.Name
		v, ok := rec.Get(n.Name)
		if !ok && !e.opts.ZeroFill {
			return &MissingAttributeError{Path: path}
		}
		if err := e.node(n, v, ok, path); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) node(n *schema.Node, v wire.Value, present bool, path string) error {
	f := n.Field
	switch f.Kind {
	case schema.FieldScalar:
		if !present {
			e.out = append(e.out, make([]byte, f.Type.Width)...)
			return nil
		}
		return e.scalar(f.Type, v, path)
	case schema.FieldScaled:
		if !present {
			e.out = append(e.out, make([]byte, f.Type.Width)...)
			return nil
		}
		x, err := v.Float()
		if err != nil {
			return &TypeMismatchError{Path: path, Type: f.Type, Err: err}
		}
		raw := f.Scale.Raw(x)
		if raw < 0 && f.Type.Kind != wire.KindSigned {
			return &TypeMismatchError{Path: path, Type: f.Type, Err: wire.ErrOverflow}
		}
		return e.scalar(f.Type, wire.Float(raw), path)
	case schema.FieldBitfield:
		return e.bitfield(n, v, present, path)
	case schema.FieldGroup:
		return e.group(n, v, present, path)
	default:
		return schema.ErrInvalidField
	}
}

func (e *encoder) scalar(t wire.Type, v wire.Value, path string) error {
	b, err := t.Encode(v)
	if err != nil {
		return &TypeMismatchError{Path: path, Type: t, Err: err}
	}
	e.out = append(e.out, b...)
	return nil
}

// bitfield packs children LSB-first over the raw parent value. A plain
// integer is taken as the already packed parent.
func (e *encoder) bitfield(n *schema.Node, v wire.Value, present bool, path string) error {
	f := n.Field
	if !present {
		e.out = append(e.out, make([]byte, f.Type.Width)...)
		return nil
	}
	raw, err := v.Uint()
	if err != nil {
		return &TypeMismatchError{Path: path, Type: f.Type, Err: err}
	}
	if v.Kind() == wire.ValueBits {
		children, _ := v.Children()
		for i, bit := range f.Bits {
			cv, ok := children.Get(bit.Name)
			if !ok {
				if !e.opts.ZeroFill {
					return &MissingAttributeError{Path: path + "." + bit.Name}
				}
				continue
			}
			u, err := cv.Uint()
			if err != nil {
				return &TypeMismatchError{Path: path + "." + bit.Name, Type: f.Type, Err: err}
			}
			if !wire.Fits(u, bit.Width) {
				return &TypeMismatchError{
					Path: path + "." + bit.Name,
					Type: f.Type,
					Err:  &wire.TypeWidthError{Type: f.Type, Want: int(bit.Width), Got: bits.Len64(u), Bits: true},
				}
			}
			raw = wire.Insert(raw, u, n.Offsets[i], bit.Width)
		}
	}
	return e.scalar(f.Type, wire.Uint(raw), path)
}

func (e *encoder) group(n *schema.Node, v wire.Value, present bool, path string) error {
	f := n.Field
	var items []wire.Record
	if present {
		var err error
		items, err = v.Items()
		if err != nil {
			return &TypeMismatchError{Path: path, Err: err}
		}
	} else if f.Count.Kind == schema.CountLiteral {
		items = make([]wire.Record, f.Count.N)
	}

	switch f.Count.Kind {
	case schema.CountLiteral:
		if len(items) != f.Count.N {
			return &CountMismatchError{Path: path, Count: uint64(f.Count.N), Items: len(items)}
		}
	case schema.CountRef:
		if e.opts.CheckCounts {
			c, err := e.count(n.Count, path, f.Count.Ref)
			if err != nil {
				return err
			}
			if c != uint64(len(items)) {
				return &CountMismatchError{Path: path, Count: c, Items: len(items)}
			}
		}
	}

	for i, item := range items {
		if err := e.list(n.Items, item, itemPath(path, i)); err != nil {
			return err
		}
	}
	return nil
}

// count reads a referenced count from the caller's record by name, since
// callers need not supply attributes in wire order.
func (e *encoder) count(p schema.Path, path, ref string) (uint64, error) {
	if p.Up >= len(e.scopes) {
		return 0, &MissingCountFieldError{Path: path, Ref: ref}
	}
	sc := e.scopes[len(e.scopes)-1-p.Up]
	if p.Index >= len(sc.nodes) {
		return 0, &MissingCountFieldError{Path: path, Ref: ref}
	}
	target := sc.nodes[p.Index]
	v, ok := sc.rec.Get(target.Name)
	if !ok {
		return 0, &MissingCountFieldError{Path: path, Ref: ref}
	}
	if p.Bit < 0 {
		return countValue(v, -1, path, ref)
	}
	if v.Kind() != wire.ValueBits {
		raw, err := v.Uint()
		if err != nil {
			return 0, &MissingCountFieldError{Path: path, Ref: ref, Err: err}
		}
		return wire.Extract(raw, target.Offsets[p.Bit], target.Field.Bits[p.Bit].Width), nil
	}
	children, _ := v.Children()
	cv, ok := children.Get(ref)
	if !ok {
		return 0, &MissingCountFieldError{Path: path, Ref: ref}
	}
	return countValue(cv, -1, path, ref)
}
