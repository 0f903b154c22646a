package codec

import (
	"bytes"
	"strconv"

	"github.com/danmuck/ubxwire/internal/protocol/schema"
	"github.com/danmuck/ubxwire/internal/protocol/wire"
)

// scope is one level of the record being walked. Count references address
// attributes positionally within a scope.
type scope struct {
	nodes []schema.Node
	rec   *wire.Record
}

type decoder struct {
	buf    []byte
	pos    int
	opts   Options
	scopes []scope
}

// Decode walks payload in schema order and returns the decoded record plus,
// in lenient mode, any bytes the layout did not account for. A nil schema
// yields the opaque form.
func Decode(s *schema.Schema, payload []byte, opts Options) (wire.Record, []byte, error) {
	if s == nil {
		return DecodeOpaque(payload), nil, nil
	}
	d := &decoder{buf: payload, opts: opts}
	rec, err := d.list(s.Nodes(), "")
	if err != nil {
		return nil, nil, err
	}
	if d.pos != len(payload) {
		if opts.Strict {
			return nil, nil, &PayloadLengthError{Want: d.pos, Got: len(payload), Reason: "surplus bytes"}
		}
		return rec, bytes.Clone(payload[d.pos:]), nil
	}
	return rec, nil, nil
}

// DecodeOpaque wraps payload as the single OpaqueAttr attribute.
func DecodeOpaque(payload []byte) wire.Record {
	return wire.Record{{Name: OpaqueAttr, Value: wire.Raw(payload)}}
}

func (d *decoder) list(nodes []schema.Node, prefix string) (wire.Record, error) {
	rec := make(wire.Record, 0, len(nodes))
	d.scopes = append(d.scopes, scope{nodes: nodes, rec: &rec})
	defer func() { d.scopes = d.scopes[:len(d.scopes)-1] }()

	for i := range nodes {
		n := &nodes[i]
		v, err := d.node(n, prefix+n.Name)
		if err != nil {
			return nil, err
		}
		rec = append(rec, wire.Attr{Name: n.Name, Value: v})
	}
	return rec, nil
}

func (d *decoder) take(n int, path string) ([]byte, error) {
	if n > len(d.buf)-d.pos {
		return nil, &PayloadLengthError{Path: path, Want: d.pos + n, Got: len(d.buf), Reason: "overrun"}
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) node(n *schema.Node, path string) (wire.Value, error) {
	f := n.Field
	switch f.Kind {
	case schema.FieldScalar:
		b, err := d.take(f.Type.Width, path)
		if err != nil {
			return wire.Value{}, err
		}
		return f.Type.Decode(b)
	case schema.FieldScaled:
		b, err := d.take(f.Type.Width, path)
		if err != nil {
			return wire.Value{}, err
		}
		raw, err := f.Type.Decode(b)
		if err != nil {
			return wire.Value{}, err
		}
		x, err := raw.Float()
		if err != nil {
			return wire.Value{}, err
		}
		return wire.Float(f.Scale.Apply(x)), nil
	case schema.FieldBitfield:
		b, err := d.take(f.Type.Width, path)
		if err != nil {
			return wire.Value{}, err
		}
		raw := wire.LittleEndian(b)
		children := make(wire.Record, len(f.Bits))
		for i, bit := range f.Bits {
			children[i] = wire.Attr{Name: bit.Name, Value: wire.Uint(wire.Extract(raw, n.Offsets[i], bit.Width))}
		}
		return wire.Bits(raw, children), nil
	case schema.FieldGroup:
		return d.group(n, path)
	default:
		return wire.Value{}, schema.ErrInvalidField
	}
}

func (d *decoder) group(n *schema.Node, path string) (wire.Value, error) {
	f := n.Field
	itemWidth := itemsWidth(n.Items)
	var count uint64

	switch f.Count.Kind {
	case schema.CountLiteral:
		count = uint64(f.Count.N)
	case schema.CountRef:
		c, err := d.count(n.Count, path, f.Count.Ref)
		if err != nil {
			return wire.Value{}, err
		}
		count = c
	case schema.CountRemaining:
		span := len(d.buf) - d.pos - n.Tail
		if span < 0 {
			return wire.Value{}, &PayloadLengthError{Path: path, Want: d.pos + n.Tail, Got: len(d.buf), Reason: "overrun"}
		}
		if itemWidth < 0 {
			return d.drain(n, path)
		}
		if rem := span % itemWidth; rem != 0 && d.opts.Strict {
			return wire.Value{}, &PayloadLengthError{
				Path:   path,
				Want:   d.pos + (span/itemWidth+1)*itemWidth + n.Tail,
				Got:    len(d.buf),
				Reason: "partial group item",
			}
		}
		count = uint64(span / itemWidth)
	}

	if mw := minWidth(n.Items); mw > 0 && count > uint64((len(d.buf)-d.pos)/mw) {
		return wire.Value{}, &PayloadLengthError{
			Path:   path,
			Want:   d.pos + int(min64(count, uint64(len(d.buf))))*mw,
			Got:    len(d.buf),
			Reason: "overrun",
		}
	}

	items := make([]wire.Record, 0, min64(count, 256))
	for i := uint64(0); i < count; i++ {
		item, err := d.list(n.Items, itemPath(path, int(i)))
		if err != nil {
			return wire.Value{}, err
		}
		items = append(items, item)
	}
	return wire.List(items...), nil
}

// drain repeats a variable-width item layout until only the fixed tail is
// left.
func (d *decoder) drain(n *schema.Node, path string) (wire.Value, error) {
	var items []wire.Record
	for i := 0; len(d.buf)-d.pos > n.Tail; i++ {
		start := d.pos
		item, err := d.list(n.Items, itemPath(path, i))
		if err != nil {
			return wire.Value{}, err
		}
		if d.pos == start {
			return wire.Value{}, &PayloadLengthError{Path: path, Want: d.pos + 1, Got: len(d.buf), Reason: "group item consumed no bytes"}
		}
		items = append(items, item)
	}
	if len(d.buf)-d.pos < n.Tail {
		return wire.Value{}, &PayloadLengthError{Path: path, Want: d.pos + n.Tail, Got: len(d.buf), Reason: "overrun"}
	}
	return wire.List(items...), nil
}

func (d *decoder) count(p schema.Path, path, ref string) (uint64, error) {
	if p.Up >= len(d.scopes) {
		return 0, &MissingCountFieldError{Path: path, Ref: ref}
	}
	sc := d.scopes[len(d.scopes)-1-p.Up]
	rec := *sc.rec
	if p.Index >= len(rec) {
		return 0, &MissingCountFieldError{Path: path, Ref: ref}
	}
	return countValue(rec[p.Index].Value, p.Bit, path, ref)
}

func countValue(v wire.Value, bit int, path, ref string) (uint64, error) {
	if bit >= 0 {
		children, err := v.Children()
		if err != nil || bit >= len(children) {
			return 0, &MissingCountFieldError{Path: path, Ref: ref, Err: err}
		}
		v = children[bit].Value
	}
	if v.Kind() == wire.ValueInt {
		c, _ := v.Int()
		if c < 0 {
			return 0, &MissingCountFieldError{Path: path, Ref: ref, Err: wire.ErrOverflow}
		}
		return uint64(c), nil
	}
	u, err := v.Uint()
	if err != nil {
		return 0, &MissingCountFieldError{Path: path, Ref: ref, Err: err}
	}
	return u, nil
}

// itemsWidth is the fixed width of one group item, or -1.
func itemsWidth(items []schema.Node) int {
	total := 0
	for _, it := range items {
		if it.Width < 0 {
			return -1
		}
		total += it.Width
	}
	return total
}

// minWidth is a lower bound on the bytes one group item consumes.
func minWidth(items []schema.Node) int {
	total := 0
	for _, it := range items {
		switch {
		case it.Width >= 0:
			total += it.Width
		case it.Field.Kind == schema.FieldGroup && it.Field.Count.Kind == schema.CountLiteral:
			total += it.Field.Count.N * minWidth(it.Items)
		}
	}
	return total
}

func itemPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]."
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
