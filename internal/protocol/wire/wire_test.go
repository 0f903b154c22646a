package wire

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestEncodeKnownVectors(t *testing.T) {
	cases := []struct {
		name string
		typ  Type
		in   Value
		want []byte
	}{
		{"u2", U2, Uint(2345), []byte{0x29, 0x09}},
		{"e2", E2, Uint(2345), []byte{0x29, 0x09}},
		{"bool", L, Uint(1), []byte{0x01}},
		{"i4", I4, Int(-2346789), []byte{0xdb, 0x30, 0xdc, 0xff}},
		{"x2", X2, Raw([]byte{0x44, 0x55}), []byte{0x44, 0x55}},
		{"r4", R4, Float(23.12345678), []byte{0xd7, 0xfc, 0xb8, 0x41}},
		{"r8", R8, Float(-23.12345678912345), []byte{0x1f, 0xc1, 0x37, 0xdd, 0x9a, 0x1f, 0x37, 0xc0}},
		{"char", C(5), Text("ab"), []byte{'a', 'b', 0, 0, 0}},
	}
	for _, tc := range cases {
		got, err := tc.typ.Encode(tc.in)
		if err != nil {
			t.Fatalf("%s: encode: %v", tc.name, err)
		}
		if !bytes.Equal(got, tc.want) {
			t.Fatalf("%s: got % x want % x", tc.name, got, tc.want)
		}
	}
}

func TestDecodeKnownVectors(t *testing.T) {
	v, err := U2.Decode([]byte{0x29, 0x09})
	if err != nil {
		t.Fatalf("decode u2: %v", err)
	}
	if u, _ := v.Uint(); u != 2345 {
		t.Fatalf("u2: got %d want 2345", u)
	}

	v, err = I4.Decode([]byte{0xdb, 0x30, 0xdc, 0xff})
	if err != nil {
		t.Fatalf("decode i4: %v", err)
	}
	if i, _ := v.Int(); i != -2346789 {
		t.Fatalf("i4: got %d", i)
	}

	v, err = R4.Decode([]byte{0xd7, 0xfc, 0xb8, 0x41})
	if err != nil {
		t.Fatalf("decode r4: %v", err)
	}
	if f, _ := v.Float(); math.Abs(f-23.12345678) > 1e-6 {
		t.Fatalf("r4: got %v", f)
	}

	v, err = R8.Decode([]byte{0x1f, 0xc1, 0x37, 0xdd, 0x9a, 0x1f, 0x37, 0xc0})
	if err != nil {
		t.Fatalf("decode r8: %v", err)
	}
	if f, _ := v.Float(); math.Abs(f+23.12345678912345) > 1e-14 {
		t.Fatalf("r8: got %v", f)
	}

	v, err = X2.Decode([]byte{0x44, 0x55})
	if err != nil {
		t.Fatalf("decode x2: %v", err)
	}
	if !v.EqualBytes([]byte{0x44, 0x55}) {
		t.Fatalf("x2: got %s", v)
	}

	v, err = L.Decode([]byte{0x01})
	if err != nil {
		t.Fatalf("decode bool: %v", err)
	}
	if b, _ := v.Bool(); !b {
		t.Fatalf("bool: got %s", v)
	}
}

func TestUnsignedRoundTripPreservesBytes(t *testing.T) {
	in := []byte{0x29, 0x09}
	v, err := U2.Decode(in)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	out, err := U2.Encode(v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(in, out) {
		t.Fatalf("round trip: got % x", out)
	}
}

func TestSignedNonPowerOfTwoWidth(t *testing.T) {
	typ := Type{Kind: KindSigned, Width: 3}
	out, err := typ.Encode(Int(-2))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(out, []byte{0xfe, 0xff, 0xff}) {
		t.Fatalf("got % x", out)
	}
	v, err := typ.Decode(out)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if i, _ := v.Int(); i != -2 {
		t.Fatalf("got %d", i)
	}
}

func TestWideUnsignedIsOpaque(t *testing.T) {
	in := bytes.Repeat([]byte{0xab}, 12)
	v, err := U12.Decode(in)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Kind() != ValueBytes {
		t.Fatalf("expected bytes, got kind %d", v.Kind())
	}
	out, err := U12.Encode(v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(in, out) {
		t.Fatalf("round trip mismatch")
	}
}

func TestDecodeWidthMismatch(t *testing.T) {
	_, err := U4.Decode([]byte{1, 2})
	var we *TypeWidthError
	if !errors.As(err, &we) {
		t.Fatalf("expected TypeWidthError, got %v", err)
	}
	if we.Want != 4 || we.Got != 2 {
		t.Fatalf("unexpected width error: %+v", we)
	}
}

func TestEncodeOverflow(t *testing.T) {
	cases := []struct {
		typ Type
		in  Value
	}{
		{U1, Uint(256)},
		{U2, Int(-1)},
		{I1, Int(128)},
		{I1, Int(-129)},
		{X2, Raw([]byte{1, 2, 3})},
		{L, Uint(2)},
		{C(2), Text("abc")},
		{U4, Text("x")},
		{U8, Float(math.Ldexp(1, 64))},
		{I8, Float(math.Ldexp(1, 63))},
		{I8, Float(math.Ldexp(-1, 64))},
		{R4, Float(1e300)},
		{R4, Float(-1e39)},
	}
	for _, tc := range cases {
		_, err := tc.typ.Encode(tc.in)
		var tm *TypeMismatchError
		if !errors.As(err, &tm) {
			t.Fatalf("%s <- %s: expected TypeMismatchError, got %v", tc.typ, tc.in, err)
		}
	}
}

func TestEncodeAtWidthLimits(t *testing.T) {
	cases := []struct {
		typ  Type
		in   Value
		want []byte
	}{
		{U8, Float(math.Ldexp(1, 64) - 2048), []byte{0x00, 0xF8, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
		{I8, Float(math.Ldexp(-1, 63)), []byte{0, 0, 0, 0, 0, 0, 0, 0x80}},
		{R4, Float(math.MaxFloat32), []byte{0xFF, 0xFF, 0x7F, 0x7F}},
		{R4, Float(math.Inf(1)), []byte{0x00, 0x00, 0x80, 0x7F}},
	}
	for _, tc := range cases {
		got, err := tc.typ.Encode(tc.in)
		if err != nil {
			t.Fatalf("%s <- %s: %v", tc.typ, tc.in, err)
		}
		if !bytes.Equal(got, tc.want) {
			t.Fatalf("%s <- %s: got %x want %x", tc.typ, tc.in, got, tc.want)
		}
	}
}

func TestScaleApplyAndRaw(t *testing.T) {
	if got := Pow2(-2).Apply(5); got != 1.25 {
		t.Fatalf("pow2 apply: %v", got)
	}
	if got := Pow2(-2).Raw(1.25); got != 5 {
		t.Fatalf("pow2 raw: %v", got)
	}
	if got := Scale7.Apply(532445123); got != 53.2445123 {
		t.Fatalf("scale7 apply: %v", got)
	}
	if got := Scale7.Raw(53.2445123); got != 532445123 {
		t.Fatalf("scale7 raw: %v", got)
	}
	if got := Decimal(600).Apply(3); got != 1800 {
		t.Fatalf("decimal 600 apply: %v", got)
	}
	if got := Scale1.Raw(-12.3); got != -123 {
		t.Fatalf("scale1 raw: %v", got)
	}
}

func TestGetBits(t *testing.T) {
	cases := []struct {
		in   []byte
		mask uint64
		want uint64
	}{
		{[]byte{0x89}, 192, 2},
		{[]byte{0xc9}, 3, 1},
		{[]byte{0x89}, 9, 9},
		{[]byte{0xc9}, 9, 9},
		{[]byte{0x18, 0x18}, 8, 1},
		{[]byte{0x18, 0x20}, 8, 0},
	}
	for _, tc := range cases {
		if got := GetBits(tc.in, tc.mask); got != tc.want {
			t.Fatalf("GetBits(% x, %d) = %d want %d", tc.in, tc.mask, got, tc.want)
		}
	}
}

func TestExtractInsertBijection(t *testing.T) {
	widths := []uint{2, 1, 1, 7, 5}
	for _, x := range []uint16{0, 1, 0x5a5a, 0xffff, 0x8001} {
		var offset uint
		var rebuilt uint16
		for _, w := range widths {
			part := Extract(x, offset, w)
			if !Fits(part, w) {
				t.Fatalf("part %d does not fit %d bits", part, w)
			}
			rebuilt = Insert(rebuilt, part, offset, w)
			offset += w
		}
		if rebuilt != x {
			t.Fatalf("recompose(decompose(%#x)) = %#x", x, rebuilt)
		}
	}
}

func TestRecordWithReplacesInPlace(t *testing.T) {
	r := Record{}.With("a", Uint(1)).With("b", Uint(2))
	r2 := r.With("a", Uint(9))
	if v, _ := r.Get("a"); !v.Equal(Uint(1)) {
		t.Fatalf("original record mutated: %s", r)
	}
	if got := r2.Names(); len(got) != 2 || got[0] != "a" {
		t.Fatalf("unexpected order: %v", got)
	}
	if v, _ := r2.Get("a"); !v.Equal(Uint(9)) {
		t.Fatalf("replace failed: %s", r2)
	}
}
