package schema

import (
	"errors"
	"sync"
	"testing"

	"github.com/danmuck/ubxwire/internal/protocol/wire"
	"github.com/danmuck/ubxwire/internal/testutil/testlog"
)

func TestCompileFixedWidth(t *testing.T) {
	testlog.Start(t)
	s, err := Compile(
		S("measRate", wire.U2),
		S("navRate", wire.U2),
		S("timeRef", wire.U2),
	)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	w, ok := s.FixedWidth()
	if !ok || w != 6 {
		t.Fatalf("unexpected width: %d fixed=%v", w, ok)
	}
}

func TestCompileRejectsInvalidLayouts(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		name    string
		entries []Entry
		want    error
	}{
		{"duplicate", []Entry{S("a", wire.U1), S("a", wire.U2)}, ErrDuplicateName},
		{"empty name", []Entry{S("", wire.U1)}, ErrInvalidField},
		{"bad type", []Entry{S("a", wire.Type{Kind: wire.KindFloat, Width: 3})}, ErrInvalidField},
		{"scaled float", []Entry{E("a", Scaled(wire.R4, wire.Scale2))}, ErrInvalidField},
		{"unresolved", []Entry{E("g", Group(Ref("n"), S("x", wire.U1)))}, ErrUnresolvedCount},
		{"forward ref", []Entry{E("g", Group(Ref("n"), S("x", wire.U1))), S("n", wire.U1)}, ErrUnresolvedCount},
		{"ref to bytes", []Entry{S("n", wire.X1), E("g", Group(Ref("n"), S("x", wire.U1)))}, ErrUnresolvedCount},
		{"empty group", []Entry{E("g", Group(Literal(2)))}, ErrInvalidField},
		{"negative literal", []Entry{E("g", Group(Literal(-1), S("x", wire.U1)))}, ErrInvalidField},
		{"nested remaining", []Entry{E("g", Group(Literal(1), E("h", Group(Remaining, S("x", wire.U1)))))}, ErrNestedRemainder},
		{"remaining then variable", []Entry{
			S("n", wire.U1),
			E("g", Group(Remaining, S("x", wire.U1))),
			E("h", Group(Ref("n"), S("y", wire.U1))),
		}, ErrAmbiguousRemainder},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compile(tc.entries...)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if _, ok := err.(ValidationError); !ok {
				t.Fatalf("expected ValidationError, got %T", err)
			}
		})
	}
}

func TestCompileRejectsBitOverflow(t *testing.T) {
	testlog.Start(t)
	_, err := Compile(E("flags", Bitfield(wire.X1, B("a", 4), B("b", 5))))
	var we *wire.TypeWidthError
	if !errors.As(err, &we) {
		t.Fatalf("expected TypeWidthError, got %v", err)
	}
	if !we.Bits || we.Want != 8 || we.Got != 9 {
		t.Fatalf("unexpected width error: %+v", we)
	}
}

func TestBitOffsetsAllocateFromLSB(t *testing.T) {
	testlog.Start(t)
	s := MustCompile(E("flags", Bitfield(wire.X1, B("a", 1), B("b", 3), B("c", 2))))
	got := s.Nodes()[0].Offsets
	want := []uint{0, 1, 4}
	if len(got) != len(want) {
		t.Fatalf("offsets: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("offset %d: got %d want %d", i, got[i], want[i])
		}
	}
}

func TestCountRefResolvesToBitChild(t *testing.T) {
	testlog.Start(t)
	s, ok := Catalogue().ResolveName("ESF-MEAS", Get)
	if !ok {
		t.Fatalf("ESF-MEAS not catalogued")
	}
	var group Node
	for _, n := range s.Nodes() {
		if n.Name == "group" {
			group = n
		}
	}
	// flags is attribute 1; numMeas is its fifth bit member.
	if group.Count != (Path{Up: 0, Index: 1, Bit: 4}) {
		t.Fatalf("unexpected count path: %+v", group.Count)
	}
}

func TestCountRefSearchesEnclosingScope(t *testing.T) {
	testlog.Start(t)
	s := MustCompile(
		S("n", wire.U1),
		E("outer", Group(Literal(2),
			S("x", wire.U1),
			E("inner", Group(Ref("n"), S("y", wire.U1))),
		)),
	)
	inner := s.Nodes()[1].Items[1]
	if inner.Count != (Path{Up: 1, Index: 0, Bit: -1}) {
		t.Fatalf("unexpected count path: %+v", inner.Count)
	}
}

func TestRemainingTailWidth(t *testing.T) {
	testlog.Start(t)
	s := MustCompile(
		S("head", wire.U2),
		E("g", Group(Remaining, S("x", wire.U2))),
		S("ck", wire.U4),
	)
	if s.Nodes()[1].Tail != 4 {
		t.Fatalf("tail: %d", s.Nodes()[1].Tail)
	}
	if _, ok := s.FixedWidth(); ok {
		t.Fatalf("remaining layout should not be fixed width")
	}
}

func TestCatalogueSetAliasSharesSchema(t *testing.T) {
	testlog.Start(t)
	r := Catalogue()
	get, ok := r.ResolveName("CFG-RATE", Get)
	if !ok {
		t.Fatalf("CFG-RATE get missing")
	}
	set, ok := r.ResolveName("CFG-RATE", Set)
	if !ok {
		t.Fatalf("CFG-RATE set missing")
	}
	if get != set {
		t.Fatalf("alias should share the compiled schema")
	}
	poll, ok := r.ResolveName("CFG-RATE", Poll)
	if !ok || poll.Len() != 0 {
		t.Fatalf("CFG-RATE poll should be empty")
	}
}

func TestCatalogueWidths(t *testing.T) {
	testlog.Start(t)
	cases := map[string]int{
		"NAV-PVT":     92,
		"NAV-POSLLH":  28,
		"NAV-STATUS":  16,
		"NAV-DOP":     18,
		"NAV-TIMEUTC": 20,
		"CFG-NAV5":    36,
		"CFG-PRT":     20,
		"CFG-TP5":     32,
		"TIM-TP":      16,
		"TIM-TM2":     28,
	}
	for name, want := range cases {
		s, ok := Catalogue().ResolveName(name, Get)
		if !ok {
			t.Fatalf("%s not catalogued", name)
		}
		got, fixed := s.FixedWidth()
		if !fixed || got != want {
			t.Fatalf("%s width: got %d fixed=%v want %d", name, got, fixed, want)
		}
	}
}

func TestResolveMissIsNotAnError(t *testing.T) {
	testlog.Start(t)
	if _, ok := Catalogue().Resolve(Identity{Class: 0xAA, ID: 0xBB}, Get); ok {
		t.Fatalf("unexpected schema for unassigned identity")
	}
	if _, ok := Catalogue().ResolveName("NAV-PVT", Set); ok {
		t.Fatalf("NAV-PVT has no input layout")
	}
}

func TestRegistryRejectsAliasWithoutGet(t *testing.T) {
	testlog.Start(t)
	_, err := NewRegistry(Tables{Set: map[string]Payload{"CFG-RATE": SameAsGet()}})
	ve, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Message != "CFG-RATE" {
		t.Fatalf("unexpected message: %+v", ve)
	}
}

func TestRegistryRejectsUnknownName(t *testing.T) {
	testlog.Start(t)
	_, err := NewRegistry(Tables{Get: map[string]Payload{"NAV-NOPE": Layout()}})
	if !errors.Is(err, ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}
}

func TestIdentityNames(t *testing.T) {
	testlog.Start(t)
	if got := (Identity{Class: 0x06, ID: 0x08}).String(); got != "CFG-RATE" {
		t.Fatalf("name: %s", got)
	}
	if got := (Identity{Class: 0xAA, ID: 0x0B}).String(); got != "UNKNOWN-0xAA-0x0B" {
		t.Fatalf("unknown name: %s", got)
	}
	id, ok := LookupName("mon-ver")
	if !ok || id != (Identity{Class: 0x0A, ID: 0x04}) {
		t.Fatalf("lookup: %+v %v", id, ok)
	}
	if c, ok := ClassByName("NAV"); !ok || c != 0x01 {
		t.Fatalf("class lookup: %x %v", c, ok)
	}
	if ClassName(0x77) != "0x77" {
		t.Fatalf("unassigned class: %s", ClassName(0x77))
	}
}

func TestParseMode(t *testing.T) {
	testlog.Start(t)
	for in, want := range map[string]Mode{"GET": Get, "set": Set, " Poll ": Poll} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("push"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestCatalogueConcurrentResolve(t *testing.T) {
	testlog.Start(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, id := range Catalogue().Identities(Get) {
				if _, ok := Catalogue().Resolve(id, Get); !ok {
					t.Errorf("lost %s", id)
				}
			}
		}()
	}
	wg.Wait()
}
