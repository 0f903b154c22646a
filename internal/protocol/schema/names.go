package schema

import (
	"fmt"
	"strings"
)

// Identity is the class/id pair that selects a message's meaning.
type Identity struct {
	Class uint8
	ID    uint8
}

// String returns the catalogue token (e.g. CFG-RATE) or UNKNOWN-0xCC-0xII.
func (id Identity) String() string {
	if name, ok := messageNames[id]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN-0x%02X-0x%02X", id.Class, id.ID)
}

// Known reports whether the name table has an entry for id.
func (id Identity) Known() bool {
	_, ok := messageNames[id]
	return ok
}

// Mode selects which table a message resolves against. The same identity
// can have different layouts as receiver output and receiver input.
type Mode uint8

const (
	Get Mode = iota
	Set
	Poll
)

func (m Mode) String() string {
	switch m {
	case Get:
		return "GET"
	case Set:
		return "SET"
	case Poll:
		return "POLL"
	default:
		return "INVALID"
	}
}

// ParseMode accepts get, set or poll in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "get", "":
		return Get, nil
	case "set":
		return Set, nil
	case "poll":
		return Poll, nil
	default:
		return Get, fmt.Errorf("schema: unknown mode %q", s)
	}
}

var classNames = map[uint8]string{
	0x01: "NAV",
	0x02: "RXM",
	0x04: "INF",
	0x05: "ACK",
	0x06: "CFG",
	0x09: "UPD",
	0x0A: "MON",
	0x0B: "AID",
	0x0D: "TIM",
	0x10: "ESF",
	0x13: "MGA",
	0x21: "LOG",
	0x27: "SEC",
	0x28: "HNR",
}

var messageNames = map[Identity]string{
	{0x05, 0x00}: "ACK-NAK",
	{0x05, 0x01}: "ACK-ACK",

	{0x0B, 0x02}: "AID-HUI",
	{0x0B, 0x30}: "AID-ALM",
	{0x0B, 0x31}: "AID-EPH",

	{0x06, 0x00}: "CFG-PRT",
	{0x06, 0x01}: "CFG-MSG",
	{0x06, 0x04}: "CFG-RST",
	{0x06, 0x08}: "CFG-RATE",
	{0x06, 0x09}: "CFG-CFG",
	{0x06, 0x22}: "CFG-NVS",
	{0x06, 0x24}: "CFG-NAV5",
	{0x06, 0x31}: "CFG-TP5",
	{0x06, 0x3E}: "CFG-GNSS",
	{0x06, 0x8A}: "CFG-VALSET",
	{0x06, 0x8B}: "CFG-VALGET",
	{0x06, 0x8C}: "CFG-VALDEL",

	{0x10, 0x02}: "ESF-MEAS",
	{0x10, 0x10}: "ESF-STATUS",

	{0x04, 0x00}: "INF-ERROR",
	{0x04, 0x01}: "INF-WARNING",
	{0x04, 0x02}: "INF-NOTICE",
	{0x04, 0x03}: "INF-TEST",
	{0x04, 0x04}: "INF-DEBUG",

	{0x21, 0x03}: "LOG-ERASE",
	{0x21, 0x04}: "LOG-STRING",
	{0x21, 0x07}: "LOG-CREATE",
	{0x21, 0x09}: "LOG-RETRIEVE",
	{0x21, 0x0E}: "LOG-FINDTIME",

	{0x13, 0x20}: "MGA-ANO",
	{0x13, 0x80}: "MGA-DBD",

	{0x0A, 0x02}: "MON-IO",
	{0x0A, 0x04}: "MON-VER",

	{0x01, 0x01}: "NAV-POSECEF",
	{0x01, 0x02}: "NAV-POSLLH",
	{0x01, 0x03}: "NAV-STATUS",
	{0x01, 0x04}: "NAV-DOP",
	{0x01, 0x07}: "NAV-PVT",
	{0x01, 0x09}: "NAV-ODO",
	{0x01, 0x12}: "NAV-VELNED",
	{0x01, 0x20}: "NAV-TIMEGPS",
	{0x01, 0x21}: "NAV-TIMEUTC",
	{0x01, 0x22}: "NAV-CLOCK",
	{0x01, 0x35}: "NAV-SAT",
	{0x01, 0x61}: "NAV-EOE",

	{0x02, 0x13}: "RXM-SFRBX",
	{0x02, 0x15}: "RXM-RAWX",
	{0x02, 0x41}: "RXM-PMREQ",

	{0x0D, 0x01}: "TIM-TP",
	{0x0D, 0x03}: "TIM-TM2",
}

var messageIdentities = func() map[string]Identity {
	out := make(map[string]Identity, len(messageNames))
	for id, name := range messageNames {
		out[name] = id
	}
	return out
}()

var classIDs = func() map[string]uint8 {
	out := make(map[string]uint8, len(classNames))
	for id, name := range classNames {
		out[name] = id
	}
	return out
}()

// LookupName resolves a token such as CFG-MSG to its identity.
func LookupName(name string) (Identity, bool) {
	id, ok := messageIdentities[strings.ToUpper(strings.TrimSpace(name))]
	return id, ok
}

// ClassByName resolves a class token such as MON.
func ClassByName(name string) (uint8, bool) {
	id, ok := classIDs[strings.ToUpper(strings.TrimSpace(name))]
	return id, ok
}

// ClassName returns the class token, or its hex value when unassigned.
func ClassName(class uint8) string {
	if name, ok := classNames[class]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", class)
}
