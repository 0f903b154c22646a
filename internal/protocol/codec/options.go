package codec

// OpaqueAttr names the single attribute carrying a payload that has no
// schema.
const OpaqueAttr = "payload"

// Options tunes Decode and Encode. The zero value decodes leniently and
// encodes only fully specified records.
type Options struct {
	// Strict rejects payloads whose size disagrees with the layout instead
	// of returning the surplus as trailing bytes.
	Strict bool
	// ZeroFill encodes absent scalars, bitfield members and groups as zero.
	ZeroFill bool
	// CheckCounts verifies that each referenced count equals the length of
	// the group it sizes.
	CheckCounts bool
}
