// Package protocol turns delimited frames into parsed messages and back.
//
// Ownership boundary:
// - wire: primitive types, scales and bit helpers
// - schema: message layouts, the catalogue and the identity name table
// - codec: the schema-driven payload engine
// - frame: sync, length and checksum framing plus protocol detection
// - stream: resynchronising reader over mixed byte streams
// - cfgkey: configuration key table for CFG-VALGET/VALSET/VALDEL
package protocol
