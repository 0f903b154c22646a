// Package capture records a raw receiver byte stream to a compressed file
// and replays it as an io.Reader. A capture is a five-byte header (magic
// plus codec) followed by length-prefixed blocks.
package capture

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

var (
	ErrBadMagic     = errors.New("capture: not a capture file")
	ErrUnknownCodec = errors.New("capture: unknown codec")
	ErrCorrupt      = errors.New("capture: corrupt block")
)

var magic = [4]byte{'U', 'B', 'X', 'C'}

const (
	headerLen      = len(magic) + 1
	blockHeaderLen = 8
	// BlockSize is the largest raw block a Writer emits.
	BlockSize = 64 << 10
)

type Codec uint8

const (
	None Codec = iota
	LZ4
	Snappy
)

func (c Codec) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Snappy:
		return "snappy"
	default:
		return fmt.Sprintf("codec(%d)", uint8(c))
	}
}

func ParseCodec(s string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "snappy":
		return Snappy, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownCodec, s)
	}
}

func (c Codec) valid() bool { return c <= Snappy }

// compress returns the stored form of raw. A nil result means the block is
// stored uncompressed.
func (c Codec) compress(raw, scratch []byte) ([]byte, error) {
	switch c {
	case LZ4:
		bound := lz4.CompressBlockBound(len(raw))
		if cap(scratch) < bound {
			scratch = make([]byte, bound)
		}
		n, err := lz4.CompressBlock(raw, scratch[:bound], nil)
		if err != nil {
			return nil, err
		}
		if n == 0 || n >= len(raw) {
			return nil, nil
		}
		return scratch[:n], nil
	case Snappy:
		out := snappy.Encode(scratch[:cap(scratch)], raw)
		if len(out) >= len(raw) {
			return nil, nil
		}
		return out, nil
	default:
		return nil, nil
	}
}

func (c Codec) decompress(stored []byte, rawLen int, dst []byte) ([]byte, error) {
	if cap(dst) < rawLen {
		dst = make([]byte, rawLen)
	}
	dst = dst[:rawLen]
	switch c {
	case LZ4:
		n, err := lz4.UncompressBlock(stored, dst)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if n != rawLen {
			return nil, fmt.Errorf("%w: lz4 block gave %d bytes, want %d", ErrCorrupt, n, rawLen)
		}
		return dst, nil
	case Snappy:
		out, err := snappy.Decode(dst, stored)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if len(out) != rawLen {
			return nil, fmt.Errorf("%w: snappy block gave %d bytes, want %d", ErrCorrupt, len(out), rawLen)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: compressed block under codec %s", ErrCorrupt, c)
	}
}
