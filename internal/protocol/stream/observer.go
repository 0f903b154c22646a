package stream

import (
	"github.com/danmuck/ubxwire/internal/protocol/frame"
	"github.com/danmuck/ubxwire/internal/protocol/schema"
)

// Observer receives per-event counts. Implementations must be safe for use
// by several decoders at once.
type Observer interface {
	FrameDecoded(id schema.Identity, payloadLen int)
	ChecksumFailed(id schema.Identity)
	DecodeFailed(id schema.Identity, err error)
	ForeignChunk(p frame.Protocol, n int)
	Discarded(n int)
}

// NopObserver ignores everything.
type NopObserver struct{}

func (NopObserver) FrameDecoded(schema.Identity, int)   {}
func (NopObserver) ChecksumFailed(schema.Identity)      {}
func (NopObserver) DecodeFailed(schema.Identity, error) {}
func (NopObserver) ForeignChunk(frame.Protocol, int)    {}
func (NopObserver) Discarded(int)                       {}
