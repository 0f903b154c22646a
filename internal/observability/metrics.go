package observability

import (
	"sync"

	"github.com/danmuck/ubxwire/internal/protocol/frame"
	"github.com/danmuck/ubxwire/internal/protocol/schema"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	framesDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ubxwire",
			Subsystem: "stream",
			Name:      "frames_decoded_total",
			Help:      "UBX frames that passed the checksum and decoded.",
		},
		[]string{"source", "message"},
	)
	payloadBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ubxwire",
			Subsystem: "stream",
			Name:      "payload_bytes",
			Help:      "Payload size of decoded UBX frames.",
			Buckets:   prometheus.ExponentialBuckets(4, 2, 12),
		},
		[]string{"source"},
	)
	checksumFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ubxwire",
			Subsystem: "stream",
			Name:      "checksum_failures_total",
			Help:      "Delimited UBX frames whose checksum did not match.",
		},
		[]string{"source", "message"},
	)
	decodeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ubxwire",
			Subsystem: "stream",
			Name:      "decode_failures_total",
			Help:      "Well-formed UBX frames the codec rejected.",
		},
		[]string{"source", "message"},
	)
	foreignChunks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ubxwire",
			Subsystem: "stream",
			Name:      "foreign_chunks_total",
			Help:      "NMEA sentences and RTCM3 frames seen in the stream.",
		},
		[]string{"source", "protocol"},
	)
	discardedBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ubxwire",
			Subsystem: "stream",
			Name:      "discarded_bytes_total",
			Help:      "Bytes skipped while resynchronising.",
		},
		[]string{"source"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(framesDecoded, payloadBytes, checksumFailures, decodeFailures, foreignChunks, discardedBytes)
	})
}

// StreamMetrics records stream reader outcomes under one source label.
// It satisfies stream.Observer.
type StreamMetrics struct {
	source string
}

func NewStreamMetrics(source string) *StreamMetrics {
	RegisterMetrics()
	return &StreamMetrics{source: source}
}

func (m *StreamMetrics) FrameDecoded(id schema.Identity, payloadLen int) {
	framesDecoded.WithLabelValues(m.source, id.String()).Inc()
	payloadBytes.WithLabelValues(m.source).Observe(float64(payloadLen))
}

func (m *StreamMetrics) ChecksumFailed(id schema.Identity) {
	checksumFailures.WithLabelValues(m.source, id.String()).Inc()
}

func (m *StreamMetrics) DecodeFailed(id schema.Identity, _ error) {
	decodeFailures.WithLabelValues(m.source, id.String()).Inc()
}

func (m *StreamMetrics) ForeignChunk(p frame.Protocol, _ int) {
	foreignChunks.WithLabelValues(m.source, p.String()).Inc()
}

func (m *StreamMetrics) Discarded(n int) {
	discardedBytes.WithLabelValues(m.source).Add(float64(n))
}
