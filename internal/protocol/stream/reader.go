package stream

import (
	"errors"
	"io"
)

// maxEmptyReads bounds consecutive (0, nil) reads from the source before
// Read gives up with io.ErrNoProgress.
const maxEmptyReads = 100

// Reader is the pull side of the stream reader over an io.Reader. Read
// blocks on the source only when the decoder needs more bytes. To cancel,
// close the source.
type Reader struct {
	src   io.Reader
	dec   *Decoder
	buf   []byte
	err   error
	empty int
}

func NewReader(src io.Reader, opts ...Option) *Reader {
	d := NewDecoder(opts...)
	return &Reader{src: src, dec: d, buf: make([]byte, d.cfg.readSize)}
}

// Read returns the next event. It returns io.EOF after a clean end of the
// source, a *TruncatedFrameError if the source ended mid-frame, or the
// source's own read error.
func (r *Reader) Read() (Event, error) {
	for {
		ev, err := r.dec.Next()
		if !errors.Is(err, ErrNeedMore) {
			return ev, err
		}
		if r.err != nil {
			return nil, r.err
		}
		n, rerr := r.src.Read(r.buf)
		if n > 0 {
			r.empty = 0
			if _, werr := r.dec.Write(r.buf[:n]); werr != nil {
				r.err = werr
				return nil, werr
			}
		}
		switch {
		case rerr == nil && n == 0:
			r.empty++
			if r.empty >= maxEmptyReads {
				r.err = io.ErrNoProgress
				return nil, r.err
			}
		case rerr == nil:
		case errors.Is(rerr, io.EOF):
			r.dec.Close()
		default:
			r.err = rerr
			if n == 0 {
				return nil, rerr
			}
		}
	}
}

// Each calls fn for every event until the source is exhausted or fn
// returns an error. A clean end returns nil.
func (r *Reader) Each(fn func(Event) error) error {
	for {
		ev, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(ev); err != nil {
			return err
		}
	}
}
