package capture

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Writer records bytes into a capture. Data is buffered into blocks of at
// most BlockSize bytes; Flush forces out a partial block.
type Writer struct {
	codec   Codec
	dst     *bufio.Writer
	closer  io.Closer
	block   []byte
	scratch []byte
	written int64
	err     error
}

// NewWriter writes the capture header to w.
func NewWriter(w io.Writer, codec Codec) (*Writer, error) {
	if !codec.valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCodec, codec)
	}
	bw := bufio.NewWriter(w)
	hdr := append(magic[:], byte(codec))
	if _, err := bw.Write(hdr); err != nil {
		return nil, err
	}
	return &Writer{codec: codec, dst: bw, block: make([]byte, 0, BlockSize)}, nil
}

// Create truncates path and starts a capture in it. Close closes the file.
func Create(path string, codec Codec) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("capture create failed (%s): %w", path, err)
	}
	w, err := NewWriter(f, codec)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

func (w *Writer) Codec() Codec { return w.codec }

// Written is the number of raw bytes accepted so far.
func (w *Writer) Written() int64 { return w.written }

func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n := 0
	for len(p) > 0 {
		k := copy(w.block[len(w.block):cap(w.block)], p)
		w.block = w.block[:len(w.block)+k]
		p = p[k:]
		n += k
		w.written += int64(k)
		if len(w.block) == cap(w.block) {
			if err := w.writeBlock(); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

func (w *Writer) writeBlock() error {
	if len(w.block) == 0 {
		return nil
	}
	stored, err := w.codec.compress(w.block, w.scratch)
	if err != nil {
		w.err = err
		return err
	}
	if stored == nil {
		stored = w.block
	} else {
		w.scratch = stored[:0]
	}
	var hdr [blockHeaderLen]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(len(w.block)))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(len(stored)))
	if _, err := w.dst.Write(hdr[:]); err != nil {
		w.err = err
		return err
	}
	if _, err := w.dst.Write(stored); err != nil {
		w.err = err
		return err
	}
	w.block = w.block[:0]
	return nil
}

func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.writeBlock(); err != nil {
		return err
	}
	return w.dst.Flush()
}

func (w *Writer) Close() error {
	err := w.Flush()
	if w.err == nil {
		w.err = os.ErrClosed
	}
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Reader replays the raw bytes of a capture.
type Reader struct {
	codec  Codec
	src    *bufio.Reader
	closer io.Closer
	block  []byte
	buf    []byte
	stored []byte
}

// NewReader consumes and checks the capture header.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	var hdr [headerLen]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrBadMagic
		}
		return nil, err
	}
	if [4]byte(hdr[:4]) != magic {
		return nil, ErrBadMagic
	}
	codec := Codec(hdr[4])
	if !codec.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, hdr[4])
	}
	return &Reader{codec: codec, src: br}, nil
}

// Open starts replaying the capture at path. Close closes the file.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("capture open failed (%s): %w", path, err)
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("capture open failed (%s): %w", path, err)
	}
	r.closer = f
	return r, nil
}

func (r *Reader) Codec() Codec { return r.codec }

func (r *Reader) Read(p []byte) (int, error) {
	for len(r.block) == 0 {
		if err := r.next(); err != nil {
			return 0, err
		}
	}
	n := copy(p, r.block)
	r.block = r.block[n:]
	return n, nil
}

func (r *Reader) next() error {
	var hdr [blockHeaderLen]byte
	if _, err := io.ReadFull(r.src, hdr[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: truncated block header", ErrCorrupt)
		}
		return err
	}
	rawLen := int(binary.LittleEndian.Uint32(hdr[0:]))
	storedLen := int(binary.LittleEndian.Uint32(hdr[4:]))
	if rawLen > BlockSize || storedLen > rawLen {
		return fmt.Errorf("%w: block sizes raw=%d stored=%d", ErrCorrupt, rawLen, storedLen)
	}
	if cap(r.stored) < storedLen {
		r.stored = make([]byte, storedLen)
	}
	stored := r.stored[:storedLen]
	if _, err := io.ReadFull(r.src, stored); err != nil {
		return fmt.Errorf("%w: truncated block body: %v", ErrCorrupt, err)
	}
	if storedLen == rawLen {
		r.block = stored
		return nil
	}
	out, err := r.codec.decompress(stored, rawLen, r.buf)
	if err != nil {
		return err
	}
	r.buf = out
	r.block = out
	return nil
}

func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
