package ivf

import (
	"errors"
	"fmt"
	"io"
)

// Reader reads the header and then the declared number of frame records
// from a stream. The stream is only ever read forward.
type Reader struct {
	rd         io.Reader
	offset     int64
	header     Header
	headerRead bool
	nrRead     uint32
	err        error
	buf        [FileHeaderSize]byte
}

func NewReader(rd io.Reader) *Reader {
	return &Reader{rd: rd}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

// ReadHeader reads and decodes the 32-byte file header. Calling it again
// returns the already decoded header.
func (r *Reader) ReadHeader() (Header, error) {
	if r.err != nil {
		return Header{}, r.err
	}
	if r.headerRead {
		return r.header, nil
	}
	if err := r.fill(r.buf[:FileHeaderSize], HeaderFrame); err != nil {
		return Header{}, err
	}
	hdr, err := DecodeHeader(r.buf[:FileHeaderSize])
	if err != nil {
		r.err = err
		return Header{}, err
	}
	r.header = hdr
	r.headerRead = true
	return hdr, nil
}

// NextFrame reads the next frame record. It returns io.EOF once the number
// of frames declared in the header has been read; any trailing bytes are
// left unread.
func (r *Reader) NextFrame() (Frame, error) {
	if _, err := r.ReadHeader(); err != nil {
		return Frame{}, err
	}
	if r.nrRead >= r.header.NrFrames {
		return Frame{}, io.EOF
	}
	idx := int64(r.nrRead)
	start := r.offset
	env := r.buf[:FrameHeaderSize]
	if err := r.fill(env, idx); err != nil {
		return Frame{}, err
	}
	fh, err := DecodeFrameHeader(env)
	if err != nil {
		r.err = err
		return Frame{}, err
	}
	if fh.Size > MaxFrameSize {
		r.err = &FormatError{Kind: FrameTooLarge, Offset: start, Frame: idx,
			Err: fmt.Errorf("declared size %d exceeds %d", fh.Size, MaxFrameSize)}
		return Frame{}, r.err
	}
	payload := make([]byte, fh.Size)
	if err := r.fill(payload, idx); err != nil {
		return Frame{}, err
	}
	r.nrRead++
	return Frame{
		FrameHeader: fh,
		Index:       uint32(idx),
		Offset:      start,
		Payload:     payload,
	}, nil
}

// fill reads exactly len(b) bytes. A short read becomes a TruncatedInput
// error at the offset where the data ran out.
func (r *Reader) fill(b []byte, frame int64) error {
	n, err := io.ReadFull(r.rd, b)
	r.offset += int64(n)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		r.err = &FormatError{Kind: TruncatedInput, Offset: r.offset, Frame: frame,
			Err: fmt.Errorf("needed %d bytes, got %d", len(b), n)}
	} else {
		r.err = fmt.Errorf("ivf: reading at offset %d: %w", r.offset, err)
	}
	return r.err
}
