// Package ivf reads IVF containers: a 32-byte file header followed by
// length-prefixed frame records.
package ivf

import (
	"encoding/binary"
	"fmt"
)

const (
	Signature       = "DKIF"
	FileHeaderSize  = 32
	FrameHeaderSize = 12
	// MaxFrameSize is the largest payload a frame record may declare.
	MaxFrameSize = 32 << 20
)

// Header is the IVF file header.
type Header struct {
	Version      uint16
	HeaderSize   uint16
	FourCC       string
	Width        uint16
	Height       uint16
	FrameRateNum uint32
	FrameRateDen uint32
	NrFrames     uint32
}

// FrameRate returns FrameRateNum/FrameRateDen, or 0 if the denominator is 0.
func (h Header) FrameRate() float64 {
	if h.FrameRateDen == 0 {
		return 0
	}
	return float64(h.FrameRateNum) / float64(h.FrameRateDen)
}

// FrameHeader is the 12-byte envelope in front of every frame payload.
type FrameHeader struct {
	Size      uint32
	Timestamp uint64
}

// Frame is one frame record. Payload is owned by the caller.
type Frame struct {
	FrameHeader
	Index   uint32
	Offset  int64
	Payload []byte
}

// DecodeHeader decodes a file header. The codec FourCC is not checked.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < FileHeaderSize {
		return Header{}, &FormatError{Kind: TruncatedInput, Offset: int64(len(b)), Frame: HeaderFrame,
			Err: fmt.Errorf("need %d bytes, got %d", FileHeaderSize, len(b))}
	}
	if string(b[0:4]) != Signature {
		return Header{}, &FormatError{Kind: InvalidSignature, Offset: 0, Frame: HeaderFrame,
			Err: fmt.Errorf("got %q, want %q", b[0:4], Signature)}
	}
	le := binary.LittleEndian
	return Header{
		Version:      le.Uint16(b[4:6]),
		HeaderSize:   le.Uint16(b[6:8]),
		FourCC:       string(b[8:12]),
		Width:        le.Uint16(b[12:14]),
		Height:       le.Uint16(b[14:16]),
		FrameRateNum: le.Uint32(b[16:20]),
		FrameRateDen: le.Uint32(b[20:24]),
		NrFrames:     le.Uint32(b[24:28]),
	}, nil
}

// DecodeFrameHeader decodes a frame envelope. The size ceiling is not
// applied here.
func DecodeFrameHeader(b []byte) (FrameHeader, error) {
	if len(b) < FrameHeaderSize {
		return FrameHeader{}, &FormatError{Kind: TruncatedInput, Offset: int64(len(b)), Frame: 0,
			Err: fmt.Errorf("need %d bytes, got %d", FrameHeaderSize, len(b))}
	}
	return FrameHeader{
		Size:      binary.LittleEndian.Uint32(b[0:4]),
		Timestamp: binary.LittleEndian.Uint64(b[4:12]),
	}, nil
}
