// Package vp8 decodes the uncompressed frame tag at the start of a VP8 frame.
package vp8

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Eyevinn/mp4ff/bits"
)

// FrameTagSize is the number of payload bytes the frame tag occupies.
const FrameTagSize = 3

var ErrTruncatedInput = errors.New("vp8: truncated frame tag")

// FrameTag holds the fields packed into the 24-bit little-endian tag.
//
//	bit 0      inverse key frame flag
//	bits 1-3   version
//	bits 5-23  show indicator, shown if non-zero
type FrameTag struct {
	Tag      uint32
	KeyFrame bool
	Version  uint8
	Shown    bool
}

// FrameType returns "I-frame" for key frames and "P-frame" otherwise.
func (t FrameTag) FrameType() string {
	if t.KeyFrame {
		return "I-frame"
	}
	return "P-frame"
}

// DecodeFrameTag decodes the tag in the first three bytes of payload.
func DecodeFrameTag(payload []byte) (FrameTag, error) {
	if len(payload) < FrameTagSize {
		return FrameTag{}, fmt.Errorf("%w: need %d bytes, got %d", ErrTruncatedInput, FrameTagSize, len(payload))
	}
	// Byte-swapped so that the fields come out most significant first.
	r := bits.NewReader(bytes.NewReader([]byte{payload[2], payload[1], payload[0]}))
	show := r.Read(19)
	_ = r.Read(1) // bit 4
	version := r.Read(3)
	inter := r.Read(1)
	if err := r.AccError(); err != nil {
		return FrameTag{}, fmt.Errorf("vp8: reading frame tag: %w", err)
	}
	return FrameTag{
		Tag:      uint32(payload[0]) | uint32(payload[1])<<8 | uint32(payload[2])<<16,
		KeyFrame: inter == 0,
		Version:  uint8(version),
		Shown:    show != 0,
	}, nil
}
