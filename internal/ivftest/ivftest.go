// Package ivftest builds synthetic IVF streams for tests.
package ivftest

import (
	"bytes"
	"encoding/binary"
)

// Header returns a 32-byte IVF file header with the VP80 FourCC.
func Header(width, height uint16, rateNum, rateDen, nrFrames uint32) []byte {
	b := make([]byte, 32)
	copy(b[0:4], "DKIF")
	binary.LittleEndian.PutUint16(b[6:8], 32)
	copy(b[8:12], "VP80")
	binary.LittleEndian.PutUint16(b[12:14], width)
	binary.LittleEndian.PutUint16(b[14:16], height)
	binary.LittleEndian.PutUint32(b[16:20], rateNum)
	binary.LittleEndian.PutUint32(b[20:24], rateDen)
	binary.LittleEndian.PutUint32(b[24:28], nrFrames)
	return b
}

// Envelope returns a 12-byte frame header.
func Envelope(size uint32, timestamp uint64) []byte {
	b := make([]byte, 12)
	binary.LittleEndian.PutUint32(b[0:4], size)
	binary.LittleEndian.PutUint64(b[4:12], timestamp)
	return b
}

// Record returns an envelope followed by payload.
func Record(timestamp uint64, payload []byte) []byte {
	return append(Envelope(uint32(len(payload)), timestamp), payload...)
}

// File returns a complete stream declaring len(payloads) frames, with
// frame i at timestamp i.
func File(width, height uint16, rateNum, rateDen uint32, payloads ...[]byte) []byte {
	var buf bytes.Buffer
	buf.Write(Header(width, height, rateNum, rateDen, uint32(len(payloads))))
	for i, p := range payloads {
		buf.Write(Record(uint64(i), p))
	}
	return buf.Bytes()
}
