package ivf_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/Eyevinn/ivf-tools/internal/ivf"
	"github.com/Eyevinn/ivf-tools/internal/ivftest"
	"github.com/stretchr/testify/require"
)

func TestReadSingleFrame(t *testing.T) {
	data := ivftest.File(16, 16, 30, 1, []byte{0x00, 0x00, 0x00})
	rd := ivf.NewReader(bytes.NewReader(data))

	hdr, err := rd.ReadHeader()
	require.NoError(t, err)
	require.Equal(t, ivf.Header{
		Version:      0,
		HeaderSize:   32,
		FourCC:       "VP80",
		Width:        16,
		Height:       16,
		FrameRateNum: 30,
		FrameRateDen: 1,
		NrFrames:     1,
	}, hdr)
	require.Equal(t, 30.0, hdr.FrameRate())
	require.Equal(t, int64(32), rd.Offset())

	frame, err := rd.NextFrame()
	require.NoError(t, err)
	require.Equal(t, uint32(3), frame.Size)
	require.Equal(t, uint64(0), frame.Timestamp)
	require.Equal(t, uint32(0), frame.Index)
	require.Equal(t, int64(32), frame.Offset)
	require.Equal(t, []byte{0x00, 0x00, 0x00}, frame.Payload)
	require.Equal(t, int64(47), rd.Offset())

	_, err = rd.NextFrame()
	require.ErrorIs(t, err, io.EOF)
}

func TestReadHeaderErrors(t *testing.T) {
	valid := ivftest.Header(16, 16, 30, 1, 0)
	badSig := append([]byte{}, valid...)
	copy(badSig, "DKIG")
	lower := append([]byte{}, valid...)
	copy(lower, "dkif")

	cases := []struct {
		name   string
		data   []byte
		kind   ivf.Kind
		target error
		offset int64
	}{
		{"truncated to 20 bytes", valid[:20], ivf.TruncatedInput, ivf.ErrTruncatedInput, 20},
		{"empty", nil, ivf.TruncatedInput, ivf.ErrTruncatedInput, 0},
		{"wrong signature", badSig, ivf.InvalidSignature, ivf.ErrInvalidSignature, 0},
		{"lower case signature", lower, ivf.InvalidSignature, ivf.ErrInvalidSignature, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rd := ivf.NewReader(bytes.NewReader(c.data))
			hdr, err := rd.ReadHeader()
			require.ErrorIs(t, err, c.target)
			require.Equal(t, c.kind, ivf.KindOf(err))
			require.Equal(t, ivf.Header{}, hdr)
			var fe *ivf.FormatError
			require.True(t, errors.As(err, &fe))
			require.Equal(t, c.offset, fe.Offset)
			require.Equal(t, int64(ivf.HeaderFrame), fe.Frame)
		})
	}
}

func TestFourCCNotValidated(t *testing.T) {
	data := ivftest.Header(640, 480, 25, 1, 0)
	copy(data[8:12], "XXXX")
	hdr, err := ivf.NewReader(bytes.NewReader(data)).ReadHeader()
	require.NoError(t, err)
	require.Equal(t, "XXXX", hdr.FourCC)
	require.Equal(t, uint16(640), hdr.Width)
	require.Equal(t, uint16(480), hdr.Height)
}

func TestFrameTooLarge(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(ivftest.Header(16, 16, 30, 1, 1))
	buf.Write(ivftest.Envelope(ivf.MaxFrameSize+1, 7))

	rd := ivf.NewReader(&buf)
	_, err := rd.NextFrame()
	require.ErrorIs(t, err, ivf.ErrFrameTooLarge)
	var fe *ivf.FormatError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, int64(32), fe.Offset)
	require.Equal(t, int64(0), fe.Frame)

	// errors are sticky
	_, err2 := rd.NextFrame()
	require.Equal(t, err, err2)
}

func TestFrameAtSizeCeiling(t *testing.T) {
	payload := make([]byte, ivf.MaxFrameSize)
	payload[0] = 0x01
	data := ivftest.File(16, 16, 30, 1, payload)

	frame, err := ivf.NewReader(bytes.NewReader(data)).NextFrame()
	require.NoError(t, err)
	require.Equal(t, uint32(ivf.MaxFrameSize), frame.Size)
	require.Len(t, frame.Payload, ivf.MaxFrameSize)
}

func TestTruncatedFrames(t *testing.T) {
	oneFrame := ivftest.Record(0, []byte{0x10, 0x02, 0x00})

	cases := []struct {
		name     string
		data     []byte
		okFrames int
		offset   int64
	}{
		{
			name:     "second frame missing",
			data:     append(ivftest.Header(16, 16, 30, 1, 2), oneFrame...),
			okFrames: 1,
			offset:   47,
		},
		{
			name:     "short envelope",
			data:     append(ivftest.Header(16, 16, 30, 1, 1), ivftest.Envelope(3, 0)[:8]...),
			okFrames: 0,
			offset:   40,
		},
		{
			name:     "short payload",
			data:     append(ivftest.Header(16, 16, 30, 1, 1), oneFrame[:13]...),
			okFrames: 0,
			offset:   45,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rd := ivf.NewReader(bytes.NewReader(c.data))
			for i := 0; i < c.okFrames; i++ {
				_, err := rd.NextFrame()
				require.NoError(t, err)
			}
			_, err := rd.NextFrame()
			require.ErrorIs(t, err, ivf.ErrTruncatedInput)
			require.NotErrorIs(t, err, io.EOF)
			var fe *ivf.FormatError
			require.True(t, errors.As(err, &fe))
			require.Equal(t, int64(c.okFrames), fe.Frame)
			require.Equal(t, c.offset, fe.Offset)
		})
	}
}

func TestTrailingBytesIgnored(t *testing.T) {
	data := ivftest.File(16, 16, 30, 1, []byte{1, 2, 3})
	data = append(data, ivftest.Record(1, []byte{4, 5, 6})...)

	rd := ivf.NewReader(bytes.NewReader(data))
	_, err := rd.NextFrame()
	require.NoError(t, err)
	_, err = rd.NextFrame()
	require.ErrorIs(t, err, io.EOF)
}

func TestFramesStayAligned(t *testing.T) {
	data := ivftest.File(16, 16, 30, 1, []byte{1, 2, 3, 4, 5}, nil, []byte{6, 7, 8})
	rd := ivf.NewReader(bytes.NewReader(data))

	var offsets []int64
	var sizes []uint32
	for {
		f, err := rd.NextFrame()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		offsets = append(offsets, f.Offset)
		sizes = append(sizes, f.Size)
		require.Equal(t, uint64(f.Index), f.Timestamp)
	}
	require.Equal(t, []int64{32, 49, 61}, offsets)
	require.Equal(t, []uint32{5, 0, 3}, sizes)
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestReadErrorIsNotTruncation(t *testing.T) {
	_, err := ivf.NewReader(failingReader{}).ReadHeader()
	require.Error(t, err)
	require.Equal(t, ivf.Kind(0), ivf.KindOf(err))
	require.Contains(t, err.Error(), "disk on fire")
}

func TestFormatErrorMessage(t *testing.T) {
	err := &ivf.FormatError{Kind: ivf.FrameTooLarge, Offset: 44, Frame: 1}
	require.Equal(t, "ivf: frame too large at offset 44 (frame 1)", err.Error())
	err = &ivf.FormatError{Kind: ivf.InvalidSignature, Offset: 0, Frame: ivf.HeaderFrame}
	require.Equal(t, "ivf: invalid signature at offset 0 (file header)", err.Error())
}
