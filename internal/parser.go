package internal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Eyevinn/ivf-tools/internal/ivf"
	"github.com/Eyevinn/ivf-tools/internal/vp8"
	"github.com/rs/zerolog"
)

const readBufferSize = 64 * 1024

func newPrinter(w io.Writer, o Options) *Printer {
	format := o.Format
	if format == "" {
		format = FormatJSON
	}
	return &Printer{W: w, Format: format, Indent: o.Indent}
}

func readHeader(ctx context.Context, rd *ivf.Reader) (ivf.Header, error) {
	log := zerolog.Ctx(ctx)
	hdr, err := rd.ReadHeader()
	if err != nil {
		return ivf.Header{}, fmt.Errorf("reading header %w", err)
	}
	log.Debug().
		Str("fourcc", hdr.FourCC).
		Uint16("version", hdr.Version).
		Uint16("width", hdr.Width).
		Uint16("height", hdr.Height).
		Uint32("frames", hdr.NrFrames).
		Msg("parsed file header")
	if hdr.HeaderSize != ivf.FileHeaderSize {
		log.Warn().Uint16("headerSize", hdr.HeaderSize).Msgf("header size field differs from %d, ignored", ivf.FileHeaderSize)
	}
	if hdr.FrameRateNum == 0 || hdr.FrameRateDen == 0 {
		log.Warn().
			Uint32("numerator", hdr.FrameRateNum).
			Uint32("denominator", hdr.FrameRateDen).
			Msg("invalid frame rate in header")
	}
	return hdr, nil
}

// ParseInfo prints the stream information found in the file header.
func ParseInfo(ctx context.Context, w io.Writer, f io.Reader, o Options) error {
	rd := ivf.NewReader(f)
	jp := newPrinter(w, o)
	hdr, err := readHeader(ctx, rd)
	if err != nil {
		return err
	}
	jp.Print(ToStreamInfo(hdr), o.ShowStreamInfo)
	return jp.Error()
}

// ParseAll walks all declared frames, decodes their frame tags and prints
// stream info, frames and statistics according to o.
func ParseAll(ctx context.Context, w io.Writer, f io.Reader, o Options) error {
	log := zerolog.Ctx(ctx)
	rd := ivf.NewReader(bufio.NewReaderSize(f, readBufferSize))
	jp := newPrinter(w, o)
	hdr, err := readHeader(ctx, rd)
	if err != nil {
		return err
	}
	jp.Print(ToStreamInfo(hdr), o.ShowStreamInfo)

	statistics := NewStreamStatistics(hdr.FourCC, hdr.FrameRateNum, hdr.FrameRateDen)
	nrFrames := 0
frameLoop:
	for {
		// Check if context was cancelled
		select {
		case <-ctx.Done():
			break frameLoop
		default:
		}

		frame, err := rd.NextFrame()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break frameLoop
			}
			return fmt.Errorf("reading frame %d %w", nrFrames, err)
		}

		tag, err := vp8.DecodeFrameTag(frame.Payload)
		if err != nil {
			return fmt.Errorf("decoding frame tag %w", &ivf.FormatError{
				Kind:   ivf.TruncatedInput,
				Offset: frame.Offset + ivf.FrameHeaderSize + int64(len(frame.Payload)),
				Frame:  int64(frame.Index),
				Err:    err,
			})
		}

		fd := ToFrameData(frame, tag)
		log.Debug().
			Uint32("frame", fd.Nr).
			Uint32("size", fd.Size).
			Uint64("timestamp", fd.Timestamp).
			Str("type", tag.FrameType()).
			Msg("frame")
		statistics.AddFrame(fd)
		jp.Print(fd, o.ShowFrames && (fd.KeyFrame || !o.KeyFramesOnly))
		nrFrames++

		// Keep looping if MaxNrFrames equals 0
		if o.MaxNrFrames > 0 && nrFrames >= o.MaxNrFrames {
			log.Debug().Int("max", o.MaxNrFrames).Msg("reached max nr frames")
			break frameLoop
		}
	}

	jp.PrintStatistics(*statistics, o.ShowStatistics)
	return jp.Error()
}
