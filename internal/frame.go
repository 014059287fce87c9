package internal

import (
	"fmt"

	"github.com/Eyevinn/ivf-tools/internal/ivf"
	"github.com/Eyevinn/ivf-tools/internal/vp8"
)

type StreamInfo struct {
	FourCC       string  `json:"fourcc" yaml:"fourcc"`
	Width        uint16  `json:"width" yaml:"width"`
	Height       uint16  `json:"height" yaml:"height"`
	FrameRateNum uint32  `json:"frameRateNumerator" yaml:"frameRateNumerator"`
	FrameRateDen uint32  `json:"frameRateDenominator" yaml:"frameRateDenominator"`
	FrameRate    float64 `json:"frameRate" yaml:"frameRate"`
	NrFrames     uint32  `json:"nrFrames" yaml:"nrFrames"`
}

func ToStreamInfo(hdr ivf.Header) StreamInfo {
	return StreamInfo{
		FourCC:       hdr.FourCC,
		Width:        hdr.Width,
		Height:       hdr.Height,
		FrameRateNum: hdr.FrameRateNum,
		FrameRateDen: hdr.FrameRateDen,
		FrameRate:    hdr.FrameRate(),
		NrFrames:     hdr.NrFrames,
	}
}

func (s StreamInfo) String() string {
	return fmt.Sprintf("%dx%d, %.02f fps, %d frames", s.Width, s.Height, s.FrameRate, s.NrFrames)
}

type FrameData struct {
	Nr        uint32 `json:"frame" yaml:"frame"`
	Offset    int64  `json:"offset" yaml:"offset"`
	Size      uint32 `json:"size" yaml:"size"`
	Timestamp uint64 `json:"timestamp" yaml:"timestamp"`
	KeyFrame  bool   `json:"keyFrame" yaml:"keyFrame"`
	Version   uint8  `json:"version" yaml:"version"`
	Shown     bool   `json:"shown" yaml:"shown"`
}

func ToFrameData(f ivf.Frame, tag vp8.FrameTag) FrameData {
	return FrameData{
		Nr:        f.Index,
		Offset:    f.Offset,
		Size:      f.Size,
		Timestamp: f.Timestamp,
		KeyFrame:  tag.KeyFrame,
		Version:   tag.Version,
		Shown:     tag.Shown,
	}
}

func (d FrameData) String() string {
	frameType := "P-frame"
	if d.KeyFrame {
		frameType = "I-frame"
	}
	display := "Hidden"
	if d.Shown {
		display = "Displayed"
	}
	return fmt.Sprintf("Frame %d, length %d\n   %s, version %d, %s", d.Nr, d.Size, frameType, d.Version, display)
}
