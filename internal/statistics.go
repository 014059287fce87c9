package internal

import (
	"fmt"
	"strings"
)

type StreamStatistics struct {
	Codec          string  `json:"codec" yaml:"codec"`
	NrFrames       int     `json:"nrFrames" yaml:"nrFrames"`
	NrKeyFrames    int     `json:"nrKeyFrames" yaml:"nrKeyFrames"`
	NrHiddenFrames int     `json:"nrHiddenFrames" yaml:"nrHiddenFrames"`
	TotalBytes     uint64  `json:"totalBytes" yaml:"totalBytes"`
	FrameRate      float64 `json:"frameRate" yaml:"frameRate"`
	TimeStamps     []int64 `json:"-" yaml:"-"`
	MaxStep        int64   `json:"maxStep,omitempty" yaml:"maxStep,omitempty"`
	MinStep        int64   `json:"minStep,omitempty" yaml:"minStep,omitempty"`
	AvgStep        int64   `json:"avgStep,omitempty" yaml:"avgStep,omitempty"`
	Bitrate        int64   `json:"bitrate,omitempty" yaml:"bitrate,omitempty"`

	// Key frame markers
	KeyFrameNrs []int64 `json:"-" yaml:"-"`
	KeyFrameTS  []int64 `json:"-" yaml:"-"`
	GoPLength   int64   `json:"GoPLength,omitempty" yaml:"GoPLength,omitempty"`
	GoPDuration float64 `json:"GoPDuration,omitempty" yaml:"GoPDuration,omitempty"`

	// Errors
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	timeBaseNum uint32
	timeBaseDen uint32
}

// NewStreamStatistics prepares statistics for a stream whose timestamps
// tick at rateDen/rateNum seconds.
func NewStreamStatistics(codec string, rateNum, rateDen uint32) *StreamStatistics {
	return &StreamStatistics{Codec: codec, timeBaseNum: rateNum, timeBaseDen: rateDen}
}

func (s *StreamStatistics) AddFrame(d FrameData) {
	s.NrFrames++
	s.TotalBytes += uint64(d.Size)
	s.TimeStamps = append(s.TimeStamps, int64(d.Timestamp))
	if d.KeyFrame {
		s.NrKeyFrames++
		s.KeyFrameNrs = append(s.KeyFrameNrs, int64(d.Nr))
		s.KeyFrameTS = append(s.KeyFrameTS, int64(d.Timestamp))
	}
	if !d.Shown {
		s.NrHiddenFrames++
	}
}

func (p *Printer) PrintStatistics(s StreamStatistics, show bool) {
	s.calculateFrameRate()
	s.calculateBitrate()
	s.calculateGoP()
	p.Print(s, show)
}

func (s StreamStatistics) String() string {
	line := fmt.Sprintf("%d frames (%d key, %d hidden), %d bytes, %.02f fps, %d bit/s",
		s.NrFrames, s.NrKeyFrames, s.NrHiddenFrames, s.TotalBytes, s.FrameRate, s.Bitrate)
	if len(s.Errors) > 0 {
		line += "\n   " + strings.Join(s.Errors, "; ")
	}
	return line
}

func sliceMinMaxAverage(values []int64) (min, max, avg int64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	min = values[0]
	max = values[0]
	sum := int64(0)
	for _, number := range values {
		if number < min {
			min = number
		}
		if number > max {
			max = number
		}
		sum += number
	}
	avg = sum / int64(len(values))
	return min, max, avg
}

func CalculateSteps(values []int64) []int64 {
	if len(values) < 2 {
		return nil
	}

	steps := make([]int64, len(values)-1)
	for i := 0; i < len(values)-1; i++ {
		steps[i] = values[i+1] - values[i]
	}
	return steps
}

func (s *StreamStatistics) validTimeBase() bool {
	return s.timeBaseNum != 0 && s.timeBaseDen != 0
}

// Calculate frame rate from timestamp steps
func (s *StreamStatistics) calculateFrameRate() {
	if len(s.TimeStamps) < 2 {
		s.Errors = append(s.Errors, "too few timestamps to calculate frame rate")
		return
	}

	steps := CalculateSteps(s.TimeStamps)
	minStep, maxStep, avgStep := sliceMinMaxAverage(steps)
	if maxStep != minStep {
		s.Errors = append(s.Errors, "irregular timestamp steps")
		s.MinStep, s.MaxStep, s.AvgStep = minStep, maxStep, avgStep
	}
	if !s.validTimeBase() {
		s.Errors = append(s.Errors, "invalid time base")
		return
	}
	if avgStep <= 0 {
		s.Errors = append(s.Errors, "non-increasing timestamps")
		return
	}
	s.FrameRate = float64(s.timeBaseNum) / (float64(s.timeBaseDen) * float64(avgStep))
}

// calculateBitrate assumes the last frame lasts one average step.
func (s *StreamStatistics) calculateBitrate() {
	if len(s.TimeStamps) == 0 || !s.validTimeBase() {
		return
	}
	_, _, avgStep := sliceMinMaxAverage(CalculateSteps(s.TimeStamps))
	if avgStep <= 0 {
		avgStep = 1
	}
	ticks := s.TimeStamps[len(s.TimeStamps)-1] - s.TimeStamps[0] + avgStep
	if ticks <= 0 {
		return
	}
	s.Bitrate = int64(s.TotalBytes) * 8 * int64(s.timeBaseNum) / (ticks * int64(s.timeBaseDen))
}

func (s *StreamStatistics) calculateGoP() {
	if len(s.KeyFrameNrs) < 2 {
		s.Errors = append(s.Errors, "no GoP length since less than 2 key frames")
		return
	}

	_, _, s.GoPLength = sliceMinMaxAverage(CalculateSteps(s.KeyFrameNrs))
	if !s.validTimeBase() {
		return
	}
	_, _, tsStep := sliceMinMaxAverage(CalculateSteps(s.KeyFrameTS))
	s.GoPDuration = float64(tsStep) * float64(s.timeBaseDen) / float64(s.timeBaseNum)
}
