package ivf

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a format failure.
type Kind uint8

const (
	InvalidSignature Kind = iota + 1
	TruncatedInput
	FrameTooLarge
)

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrTruncatedInput   = errors.New("truncated input")
	ErrFrameTooLarge    = errors.New("frame too large")
)

// HeaderFrame is the frame index reported for failures inside the file header.
const HeaderFrame = -1

// Err returns the sentinel error matching k.
func (k Kind) Err() error {
	switch k {
	case InvalidSignature:
		return ErrInvalidSignature
	case TruncatedInput:
		return ErrTruncatedInput
	case FrameTooLarge:
		return ErrFrameTooLarge
	}
	return nil
}

func (k Kind) String() string {
	if err := k.Err(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// FormatError reports where in the stream the container could not be read.
type FormatError struct {
	Kind   Kind
	Offset int64 // byte offset in the stream
	Frame  int64 // zero-based frame index or HeaderFrame
	Err    error // optional cause
}

func (e *FormatError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ivf: %s at offset %d", e.Kind, e.Offset)
	if e.Frame >= 0 {
		fmt.Fprintf(&sb, " (frame %d)", e.Frame)
	} else {
		sb.WriteString(" (file header)")
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap makes errors.Is match both the kind sentinel and the cause.
func (e *FormatError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if k := e.Kind.Err(); k != nil {
		errs = append(errs, k)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the Kind of the first FormatError in err's chain, or 0.
func KindOf(err error) Kind {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
