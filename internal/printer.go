package internal

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

var Formats = []string{FormatJSON, FormatYAML, FormatText}

// Printer writes one record per call. The first error is kept and all
// later prints become no-ops.
type Printer struct {
	W        io.Writer
	Format   string
	Indent   bool
	AccError error
}

func (p *Printer) Print(data any, show bool) {
	if !show {
		return
	}
	if p.AccError != nil {
		return
	}
	var out []byte
	var err error
	switch p.Format {
	case FormatText:
		if s, ok := data.(fmt.Stringer); ok {
			_, p.AccError = fmt.Fprintln(p.W, s.String())
			return
		}
		out, err = json.Marshal(data)
	case FormatYAML:
		out, err = yaml.Marshal(data)
		if err != nil {
			p.AccError = err
			return
		}
		_, p.AccError = fmt.Fprintf(p.W, "---\n%s", out)
		return
	default:
		if p.Indent {
			out, err = json.MarshalIndent(data, "", "  ")
		} else {
			out, err = json.Marshal(data)
		}
	}
	if err != nil {
		p.AccError = err
		return
	}
	_, p.AccError = fmt.Fprintln(p.W, string(out))
}

func (p *Printer) Error() error {
	return p.AccError
}
