package internal

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	slices "golang.org/x/exp/slices"
)

type Options struct {
	MaxNrFrames    int
	Version        bool
	Indent         bool
	Verbose        bool
	Format         string
	ShowStreamInfo bool
	ShowFrames     bool
	KeyFramesOnly  bool
	ShowStatistics bool
}

func CreateFullOptions(max int) Options {
	return Options{MaxNrFrames: max, Format: FormatJSON, ShowStreamInfo: true, ShowFrames: true, ShowStatistics: true}
}

type OptionParseFunc func() Options
type RunableFunc func(ctx context.Context, w io.Writer, f io.Reader, o Options) error

// ValidateOptions rejects option combinations no command can honor.
func ValidateOptions(o Options) error {
	if o.Format != "" && !slices.Contains(Formats, o.Format) {
		return fmt.Errorf("unknown output format %q, expected one of %v", o.Format, Formats)
	}
	if o.MaxNrFrames < 0 {
		return fmt.Errorf("max nr frames must not be negative")
	}
	return nil
}

func ParseParams(function OptionParseFunc) (o Options, inFile string) {
	o = function()
	if o.Version {
		fmt.Printf("ivf-tools version %s\n", GetVersion())
		os.Exit(0)
	}
	if len(flag.Args()) < 1 {
		flag.Usage()
		os.Exit(1)
	}
	if err := ValidateOptions(o); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(1)
	}
	inFile = flag.Args()[0]
	return o, inFile
}

func Execute(logger zerolog.Logger, w io.Writer, o Options, inFile string, function RunableFunc) error {
	// Create a cancellable context in case you want to stop reading frames any time you want
	ctx, cancel := context.WithCancel(logger.WithContext(context.Background()))
	defer cancel()
	// Handle SIGINT signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT)
	defer signal.Stop(ch)
	go func() {
		select {
		case <-ch:
			logger.Info().Msg("interrupted")
			cancel()
		case <-ctx.Done():
		}
	}()

	var f io.Reader
	if inFile == "-" {
		f = os.Stdin
	} else {
		fh, err := os.Open(inFile)
		if err != nil {
			return fmt.Errorf("opening input %w", err)
		}
		f = fh
		defer fh.Close()
	}

	return function(ctx, w, f, o)
}
