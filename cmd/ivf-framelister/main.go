package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Eyevinn/ivf-tools/internal"
	"github.com/rs/zerolog"
)

var usg = `Usage of %s:

%s generates a list of frames with information about size, timestamp, frame type and visibility.
`

func parseOptions() internal.Options {
	opts := internal.Options{ShowStreamInfo: true, ShowFrames: true, ShowStatistics: true}
	flag.IntVar(&opts.MaxNrFrames, "max", 0, "max nr frames to parse")
	flag.StringVar(&opts.Format, "format", internal.FormatJSON, "output format: json, yaml or text")
	flag.BoolVar(&opts.ShowStatistics, "statistics", true, "print stream statistics")
	flag.BoolVar(&opts.Indent, "indent", false, "indent JSON output")
	flag.BoolVar(&opts.Verbose, "verbose", false, "log debug information to stderr")
	flag.BoolVar(&opts.Version, "version", false, "print version")

	flag.Usage = func() {
		parts := strings.Split(os.Args[0], "/")
		name := parts[len(parts)-1]
		fmt.Fprintf(os.Stderr, usg, name, name)
		fmt.Fprintf(os.Stderr, "\nRun as: %s [options] file.ivf (- for stdin) with options:\n\n", name)
		flag.PrintDefaults()
	}

	flag.Parse()
	return opts
}

func listFrames(ctx context.Context, w io.Writer, f io.Reader, o internal.Options) error {
	return internal.ParseAll(ctx, w, f, o)
}

func run(w io.Writer, logger zerolog.Logger, o internal.Options, inFile string) error {
	return internal.Execute(logger, w, o, inFile, listFrames)
}

func main() {
	o, inFile := internal.ParseParams(parseOptions)
	logger := internal.NewLogger(os.Stderr, o.Verbose)
	err := run(os.Stdout, logger, o, inFile)
	if err != nil {
		logger.Fatal().Err(err).Str("file", inFile).Msg("ivf-framelister failed")
	}
}
