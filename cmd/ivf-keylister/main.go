package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Eyevinn/ivf-tools/internal"
)

var usg = `Usage of %s:

%s lists the key frames of IVF files together with GoP statistics
`

func parseOptions() internal.Options {
	opts := internal.Options{ShowStreamInfo: true, ShowFrames: true, KeyFramesOnly: true, ShowStatistics: true}
	flag.IntVar(&opts.MaxNrFrames, "max", 0, "max nr frames to parse (key frames or not)")
	flag.StringVar(&opts.Format, "format", internal.FormatJSON, "output format: json, yaml or text")
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

func listKeyFrames(ctx context.Context, w io.Writer, f io.Reader, o internal.Options) error {
	return internal.ParseAll(ctx, w, f, o)
}

func main() {
	o, inFile := internal.ParseParams(parseOptions)
	logger := internal.NewLogger(os.Stderr, o.Verbose)
	err := internal.Execute(logger, os.Stdout, o, inFile, listKeyFrames)
	if err != nil {
		logger.Fatal().Err(err).Str("file", inFile).Msg("ivf-keylister failed")
	}
}
