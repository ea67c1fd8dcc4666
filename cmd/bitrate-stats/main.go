package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Eyevinn/bitrate-stats/internal"
)

var usg = `Usage of %s:

%s computes bitrate statistics for one stream of a media file from
per-packet size and timing metadata, without decoding. Bitrates are
aggregated over time windows or GOPs and reported in kbit/s.
`

func parseOptions() internal.Options {
	opts := internal.Options{Indent: true}
	flag.StringVar(&opts.StreamType, "s", "video", "stream type to analyze (video, audio)")
	flag.StringVar(&opts.Aggregation, "a", "time", "aggregation window, time-based or per GOP (time, gop)")
	flag.Float64Var(&opts.ChunkSize, "c", 1.0, "aggregation window size in seconds, time mode only")
	flag.StringVar(&opts.OutputFormat, "of", "json", "output format (json, csv)")
	flag.StringVar(&opts.Probe, "probe", "ffprobe", "packet source (ffprobe, ts, mp4)")
	flag.BoolVar(&opts.DryRun, "n", false, "do not run ffprobe, just show what would be done")
	flag.BoolVar(&opts.Verbose, "v", false, "show verbose output")
	flag.BoolVar(&opts.Version, "version", false, "print version")

	flag.Usage = func() {
		parts := strings.Split(os.Args[0], "/")
		name := parts[len(parts)-1]
		fmt.Fprintf(os.Stderr, usg, name, name)
		fmt.Fprintf(os.Stderr, "\nRun as: %s [options] file with options:\n\n", name)
		flag.PrintDefaults()
	}

	flag.Parse()
	return opts
}

func main() {
	o, inFile := internal.ParseParams(parseOptions)
	err := internal.Execute(os.Stdout, o, inFile, internal.Run)
	if err != nil {
		log.Fatal(err)
	}
}
