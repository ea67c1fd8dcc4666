package internal

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	slices "golang.org/x/exp/slices"
)

const (
	StreamTypeVideo = "video"
	StreamTypeAudio = "audio"

	AggregationTime = "time"
	AggregationGOP  = "gop"

	FormatJSON = "json"
	FormatCSV  = "csv"

	ProbeFFprobe = "ffprobe"
	ProbeTS      = "ts"
	ProbeMP4     = "mp4"
)

type Options struct {
	StreamType   string
	Aggregation  string
	ChunkSize    float64
	OutputFormat string
	Probe        string
	DryRun       bool
	Verbose      bool
	Version      bool
	Indent       bool
}

// Validate rejects invalid configurations before any packet data is
// fetched.
func (o Options) Validate() error {
	if !slices.Contains([]string{StreamTypeVideo, StreamTypeAudio}, o.StreamType) {
		return fmt.Errorf("stream type must be audio or video, got %q", o.StreamType)
	}
	if !slices.Contains([]string{AggregationTime, AggregationGOP}, o.Aggregation) {
		return fmt.Errorf("aggregation must be time or gop, got %q", o.Aggregation)
	}
	if o.Aggregation == AggregationGOP && o.StreamType == StreamTypeAudio {
		return fmt.Errorf("GOP aggregation for audio does not make sense")
	}
	if o.Aggregation == AggregationTime && o.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be greater than 0, got %v", o.ChunkSize)
	}
	if !slices.Contains([]string{FormatJSON, FormatCSV}, o.OutputFormat) {
		return fmt.Errorf("output format must be json or csv, got %q", o.OutputFormat)
	}
	if !slices.Contains([]string{ProbeFFprobe, ProbeTS, ProbeMP4}, o.Probe) {
		return fmt.Errorf("probe must be ffprobe, ts or mp4, got %q", o.Probe)
	}
	if o.DryRun && o.Probe != ProbeFFprobe {
		return fmt.Errorf("dry run is only supported with the ffprobe probe")
	}
	return nil
}

type OptionParseFunc func() Options
type RunableFunc func(ctx context.Context, w io.Writer, o Options, inFile string) error

func ParseParams(function OptionParseFunc) (o Options, inFile string) {
	o = function()
	if o.Version {
		fmt.Printf("bitrate-stats version %s\n", GetVersion())
		os.Exit(0)
	}
	if len(flag.Args()) < 1 {
		flag.Usage()
		os.Exit(1)
	}
	inFile = flag.Args()[0]
	return o, inFile
}

func Execute(w io.Writer, o Options, inFile string, function RunableFunc) error {
	// Create a cancellable context so probing can be interrupted
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT)
	go func() {
		<-ch
		cancel()
	}()

	return function(ctx, w, o, inFile)
}

// Run is the full analysis pipeline: validate configuration, probe the
// input, compute statistics, render the summary record.
func Run(ctx context.Context, w io.Writer, o Options, inFile string) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if o.DryRun {
		log.Printf("[cmd] %s", strings.Join(FFprobeCommand(o.StreamType, inFile), " "))
		return nil
	}

	raw, err := ProbePackets(ctx, o, inFile)
	if err != nil {
		return err
	}

	stats := NewBitrateStats(o, inFile, raw)
	for _, warning := range stats.Warnings {
		log.Print(warning)
	}

	record, err := stats.CalculateStatistics()
	if err != nil {
		return err
	}

	switch o.OutputFormat {
	case FormatCSV:
		return WriteSummaryCSV(w, record)
	default:
		jp := &JsonPrinter{W: w, Indent: o.Indent}
		jp.Print(record, true)
		return jp.Error()
	}
}

// ProbePackets dispatches to the configured prober.
func ProbePackets(ctx context.Context, o Options, inFile string) ([]RawPacket, error) {
	switch o.Probe {
	case ProbeTS:
		return ProbeTSFile(ctx, o.StreamType, inFile)
	case ProbeMP4:
		return ProbeMP4File(o.StreamType, inFile)
	default:
		return RunFFprobe(ctx, o, inFile)
	}
}
