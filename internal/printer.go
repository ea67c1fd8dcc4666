package internal

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

type JsonPrinter struct {
	W        io.Writer
	Indent   bool
	AccError error
}

func (p *JsonPrinter) Print(data any, show bool) {
	if !show {
		return
	}
	var out []byte
	var err error
	if p.AccError != nil {
		return
	}
	if p.Indent {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		p.AccError = err
		return
	}
	_, p.AccError = fmt.Fprintln(p.W, string(out))
}

func (p *JsonPrinter) Error() error {
	return p.AccError
}

var csvHeader = []string{
	"input_file", "chunk_index", "stream_type", "avg_fps", "num_frames",
	"avg_bitrate", "avg_bitrate_over_chunks", "max_bitrate", "min_bitrate",
	"max_bitrate_factor", "bitrate_per_chunk", "aggregation", "chunk_size",
	"duration",
}

// WriteSummaryCSV renders the record as one row per chunk, the scalar
// summary fields repeated on every row and the input identifier first.
func WriteSummaryCSV(w io.Writer, r SummaryRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i, bitrate := range r.BitratePerChunk {
		row := []string{
			r.InputFile,
			strconv.Itoa(i),
			r.StreamType,
			formatFloat(r.AvgFPS),
			strconv.Itoa(r.NumFrames),
			formatFloat(r.AvgBitrate),
			formatFloat(r.AvgBitrateOverChunks),
			formatFloat(r.MaxBitrate),
			formatFloat(r.MinBitrate),
			formatFloat(r.MaxBitrateFactor),
			formatFloat(bitrate),
			r.Aggregation,
			formatFloat(r.ChunkSize),
			formatFloat(r.Duration),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
