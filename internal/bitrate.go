package internal

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoChunks means no chunk held at least two packets, so min/max
	// bitrate are undefined.
	ErrNoChunks = errors.New("no chunk contains at least two packets")
	// ErrZeroChunkSpan means all presentation times within a chunk
	// coincide (or are unknown), leaving the bitrate undefined.
	ErrZeroChunkSpan = errors.New("zero presentation time span in chunk")
)

// chunkBitrate reduces one chunk of at least two packets to a bitrate
// in kbit/s: total bits divided by the summed pts deltas between
// consecutive packets. Declared durations deliberately play no part
// here; the pts span also covers gaps and overlaps.
func chunkBitrate(chunk []Packet) (float64, error) {
	var size int64
	for _, p := range chunk {
		size += p.Size
	}
	var span float64
	for i := 0; i < len(chunk)-1; i++ {
		span += chunk[i+1].PTS - chunk[i].PTS
	}
	if span == 0 || math.IsNaN(span) {
		return 0, fmt.Errorf("packets %d-%d: %w",
			chunk[0].Index, chunk[len(chunk)-1].Index, ErrZeroChunkSpan)
	}
	return float64(size) * 8 / 1000 / span, nil
}

// chunkBitrateSeries drops chunks below two packets and reduces the
// rest, in chunk order.
func chunkBitrateSeries(chunks [][]Packet) ([]float64, error) {
	series := make([]float64, 0, len(chunks))
	for _, chunk := range chunks {
		if len(chunk) < 2 {
			continue
		}
		bitrate, err := chunkBitrate(chunk)
		if err != nil {
			return nil, err
		}
		series = append(series, bitrate)
	}
	return series, nil
}

func seriesMinMaxMean(values []float64) (min, max, mean float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	min = values[0]
	max = values[0]
	sum := 0.0
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	mean = sum / float64(len(values))
	return min, max, mean
}
