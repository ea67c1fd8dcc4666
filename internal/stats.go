package internal

import (
	"fmt"
	"log"
	"math"
)

const roundingDecimals = 3

// BitrateStats holds one analysis run: the normalized packet sequence
// of a single stream plus the aggregation configuration. Packets and
// configuration are fixed at construction; the chunk bitrate series is
// computed once and cached.
type BitrateStats struct {
	InputFile   string
	StreamType  string
	Aggregation string
	ChunkSize   float64
	Verbose     bool

	Packets  []Packet
	Warnings []string

	chunkSeries []float64
	chunksDone  bool
}

// SummaryRecord is the final output of an analysis run. All bitrates
// are in kbit/s, the duration in seconds, every numeric field rounded
// to three decimals.
type SummaryRecord struct {
	InputFile            string    `json:"input_file"`
	StreamType           string    `json:"stream_type"`
	AvgFPS               float64   `json:"avg_fps"`
	NumFrames            int       `json:"num_frames"`
	AvgBitrate           float64   `json:"avg_bitrate"`
	AvgBitrateOverChunks float64   `json:"avg_bitrate_over_chunks"`
	MaxBitrate           float64   `json:"max_bitrate"`
	MinBitrate           float64   `json:"min_bitrate"`
	MaxBitrateFactor     float64   `json:"max_bitrate_factor"`
	BitratePerChunk      []float64 `json:"bitrate_per_chunk"`
	Aggregation          string    `json:"aggregation"`
	ChunkSize            float64   `json:"chunk_size"`
	Duration             float64   `json:"duration"`
}

// NewBitrateStats normalizes the raw probe records for one analysis
// run. The options must have been validated.
func NewBitrateStats(o Options, inFile string, raw []RawPacket) *BitrateStats {
	packets, warnings := NormalizePackets(raw)
	return &BitrateStats{
		InputFile:   inFile,
		StreamType:  o.StreamType,
		Aggregation: o.Aggregation,
		ChunkSize:   o.ChunkSize,
		Verbose:     o.Verbose,
		Packets:     packets,
		Warnings:    warnings,
	}
}

// ChunkBitrates returns the per-chunk bitrate series. The underlying
// partition is computed once; repeated calls return the cached series.
func (b *BitrateStats) ChunkBitrates() ([]float64, error) {
	if b.chunksDone {
		return b.chunkSeries, nil
	}
	if b.Verbose {
		log.Print("Collecting chunks for bitrate calculation")
	}
	chunks := partitionPackets(b.Packets, b.Aggregation, b.ChunkSize)
	series, err := chunkBitrateSeries(chunks)
	if err != nil {
		return nil, err
	}
	b.chunkSeries = series
	b.chunksDone = true
	return b.chunkSeries, nil
}

// CalculateStatistics assembles the summary record. An empty chunk
// series or a non-positive total duration is a fatal error for the
// run; no partial record is returned.
func (b *BitrateStats) CalculateStatistics() (SummaryRecord, error) {
	series, err := b.ChunkBitrates()
	if err != nil {
		return SummaryRecord{}, err
	}
	if len(series) == 0 {
		return SummaryRecord{}, ErrNoChunks
	}

	var duration float64
	var totalSize int64
	for _, p := range b.Packets {
		duration += p.Duration
		totalSize += p.Size
	}
	if !(duration > 0) {
		return SummaryRecord{}, fmt.Errorf("total stream duration %v is not positive", duration)
	}

	fps := float64(len(b.Packets)) / duration
	avgBitrate := float64(totalSize) * 8 / 1000 / duration
	minBitrate, maxBitrate, meanOverChunks := seriesMinMaxMean(series)

	perChunk := make([]float64, len(series))
	for i, v := range series {
		perChunk[i] = roundTo(v, roundingDecimals)
	}

	return SummaryRecord{
		InputFile:            b.InputFile,
		StreamType:           b.StreamType,
		AvgFPS:               roundTo(fps, roundingDecimals),
		NumFrames:            len(b.Packets),
		AvgBitrate:           roundTo(avgBitrate, roundingDecimals),
		AvgBitrateOverChunks: roundTo(meanOverChunks, roundingDecimals),
		MaxBitrate:           roundTo(maxBitrate, roundingDecimals),
		MinBitrate:           roundTo(minBitrate, roundingDecimals),
		MaxBitrateFactor:     roundTo(maxBitrate/avgBitrate, roundingDecimals),
		BitratePerChunk:      perChunk,
		Aggregation:          b.Aggregation,
		ChunkSize:            b.ChunkSize,
		Duration:             roundTo(duration, roundingDecimals),
	}, nil
}

func roundTo(v float64, decimals int) float64 {
	factor := math.Pow10(decimals)
	return math.Round(v*factor) / factor
}
