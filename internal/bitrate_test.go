package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkBitrate(t *testing.T) {
	// 2000 bytes over 0.1s of pts span: 16 kbit / 0.1 s
	chunk := []Packet{
		{Index: 1, PTS: 0.0, Size: 1000},
		{Index: 2, PTS: 0.1, Size: 1000},
	}
	bitrate, err := chunkBitrate(chunk)
	require.NoError(t, err)
	require.InDelta(t, 160.0, bitrate, 1e-9)
}

func TestChunkBitrateUsesPTSSpanNotDurations(t *testing.T) {
	// declared durations would sum to 0.2, the pts span is 0.4
	chunk := []Packet{
		{Index: 1, PTS: 0.0, Size: 1000, Duration: 0.1},
		{Index: 2, PTS: 0.4, Size: 1000, Duration: 0.1},
	}
	bitrate, err := chunkBitrate(chunk)
	require.NoError(t, err)
	require.InDelta(t, 40.0, bitrate, 1e-9)
}

func TestChunkBitrateZeroSpan(t *testing.T) {
	chunk := []Packet{
		{Index: 1, PTS: 0.5, Size: 1000},
		{Index: 2, PTS: 0.5, Size: 1000},
	}
	_, err := chunkBitrate(chunk)
	require.ErrorIs(t, err, ErrZeroChunkSpan)
}

func TestChunkBitrateUnknownPTS(t *testing.T) {
	chunk := []Packet{
		{Index: 1, PTS: math.NaN(), Size: 1000},
		{Index: 2, PTS: 0.1, Size: 1000},
	}
	_, err := chunkBitrate(chunk)
	require.ErrorIs(t, err, ErrZeroChunkSpan)
}

func TestChunkBitrateSeriesFiltersShortChunks(t *testing.T) {
	chunks := [][]Packet{
		{{Index: 1, PTS: 0.0, Size: 1000}, {Index: 2, PTS: 0.1, Size: 1000}},
		{{Index: 3, PTS: 0.2, Size: 1000}}, // dropped, no time delta
	}
	series, err := chunkBitrateSeries(chunks)
	require.NoError(t, err)
	require.Len(t, series, 1)
}

func TestSeriesMinMaxMean(t *testing.T) {
	min, max, mean := seriesMinMaxMean([]float64{40, 100, 70})
	require.Equal(t, 40.0, min)
	require.Equal(t, 100.0, max)
	require.InDelta(t, 70.0, mean, 1e-9)

	min, max, mean = seriesMinMaxMean(nil)
	require.Zero(t, min)
	require.Zero(t, max)
	require.Zero(t, mean)
}
