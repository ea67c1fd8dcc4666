package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func uniformPackets(n int, size int64, step float64, keyframes ...int) []Packet {
	isKey := make(map[int]bool, len(keyframes))
	for _, k := range keyframes {
		isKey[k] = true
	}
	packets := make([]Packet, n)
	for i := range packets {
		packets[i] = Packet{
			Index:    i + 1,
			Type:     NonKeyframe,
			PTS:      float64(i) * step,
			Size:     size,
			Duration: step,
		}
		if isKey[i] {
			packets[i].Type = Keyframe
		}
	}
	return packets
}

// The pre-filter chunk sequence is a partition: concatenated, it must
// reproduce the input exactly.
func TestPartitionReconstructsInput(t *testing.T) {
	packets := uniformPackets(17, 1000, 0.04, 0, 5, 11)

	cases := []struct {
		name        string
		aggregation string
		chunkSize   float64
	}{
		{"gop", AggregationGOP, 0},
		{"time", AggregationTime, 0.5},
		{"time_tiny_window", AggregationTime, 0.01},
		{"time_huge_window", AggregationTime, 100},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			chunks := partitionPackets(packets, c.aggregation, c.chunkSize)
			var flat []Packet
			for _, chunk := range chunks {
				require.NotEmpty(t, chunk)
				flat = append(flat, chunk...)
			}
			require.Equal(t, packets, flat)
		})
	}
}

func TestGopBoundaries(t *testing.T) {
	// leading non-keyframes form their own chunk
	packets := uniformPackets(10, 1000, 0.04, 3, 7)
	chunks := partitionPackets(packets, AggregationGOP, 0)
	require.Len(t, chunks, 3)
	require.Len(t, chunks[0], 3)
	require.Len(t, chunks[1], 4)
	require.Len(t, chunks[2], 3)

	for i, chunk := range chunks {
		if i > 0 {
			require.Equal(t, Keyframe, chunk[0].Type)
		}
		for _, p := range chunk[1:] {
			require.Equal(t, NonKeyframe, p.Type)
		}
	}
}

func TestGopBoundaryAtFirstPacket(t *testing.T) {
	packets := uniformPackets(6, 1000, 0.04, 0, 3)
	chunks := partitionPackets(packets, AggregationGOP, 0)
	require.Len(t, chunks, 2)
	require.Equal(t, Keyframe, chunks[0][0].Type)
}

func TestTimeBoundaries(t *testing.T) {
	packets := uniformPackets(10, 1000, 0.1, 0)
	chunks := partitionPackets(packets, AggregationTime, 0.5)
	require.Len(t, chunks, 2)
	require.Len(t, chunks[0], 5)
	require.Len(t, chunks[1], 5)

	// every chunk but the last reaches the window size, and did not
	// before its final member joined
	for _, chunk := range chunks[:len(chunks)-1] {
		sum := 0.0
		for _, p := range chunk {
			sum += p.Duration
		}
		require.GreaterOrEqual(t, sum, 0.5)
		require.Less(t, sum-chunk[len(chunk)-1].Duration, 0.5)
	}
}

func TestTimeBoundariesTrailingPartialChunk(t *testing.T) {
	packets := uniformPackets(7, 1000, 0.1, 0)
	chunks := partitionPackets(packets, AggregationTime, 0.5)
	require.Len(t, chunks, 2)
	require.Len(t, chunks[0], 5)
	require.Len(t, chunks[1], 2)
}

func TestEmptyInput(t *testing.T) {
	require.Empty(t, partitionPackets(nil, AggregationGOP, 0))
	require.Empty(t, partitionPackets(nil, AggregationTime, 1))
}
