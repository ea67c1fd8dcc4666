package internal

// Chunk boundary computation is split in two pure passes: one that
// finds the start index of every chunk, and one that slices the packet
// sequence at those indices. The slices alias the input, no packet
// data is copied.

// gopBoundaries starts a new chunk at every keyframe. Leading
// non-keyframe packets before the first keyframe form their own chunk.
func gopBoundaries(packets []Packet) []int {
	if len(packets) == 0 {
		return nil
	}
	starts := []int{0}
	for i := 1; i < len(packets); i++ {
		if packets[i].Type == Keyframe {
			starts = append(starts, i)
		}
	}
	return starts
}

// timeBoundaries closes the current chunk once the running duration sum
// of its members reaches chunkSize. The packet that triggers the close
// starts the next chunk and its duration restarts the sum.
func timeBoundaries(packets []Packet, chunkSize float64) []int {
	if len(packets) == 0 {
		return nil
	}
	starts := []int{0}
	sum := 0.0
	for i := range packets {
		if sum >= chunkSize {
			starts = append(starts, i)
			sum = 0
		}
		sum += packets[i].Duration
	}
	return starts
}

// materializeChunks slices packets at the given start indices. The
// result is a partition: concatenated, the chunks reproduce the input.
func materializeChunks(packets []Packet, starts []int) [][]Packet {
	chunks := make([][]Packet, 0, len(starts))
	for i, start := range starts {
		end := len(packets)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		chunks = append(chunks, packets[start:end])
	}
	return chunks
}

// partitionPackets groups the packet sequence per aggregation mode,
// before the minimum-size filter.
func partitionPackets(packets []Packet, aggregation string, chunkSize float64) [][]Packet {
	var starts []int
	if aggregation == AggregationGOP {
		starts = gopBoundaries(packets)
	} else {
		starts = timeBoundaries(packets, chunkSize)
	}
	return materializeChunks(packets, starts)
}
