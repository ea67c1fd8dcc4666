package internal

import (
	"fmt"
	"math"
)

// NormalizePackets turns raw probe records into fully populated packets
// with 1-based indices, in input order. A packet without a declared
// duration gets the first declared duration in the sequence. If no
// record at all declares a duration, durations are repaired from
// forward pts deltas instead.
//
// The returned warnings are diagnostic only (non-monotonic pts found
// during repair); they never abort the computation.
func NormalizePackets(raw []RawPacket) ([]Packet, []string) {
	defaultDuration := OptFloat{}
	for _, r := range raw {
		if r.Duration.OK {
			defaultDuration = r.Duration
			break
		}
	}

	packets := make([]Packet, 0, len(raw))
	for i, r := range raw {
		p := Packet{
			Index:    i + 1,
			Type:     NonKeyframe,
			PTS:      math.NaN(),
			Size:     r.Size,
			Duration: math.NaN(),
		}
		if r.Keyframe {
			p.Type = Keyframe
		}
		if r.PTS.OK {
			p.PTS = r.PTS.Value
		}
		switch {
		case r.Duration.OK:
			p.Duration = r.Duration.Value
		case defaultDuration.OK:
			p.Duration = defaultDuration.Value
		}
		packets = append(packets, p)
	}

	var warnings []string
	if !defaultDuration.OK {
		warnings = repairDurations(packets)
	}
	return packets, warnings
}

// repairDurations estimates durations from the delta to the next
// packet's pts. The last packet reuses the preceding delta. Deltas of
// non-increasing pts pairs are kept as-is (possibly zero or negative)
// and reported as warnings.
func repairDurations(packets []Packet) []string {
	if len(packets) < 2 {
		return nil
	}
	var warnings []string
	var lastDelta float64
	for i := 0; i < len(packets)-1; i++ {
		curr := packets[i].PTS
		next := packets[i+1].PTS
		if next <= curr {
			warnings = append(warnings, fmt.Sprintf(
				"non-monotonically increasing PTS at packet %d, duration/bitrate may be invalid",
				packets[i+1].Index))
		}
		lastDelta = next - curr
		packets[i].Duration = lastDelta
	}
	packets[len(packets)-1].Duration = lastDelta
	return warnings
}
