package internal

// PacketType distinguishes sync points from dependent packets.
type PacketType string

const (
	Keyframe    PacketType = "I"
	NonKeyframe PacketType = "Non-I"
)

// OptFloat is a float64 that may be absent in probe output.
// Probers use it for pts and duration instead of a NaN sentinel.
type OptFloat struct {
	Value float64
	OK    bool
}

func Float(v float64) OptFloat {
	return OptFloat{Value: v, OK: true}
}

// RawPacket is one packet record as delivered by a prober.
// Size and Keyframe are always set; pts and duration may be unknown.
type RawPacket struct {
	Size     int64
	Keyframe bool
	PTS      OptFloat
	Duration OptFloat
}

// Packet is a fully normalized packet record.
// PTS is NaN if the probe did not report one. Duration is always
// numeric after normalization, except for a sequence too short to
// repair (a single packet with no declared durations).
type Packet struct {
	Index    int        `json:"n"`
	Type     PacketType `json:"frame_type"`
	PTS      float64    `json:"pts"`
	Size     int64      `json:"size"`
	Duration float64    `json:"duration"`
}
