package internal

import (
	"fmt"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"
)

// ProbeMP4File reads the sample tables of a progressive MP4 file and
// returns one raw packet record per sample of the first track matching
// the requested stream type. Sample durations come from stts, sync
// samples from stss, composition offsets from ctts.
func ProbeMP4File(streamType, inFile string) ([]RawPacket, error) {
	f, err := os.Open(inFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mp4File, err := mp4.DecodeFile(f)
	if err != nil {
		return nil, fmt.Errorf("decoding mp4: %w", err)
	}
	if mp4File.Moov == nil {
		return nil, fmt.Errorf("no moov box found, fragmented input is not supported")
	}

	handler := "vide"
	if streamType == StreamTypeAudio {
		handler = "soun"
	}
	var trak *mp4.TrakBox
	for _, t := range mp4File.Moov.Traks {
		if t.Mdia != nil && t.Mdia.Hdlr != nil && t.Mdia.Hdlr.HandlerType == handler {
			trak = t
			break
		}
	}
	if trak == nil {
		return nil, fmt.Errorf("no %s track found in mp4", streamType)
	}

	stbl := trak.Mdia.Minf.Stbl
	timescale := float64(trak.Mdia.Mdhd.Timescale)
	nrSamples := stbl.Stsz.SampleNumber

	raw := make([]RawPacket, 0, nrSamples)
	for nr := uint32(1); nr <= nrSamples; nr++ {
		decTime, dur := stbl.Stts.GetDecodeTime(nr)
		var cto int32
		if stbl.Ctts != nil {
			cto = stbl.Ctts.GetCompositionTimeOffset(nr)
		}
		// No stss box means every sample is a sync sample
		sync := true
		if stbl.Stss != nil {
			sync = stbl.Stss.IsSyncSample(nr)
		}
		raw = append(raw, RawPacket{
			Size:     int64(stbl.Stsz.GetSampleSize(int(nr))),
			Keyframe: sync,
			PTS:      Float((float64(decTime) + float64(cto)) / timescale),
			Duration: Float(float64(dur) / timescale),
		})
	}
	return raw, nil
}
