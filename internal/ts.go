package internal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/asticode/go-astits"

	"github.com/Eyevinn/bitrate-stats/common"
)

// ptsUnwrapper turns 33-bit 90kHz PTS values into continuous seconds.
// The first value anchors the timeline; later values follow via signed
// wraparound-compensated deltas.
type ptsUnwrapper struct {
	prevBase    int64
	prevSeconds float64
	started     bool
}

func (u *ptsUnwrapper) seconds(base int64) float64 {
	if !u.started {
		u.started = true
		u.prevBase = base
		u.prevSeconds = float64(base) / common.TimeScale
		return u.prevSeconds
	}
	diff := common.SignedPTSDiff(base, u.prevBase)
	u.prevBase = base
	u.prevSeconds += float64(diff) / common.TimeScale
	return u.prevSeconds
}

// ProbeTSFile demuxes an MPEG-TS file and returns one raw packet
// record per PES packet of the first elementary stream matching the
// requested type. Durations stay unknown, so the normalizer repairs
// them from pts deltas.
func ProbeTSFile(ctx context.Context, streamType, inFile string) ([]RawPacket, error) {
	f, err := os.Open(inFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return probeTS(ctx, streamType, f)
}

func probeTS(ctx context.Context, streamType string, f io.Reader) ([]RawPacket, error) {
	rd := bufio.NewReaderSize(f, 1000*common.PacketSize)
	dmx := astits.NewDemuxer(ctx, rd)
	selectedPID := -1
	unwrap := ptsUnwrapper{}
	var raw []RawPacket
dataLoop:
	for {
		select {
		case <-ctx.Done():
			break dataLoop
		default:
		}

		d, err := dmx.NextData()
		if err != nil {
			if err.Error() == "astits: no more packets" {
				break dataLoop
			}
			return nil, fmt.Errorf("reading next data %w", err)
		}

		if selectedPID < 0 && d.PMT != nil {
			for _, es := range d.PMT.ElementaryStreams {
				if esStreamType(es.StreamType) == streamType {
					selectedPID = int(es.ElementaryPID)
					break
				}
			}
			if selectedPID < 0 {
				return nil, fmt.Errorf("no %s stream found in TS", streamType)
			}
		}

		pes := d.PES
		if pes == nil || int(d.PID) != selectedPID {
			continue
		}

		r := RawPacket{Size: int64(len(pes.Data))}
		if fp := d.FirstPacket; fp != nil && fp.AdaptationField != nil {
			r.Keyframe = fp.AdaptationField.RandomAccessIndicator
		}
		if pts := pes.Header.OptionalHeader.PTS; pts != nil {
			r.PTS = Float(unwrap.seconds(pts.Base))
		}
		raw = append(raw, r)
	}

	return raw, nil
}

func esStreamType(st astits.StreamType) string {
	switch st {
	case astits.StreamTypeH264Video, astits.StreamTypeH265Video:
		return StreamTypeVideo
	case astits.StreamTypeAACAudio:
		return StreamTypeAudio
	}
	return ""
}
