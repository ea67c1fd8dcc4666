package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"
)

// ffprobePacket mirrors one entry of ffprobe's "packets" array. All
// numeric fields arrive as strings; absent fields stay empty.
type ffprobePacket struct {
	PTSTime      string `json:"pts_time"`
	DTSTime      string `json:"dts_time"`
	DurationTime string `json:"duration_time"`
	Size         string `json:"size"`
	Flags        string `json:"flags"`
}

// FFprobeCommand builds the probe invocation for the first stream of
// the requested type. Packet sizes include container overhead such as
// NAL headers.
func FFprobeCommand(streamType, inFile string) []string {
	return []string{
		"ffprobe",
		"-loglevel", "error",
		"-select_streams", streamType[:1] + ":0",
		"-show_packets",
		"-show_entries", "packet=pts_time,dts_time,duration_time,size,flags",
		"-of", "json",
		inFile,
	}
}

// RunFFprobe executes ffprobe and decodes its packet list. A non-zero
// exit surfaces ffprobe's own diagnostics verbatim.
func RunFFprobe(ctx context.Context, o Options, inFile string) ([]RawPacket, error) {
	args := FFprobeCommand(o.StreamType, inFile)
	if o.Verbose {
		log.Printf("[cmd] %s", strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running ffprobe: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return DecodeFFprobePackets(stdout.Bytes())
}

// DecodeFFprobePackets parses ffprobe's JSON output into raw packet
// records. A missing or malformed size is a fatal input error; missing
// pts or duration stays unknown for the normalizer to resolve.
func DecodeFFprobePackets(data []byte) ([]RawPacket, error) {
	var doc struct {
		Packets []ffprobePacket `json:"packets"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing ffprobe output: %w", err)
	}

	raw := make([]RawPacket, 0, len(doc.Packets))
	for i, p := range doc.Packets {
		if p.Size == "" {
			return nil, fmt.Errorf("packet %d: missing size", i+1)
		}
		size, err := strconv.ParseInt(p.Size, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("packet %d: bad size %q: %w", i+1, p.Size, err)
		}
		r := RawPacket{
			Size:     size,
			Keyframe: strings.HasPrefix(p.Flags, "K"),
		}
		if p.PTSTime != "" {
			v, err := strconv.ParseFloat(p.PTSTime, 64)
			if err != nil {
				return nil, fmt.Errorf("packet %d: bad pts_time %q: %w", i+1, p.PTSTime, err)
			}
			r.PTS = Float(v)
		}
		if p.DurationTime != "" {
			v, err := strconv.ParseFloat(p.DurationTime, 64)
			if err != nil {
				return nil, fmt.Errorf("packet %d: bad duration_time %q: %w", i+1, p.DurationTime, err)
			}
			r.Duration = Float(v)
		}
		raw = append(raw, r)
	}
	return raw, nil
}
