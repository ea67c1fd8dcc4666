package internal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Eyevinn/bitrate-stats/common"
)

func TestPtsUnwrapper(t *testing.T) {
	u := ptsUnwrapper{}
	require.InDelta(t, 1.0, u.seconds(common.TimeScale), 1e-9)
	require.InDelta(t, 1.04, u.seconds(common.TimeScale+3600), 1e-9)
}

// A 33-bit PTS wraps after roughly 26.5 hours; the unwrapped timeline
// must keep increasing across the wrap.
func TestPtsUnwrapperAcrossWrap(t *testing.T) {
	u := ptsUnwrapper{}
	start := int64(common.PtsWrap - common.TimeScale) // 1s before the wrap
	before := u.seconds(start)
	after := u.seconds((start + 2*common.TimeScale) % common.PtsWrap)
	require.InDelta(t, 2.0, after-before, 1e-9)
}

func TestEsStreamType(t *testing.T) {
	require.Equal(t, "", esStreamType(0))
}
