package profiler

import (
	"bytes"
	"log"
	"os"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-sketch/engine/batch"
	"github.com/stretchr/testify/assert"
)

func TestTickLogsAtInterval(t *testing.T) {
	var out bytes.Buffer
	log.SetOutput(&out)
	defer log.SetOutput(os.Stderr)

	start := time.Unix(0, 0)
	clock := start
	p := NewProfiler()
	p.now = func() time.Time { return clock }
	p.lastTime = start

	frame := batch.FrameStats{Instances: 3, Draws: 2, Vertices: 8, Indices: 12}

	clock = start.Add(400 * time.Millisecond)
	assert.False(t, p.Tick(frame, 2*time.Millisecond))
	clock = start.Add(800 * time.Millisecond)
	assert.False(t, p.Tick(frame, 4*time.Millisecond))
	assert.Empty(t, out.String())

	clock = start.Add(time.Second)
	assert.True(t, p.Tick(frame, 6*time.Millisecond))

	s := p.Last()
	assert.InDelta(t, 3.0, s.FPS, 1e-9)
	assert.Equal(t, 4*time.Millisecond, s.MeanFlatten)
	assert.Equal(t, 6*time.Millisecond, s.MaxFlatten)
	assert.Equal(t, frame, s.Frame)
	assert.Contains(t, out.String(), "[Profiler] FPS: 3.00")
	assert.Contains(t, out.String(), "Draws: 2")

	// counters restart after logging
	clock = start.Add(1500 * time.Millisecond)
	assert.False(t, p.Tick(frame, time.Millisecond))
}

func TestSetIntervalZeroLogsEveryTick(t *testing.T) {
	var out bytes.Buffer
	log.SetOutput(&out)
	defer log.SetOutput(os.Stderr)

	p := NewProfiler()
	p.SetInterval(0)
	assert.True(t, p.Tick(batch.FrameStats{Instances: 1}, 0))
	assert.True(t, p.Tick(batch.FrameStats{Instances: 1}, 0))
	assert.Equal(t, 1, p.Last().Frame.Instances)
}
