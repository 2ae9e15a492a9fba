package profiler

import (
	"log"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-sketch/engine/batch"
)

// Snapshot is the summary of one profiling interval.
type Snapshot struct {
	FPS         float64
	MeanFlatten time.Duration
	MaxFlatten  time.Duration
	Frame       batch.FrameStats
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
}

// Profiler tracks frame rate, flatten cost, and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64

	flattenTotal time.Duration
	flattenMax   time.Duration
	lastFrame    batch.FrameStats
	last         Snapshot

	now func() time.Time
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		now:            time.Now,
	}
}

// SetInterval changes how often Tick logs.
//
// Parameters:
//   - d: the interval; values <= 0 log every tick
func (p *Profiler) SetInterval(d time.Duration) {
	p.updateInterval = d
}

// Tick should be called once per rendered frame.
// Logs performance statistics when the update interval has elapsed: FPS, mean and max flatten
// time, the last frame's instance/draw/vertex/index counts, heap usage, and allocation rate.
//
// Parameters:
//   - frame: element counts of the frame just rendered
//   - flatten: time spent flattening the frame
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(frame batch.FrameStats, flatten time.Duration) bool {
	p.frameCount++
	p.flattenTotal += flatten
	p.flattenMax = max(p.flattenMax, flatten)
	p.lastFrame = frame

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	seconds := max(elapsed.Seconds(), 1e-9)
	s := Snapshot{
		FPS:         float64(p.frameCount) / seconds,
		MeanFlatten: p.flattenTotal / time.Duration(p.frameCount),
		MaxFlatten:  p.flattenMax,
		Frame:       p.lastFrame,
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds,
		GCCount:     p.memStats.NumGC,
	}

	log.Printf("[Profiler] FPS: %.2f | Flatten: %s (max %s) | Instances: %d | Draws: %d | Vertices: %d | Indices: %d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d",
		s.FPS, s.MeanFlatten, s.MaxFlatten, s.Frame.Instances, s.Frame.Draws, s.Frame.Vertices, s.Frame.Indices, s.HeapMB, s.AllocRateMB, s.GCCount)

	p.last = s
	p.frameCount = 0
	p.flattenTotal = 0
	p.flattenMax = 0
	p.lastTime = currentTime
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the snapshot logged by the most recent interval.
//
// Returns:
//   - Snapshot: the last logged snapshot, zero before the first one
func (p *Profiler) Last() Snapshot {
	return p.last
}
