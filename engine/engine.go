package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-sketch/engine/batch"
	"github.com/Carmen-Shannon/oxy-sketch/engine/camera"
	"github.com/Carmen-Shannon/oxy-sketch/engine/profiler"
	"github.com/Carmen-Shannon/oxy-sketch/engine/scene"
)

// Window is the part of a platform window the engine drives. window.Window satisfies it.
type Window interface {
	SetResizeCallback(callback func(width, height int))
	ProcessMessages()
	Size() (int, int)
}

// Renderer draws flattened frames. renderer.Renderer satisfies it.
type Renderer interface {
	Render(state *batch.RenderState) error
	Resize(width, height int)
}

// DrawCallback describes one frame by recording it into a fresh scene.
type DrawCallback func(s scene.Scene)

type engine struct {
	mu *sync.Mutex
	wg sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once

	window   Window
	renderer Renderer

	profiler         *profiler.Profiler
	profilingEnabled bool

	draw           DrawCallback
	camera         camera.Camera
	flattenOptions []batch.FlattenBuilderOption

	frame     uint64
	width     int
	height    int
	lastStats batch.FrameStats

	renderFrameLimit time.Duration
}

// Engine runs the per-frame loop: build a fresh scene through the draw callback, flatten it,
// hand the result to the renderer, and advance the frame counter.
type Engine interface {
	// RenderFrame builds, flattens, and renders one frame on the calling goroutine.
	// A frame whose flattening or rendering fails is abandoned: nothing is drawn and the frame
	// counter does not advance.
	//
	// Returns:
	//   - error: the flatten or render error, wrapped with the frame number
	RenderFrame() error

	// Frame returns the number of frames rendered so far.
	//
	// Returns:
	//   - uint64: the frame counter
	Frame() uint64

	// SetDrawCallback registers the function that describes each frame.
	//
	// Parameters:
	//   - callback: function receiving the frame's fresh scene
	SetDrawCallback(callback DrawCallback)

	// SetCamera sets a camera shared by every frame. With a nil camera (the default), each frame
	// starts with a camera fitted to the surface so that one world unit covers one pixel at z = 0.
	//
	// Parameters:
	//   - c: the shared camera, or nil
	SetCamera(c camera.Camera)

	// Resize records a new surface size and forwards it to the renderer. A shared camera
	// with a perspective projection gets the new aspect ratio.
	// Called automatically by the window's resize callback.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	Resize(width, height int)

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the render loop and blocks in the window's message loop until the window closes.
	// Must be called from the main goroutine.
	Run()

	// Quit signals the render loop to stop. Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine with the provided options.
// A window is optional for engines driven through RenderFrame; Run requires one.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:          &sync.Mutex{},
		quitChannel: make(chan struct{}),
		profiler:    profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.renderer == nil {
		panic("engine requires a renderer")
	}

	if e.window != nil {
		e.width, e.height = e.window.Size()
		e.window.SetResizeCallback(e.Resize)
	}

	return e
}

func (e *engine) RenderFrame() error {
	e.mu.Lock()
	draw := e.draw
	shared := e.camera
	info := scene.FrameInfo{Count: e.frame, Width: e.width, Height: e.height}
	last := e.lastStats
	e.mu.Unlock()

	cam := shared
	if cam == nil {
		cam = camera.ScreenCamera(info.Width, info.Height)
	}
	s := scene.NewScene(
		scene.WithCamera(cam),
		scene.WithFrame(info),
		scene.WithNodeCapacity(last.Instances),
	)
	if draw != nil {
		draw(s)
	}

	start := time.Now()
	state, err := batch.Flatten(s, append([]batch.FlattenBuilderOption{batch.WithCapacity(last)}, e.flattenOptions...)...)
	flatten := time.Since(start)
	if err != nil {
		log.Printf("[Engine] frame %d abandoned: %v", info.Count, err)
		return fmt.Errorf("flatten frame %d: %w", info.Count, err)
	}

	if err := e.renderer.Render(state); err != nil {
		log.Printf("[Engine] frame %d not rendered: %v", info.Count, err)
		return fmt.Errorf("render frame %d: %w", info.Count, err)
	}

	stats := state.Stats()
	e.mu.Lock()
	e.frame++
	e.lastStats = stats
	profiling := e.profilingEnabled
	e.mu.Unlock()

	if profiling {
		e.profiler.Tick(stats, flatten)
	}
	return nil
}

func (e *engine) Frame() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frame
}

func (e *engine) SetDrawCallback(callback DrawCallback) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draw = callback
}

func (e *engine) SetCamera(c camera.Camera) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.camera = c
}

func (e *engine) Resize(width, height int) {
	e.mu.Lock()
	e.width, e.height = width, height
	shared := e.camera
	e.mu.Unlock()

	e.renderer.Resize(width, height)
	if shared != nil && width > 0 && height > 0 {
		shared.SetAspect(float32(width) / float32(height))
	}
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) Run() {
	if e.window == nil {
		panic("engine.Run requires a window")
	}

	e.wg.Add(1)
	go e.handleRender()

	e.window.ProcessMessages()
	e.signalQuit()
	e.wg.Wait()
}

func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal the render goroutine to exit.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// handleRender renders frames until quit. A failed frame is skipped, not retried.
// Recovers from panics so a faulty draw callback takes down the loop, not the process.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			start := time.Now()
			_ = e.RenderFrame()

			e.mu.Lock()
			limit := e.renderFrameLimit
			e.mu.Unlock()
			if limit > 0 {
				if remaining := limit - time.Since(start); remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}
