package main

import (
	"flag"
	"log"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/Carmen-Shannon/oxy-sketch/engine"
	"github.com/Carmen-Shannon/oxy-sketch/engine/batch"
	"github.com/Carmen-Shannon/oxy-sketch/engine/loader"
	"github.com/Carmen-Shannon/oxy-sketch/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sketch/engine/scene"
	"github.com/Carmen-Shannon/oxy-sketch/engine/shape"
	"github.com/Carmen-Shannon/oxy-sketch/engine/window"
	"github.com/chewxy/math32"
)

func main() {
	profile := flag.Bool("profile", false, "log frame statistics every second")
	uncapped := flag.Bool("uncapped", false, "present without vsync")
	reuse := flag.Bool("reuse", false, "share instances between nodes that set neither transform nor color")
	modelPath := flag.String("model", "", "glTF/GLB file drawn alongside the sketch")
	modelScale := flag.Float64("model-scale", 100, "pixels per model unit")
	flag.Parse()

	var m *loader.Model
	if *modelPath != "" {
		var err error
		m, err = loader.NewLoader(loader.BackendTypeGLTF).Load(*modelPath)
		if err != nil {
			log.Fatalf("load model: %v", err)
		}
		log.Printf("[Sketch] loaded %q: %d nodes, %d primitives", m.Name, len(m.Nodes), m.ShapeCount())
	}

	w := window.NewWindow(
		window.WithTitle("oxy-sketch"),
		window.WithSize(1280, 720),
	)
	defer w.Close()

	presentMode := renderer.PresentModeVSync
	if *uncapped {
		presentMode = renderer.PresentModeUncapped
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, w, renderer.WithPresentMode(presentMode))
	if err != nil {
		log.Fatalf("create renderer: %v", err)
	}
	defer r.Release()

	var orthographic, paused atomic.Bool
	var t atomic.Uint64
	w.SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case common.KeyO:
			orthographic.Store(true)
		case common.KeyP:
			orthographic.Store(false)
		case common.KeySpace:
			paused.Store(!paused.Load())
		case common.KeyEnter:
			t.Store(0)
		}
	})

	eng := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithRenderer(r),
		engine.WithProfiling(*profile),
		engine.WithFlattenOptions(batch.WithPassThroughReuse(*reuse)),
		engine.WithDrawCallback(func(s scene.Scene) {
			if !paused.Load() {
				t.Add(1)
			}
			if orthographic.Load() {
				f := s.Frame()
				hw, hh := float32(f.Width)/2, float32(f.Height)/2
				s.Orthographic(-hw, hw, -hh, hh, 1, 10000)
			}
			drawOrrery(s, float32(t.Load())/60)
			if m != nil {
				drawModel(s, m, float32(*modelScale), float32(t.Load())/60)
			}
		}),
	)

	log.Println("[Sketch] O: orthographic  P: perspective  Space: pause  Enter: restart  Esc: quit")
	eng.Run()
}

// drawOrrery draws a sun with orbiting planets and moons, plus a ribbon and a row of polygons.
// World units are pixels at z = 0.
func drawOrrery(s scene.Scene, t float32) {
	s.SetClearColor(common.RGBA(0.05, 0.05, 0.08, 1))

	s.Push(scene.WithColor(common.RGBA(1, 0.7, 0.2, 1)))
	s.Push(scene.WithScale(140, 140, 1))
	s.Circle()
	must(s.Pop())

	for i, planet := range []struct {
		distance, size, speed float32
		color                 common.Color
		moons                 int
	}{
		{distance: 130, size: 24, speed: 1.6, color: common.RGBA(0.6, 0.6, 0.6, 1)},
		{distance: 200, size: 36, speed: 1.1, color: common.RGBA(0.3, 0.5, 1, 1), moons: 1},
		{distance: 290, size: 48, speed: 0.6, color: common.RGBA(0.9, 0.4, 0.3, 1), moons: 3},
	} {
		s.Push(scene.WithRotationAxis(0, 0, 1, t*planet.speed+float32(i)))
		s.Push(scene.WithTranslation(planet.distance, 0, 0), scene.WithColor(planet.color))
		s.Push(scene.WithScale(planet.size, planet.size, 1))
		s.Circle()
		must(s.Pop())

		for m := 0; m < planet.moons; m++ {
			angle := t*3 + float32(m)*2*math32.Pi/float32(planet.moons)
			s.Push(scene.WithRotationAxis(0, 0, 1, angle))
			s.Push(scene.WithTranslation(planet.size, 0, 0), scene.WithScale(10, 10, 1), scene.WithColor(common.White))
			s.Polygon(6)
			must(s.Pop())
			must(s.Pop())
		}
		must(s.Pop())
		must(s.Pop())
	}
	must(s.Pop())

	f := s.Frame()
	s.Push(scene.WithTranslation(0, -float32(f.Height)/2+60, 0), scene.WithColor(common.RGBA(0.3, 0.9, 0.6, 1)))
	s.Mesh(shape.TopologyStrip, func(m *scene.MeshBuilder) {
		for x := -300; x <= 300; x += 20 {
			y := 10 * math32.Sin(float32(x)/40+t*2)
			m.Vertex(float32(x), y-6, 0)
			m.Vertex(float32(x), y+6, 0)
		}
	})
	must(s.Pop())

	s.Push(scene.WithTranslation(-float32(f.Width)/2+60, float32(f.Height)/2-60, 0))
	for sides := uint32(3); sides <= 8; sides++ {
		s.Push(
			scene.WithTranslation(float32(sides-3)*70, 0, 0),
			scene.WithColor(common.RGBA(float32(sides)/8, 0.4, 1-float32(sides)/8, 1)),
		)
		s.Push(scene.WithScale(50, 50, 1), scene.WithRotationAxis(0, 0, 1, t))
		if sides == 4 {
			s.Square()
		} else {
			s.Polygon(sides)
		}
		must(s.Pop())
		must(s.Pop())
	}
	must(s.Pop())
}

// drawModel places the loaded model in the lower right corner, turning about its vertical axis.
func drawModel(s scene.Scene, m *loader.Model, scale, t float32) {
	f := s.Frame()
	s.Push(
		scene.WithTranslation(float32(f.Width)/2-2*scale, -float32(f.Height)/2+2*scale, 0),
		scene.WithColor(common.RGBA(0.8, 0.8, 0.9, 1)),
	)
	must(m.Instantiate(s, scene.WithScale(scale, scale, scale), scene.WithRotationAxis(0, 1, 0, t)))
	must(s.Pop())
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
