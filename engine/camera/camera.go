package camera

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/chewxy/math32"
)

// ErrInvalidProjection is returned when projection parameters would produce a degenerate matrix.
var ErrInvalidProjection = errors.New("invalid projection")

// Default camera settings, used when no option overrides them.
var (
	DefaultEye    = [3]float32{0, 0, 1}
	DefaultCenter = [3]float32{0, 0, 0}
	DefaultUp     = [3]float32{0, 1, 0}
)

// DefaultPerspective is the projection a new camera starts with.
var DefaultPerspective = Perspective{
	FovY:   50 * (math32.Pi / 180),
	Aspect: 1,
	Near:   0.1,
	Far:    2000,
}

// ScreenFov is the vertical field of view of the screen-fitted camera built by ScreenCamera.
const ScreenFov = math32.Pi / 3

type cameraImpl struct {
	mu *sync.Mutex

	eye    [3]float32
	center [3]float32
	up     [3]float32

	projection Projection
	controller CameraController
}

// Camera holds a view definition (eye, center, up) and a projection, and resolves them
// into a single combined clip-space matrix. When a CameraController is attached, the eye
// and center are read from it and SetView writes through to it.
// Safe for concurrent access.
type Camera interface {
	// Eye returns the camera position.
	//
	// Returns:
	//   - [3]float32: world-space eye position
	Eye() [3]float32

	// Center returns the point the camera looks at.
	//
	// Returns:
	//   - [3]float32: world-space look-at point
	Center() [3]float32

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - [3]float32: up vector
	Up() [3]float32

	// Projection returns the current projection variant.
	//
	// Returns:
	//   - Projection: a Perspective or Orthographic value
	Projection() Projection

	// SetView replaces the eye, center, and up vectors.
	//
	// Parameters:
	//   - eye: world-space eye position
	//   - center: world-space look-at point
	//   - up: up vector
	SetView(eye, center, up [3]float32)

	// SetProjection replaces the projection.
	//
	// Parameters:
	//   - p: the new projection
	SetProjection(p Projection)

	// SetPerspective replaces the projection with a perspective projection.
	//
	// Parameters:
	//   - fovY: vertical field of view in radians
	//   - aspect: viewport aspect ratio (width / height)
	//   - near: near plane distance
	//   - far: far plane distance
	SetPerspective(fovY, aspect, near, far float32)

	// SetOrthographic replaces the projection with an orthographic projection.
	//
	// Parameters:
	//   - left, right, bottom, top: the view volume's side planes
	//   - near, far: the view volume's depth planes
	SetOrthographic(left, right, bottom, top, near, far float32)

	// SetAspect updates the aspect ratio of a perspective projection.
	// Orthographic projections are left unchanged.
	//
	// Parameters:
	//   - aspect: the aspect ratio (width / height)
	SetAspect(aspect float32)

	// Controller returns the attached CameraController, or nil.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// SetController attaches a CameraController, or detaches it when ctrl is nil.
	// Detaching keeps the controller's last eye and center.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)

	// ViewMatrix returns the left-handed look-at matrix for the current view.
	//
	// Returns:
	//   - [16]float32: the view matrix (column-major)
	ViewMatrix() [16]float32

	// Matrix returns projection * view.
	//
	// Returns:
	//   - [16]float32: the combined matrix (column-major)
	//   - error: an error wrapping ErrInvalidProjection when the projection is degenerate
	Matrix() ([16]float32, error)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera looking from DefaultEye toward the origin with DefaultPerspective.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:         &sync.Mutex{},
		eye:        DefaultEye,
		center:     DefaultCenter,
		up:         DefaultUp,
		projection: DefaultPerspective,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// ScreenCamera creates a perspective camera sized so that one world unit at z = 0 maps to
// one pixel of a width x height surface. The eye sits on -Z looking at the origin.
//
// Parameters:
//   - width: surface width in pixels
//   - height: surface height in pixels
//
// Returns:
//   - Camera: the screen-fitted camera
func ScreenCamera(width, height int) Camera {
	eye, p := screenFit(width, height)
	return NewCamera(
		WithEye(eye[0], eye[1], eye[2]),
		WithProjection(p),
	)
}

// screenFit returns the eye position and projection fitting a width x height surface.
func screenFit(width, height int) ([3]float32, Perspective) {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	z := (float32(height) / 2) / math32.Tan(ScreenFov/2)
	return [3]float32{0, 0, -z}, Perspective{
		FovY:   ScreenFov,
		Aspect: float32(width) / float32(height),
		Near:   z / 10,
		Far:    z * 10,
	}
}

func (c *cameraImpl) Eye() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	eye, _ := c.view()
	return eye
}

func (c *cameraImpl) Center() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, center := c.view()
	return center
}

func (c *cameraImpl) Up() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Projection() Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *cameraImpl) SetView(eye, center, up [3]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eye, c.center, c.up = eye, center, up
	if c.controller != nil {
		c.controller.Look(eye, center)
	}
}

func (c *cameraImpl) SetProjection(p Projection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projection = p
}

func (c *cameraImpl) SetPerspective(fovY, aspect, near, far float32) {
	c.SetProjection(Perspective{FovY: fovY, Aspect: aspect, Near: near, Far: far})
}

func (c *cameraImpl) SetOrthographic(left, right, bottom, top, near, far float32) {
	c.SetProjection(Orthographic{Left: left, Right: right, Bottom: bottom, Top: top, Near: near, Far: far})
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.projection.(Perspective); ok {
		p.Aspect = aspect
		c.projection = p
	}
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eye, c.center = c.view()
	c.controller = ctrl
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	eye, center := c.view()
	return viewMatrix(eye, center, c.up)
}

func (c *cameraImpl) Matrix() ([16]float32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	eye, center := c.view()
	return Resolve(eye, center, c.up, c.projection)
}

// view returns the eye and center, read from the controller when one is attached.
// Caller must hold the mutex.
func (c *cameraImpl) view() (eye, center [3]float32) {
	if c.controller != nil {
		return c.controller.Position(), c.controller.Target()
	}
	return c.eye, c.center
}

// Resolve combines a view and a projection into projection * view.
//
// Parameters:
//   - eye, center, up: the view definition
//   - p: the projection
//
// Returns:
//   - [16]float32: the combined matrix (column-major)
//   - error: an error wrapping ErrInvalidProjection when p is nil or degenerate
func Resolve(eye, center, up [3]float32, p Projection) ([16]float32, error) {
	if p == nil {
		return [16]float32{}, fmt.Errorf("%w: no projection set", ErrInvalidProjection)
	}
	proj, err := p.Matrix()
	if err != nil {
		return [16]float32{}, err
	}
	view := viewMatrix(eye, center, up)

	var out [16]float32
	common.Mul4(out[:], proj[:], view[:])
	return out, nil
}

func viewMatrix(eye, center, up [3]float32) [16]float32 {
	var m [16]float32
	common.LookAtLH(m[:],
		eye[0], eye[1], eye[2],
		center[0], center[1], center[2],
		up[0], up[1], up[2],
	)
	return m
}
