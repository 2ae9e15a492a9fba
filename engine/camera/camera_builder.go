package camera

type CameraBuilderOption func(*cameraImpl)

// WithEye sets the camera position.
//
// Parameters:
//   - x, y, z: world-space eye position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's eye
func WithEye(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.eye = [3]float32{x, y, z}
	}
}

// WithCenter sets the point the camera looks at.
//
// Parameters:
//   - x, y, z: world-space look-at point
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's center
func WithCenter(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.center = [3]float32{x, y, z}
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = [3]float32{x, y, z}
	}
}

// WithProjection sets the camera's projection.
//
// Parameters:
//   - p: a Perspective or Orthographic projection
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's projection
func WithProjection(p Projection) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = p
	}
}

// WithPerspective sets a perspective projection.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width / height)
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's projection
func WithPerspective(fovY, aspect, near, far float32) CameraBuilderOption {
	return WithProjection(Perspective{FovY: fovY, Aspect: aspect, Near: near, Far: far})
}

// WithOrthographic sets an orthographic projection.
//
// Parameters:
//   - left, right, bottom, top: the view volume's side planes
//   - near, far: the view volume's depth planes
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's projection
func WithOrthographic(left, right, bottom, top, near, far float32) CameraBuilderOption {
	return WithProjection(Orthographic{Left: left, Right: right, Bottom: bottom, Top: top, Near: near, Far: far})
}

// WithController attaches a controller to the camera. The controller's position and target
// replace any eye and center set by other options.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
