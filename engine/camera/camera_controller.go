package camera

// CameraController owns the eye and look-at point of a Camera it is attached to.
// Orbit controls move the eye over a sphere around the target; planar controls
// shift eye and target together along the camera's local axes.
// Safe for concurrent access.
type CameraController interface {
	orbitCameraController
	planarCameraController

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - [3]float32: world-space eye position
	Position() [3]float32

	// Target returns the look-at point.
	//
	// Returns:
	//   - [3]float32: world-space target position
	Target() [3]float32

	// SetTarget moves the pivot point and recomputes the position from the current
	// radius, azimuth, and elevation.
	//
	// Parameters:
	//   - target: world-space pivot point
	SetTarget(target [3]float32)

	// Look places the eye and target directly and derives radius, azimuth, and elevation
	// from the offset between them. Bounds are not applied.
	//
	// Parameters:
	//   - position: world-space eye position
	//   - target: world-space look-at point
	Look(position, target [3]float32)

	// Zoom moves the eye toward the target by delta * ZoomSpeed, clamped to the radius bounds.
	//
	// Parameters:
	//   - delta: zoom amount; positive zooms in
	Zoom(delta float32)
}

// orbitCameraController moves the eye over a sphere (radius, azimuth, elevation) around the target.
type orbitCameraController interface {
	// OrbitLeft rotates the eye left around the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the eye right around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp raises the eye by one orbit speed step, clamped to the maximum elevation.
	OrbitUp()

	// OrbitDown lowers the eye by one orbit speed step, clamped to the minimum elevation.
	OrbitDown()

	// Radius returns the distance from the target.
	//
	// Returns:
	//   - float32: current orbit radius
	Radius() float32

	// SetRadius sets the orbit radius, clamped to the radius bounds.
	//
	// Parameters:
	//   - radius: new distance from the target
	SetRadius(radius float32)

	// Azimuth returns the horizontal angle around the Y axis, 0 facing +Z.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// SetAzimuth sets the horizontal angle.
	//
	// Parameters:
	//   - azimuth: angle in radians
	SetAzimuth(azimuth float32)

	// Elevation returns the vertical angle above the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// SetElevation sets the vertical angle, clamped to the elevation bounds.
	//
	// Parameters:
	//   - elevation: angle in radians
	SetElevation(elevation float32)

	// OrbitSpeed returns the orbit step in radians.
	OrbitSpeed() float32

	// ZoomSpeed returns the zoom multiplier.
	ZoomSpeed() float32
}

// planarCameraController translates eye and target together without changing the orbit angles.
type planarCameraController interface {
	// PanRight moves along the camera's right axis. Negative delta moves left.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanRight(delta float32)

	// PanUp moves along the camera's up axis. Negative delta moves down.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanUp(delta float32)

	// PanForward moves along the viewing direction. Negative delta moves back.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanForward(delta float32)

	// PanSpeed returns the pan multiplier.
	PanSpeed() float32
}
