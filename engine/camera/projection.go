package camera

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/chewxy/math32"
)

// Projection is a camera projection variant: Perspective or Orthographic.
type Projection interface {
	// Validate reports whether the projection parameters produce a usable matrix.
	//
	// Returns:
	//   - error: an error wrapping ErrInvalidProjection, or nil
	Validate() error

	// Matrix returns the left-handed projection matrix.
	//
	// Returns:
	//   - [16]float32: the projection matrix (column-major)
	//   - error: an error wrapping ErrInvalidProjection when Validate fails
	Matrix() ([16]float32, error)

	projection()
}

// Perspective is a left-handed perspective projection.
type Perspective struct {
	FovY   float32 // vertical field of view in radians
	Aspect float32 // width / height
	Near   float32
	Far    float32
}

// Orthographic is a left-handed orthographic projection bounded by six planes.
type Orthographic struct {
	Left, Right float32
	Bottom, Top float32
	Near, Far   float32
}

var (
	_ Projection = Perspective{}
	_ Projection = Orthographic{}
)

func (Perspective) projection()  {}
func (Orthographic) projection() {}

func (p Perspective) Validate() error {
	switch {
	case !finite(p.FovY, p.Aspect, p.Near, p.Far):
		return fmt.Errorf("%w: perspective parameters must be finite", ErrInvalidProjection)
	case !(p.FovY > 0):
		return fmt.Errorf("%w: fov_y must be positive, got %v", ErrInvalidProjection, p.FovY)
	case !(p.Aspect > 0):
		return fmt.Errorf("%w: aspect must be positive, got %v", ErrInvalidProjection, p.Aspect)
	case !(p.Near > 0):
		return fmt.Errorf("%w: perspective near must be positive, got %v", ErrInvalidProjection, p.Near)
	case !(p.Near < p.Far):
		return fmt.Errorf("%w: near %v must be less than far %v", ErrInvalidProjection, p.Near, p.Far)
	}
	return nil
}

func (p Perspective) Matrix() ([16]float32, error) {
	var m [16]float32
	if err := p.Validate(); err != nil {
		return m, err
	}
	common.PerspectiveLH(m[:], p.FovY, p.Aspect, p.Near, p.Far)
	return m, nil
}

func (o Orthographic) Validate() error {
	switch {
	case !finite(o.Left, o.Right, o.Bottom, o.Top, o.Near, o.Far):
		return fmt.Errorf("%w: orthographic planes must be finite", ErrInvalidProjection)
	case !(o.Near < o.Far):
		return fmt.Errorf("%w: near %v must be less than far %v", ErrInvalidProjection, o.Near, o.Far)
	case o.Left == o.Right:
		return fmt.Errorf("%w: zero-width orthographic volume", ErrInvalidProjection)
	case o.Bottom == o.Top:
		return fmt.Errorf("%w: zero-height orthographic volume", ErrInvalidProjection)
	}
	return nil
}

func (o Orthographic) Matrix() ([16]float32, error) {
	var m [16]float32
	if err := o.Validate(); err != nil {
		return m, err
	}
	common.OrthographicLH(m[:], o.Left, o.Right, o.Bottom, o.Top, o.Near, o.Far)
	return m, nil
}

func finite(values ...float32) bool {
	for _, v := range values {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}
