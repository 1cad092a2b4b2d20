package object

// Axis is one of the two horizontal axes a layer can travel along.
type Axis int

const (
	AxisX Axis = iota
	AxisZ
)

// Other returns the perpendicular horizontal axis.
func (a Axis) Other() Axis {
	if a == AxisX {
		return AxisZ
	}
	return AxisX
}

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "z"
}

// Vec3 is a world-space coordinate or extent. Y points up.
type Vec3 struct {
	X, Y, Z float64
}

// Get returns the component along a horizontal axis.
func (v Vec3) Get(a Axis) float64 {
	if a == AxisX {
		return v.X
	}
	return v.Z
}

// With returns a copy of v with the component along a replaced.
func (v Vec3) With(a Axis, value float64) Vec3 {
	if a == AxisX {
		v.X = value
	} else {
		v.Z = value
	}
	return v
}

// Add returns the component-wise sum.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}
