package components

// Point is a 2-D coordinate pair in screen space.
type Point struct {
	X, Y float64
}

// Position represents a rocket's current screen position.
type Position struct {
	X, Y float64
}

// Point returns the position as a Point.
func (p Position) Point() Point {
	return Point{X: p.X, Y: p.Y}
}
