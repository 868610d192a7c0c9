package world

// Direction represents a cardinal direction
type Direction int

// Direction constants
const (
	North Direction = iota
	East
	South
	West
)

// Lookup tables keyed by direction. All left/right reasoning goes through these.
var (
	opposites = [...]Direction{North: South, East: West, South: North, West: East}

	clockwise = [...]Direction{North: East, East: South, South: West, West: North}

	anticlockwise = [...]Direction{North: West, East: North, South: East, West: South}

	deltas = [...][2]int{North: {-1, 0}, East: {0, 1}, South: {1, 0}, West: {0, -1}}

	names = [...]string{North: "North", East: "East", South: "South", West: "West"}
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// ProbeOrder is the order walls are reported by a wall probe:
// left, top, right, bottom for a player facing up the map.
func ProbeOrder() []Direction {
	return []Direction{West, North, East, South}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	if !d.IsValid() {
		return "Unknown"
	}
	return names[d]
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// IsHorizontal reports whether d is East or West.
func (d Direction) IsHorizontal() bool {
	return d == East || d == West
}

// IsVertical reports whether d is North or South.
func (d Direction) IsVertical() bool {
	return d == North || d == South
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	if !d.IsValid() {
		return d
	}
	return opposites[d]
}

// Clockwise returns the next direction turning clockwise (North -> East).
func (d Direction) Clockwise() Direction {
	if !d.IsValid() {
		return d
	}
	return clockwise[d]
}

// Anticlockwise returns the next direction turning anticlockwise (North -> West).
func (d Direction) Anticlockwise() Direction {
	if !d.IsValid() {
		return d
	}
	return anticlockwise[d]
}

// Delta returns the row and column offsets for this direction
func (d Direction) Delta() (rowDelta, colDelta int) {
	if !d.IsValid() {
		return 0, 0
	}
	return deltas[d][0], deltas[d][1]
}
