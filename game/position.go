package game

// Layer indices within a cell. Ground is the primary occupancy plane,
// bridge is the overpass plane on top of it.
const (
	GroundLayer = 0
	BridgeLayer = 1
)

// Position identifies a single cell slot on the board.
type Position struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Layer int `json:"layer"`
}

// Direction of a move path, derived from its first two positions.
type Direction int

const (
	DirectionNone Direction = iota
	Horizontal
	Vertical
)

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "none"
	}
}
