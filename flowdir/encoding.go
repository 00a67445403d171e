package flowdir

// Encoding decodes a raster flow-direction code into a Direction.
// ok is false for pits, sinks and undefined codes.
type Encoding interface {
	Decode(code int) (d Direction, ok bool)
}

// D8Pit is the canonical "no flow" code of the D8Index encoding.
const D8Pit = -1

// D8Index treats codes 0..7 as direct indices into the offset table.
type D8Index struct{}

// Decode implements Encoding.
func (D8Index) Decode(code int) (Direction, bool) {
	if code < 0 || code > 7 {
		return 0, false
	}
	return Direction(code), true
}

// LDDPit is the pit value of the LDD encoding.
const LDDPit = 5

// LDD is the PCRaster local drain direction encoding: the numeric keypad
// layout with 8 pointing north and 5 marking a pit.
//
//	7 8 9
//	4 5 6
//	1 2 3
type LDD struct{}

var lddDirections = [10]Direction{
	1: SouthWest,
	2: South,
	3: SouthEast,
	4: West,
	6: East,
	7: NorthWest,
	8: North,
	9: NorthEast,
}

// Decode implements Encoding.
func (LDD) Decode(code int) (Direction, bool) {
	if code < 1 || code > 9 || code == LDDPit {
		return 0, false
	}
	return lddDirections[code], true
}

// ESRI is the ArcGIS flow direction encoding: 1=E, 2=SE, 4=S, 8=SW,
// 16=W, 32=NW, 64=N, 128=NE. Zero and any other value mark a sink.
type ESRI struct{}

// Decode implements Encoding.
func (ESRI) Decode(code int) (Direction, bool) {
	switch code {
	case 1:
		return East, true
	case 2:
		return SouthEast, true
	case 4:
		return South, true
	case 8:
		return SouthWest, true
	case 16:
		return West, true
	case 32:
		return NorthWest, true
	case 64:
		return North, true
	case 128:
		return NorthEast, true
	}
	return 0, false
}
