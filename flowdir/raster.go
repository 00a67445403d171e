package flowdir

// Raster is an immutable flow-direction grid with its active-pixel mask.
// Codes[r][c] holds the raw direction code; Active[r][c] marks land cells.
type Raster struct {
	Rows, Cols int
	codes      [][]int
	active     [][]bool
}

// NewRaster constructs a Raster from a non-empty, rectangular code grid and
// an active mask of the same shape. A nil mask marks every cell active.
// It deep-copies both inputs to ensure immutability.
// Returns ErrEmptyGrid, ErrNonRectangular or ErrMaskShape on bad shapes.
// Complexity: O(R×C) time and memory.
func NewRaster(codes [][]int, active [][]bool) (*Raster, error) {
	if len(codes) == 0 || len(codes[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(codes), len(codes[0])
	for _, row := range codes {
		if len(row) != cols {
			return nil, ErrNonRectangular
		}
	}
	if active != nil {
		if len(active) != rows {
			return nil, ErrMaskShape
		}
		for _, row := range active {
			if len(row) != cols {
				return nil, ErrMaskShape
			}
		}
	}

	// Deep copy to prevent external mutation
	c := make([][]int, rows)
	a := make([][]bool, rows)
	for r := 0; r < rows; r++ {
		c[r] = make([]int, cols)
		copy(c[r], codes[r])
		a[r] = make([]bool, cols)
		if active == nil {
			for k := range a[r] {
				a[r][k] = true
			}
		} else {
			copy(a[r], active[r])
		}
	}

	return &Raster{Rows: rows, Cols: cols, codes: c, active: a}, nil
}

// InBounds reports whether (row,col) lies within the grid.
// Complexity: O(1).
func (r *Raster) InBounds(row, col int) bool {
	return row >= 0 && row < r.Rows && col >= 0 && col < r.Cols
}

// Code returns the raw direction code at (row,col).
func (r *Raster) Code(row, col int) int {
	return r.codes[row][col]
}

// IsActive reports whether (row,col) is inside the grid and active.
func (r *Raster) IsActive(row, col int) bool {
	return r.InBounds(row, col) && r.active[row][col]
}

// Index is the compressed pixel-id assignment of a Raster's active cells.
type Index struct {
	cols  int
	ids   []int // row-major cell -> pixel id, -1 for inactive
	cells []int // pixel id -> row-major cell
}

// Compress assigns pixel ids to active cells in row-major order.
// Complexity: O(R×C).
func (r *Raster) Compress() *Index {
	idx := &Index{
		cols: r.Cols,
		ids:  make([]int, r.Rows*r.Cols),
	}
	for row := 0; row < r.Rows; row++ {
		for col := 0; col < r.Cols; col++ {
			k := row*r.Cols + col
			if !r.active[row][col] {
				idx.ids[k] = -1
				continue
			}
			idx.ids[k] = len(idx.cells)
			idx.cells = append(idx.cells, k)
		}
	}
	return idx
}

// Len returns the number of active pixels.
func (x *Index) Len() int {
	return len(x.cells)
}

// ID returns the pixel id of (row,col), or -1 if the cell is inactive.
// The caller must pass in-bounds coordinates.
func (x *Index) ID(row, col int) int {
	return x.ids[row*x.cols+col]
}

// Cell converts a pixel id back to (row,col).
func (x *Index) Cell(id int) (row, col int) {
	k := x.cells[id]
	return k / x.cols, k % x.cols
}
