package flowdir_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/kinroute/flowdir"
)

// TestNewRaster_Errors verifies that NewRaster rejects empty or ragged inputs.
func TestNewRaster_Errors(t *testing.T) {
	cases := []struct {
		name   string
		codes  [][]int
		active [][]bool
		err    error
	}{
		{"EmptyRows", [][]int{}, nil, flowdir.ErrEmptyGrid},
		{"EmptyCols", [][]int{{}}, nil, flowdir.ErrEmptyGrid},
		{"NonRectangular", [][]int{{1, 2}, {3}}, nil, flowdir.ErrNonRectangular},
		{"MaskRows", [][]int{{1, 2}}, [][]bool{{true, true}, {true, true}}, flowdir.ErrMaskShape},
		{"MaskCols", [][]int{{1, 2}}, [][]bool{{true}}, flowdir.ErrMaskShape},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := flowdir.NewRaster(tc.codes, tc.active)
			if !errors.Is(err, tc.err) {
				t.Errorf("NewRaster(%v) error = %v; want %v", tc.codes, err, tc.err)
			}
		})
	}
}

// TestNewRaster_DeepCopy ensures later mutation of the input has no effect.
func TestNewRaster_DeepCopy(t *testing.T) {
	codes := [][]int{{2, 2}}
	mask := [][]bool{{true, false}}
	r, err := flowdir.NewRaster(codes, mask)
	if err != nil {
		t.Fatalf("NewRaster error: %v", err)
	}
	codes[0][0] = 7
	mask[0][1] = true

	if got := r.Code(0, 0); got != 2 {
		t.Errorf("Code(0,0) = %d; want 2", got)
	}
	if r.IsActive(0, 1) {
		t.Error("IsActive(0,1) = true after mutating the caller's mask")
	}
}

// TestInBounds checks InBounds on a 2×3 raster.
func TestInBounds(t *testing.T) {
	r, err := flowdir.NewRaster([][]int{{0, 0, 0}, {0, 0, 0}}, nil)
	if err != nil {
		t.Fatalf("NewRaster error: %v", err)
	}
	valid := [][2]int{{0, 0}, {1, 2}, {1, 1}}
	for _, rc := range valid {
		if !r.InBounds(rc[0], rc[1]) {
			t.Errorf("InBounds(%d,%d)=false; want true", rc[0], rc[1])
		}
	}
	invalid := [][2]int{{-1, 0}, {2, 0}, {0, 3}, {1, -1}}
	for _, rc := range invalid {
		if r.InBounds(rc[0], rc[1]) {
			t.Errorf("InBounds(%d,%d)=true; want false", rc[0], rc[1])
		}
	}
}

// TestCompress verifies row-major id assignment skipping inactive cells.
func TestCompress(t *testing.T) {
	mask := [][]bool{
		{false, true, true},
		{true, false, true},
	}
	r, err := flowdir.NewRaster([][]int{{0, 0, 0}, {0, 0, 0}}, mask)
	if err != nil {
		t.Fatalf("NewRaster error: %v", err)
	}
	idx := r.Compress()
	if idx.Len() != 4 {
		t.Fatalf("Len = %d; want 4", idx.Len())
	}
	want := map[[2]int]int{{0, 1}: 0, {0, 2}: 1, {1, 0}: 2, {1, 2}: 3}
	for rc, id := range want {
		if got := idx.ID(rc[0], rc[1]); got != id {
			t.Errorf("ID(%d,%d) = %d; want %d", rc[0], rc[1], got, id)
		}
		if row, col := idx.Cell(id); row != rc[0] || col != rc[1] {
			t.Errorf("Cell(%d) = (%d,%d); want (%d,%d)", id, row, col, rc[0], rc[1])
		}
	}
	if got := idx.ID(0, 0); got != -1 {
		t.Errorf("ID(0,0) = %d; want -1 for inactive cell", got)
	}
}
