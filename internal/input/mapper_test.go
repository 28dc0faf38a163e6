package input

import (
	"image"
	"testing"
)

func TestCellAt(t *testing.T) {
	m := Mapper{
		Bounds: image.Rect(100, 50, 500, 450),
		CellW:  10,
		CellH:  20,
		PadX:   4,
		PadY:   2,
		Cols:   30,
		Rows:   15,
	}

	tests := []struct {
		name     string
		x, y     int
		col, row int
		ok       bool
	}{
		{"origin cell", 104, 52, 0, 0, true},
		{"last pixel of origin cell", 113, 71, 0, 0, true},
		{"first pixel of next cell", 114, 72, 1, 1, true},
		{"mid grid", 254, 152, 15, 5, true},
		{"left of padding", 103, 52, 0, 0, false},
		{"above padding", 104, 51, 0, 0, false},
		{"past last column", 104 + 30*10, 52, 0, 0, false},
		{"past last row", 104, 52 + 15*20, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row, ok := m.CellAt(tt.x, tt.y)
			if ok != tt.ok {
				t.Fatalf("CellAt(%d,%d) ok = %v, want %v", tt.x, tt.y, ok, tt.ok)
			}
			if ok && (col != tt.col || row != tt.row) {
				t.Errorf("CellAt(%d,%d) = (%d,%d), want (%d,%d)", tt.x, tt.y, col, row, tt.col, tt.row)
			}
		})
	}
}

func TestCellAtDegenerateGeometry(t *testing.T) {
	m := Mapper{Bounds: image.Rect(0, 0, 100, 100), Cols: 10, Rows: 10}
	if _, _, ok := m.CellAt(50, 50); ok {
		t.Error("zero cell size must never resolve")
	}
}

func TestCellClamped(t *testing.T) {
	m := Mapper{
		Bounds: image.Rect(0, 0, 200, 100),
		CellW:  10,
		CellH:  10,
		Cols:   20,
		Rows:   10,
	}

	tests := []struct {
		x, y     int
		col, row int
	}{
		{-50, -50, 0, 0},
		{55, 35, 5, 3},
		{1000, 1000, 19, 9},
		{55, -10, 5, 0},
	}
	for _, tt := range tests {
		col, row := m.CellClamped(tt.x, tt.y)
		if col != tt.col || row != tt.row {
			t.Errorf("CellClamped(%d,%d) = (%d,%d), want (%d,%d)", tt.x, tt.y, col, row, tt.col, tt.row)
		}
	}
}
