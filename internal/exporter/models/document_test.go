package models

import "testing"

func TestNodePosition(t *testing.T) {
	d := &Diagram{
		XAxis: []float64{0, 4, 8},
		YAxis: []float64{0, 3},
	}
	tests := []struct {
		idx  int
		want Point
		ok   bool
	}{
		{0, Point{0, 0}, true},
		{1, Point{4, 0}, true},
		{2, Point{8, 0}, true},
		{3, Point{0, 3}, true},
		{5, Point{8, 3}, true},
		{6, Point{}, false}, // за пределами сетки
		{-1, Point{}, false},
	}
	for _, tt := range tests {
		got, ok := d.NodePosition(tt.idx)
		if ok != tt.ok || got != tt.want {
			t.Errorf("NodePosition(%d) = %+v, %v, want %+v, %v", tt.idx, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNodePositionEmptyAxes(t *testing.T) {
	d := &Diagram{}
	if _, ok := d.NodePosition(0); ok {
		t.Error("expected ok=false for diagram without axes")
	}
}
