package terminal

import "testing"

func TestCellFromWinsize(t *testing.T) {
	cases := []struct {
		name                 string
		cols, rows, xpx, ypx uint16
		want                 CellSize
		ok                   bool
	}{
		{"Reported", 80, 24, 800, 480, CellSize{W: 10, H: 20}, true},
		{"Rounded", 100, 30, 1015, 631, CellSize{W: 10, H: 21}, true},
		{"NoPixels", 80, 24, 0, 0, CellSize{}, false},
		{"NoRows", 80, 0, 800, 480, CellSize{}, false},
		{"SubPixelCells", 200, 50, 100, 40, CellSize{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := cellFromWinsize(tc.cols, tc.rows, tc.xpx, tc.ypx)
			if ok != tc.ok || got != tc.want {
				t.Errorf("cellFromWinsize(%d, %d, %d, %d) = %+v, %v; want %+v, %v",
					tc.cols, tc.rows, tc.xpx, tc.ypx, got, ok, tc.want, tc.ok)
			}
		})
	}
}
