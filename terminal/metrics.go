package terminal

import "errors"

// ErrNoPixelSize indicates the terminal does not report its pixel dimensions
var ErrNoPixelSize = errors.New("terminal: pixel size not reported")

// CellSize is the pixel size of one character cell
type CellSize struct {
	W int
	H int
}

// cellFromWinsize derives cell pixels from a window size report.
// Terminals that do not report pixels leave xpixel/ypixel at zero.
func cellFromWinsize(cols, rows, xpixel, ypixel uint16) (CellSize, bool) {
	if cols == 0 || rows == 0 || xpixel == 0 || ypixel == 0 {
		return CellSize{}, false
	}
	cs := CellSize{W: int(xpixel) / int(cols), H: int(ypixel) / int(rows)}
	if cs.W == 0 || cs.H == 0 {
		return CellSize{}, false
	}
	return cs, true
}
