//go:build unix

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// ttyPath is the controlling terminal; stdout may be a pipe
const ttyPath = "/dev/tty"

// CellPixels queries the controlling terminal for its cell size in pixels
func CellPixels() (CellSize, error) {
	f, err := os.Open(ttyPath)
	if err != nil {
		return CellSize{}, fmt.Errorf("terminal: open %s: %w", ttyPath, err)
	}
	defer f.Close()
	return cellPixelsFd(int(f.Fd()))
}

func cellPixelsFd(fd int) (CellSize, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return CellSize{}, fmt.Errorf("terminal: TIOCGWINSZ: %w", err)
	}
	cs, ok := cellFromWinsize(ws.Col, ws.Row, ws.Xpixel, ws.Ypixel)
	if !ok {
		return CellSize{}, ErrNoPixelSize
	}
	return cs, nil
}
