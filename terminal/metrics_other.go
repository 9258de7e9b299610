//go:build !unix

package terminal

// CellPixels is unsupported off unix
func CellPixels() (CellSize, error) {
	return CellSize{}, ErrNoPixelSize
}
