// Package terminal reads geometry the tcell screen does not expose:
// the pixel size of one character cell, used to report resolved grid
// points in pixels instead of cells.
package terminal
