// Package label maps grid cell indices to short typeable labels and back.
//
// Each axis is encoded independently into a segment: a letter carrying the
// value modulo 52 (a-z for 0-25, A-Z for 26-51), preceded by the decimal
// quotient when the value is 52 or more. The column segment comes first.
//
//	(0, 0)   -> "aa"
//	(26, 26) -> "AA"
//	(51, 51) -> "ZZ"
//	(52, 0)  -> "1aa"
//	(3, 60)  -> "d1i"
//
// Most cells of a small or medium grid stay at one character per axis while
// the scheme remains unbounded for any uint32 index.
package label

import (
	"math"
	"strconv"
)

// Radix is the number of letters available for the trailing digit of a segment
const Radix = 52

// Index addresses one grid cell
type Index struct {
	Col uint32
	Row uint32
}

// Encode returns the label for ix
func Encode(ix Index) string {
	var buf [2 * maxSegmentLen]byte
	return string(Append(buf[:0], ix))
}

// Append appends the label for ix to dst and returns the extended buffer
func Append(dst []byte, ix Index) []byte {
	dst = appendSegment(dst, ix.Col)
	return appendSegment(dst, ix.Row)
}

// maxSegmentLen is len("82595524V"), the segment of math.MaxUint32
const maxSegmentLen = 9

func appendSegment(dst []byte, v uint32) []byte {
	if v >= Radix {
		dst = strconv.AppendUint(dst, uint64(v/Radix), 10)
	}
	return append(dst, letter(v%Radix))
}

func letter(digit uint32) byte {
	if digit < 26 {
		return 'a' + byte(digit)
	}
	return 'A' + byte(digit-26)
}

// Decode parses a label prefix of s back into an Index.
// Input after the row letter is ignored, so a longer typed sequence
// resolves as soon as it starts with a complete label.
// Returns false on an empty or unterminated segment, a non-letter where a
// letter is required, or a value that does not fit in uint32.
func Decode(s string) (Index, bool) {
	col, rest, ok := decodeSegment(s)
	if !ok {
		return Index{}, false
	}
	row, _, ok := decodeSegment(rest)
	if !ok {
		return Index{}, false
	}
	return Index{Col: col, Row: row}, true
}

// decodeSegment consumes one axis from the front of s
func decodeSegment(s string) (uint32, string, bool) {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}

	var prefix uint64
	if n > 0 {
		p, err := strconv.ParseUint(s[:n], 10, 32)
		if err != nil {
			return 0, "", false
		}
		prefix = p
	}

	if n >= len(s) {
		return 0, "", false
	}
	digit, ok := letterValue(s[n])
	if !ok {
		return 0, "", false
	}

	v := prefix*Radix + uint64(digit)
	if v > math.MaxUint32 {
		return 0, "", false
	}
	return uint32(v), s[n+1:], true
}

func letterValue(c byte) (uint32, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return uint32(c - 'a'), true
	case c >= 'A' && c <= 'Z':
		return uint32(c-'A') + 26, true
	}
	return 0, false
}

// SegmentLen returns the encoded length of a single axis value
func SegmentLen(v uint32) int {
	n := 1
	for q := v / Radix; q > 0; q /= 10 {
		n++
	}
	return n
}

// Len returns len(Encode(ix)) without building the label
func Len(ix Index) int {
	return SegmentLen(ix.Col) + SegmentLen(ix.Row)
}
