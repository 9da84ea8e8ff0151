// Package position computes and applies anchor-relative placement for
// floating overlay containers. A placement is a two-token string such as
// "top left" or "right center": the first token is the direction the
// overlay sits relative to its anchor, the last token is the alignment
// along the perpendicular axis.
package position

import "strings"

// Directions.
const (
	Top    = "top"
	Bottom = "bottom"
	Left   = "left"
	Right  = "right"
)

// Alignments. Horizontal directions (left/right) align vertically with
// Top/Center/Bottom; vertical directions (top/bottom) align horizontally
// with AlignLeft/Center/AlignRight.
const (
	Center     = "center"
	AlignLeft  = "left"
	AlignRight = "right"
)

// DefaultPlacement is used when a caller supplies no preference.
const DefaultPlacement = Top + " " + AlignLeft

// Split returns the direction and alignment tokens of a placement
// string: the first and last whitespace-separated tokens. A single-token
// placement yields that token for both. An empty placement yields two
// empty strings.
func Split(placement string) (direction, alignment string) {
	fields := strings.Fields(placement)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], fields[len(fields)-1]
}

// Join builds a placement string from direction and alignment tokens.
func Join(direction, alignment string) string {
	if alignment == "" {
		return direction
	}
	return direction + " " + alignment
}

// Valid reports whether the placement names a known direction with an
// alignment legal for that direction's axis.
func Valid(placement string) bool {
	dir, align := Split(placement)
	switch dir {
	case Top, Bottom:
		return align == AlignLeft || align == Center || align == AlignRight
	case Left, Right:
		return align == Top || align == Center || align == Bottom
	default:
		return false
	}
}

// opposite returns the flipped direction for overflow handling.
func opposite(direction string) string {
	switch direction {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	}
	return direction
}
