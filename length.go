// Package batik implements live, animatable length-list attributes for an
// SVG-like document model. A length-list attribute has two values: the base
// value parsed lazily from the attribute's text, and an override value pushed
// wholesale by an animation driver. AnimatedLengthList keeps the two
// consistent under interleaved text edits and override assignments.
package batik

import "strconv"

// Unit identifies the unit a length magnitude is expressed in.
type Unit uint8

const (
	UnitUnknown Unit = iota
	UnitNumber
	UnitPercentage
	UnitEms
	UnitExs
	UnitPx
	UnitCm
	UnitMm
	UnitIn
	UnitPt
	UnitPc
)

var unitSuffixes = [...]string{
	UnitUnknown:    "",
	UnitNumber:     "",
	UnitPercentage: "%",
	UnitEms:        "em",
	UnitExs:        "ex",
	UnitPx:         "px",
	UnitCm:         "cm",
	UnitMm:         "mm",
	UnitIn:         "in",
	UnitPt:         "pt",
	UnitPc:         "pc",
}

// Suffix returns the textual unit suffix, empty for plain numbers.
func (u Unit) Suffix() string {
	if int(u) >= len(unitSuffixes) {
		return ""
	}
	return unitSuffixes[u]
}

func (u Unit) String() string {
	switch u {
	case UnitNumber:
		return "number"
	case UnitPercentage:
		return "percentage"
	case UnitEms:
		return "em"
	case UnitExs:
		return "ex"
	case UnitPx:
		return "px"
	case UnitCm:
		return "cm"
	case UnitMm:
		return "mm"
	case UnitIn:
		return "in"
	case UnitPt:
		return "pt"
	case UnitPc:
		return "pc"
	default:
		return "unknown"
	}
}

// Axis is the geometric axis a length is measured along. Percentages resolve
// against different viewport dimensions depending on the axis.
type Axis uint8

const (
	AxisUnspecified Axis = iota
	AxisHorizontal
	AxisVertical
)

func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "unspecified"
	}
}

// Length is a single typed numeric entry of a length list.
type Length struct {
	Unit  Unit
	Value float32
	Axis  Axis
}

// String serializes the length as it appears in attribute text, e.g. "12.5px".
func (l Length) String() string {
	return strconv.FormatFloat(float64(l.Value), 'g', -1, 32) + l.Unit.Suffix()
}

func serializeLengths(items []Length, sep string) string {
	if len(items) == 0 {
		return ""
	}
	out := items[0].String()
	for _, it := range items[1:] {
		out += sep + it.String()
	}
	return out
}
