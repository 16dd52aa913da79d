package batik

import (
	"fmt"
	"strconv"
)

// ParseFunc turns attribute text into length items. The binding consumes the
// parser through this seam so tests and hosts can substitute their own.
type ParseFunc func(text string, axis Axis) ([]Length, error)

// ParseLengthList parses an SVG length list: lengths separated by whitespace,
// commas, or both. A partial parse is discarded; the caller never observes
// half a list.
func ParseLengthList(text string, axis Axis) ([]Length, error) {
	var items []Length
	i := 0
	n := len(text)
	sawComma := false
	for {
		for i < n && isListSpace(text[i]) {
			i++
		}
		if i < n && text[i] == ',' {
			if sawComma || len(items) == 0 {
				return nil, fmt.Errorf("length list: unexpected ',' at offset %d", i)
			}
			sawComma = true
			i++
			continue
		}
		if i >= n {
			break
		}
		start := i
		for i < n && !isListSpace(text[i]) && text[i] != ',' {
			i++
		}
		item, err := parseLength(text[start:i], axis)
		if err != nil {
			return nil, fmt.Errorf("length list at offset %d: %v", start, err)
		}
		items = append(items, item)
		sawComma = false
	}
	if sawComma {
		return nil, fmt.Errorf("length list: trailing ','")
	}
	return items, nil
}

func parseLength(token string, axis Axis) (Length, error) {
	num := token
	unit := UnitNumber
	switch {
	case hasSuffix(token, "%"):
		num, unit = token[:len(token)-1], UnitPercentage
	case hasSuffix(token, "em"):
		num, unit = token[:len(token)-2], UnitEms
	case hasSuffix(token, "ex"):
		num, unit = token[:len(token)-2], UnitExs
	case hasSuffix(token, "px"):
		num, unit = token[:len(token)-2], UnitPx
	case hasSuffix(token, "cm"):
		num, unit = token[:len(token)-2], UnitCm
	case hasSuffix(token, "mm"):
		num, unit = token[:len(token)-2], UnitMm
	case hasSuffix(token, "in"):
		num, unit = token[:len(token)-2], UnitIn
	case hasSuffix(token, "pt"):
		num, unit = token[:len(token)-2], UnitPt
	case hasSuffix(token, "pc"):
		num, unit = token[:len(token)-2], UnitPc
	}
	if num == "" {
		return Length{}, fmt.Errorf("missing magnitude in %q", token)
	}
	v, err := strconv.ParseFloat(num, 32)
	if err != nil {
		return Length{}, fmt.Errorf("bad magnitude %q", token)
	}
	return Length{Unit: unit, Value: float32(v), Axis: axis}, nil
}

func isListSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}
