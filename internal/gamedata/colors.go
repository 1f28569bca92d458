package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// elementHex is the display colour of each element.
var elementHex = map[ElementKey]string{
	ElementFire:     "#ff4444",
	ElementWater:    "#4488ff",
	ElementEarth:    "#8b4513",
	ElementAir:      "#87ceeb",
	ElementWood:     "#228b22",
	ElementMetal:    "#c0c0c0",
	ElementLight:    "#ffff99",
	ElementDarkness: "#4b0082",
	ElementLife:     "#90ee90",
	ElementDeath:    "#800080",
	ElementTime:     "#ffd700",
	ElementSpace:    "#9370db",
}

// ElementHex returns the hex colour string for an element, or "" if unknown.
func ElementHex(key ElementKey) string {
	return elementHex[key]
}

// ElementColor returns the element's colour as a tcell.Color.
func ElementColor(key ElementKey) tcell.Color {
	hex, ok := elementHex[key]
	if !ok {
		return tcell.ColorDefault
	}
	color, err := ParseHexColor(hex)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid red component in %s: %w", hex, err)
	}

	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid green component in %s: %w", hex, err)
	}

	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid blue component in %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}
