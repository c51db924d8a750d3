package raster

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor parses a color value:
//
//	#rgb, #rrggbb, #rrggbbaa     hexadecimal
//	rgb(r, g, b)                 0-255 channels
//	rgba(r, g, b, a)             0-255 channels, alpha 0-1
//	red, cornflowerblue, ...     CSS color names
//	transparent
func ParseColor(spec string) (color.Color, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	switch {
	case s == "":
		return nil, fmt.Errorf("empty color")
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunctional(s[5:len(s)-1], true)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunctional(s[4:len(s)-1], false)
	case s == "transparent":
		return color.NRGBA{}, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return nil, fmt.Errorf("unknown color %q", spec)
}

func parseHex(h string) (color.Color, error) {
	orig := "#" + h
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]}) + "ff"
	case 6:
		h += "ff"
	case 8:
	default:
		return nil, fmt.Errorf("hex color must have 3, 6 or 8 digits, got %q", orig)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid hex color %q", orig)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

func parseFunctional(args string, withAlpha bool) (color.Color, error) {
	parts := strings.Split(args, ",")
	want := 3
	if withAlpha {
		want = 4
	}
	if len(parts) != want {
		return nil, fmt.Errorf("expected %d components, got %d", want, len(parts))
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return nil, fmt.Errorf("channel %q out of range 0-255", strings.TrimSpace(parts[i]))
		}
		ch[i] = uint8(n)
	}

	alpha := uint8(255)
	if withAlpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return nil, fmt.Errorf("alpha %q out of range 0-1", strings.TrimSpace(parts[3]))
		}
		alpha = uint8(a*255 + 0.5)
	}

	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

// withOpacity scales the alpha of c by opacity in [0, 1].
func withOpacity(c color.Color, opacity float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if opacity >= 1 {
		return n
	}
	if opacity <= 0 {
		n.A = 0
		return n
	}
	n.A = uint8(float64(n.A)*opacity + 0.5)
	return n
}
