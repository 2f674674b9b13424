package service

import (
	"fmt"
	"math"

	"homeboard/internal/services/api/hue/domain"
)

// xyToHex converts a CIE xy chromaticity plus brightness (0-100) into an
// sRGB hex string using the D65 conversion matrix and sRGB gamma. The math
// is kept in this exact order so identical inputs always produce identical
// hex output.
func xyToHex(xy domain.XY, brightness float64) string {
	if xy.Y <= 0 {
		return "#000000"
	}
	yLum := brightness / 100
	if yLum <= 0 {
		yLum = 0.01
	}

	x := (yLum / xy.Y) * xy.X
	z := (yLum / xy.Y) * (1 - xy.X - xy.Y)

	r := x*1.656492 - yLum*0.354851 - z*0.255038
	g := -x*0.707196 + yLum*1.655397 + z*0.036152
	b := x*0.051713 - yLum*0.121364 + z*1.011530

	r, g, b = gamma(r), gamma(g), gamma(b)

	// rescale into gamut instead of clipping hue
	if max := math.Max(r, math.Max(g, b)); max > 1 {
		r, g, b = r/max, g/max, b/max
	}

	return fmt.Sprintf("#%02x%02x%02x", to255(r), to255(g), to255(b))
}

// gamma applies the reverse sRGB companding curve
func gamma(c float64) float64 {
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}

func to255(c float64) int {
	v := int(math.Round(math.Min(math.Max(c, 0), 1) * 255))
	return v
}

// averageXY computes the brightness-weighted average chromaticity of the
// lights that report a color. Returns nil when none do.
func averageXY(lights []domain.LightView) *domain.XY {
	var sumX, sumY, weight float64
	for _, l := range lights {
		if l.ColorXY == nil || !l.On {
			continue
		}
		w := l.Brightness
		if w <= 0 {
			w = 1
		}
		sumX += l.ColorXY.X * w
		sumY += l.ColorXY.Y * w
		weight += w
	}
	if weight == 0 {
		return nil
	}
	return &domain.XY{X: sumX / weight, Y: sumY / weight}
}
