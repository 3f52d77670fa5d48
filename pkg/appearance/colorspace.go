package appearance

import (
	"image"
	"math"

	"StyleAdvisor/pkg/imaging"
)

// D65 reference white used to normalise X and Z.
const (
	whiteX = 0.950456
	whiteZ = 1.088754
)

// srgbLinear maps an 8-bit sRGB channel to linear light.
var srgbLinear = func() [256]float64 {
	var table [256]float64
	for i := range table {
		c := float64(i) / 255
		if c <= 0.04045 {
			table[i] = c / 12.92
		} else {
			table[i] = math.Pow((c+0.055)/1.055, 2.4)
		}
	}
	return table
}()

// Lab holds the three channels of an 8-bit encoded CIE L*a*b* value:
// L scaled to 0..255, a and b offset by 128.
type Lab struct {
	L float64
	A float64
	B float64
}

func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

func saturate(v float64) uint8 {
	v = math.RoundToEven(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// BGRToLab converts one pixel the way OpenCV's 8-bit BGR2Lab does.
func BGRToLab(b, g, r uint8) (l, a, bb uint8) {
	rl, gl, bl := srgbLinear[r], srgbLinear[g], srgbLinear[b]

	x := (0.412453*rl + 0.357580*gl + 0.180423*bl) / whiteX
	y := 0.212671*rl + 0.715160*gl + 0.072169*bl
	z := (0.019334*rl + 0.119193*gl + 0.950227*bl) / whiteZ

	fx, fy, fz := labF(x), labF(y), labF(z)

	var lightness float64
	if y > 0.008856 {
		lightness = 116*fy - 16
	} else {
		lightness = 903.3 * y
	}

	return saturate(lightness * 255 / 100),
		saturate(500*(fx-fy) + 128),
		saturate(200*(fy-fz) + 128)
}

// MeanLab averages the Lab channels over rect. rect must be non-empty and
// inside the grid.
func MeanLab(grid *imaging.Grid, rect image.Rectangle) Lab {
	var sumL, sumA, sumB uint64
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			l, a, b := BGRToLab(grid.BGR(x, y))
			sumL += uint64(l)
			sumA += uint64(a)
			sumB += uint64(b)
		}
	}

	n := float64(rect.Dx() * rect.Dy())
	return Lab{
		L: float64(sumL) / n,
		A: float64(sumA) / n,
		B: float64(sumB) / n,
	}
}

// BGRToHSV converts one pixel the way OpenCV's 8-bit BGR2HSV does: hue is
// in 0..179, saturation and value in 0..255.
func BGRToHSV(b, g, r uint8) (h, s, v uint8) {
	vmax := max(r, g, b)
	vmin := min(r, g, b)
	diff := int(vmax) - int(vmin)

	v = vmax
	if vmax != 0 {
		s = saturate(float64(diff) * 255 / float64(vmax))
	}
	if diff == 0 {
		return 0, s, v
	}

	var num int
	switch vmax {
	case r:
		num = int(g) - int(b)
	case g:
		num = int(b) - int(r) + 2*diff
	default:
		num = int(r) - int(g) + 4*diff
	}

	hue := int(math.Floor(30*float64(num)/float64(diff) + 0.5))
	if hue < 0 {
		hue += 180
	}
	return uint8(hue), s, v
}

// MeanBGR averages each channel over rect and truncates the result to
// 8 bits. rect must be non-empty and inside the grid.
func MeanBGR(grid *imaging.Grid, rect image.Rectangle) (b, g, r uint8) {
	var sumB, sumG, sumR uint64
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			pb, pg, pr := grid.BGR(x, y)
			sumB += uint64(pb)
			sumG += uint64(pg)
			sumR += uint64(pr)
		}
	}

	n := float64(rect.Dx() * rect.Dy())
	return uint8(float64(sumB) / n), uint8(float64(sumG) / n), uint8(float64(sumR) / n)
}
