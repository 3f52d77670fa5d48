package appearance

import (
	"image"

	"StyleAdvisor/internal/entity"
	"StyleAdvisor/pkg/imaging"
)

// HairBandHeight is how far above the face box the hair sample starts.
const HairBandHeight = 50

// Upper bounds (exclusive) on the 0..179 hue scale.
const (
	BlackHairBelow  = 20
	BrownHairBelow  = 30
	BlondeHairBelow = 50
)

// HairRegion is the band above the face, clipped to the grid. It is empty
// when the face touches the top edge.
func HairRegion(bounds image.Rectangle, face entity.Region) image.Rectangle {
	band := image.Rectangle{
		Min: image.Pt(face.Left, max(0, face.Top-HairBandHeight)),
		Max: image.Pt(face.Left+face.Width, face.Top),
	}
	return band.Intersect(bounds)
}

// HairColor classifies the mean color of the hair band. An empty band
// reads as hue 0, i.e. BlackHair.
func HairColor(grid *imaging.Grid, face entity.Region) entity.HairColor {
	rect := HairRegion(grid.Bounds(), face)
	if rect.Empty() {
		return ClassifyHue(0)
	}

	hue, _, _ := BGRToHSV(MeanBGR(grid, rect))
	return ClassifyHue(int(hue))
}

func ClassifyHue(hue int) entity.HairColor {
	switch {
	case hue < BlackHairBelow:
		return entity.BlackHair
	case hue < BrownHairBelow:
		return entity.BrownHair
	case hue < BlondeHairBelow:
		return entity.BlondeHair
	default:
		return entity.RedHair
	}
}
