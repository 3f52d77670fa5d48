package appearance

import (
	"StyleAdvisor/internal/entity"
	"StyleAdvisor/pkg/imaging"
)

// Cut-offs on the mean b channel (blue-yellow axis, 128 is neutral).
const (
	CoolSkinAbove = 140.0
	WarmSkinBelow = 120.0
)

// SkinTone samples the bounding box of the landmarks. A box that falls
// entirely outside the grid yields NeutralSkin.
func SkinTone(grid *imaging.Grid, landmarks entity.Landmarks) entity.SkinTone {
	rect := landmarks.Bounds().Intersect(grid.Bounds())
	if rect.Empty() {
		return entity.NeutralSkin
	}

	return ClassifySkinTone(MeanLab(grid, rect).B)
}

func ClassifySkinTone(meanB float64) entity.SkinTone {
	switch {
	case meanB > CoolSkinAbove:
		return entity.CoolSkin
	case meanB < WarmSkinBelow:
		return entity.WarmSkin
	default:
		return entity.NeutralSkin
	}
}
