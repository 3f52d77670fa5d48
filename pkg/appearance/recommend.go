package appearance

import (
	"StyleAdvisor/internal/entity"
	"StyleAdvisor/pkg/imaging"
)

var dressColors = map[string][]string{
	string(entity.WarmSkin):    {"earthy tones", "olive green", "warm reds"},
	string(entity.CoolSkin):    {"cool blues", "emerald green", "purple"},
	string(entity.NeutralSkin): {"most colors", "soft pastels", "deep jewel tones"},
	string(entity.BlackHair):   {"royal blue", "emerald green"},
	string(entity.BrownHair):   {"warm neutrals", "earthy tones"},
	string(entity.BlondeHair):  {"pastel shades", "soft blue"},
	string(entity.RedHair):     {"forest green", "warm brown"},
	string(entity.RoundFace):   {"darker colors", "vertical patterns"},
	string(entity.AngularFace): {"softer colors", "pastels"},
	string(entity.OvalFace):    {"most colors suit well"},
}

// ColorsFor returns a copy of the table entry for label, or nil for a label
// the table does not know.
func ColorsFor(label string) []string {
	colors := dressColors[label]
	if colors == nil {
		return nil
	}
	return append([]string(nil), colors...)
}

// Recommend unions the entries of all labels. Duplicates are dropped by
// exact match; the order of the result carries no meaning.
func Recommend(labels ...string) []string {
	seen := make(map[string]struct{})
	colors := make([]string, 0)

	for _, label := range labels {
		for _, color := range dressColors[label] {
			if _, ok := seen[color]; ok {
				continue
			}
			seen[color] = struct{}{}
			colors = append(colors, color)
		}
	}

	return colors
}

// Classify runs the three classifiers on one face and looks up its colors.
func Classify(grid *imaging.Grid, face entity.Region, landmarks entity.Landmarks) entity.Appearance {
	skin := SkinTone(grid, landmarks)
	hair := HairColor(grid, face)
	shape := FaceShape(landmarks)

	return entity.Appearance{
		SkinTone:  skin,
		HairColor: hair,
		FaceShape: shape,
		Colors:    Recommend(string(skin), string(hair), string(shape)),
	}
}
