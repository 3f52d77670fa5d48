package appearance

import "StyleAdvisor/internal/entity"

// Jaw width relative to face height.
const (
	RoundFaceAbove = 0.9
	OvalFaceBelow  = 0.8
)

func FaceShape(landmarks entity.Landmarks) entity.FaceShape {
	jawWidth := landmarks[entity.JawRight].X - landmarks[entity.JawLeft].X
	faceHeight := landmarks[entity.Chin].Y - landmarks[entity.BrowTopLeft].Y

	return ClassifyFaceShape(float64(jawWidth), float64(faceHeight))
}

func ClassifyFaceShape(jawWidth, faceHeight float64) entity.FaceShape {
	switch {
	case jawWidth > faceHeight*RoundFaceAbove:
		return entity.RoundFace
	case jawWidth < faceHeight*OvalFaceBelow:
		return entity.OvalFace
	default:
		return entity.AngularFace
	}
}
