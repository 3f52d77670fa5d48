package entity

import "image"

// LandmarkCount is the number of points produced by the 68-point shape predictor.
const LandmarkCount = 68

// Landmark indices used by the classifiers.
const (
	JawLeft     = 0
	Chin        = 8
	JawRight    = 16
	BrowTopLeft = 19
)

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Region is a face bounding box in pixel coordinates.
type Region struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func RegionFromRect(rect image.Rectangle) Region {
	return Region{
		Left:   rect.Min.X,
		Top:    rect.Min.Y,
		Width:  rect.Dx(),
		Height: rect.Dy(),
	}
}

// Landmarks is index-significant: callers must never reorder it.
type Landmarks [LandmarkCount]Point

// Bounds returns the smallest rectangle containing every landmark, with the
// maximum coordinates included.
func (l Landmarks) Bounds() image.Rectangle {
	minX, minY := l[0].X, l[0].Y
	maxX, maxY := l[0].X, l[0].Y
	for _, p := range l[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

type SkinTone string

const (
	CoolSkin    SkinTone = "cool_skin"
	WarmSkin    SkinTone = "warm_skin"
	NeutralSkin SkinTone = "neutral_skin"
)

type HairColor string

const (
	BlackHair  HairColor = "black_hair"
	BrownHair  HairColor = "brown_hair"
	BlondeHair HairColor = "blonde_hair"
	RedHair    HairColor = "red_hair"
)

type FaceShape string

const (
	RoundFace   FaceShape = "round_face"
	OvalFace    FaceShape = "oval_face"
	AngularFace FaceShape = "angular_face"
)

// Appearance is the outcome of running the three classifiers on one face.
type Appearance struct {
	SkinTone  SkinTone
	HairColor HairColor
	FaceShape FaceShape
	Colors    []string
}
