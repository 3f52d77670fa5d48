package analysis

import "StyleAdvisor/internal/entity"

// AnalysisResponse keeps the field names the upload page reads.
type AnalysisResponse struct {
	SkinTone               string   `json:"Skin Tone"`
	HairColor              string   `json:"Hair Color"`
	FaceShape              string   `json:"Face Shape"`
	RecommendedDressColors []string `json:"Recommended Dress Colors"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ImageUpload describes the multipart part before its bytes are read.
type ImageUpload struct {
	Filename    string `validate:"required,max=255"`
	Size        int64  `validate:"gt=0"`
	ContentType string `validate:"omitempty,max=127"`
}

func NewAnalysisResponse(a *entity.Appearance) AnalysisResponse {
	colors := a.Colors
	if colors == nil {
		colors = []string{}
	}
	return AnalysisResponse{
		SkinTone:               string(a.SkinTone),
		HairColor:              string(a.HairColor),
		FaceShape:              string(a.FaceShape),
		RecommendedDressColors: colors,
	}
}
