package analysisService

import (
	"StyleAdvisor/internal/entity"
	"StyleAdvisor/pkg/facedetect"
	"context"

	"github.com/sirupsen/logrus"
)

type IAnalysisService interface {
	Analyze(ctx context.Context, image []byte) (*entity.Appearance, error)
}

type analysisService struct {
	log       *logrus.Logger
	locator   facedetect.Locator
	extractor facedetect.LandmarkExtractor
	maxPixels int
}

// NewAnalysisService wires the shared face collaborators. maxPixels caps the
// decoded size of one image; zero selects imaging.DefaultMaxPixels.
func NewAnalysisService(
	log *logrus.Logger,
	locator facedetect.Locator,
	extractor facedetect.LandmarkExtractor,
	maxPixels int,
) IAnalysisService {
	return &analysisService{
		log:       log,
		locator:   locator,
		extractor: extractor,
		maxPixels: maxPixels,
	}
}
