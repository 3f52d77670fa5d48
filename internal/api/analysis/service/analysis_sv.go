package analysisService

import (
	"StyleAdvisor/internal/api/analysis"
	"StyleAdvisor/internal/entity"
	"StyleAdvisor/pkg/appearance"
	contextPkg "StyleAdvisor/pkg/context"
	"StyleAdvisor/pkg/imaging"
	"StyleAdvisor/pkg/log"
	"context"
	"errors"
	"fmt"
)

// Analyze runs the whole pipeline for one encoded photo. Only the first
// located face is classified.
func (s *analysisService) Analyze(ctx context.Context, image []byte) (*entity.Appearance, error) {
	requestLog := s.log.WithField(log.RequestIDKey, contextPkg.GetRequestID(ctx))

	grid, format, err := imaging.Decode(image, s.maxPixels)
	if errors.Is(err, imaging.ErrTooManyPixels) {
		requestLog.WithField("error", err.Error()).Warn("Rejected oversized upload")
		return nil, fmt.Errorf("%w: %v", analysis.ErrImageTooLarge, err)
	}
	if err != nil {
		requestLog.WithField("error", err.Error()).Warn("Failed to decode upload")
		return nil, fmt.Errorf("%w: %v", analysis.ErrMalformedImage, err)
	}

	requestLog.WithFields(log.Fields{
		"format": format,
		"width":  grid.Width,
		"height": grid.Height,
	}).Debug("Decoded upload")

	gray := grid.Grayscale()

	faces, err := s.locator.Locate(ctx, gray)
	if err != nil {
		return nil, collaboratorError("locate faces", err)
	}

	if len(faces) == 0 {
		return nil, analysis.ErrNoFaceDetected
	}

	face := faces[0]
	if len(faces) > 1 {
		requestLog.WithField("faces", len(faces)).Debug("Several faces located, using the first")
	}

	landmarks, err := s.extractor.Landmarks(ctx, gray, face)
	if err != nil {
		return nil, collaboratorError("extract landmarks", err)
	}

	result := appearance.Classify(grid, face, landmarks)

	requestLog.WithFields(log.Fields{
		"skin_tone":  result.SkinTone,
		"hair_color": result.HairColor,
		"face_shape": result.FaceShape,
	}).Info("Appearance classified")

	return &result, nil
}

// collaboratorError keeps context errors intact so the handler can answer
// with a timeout; everything else is a failed dependency.
func collaboratorError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", analysis.ErrLandmarkService, op, err)
}
