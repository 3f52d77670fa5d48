package facedetect

import (
	"context"
	"errors"

	"StyleAdvisor/internal/entity"
	"StyleAdvisor/pkg/imaging"
)

var ErrBackendUnavailable = errors.New("face locator backend not available in this build")

// Locator finds face boxes on a grayscale grid. Implementations are built
// once and shared read-only by all requests.
type Locator interface {
	Locate(ctx context.Context, gray *imaging.Gray) ([]entity.Region, error)
}

// LandmarkExtractor returns the 68 shape points of one face.
type LandmarkExtractor interface {
	Landmarks(ctx context.Context, gray *imaging.Gray, face entity.Region) (entity.Landmarks, error)
}

// Backend names accepted by configuration.
const (
	BackendPigo    = "pigo"
	BackendCascade = "cascade"
	BackendRemote  = "remote"
)
