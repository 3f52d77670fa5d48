//go:build !gocv

package facedetect

import (
	"context"

	"StyleAdvisor/internal/entity"
	"StyleAdvisor/pkg/imaging"
)

// CascadeLocator needs OpenCV; build with -tags gocv to enable it.
type CascadeLocator struct{}

func NewCascadeLocator(modelPath string) (*CascadeLocator, error) {
	return nil, ErrBackendUnavailable
}

func (l *CascadeLocator) Locate(ctx context.Context, gray *imaging.Gray) ([]entity.Region, error) {
	return nil, ErrBackendUnavailable
}

func (l *CascadeLocator) Close() {}
