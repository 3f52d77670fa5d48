//go:build gocv

package facedetect

import (
	"context"
	"fmt"
	"sync"

	"StyleAdvisor/internal/entity"
	"StyleAdvisor/pkg/imaging"

	"gocv.io/x/gocv"
)

// CascadeLocator runs an OpenCV Haar cascade. OpenCV classifiers are not
// documented as goroutine safe, so calls are serialized.
type CascadeLocator struct {
	mu         sync.Mutex
	classifier gocv.CascadeClassifier
}

func NewCascadeLocator(modelPath string) (*CascadeLocator, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(modelPath) {
		classifier.Close()
		return nil, fmt.Errorf("failed to load face cascade classifier from %s", modelPath)
	}

	return &CascadeLocator{classifier: classifier}, nil
}

func (l *CascadeLocator) Locate(ctx context.Context, gray *imaging.Gray) ([]entity.Region, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat, err := gocv.NewMatFromBytes(gray.Height, gray.Width, gocv.MatTypeCV8U, gray.Pix)
	if err != nil {
		return nil, fmt.Errorf("wrap grayscale grid: %w", err)
	}
	defer mat.Close()

	l.mu.Lock()
	rects := l.classifier.DetectMultiScale(mat)
	l.mu.Unlock()

	regions := make([]entity.Region, 0, len(rects))
	for _, r := range rects {
		regions = append(regions, entity.RegionFromRect(r))
	}
	return regions, nil
}

func (l *CascadeLocator) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.classifier.Close()
}
