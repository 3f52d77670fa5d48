package facedetect

import (
	"context"
	"fmt"
	"sort"

	"StyleAdvisor/internal/entity"
	"StyleAdvisor/pkg/imaging"

	pigo "github.com/esimov/pigo/core"
)

type PigoConfig struct {
	MinSize      int     `validate:"gte=20"`
	MaxSize      int     `validate:"gtefield=MinSize"`
	ShiftFactor  float64 `validate:"gt=0,lte=1"`
	ScaleFactor  float64 `validate:"gt=1"`
	IoUThreshold float64 `validate:"gt=0,lte=1"`
	MinQuality   float32 `validate:"gte=0"`
}

func DefaultPigoConfig() PigoConfig {
	return PigoConfig{
		MinSize:      40,
		MaxSize:      2000,
		ShiftFactor:  0.1,
		ScaleFactor:  1.1,
		IoUThreshold: 0.2,
		MinQuality:   5.0,
	}
}

// PigoLocator runs a pico cascade. The unpacked classifier is never
// mutated after construction so it is safe for concurrent use.
type PigoLocator struct {
	classifier *pigo.Pigo
	config     PigoConfig
}

// NewPigoLocator unpacks a binary pico cascade such as "facefinder".
func NewPigoLocator(cascade []byte, config PigoConfig) (locator *PigoLocator, err error) {
	// The header alone is 8 bytes followed by depth and tree count.
	if len(cascade) < 16 {
		return nil, fmt.Errorf("unpack face cascade: %d bytes is too short", len(cascade))
	}

	// Unpack indexes into the packet without bounds checks.
	defer func() {
		if r := recover(); r != nil {
			locator, err = nil, fmt.Errorf("unpack face cascade: corrupt data: %v", r)
		}
	}()

	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("unpack face cascade: %w", err)
	}

	return &PigoLocator{
		classifier: classifier,
		config:     config,
	}, nil
}

func (l *PigoLocator) Locate(ctx context.Context, gray *imaging.Gray) ([]entity.Region, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := pigo.CascadeParams{
		MinSize:     l.config.MinSize,
		MaxSize:     l.config.MaxSize,
		ShiftFactor: l.config.ShiftFactor,
		ScaleFactor: l.config.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: gray.Pix,
			Rows:   gray.Height,
			Cols:   gray.Width,
			Dim:    gray.Width,
		},
	}

	dets := l.classifier.RunCascade(params, 0.0)
	dets = l.classifier.ClusterDetections(dets, l.config.IoUThreshold)

	return detectionsToRegions(dets, l.config.MinQuality), nil
}

// detectionsToRegions keeps detections above minQuality, most confident
// first, and turns the centre/scale form into a box.
func detectionsToRegions(dets []pigo.Detection, minQuality float32) []entity.Region {
	kept := make([]pigo.Detection, 0, len(dets))
	for _, d := range dets {
		if d.Q >= minQuality {
			kept = append(kept, d)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Q > kept[j].Q
	})

	regions := make([]entity.Region, 0, len(kept))
	for _, d := range kept {
		regions = append(regions, entity.Region{
			Left:   d.Col - d.Scale/2,
			Top:    d.Row - d.Scale/2,
			Width:  d.Scale,
			Height: d.Scale,
		})
	}
	return regions
}
