package facedetect

import (
	"context"
	"encoding/binary"
	"image"
	"math"
	"testing"

	"StyleAdvisor/internal/entity"
	"StyleAdvisor/pkg/imaging"

	pigo "github.com/esimov/pigo/core"
)

func TestDetectionsToRegions(t *testing.T) {
	dets := []pigo.Detection{
		{Row: 100, Col: 100, Scale: 60, Q: 7.5},
		{Row: 50, Col: 200, Scale: 40, Q: 2.0},
		{Row: 300, Col: 250, Scale: 80, Q: 12.0},
	}

	got := detectionsToRegions(dets, 5.0)
	want := []entity.Region{
		{Left: 210, Top: 260, Width: 80, Height: 80},
		{Left: 70, Top: 70, Width: 60, Height: 60},
	}

	if len(got) != len(want) {
		t.Fatalf("Expected %d regions, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("region %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestDetectionsToRegionsEmpty(t *testing.T) {
	got := detectionsToRegions(nil, 5.0)
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", got)
	}
}

func TestNewPigoLocatorRejectsBadCascade(t *testing.T) {
	if _, err := NewPigoLocator([]byte{0x01, 0x02}, DefaultPigoConfig()); err == nil {
		t.Error("Expected an error for a truncated cascade")
	}
}

// brightCenterCascade packs a one-tree, depth-one pico cascade. Its single
// node compares the window centre with the pixel half a window above it
// and fires only when the centre is strictly brighter.
func brightCenterCascade() []byte {
	// 8 header bytes Unpack skips, then tree depth and tree count.
	packet := make([]byte, 8)
	packet = binary.LittleEndian.AppendUint32(packet, 1)
	packet = binary.LittleEndian.AppendUint32(packet, 1)

	// row1, col1, row2, col2 offsets in 1/256 of the window size
	packet = append(packet, 0, 0, byte(0x80), 0)

	// leaf 0: centre > above; leaf 1: centre <= above
	packet = binary.LittleEndian.AppendUint32(packet, math.Float32bits(1))
	packet = binary.LittleEndian.AppendUint32(packet, math.Float32bits(-1))

	// threshold
	packet = binary.LittleEndian.AppendUint32(packet, math.Float32bits(0))
	return packet
}

func grayWithSquare(width, height int, square image.Rectangle) *imaging.Gray {
	gray := &imaging.Gray{Width: width, Height: height, Pix: make([]uint8, width*height)}
	for y := square.Min.Y; y < square.Max.Y; y++ {
		for x := square.Min.X; x < square.Max.X; x++ {
			gray.Pix[y*width+x] = 255
		}
	}
	return gray
}

func testPigoConfig() PigoConfig {
	return PigoConfig{
		MinSize:      20,
		MaxSize:      60,
		ShiftFactor:  0.1,
		ScaleFactor:  1.1,
		IoUThreshold: 0.2,
		MinQuality:   0,
	}
}

func TestPigoLocatorBlankGrid(t *testing.T) {
	locator, err := NewPigoLocator(brightCenterCascade(), testPigoConfig())
	if err != nil {
		t.Fatalf("NewPigoLocator failed: %v", err)
	}

	regions, err := locator.Locate(context.Background(), grayWithSquare(160, 120, image.Rectangle{}))
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if len(regions) != 0 {
		t.Errorf("Expected no regions on a blank grid, got %v", regions)
	}
}

func TestPigoLocatorFindsBrightSquare(t *testing.T) {
	locator, err := NewPigoLocator(brightCenterCascade(), testPigoConfig())
	if err != nil {
		t.Fatalf("NewPigoLocator failed: %v", err)
	}

	// Wider than tall and off centre, so swapped rows and columns would
	// put the detections somewhere else.
	square := image.Rect(90, 30, 130, 70)
	regions, err := locator.Locate(context.Background(), grayWithSquare(160, 120, square))
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if len(regions) == 0 {
		t.Fatal("Expected at least one region")
	}

	best := regions[0]
	centre := image.Pt(best.Left+best.Width/2, best.Top+best.Height/2)
	if !centre.In(square) {
		t.Errorf("Expected the first region to be centred on the square %v, got %+v", square, best)
	}
	for _, r := range regions {
		if r.Width <= 0 || r.Width != r.Height {
			t.Errorf("Expected square regions, got %+v", r)
		}
	}
}

func TestPigoLocatorQualityFilter(t *testing.T) {
	cfg := testPigoConfig()
	cfg.MinQuality = 1e6

	locator, err := NewPigoLocator(brightCenterCascade(), cfg)
	if err != nil {
		t.Fatalf("NewPigoLocator failed: %v", err)
	}

	regions, err := locator.Locate(context.Background(), grayWithSquare(160, 120, image.Rect(90, 30, 130, 70)))
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if len(regions) != 0 {
		t.Errorf("Expected every detection below the quality floor to be dropped, got %v", regions)
	}
}

func TestPigoLocatorCancelledContext(t *testing.T) {
	locator, err := NewPigoLocator(brightCenterCascade(), testPigoConfig())
	if err != nil {
		t.Fatalf("NewPigoLocator failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := locator.Locate(ctx, grayWithSquare(40, 40, image.Rectangle{})); err == nil {
		t.Error("Expected an error for a cancelled context")
	}
}
