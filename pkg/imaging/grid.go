package imaging

import "image"

// Grid is a dense 8-bit pixel grid with interleaved channels in BGR order.
type Grid struct {
	Width  int
	Height int
	Pix    []uint8
}

func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.Width, g.Height)
}

// BGR returns the channels of the pixel at (x, y).
func (g *Grid) BGR(x, y int) (b, gr, r uint8) {
	i := (y*g.Width + x) * 3
	return g.Pix[i], g.Pix[i+1], g.Pix[i+2]
}

func (g *Grid) SetBGR(x, y int, b, gr, r uint8) {
	i := (y*g.Width + x) * 3
	g.Pix[i], g.Pix[i+1], g.Pix[i+2] = b, gr, r
}

// Fill paints rect (clipped to the grid) with a single color.
func (g *Grid) Fill(rect image.Rectangle, b, gr, r uint8) {
	rect = rect.Intersect(g.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			g.SetBGR(x, y, b, gr, r)
		}
	}
}

// Gray is a single channel luminance grid laid out row by row.
type Gray struct {
	Width  int
	Height int
	Pix    []uint8
}

// Grayscale converts with the ITU-R BT.601 weights used by OpenCV's BGR2GRAY.
func (g *Grid) Grayscale() *Gray {
	gray := &Gray{
		Width:  g.Width,
		Height: g.Height,
		Pix:    make([]uint8, g.Width*g.Height),
	}
	for i := range gray.Pix {
		b := float64(g.Pix[i*3])
		gr := float64(g.Pix[i*3+1])
		r := float64(g.Pix[i*3+2])
		gray.Pix[i] = uint8(0.299*r + 0.587*gr + 0.114*b + 0.5)
	}
	return gray
}
