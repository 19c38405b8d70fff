package emath

import(
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
	"gonum.org/v1/gonum/floats"
)

// A FloatGrid is a grid of floats, with some operations. It holds the
// pixel planes of an image extension; x varies fastest, as in FITS.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

// NewFloatGridFrom wraps existing row-major values; len(values) must be a multiple of w
func NewFloatGridFrom(w int, values []float64) (FloatGrid, error) {
	if w <= 0 || len(values) % w != 0 {
		return FloatGrid{}, fmt.Errorf("floatgrid: %d values do not fill rows of width %d", len(values), w)
	}
	return FloatGrid{stride: w, values: values}, nil
}

func (g1 *FloatGrid)NewFromThis() FloatGrid  { return NewFloatGrid(g1.Dx(), g1.Dy()) }
func (fg *FloatGrid)Set(x, y int, v float64) { fg.values[fg.stride*y + x] = v }
func (fg *FloatGrid)Get(x, y int) float64    { return fg.values[fg.stride*y + x] }
func (fg *FloatGrid)Add(x, y int, v float64) { fg.values[fg.stride*y + x] += v }
func (fg *FloatGrid)Dx() int                 { return fg.stride }
func (fg *FloatGrid)Values() []float64       { return fg.values } // needed by the FITS writer
func (fg *FloatGrid)Len() int                { return len(fg.values) }

func (fg *FloatGrid)Dy() int {
	if fg.stride == 0 { return 0 }
	return len(fg.values) / fg.stride
}

func (g1 *FloatGrid)Copy() *FloatGrid {
	g2 := FloatGrid{stride: g1.stride, values:make([]float64, len(g1.values))}
	copy(g2.values, g1.values)
	return &g2
}

// Evaluate builds a new grid holding fn at each pixel center; pixel
// centers sit at integer coordinates, 0-indexed.
func (g1 *FloatGrid)Evaluate(fn func(x, y float64) float64) FloatGrid {
	g2 := g1.NewFromThis()
	for y:=0; y<g2.Dy(); y++ {
		for x:=0; x<g2.Dx(); x++ {
			g2.Set(x, y, fn(float64(x), float64(y)))
		}
	}
	return g2
}

// AddGrid adds g2 into g1, pixel by pixel. Both must be the same shape.
func (g1 *FloatGrid)AddGrid(g2 FloatGrid) error {
	if g1.Dx() != g2.Dx() || g1.Dy() != g2.Dy() {
		return fmt.Errorf("floatgrid: cannot add %dx%d into %dx%d", g2.Dx(), g2.Dy(), g1.Dx(), g1.Dy())
	}
	floats.Add(g1.values, g2.values)
	return nil
}

func (fg *FloatGrid)Sum() float64 { return floats.Sum(fg.values) }

// MaxIdx returns the location and value of the brightest pixel (first one, on ties)
func (fg *FloatGrid)MaxIdx() (int, int, float64) {
	if len(fg.values) == 0 { return -1, -1, math.NaN() }
	i := floats.MaxIdx(fg.values)
	return i % fg.stride, i / fg.stride, fg.values[i]
}

// gaussianKernel1D is normalized to unit sum, and truncated at 4 sigma
func gaussianKernel1D(sigma float64) []float64 {
	radius := int(4.0*sigma + 0.5)
	k := make([]float64, 2*radius+1)
	for i:=-radius; i<=radius; i++ {
		k[i+radius] = math.Exp(-0.5 * float64(i*i) / (sigma*sigma))
	}
	floats.Scale(1.0/floats.Sum(k), k)
	return k
}

// GaussianFilter convolves the grid with a Gaussian of the given standard
// deviation (in pixels). The kernel is separable, so we do an X pass then a
// Y pass. Everything outside the grid counts as zero; nothing wraps around.
func (g1 FloatGrid)GaussianFilter(sigma float64) FloatGrid {
	if !(sigma > 0) {
		return *g1.Copy()
	}

	k := gaussianKernel1D(sigma)
	radius := len(k) / 2
	width := g1.Dx()
	height := g1.Dy()

	T  := g1.NewFromThis()
	g2 := g1.NewFromThis()

	//--- X blur, build up in T
	for y:=0; y<height; y++ {
		for x:=0; x<width; x++ {
			t := 0.0
			for i:=-radius; i<=radius; i++ {
				if xx := x+i; xx >= 0 && xx < width {
					t += k[i+radius] * g1.Get(xx, y)
				}
			}
			T.Set(x, y, t)
		}
	}

	//--- Y blur, read from T and generate output
	for x:=0; x<width; x++ {
		for y:=0; y<height; y++ {
			t := 0.0
			for i:=-radius; i<=radius; i++ {
				if yy := y+i; yy >= 0 && yy < height {
					t += k[i+radius] * T.Get(x, yy)
				}
			}
			g2.Set(x, y, t)
		}
	}

	return g2
}

func (fg *FloatGrid)Stats() string {
	min := math.MaxFloat64
	max := -1.0  * min

	for i:=0 ; i<len(fg.values) ; i++ {
		if fg.values[i] > max { max = fg.values[i] }
		if fg.values[i] < min { min = fg.values[i] }
	}
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}, sum %f]", fg.Dx(), fg.Dy(), min, max, fg.Sum())
}

// ToImg saves a simple grayscale, based on the range of values in the grid, and gamma scaling the
// gray to look normal for human vision. Row 0 of the grid is the bottom of the picture, as
// astronomers expect.
func (fg *FloatGrid)ToImg(title, filename string) error {
	min, max := math.MaxFloat64, -math.MaxFloat64
	for i:=0; i<len(fg.values); i++ {
		if fg.values[i] > max { max = fg.values[i] }
		if fg.values[i] < min { min = fg.values[i] }
	}
	span := max - min
	if !(span > 0) { span = 1.0 }

	img := image.NewRGBA64(image.Rectangle{Max:image.Point{fg.Dx(), fg.Dy()}})
	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			lum := fg.Get(x,y)
			gray := GammaExpand_F64 ((lum - min) / span)
			col := color.RGBA64{uint16(gray * 65535.0), uint16(gray * 65535.0), uint16(gray * 65535.0), 0xFFFF}
			img.Set(x, fg.Dy()-1-y, col)
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,1,1)
	dc.DrawString(title, 10, 20)
	return dc.SavePNG(filename)
}
