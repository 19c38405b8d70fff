package campaign

import(
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	_ "gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/faker"
)

// Pointings are the (RAOFFSET, DECOFFSE) each frame's headers claim, in order
func Pointings(frames []*faker.AstroFaker) plotter.XYs {
	pts := make(plotter.XYs, len(frames))
	for i, ad := range frames {
		pts[i].X = ad.PHU().FloatOr("RAOFFSET", 0)
		pts[i].Y = ad.PHU().FloatOr("DECOFFSE", 0)
	}
	return pts
}

// PlotPointings draws the dither pattern, in the order the frames were taken,
// and saves it (the format follows the filename's extension).
func PlotPointings(frames []*faker.AstroFaker, filename string) error {
	if len(frames) == 0 {
		return fmt.Errorf("PlotPointings: no frames")
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Dither pattern, %d frames", len(frames))
	p.Title.TextStyle.Font.Typeface = "Liberation"
	p.Title.TextStyle.Font.Size = vg.Points(12)
	p.X.Label.Text = "RA offset (arcsec)"
	p.Y.Label.Text = "Dec offset (arcsec)"
	p.Add(plotter.NewGrid())

	pts := Pointings(frames)
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R:128, G:128, B:128, A:255}
	line.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.Color = color.RGBA{R:200, A:255}
	scatter.Radius = vg.Points(3)

	p.Add(line, scatter)

	if err := p.Save(4*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("save plot '%s': %v", filename, err)
	}
	return nil
}
