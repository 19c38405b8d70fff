package campaign

import(
	"fmt"
	"log"
	"math"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/faker"
)

type DitherOptions struct {
	Cycles     int
	Shape      [2]int  // dither positions along (x,y)
	Step       float64 // arcsec between positions
	RMS        float64 // arcsec, of the pointing error on each axis
	Overhead   float64 // seconds between the end of one exposure and the start of the next

	AddObjects func(ad *faker.AstroFaker) error // put the sky in, at the true pointing
	AddNoise   bool                             // Poisson, then read noise
	Writer     func(ad *faker.AstroFaker) error // called on each finished frame

	Seed       *uint64 // reseeds base's random stream, which every frame shares
}

func (o DitherOptions)validate() error {
	if o.Cycles < 1 {
		return faker.GeometryErrorf("dither cycles %d", o.Cycles)
	}
	if o.Shape[0] < 1 || o.Shape[1] < 1 {
		return faker.GeometryErrorf("dither shape %v", o.Shape)
	}
	if !(o.Step >= 0) || math.IsInf(o.Step, 0) {
		return faker.GeometryErrorf("dither step %v", o.Step)
	}
	if !(o.RMS >= 0) || math.IsInf(o.RMS, 0) {
		return faker.GeometryErrorf("dither rms %v", o.RMS)
	}
	return nil
}

// nominal is the offset of position i of n, with the pattern centred on the pointing
func nominal(i, n int, step float64) float64 {
	return (float64(i) - 0.5*float64(n-1)) * step
}

func ditherSuffix(cycles, cycle, ix, iy int) string {
	if cycles > 1 {
		return fmt.Sprintf("_%d%d%d", cycle, ix, iy)
	}
	return fmt.Sprintf("_%d%d", ix, iy)
}

// Dither produces Cycles x Shape[0] x Shape[1] copies of base, as if taken one
// after another on a rectangular pattern of pointings. Objects are added with the
// telescope where it really was (nominal offset plus a random pointing error),
// but the headers end up claiming just the nominal offset. If a frame fails, the
// frames finished before it are returned along with the error.
func Dither(base *faker.AstroFaker, opts DitherOptions) ([]*faker.AstroFaker, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Seed != nil {
		base.Seed(*opts.Seed)
	}

	norm := distuv.Normal{Mu:0, Sigma:1, Src:base.Rand()}
	exptime := base.ExposureTime()
	elapsed := 0.0
	frames := []*faker.AstroFaker{}

	for cycle:=0; cycle<opts.Cycles; cycle++ {
		for iy:=0; iy<opts.Shape[1]; iy++ {
			yoff := nominal(iy, opts.Shape[1], opts.Step)
			for ix:=0; ix<opts.Shape[0]; ix++ {
				xoff := nominal(ix, opts.Shape[0], opts.Step)

				ad := base.Clone()
				if err := ad.TimeOffset(time.Duration(elapsed * float64(time.Second))); err != nil {
					return frames, err
				}
				elapsed += exptime + opts.Overhead

				ad.UpdateFilename(ditherSuffix(opts.Cycles, cycle, ix, iy))
				ad.PHU().Set("ORIGNAME", ad.Filename())

				dx, dy := opts.RMS * norm.Rand(), opts.RMS * norm.Rand()
				if err := ditherOne(ad, xoff, yoff, dx, dy, opts); err != nil {
					return frames, fmt.Errorf("dither frame '%s': %w", ad.Filename(), err)
				}

				if Verbosity > 0 {
					log.Printf("Dither: frame %s at (%.2f,%.2f) err (%.3f,%.3f)\n", ad.Filename(), xoff, yoff, dx, dy)
				}
				frames = append(frames, ad)
			}
		}
	}
	return frames, nil
}

func ditherOne(ad *faker.AstroFaker, xoff, yoff, dx, dy float64, opts DitherOptions) error {
	if err := ad.SkyOffset(xoff+dx, yoff+dy); err != nil {
		return err
	}
	if opts.AddObjects != nil {
		if err := opts.AddObjects(ad); err != nil {
			return err
		}
	}
	if err := ad.SkyOffset(-dx, -dy); err != nil {
		return err
	}

	if opts.AddNoise {
		if err := ad.AddPoissonNoise(1.0); err != nil {
			return err
		}
		if err := ad.AddReadNoise(1.0); err != nil {
			return err
		}
	}

	if opts.Writer != nil {
		return opts.Writer(ad)
	}
	return nil
}

// WriteTo is a Writer that saves frames as FITS into dir
func WriteTo(dir string) func(ad *faker.AstroFaker) error {
	return func(ad *faker.AstroFaker) error {
		filename, err := ad.Write(dir)
		if err == nil && Verbosity > 0 {
			log.Printf("Dither: wrote '%s'\n", filename)
		}
		return err
	}
}
