package campaign

import(
	"fmt"
	"log"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/faker"
	"github.com/GeminiDRSoftware/AstroFaker/pkg/instruments"
)

// NewBase builds the frame every dither position is cloned from: default
// extensions for the instrument, the seeing, and the random stream.
func NewBase(c Config) (*faker.AstroFaker, error) {
	ad, err := instruments.Create(c.Instrument, faker.CreateOptions{Mode: c.Mode})
	if err != nil {
		return nil, err
	}
	if err := ad.InitDefaultExtensions(c.Layout); err != nil {
		return nil, err
	}
	if err := ad.SetSeeing(c.Seeing); err != nil {
		return nil, err
	}
	if c.Seed >= 0 {
		ad.Seed(uint64(c.Seed))
	}
	return ad, nil
}

// Sources makes up the sky: random stars and galaxies around base, and whatever
// is in the catalog.
func Sources(base *faker.AstroFaker, c Config) (SourceList, error) {
	sl := SourceList{}
	if c.NStars > 0 {
		fwhm := PerSource(nil)
		if c.FWHM > 0 { fwhm = Constant(c.FWHM) }
		stars, err := MakeStarField(base, StarFieldOptions{
			N:      c.NStars,
			Border: c.Border,
			Radius: c.Radius,
			FWHM:   fwhm,
			Flux:   Constant(c.Flux),
		}, base.Rand())
		if err != nil {
			return nil, fmt.Errorf("star field: %v", err)
		}
		sl = append(sl, stars...)
	}

	if c.NGalaxies > 0 {
		galaxies, err := MakeGalaxyField(base, GalaxyFieldOptions{
			N:         c.NGalaxies,
			Border:    c.Border,
			Radius:    c.Radius,
			Amplitude: Constant(c.GalaxyAmplitude),
		}, base.Rand())
		if err != nil {
			return nil, fmt.Errorf("galaxy field: %v", err)
		}
		sl = append(sl, galaxies...)
	}

	if c.Catalog != "" {
		cat, err := LoadSources(c.Catalog)
		if err != nil {
			return nil, err
		}
		sl = append(sl, cat...)
	}
	return sl, nil
}

// Run does a whole campaign from a config: build the base frame, invent a sky,
// dither over it, and write out whatever was asked for.
func Run(c Config) ([]*faker.AstroFaker, error) {
	if err := c.FinalizeConfig(); err != nil {
		return nil, err
	}
	Verbosity = c.Verbosity

	base, err := NewBase(c)
	if err != nil {
		return nil, err
	}
	if c.Verbosity > 0 {
		log.Printf("Base frame: %s\n", base)
	}

	sky, err := Sources(base, c)
	if err != nil {
		return nil, err
	}
	if c.Verbosity > 0 {
		log.Printf("%d sources on the sky\n", len(sky))
	}

	opts := c.DitherOptions()
	opts.AddObjects = func(ad *faker.AstroFaker) error {
		skipped, err := sky.AddTo(ad)
		if skipped > 0 && c.Verbosity > 0 {
			log.Printf("Dither: frame %s, %d sources missed the detector\n", ad.Filename(), skipped)
		}
		return err
	}
	if c.Write {
		opts.Writer = c.writer()
	}

	frames, err := Dither(base, opts)
	if err != nil {
		return frames, err
	}

	if c.Verbosity > 1 {
		for _, ad := range frames {
			log.Printf("%s\n", FrameStats(ad))
			for i, e := range ad.Frame().Exts {
				log.Printf("  [%d] %s\n", i+1, e.Data.Stats())
			}
			log.Printf("log2 pixel histogram:-\n%v\n", PixelHistogram(ad))
		}
	}

	if c.Plot != "" {
		if err := PlotPointings(frames, c.Plot); err != nil {
			return frames, err
		}
		if c.Verbosity > 0 {
			log.Printf("Pointings plotted to '%s'\n", c.Plot)
		}
	}
	return frames, nil
}

// writer saves the FITS file, and previews of each extension if wanted
func (c Config)writer() func(ad *faker.AstroFaker) error {
	return func(ad *faker.AstroFaker) error {
		filename, err := ad.Write(c.OutputDir)
		if err != nil {
			return err
		}
		if c.Verbosity > 0 {
			log.Printf("Dither: wrote '%s'\n", filename)
		}
		if c.Previewer == nil {
			return nil
		}
		for i:=0; i<ad.Len(); i++ {
			if err := c.Previewer(ad.Frame(), i, filename); err != nil {
				return fmt.Errorf("preview of '%s': %v", filename, err)
			}
		}
		return nil
	}
}
