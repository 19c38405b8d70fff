package campaign

import(
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/astrodata"
	"github.com/GeminiDRSoftware/AstroFaker/pkg/faker"
)

/* Example config file ...

instrument: NIRI
seed: 42
layout:
  roisize: 512
cycles: 1
shape: [3, 3]
step: 10
rms: 0.2
nstars: 20
flux: 2000
noise: true
write: true
outputdir: out
preview: png

*/

type Config struct {
	Verbosity  int

	Instrument string
	Mode       string
	Layout     faker.Layout
	Seeing     float64 // arcsec
	Seed       int64   // negative for a different sky every run

	Cycles     int
	Shape      [2]int
	Step       float64 // arcsec
	RMS        float64 // arcsec
	Overhead   float64 // seconds

	NStars     int
	NGalaxies  int
	Border     float64 // pixels
	Radius     float64 // arcsec; if >0, sources go in a disc around the pointing
	Flux       float64 // per star
	FWHM       float64 // arcsec; 0 for the seeing
	GalaxyAmplitude float64
	Catalog    string  // JSON5 file of extra sources

	Noise      bool
	Write      bool
	OutputDir  string
	Preview    string  // "", "png" or "hdr"
	Plot       string  // filename for a plot of the pointings

	// Values we derive in FinalizeConfig
	Previewer  func(fr *astrodata.Frame, i int, filename string) error `yaml:"-"`
}

func NewConfig() Config {
	return Config{
		Instrument:      "NIRI",
		Mode:            "IMAGE",
		Seeing:          faker.DefaultSeeing,
		Seed:            -1,
		Cycles:          1,
		Shape:           [2]int{3, 3},
		Step:            10,
		Overhead:        5,
		NStars:          10,
		Flux:            1000,
		GalaxyAmplitude: 10,
		Noise:           true,
		OutputDir:       ".",
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func LoadConfig(filename string) (Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return NewConfig(), fmt.Errorf("read '%s': %v", filename, err)
	}
	c, err := newConfigFromYaml(b)
	if err != nil {
		return c, fmt.Errorf("parse '%s': %v", filename, err)
	}
	return c, nil
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

func (c Config)DitherOptions() DitherOptions {
	return DitherOptions{
		Cycles:   c.Cycles,
		Shape:    c.Shape,
		Step:     c.Step,
		RMS:      c.RMS,
		Overhead: c.Overhead,
		AddNoise: c.Noise,
	}
}

// FinalizeConfig does sanity checks and other post-processing
func (c *Config)FinalizeConfig() error {
	c.Instrument = strings.ToUpper(strings.TrimSpace(c.Instrument))

	switch strings.ToLower(c.Preview) {
	case "":    c.Previewer = nil
	case "png": c.Previewer = writePNGPreview
	case "hdr": c.Previewer = writeHDRPreview
	default:
		return fmt.Errorf("no Preview format named '%s'", c.Preview)
	}

	if !(c.Seeing > 0) {
		return &faker.InvalidSeeingError{Value: c.Seeing}
	}
	if c.NStars < 0 || c.NGalaxies < 0 {
		return faker.GeometryErrorf("negative source counts (%d stars, %d galaxies)", c.NStars, c.NGalaxies)
	}
	if c.Radius < 0 {
		return faker.GeometryErrorf("source radius %v", c.Radius)
	}
	return c.DitherOptions().validate()
}

func previewFilename(fitsname string, i int, ext string) string {
	root := strings.TrimSuffix(fitsname, filepath.Ext(fitsname))
	return fmt.Sprintf("%s_%d.%s", root, i+1, ext)
}

func writePNGPreview(fr *astrodata.Frame, i int, filename string) error {
	return fr.WritePNG(i, previewFilename(filename, i, "png"))
}

func writeHDRPreview(fr *astrodata.Frame, i int, filename string) error {
	return fr.WriteHDR(i, previewFilename(filename, i, "hdr"))
}
