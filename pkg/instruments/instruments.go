package instruments

// Per-instrument behaviour for the Gemini instruments we can fake. The values
// (IAA, gains, pixel scales) are typical of real headers, not authoritative.

import(
	"sort"
	"strings"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/astrodata"
	"github.com/GeminiDRSoftware/AstroFaker/pkg/faker"
)

var registry = map[string]func() faker.Instrument{
	"F2":     func() faker.Instrument { return newF2() },
	"GMOS-N": func() faker.Instrument { return newGMOS("GMOS-N") },
	"GMOS-S": func() faker.Instrument { return newGMOS("GMOS-S") },
	"GNIRS":  func() faker.Instrument { return newGNIRS() },
	"GSAOI":  func() faker.Instrument { return newGSAOI() },
	"NIRI":   func() faker.Instrument { return newNIRI() },
}

func Names() []string {
	names := []string{}
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func Lookup(name string) (faker.Instrument, error) {
	if fn, exists := registry[strings.ToUpper(strings.TrimSpace(name))]; exists {
		return fn(), nil
	}
	return nil, &faker.UnknownInstrumentError{Name: name}
}

// Create makes an empty frame (a PHU, no extensions) for the named instrument
func Create(name string, opts faker.CreateOptions) (*faker.AstroFaker, error) {
	if opts.PHU != nil {
		return FromPHU(opts.PHU, opts)
	}
	inst, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return faker.New(inst, opts), nil
}

// FromPHU starts from an existing PHU, picking the instrument from INSTRUME
func FromPHU(phu *astrodata.Header, opts faker.CreateOptions) (*faker.AstroFaker, error) {
	name, _ := phu.String("INSTRUME")
	inst, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	opts.PHU = phu
	return faker.New(inst, opts), nil
}

// Open reads a FITS file and wraps it in a faker for its instrument
func Open(filename string) (*faker.AstroFaker, error) {
	fr, err := astrodata.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	name, _ := fr.PHU.String("INSTRUME")
	inst, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return faker.Wrap(inst, fr), nil
}

// gemini holds what every instrument has, and the defaults for the interface
type gemini struct {
	name      string
	telescope string
	iaa       float64 // instrument alignment angle, as seen in recent headers
	scale     float64 // arcsec/pixel
	gain      float64 // e-/ADU
	readNoise float64 // e-
}

func newGemini(name string) gemini {
	g := gemini{name: name, telescope: "Gemini-South"}
	switch name {
	case "GMOS-N", "GNIRS", "NIRI": g.telescope = "Gemini-North"
	}
	return g
}

func (g gemini)Name() string                                  { return g.name }
func (g gemini)Telescope() string                             { return g.telescope }
func (g gemini)KeywordFor(concept string) string              { return faker.DefaultKeywords[concept] }
func (g gemini)NominalPixelScale(ad *faker.AstroFaker) float64 { return g.scale }
func (g gemini)Gain(ad *faker.AstroFaker) float64             { return g.gain }
func (g gemini)ReadNoise(ad *faker.AstroFaker) float64        { return g.readNoise }

func (g gemini)AddRequiredPHUKeywords(ad *faker.AstroFaker, mode string) {
	ad.PHU().Set("IAA", g.iaa)
}
