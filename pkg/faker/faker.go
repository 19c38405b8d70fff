package faker

import(
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/astrodata"
)

const(
	DefaultSeeing   = 0.8 // arcsec FWHM
	DefaultFilename = "N20010101S0001.fits"
	DefaultDateObs  = "2001-01-01T00:00:00"
	DefaultExptime  = 10.0

	// How DATE-OBS is written; reading also accepts it without the fraction
	DateObsLayout   = "2006-01-02T15:04:05.999999"
)

// Descriptor names, for Override
const(
	DescPixelScale     = "pixel_scale"
	DescGain           = "gain"
	DescReadNoise      = "read_noise"
	DescExposureTime   = "exposure_time"
	DescRA             = "ra"
	DescDec            = "dec"
	DescInstrument     = "instrument"
)

// fakeData is everything that belongs to the frame as a whole, and so is shared
// between the frame and any slices of it.
type fakeData struct {
	frame     *astrodata.Frame
	inst      Instrument
	seeing    float64
	overrides map[string]interface{}
	rng       *rand.Rand
}

// An AstroFaker wraps a frame (or a view of one extension of it, a "slice"),
// and knows how to fake up headers and pixels for it.
type AstroFaker struct {
	d     *fakeData
	index int // -1 for the whole frame
}

type CreateOptions struct {
	Mode          string                 // observing mode, e.g. IMAGE; instruments check for substrings
	ExtraKeywords map[string]interface{} // applied to the PHU last
	Filename      string
	PHU           *astrodata.Header      // start from this PHU instead of from scratch
}

// New builds a frame with no extensions. From scratch, the PHU gets a pointing at
// (180,0), PA 0 and zeroed offsets, plus whatever the instrument needs.
func New(inst Instrument, opts CreateOptions) *AstroFaker {
	if opts.Filename == "" { opts.Filename = DefaultFilename }
	if opts.Mode == "" { opts.Mode = "IMAGE" }

	fromScratch := opts.PHU == nil
	phu := opts.PHU
	if fromScratch {
		phu = astrodata.NewHeader()
		phu.Set("INSTRUME", inst.Name())
		phu.Set("TELESCOP", inst.Telescope())
		phu.Set("OBSERVAT", inst.Telescope())
		for _, k := range []string{"RA", "DEC", "PA", "RAOFFSET", "DECOFFSE", "XOFFSET", "YOFFSET", "POFFSET", "QOFFSET"} {
			phu.Set(k, 0.0)
		}
		phu.Set("RA", 180.0)
		phu.Set("DATE-OBS", DefaultDateObs)
	}

	ad := &AstroFaker{
		d: &fakeData{
			frame:     astrodata.NewFrame(phu, opts.Filename),
			inst:      inst,
			seeing:    DefaultSeeing,
			overrides: map[string]interface{}{},
			rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		},
		index: -1,
	}
	phu.Set("ORIGNAME", opts.Filename)

	if fromScratch {
		phu.Set(ad.KeywordFor(ExposureTime), DefaultExptime)
		inst.AddRequiredPHUKeywords(ad, opts.Mode)
	}

	phu.Update(opts.ExtraKeywords)
	return ad
}

// Wrap puts a faker around an existing frame, e.g. one read from disk
func Wrap(inst Instrument, fr *astrodata.Frame) *AstroFaker {
	return &AstroFaker{
		d: &fakeData{
			frame:     fr,
			inst:      inst,
			seeing:    DefaultSeeing,
			overrides: map[string]interface{}{},
			rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		},
		index: -1,
	}
}

func (ad *AstroFaker)Frame() *astrodata.Frame    { return ad.d.frame }
func (ad *AstroFaker)PHU() *astrodata.Header     { return ad.d.frame.PHU }
func (ad *AstroFaker)Instrument() Instrument     { return ad.d.inst }
func (ad *AstroFaker)Filename() string           { return ad.d.frame.Filename }
func (ad *AstroFaker)SetFilename(f string)       { ad.d.frame.Filename = f }
func (ad *AstroFaker)UpdateFilename(suffix string) { ad.d.frame.UpdateFilename(suffix) }

// IsSingle is true for slices
func (ad *AstroFaker)IsSingle() bool { return ad.index >= 0 }

// Index is the extension a slice looks at, or -1 for a whole frame
func (ad *AstroFaker)Index() int { return ad.index }

func (ad *AstroFaker)Len() int {
	if ad.IsSingle() { return 1 }
	return ad.d.frame.Len()
}

// Slice returns a view of extension i; changes made through it show up in the frame
func (ad *AstroFaker)Slice(i int) (*AstroFaker, error) {
	if err := ad.requireWhole("Slice"); err != nil {
		return nil, err
	}
	if i < 0 || i >= ad.Len() {
		return nil, fmt.Errorf("Slice: no extension %d in a frame of %d", i, ad.Len())
	}
	return &AstroFaker{d: ad.d, index: i}, nil
}

// Ext is the extension a slice looks at; nil on a whole frame
func (ad *AstroFaker)Ext() *astrodata.Extension {
	if !ad.IsSingle() { return nil }
	return ad.d.frame.Ext(ad.index)
}

// Clone deep-copies the frame. The random stream is not copied: the clone draws
// from the same one, so a seeded sequence of clones stays reproducible.
func (ad *AstroFaker)Clone() *AstroFaker {
	d := *ad.d
	d.frame = ad.d.frame.Clone()
	d.overrides = make(map[string]interface{}, len(ad.d.overrides))
	for k, v := range ad.d.overrides {
		d.overrides[k] = v
	}
	return &AstroFaker{d: &d, index: ad.index}
}

// SetRand replaces the random stream used by every draw on this frame and its slices
func (ad *AstroFaker)SetRand(rng *rand.Rand) { ad.d.rng = rng }
func (ad *AstroFaker)Rand() *rand.Rand        { return ad.d.rng }

// Seed is SetRand with a fresh PCG stream
func (ad *AstroFaker)Seed(seed uint64) { ad.SetRand(rand.New(rand.NewPCG(seed, seed))) }

func (ad *AstroFaker)Seeing() float64 { return ad.d.seeing }

func (ad *AstroFaker)SetSeeing(v float64) error {
	if err := ad.requireWhole("SetSeeing"); err != nil {
		return err
	}
	if !(v > 0) || math.IsInf(v, 1) {
		return &InvalidSeeingError{Value: v}
	}
	ad.d.seeing = v
	return nil
}

// Write saves the frame as FITS into dir, under its own filename, replacing any
// file already there.
func (ad *AstroFaker)Write(dir string) (string, error) {
	if err := ad.requireWhole("Write"); err != nil {
		return "", err
	}
	filename := ad.Filename()
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("mkdir '%s': %v", dir, err)
		}
		filename = filepath.Join(dir, filepath.Base(filename))
	}
	return filename, ad.d.frame.WriteFile(filename)
}

func (ad *AstroFaker)String() string {
	str := fmt.Sprintf("AstroFaker{%s, '%s', %d ext", ad.InstrumentName(), ad.Filename(), ad.d.frame.Len())
	if ad.IsSingle() {
		str += fmt.Sprintf(", slice %d", ad.index)
	}
	return str + "}"
}

// isADU reports whether an extension's pixels are in ADU, which they are unless
// BUNIT says otherwise.
func isADU(h *astrodata.Header) bool {
	bunit, ok := h.String("BUNIT")
	return !ok || strings.ToUpper(strings.TrimSpace(bunit)) == "ADU"
}

func parseDateObs(s string) (time.Time, error) {
	for _, layout := range []string{DateObsLayout, "2006-01-02"} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("can't parse DATE-OBS '%s'", s)
}
