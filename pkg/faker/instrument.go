package faker

import "github.com/GeminiDRSoftware/AstroFaker/pkg/astrodata"

// Concepts that KeywordFor knows how to spell
const(
	DataSection       = "data_section"
	DetectorSection   = "detector_section"
	ArraySection      = "array_section"
	OverscanSection   = "overscan_section"
	TelescopeXOffset  = "telescope_x_offset"
	TelescopeYOffset  = "telescope_y_offset"
	ExposureTime      = "exposure_time"
)

// DefaultKeywords is the usual spelling of each concept; instruments that differ
// override KeywordFor.
var DefaultKeywords = map[string]string{
	DataSection:      "DATASEC",
	DetectorSection:  "DETSEC",
	ArraySection:     "ARRAYSEC",
	OverscanSection:  "BIASSEC",
	TelescopeXOffset: "XOFFSET",
	TelescopeYOffset: "YOFFSET",
	ExposureTime:     "EXPTIME",
}

// Layout picks between an instrument's default detector configurations. Fields
// an instrument does not use are ignored; zero means "the default".
type Layout struct {
	FRatio  int // NIRI camera
	ROISize int // NIRI
	XBin    int // GMOS
	YBin    int // GMOS
}

// An Instrument supplies everything that differs between instruments: header
// spelling, required PHU keywords, default detector layout and detector
// properties.
type Instrument interface {
	Name() string
	Telescope() string
	KeywordFor(concept string) string

	// Called once when a frame is created from scratch
	AddRequiredPHUKeywords(ad *AstroFaker, mode string)

	// Called on a whole frame whose extensions have just been removed
	InitDefaultExtensions(ad *AstroFaker, layout Layout) error

	// Arcsec/pixel before any extension carries a CD matrix; 0 if unknown
	NominalPixelScale(ad *AstroFaker) float64

	// ad is a single-extension slice for these
	Gain(ad *AstroFaker) float64
	ReadNoise(ad *AstroFaker) float64
}

// An ExtensionDecorator gets a look at each extension as it is added.
// PrepareExtension may fill in defaults on the options before anything is created;
// FinishExtension runs once the extension's header is complete.
type ExtensionDecorator interface {
	PrepareExtension(ad *AstroFaker, opts *ExtensionOptions)
	FinishExtension(ad *AstroFaker, ext *astrodata.Extension)
}
