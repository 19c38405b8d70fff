package main

import(
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/campaign"
	"github.com/GeminiDRSoftware/AstroFaker/pkg/instruments"
)

var(
	Log *log.Logger

	fConfigFile string
	fVerbosity int
	fInstrument string
	fSeed int64
	fCycles int
	fShape string
	fStep float64
	fRMS float64
	fNStars int
	fOutputDir string
	fWrite bool
	fNoise bool
	fPreview string
	fPlot string
)

func init() {
	flag.StringVar(&fConfigFile, "config", "", "yaml config file (command line args override it)")
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fInstrument, "instrument", "", "instrument to fake: "+strings.Join(instruments.Names(), ", "))
	flag.Int64Var(&fSeed, "seed", -1, "random seed; negative for a different sky every run")
	flag.IntVar(&fCycles, "cycles", 0, "number of times round the dither pattern")
	flag.StringVar(&fShape, "shape", "", "dither pattern, e.g. 3x3")
	flag.Float64Var(&fStep, "step", 0, "arcsec between dither positions")
	flag.Float64Var(&fRMS, "rms", -1, "rms pointing error, in arcsec")
	flag.IntVar(&fNStars, "nstars", -1, "number of random stars")
	flag.StringVar(&fOutputDir, "o", "", "directory for output files")
	flag.BoolVar(&fWrite, "write", true, "write the frames out as FITS")
	flag.BoolVar(&fNoise, "noise", true, "add Poisson and read noise")
	flag.StringVar(&fPreview, "preview", "", "also write each extension as png or hdr")
	flag.StringVar(&fPlot, "plot", "", "filename for a plot of the dither pattern")
	flag.Parse()

	Log = log.New(os.Stdout,"", log.Ldate|log.Ltime)
	log.Printf("Starting\n")
}

func parseShape(s string) ([2]int, error) {
	var nx, ny int
	if _, err := fmt.Sscanf(strings.ToLower(s), "%dx%d", &nx, &ny); err != nil {
		return [2]int{}, fmt.Errorf("shape '%s', want e.g. 3x3: %v", s, err)
	}
	return [2]int{nx, ny}, nil
}

func main() {
	c := campaign.NewConfig()
	if fConfigFile != "" {
		var err error
		if c, err = campaign.LoadConfig(fConfigFile); err != nil {
			Log.Fatal(err)
		}
	}

	// Override the config file with command line args, if relevant
	if fInstrument != "" { c.Instrument = fInstrument }
	if fSeed >= 0 { c.Seed = fSeed }
	if fCycles > 0 { c.Cycles = fCycles }
	if fStep > 0 { c.Step = fStep }
	if fRMS >= 0 { c.RMS = fRMS }
	if fNStars >= 0 { c.NStars = fNStars }
	if fOutputDir != "" { c.OutputDir = fOutputDir }
	if fPreview != "" { c.Preview = fPreview }
	if fPlot != "" { c.Plot = fPlot }
	if fVerbosity > 0 { c.Verbosity = fVerbosity }
	if fShape != "" {
		shape, err := parseShape(fShape)
		if err != nil {
			Log.Fatal(err)
		}
		c.Shape = shape
	}

	// Just set the bool vars
	c.Write = fWrite
	c.Noise = fNoise

	if c.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", c.AsYaml())
	}

	frames, err := campaign.Run(c)
	if err != nil {
		log.Fatalf("Run failed after %d frames, err: %v\n", len(frames), err)
	}
	log.Printf("%d frames of %s faked\n", len(frames), c.Instrument)
}
