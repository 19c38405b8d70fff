package campaign

import(
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	json "github.com/KevinWang15/go-json5"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/faker"
)

// Verbosity gates the progress lines this package logs
var Verbosity int

/* Example catalog file (JSON5) ...

[
  // bright star near the pointing
  {kind: "star", ra: 180.0, dec: 0.0, flux: 5000},
  {kind: "galaxy", ra: 180.001, dec: 0.002, amplitude: 20, n: 1, re: 2.5, axis_ratio: 0.5, pa: 30},
]

*/

// A Source is something at a fixed sky position. Stars need a Flux or Amplitude,
// galaxies an Amplitude; the shape parameters default as in faker.
type Source struct {
	Kind      string  `json:"kind"`
	RA        float64 `json:"ra"`
	Dec       float64 `json:"dec"`
	Flux      float64 `json:"flux"`
	Amplitude float64 `json:"amplitude"`
	FWHM      float64 `json:"fwhm"`
	N         float64 `json:"n"`
	Re        float64 `json:"re"`
	AxisRatio float64 `json:"axis_ratio"`
	PA        float64 `json:"pa"`
}

type SourceList []Source

func (s Source)String() string {
	return fmt.Sprintf("%s at (%.6f,%.6f)", s.Kind, s.RA, s.Dec)
}

// AddTo puts the source into whichever extension of ad it falls on
func (s Source)AddTo(ad *faker.AstroFaker) error {
	at := faker.Sky(s.RA, s.Dec)
	switch strings.ToLower(s.Kind) {
	case "", "star":
		return ad.AddStar(faker.Star{Amplitude:s.Amplitude, Flux:s.Flux, FWHM:s.FWHM, At:at})
	case "galaxy":
		return ad.AddGalaxy(faker.Galaxy{
			Amplitude: s.Amplitude,
			N:         s.N,
			Re:        s.Re,
			AxisRatio: s.AxisRatio,
			PA:        s.PA,
			At:        at,
		})
	default:
		return fmt.Errorf("source %s: unknown kind '%s'", s, s.Kind)
	}
}

// AddTo adds every source to ad. Sources that land off every extension are
// skipped (and counted); any other failure stops things.
func (sl SourceList)AddTo(ad *faker.AstroFaker) (int, error) {
	skipped := 0
	for _, s := range sl {
		err := s.AddTo(ad)
		var lnf *faker.LocationNotFoundError
		if errors.As(err, &lnf) {
			if Verbosity > 0 {
				log.Printf("skipping %s, not on '%s'\n", s, ad.Filename())
			}
			skipped++
			continue
		} else if err != nil {
			return skipped, err
		}
	}
	return skipped, nil
}

func parseSources(data []byte) (SourceList, error) {
	sl := SourceList{}
	err := json.Unmarshal(data, &sl)
	return sl, err
}

// LoadSources reads a JSON5 (or plain JSON) array of sources
func LoadSources(filename string) (SourceList, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read '%s': %v", filename, err)
	}
	sl, err := parseSources(data)
	if err != nil {
		return nil, fmt.Errorf("parse '%s': %v", filename, err)
	}
	return sl, nil
}
