package campaign

import(
	"fmt"
	"math"
	"sort"

	"github.com/skypies/util/histogram"
	"gonum.org/v1/gonum/stat"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/faker"
)

// Buckets per factor of two in the pixel histogram
const bucketsPerOctave = 8

// PixelHistogram bins the pixels of every extension by log2 of their value.
// Pixels below one count go in the first bucket.
func PixelHistogram(ad *faker.AstroFaker) histogram.Histogram {
	h := histogram.Histogram{NumBuckets:256, ValMin:0, ValMax:256}
	for _, e := range ad.Frame().Exts {
		for _, v := range e.Data.Values() {
			h.Add(histogram.ScalarVal(int(math.Log2(math.Max(v, 1)) * bucketsPerOctave)))
		}
	}
	return h
}

// FrameStats is a one-line summary of the pixels in a frame
func FrameStats(ad *faker.AstroFaker) string {
	values := []float64{}
	for _, e := range ad.Frame().Exts {
		values = append(values, e.Data.Values()...)
	}
	if len(values) == 0 {
		return fmt.Sprintf("%s: no pixels", ad.Filename())
	}
	mean, std := stat.MeanStdDev(values, nil)
	sort.Float64s(values)
	median := stat.Quantile(0.5, stat.Empirical, values, nil)
	return fmt.Sprintf("%s: n=%d mean=%.3f median=%.3f std=%.3f max=%.3f", ad.Filename(), len(values),
		mean, median, std, values[len(values)-1])
}
