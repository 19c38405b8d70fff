package astrodata

import(
	"path/filepath"
	"strings"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/emath"
)

// An Extension is one image plane plus its header. Mask and Variance are optional.
type Extension struct {
	Header   *Header
	Data     emath.FloatGrid
	Mask     []uint16
	Variance *emath.FloatGrid
}

func (e *Extension)Shape() (int, int) { return e.Data.Dx(), e.Data.Dy() }

func (e *Extension)Clone() *Extension {
	e2 := Extension{
		Header: e.Header.Clone(),
		Data:   *e.Data.Copy(),
	}
	if e.Mask != nil {
		e2.Mask = append([]uint16{}, e.Mask...)
	}
	if e.Variance != nil {
		e2.Variance = e.Variance.Copy()
	}
	return &e2
}

// A Frame is a multi-extension image: a primary header and an ordered list of
// extensions.
type Frame struct {
	PHU          *Header
	Exts         []*Extension
	Filename     string
	OrigFilename string
}

func NewFrame(phu *Header, filename string) *Frame {
	if phu == nil { phu = NewHeader() }
	return &Frame{
		PHU:          phu,
		Filename:     filename,
		OrigFilename: filename,
	}
}

// Append adds a new extension holding the grid, with an empty header
func (f *Frame)Append(g emath.FloatGrid) *Extension {
	e := Extension{Header:NewHeader(), Data:g}
	f.Exts = append(f.Exts, &e)
	return &e
}

func (f *Frame)Len() int                { return len(f.Exts) }
func (f *Frame)Ext(i int) *Extension    { return f.Exts[i] }
func (f *Frame)Reset()                  { f.Exts = nil }

func (f *Frame)Clone() *Frame {
	f2 := Frame{
		PHU:          f.PHU.Clone(),
		Filename:     f.Filename,
		OrigFilename: f.OrigFilename,
	}
	for _, e := range f.Exts {
		f2.Exts = append(f2.Exts, e.Clone())
	}
	return &f2
}

// UpdateFilename sets the filename to the original filename's root with the
// suffix appended, keeping the original extension: N20010101S0001.fits with
// suffix "_01" gives N20010101S0001_01.fits. Repeated calls do not pile up
// suffixes.
func (f *Frame)UpdateFilename(suffix string) {
	base := f.OrigFilename
	if base == "" { base = f.Filename }
	if base == "" { base = "astrofaker.fits" }

	dir, file := filepath.Split(base)
	ext := filepath.Ext(file)
	root := strings.TrimSuffix(file, ext)
	f.Filename = dir + root + suffix + ext
}
