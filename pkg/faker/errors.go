package faker

import "fmt"

// UnderspecifiedSourceError is returned when a source has nothing to set its brightness
type UnderspecifiedSourceError struct {
	Kind string
	Need string
}

func (e *UnderspecifiedSourceError)Error() string {
	return fmt.Sprintf("%s: need to specify %s", e.Kind, e.Need)
}

// LocationNotFoundError is returned when a sky position lands on none of the extensions
type LocationNotFoundError struct {
	RA, Dec float64
}

func (e *LocationNotFoundError)Error() string {
	return fmt.Sprintf("location (%.6f,%.6f) not on any extension", e.RA, e.Dec)
}

type MustOperateOnSingleExtensionError struct {
	Op   string
	NExt int
}

func (e *MustOperateOnSingleExtensionError)Error() string {
	return fmt.Sprintf("can only run %s on a single extension, not a frame with %d", e.Op, e.NExt)
}

type MustOperateOnWholeFrameError struct {
	Op string
}

func (e *MustOperateOnWholeFrameError)Error() string {
	return fmt.Sprintf("can only run %s on a whole frame, not a slice", e.Op)
}

type InvalidSeeingError struct {
	Value float64
}

func (e *InvalidSeeingError)Error() string {
	return fmt.Sprintf("seeing must be positive, got %v", e.Value)
}

type UnknownInstrumentError struct {
	Name string
}

func (e *UnknownInstrumentError)Error() string {
	return fmt.Sprintf("unknown instrument '%s'", e.Name)
}

// InvalidGeometryError covers shapes, binnings, f/ratios and dither patterns that make no sense
type InvalidGeometryError struct {
	Reason string
}

func (e *InvalidGeometryError)Error() string { return "invalid geometry: " + e.Reason }

func geometryErrorf(format string, args ...interface{}) error {
	return &InvalidGeometryError{Reason: fmt.Sprintf(format, args...)}
}

// GeometryErrorf is for instrument and campaign code that validates its own layouts
func GeometryErrorf(format string, args ...interface{}) error { return geometryErrorf(format, args...) }
