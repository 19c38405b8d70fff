package faker

// Some operations only make sense on a whole frame (pointing changes, seeing),
// some only on one extension (adding an object at pixel coords), and some work on
// either, iterating over the extensions of a whole frame.

func (ad *AstroFaker)requireWhole(op string) error {
	if ad.IsSingle() {
		return &MustOperateOnWholeFrameError{Op: op}
	}
	return nil
}

// single returns the one-extension view to operate on: the slice itself, or the
// only extension of a whole frame.
func (ad *AstroFaker)single(op string) (*AstroFaker, error) {
	if ad.IsSingle() {
		return ad, nil
	}
	if ad.d.frame.Len() == 1 {
		return &AstroFaker{d: ad.d, index: 0}, nil
	}
	return nil, &MustOperateOnSingleExtensionError{Op: op, NExt: ad.d.frame.Len()}
}

// each runs fn on the slice, or on each extension of a whole frame in turn,
// stopping at the first error.
func (ad *AstroFaker)each(fn func(s *AstroFaker) error) error {
	if ad.IsSingle() {
		return fn(ad)
	}
	for i := range ad.d.frame.Exts {
		if err := fn(&AstroFaker{d: ad.d, index: i}); err != nil {
			return err
		}
	}
	return nil
}

// relevant picks the extension a per-extension descriptor reads on a whole frame:
// the first one. -1 if there are none.
func (ad *AstroFaker)relevant() int {
	if ad.IsSingle() { return ad.index }
	if ad.d.frame.Len() > 0 { return 0 }
	return -1
}
