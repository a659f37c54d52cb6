package logo

import "image"

// Analysis describes the content geometry of a single image: where the
// content sits, how much of the frame it fills, and how much background
// padding surrounds it on each side.
type Analysis struct {
	Width         int
	Height        int
	Box           image.Rectangle // content bounds, exclusive upper bounds
	ContentWidth  int
	ContentHeight int
	ContentPct    float64 // content area as a percentage of the image area

	// Per-side background padding as a percentage of the respective
	// dimension.
	PadLeft   float64
	PadRight  float64
	PadTop    float64
	PadBottom float64

	// NeedsCrop is set when any side's padding exceeds the tuning
	// threshold (15% by default).
	NeedsCrop bool
}

// Analyze measures the content bounding box of img under rule and reports
// per-side padding. ok is false when no content is detected.
func Analyze(img image.Image, rule Rule) (*Analysis, bool) {
	return analyze(img, rule, DefaultTuning())
}

func analyze(img image.Image, rule Rule, t Tuning) (*Analysis, bool) {
	box, ok := findContentBox(img, rule, 0, t)
	if !ok {
		return nil, false
	}

	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	a := &Analysis{
		Width:         w,
		Height:        h,
		Box:           box,
		ContentWidth:  box.Dx(),
		ContentHeight: box.Dy(),
		ContentPct:    float64(box.Dx()*box.Dy()) / float64(w*h) * 100,
		PadLeft:       float64(box.Min.X) / float64(w) * 100,
		PadRight:      float64(w-box.Max.X) / float64(w) * 100,
		PadTop:        float64(box.Min.Y) / float64(h) * 100,
		PadBottom:     float64(h-box.Max.Y) / float64(h) * 100,
	}
	a.NeedsCrop = a.PadLeft > t.NeedsCropPct || a.PadRight > t.NeedsCropPct ||
		a.PadTop > t.NeedsCropPct || a.PadBottom > t.NeedsCropPct
	return a, true
}
