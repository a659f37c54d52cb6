package logo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"
	"golang.org/x/image/webp"
)

// ErrNoContent is returned when no foreground pixels survive classification,
// even after the dark-rule fallback. It is a null result rather than a
// failure; callers pick a pass-through or skip policy.
var ErrNoContent = errors.New("no content detected")

// Options configures a Processor.
type Options struct {
	Rule         Rule
	BorderMargin float64 // fraction of each dimension ignored as border
	Padding      float64 // fraction of the content size added per side
	Square       bool    // center the crop on a square canvas
	Background   color.Color

	// SmartFallback proposes a smartcrop region instead of returning
	// ErrNoContent when classification finds nothing.
	SmartFallback bool

	Tuning Tuning
}

// Result reports the geometry chosen for one image.
type Result struct {
	Box           image.Rectangle // padded crop rectangle in source coordinates
	ContentWidth  int
	ContentHeight int
	OutputWidth   int
	OutputHeight  int
	Fallback      bool // crop came from the smartcrop fallback
}

// Processor runs the extract-pad-crop pipeline for one Options configuration.
// It holds no per-image state and is safe to share across goroutines.
type Processor struct {
	opts      Options
	resampler imaging.ResampleFilter
}

// NewProcessor returns a Processor for the given options, filling in the
// default background color and tuning when unset.
func NewProcessor(opts Options) *Processor {
	if opts.Background == nil {
		opts.Background = color.White
	}
	if opts.Tuning == (Tuning{}) {
		opts.Tuning = DefaultTuning()
	}
	return &Processor{opts: opts, resampler: imaging.Lanczos}
}

// DecodeImage decodes an image from a byte slice with context awareness.
// The extension hint picks the decoder; unknown extensions fall back to
// sniffing via image.Decode.
func (p *Processor) DecodeImage(ctx context.Context, data []byte, ext string) (image.Image, string, error) {
	if err := checkContext(ctx); err != nil {
		return nil, "", err
	}

	var img image.Image
	var err error

	switch strings.ToLower(ext) {
	case ".png":
		img, err = png.Decode(bytes.NewReader(data))
		ext = ".png"
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(bytes.NewReader(data))
		ext = ".jpg"
	case ".webp":
		img, err = webp.Decode(bytes.NewReader(data))
		ext = ".webp"
	default:
		var format string
		img, format, err = image.Decode(bytes.NewReader(data))
		ext = "." + format
	}
	if err != nil {
		return nil, "", fmt.Errorf("decoding image: %w", err)
	}

	if err := checkContext(ctx); err != nil {
		return nil, "", err
	}
	return img, ext, nil
}

// EncodeImage encodes an image to a byte slice in the given format. JPEG uses
// the tuning quality (95 by default).
func (p *Processor) EncodeImage(ctx context.Context, img image.Image, ext string) ([]byte, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	var err error

	switch strings.ToLower(ext) {
	case ".png":
		err = png.Encode(&buf, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.opts.Tuning.EncodeQuality})
	default:
		return nil, fmt.Errorf("unsupported format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	return buf.Bytes(), nil
}

// Process finds the content box of img, pads it, crops, and optionally
// squares the result. It returns ErrNoContent when classification finds no
// foreground pixels and no fallback is configured.
func (p *Processor) Process(ctx context.Context, img image.Image) (image.Image, *Result, error) {
	if err := checkContext(ctx); err != nil {
		return nil, nil, err
	}

	box, ok := findContentBox(img, p.opts.Rule, p.opts.BorderMargin, p.opts.Tuning)
	if !ok {
		if !p.opts.SmartFallback {
			return nil, nil, ErrNoContent
		}
		return p.smartFallback(ctx, img)
	}

	if err := checkContext(ctx); err != nil {
		return nil, nil, err
	}

	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	padded := PadBox(box, p.opts.Padding, w, h)

	var out image.Image = imaging.Crop(img, padded)
	if p.opts.Square {
		out = ToSquare(out, p.opts.Background)
	}

	return out, &Result{
		Box:           padded,
		ContentWidth:  box.Dx(),
		ContentHeight: box.Dy(),
		OutputWidth:   out.Bounds().Dx(),
		OutputHeight:  out.Bounds().Dy(),
	}, nil
}

// smartFallback asks smartcrop for the most interesting square region when
// threshold classification found nothing. FindBestCrop has no context
// support, so it runs in a goroutine with a select on ctx.
func (p *Processor) smartFallback(ctx context.Context, img image.Image) (image.Image, *Result, error) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	side := min(w, h)
	if side < 1 {
		return nil, nil, ErrNoContent
	}

	analyzer := smartcrop.NewAnalyzer(&resizer{resampler: p.resampler})

	type cropResult struct {
		crop image.Rectangle
		err  error
	}
	resultChan := make(chan cropResult, 1)

	go func() {
		crop, err := analyzer.FindBestCrop(img, side, side)
		resultChan <- cropResult{crop: crop, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	case result := <-resultChan:
		if result.err != nil {
			return nil, nil, fmt.Errorf("finding fallback crop: %w", result.err)
		}

		var out image.Image = imaging.Crop(img, result.crop)
		if p.opts.Square {
			out = ToSquare(out, p.opts.Background)
		}
		return out, &Result{
			Box:           result.crop,
			ContentWidth:  result.crop.Dx(),
			ContentHeight: result.crop.Dy(),
			OutputWidth:   out.Bounds().Dx(),
			OutputHeight:  out.Bounds().Dy(),
			Fallback:      true,
		}, nil
	}
}

// resizer implements the smartcrop.Resizer interface on top of imaging.
type resizer struct {
	resampler imaging.ResampleFilter
}

func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.resampler)
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
