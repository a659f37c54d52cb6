package batch

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joyanlabs/logocrop/pkg/logo"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func logoImage(w, h int, content image.Rectangle) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(img, content, &image.Uniform{color.NRGBA{180, 0, 0, 255}}, image.Point{}, draw.Src)
	return img
}

func squareOptions() logo.Options {
	return logo.Options{Rule: logo.RuleNearWhite, Padding: 0.08, Square: true}
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpg", "c.txt", "d.jpeg", "e.webp", "F.PNG"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0755))

	names, err := ListImages(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"F.PNG", "a.jpg", "b.png", "d.jpeg", "e.webp"}, names)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "logo.jpg", OutputName("logo.png"))
	assert.Equal(t, "logo.jpg", OutputName("logo.jpg"))
	assert.Equal(t, "logo.jpeg", OutputName("logo.jpeg"))
	assert.Equal(t, "logo.jpg", OutputName("logo.webp"))
	assert.Equal(t, "logo.PNG.jpg", OutputName("logo.PNG.PNG"))
}

func TestRun(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()

	writePNG(t, filepath.Join(in, "logo.png"), logoImage(100, 100, image.Rect(40, 40, 60, 60)))
	writePNG(t, filepath.Join(in, "blank.png"), logoImage(50, 50, image.Rectangle{}))
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.jpg"), []byte("not a jpeg"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.txt"), []byte("ignored"), 0644))

	summary, err := Run(context.Background(), Job{
		InputDir:  in,
		OutputDir: out,
		Options:   squareOptions(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.PassedThrough)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Rows, 3)

	// Rows follow sorted filename order.
	assert.Equal(t, "blank.png", summary.Rows[0].Filename)
	assert.True(t, summary.Rows[0].PassThrough)
	assert.Equal(t, "broken.jpg", summary.Rows[1].Filename)
	assert.Error(t, summary.Rows[1].Err)
	assert.Equal(t, "logo.png", summary.Rows[2].Filename)
	require.NotNil(t, summary.Rows[2].Result)
	assert.Equal(t, 20, summary.Rows[2].Result.ContentWidth)

	// Outputs are re-encoded as JPEG, .png inputs renamed.
	cropped, err := imaging.Open(filepath.Join(out, "logo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, 22, cropped.Bounds().Dx())
	assert.Equal(t, 22, cropped.Bounds().Dy())

	// Pass-through keeps the original geometry.
	kept, err := imaging.Open(filepath.Join(out, "blank.jpg"))
	require.NoError(t, err)
	assert.Equal(t, 50, kept.Bounds().Dx())

	// The failed file produced no output.
	_, err = os.Stat(filepath.Join(out, "broken.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunParallel(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()

	names := []string{"a.png", "b.png", "c.png", "d.png", "e.png", "f.png"}
	for _, name := range names {
		writePNG(t, filepath.Join(in, name), logoImage(80, 80, image.Rect(20, 20, 60, 60)))
	}

	summary, err := Run(context.Background(), Job{
		InputDir:  in,
		OutputDir: out,
		Options:   squareOptions(),
		Workers:   4,
	})
	require.NoError(t, err)

	assert.Equal(t, len(names), summary.Processed)
	assert.Zero(t, summary.Failed)
	for i, name := range names {
		assert.Equal(t, name, summary.Rows[i].Filename)
		assert.NotNil(t, summary.Rows[i].Result)
	}
}

func TestRunMissingInputDir(t *testing.T) {
	_, err := Run(context.Background(), Job{
		InputDir:  filepath.Join(t.TempDir(), "missing"),
		OutputDir: t.TempDir(),
		Options:   squareOptions(),
	})
	assert.Error(t, err)
}

func TestAnalyze(t *testing.T) {
	in := t.TempDir()

	writePNG(t, filepath.Join(in, "padded.png"), logoImage(100, 100, image.Rect(40, 40, 60, 60)))
	writePNG(t, filepath.Join(in, "full.png"), logoImage(60, 60, image.Rect(0, 0, 60, 60)))
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.png"), []byte("nope"), 0644))

	summary, err := Analyze(context.Background(), Job{
		InputDir: in,
		Options:  logo.Options{Rule: logo.RuleNearWhite},
	})
	require.NoError(t, err)

	require.Len(t, summary.Rows, 3)
	assert.Equal(t, 1, summary.NeedsCrop)
	assert.Equal(t, 1, summary.Failed)

	assert.Error(t, summary.Rows[0].Err) // broken.png sorts first
	require.NotNil(t, summary.Rows[1].Analysis)
	assert.False(t, summary.Rows[1].Analysis.NeedsCrop) // full.png
	require.NotNil(t, summary.Rows[2].Analysis)
	assert.True(t, summary.Rows[2].Analysis.NeedsCrop) // padded.png
}
