// Package batch drives the logo extractor over a directory of image files.
// Each file is processed independently; a failure is recorded on its row and
// the pass continues with the next file.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/joyanlabs/logocrop/pkg/logo"
	"github.com/joyanlabs/logocrop/util/log"
)

// Job describes one batch pass over a directory of logo images.
type Job struct {
	InputDir  string
	OutputDir string
	Options   logo.Options

	// Workers caps how many images are processed concurrently. Values
	// below 2 run the pass sequentially.
	Workers int
}

// Row is the outcome for a single input file.
type Row struct {
	Filename string
	Width    int
	Height   int

	// Result is nil for pass-through and failed rows.
	Result *logo.Result

	// PassThrough marks files with no detectable content that were copied
	// out unmodified.
	PassThrough bool

	Err error
}

// Summary aggregates the rows of one batch pass.
type Summary struct {
	Rows          []Row
	Processed     int
	PassedThrough int
	Failed        int
}

// ListImages returns the image filenames in dir, sorted. Only .jpg, .jpeg,
// .png and .webp entries are included.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png", ".webp":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// OutputName maps an input filename to its output filename. Output is always
// JPEG, so .png and .webp inputs are renamed to .jpg.
func OutputName(name string) string {
	ext := filepath.Ext(name)
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return name
	}
	return strings.TrimSuffix(name, ext) + ".jpg"
}

// Run processes every image in job.InputDir and writes the results to
// job.OutputDir. Only setup failures (unreadable input directory, output
// directory creation) abort the pass; per-file failures land on their row.
func Run(ctx context.Context, job Job) (*Summary, error) {
	names, err := ListImages(job.InputDir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", job.InputDir, err)
	}
	if err := os.MkdirAll(job.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", job.OutputDir, err)
	}

	p := logo.NewProcessor(job.Options)
	rows := make([]Row, len(names))

	if job.Workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(job.Workers)
		for i, name := range names {
			i, name := i, name
			g.Go(func() error {
				rows[i] = processFile(gctx, p, job, name)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, name := range names {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rows[i] = processFile(ctx, p, job, name)
		}
	}

	s := &Summary{Rows: rows}
	for _, row := range rows {
		switch {
		case row.Err != nil:
			s.Failed++
		case row.PassThrough:
			s.PassedThrough++
		default:
			s.Processed++
		}
	}
	return s, nil
}

// processFile runs the full read-analyze-write pass for one input file.
func processFile(ctx context.Context, p *logo.Processor, job Job, name string) Row {
	row := Row{Filename: name}

	data, err := os.ReadFile(filepath.Join(job.InputDir, name))
	if err != nil {
		row.Err = fmt.Errorf("reading: %w", err)
		return row
	}

	img, _, err := p.DecodeImage(ctx, data, filepath.Ext(name))
	if err != nil {
		row.Err = err
		return row
	}
	row.Width = img.Bounds().Dx()
	row.Height = img.Bounds().Dy()

	out, res, err := p.Process(ctx, img)
	switch {
	case errors.Is(err, logo.ErrNoContent):
		// Nothing survived classification. Keep the original rather than
		// dropping the file from the output set.
		log.Debugf("%s: no content detected, passing through", name)
		row.PassThrough = true
		out = img
	case err != nil:
		row.Err = err
		return row
	default:
		row.Result = res
	}

	// Output is always JPEG; flatten any alpha onto white first.
	encoded, err := p.EncodeImage(ctx, logo.FlattenWhite(out), ".jpg")
	if err != nil {
		row.Err = err
		return row
	}

	outPath := filepath.Join(job.OutputDir, OutputName(name))
	if err := os.WriteFile(outPath, encoded, 0644); err != nil {
		row.Err = fmt.Errorf("writing %s: %w", outPath, err)
		return row
	}
	return row
}
