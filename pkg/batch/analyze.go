package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joyanlabs/logocrop/pkg/logo"
)

// AnalysisRow is the measurement for a single input file.
type AnalysisRow struct {
	Filename string
	Analysis *logo.Analysis // nil when no content was detected or on error
	Err      error
}

// AnalysisSummary aggregates one analysis pass.
type AnalysisSummary struct {
	Rows      []AnalysisRow
	NeedsCrop int
	Failed    int
}

// Analyze measures every image in job.InputDir without writing anything.
// Used to decide whether a batch crop pass is worthwhile.
func Analyze(ctx context.Context, job Job) (*AnalysisSummary, error) {
	names, err := ListImages(job.InputDir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", job.InputDir, err)
	}

	p := logo.NewProcessor(job.Options)
	s := &AnalysisSummary{Rows: make([]AnalysisRow, 0, len(names))}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row := AnalysisRow{Filename: name}
		data, err := os.ReadFile(filepath.Join(job.InputDir, name))
		if err != nil {
			row.Err = fmt.Errorf("reading: %w", err)
			s.Rows = append(s.Rows, row)
			s.Failed++
			continue
		}

		img, _, err := p.DecodeImage(ctx, data, filepath.Ext(name))
		if err != nil {
			row.Err = err
			s.Rows = append(s.Rows, row)
			s.Failed++
			continue
		}

		if a, ok := logo.Analyze(img, job.Options.Rule); ok {
			row.Analysis = a
			if a.NeedsCrop {
				s.NeedsCrop++
			}
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}
