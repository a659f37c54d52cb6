package batch

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteReport renders the crop summary as an aligned console table.
func WriteReport(w io.Writer, s *Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tORIGINAL\tOUTPUT\tCONTENT\tSTATUS")

	for _, row := range s.Rows {
		switch {
		case row.Err != nil:
			fmt.Fprintf(tw, "%s\t%s\t\t\tERROR: %v\n", row.Filename, dims(row.Width, row.Height), row.Err)
		case row.PassThrough:
			fmt.Fprintf(tw, "%s\t%s\t%s\t\tno content, kept original\n",
				row.Filename, dims(row.Width, row.Height), dims(row.Width, row.Height))
		default:
			status := "cropped"
			if row.Result.Fallback {
				status = "cropped (smart fallback)"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				row.Filename,
				dims(row.Width, row.Height),
				dims(row.Result.OutputWidth, row.Result.OutputHeight),
				dims(row.Result.ContentWidth, row.Result.ContentHeight),
				status)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nProcessed: %d  Pass-through: %d  Failed: %d\n",
		s.Processed, s.PassedThrough, s.Failed)
	return err
}

// WriteAnalysisReport renders the analysis summary as an aligned console
// table, one row per file with per-side padding percentages.
func WriteAnalysisReport(w io.Writer, s *AnalysisSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tSIZE\tCONTENT%\tNEEDS CROP\tPADDING L/R/T/B")

	for _, row := range s.Rows {
		switch {
		case row.Err != nil:
			fmt.Fprintf(tw, "%s\t\t\t\tERROR: %v\n", row.Filename, row.Err)
		case row.Analysis == nil:
			fmt.Fprintf(tw, "%s\t\t\t\tno content detected\n", row.Filename)
		default:
			a := row.Analysis
			needs := "no"
			if a.NeedsCrop {
				needs = "YES"
			}
			fmt.Fprintf(tw, "%s\t%s\t%.1f%%\t%s\t%.0f/%.0f/%.0f/%.0f\n",
				row.Filename, dims(a.Width, a.Height), a.ContentPct, needs,
				a.PadLeft, a.PadRight, a.PadTop, a.PadBottom)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nTotal: %d  Needing crop: %d  Failed: %d\n",
		len(s.Rows), s.NeedsCrop, s.Failed)
	return err
}

func dims(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}
